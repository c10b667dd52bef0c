package dto

import "time"

type StartShiftRequestDTO struct {
	Hours int `json:"hours" example:"12"`
}

type ShiftResponseDTO struct {
	ShiftActive bool       `json:"shift_active"`
	ShiftEndsAt *time.Time `json:"shift_ends_at,omitempty"`
}
