package shift

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/GlebRadaev/taxiback/internal/domain"
	"github.com/GlebRadaev/taxiback/internal/dto"
	"github.com/GlebRadaev/taxiback/internal/handlers/common"
	"github.com/GlebRadaev/taxiback/pkg/utils"
)

//go:generate mockgen -source=shift.go -destination=mock_shift.go -package=shift

type Service interface {
	StartShift(ctx context.Context, userID, hours int) (*domain.Balance, error)
}

type ShiftHandler struct {
	shiftService Service
}

func New(shiftService Service) *ShiftHandler {
	return &ShiftHandler{
		shiftService: shiftService,
	}
}

// StartShift godoc
//
//	@Summary		Start a driver shift
//	@Description	Open a shift for 1 to 24 hours, 12 by default. The balance is not touched.
//	@Tags			Shift
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.StartShiftRequestDTO	false	"Shift length"
//	@Success		200		{object}	dto.ShiftResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid shift length"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		403		{object}	utils.Response	"Drivers only"
//	@Failure		409		{object}	utils.Response	"Shift already active"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/shift/start [post]
func (h *ShiftHandler) StartShift(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := common.Caller(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req dto.StartShiftRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	balance, err := h.shiftService.StartShift(r.Context(), userID, req.Hours)
	if err != nil {
		common.RespondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.ShiftResponseDTO{
		ShiftActive: balance.ShiftActive,
		ShiftEndsAt: balance.ShiftEndsAt,
	})
}
