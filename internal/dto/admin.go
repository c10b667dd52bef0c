package dto

type ModerateRequestDTO struct {
	Action string `json:"action" example:"approve" enums:"approve,reject"`
}
