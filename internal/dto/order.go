package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/GlebRadaev/taxiback/internal/domain"
)

type CreateOrderRequestDTO struct {
	FromAddress   string          `json:"from_address" example:"Lenina 1"`
	ToAddress     string          `json:"to_address" example:"Pushkina 10"`
	Amount        decimal.Decimal `json:"amount" swaggertype:"string" example:"100"`
	PaymentMethod string          `json:"payment_method" example:"rub" enums:"cash,bonus,rub"`
	Comment       string          `json:"comment" example:"near the gate"`
}

type OrderResponseDTO struct {
	ID            int             `json:"id" example:"1"`
	PassengerID   int             `json:"passenger_id" example:"1"`
	DriverID      *int            `json:"driver_id,omitempty"`
	FromAddress   string          `json:"from_address" example:"Lenina 1"`
	ToAddress     string          `json:"to_address" example:"Pushkina 10"`
	Amount        decimal.Decimal `json:"amount" swaggertype:"string" example:"100"`
	PaymentMethod string          `json:"payment_method" example:"rub"`
	FinalPrice    decimal.Decimal `json:"final_price" swaggertype:"string" example:"70"`
	Discount      decimal.Decimal `json:"discount" swaggertype:"string" example:"30"`
	Comment       string          `json:"comment,omitempty"`
	Status        string          `json:"status" example:"new"`
	CreatedAt     time.Time       `json:"created_at" example:"2024-05-10T12:00:00Z"`
}

func NewOrderResponse(o domain.Order) OrderResponseDTO {
	return OrderResponseDTO{
		ID:            o.ID,
		PassengerID:   o.PassengerID,
		DriverID:      o.DriverID,
		FromAddress:   o.FromAddress,
		ToAddress:     o.ToAddress,
		Amount:        o.Amount,
		PaymentMethod: string(o.PaymentMethod),
		FinalPrice:    o.FinalPrice,
		Discount:      o.Discount,
		Comment:       o.Comment,
		Status:        o.Status,
		CreatedAt:     o.CreatedAt,
	}
}

func NewOrdersResponse(orders []domain.Order) []OrderResponseDTO {
	resp := make([]OrderResponseDTO, len(orders))
	for i, o := range orders {
		resp[i] = NewOrderResponse(o)
	}
	return resp
}
