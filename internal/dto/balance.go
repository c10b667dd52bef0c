package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/GlebRadaev/taxiback/internal/domain"
)

// BalanceResponseDTO carries the passenger fields or the driver fields,
// never both.
type BalanceResponseDTO struct {
	UserID       int              `json:"user_id" example:"1"`
	Role         string           `json:"role" example:"passenger"`
	BonusBalance *decimal.Decimal `json:"bonus_balance,omitempty" swaggertype:"string" example:"150.5"`
	RubBalance   *decimal.Decimal `json:"rub_balance,omitempty" swaggertype:"string" example:"1000"`
	Balance      *decimal.Decimal `json:"balance,omitempty" swaggertype:"string" example:"700"`
	ShiftActive  *bool            `json:"shift_active,omitempty"`
	ShiftEndsAt  *time.Time       `json:"shift_ends_at,omitempty"`
}

func NewBalanceResponse(b *domain.Balance) BalanceResponseDTO {
	resp := BalanceResponseDTO{
		UserID: b.UserID,
		Role:   string(b.Role),
	}
	if b.Role == domain.RoleDriver {
		balance, active := b.Driver, b.ShiftActive
		resp.Balance = &balance
		resp.ShiftActive = &active
		resp.ShiftEndsAt = b.ShiftEndsAt
		return resp
	}
	bonus, rub := b.Bonus, b.Rub
	resp.BonusBalance = &bonus
	resp.RubBalance = &rub
	return resp
}

type DepositRequestDTO struct {
	Amount      decimal.Decimal `json:"amount" swaggertype:"string" example:"500"`
	BalanceType string          `json:"balance_type" example:"rub" enums:"rub,bonus"`
}

type WithdrawRequestDTO struct {
	Amount decimal.Decimal `json:"amount" swaggertype:"string" example:"300"`
}

type TransactionResponseDTO struct {
	ID          int             `json:"id" example:"10"`
	UserID      int             `json:"user_id" example:"1"`
	Type        string          `json:"type" example:"deposit_rub"`
	Amount      decimal.Decimal `json:"amount" swaggertype:"string" example:"500"`
	Status      string          `json:"status" example:"pending"`
	CreatedAt   time.Time       `json:"created_at" example:"2024-05-10T12:00:00Z"`
	ProcessedAt *time.Time      `json:"processed_at,omitempty"`
}

func NewTransactionResponse(tx domain.Transaction) TransactionResponseDTO {
	return TransactionResponseDTO{
		ID:          tx.ID,
		UserID:      tx.UserID,
		Type:        string(tx.Type),
		Amount:      tx.Amount,
		Status:      string(tx.Status),
		CreatedAt:   tx.CreatedAt,
		ProcessedAt: tx.ProcessedAt,
	}
}

func NewTransactionsResponse(txs []domain.Transaction) []TransactionResponseDTO {
	resp := make([]TransactionResponseDTO, len(txs))
	for i, tx := range txs {
		resp[i] = NewTransactionResponse(tx)
	}
	return resp
}
