package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Role string

const (
	RolePassenger Role = "passenger"
	RoleDriver    Role = "driver"
	RoleAdmin     Role = "admin"
)

// Valid reports whether r may own an account. Admins live in their own table.
func (r Role) Valid() bool {
	return r == RolePassenger || r == RoleDriver
}

type User struct {
	ID           int       `db:"id"`
	Phone        string    `db:"phone"`
	PasswordHash string    `db:"password_hash"`
	Role         Role      `db:"role"`
	FullName     string    `db:"full_name"`
	CreatedAt    time.Time `db:"created_at"`
}

type Admin struct {
	ID           int       `db:"id"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password_hash"`
	FullName     string    `db:"full_name"`
	CreatedAt    time.Time `db:"created_at"`
}

// BalanceField names one adjustable money column.
type BalanceField string

const (
	FieldRub    BalanceField = "rub_balance"
	FieldBonus  BalanceField = "bonus_balance"
	FieldDriver BalanceField = "balance"
)

// Balance is a snapshot of one account. Passenger accounts fill Bonus and Rub,
// driver accounts fill Driver and the shift fields.
type Balance struct {
	UserID      int             `db:"user_id"`
	Role        Role            `db:"-"`
	Bonus       decimal.Decimal `db:"bonus_balance"`
	Rub         decimal.Decimal `db:"rub_balance"`
	Driver      decimal.Decimal `db:"balance"`
	ShiftActive bool            `db:"shift_active"`
	ShiftEndsAt *time.Time      `db:"shift_ends_at"`
}

// Adjustment is a signed change of a single balance field. A negative Delta
// is a debit and must not take the field below zero.
type Adjustment struct {
	UserID int
	Field  BalanceField
	Delta  decimal.Decimal
}

type TransactionType string

const (
	TxDepositRub   TransactionType = "deposit_rub"
	TxDepositBonus TransactionType = "deposit_bonus"
	TxWithdrawal   TransactionType = "withdrawal"
)

func (t TransactionType) Valid() bool {
	switch t {
	case TxDepositRub, TxDepositBonus, TxWithdrawal:
		return true
	}
	return false
}

type TransactionStatus string

const (
	TxPending  TransactionStatus = "pending"
	TxApproved TransactionStatus = "approved"
	TxRejected TransactionStatus = "rejected"
)

type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

func (d Decision) Valid() bool {
	return d == DecisionApprove || d == DecisionReject
}

type Transaction struct {
	ID          int               `db:"id"`
	UserID      int               `db:"user_id"`
	Type        TransactionType   `db:"type"`
	Amount      decimal.Decimal   `db:"amount"`
	Status      TransactionStatus `db:"status"`
	CreatedAt   time.Time         `db:"created_at"`
	ProcessedAt *time.Time        `db:"processed_at"`
}

type PaymentMethod string

const (
	PaymentCash  PaymentMethod = "cash"
	PaymentBonus PaymentMethod = "bonus"
	PaymentRub   PaymentMethod = "rub"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentBonus, PaymentRub:
		return true
	}
	return false
}

const OrderStatusNew = "new"

type Order struct {
	ID            int             `db:"id"`
	PassengerID   int             `db:"passenger_id"`
	DriverID      *int            `db:"driver_id"`
	FromAddress   string          `db:"from_address"`
	ToAddress     string          `db:"to_address"`
	Amount        decimal.Decimal `db:"amount"`
	PaymentMethod PaymentMethod   `db:"payment_method"`
	FinalPrice    decimal.Decimal `db:"final_price"`
	Discount      decimal.Decimal `db:"discount"`
	Comment       string          `db:"comment"`
	Status        string          `db:"status"`
	CreatedAt     time.Time       `db:"created_at"`
}

type OrderRequest struct {
	PassengerID   int
	FromAddress   string
	ToAddress     string
	Amount        decimal.Decimal
	PaymentMethod PaymentMethod
	Comment       string
}
