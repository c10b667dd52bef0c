package domain

import "github.com/shopspring/decimal"

// MoneyPlaces is the fixed precision of every stored amount.
const MoneyPlaces = 2

// ValidateAmount accepts strictly positive amounts representable with two
// fractional digits.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if !amount.Equal(amount.Round(MoneyPlaces)) {
		return ErrInvalidAmount
	}
	return nil
}
