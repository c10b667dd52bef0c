package balancerepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/GlebRadaev/taxiback/internal/domain"
	"github.com/GlebRadaev/taxiback/internal/pg"
)

type target struct {
	table  string
	column string
}

// targets is the only source of identifiers interpolated into adjustment SQL.
var targets = map[domain.BalanceField]target{
	domain.FieldRub:    {table: "passenger_balances", column: "rub_balance"},
	domain.FieldBonus:  {table: "passenger_balances", column: "bonus_balance"},
	domain.FieldDriver: {table: "driver_balances", column: "balance"},
}

type Repository struct {
	db        pg.Database
	txManager pg.TXManager
}

func New(db pg.Database, txManager pg.TXManager) *Repository {
	return &Repository{
		db:        db,
		txManager: txManager,
	}
}

func (r *Repository) GetPassengerBalance(ctx context.Context, userID int) (*domain.Balance, error) {
	query := `
        SELECT user_id, bonus_balance, rub_balance
        FROM passenger_balances
        WHERE user_id = $1
    `
	balance := domain.Balance{Role: domain.RolePassenger}
	err := r.db.QueryRow(ctx, query, userID).Scan(&balance.UserID, &balance.Bonus, &balance.Rub)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("failed to get passenger balance", zap.Error(err))
		return nil, pg.Classify(err)
	}
	return &balance, nil
}

func (r *Repository) GetDriverBalance(ctx context.Context, userID int) (*domain.Balance, error) {
	query := `
        SELECT user_id, balance, shift_active, shift_ends_at
        FROM driver_balances
        WHERE user_id = $1
    `
	balance := domain.Balance{Role: domain.RoleDriver}
	err := r.db.QueryRow(ctx, query, userID).Scan(&balance.UserID, &balance.Driver, &balance.ShiftActive, &balance.ShiftEndsAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("failed to get driver balance", zap.Error(err))
		return nil, pg.Classify(err)
	}
	return &balance, nil
}

func (r *Repository) CreatePassengerBalance(ctx context.Context, userID int) (*domain.Balance, error) {
	query := `
        INSERT INTO passenger_balances (user_id, bonus_balance, rub_balance)
        VALUES ($1, 0, 0)
        RETURNING user_id, bonus_balance, rub_balance
    `
	balance := domain.Balance{Role: domain.RolePassenger}
	err := r.db.QueryRow(ctx, query, userID).Scan(&balance.UserID, &balance.Bonus, &balance.Rub)
	if err != nil {
		zap.L().Error("failed to create passenger balance", zap.Error(err))
		return nil, pg.Classify(err)
	}
	return &balance, nil
}

func (r *Repository) CreateDriverBalance(ctx context.Context, userID int) (*domain.Balance, error) {
	query := `
        INSERT INTO driver_balances (user_id, balance, shift_active)
        VALUES ($1, 0, FALSE)
        RETURNING user_id, balance, shift_active, shift_ends_at
    `
	balance := domain.Balance{Role: domain.RoleDriver}
	err := r.db.QueryRow(ctx, query, userID).Scan(&balance.UserID, &balance.Driver, &balance.ShiftActive, &balance.ShiftEndsAt)
	if err != nil {
		zap.L().Error("failed to create driver balance", zap.Error(err))
		return nil, pg.Classify(err)
	}
	return &balance, nil
}

// AdjustBalance applies adj with a single guarded UPDATE and returns the new
// value of the field. The UPDATE holds the row lock until the enclosing unit
// ends, and a debit only matches while the field still covers it.
func (r *Repository) AdjustBalance(ctx context.Context, adj domain.Adjustment) (decimal.Decimal, error) {
	t, ok := targets[adj.Field]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: unknown balance field %q", domain.ErrInvalidRequest, adj.Field)
	}
	if adj.Delta.IsZero() {
		return decimal.Zero, domain.ErrInvalidAmount
	}

	debit := adj.Delta.IsNegative()
	query := fmt.Sprintf(`
        UPDATE %[1]s
        SET %[2]s = %[2]s + $1
        WHERE user_id = $2
        RETURNING %[2]s
    `, t.table, t.column)
	if debit {
		query = fmt.Sprintf(`
        UPDATE %[1]s
        SET %[2]s = %[2]s - $1
        WHERE user_id = $2 AND %[2]s >= $1
        RETURNING %[2]s
    `, t.table, t.column)
	}

	var updated decimal.Decimal
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		err := r.db.QueryRow(ctx, query, adj.Delta.Abs(), adj.UserID).Scan(&updated)
		if err == nil {
			return nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			zap.L().Error("failed to adjust balance",
				zap.Int("user_id", adj.UserID),
				zap.String("field", string(adj.Field)),
				zap.Error(err))
			return pg.Classify(err)
		}
		if !debit {
			return domain.ErrAccountNotFound
		}

		exists, err := r.accountExists(ctx, t.table, adj.UserID)
		if err != nil {
			return err
		}
		if !exists {
			return domain.ErrAccountNotFound
		}
		return domain.ErrInsufficientFunds
	})
	if err != nil {
		return decimal.Zero, err
	}
	return updated, nil
}

func (r *Repository) accountExists(ctx context.Context, table string, userID int) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE user_id = $1)`, table)
	var exists bool
	if err := r.db.QueryRow(ctx, query, userID).Scan(&exists); err != nil {
		zap.L().Error("failed to probe balance row", zap.Error(err))
		return false, pg.Classify(err)
	}
	return exists, nil
}
