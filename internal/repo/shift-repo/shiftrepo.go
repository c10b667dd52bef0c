package shiftrepo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/taxiback/internal/domain"
	"github.com/GlebRadaev/taxiback/internal/pg"
)

// Repository manages the shift columns of driver_balances. It never reads or
// writes the balance column.
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

// StartShift opens a shift ending at endsAt unless one is still running at now.
func (r *Repository) StartShift(ctx context.Context, userID int, now, endsAt time.Time) (*domain.Balance, error) {
	query := `
        UPDATE driver_balances
        SET shift_active = TRUE, shift_ends_at = $1
        WHERE user_id = $2 AND (NOT shift_active OR shift_ends_at IS NULL OR shift_ends_at <= $3)
        RETURNING user_id, balance, shift_active, shift_ends_at
    `
	balance := domain.Balance{Role: domain.RoleDriver}
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		err := r.db.QueryRow(ctx, query, endsAt, userID, now).
			Scan(&balance.UserID, &balance.Driver, &balance.ShiftActive, &balance.ShiftEndsAt)
		if err == nil {
			return nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			zap.L().Error("can't start shift", zap.Int("user_id", userID), zap.Error(err))
			return pg.Classify(err)
		}

		var exists bool
		err = r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM driver_balances WHERE user_id = $1)`, userID).Scan(&exists)
		if err != nil {
			zap.L().Error("can't probe driver balance", zap.Error(err))
			return pg.Classify(err)
		}
		if !exists {
			return domain.ErrAccountNotFound
		}
		return domain.ErrShiftActive
	})
	if err != nil {
		return nil, err
	}
	return &balance, nil
}

// FindExpired returns drivers whose active shift ended at or before now.
func (r *Repository) FindExpired(ctx context.Context, now time.Time, limit int) ([]int, error) {
	query := `
        SELECT user_id
        FROM driver_balances
        WHERE shift_active AND shift_ends_at <= $1
        ORDER BY shift_ends_at ASC
        LIMIT $2
    `
	rows, err := r.db.Query(ctx, query, now, limit)
	if err != nil {
		zap.L().Error("can't get expired shifts", zap.Error(err))
		return nil, pg.Classify(err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			zap.L().Error("can't scan expired shift row", zap.Error(err))
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, pg.Classify(err)
	}
	return ids, nil
}

// CloseShift reports whether an expired shift was closed. A shift restarted
// after FindExpired saw it is left alone.
func (r *Repository) CloseShift(ctx context.Context, userID int, now time.Time) (bool, error) {
	query := `
        UPDATE driver_balances
        SET shift_active = FALSE
        WHERE user_id = $1 AND shift_active AND shift_ends_at <= $2
    `
	tag, err := r.db.Exec(ctx, query, userID, now)
	if err != nil {
		zap.L().Error("can't close shift", zap.Int("user_id", userID), zap.Error(err))
		return false, pg.Classify(err)
	}
	return tag.RowsAffected() > 0, nil
}
