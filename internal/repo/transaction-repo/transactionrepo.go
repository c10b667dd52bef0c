package transactionrepo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/taxiback/internal/domain"
	"github.com/GlebRadaev/taxiback/internal/pg"
)

const columns = `id, user_id, type, amount, status, created_at, processed_at`

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

// Create records tx as pending and fills its id, status and creation time.
func (r *Repository) Create(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	query := `
		INSERT INTO transactions (user_id, type, amount, status)
		VALUES ($1, $2, $3, 'pending')
		RETURNING id, status, created_at
	`
	err := r.db.QueryRow(ctx, query, tx.UserID, tx.Type, tx.Amount).Scan(&tx.ID, &tx.Status, &tx.CreatedAt)
	if err != nil {
		zap.L().Error("can't save transaction", zap.Error(err))
		return nil, pg.Classify(err)
	}
	tx.ProcessedAt = nil
	return tx, nil
}

// FindByIDForUpdate locks the row until the surrounding unit ends.
// It must run inside TXManager.Begin to hold the lock past the statement.
func (r *Repository) FindByIDForUpdate(ctx context.Context, id int) (*domain.Transaction, error) {
	query := `
		SELECT ` + columns + `
		FROM transactions
		WHERE id = $1
		FOR UPDATE
	`
	tx, err := scanTransaction(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't lock transaction", zap.Int("id", id), zap.Error(err))
		return nil, pg.Classify(err)
	}
	return tx, nil
}

// UpdateStatus moves a pending transaction to its terminal status.
func (r *Repository) UpdateStatus(ctx context.Context, id int, status domain.TransactionStatus, processedAt time.Time) error {
	query := `
		UPDATE transactions
		SET status = $1, processed_at = $2
		WHERE id = $3 AND status = 'pending'
	`
	tag, err := r.db.Exec(ctx, query, status, processedAt, id)
	if err != nil {
		zap.L().Error("can't update transaction status", zap.Int("id", id), zap.Error(err))
		return pg.Classify(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAlreadyProcessed
	}
	return nil
}

func (r *Repository) FindByUserID(ctx context.Context, userID int, limit int) ([]domain.Transaction, error) {
	query := `
		SELECT ` + columns + `
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	return r.list(ctx, query, userID, limit)
}

func (r *Repository) FindPending(ctx context.Context, limit int) ([]domain.Transaction, error) {
	query := `
		SELECT ` + columns + `
		FROM transactions
		WHERE status = 'pending'
		ORDER BY created_at DESC
		LIMIT $1
	`
	return r.list(ctx, query, limit)
}

func (r *Repository) list(ctx context.Context, query string, args ...any) ([]domain.Transaction, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		zap.L().Error("failed to fetch transactions", zap.Error(err))
		return nil, pg.Classify(err)
	}
	defer rows.Close()

	var transactions []domain.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			zap.L().Error("failed to scan transaction row", zap.Error(err))
			return nil, err
		}
		transactions = append(transactions, *tx)
	}
	if err := rows.Err(); err != nil {
		zap.L().Error("failed to iterate transactions", zap.Error(err))
		return nil, pg.Classify(err)
	}
	return transactions, nil
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var tx domain.Transaction
	err := row.Scan(&tx.ID, &tx.UserID, &tx.Type, &tx.Amount, &tx.Status, &tx.CreatedAt, &tx.ProcessedAt)
	if err != nil {
		return nil, err
	}
	return &tx, nil
}
