package transactionrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GlebRadaev/taxiback/internal/domain"
)

var txColumns = []string{"id", "user_id", "type", "amount", "status", "created_at", "processed_at"}

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockDB.Close)

	return New(mockDB), mockDB
}

func TestRepository_Create(t *testing.T) {
	ctx := context.Background()
	repo, mock := NewMock(t)
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	amount := decimal.RequireFromString("500.00")
	query := `INSERT INTO transactions (user_id, type, amount, status) VALUES ($1, $2, $3, 'pending') RETURNING id, status, created_at`

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		result    *domain.Transaction
	}{
		{
			name: "Create pending transaction",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(query)).
					WithArgs(1, domain.TxDepositRub, amount).
					WillReturnRows(pgxmock.NewRows([]string{"id", "status", "created_at"}).
						AddRow(10, domain.TxPending, created))
			},
			result: &domain.Transaction{
				ID:        10,
				UserID:    1,
				Type:      domain.TxDepositRub,
				Amount:    amount,
				Status:    domain.TxPending,
				CreatedAt: created,
			},
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(query)).
					WithArgs(1, domain.TxDepositRub, amount).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.Create(ctx, &domain.Transaction{UserID: 1, Type: domain.TxDepositRub, Amount: amount})

			if tt.expectErr {
				assert.Error(t, err)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.result, result)
			}
		})
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindByIDForUpdate(t *testing.T) {
	ctx := context.Background()
	repo, mock := NewMock(t)
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	query := `SELECT id, user_id, type, amount, status, created_at, processed_at FROM transactions WHERE id = $1 FOR UPDATE`

	mock.ExpectQuery(regexp.QuoteMeta(query)).
		WithArgs(3).
		WillReturnRows(pgxmock.NewRows(txColumns).
			AddRow(3, 1, domain.TxWithdrawal, decimal.NewFromInt(60), domain.TxPending, created, (*time.Time)(nil)))

	tx, err := repo.FindByIDForUpdate(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, tx.ID)
	assert.Equal(t, domain.TxWithdrawal, tx.Type)
	assert.Equal(t, domain.TxPending, tx.Status)
	assert.Nil(t, tx.ProcessedAt)

	mock.ExpectQuery(regexp.QuoteMeta(query)).
		WithArgs(4).
		WillReturnError(pgx.ErrNoRows)

	tx, err = repo.FindByIDForUpdate(ctx, 4)
	assert.NoError(t, err)
	assert.Nil(t, tx)

	mock.ExpectQuery(regexp.QuoteMeta(query)).
		WithArgs(5).
		WillReturnError(errors.New("database error"))

	tx, err = repo.FindByIDForUpdate(ctx, 5)
	assert.Error(t, err)
	assert.Nil(t, tx)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	repo, mock := NewMock(t)
	processed := time.Date(2024, 3, 2, 9, 30, 0, 0, time.UTC)
	query := `UPDATE transactions SET status = $1, processed_at = $2 WHERE id = $3 AND status = 'pending'`

	tests := []struct {
		name      string
		mockSetup func()
		wantErr   error
	}{
		{
			name: "Pending row updated",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta(query)).
					WithArgs(domain.TxApproved, processed, 1).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			},
		},
		{
			name: "Row no longer pending",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta(query)).
					WithArgs(domain.TxApproved, processed, 1).
					WillReturnResult(pgxmock.NewResult("UPDATE", 0))
			},
			wantErr: domain.ErrAlreadyProcessed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			err := repo.UpdateStatus(ctx, 1, domain.TxApproved, processed)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Listings(t *testing.T) {
	ctx := context.Background()
	repo, mock := NewMock(t)
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	processed := created.Add(time.Hour)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM transactions WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`)).
		WithArgs(1, 50).
		WillReturnRows(pgxmock.NewRows(txColumns).
			AddRow(2, 1, domain.TxDepositBonus, decimal.NewFromInt(100), domain.TxApproved, created, &processed).
			AddRow(1, 1, domain.TxDepositRub, decimal.NewFromInt(500), domain.TxPending, created, (*time.Time)(nil)))

	history, err := repo.FindByUserID(ctx, 1, 50)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, domain.TxApproved, history[0].Status)
	assert.Equal(t, processed, *history[0].ProcessedAt)
	assert.Nil(t, history[1].ProcessedAt)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM transactions WHERE status = 'pending' ORDER BY created_at DESC LIMIT $1`)).
		WithArgs(50).
		WillReturnRows(pgxmock.NewRows(txColumns).
			AddRow(1, 1, domain.TxDepositRub, decimal.NewFromInt(500), domain.TxPending, created, (*time.Time)(nil)))

	pending, err := repo.FindPending(ctx, 50)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, 1, pending[0].ID)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM transactions WHERE status = 'pending'`)).
		WithArgs(50).
		WillReturnError(errors.New("database error"))

	pending, err = repo.FindPending(ctx, 50)
	assert.Error(t, err)
	assert.Nil(t, pending)
	assert.NoError(t, mock.ExpectationsWereMet())
}
