package shiftrepo

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
	"go.uber.org/mock/gomock"

	"github.com/GlebRadaev/taxiback/internal/domain"
	"github.com/GlebRadaev/taxiback/internal/pg"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface, *pg.MockTXManager) {
	ctrl := gomock.NewController(t)
	mockTxManager := pg.NewMockTXManager(ctrl)

	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockDB.Close)

	return New(mockDB, mockTxManager), mockDB, mockTxManager
}

func TestRepository_StartShift(t *testing.T) {
	repo, mock, tx := NewMock(t)
	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	endsAt := now.Add(12 * time.Hour)
	update := `UPDATE driver_balances SET shift_active = TRUE, shift_ends_at = $1 WHERE user_id = $2 AND (NOT shift_active OR shift_ends_at IS NULL OR shift_ends_at <= $3) RETURNING user_id, balance, shift_active, shift_ends_at`
	probe := `SELECT EXISTS(SELECT 1 FROM driver_balances WHERE user_id = $1)`

	tests := []struct {
		name        string
		prepareMock func()
		wantErr     error
	}{
		{
			name: "Shift opened",
			prepareMock: func() {
				tx.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error {
					mock.ExpectQuery(regexp.QuoteMeta(update)).
						WithArgs(endsAt, 3, now).
						WillReturnRows(pgxmock.NewRows([]string{"user_id", "balance", "shift_active", "shift_ends_at"}).
							AddRow(3, decimal.NewFromInt(800), true, &endsAt))
					return fn(ctx)
				})
			},
		},
		{
			name: "Shift still running",
			prepareMock: func() {
				tx.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error {
					mock.ExpectQuery(regexp.QuoteMeta(update)).
						WithArgs(endsAt, 3, now).
						WillReturnError(pgx.ErrNoRows)
					mock.ExpectQuery(regexp.QuoteMeta(probe)).
						WithArgs(3).
						WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
					return fn(ctx)
				})
			},
			wantErr: domain.ErrShiftActive,
		},
		{
			name: "No driver account",
			prepareMock: func() {
				tx.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error {
					mock.ExpectQuery(regexp.QuoteMeta(update)).
						WithArgs(endsAt, 3, now).
						WillReturnError(pgx.ErrNoRows)
					mock.ExpectQuery(regexp.QuoteMeta(probe)).
						WithArgs(3).
						WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
					return fn(ctx)
				})
			},
			wantErr: domain.ErrAccountNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			balance, err := repo.StartShift(context.Background(), 3, now, endsAt)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, balance)
				return
			}
			require.NoError(t, err)
			assert.True(t, balance.ShiftActive)
			assert.Equal(t, endsAt, *balance.ShiftEndsAt)
			assert.True(t, decimal.NewFromInt(800).Equal(balance.Driver))
		})
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindExpiredAndClose(t *testing.T) {
	repo, mock, _ := NewMock(t)
	now := time.Date(2024, 6, 1, 20, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT user_id FROM driver_balances WHERE shift_active AND shift_ends_at <= $1 ORDER BY shift_ends_at ASC LIMIT $2`)).
		WithArgs(now, 100).
		WillReturnRows(pgxmock.NewRows([]string{"user_id"}).AddRow(3).AddRow(4))

	ids, err := repo.FindExpired(context.Background(), now, 100)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 4}, ids)

	closeQuery := `UPDATE driver_balances SET shift_active = FALSE WHERE user_id = $1 AND shift_active AND shift_ends_at <= $2`
	mock.ExpectExec(regexp.QuoteMeta(closeQuery)).
		WithArgs(3, now).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(regexp.QuoteMeta(closeQuery)).
		WithArgs(4, now).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectExec(regexp.QuoteMeta(closeQuery)).
		WithArgs(5, now).
		WillReturnError(errors.New("database error"))

	closed, err := repo.CloseShift(context.Background(), 3, now)
	assert.NoError(t, err)
	assert.True(t, closed)

	closed, err = repo.CloseShift(context.Background(), 4, now)
	assert.NoError(t, err)
	assert.False(t, closed)

	closed, err = repo.CloseShift(context.Background(), 5, now)
	assert.Error(t, err)
	assert.False(t, closed)
	assert.NoError(t, mock.ExpectationsWereMet())
}
