package service_test

import (
	"context"
	"errors"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"

	"github.com/GlebRadaev/taxiback/internal/domain"
	"github.com/GlebRadaev/taxiback/internal/pg"
	"github.com/GlebRadaev/taxiback/internal/repo"
	"github.com/GlebRadaev/taxiback/internal/service"
	"github.com/GlebRadaev/taxiback/pkg/auth"
)

// These tests run against a real PostgreSQL when TEST_DATABASE_URI is set.

func newServices(t *testing.T) *service.Services {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URI")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URI is not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, pg.RunMigrations(pool))

	txManager := pg.NewTXManager(pool)
	return service.New(repo.New(pg.New(pool), txManager), txManager, service.Options{
		HashService:        auth.NewHashService(bcrypt.MinCost),
		JWTService:         auth.NewJWTService("test-secret"),
		TokenTTL:           time.Hour,
		ShiftSweepInterval: time.Minute,
	})
}

func registerPassenger(t *testing.T, s *service.Services) *domain.User {
	t.Helper()
	user, err := s.AuthService.Register(context.Background(), "+7"+uuid.NewString()[:12], "secret1", domain.RolePassenger, "Test")
	require.NoError(t, err)
	return user
}

func deposit(t *testing.T, s *service.Services, userID int, txType domain.TransactionType, amount string) {
	t.Helper()
	ctx := context.Background()
	tx, err := s.LedgerService.Request(ctx, userID, txType, decimal.RequireFromString(amount))
	require.NoError(t, err)
	_, err = s.ModerationService.Moderate(ctx, 1, tx.ID, domain.DecisionApprove)
	require.NoError(t, err)
}

func TestSettlement_ConcurrentOrdersNeverOverdraw(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	user := registerPassenger(t, s)
	deposit(t, s, user.ID, domain.TxDepositRub, "100")

	var succeeded, rejected atomic.Int32
	var g errgroup.Group
	for i := 0; i < 20; i++ {
		g.Go(func() error {
			_, err := s.OrderService.CreateOrder(ctx, domain.OrderRequest{
				PassengerID:   user.ID,
				FromAddress:   "A",
				ToAddress:     "B",
				Amount:        decimal.NewFromInt(10),
				PaymentMethod: domain.PaymentRub,
			})
			switch {
			case err == nil:
				succeeded.Add(1)
			case errors.Is(err, domain.ErrInsufficientFunds):
				rejected.Add(1)
			default:
				return err
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	balance, err := s.BalanceService.GetBalance(ctx, user.ID, domain.RolePassenger)
	require.NoError(t, err)

	// each ride costs 7.00 after the discount
	assert.Equal(t, int32(14), succeeded.Load())
	assert.Equal(t, int32(6), rejected.Load())
	assert.True(t, balance.Rub.Equal(decimal.RequireFromString("2")), "rub balance %s", balance.Rub)

	orders, err := s.OrderService.GetOrders(ctx, user.ID, domain.RolePassenger)
	require.NoError(t, err)
	assert.Len(t, orders, 14)
}

func TestSettlement_ConcurrentApprovalsApplyOnce(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	user := registerPassenger(t, s)

	tx, err := s.LedgerService.Request(ctx, user.ID, domain.TxDepositBonus, decimal.RequireFromString("25.50"))
	require.NoError(t, err)

	var approved, duplicates atomic.Int32
	var g errgroup.Group
	for i := 0; i < 8; i++ {
		g.Go(func() error {
			_, err := s.ModerationService.Moderate(ctx, 1, tx.ID, domain.DecisionApprove)
			switch {
			case err == nil:
				approved.Add(1)
			case errors.Is(err, domain.ErrAlreadyProcessed):
				duplicates.Add(1)
			default:
				return err
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, int32(1), approved.Load())
	assert.Equal(t, int32(7), duplicates.Load())

	balance, err := s.BalanceService.GetBalance(ctx, user.ID, domain.RolePassenger)
	require.NoError(t, err)
	assert.True(t, balance.Bonus.Equal(decimal.RequireFromString("25.5")), "bonus balance %s", balance.Bonus)

	_, err = s.ModerationService.Moderate(ctx, 1, tx.ID, domain.DecisionReject)
	assert.ErrorIs(t, err, domain.ErrAlreadyProcessed)
}

func TestSettlement_RejectedDepositMovesNothing(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	user := registerPassenger(t, s)

	tx, err := s.LedgerService.Request(ctx, user.ID, domain.TxDepositRub, decimal.NewFromInt(40))
	require.NoError(t, err)
	resolved, err := s.ModerationService.Moderate(ctx, 1, tx.ID, domain.DecisionReject)
	require.NoError(t, err)
	assert.Equal(t, domain.TxRejected, resolved.Status)
	assert.NotNil(t, resolved.ProcessedAt)

	balance, err := s.BalanceService.GetBalance(ctx, user.ID, domain.RolePassenger)
	require.NoError(t, err)
	assert.True(t, balance.Rub.IsZero())

	history, err := s.LedgerService.GetTransactions(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, domain.TxRejected, history[0].Status)
}
