package repo

import (
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/taxiback/internal/pg"
	balancerepo "github.com/GlebRadaev/taxiback/internal/repo/balance-repo"
	orderrepo "github.com/GlebRadaev/taxiback/internal/repo/order-repo"
	shiftrepo "github.com/GlebRadaev/taxiback/internal/repo/shift-repo"
	transactionrepo "github.com/GlebRadaev/taxiback/internal/repo/transaction-repo"
	userrepo "github.com/GlebRadaev/taxiback/internal/repo/user-repo"
)

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockDB.Close)

	repo := New(mockDB, pg.NewMockTXManager(ctrl))

	assert.IsType(t, &userrepo.Repository{}, repo.UserRepo)
	assert.IsType(t, &balancerepo.Repository{}, repo.BalanceRepo)
	assert.IsType(t, &transactionrepo.Repository{}, repo.TransactionRepo)
	assert.IsType(t, &orderrepo.Repository{}, repo.OrderRepo)
	assert.IsType(t, &shiftrepo.Repository{}, repo.ShiftRepo)

	assert.NoError(t, mockDB.ExpectationsWereMet())
}
