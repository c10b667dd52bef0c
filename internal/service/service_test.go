package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/taxiback/internal/pg"
	"github.com/GlebRadaev/taxiback/internal/repo"
	"github.com/GlebRadaev/taxiback/internal/service/authservice"
	"github.com/GlebRadaev/taxiback/internal/service/balanceservice"
	"github.com/GlebRadaev/taxiback/internal/service/ledgerservice"
	"github.com/GlebRadaev/taxiback/internal/service/moderationservice"
	"github.com/GlebRadaev/taxiback/internal/service/orderservice"
	"github.com/GlebRadaev/taxiback/internal/shift"
	pkgauth "github.com/GlebRadaev/taxiback/pkg/auth"
)

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)

	repos := &repo.Repositories{
		UserRepo:        authservice.NewMockRepo(ctrl),
		BalanceRepo:     balanceservice.NewMockRepo(ctrl),
		TransactionRepo: ledgerservice.NewMockRepo(ctrl),
		OrderRepo:       orderservice.NewMockRepo(ctrl),
		ShiftRepo:       shift.NewMockRepo(ctrl),
	}

	services := New(repos, pg.NewMockTXManager(ctrl), Options{
		HashService:        pkgauth.NewMockHashServiceInterface(ctrl),
		JWTService:         pkgauth.NewMockJWTServiceInterface(ctrl),
		TokenTTL:           time.Hour,
		ShiftSweepInterval: time.Minute,
	})

	assert.IsType(t, &authservice.Service{}, services.AuthService)
	assert.IsType(t, &balanceservice.Service{}, services.BalanceService)
	assert.IsType(t, &ledgerservice.Service{}, services.LedgerService)
	assert.IsType(t, &orderservice.Service{}, services.OrderService)
	assert.IsType(t, &moderationservice.Service{}, services.ModerationService)
	assert.IsType(t, &shift.Service{}, services.ShiftService)
	assert.Same(t, services.ShiftService, services.ShiftSweeper)
}
