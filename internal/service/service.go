package service

import (
	"context"
	"time"

	"github.com/GlebRadaev/taxiback/internal/handlers/admin"
	"github.com/GlebRadaev/taxiback/internal/handlers/auth"
	"github.com/GlebRadaev/taxiback/internal/handlers/balance"
	"github.com/GlebRadaev/taxiback/internal/handlers/orders"
	shifthandlers "github.com/GlebRadaev/taxiback/internal/handlers/shift"
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

type AuthService interface {
	auth.Service
	admin.AuthService
	EnsureAdmin(ctx context.Context, username, password string) error
}

type ShiftSweeper interface {
	Start(ctx context.Context)
}

type Services struct {
	AuthService       AuthService
	BalanceService    balance.Service
	LedgerService     balance.LedgerService
	OrderService      orders.Service
	ShiftService      shifthandlers.Service
	ModerationService admin.ModerationService
	ShiftSweeper      ShiftSweeper
}

type Options struct {
	HashService        pkgauth.HashServiceInterface
	JWTService         pkgauth.JWTServiceInterface
	TokenTTL           time.Duration
	ShiftSweepInterval time.Duration
}

func New(repo *repo.Repositories, txManager pg.TXManager, opts Options) *Services {
	balanceService := balanceservice.New(repo.BalanceRepo)
	ledgerService := ledgerservice.New(repo.TransactionRepo, balanceService, txManager)
	orderService := orderservice.New(repo.OrderRepo, balanceService, txManager)
	moderationService := moderationservice.New(ledgerService)
	authService := authservice.New(repo.UserRepo, balanceService, opts.HashService, opts.JWTService, txManager, opts.TokenTTL)
	shiftService := shift.New(repo.ShiftRepo, opts.ShiftSweepInterval)

	return &Services{
		AuthService:       authService,
		BalanceService:    balanceService,
		LedgerService:     ledgerService,
		OrderService:      orderService,
		ShiftService:      shiftService,
		ModerationService: moderationService,
		ShiftSweeper:      shiftService,
	}
}
