package balanceservice

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/GlebRadaev/taxiback/internal/domain"
)

//go:generate mockgen -source=balanceservice.go -destination=mock_balanceservice.go -package=balanceservice

type Repo interface {
	GetPassengerBalance(ctx context.Context, userID int) (*domain.Balance, error)
	GetDriverBalance(ctx context.Context, userID int) (*domain.Balance, error)
	CreatePassengerBalance(ctx context.Context, userID int) (*domain.Balance, error)
	CreateDriverBalance(ctx context.Context, userID int) (*domain.Balance, error)
	AdjustBalance(ctx context.Context, adj domain.Adjustment) (decimal.Decimal, error)
}

// Service is the Balance Store. Every mutation goes through Repo.AdjustBalance.
type Service struct {
	repo Repo
}

func New(repo Repo) *Service {
	return &Service{
		repo: repo,
	}
}

// CreateBalance opens the zero balance row for a freshly registered account.
func (s *Service) CreateBalance(ctx context.Context, userID int, role domain.Role) (*domain.Balance, error) {
	var (
		balance *domain.Balance
		err     error
	)
	switch role {
	case domain.RolePassenger:
		balance, err = s.repo.CreatePassengerBalance(ctx, userID)
	case domain.RoleDriver:
		balance, err = s.repo.CreateDriverBalance(ctx, userID)
	default:
		return nil, domain.ErrInvalidRequest
	}
	if err != nil {
		zap.L().Error("failed to create balance", zap.Int("user_id", userID), zap.Error(err))
		return nil, err
	}
	return balance, nil
}

// GetBalance returns the snapshot for role. An absent row reads as zero.
func (s *Service) GetBalance(ctx context.Context, userID int, role domain.Role) (*domain.Balance, error) {
	var (
		balance *domain.Balance
		err     error
	)
	switch role {
	case domain.RolePassenger:
		balance, err = s.repo.GetPassengerBalance(ctx, userID)
	case domain.RoleDriver:
		balance, err = s.repo.GetDriverBalance(ctx, userID)
	default:
		return nil, domain.ErrInvalidRequest
	}
	if err != nil {
		zap.L().Error("failed to get balance", zap.Int("user_id", userID), zap.Error(err))
		return nil, err
	}
	if balance == nil {
		return zeroBalance(userID, role), nil
	}
	return balance, nil
}

func (s *Service) Credit(ctx context.Context, userID int, field domain.BalanceField, amount decimal.Decimal) (decimal.Decimal, error) {
	if err := domain.ValidateAmount(amount); err != nil {
		return decimal.Zero, err
	}
	return s.adjust(ctx, domain.Adjustment{UserID: userID, Field: field, Delta: amount})
}

// Debit fails with domain.ErrInsufficientFunds and leaves the field untouched
// when it holds less than amount.
func (s *Service) Debit(ctx context.Context, userID int, field domain.BalanceField, amount decimal.Decimal) (decimal.Decimal, error) {
	if err := domain.ValidateAmount(amount); err != nil {
		return decimal.Zero, err
	}
	return s.adjust(ctx, domain.Adjustment{UserID: userID, Field: field, Delta: amount.Neg()})
}

func (s *Service) adjust(ctx context.Context, adj domain.Adjustment) (decimal.Decimal, error) {
	updated, err := s.repo.AdjustBalance(ctx, adj)
	if err != nil {
		zap.L().Info("balance adjustment refused",
			zap.Int("user_id", adj.UserID),
			zap.String("field", string(adj.Field)),
			zap.String("delta", adj.Delta.StringFixed(domain.MoneyPlaces)),
			zap.Error(err))
		return decimal.Zero, err
	}
	return updated, nil
}

func zeroBalance(userID int, role domain.Role) *domain.Balance {
	return &domain.Balance{
		UserID: userID,
		Role:   role,
		Bonus:  decimal.Zero,
		Rub:    decimal.Zero,
		Driver: decimal.Zero,
	}
}
