package orderservice

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/GlebRadaev/taxiback/internal/domain"
	"github.com/GlebRadaev/taxiback/internal/pg"
)

//go:generate mockgen -source=orderservice.go -destination=mock_orderservice.go -package=orderservice

const listLimit = 50

// DiscountRate applies to every non-cash payment.
var DiscountRate = decimal.New(30, -2)

type Repo interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	FindByPassengerID(ctx context.Context, passengerID int, limit int) ([]domain.Order, error)
	FindByDriverID(ctx context.Context, driverID int, limit int) ([]domain.Order, error)
}

type BalanceService interface {
	Debit(ctx context.Context, userID int, field domain.BalanceField, amount decimal.Decimal) (decimal.Decimal, error)
}

// Service is the Order Settlement Engine.
type Service struct {
	repo      Repo
	balances  BalanceService
	txManager pg.TXManager
}

func New(repo Repo, balances BalanceService, txManager pg.TXManager) *Service {
	return &Service{
		repo:      repo,
		balances:  balances,
		txManager: txManager,
	}
}

// Price returns the discount and the amount actually charged. Non-cash
// payments get DiscountRate off, rounded half away from zero to cents.
func Price(amount decimal.Decimal, method domain.PaymentMethod) (discount, finalPrice decimal.Decimal) {
	if method == domain.PaymentCash {
		return decimal.Zero, amount
	}
	discount = amount.Mul(DiscountRate).Round(domain.MoneyPlaces)
	return discount, amount.Sub(discount)
}

func debitField(method domain.PaymentMethod) (domain.BalanceField, bool) {
	switch method {
	case domain.PaymentBonus:
		return domain.FieldBonus, true
	case domain.PaymentRub:
		return domain.FieldRub, true
	}
	return "", false
}

// CreateOrder prices the ride and, for non-cash payments, debits the final
// price in the same unit as the order insert.
func (s *Service) CreateOrder(ctx context.Context, req domain.OrderRequest) (*domain.Order, error) {
	from := strings.TrimSpace(req.FromAddress)
	to := strings.TrimSpace(req.ToAddress)
	if from == "" || to == "" || !req.Amount.IsPositive() || !req.PaymentMethod.Valid() {
		return nil, domain.ErrInvalidRequest
	}
	if err := domain.ValidateAmount(req.Amount); err != nil {
		return nil, err
	}

	discount, finalPrice := Price(req.Amount, req.PaymentMethod)
	order := &domain.Order{
		PassengerID:   req.PassengerID,
		FromAddress:   from,
		ToAddress:     to,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		FinalPrice:    finalPrice,
		Discount:      discount,
		Comment:       strings.TrimSpace(req.Comment),
		Status:        domain.OrderStatusNew,
	}

	var created *domain.Order
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		if field, ok := debitField(order.PaymentMethod); ok {
			if _, err := s.balances.Debit(ctx, order.PassengerID, field, order.FinalPrice); err != nil {
				return err
			}
		}
		var err error
		created, err = s.repo.Create(ctx, order)
		return err
	})
	if err != nil {
		zap.L().Info("order not created", zap.Int("passenger_id", req.PassengerID), zap.Error(err))
		return nil, err
	}

	zap.L().Info("order created",
		zap.Int("id", created.ID),
		zap.String("payment_method", string(created.PaymentMethod)),
		zap.String("final_price", created.FinalPrice.StringFixed(domain.MoneyPlaces)))
	return created, nil
}

// GetOrders lists the caller's latest orders: as passenger or as assigned driver.
func (s *Service) GetOrders(ctx context.Context, userID int, role domain.Role) ([]domain.Order, error) {
	var (
		orders []domain.Order
		err    error
	)
	switch role {
	case domain.RolePassenger:
		orders, err = s.repo.FindByPassengerID(ctx, userID, listLimit)
	case domain.RoleDriver:
		orders, err = s.repo.FindByDriverID(ctx, userID, listLimit)
	default:
		return nil, domain.ErrInvalidRequest
	}
	if err != nil {
		zap.L().Error("failed to get orders", zap.Error(err))
		return nil, err
	}
	return orders, nil
}
