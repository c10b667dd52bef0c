package orderservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/taxiback/internal/domain"
	"github.com/GlebRadaev/taxiback/internal/pg"
)

type decimalMatcher struct {
	want decimal.Decimal
}

func (m decimalMatcher) Matches(x any) bool {
	d, ok := x.(decimal.Decimal)
	return ok && d.Equal(m.want)
}

func (m decimalMatcher) String() string {
	return "equals " + m.want.String()
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func NewMock(t *testing.T) (*Service, *MockRepo, *MockBalanceService, *pg.MockTXManager) {
	ctrl := gomock.NewController(t)
	repo := NewMockRepo(ctrl)
	balances := NewMockBalanceService(ctrl)
	txManager := pg.NewMockTXManager(ctrl)
	return New(repo, balances, txManager), repo, balances, txManager
}

func TestPrice(t *testing.T) {
	tests := []struct {
		name         string
		amount       string
		method       domain.PaymentMethod
		wantDiscount string
		wantFinal    string
	}{
		{name: "Rub payment", amount: "100.00", method: domain.PaymentRub, wantDiscount: "30.00", wantFinal: "70.00"},
		{name: "Bonus payment rounds discount", amount: "99.99", method: domain.PaymentBonus, wantDiscount: "30.00", wantFinal: "69.99"},
		{name: "Half cent rounds up", amount: "0.05", method: domain.PaymentRub, wantDiscount: "0.02", wantFinal: "0.03"},
		{name: "Smallest amount", amount: "0.01", method: domain.PaymentBonus, wantDiscount: "0.00", wantFinal: "0.01"},
		{name: "Cash has no discount", amount: "99.99", method: domain.PaymentCash, wantDiscount: "0.00", wantFinal: "99.99"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			discount, final := Price(dec(tt.amount), tt.method)
			assert.Equal(t, tt.wantDiscount, discount.StringFixed(2))
			assert.Equal(t, tt.wantFinal, final.StringFixed(2))
			assert.True(t, dec(tt.amount).Equal(discount.Add(final)))
		})
	}
}

func TestCreateOrder(t *testing.T) {
	service, repo, balances, txManager := NewMock(t)
	created := time.Date(2024, 4, 2, 8, 15, 0, 0, time.UTC)

	inUnit := func() {
		txManager.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error {
			return fn(ctx)
		})
	}
	insert := func(id int) {
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, order *domain.Order) (*domain.Order, error) {
			order.ID = id
			order.CreatedAt = created
			return order, nil
		})
	}
	request := func(amount string, method domain.PaymentMethod) domain.OrderRequest {
		return domain.OrderRequest{
			PassengerID:   1,
			FromAddress:   "  Lenina 1 ",
			ToAddress:     "Mira 5",
			Amount:        dec(amount),
			PaymentMethod: method,
			Comment:       " child seat ",
		}
	}

	tests := []struct {
		name          string
		req           domain.OrderRequest
		prepareMock   func()
		wantFinal     string
		wantDiscount  string
		expectedError error
	}{
		{
			name: "Rub order debits the discounted price",
			req:  request("100", domain.PaymentRub),
			prepareMock: func() {
				inUnit()
				balances.EXPECT().Debit(gomock.Any(), 1, domain.FieldRub, decimalMatcher{dec("70")}).Return(dec("130"), nil)
				insert(1)
			},
			wantFinal:    "70.00",
			wantDiscount: "30.00",
		},
		{
			name: "Bonus order debits bonus balance",
			req:  request("99.99", domain.PaymentBonus),
			prepareMock: func() {
				inUnit()
				balances.EXPECT().Debit(gomock.Any(), 1, domain.FieldBonus, decimalMatcher{dec("69.99")}).Return(dec("0.01"), nil)
				insert(2)
			},
			wantFinal:    "69.99",
			wantDiscount: "30.00",
		},
		{
			name: "Cash order touches no balance",
			req:  request("100", domain.PaymentCash),
			prepareMock: func() {
				inUnit()
				insert(3)
			},
			wantFinal:    "100.00",
			wantDiscount: "0.00",
		},
		{
			name: "Insufficient bonus creates no order",
			req:  request("100", domain.PaymentBonus),
			prepareMock: func() {
				inUnit()
				balances.EXPECT().Debit(gomock.Any(), 1, domain.FieldBonus, decimalMatcher{dec("70")}).
					Return(decimal.Zero, domain.ErrInsufficientFunds)
			},
			expectedError: domain.ErrInsufficientFunds,
		},
		{
			name: "Insert failure is reported",
			req:  request("100", domain.PaymentRub),
			prepareMock: func() {
				inUnit()
				balances.EXPECT().Debit(gomock.Any(), 1, domain.FieldRub, gomock.Any()).Return(dec("0"), nil)
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, errors.New("insert failed"))
			},
			expectedError: errors.New("insert failed"),
		},
		{
			name:          "Blank address",
			req:           domain.OrderRequest{PassengerID: 1, FromAddress: "   ", ToAddress: "Mira 5", Amount: dec("100"), PaymentMethod: domain.PaymentCash},
			prepareMock:   func() {},
			expectedError: domain.ErrInvalidRequest,
		},
		{
			name:          "Zero amount",
			req:           request("0", domain.PaymentCash),
			prepareMock:   func() {},
			expectedError: domain.ErrInvalidRequest,
		},
		{
			name:          "Unknown payment method",
			req:           request("100", domain.PaymentMethod("card")),
			prepareMock:   func() {},
			expectedError: domain.ErrInvalidRequest,
		},
		{
			name:          "Sub-cent amount",
			req:           request("100.001", domain.PaymentCash),
			prepareMock:   func() {},
			expectedError: domain.ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			order, err := service.CreateOrder(context.Background(), tt.req)
			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError.Error(), err.Error())
				assert.Nil(t, order)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Lenina 1", order.FromAddress)
			assert.Equal(t, "child seat", order.Comment)
			assert.Equal(t, domain.OrderStatusNew, order.Status)
			assert.Equal(t, tt.wantFinal, order.FinalPrice.StringFixed(2))
			assert.Equal(t, tt.wantDiscount, order.Discount.StringFixed(2))
			assert.Equal(t, created, order.CreatedAt)
		})
	}
}

func TestGetOrders(t *testing.T) {
	service, repo, _, _ := NewMock(t)

	tests := []struct {
		name          string
		role          domain.Role
		prepareMock   func()
		expectedLen   int
		expectedError error
	}{
		{
			name: "Passenger orders",
			role: domain.RolePassenger,
			prepareMock: func() {
				repo.EXPECT().FindByPassengerID(gomock.Any(), 1, listLimit).Return([]domain.Order{{ID: 1}, {ID: 2}}, nil)
			},
			expectedLen: 2,
		},
		{
			name: "Driver orders",
			role: domain.RoleDriver,
			prepareMock: func() {
				repo.EXPECT().FindByDriverID(gomock.Any(), 1, listLimit).Return([]domain.Order{{ID: 3}}, nil)
			},
			expectedLen: 1,
		},
		{
			name: "Storage failure",
			role: domain.RolePassenger,
			prepareMock: func() {
				repo.EXPECT().FindByPassengerID(gomock.Any(), 1, listLimit).Return(nil, domain.ErrStorageUnavailable)
			},
			expectedError: domain.ErrStorageUnavailable,
		},
		{
			name:          "Admin has no orders",
			role:          domain.RoleAdmin,
			prepareMock:   func() {},
			expectedError: domain.ErrInvalidRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			orders, err := service.GetOrders(context.Background(), 1, tt.role)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				return
			}
			assert.NoError(t, err)
			assert.Len(t, orders, tt.expectedLen)
		})
	}
}

func TestCreateOrder_PersistedRow(t *testing.T) {
	service, repo, balances, txManager := NewMock(t)

	txManager.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error {
		return fn(ctx)
	})
	balances.EXPECT().Debit(gomock.Any(), 4, domain.FieldBonus, decimalMatcher{dec("35")}).Return(dec("15"), nil)

	var stored *domain.Order
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, order *domain.Order) (*domain.Order, error) {
		stored = order
		return order, nil
	})

	_, err := service.CreateOrder(context.Background(), domain.OrderRequest{
		PassengerID:   4,
		FromAddress:   "Tverskaya 7",
		ToAddress:     "Arbat 12",
		Amount:        dec("50"),
		PaymentMethod: domain.PaymentBonus,
	})
	require.NoError(t, err)

	want := &domain.Order{
		PassengerID:   4,
		FromAddress:   "Tverskaya 7",
		ToAddress:     "Arbat 12",
		Amount:        dec("50"),
		PaymentMethod: domain.PaymentBonus,
		FinalPrice:    dec("35"),
		Discount:      dec("15"),
		Status:        domain.OrderStatusNew,
	}
	decimalEqual := cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })
	if diff := cmp.Diff(want, stored, decimalEqual); diff != "" {
		t.Errorf("stored order mismatch (-want +got):\n%s", diff)
	}
}
