package moderationservice

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/taxiback/internal/domain"
)

func NewMock(t *testing.T) (*Service, *MockLedger) {
	ctrl := gomock.NewController(t)
	ledger := NewMockLedger(ctrl)
	return New(ledger), ledger
}

func TestModerate(t *testing.T) {
	service, ledger := NewMock(t)
	processed := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		decision      domain.Decision
		prepareMock   func()
		expectedError error
	}{
		{
			name:     "Approve",
			decision: domain.DecisionApprove,
			prepareMock: func() {
				ledger.EXPECT().Resolve(gomock.Any(), 7, domain.DecisionApprove).
					Return(&domain.Transaction{ID: 7, Status: domain.TxApproved, ProcessedAt: &processed}, nil)
			},
		},
		{
			name:     "Already processed",
			decision: domain.DecisionReject,
			prepareMock: func() {
				ledger.EXPECT().Resolve(gomock.Any(), 7, domain.DecisionReject).Return(nil, domain.ErrAlreadyProcessed)
			},
			expectedError: domain.ErrAlreadyProcessed,
		},
		{
			name:          "Invalid decision never reaches the ledger",
			decision:      domain.Decision("hold"),
			prepareMock:   func() {},
			expectedError: domain.ErrInvalidRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			tx, err := service.Moderate(context.Background(), 1, 7, tt.decision)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, tx)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, domain.TxApproved, tx.Status)
		})
	}
}

func TestPending(t *testing.T) {
	service, ledger := NewMock(t)
	ledger.EXPECT().ListPending(gomock.Any(), 20).Return([]domain.Transaction{{ID: 1}, {ID: 2}}, nil)

	pending, err := service.Pending(context.Background(), 20)
	assert.NoError(t, err)
	assert.Len(t, pending, 2)
}
