package moderationservice

import (
	"context"

	"go.uber.org/zap"

	"github.com/GlebRadaev/taxiback/internal/domain"
)

//go:generate mockgen -source=moderationservice.go -destination=mock_moderationservice.go -package=moderationservice

type Ledger interface {
	Resolve(ctx context.Context, txID int, decision domain.Decision) (*domain.Transaction, error)
	ListPending(ctx context.Context, limit int) ([]domain.Transaction, error)
}

// Service is the admin gate in front of the ledger. It keeps no state of its own.
type Service struct {
	ledger Ledger
}

func New(ledger Ledger) *Service {
	return &Service{
		ledger: ledger,
	}
}

func (s *Service) Moderate(ctx context.Context, adminID, txID int, decision domain.Decision) (*domain.Transaction, error) {
	if !decision.Valid() {
		return nil, domain.ErrInvalidRequest
	}

	tx, err := s.ledger.Resolve(ctx, txID, decision)
	if err != nil {
		zap.L().Warn("moderation failed",
			zap.Int("admin_id", adminID),
			zap.Int("transaction_id", txID),
			zap.String("decision", string(decision)),
			zap.Error(err))
		return nil, err
	}

	zap.L().Info("transaction moderated",
		zap.Int("admin_id", adminID),
		zap.Int("transaction_id", tx.ID),
		zap.String("status", string(tx.Status)))
	return tx, nil
}

func (s *Service) Pending(ctx context.Context, limit int) ([]domain.Transaction, error) {
	return s.ledger.ListPending(ctx, limit)
}
