package ledgerservice

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/GlebRadaev/taxiback/internal/domain"
	"github.com/GlebRadaev/taxiback/internal/pg"
)

//go:generate mockgen -source=ledgerservice.go -destination=mock_ledgerservice.go -package=ledgerservice

// HistoryLimit caps the listings served to users and admins.
const HistoryLimit = 50

type Repo interface {
	Create(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error)
	FindByIDForUpdate(ctx context.Context, id int) (*domain.Transaction, error)
	UpdateStatus(ctx context.Context, id int, status domain.TransactionStatus, processedAt time.Time) error
	FindByUserID(ctx context.Context, userID int, limit int) ([]domain.Transaction, error)
	FindPending(ctx context.Context, limit int) ([]domain.Transaction, error)
}

type BalanceService interface {
	GetBalance(ctx context.Context, userID int, role domain.Role) (*domain.Balance, error)
	Credit(ctx context.Context, userID int, field domain.BalanceField, amount decimal.Decimal) (decimal.Decimal, error)
	Debit(ctx context.Context, userID int, field domain.BalanceField, amount decimal.Decimal) (decimal.Decimal, error)
}

// Service is the Transaction Ledger. Requests never touch balances; Resolve
// applies an approved entry exactly once.
type Service struct {
	repo      Repo
	balances  BalanceService
	txManager pg.TXManager
	now       func() time.Time
}

func New(repo Repo, balances BalanceService, txManager pg.TXManager) *Service {
	return &Service{
		repo:      repo,
		balances:  balances,
		txManager: txManager,
		now:       time.Now,
	}
}

// Request files a pending entry. A withdrawal is checked against the current
// driver balance here, but only Resolve decides whether the money is there.
func (s *Service) Request(ctx context.Context, userID int, txType domain.TransactionType, amount decimal.Decimal) (*domain.Transaction, error) {
	if !txType.Valid() {
		return nil, domain.ErrInvalidRequest
	}
	if err := domain.ValidateAmount(amount); err != nil {
		return nil, err
	}

	if txType == domain.TxWithdrawal {
		balance, err := s.balances.GetBalance(ctx, userID, domain.RoleDriver)
		if err != nil {
			return nil, err
		}
		if balance.Driver.LessThan(amount) {
			zap.L().Info("withdrawal request exceeds balance",
				zap.Int("user_id", userID),
				zap.String("amount", amount.StringFixed(domain.MoneyPlaces)))
			return nil, domain.ErrInsufficientFunds
		}
	}

	tx, err := s.repo.Create(ctx, &domain.Transaction{
		UserID: userID,
		Type:   txType,
		Amount: amount,
	})
	if err != nil {
		zap.L().Error("failed to record transaction", zap.Int("user_id", userID), zap.Error(err))
		return nil, err
	}
	zap.L().Info("transaction requested",
		zap.Int("id", tx.ID),
		zap.String("type", string(tx.Type)),
		zap.String("amount", tx.Amount.StringFixed(domain.MoneyPlaces)))
	return tx, nil
}

// Resolve locks the entry, applies its balance effect on approval and stamps
// the terminal status in the same unit. On any failure the entry stays pending.
func (s *Service) Resolve(ctx context.Context, txID int, decision domain.Decision) (*domain.Transaction, error) {
	if !decision.Valid() {
		return nil, domain.ErrInvalidRequest
	}

	var resolved *domain.Transaction
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		tx, err := s.repo.FindByIDForUpdate(ctx, txID)
		if err != nil {
			return err
		}
		if tx == nil {
			return domain.ErrNotFound
		}
		if tx.Status != domain.TxPending {
			return domain.ErrAlreadyProcessed
		}

		status := domain.TxRejected
		if decision == domain.DecisionApprove {
			if err := s.apply(ctx, tx); err != nil {
				return err
			}
			status = domain.TxApproved
		}

		processedAt := s.now()
		if err := s.repo.UpdateStatus(ctx, tx.ID, status, processedAt); err != nil {
			return err
		}
		tx.Status = status
		tx.ProcessedAt = &processedAt
		resolved = tx
		return nil
	})
	if err != nil {
		zap.L().Info("transaction not resolved", zap.Int("id", txID), zap.String("decision", string(decision)), zap.Error(err))
		return nil, err
	}
	return resolved, nil
}

func (s *Service) apply(ctx context.Context, tx *domain.Transaction) error {
	var err error
	switch tx.Type {
	case domain.TxDepositRub:
		_, err = s.balances.Credit(ctx, tx.UserID, domain.FieldRub, tx.Amount)
	case domain.TxDepositBonus:
		_, err = s.balances.Credit(ctx, tx.UserID, domain.FieldBonus, tx.Amount)
	case domain.TxWithdrawal:
		_, err = s.balances.Debit(ctx, tx.UserID, domain.FieldDriver, tx.Amount)
	default:
		return domain.ErrInvalidRequest
	}
	return err
}

func (s *Service) GetTransactions(ctx context.Context, userID int) ([]domain.Transaction, error) {
	transactions, err := s.repo.FindByUserID(ctx, userID, HistoryLimit)
	if err != nil {
		zap.L().Error("failed to fetch transactions", zap.Int("user_id", userID), zap.Error(err))
		return nil, err
	}
	return transactions, nil
}

// ListPending returns the moderation queue, newest first.
func (s *Service) ListPending(ctx context.Context, limit int) ([]domain.Transaction, error) {
	if limit <= 0 || limit > HistoryLimit {
		limit = HistoryLimit
	}
	transactions, err := s.repo.FindPending(ctx, limit)
	if err != nil {
		zap.L().Error("failed to fetch pending transactions", zap.Error(err))
		return nil, err
	}
	return transactions, nil
}
