package shift

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/GlebRadaev/taxiback/internal/domain"
)

//go:generate mockgen -source=shift.go -destination=mock_shift.go -package=shift

const (
	DefaultHours = 12
	MaxHours     = 24

	sweepLimit  = 1000
	workerCount = 10
)

type Repo interface {
	StartShift(ctx context.Context, userID int, now, endsAt time.Time) (*domain.Balance, error)
	FindExpired(ctx context.Context, now time.Time, limit int) ([]int, error)
	CloseShift(ctx context.Context, userID int, now time.Time) (bool, error)
}

// Service opens driver shifts and closes them once they run out.
// Shifts never move money.
type Service struct {
	repo          Repo
	workerPool    WorkerPoolI
	sweepInterval time.Duration
	limit         int
	closing       sync.Map
	now           func() time.Time
}

func New(repo Repo, sweepInterval time.Duration) *Service {
	return &Service{
		repo:          repo,
		workerPool:    NewWorkerPool(workerCount),
		sweepInterval: sweepInterval,
		limit:         sweepLimit,
		now:           time.Now,
	}
}

// StartShift opens a shift of the given length. Zero hours means the default.
func (s *Service) StartShift(ctx context.Context, userID, hours int) (*domain.Balance, error) {
	if hours == 0 {
		hours = DefaultHours
	}
	if hours < 0 || hours > MaxHours {
		return nil, domain.ErrInvalidRequest
	}

	now := s.now().UTC()
	balance, err := s.repo.StartShift(ctx, userID, now, now.Add(time.Duration(hours)*time.Hour))
	if err != nil {
		zap.L().Warn("can't start shift", zap.Int("user_id", userID), zap.Error(err))
		return nil, err
	}
	zap.L().Info("shift started", zap.Int("user_id", userID), zap.Timep("ends_at", balance.ShiftEndsAt))
	return balance, nil
}

// Start runs the sweeper until ctx is done.
func (s *Service) Start(ctx context.Context) {
	zap.L().Info("shift sweeper started", zap.Duration("interval", s.sweepInterval))
	go s.run(ctx)
}

func (s *Service) run(ctx context.Context) {
	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()
	defer s.workerPool.Close()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("context canceled, stopping shift sweeper")
			return
		case <-ticker.C:
			s.closeExpired(ctx)
		}
	}
}

func (s *Service) closeExpired(ctx context.Context) {
	now := s.now().UTC()
	ids, err := s.repo.FindExpired(ctx, now, s.limit)
	if err != nil {
		zap.L().Error("failed to fetch expired shifts", zap.Error(err))
		return
	}

	var g errgroup.Group
	for _, id := range ids {
		id := id

		if _, loaded := s.closing.LoadOrStore(id, struct{}{}); loaded {
			continue
		}

		g.Go(func() error {
			err := s.workerPool.AddTask(ctx, func() error {
				defer s.closing.Delete(id)
				return s.closeShift(ctx, id, now)
			})
			if err != nil {
				s.closing.Delete(id)
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		zap.L().Error("error closing shifts", zap.Error(err))
	}
}

func (s *Service) closeShift(ctx context.Context, userID int, now time.Time) error {
	closed, err := s.repo.CloseShift(ctx, userID, now)
	if err != nil {
		return err
	}
	if closed {
		zap.L().Info("shift closed", zap.Int("user_id", userID))
	}
	return nil
}
