package shift

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/GlebRadaev/taxiback/internal/domain"
)

var fixedNow = time.Date(2024, 5, 10, 8, 0, 0, 0, time.UTC)

func NewMock(t *testing.T) (*Service, *MockRepo, *MockWorkerPoolI) {
	ctrl := gomock.NewController(t)
	repo := NewMockRepo(ctrl)
	workerPool := NewMockWorkerPoolI(ctrl)

	service := New(repo, 10*time.Millisecond)
	service.workerPool.Close()
	service.workerPool = workerPool
	service.now = func() time.Time { return fixedNow }
	return service, repo, workerPool
}

func runInline(workerPool *MockWorkerPoolI, times int) {
	workerPool.EXPECT().AddTask(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, task Task) error {
		return task()
	}).Times(times)
}

func TestService_StartShift(t *testing.T) {
	service, repo, _ := NewMock(t)
	ctx := context.Background()

	tests := []struct {
		name          string
		hours         int
		prepareMock   func()
		expectedEnd   time.Time
		expectedError error
	}{
		{
			name:  "Default length",
			hours: 0,
			prepareMock: func() {
				repo.EXPECT().StartShift(ctx, 5, fixedNow, fixedNow.Add(12*time.Hour)).
					DoAndReturn(func(_ context.Context, userID int, _, endsAt time.Time) (*domain.Balance, error) {
						return &domain.Balance{UserID: userID, ShiftActive: true, ShiftEndsAt: &endsAt}, nil
					})
			},
			expectedEnd: fixedNow.Add(12 * time.Hour),
		},
		{
			name:  "Explicit length",
			hours: 8,
			prepareMock: func() {
				repo.EXPECT().StartShift(ctx, 5, fixedNow, fixedNow.Add(8*time.Hour)).
					DoAndReturn(func(_ context.Context, userID int, _, endsAt time.Time) (*domain.Balance, error) {
						return &domain.Balance{UserID: userID, ShiftActive: true, ShiftEndsAt: &endsAt}, nil
					})
			},
			expectedEnd: fixedNow.Add(8 * time.Hour),
		},
		{
			name:          "Too long",
			hours:         25,
			prepareMock:   func() {},
			expectedError: domain.ErrInvalidRequest,
		},
		{
			name:          "Negative",
			hours:         -1,
			prepareMock:   func() {},
			expectedError: domain.ErrInvalidRequest,
		},
		{
			name:  "Already running",
			hours: 4,
			prepareMock: func() {
				repo.EXPECT().StartShift(ctx, 5, fixedNow, fixedNow.Add(4*time.Hour)).Return(nil, domain.ErrShiftActive)
			},
			expectedError: domain.ErrShiftActive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			balance, err := service.StartShift(ctx, 5, tt.hours)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, balance)
				return
			}
			require.NoError(t, err)
			assert.True(t, balance.ShiftActive)
			assert.Equal(t, tt.expectedEnd, *balance.ShiftEndsAt)
		})
	}
}

func TestService_closeExpired(t *testing.T) {
	tests := []struct {
		name        string
		prepareMock func(repo *MockRepo, workerPool *MockWorkerPoolI)
	}{
		{
			name: "Closes every expired shift",
			prepareMock: func(repo *MockRepo, workerPool *MockWorkerPoolI) {
				repo.EXPECT().FindExpired(gomock.Any(), fixedNow, sweepLimit).Return([]int{1, 2}, nil)
				runInline(workerPool, 2)
				repo.EXPECT().CloseShift(gomock.Any(), 1, fixedNow).Return(true, nil)
				repo.EXPECT().CloseShift(gomock.Any(), 2, fixedNow).Return(false, nil)
			},
		},
		{
			name: "Lookup failure skips the round",
			prepareMock: func(repo *MockRepo, _ *MockWorkerPoolI) {
				repo.EXPECT().FindExpired(gomock.Any(), fixedNow, sweepLimit).Return(nil, domain.ErrStorageUnavailable)
			},
		},
		{
			name: "Close failure is logged",
			prepareMock: func(repo *MockRepo, workerPool *MockWorkerPoolI) {
				repo.EXPECT().FindExpired(gomock.Any(), fixedNow, sweepLimit).Return([]int{3}, nil)
				runInline(workerPool, 1)
				repo.EXPECT().CloseShift(gomock.Any(), 3, fixedNow).Return(false, errors.New("db down"))
			},
		},
		{
			name: "Pool rejection releases the driver",
			prepareMock: func(repo *MockRepo, workerPool *MockWorkerPoolI) {
				repo.EXPECT().FindExpired(gomock.Any(), fixedNow, sweepLimit).Return([]int{4}, nil)
				workerPool.EXPECT().AddTask(gomock.Any(), gomock.Any()).Return(context.Canceled)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo, workerPool := NewMock(t)
			tt.prepareMock(repo, workerPool)
			service.closeExpired(context.Background())

			pending := 0
			service.closing.Range(func(_, _ any) bool {
				pending++
				return true
			})
			assert.Zero(t, pending)
		})
	}
}

func TestService_closeExpired_SkipsInFlight(t *testing.T) {
	service, repo, _ := NewMock(t)
	service.closing.Store(7, struct{}{})

	repo.EXPECT().FindExpired(gomock.Any(), fixedNow, sweepLimit).Return([]int{7}, nil)
	service.closeExpired(context.Background())
}

func TestService_Start(t *testing.T) {
	service, repo, workerPool := NewMock(t)

	var once sync.Once
	swept := make(chan struct{})
	repo.EXPECT().FindExpired(gomock.Any(), fixedNow, sweepLimit).DoAndReturn(func(context.Context, time.Time, int) ([]int, error) {
		once.Do(func() { close(swept) })
		return nil, nil
	}).MinTimes(1)
	closed := make(chan struct{})
	workerPool.EXPECT().Close().Do(func() { close(closed) })

	ctx, cancel := context.WithCancel(context.Background())
	service.Start(ctx)

	select {
	case <-swept:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not tick")
	}
	cancel()

	select {
	case <-closed:
	case <-time.After(time.Second):
		t.Fatal("worker pool was not closed")
	}
}
