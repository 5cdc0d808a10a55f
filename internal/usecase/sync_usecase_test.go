package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/parking-microservice/internal/domain"
	"github.com/parking-microservice/internal/domain/repository"
	"github.com/parking-microservice/internal/pkg/errors"
	"github.com/parking-microservice/internal/usecase"
)

func newSyncUC(
	repo *MockParkingRepository,
	source *MockParkingSource,
	cache *MockCacheRepository,
) *usecase.SyncUseCase {
	return usecase.NewSyncUseCase(repo, source, cache, zap.NewNop(), 5*time.Second)
}

func sourceParkings() []*domain.Parking {
	return []*domain.Parking{
		{ID: 42, Name: domain.LangString{RU: "Парковка у метро", EN: "Parking near metro"}, Lat: 55.75, Lon: 37.62},
		{ID: 43, Name: domain.LangString{RU: "Парковка на Тверской"}, Lat: 55.7649, Lon: 37.6057},
		{ID: 50, Name: domain.LangString{EN: "Disabled parking lot"}, Lat: 55.70, Lon: 37.50},
		{ID: 51, Name: domain.LangString{RU: "Битая запись"}, Lat: 99.0, Lon: 37.0},
	}
}

func TestSyncUseCase_Synchronize(t *testing.T) {
	ctx := context.Background()

	t.Run("full run with counts", func(t *testing.T) {
		mockRepo := &MockParkingRepository{}
		mockSource := &MockParkingSource{}
		mockCache := &MockCacheRepository{}
		uc := newSyncUC(mockRepo, mockSource, mockCache)

		mockSource.On("FetchAll", mock.Anything).Return(sourceParkings(), nil)
		mockRepo.On("UpsertMany", mock.Anything, mock.MatchedBy(func(ps []*domain.Parking) bool {
			// Только валидные активные записи доходят до хранилища
			return len(ps) == 2 && ps[0].ID == 42 && ps[1].ID == 43
		})).Return(&repository.UpsertResult{Created: 1, Updated: 1}, nil)
		mockRepo.On("DeleteMissing", mock.Anything, []int64{42, 43}).Return(3, nil)
		mockCache.On("SetSyncReport", mock.Anything, mock.Anything).Return(nil)

		report, err := uc.Synchronize(ctx)
		require.NoError(t, err)
		assert.Equal(t, 4, report.Fetched)
		assert.Equal(t, 1, report.Created)
		assert.Equal(t, 1, report.Updated)
		assert.Equal(t, 3, report.Deleted)
		assert.Equal(t, 1, report.Rejected)
		assert.Equal(t, 1, report.Inactive)
		assert.NotEmpty(t, report.RunID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("fetch failure aborts before store", func(t *testing.T) {
		mockRepo := &MockParkingRepository{}
		mockSource := &MockParkingSource{}
		uc := newSyncUC(mockRepo, mockSource, &MockCacheRepository{})

		mockSource.On("FetchAll", mock.Anything).Return(nil, assert.AnError)

		_, err := uc.Synchronize(ctx)
		assert.ErrorIs(t, err, errors.ErrSyncSourceUnavailable)
		mockRepo.AssertNotCalled(t, "UpsertMany")
		mockRepo.AssertNotCalled(t, "DeleteMissing")
	})

	t.Run("empty fetch aborts without deletions", func(t *testing.T) {
		mockRepo := &MockParkingRepository{}
		mockSource := &MockParkingSource{}
		uc := newSyncUC(mockRepo, mockSource, &MockCacheRepository{})

		mockSource.On("FetchAll", mock.Anything).Return([]*domain.Parking{}, nil)

		_, err := uc.Synchronize(ctx)
		assert.ErrorIs(t, err, errors.ErrSyncEmptyDataset)
		mockRepo.AssertNotCalled(t, "UpsertMany")
		mockRepo.AssertNotCalled(t, "DeleteMissing")
	})

	t.Run("all records invalid aborts reconciliation", func(t *testing.T) {
		mockRepo := &MockParkingRepository{}
		mockSource := &MockParkingSource{}
		uc := newSyncUC(mockRepo, mockSource, &MockCacheRepository{})

		mockSource.On("FetchAll", mock.Anything).Return([]*domain.Parking{
			{ID: 1, Lat: 200, Lon: 300},
		}, nil)

		_, err := uc.Synchronize(ctx)
		assert.ErrorIs(t, err, errors.ErrSyncEmptyDataset)
		mockRepo.AssertNotCalled(t, "DeleteMissing")
	})

	t.Run("timeout maps to sync timeout", func(t *testing.T) {
		mockRepo := &MockParkingRepository{}
		mockSource := &MockParkingSource{}
		uc := usecase.NewSyncUseCase(mockRepo, mockSource, &MockCacheRepository{}, zap.NewNop(), 20*time.Millisecond)

		mockSource.On("FetchAll", mock.Anything).Run(func(args mock.Arguments) {
			fetchCtx := args.Get(0).(context.Context)
			<-fetchCtx.Done()
		}).Return(nil, context.DeadlineExceeded)

		_, err := uc.Synchronize(ctx)
		assert.ErrorIs(t, err, errors.ErrSyncTimeout)
		mockRepo.AssertNotCalled(t, "UpsertMany")
	})

	t.Run("concurrent trigger rejected", func(t *testing.T) {
		mockRepo := &MockParkingRepository{}
		mockSource := &MockParkingSource{}
		mockCache := &MockCacheRepository{}
		uc := newSyncUC(mockRepo, mockSource, mockCache)

		firstStarted := make(chan struct{})
		release := make(chan struct{})

		mockSource.On("FetchAll", mock.Anything).Run(func(mock.Arguments) {
			close(firstStarted)
			<-release
		}).Return(sourceParkings(), nil)
		mockRepo.On("UpsertMany", mock.Anything, mock.Anything).
			Return(&repository.UpsertResult{Created: 2}, nil)
		mockRepo.On("DeleteMissing", mock.Anything, mock.Anything).Return(0, nil)
		mockCache.On("SetSyncReport", mock.Anything, mock.Anything).Return(nil)

		var wg sync.WaitGroup
		wg.Add(1)
		var firstErr error
		go func() {
			defer wg.Done()
			_, firstErr = uc.Synchronize(ctx)
		}()

		<-firstStarted
		assert.True(t, uc.InProgress())

		_, secondErr := uc.Synchronize(ctx)
		assert.ErrorIs(t, secondErr, errors.ErrSyncInProgress)

		close(release)
		wg.Wait()
		require.NoError(t, firstErr)
		assert.False(t, uc.InProgress())
	})
}

func TestSyncUseCase_Status(t *testing.T) {
	ctx := context.Background()

	t.Run("returns last report", func(t *testing.T) {
		mockCache := &MockCacheRepository{}
		uc := newSyncUC(&MockParkingRepository{}, &MockParkingSource{}, mockCache)

		report := &domain.SyncReport{RunID: "run-1", Fetched: 10}
		mockCache.On("GetSyncReport", ctx).Return(report, nil)

		status, err := uc.Status(ctx)
		require.NoError(t, err)
		assert.False(t, status.InProgress)
		assert.Equal(t, "run-1", status.LastReport.RunID)
	})

	t.Run("no report yet", func(t *testing.T) {
		mockCache := &MockCacheRepository{}
		uc := newSyncUC(&MockParkingRepository{}, &MockParkingSource{}, mockCache)

		mockCache.On("GetSyncReport", ctx).Return(nil, nil)

		status, err := uc.Status(ctx)
		require.NoError(t, err)
		assert.Nil(t, status.LastReport)
	})
}
