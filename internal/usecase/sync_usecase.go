package usecase

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/parking-microservice/internal/domain"
	"github.com/parking-microservice/internal/domain/repository"
	"github.com/parking-microservice/internal/pkg/errors"
)

// SyncUseCase - use case синхронизации с внешним источником данных.
// Одновременно выполняется не более одного прогона: повторный запуск
// отклоняется с ErrSyncInProgress, а не ставится в очередь.
type SyncUseCase struct {
	parkingRepo repository.ParkingRepository
	source      repository.ParkingSource
	cacheRepo   repository.CacheRepository
	logger      *zap.Logger
	timeout     time.Duration

	running atomic.Bool
}

// NewSyncUseCase - создание нового SyncUseCase
func NewSyncUseCase(
	parkingRepo repository.ParkingRepository,
	source repository.ParkingSource,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
	timeout time.Duration,
) *SyncUseCase {
	return &SyncUseCase{
		parkingRepo: parkingRepo,
		source:      source,
		cacheRepo:   cacheRepo,
		logger:      logger,
		timeout:     timeout,
	}
}

// InProgress сообщает, выполняется ли синхронизация прямо сейчас
func (uc *SyncUseCase) InProgress() bool {
	return uc.running.Load()
}

// Status - текущее состояние синхронизации с отчётом последнего прогона
func (uc *SyncUseCase) Status(ctx context.Context) (*domain.SyncStatus, error) {
	report, err := uc.cacheRepo.GetSyncReport(ctx)
	if err != nil {
		uc.logger.Warn("Failed to load last sync report", zap.Error(err))
	}
	return &domain.SyncStatus{
		InProgress: uc.InProgress(),
		LastReport: report,
	}, nil
}

// Synchronize выполняет полный прогон: fetch -> validate -> upsert -> reconcile.
// Хранилище не изменяется, пока внешний набор данных не получен и не признан
// достоверным; пустой ответ источника считается подозрительным и прерывает
// прогон без удаления существующих записей.
func (uc *SyncUseCase) Synchronize(ctx context.Context) (*domain.SyncReport, error) {
	if !uc.running.CompareAndSwap(false, true) {
		return nil, errors.ErrSyncInProgress
	}
	defer uc.running.Store(false)

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	report := &domain.SyncReport{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
	}

	uc.logger.Info("Starting parking data synchronization", zap.String("run_id", report.RunID))

	fetched, err := uc.source.FetchAll(ctx)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			uc.logger.Error("Synchronization fetch timed out", zap.String("run_id", report.RunID))
			return nil, errors.ErrSyncTimeout
		}
		uc.logger.Error("Failed to fetch parking data", zap.String("run_id", report.RunID), zap.Error(err))
		return nil, errors.ErrSyncSourceUnavailable
	}
	report.Fetched = len(fetched)

	if len(fetched) == 0 {
		uc.logger.Error("External source returned empty dataset, aborting reconciliation",
			zap.String("run_id", report.RunID))
		return nil, errors.ErrSyncEmptyDataset
	}

	valid := uc.validate(fetched, report)
	if len(valid) == 0 {
		uc.logger.Error("No valid records after validation, aborting reconciliation",
			zap.String("run_id", report.RunID),
			zap.Int("rejected", report.Rejected),
			zap.Int("inactive", report.Inactive))
		return nil, errors.ErrSyncEmptyDataset
	}

	upserted, err := uc.parkingRepo.UpsertMany(ctx, valid)
	if err != nil {
		uc.logger.Error("Failed to upsert parkings", zap.String("run_id", report.RunID), zap.Error(err))
		return nil, err
	}
	report.Created = upserted.Created
	report.Updated = upserted.Updated

	knownIDs := make([]int64, len(valid))
	for i, p := range valid {
		knownIDs[i] = p.ID
	}

	deleted, err := uc.parkingRepo.DeleteMissing(ctx, knownIDs)
	if err != nil {
		uc.logger.Error("Failed to reconcile deletions", zap.String("run_id", report.RunID), zap.Error(err))
		return nil, err
	}
	report.Deleted = deleted

	report.FinishedAt = time.Now()
	report.Duration = report.FinishedAt.Sub(report.StartedAt)

	if err := uc.cacheRepo.SetSyncReport(ctx, report); err != nil {
		uc.logger.Warn("Failed to store sync report", zap.Error(err))
	}

	uc.logger.Info("Parking data synchronization completed",
		zap.String("run_id", report.RunID),
		zap.Int("fetched", report.Fetched),
		zap.Int("created", report.Created),
		zap.Int("updated", report.Updated),
		zap.Int("deleted", report.Deleted),
		zap.Int("rejected", report.Rejected),
		zap.Int("inactive", report.Inactive),
		zap.Duration("duration", report.Duration))

	return report, nil
}

// validate отбрасывает записи с невалидными координатами и неактивные
// парковки; отказ по одной записи не прерывает прогон
func (uc *SyncUseCase) validate(fetched []*domain.Parking, report *domain.SyncReport) []*domain.Parking {
	valid := make([]*domain.Parking, 0, len(fetched))
	for _, p := range fetched {
		if !p.HasValidCenter() {
			report.Rejected++
			uc.logger.Warn("Rejected parking with invalid coordinates",
				zap.Int64("id", p.ID),
				zap.Float64("lat", p.Lat),
				zap.Float64("lon", p.Lon))
			continue
		}
		if !p.IsActive() {
			report.Inactive++
			continue
		}
		valid = append(valid, p)
	}
	return valid
}
