package sync

import (
	"context"
	"time"

	"github.com/parking-microservice/internal/pkg/errors"
	"github.com/parking-microservice/internal/usecase"
	"github.com/parking-microservice/internal/worker"
	"go.uber.org/zap"
)

// Worker периодически синхронизирует данные о парковках с внешним источником.
// Первый прогон выполняется сразу после старта, далее по интервалу.
type Worker struct {
	*worker.BaseWorker
	syncUC   *usecase.SyncUseCase
	interval time.Duration
}

// NewWorker создает новый воркер синхронизации
func NewWorker(
	syncUC *usecase.SyncUseCase,
	interval time.Duration,
	logger *zap.Logger,
) *Worker {
	return &Worker{
		BaseWorker: worker.NewBaseWorker("parking-sync", logger),
		syncUC:     syncUC,
		interval:   interval,
	}
}

// Start запускает воркер
func (w *Worker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting parking sync worker",
		zap.Duration("interval", w.interval))

	w.runOnce(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		case <-ticker.C:
			w.runOnce(ctx)
		}
	}
}

// runOnce выполняет один прогон синхронизации; отказ прогона не фатален
// для воркера - следующая попытка состоится по расписанию
func (w *Worker) runOnce(ctx context.Context) {
	logger := w.Logger()

	report, err := w.syncUC.Synchronize(ctx)
	if err != nil {
		// Ручной запуск через API мог занять слот - это не ошибка воркера
		if err == errors.ErrSyncInProgress {
			logger.Info("Sync already in progress, skipping scheduled run")
			return
		}
		logger.Error("Scheduled sync run failed", zap.Error(err))
		return
	}

	logger.Info("Scheduled sync run completed",
		zap.String("run_id", report.RunID),
		zap.Int("fetched", report.Fetched),
		zap.Int("deleted", report.Deleted))
}
