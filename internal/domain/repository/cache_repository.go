package repository

import (
	"context"
	"time"

	"github.com/parking-microservice/internal/domain"
)

// CacheRepository определяет методы для работы с кешем
type CacheRepository interface {
	// Get получает значение из кеша по ключу
	Get(ctx context.Context, key string) ([]byte, error)

	// Set сохраняет значение в кеше с TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete удаляет значение из кеша
	Delete(ctx context.Context, key string) error

	// Exists проверяет существование ключа
	Exists(ctx context.Context, key string) (bool, error)

	// GetSyncReport получает отчёт последней синхронизации
	GetSyncReport(ctx context.Context) (*domain.SyncReport, error)

	// SetSyncReport сохраняет отчёт последней синхронизации
	SetSyncReport(ctx context.Context, report *domain.SyncReport) error
}
