package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/parking-microservice/internal/domain"
	"github.com/parking-microservice/internal/domain/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const syncReportKey = "sync:last_report"

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return &cacheRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.client.Set(ctx, key, value, ttl).Err()
	if err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	err := r.client.Del(ctx, key).Err()
	if err != nil {
		r.logger.Error("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}

	r.logger.Debug("Cache deleted", zap.String("key", key))
	return nil
}

func (r *cacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	val, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		r.logger.Error("Failed to check cache existence", zap.String("key", key), zap.Error(err))
		return false, fmt.Errorf("cache exists error: %w", err)
	}

	return val > 0, nil
}

// GetSyncReport получает отчёт последней синхронизации из кеша
func (r *cacheRepository) GetSyncReport(ctx context.Context) (*domain.SyncReport, error) {
	data, err := r.Get(ctx, syncReportKey)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil // Cache miss
	}

	var report domain.SyncReport
	if err := json.Unmarshal(data, &report); err != nil {
		r.logger.Error("Failed to unmarshal sync report from cache", zap.Error(err))
		return nil, fmt.Errorf("unmarshal sync report: %w", err)
	}

	return &report, nil
}

// SetSyncReport сохраняет отчёт последней синхронизации. Отчёт живёт до
// следующего прогона, TTL не ставим.
func (r *cacheRepository) SetSyncReport(ctx context.Context, report *domain.SyncReport) error {
	data, err := json.Marshal(report)
	if err != nil {
		r.logger.Error("Failed to marshal sync report", zap.Error(err))
		return fmt.Errorf("marshal sync report: %w", err)
	}

	return r.Set(ctx, syncReportKey, data, 0)
}
