package repository

import (
	"context"

	"github.com/parking-microservice/internal/domain"
)

// UpsertResult - счётчики массового upsert
type UpsertResult struct {
	Created int
	Updated int
}

// ParkingRepository определяет контракт хранилища парковок
type ParkingRepository interface {
	// FindNear возвращает парковки в радиусе radius метров от точки,
	// отсортированные по возрастанию расстояния
	FindNear(ctx context.Context, lat, lon, radius float64, limit int) ([]*domain.Parking, error)

	// FindByName выполняет полнотекстовый поиск по названию (ru/en) с ранжированием
	FindByName(ctx context.Context, query string, limit int) ([]*domain.Parking, error)

	// FindByLitera - точный поиск по литере; литера не гарантированно уникальна,
	// возвращается первое совпадение
	FindByLitera(ctx context.Context, code string) (*domain.Parking, error)

	// GetByID возвращает парковку по идентификатору
	GetByID(ctx context.Context, id int64) (*domain.Parking, error)

	// FindAll возвращает все парковки с ограничением количества
	FindAll(ctx context.Context, limit int) ([]*domain.Parking, error)

	// Count возвращает число записей в хранилище
	Count(ctx context.Context) (int, error)

	// UpsertMany идемпотентно вставляет или заменяет записи по id.
	// Используется только синхронизацией.
	UpsertMany(ctx context.Context, parkings []*domain.Parking) (*UpsertResult, error)

	// DeleteMissing удаляет записи, id которых нет в knownIDs, и возвращает
	// число удалённых. Используется только синхронизацией.
	DeleteMissing(ctx context.Context, knownIDs []int64) (int, error)
}
