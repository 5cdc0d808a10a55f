package repository

import (
	"context"

	"github.com/parking-microservice/internal/domain"
)

// ParkingSource - внешний источник данных о парковках (портал открытых данных)
type ParkingSource interface {
	// FetchAll загружает полный актуальный набор данных одним запросом.
	// Записи с нечитаемой структурой пропускаются на уровне клиента.
	FetchAll(ctx context.Context) ([]*domain.Parking, error)
}
