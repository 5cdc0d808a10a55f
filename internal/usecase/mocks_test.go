package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/parking-microservice/internal/domain"
	"github.com/parking-microservice/internal/domain/repository"
)

// MockParkingRepository is a mock of ParkingRepository
type MockParkingRepository struct {
	mock.Mock
}

func (m *MockParkingRepository) FindNear(ctx context.Context, lat, lon, radius float64, limit int) ([]*domain.Parking, error) {
	args := m.Called(ctx, lat, lon, radius, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Parking), args.Error(1)
}

func (m *MockParkingRepository) FindByName(ctx context.Context, query string, limit int) ([]*domain.Parking, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Parking), args.Error(1)
}

func (m *MockParkingRepository) FindByLitera(ctx context.Context, code string) (*domain.Parking, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Parking), args.Error(1)
}

func (m *MockParkingRepository) GetByID(ctx context.Context, id int64) (*domain.Parking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Parking), args.Error(1)
}

func (m *MockParkingRepository) FindAll(ctx context.Context, limit int) ([]*domain.Parking, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Parking), args.Error(1)
}

func (m *MockParkingRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockParkingRepository) UpsertMany(ctx context.Context, parkings []*domain.Parking) (*repository.UpsertResult, error) {
	args := m.Called(ctx, parkings)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.UpsertResult), args.Error(1)
}

func (m *MockParkingRepository) DeleteMissing(ctx context.Context, knownIDs []int64) (int, error) {
	args := m.Called(ctx, knownIDs)
	return args.Int(0), args.Error(1)
}

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheRepository) GetSyncReport(ctx context.Context) (*domain.SyncReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SyncReport), args.Error(1)
}

func (m *MockCacheRepository) SetSyncReport(ctx context.Context, report *domain.SyncReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

// MockParkingSource is a mock of ParkingSource
type MockParkingSource struct {
	mock.Mock
}

func (m *MockParkingSource) FetchAll(ctx context.Context) ([]*domain.Parking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Parking), args.Error(1)
}
