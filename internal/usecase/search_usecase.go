package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/parking-microservice/internal/domain"
	"github.com/parking-microservice/internal/domain/repository"
	"github.com/parking-microservice/internal/pkg/errors"
	"github.com/parking-microservice/internal/pkg/utils"
	"github.com/parking-microservice/internal/usecase/dto"
)

// SearchUseCase - use case для поиска парковок
type SearchUseCase struct {
	parkingRepo  repository.ParkingRepository
	cacheRepo    repository.CacheRepository
	logger       *zap.Logger
	cacheTTL     time.Duration
	defaultLimit int
}

// NewSearchUseCase - создание нового SearchUseCase
func NewSearchUseCase(
	parkingRepo repository.ParkingRepository,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
	cacheTTL time.Duration,
	defaultLimit int,
) *SearchUseCase {
	return &SearchUseCase{
		parkingRepo:  parkingRepo,
		cacheRepo:    cacheRepo,
		logger:       logger,
		cacheTTL:     cacheTTL,
		defaultLimit: defaultLimit,
	}
}

// SearchByCoordinates - поиск парковок в радиусе от точки,
// результаты отсортированы по возрастанию расстояния
func (uc *SearchUseCase) SearchByCoordinates(
	ctx context.Context,
	req dto.CoordinatesSearchRequest,
) (*dto.ParkingListResponse, error) {
	if !utils.ValidateCoordinates(req.Lat, req.Lon) {
		return nil, errors.ErrInvalidCoordinates
	}
	if !utils.ValidateRadius(req.Distance) {
		return nil, errors.ErrInvalidRadius
	}
	if req.Limit == 0 {
		req.Limit = uc.defaultLimit
	}
	if req.Limit < 0 {
		return nil, errors.ErrInvalidLimit
	}

	// Геопоиск кешируется: парковочные данные меняются редко
	cacheKey := fmt.Sprintf("search:near:%.5f:%.5f:%.0f:%d", req.Lat, req.Lon, req.Distance, req.Limit)
	if cached, err := uc.cacheRepo.Get(ctx, cacheKey); err == nil && cached != nil {
		var resp dto.ParkingListResponse
		if err := json.Unmarshal(cached, &resp); err == nil {
			return &resp, nil
		}
	}

	parkings, err := uc.parkingRepo.FindNear(ctx, req.Lat, req.Lon, req.Distance, req.Limit)
	if err != nil {
		uc.logger.Error("Failed to find parkings near point", zap.Error(err))
		return nil, err
	}

	resp := dto.NewParkingListResponse(parkings)

	if data, err := json.Marshal(resp); err == nil {
		if err := uc.cacheRepo.Set(ctx, cacheKey, data, uc.cacheTTL); err != nil {
			uc.logger.Warn("Failed to cache search result", zap.Error(err))
		}
	}

	return resp, nil
}

// SearchByName - полнотекстовый поиск по названию и/или точный поиск по литере.
// При заданной литере поиск сужается до первого точного совпадения.
func (uc *SearchUseCase) SearchByName(
	ctx context.Context,
	req dto.NameSearchRequest,
) (*dto.ParkingListResponse, error) {
	if req.Name == "" && req.Number == "" {
		return nil, errors.ErrEmptyQuery
	}
	if req.Limit == 0 {
		req.Limit = uc.defaultLimit
	}
	if req.Limit < 0 {
		return nil, errors.ErrInvalidLimit
	}

	if req.Number != "" {
		return uc.searchByLitera(ctx, req)
	}

	parkings, err := uc.parkingRepo.FindByName(ctx, req.Name, req.Limit)
	if err != nil {
		uc.logger.Error("Failed to search parkings by name", zap.String("name", req.Name), zap.Error(err))
		return nil, err
	}

	return dto.NewParkingListResponse(parkings), nil
}

// searchByLitera обрабатывает поиск с заданной литерой; комбинация с name
// дополнительно проверяет совпадение названия
func (uc *SearchUseCase) searchByLitera(
	ctx context.Context,
	req dto.NameSearchRequest,
) (*dto.ParkingListResponse, error) {
	parking, err := uc.parkingRepo.FindByLitera(ctx, req.Number)
	if err == errors.ErrParkingNotFound {
		return dto.NewParkingListResponse(nil), nil
	}
	if err != nil {
		uc.logger.Error("Failed to search parking by litera", zap.String("litera", req.Number), zap.Error(err))
		return nil, err
	}

	if req.Name != "" && !matchesName(parking, req.Name) {
		return dto.NewParkingListResponse(nil), nil
	}

	return dto.NewParkingListResponse([]*domain.Parking{parking}), nil
}

// GetByID - получение парковки по идентификатору
func (uc *SearchUseCase) GetByID(ctx context.Context, id int64) (*domain.Parking, error) {
	parking, err := uc.parkingRepo.GetByID(ctx, id)
	if err != nil {
		if err != errors.ErrParkingNotFound {
			uc.logger.Error("Failed to get parking by ID", zap.Int64("id", id), zap.Error(err))
		}
		return nil, err
	}
	return parking, nil
}

// GetAll - список всех парковок с ограничением количества
func (uc *SearchUseCase) GetAll(ctx context.Context, req dto.ListRequest) (*dto.ParkingListResponse, error) {
	if req.Limit == 0 {
		req.Limit = uc.defaultLimit
	}
	if req.Limit < 0 {
		return nil, errors.ErrInvalidLimit
	}

	parkings, err := uc.parkingRepo.FindAll(ctx, req.Limit)
	if err != nil {
		uc.logger.Error("Failed to list parkings", zap.Error(err))
		return nil, err
	}

	return dto.NewParkingListResponse(parkings), nil
}

func matchesName(p *domain.Parking, query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(p.Name.RU), q) ||
		strings.Contains(strings.ToLower(p.Name.EN), q)
}
