package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/parking-microservice/internal/pkg/errors"
	"github.com/parking-microservice/internal/pkg/utils"
	"github.com/parking-microservice/internal/pkg/validator"
	"github.com/parking-microservice/internal/usecase"
	"github.com/parking-microservice/internal/usecase/dto"
	"go.uber.org/zap"
)

// ParkingHandler - обработчик поисковых запросов по парковкам
type ParkingHandler struct {
	searchUC *usecase.SearchUseCase
	logger   *zap.Logger
}

// NewParkingHandler - создание нового ParkingHandler
func NewParkingHandler(searchUC *usecase.SearchUseCase, logger *zap.Logger) *ParkingHandler {
	return &ParkingHandler{
		searchUC: searchUC,
		logger:   logger,
	}
}

// SearchByCoordinates godoc
// @Summary Поиск парковок по координатам
// @Description Возвращает парковки в заданном радиусе от точки, отсортированные по расстоянию
// @Tags Parking
// @Accept json
// @Produce json
// @Param lat query number true "Широта"
// @Param long query number true "Долгота"
// @Param distance query number true "Радиус поиска в метрах"
// @Param limit query int false "Максимальное количество результатов" default(20)
// @Success 200 {object} utils.SuccessResponse{data=dto.ParkingListResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/mos_parking/parking [get]
func (h *ParkingHandler) SearchByCoordinates(c *fiber.Ctx) error {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidCoordinates)
	}
	long, err := strconv.ParseFloat(c.Query("long"), 64)
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidCoordinates)
	}
	distance, err := strconv.ParseFloat(c.Query("distance"), 64)
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRadius)
	}

	req := dto.CoordinatesSearchRequest{
		Lat:      lat,
		Lon:      long,
		Distance: distance,
		Limit:    c.QueryInt("limit", 0),
	}

	// Валидация
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"validation": err.Error(),
		}))
	}

	result, err := h.searchUC.SearchByCoordinates(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: result.Total,
		Limit: req.Limit,
	})
}

// SearchByName godoc
// @Summary Поиск парковок по названию
// @Description Полнотекстовый поиск по названию (ru/en), опционально - точный поиск по литере
// @Tags Parking
// @Accept json
// @Produce json
// @Param name query string false "Название парковки"
// @Param number query string false "Литера парковки"
// @Param limit query int false "Максимальное количество результатов" default(20)
// @Success 200 {object} utils.SuccessResponse{data=dto.ParkingListResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/mos_parking/parking/search [get]
func (h *ParkingHandler) SearchByName(c *fiber.Ctx) error {
	req := dto.NameSearchRequest{
		Name:   c.Query("name"),
		Number: c.Query("number"),
		Limit:  c.QueryInt("limit", 0),
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"validation": err.Error(),
		}))
	}

	result, err := h.searchUC.SearchByName(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: result.Total,
		Limit: req.Limit,
	})
}

// GetAll godoc
// @Summary Список всех парковок
// @Tags Parking
// @Produce json
// @Param limit query int false "Максимальное количество результатов" default(20)
// @Success 200 {object} utils.SuccessResponse{data=dto.ParkingListResponse}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/mos_parking/parking/all [get]
func (h *ParkingHandler) GetAll(c *fiber.Ctx) error {
	req := dto.ListRequest{
		Limit: c.QueryInt("limit", 0),
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"validation": err.Error(),
		}))
	}

	result, err := h.searchUC.GetAll(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: result.Total,
		Limit: req.Limit,
	})
}

// GetByID godoc
// @Summary Получение парковки по ID
// @Tags Parking
// @Produce json
// @Param id path int true "ID парковки"
// @Success 200 {object} utils.SuccessResponse{data=domain.Parking}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/mos_parking/parking/{id} [get]
func (h *ParkingHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"id": c.Params("id"),
		}))
	}

	parking, err := h.searchUC.GetByID(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, parking, nil)
}
