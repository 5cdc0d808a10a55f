package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/parking-microservice/internal/pkg/utils"
	"github.com/parking-microservice/internal/usecase"
	"go.uber.org/zap"
)

// SyncHandler - обработчик ручного запуска синхронизации
type SyncHandler struct {
	syncUC *usecase.SyncUseCase
	logger *zap.Logger
}

// NewSyncHandler - создание нового SyncHandler
func NewSyncHandler(syncUC *usecase.SyncUseCase, logger *zap.Logger) *SyncHandler {
	return &SyncHandler{
		syncUC: syncUC,
		logger: logger,
	}
}

// Trigger godoc
// @Summary Принудительная синхронизация данных о парковках
// @Description Запускает синхронизацию с внешним источником; выполняется синхронно и возвращает отчёт
// @Tags Sync
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=domain.SyncReport}
// @Failure 409 {object} utils.ErrorResponse "Синхронизация уже выполняется"
// @Failure 502 {object} utils.ErrorResponse "Источник данных недоступен"
// @Failure 504 {object} utils.ErrorResponse "Таймаут источника данных"
// @Router /api/v1/mos_parking/sync [post]
func (h *SyncHandler) Trigger(c *fiber.Ctx) error {
	report, err := h.syncUC.Synchronize(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, report, nil)
}

// Status godoc
// @Summary Состояние синхронизации
// @Description Возвращает флаг выполняющейся синхронизации и отчёт последнего прогона
// @Tags Sync
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=domain.SyncStatus}
// @Router /api/v1/mos_parking/sync/status [get]
func (h *SyncHandler) Status(c *fiber.Ctx) error {
	status, err := h.syncUC.Status(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, status, nil)
}
