package mosdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/parking-microservice/internal/config"
	"github.com/parking-microservice/internal/domain"
	"github.com/parking-microservice/internal/domain/repository"
	"go.uber.org/zap"
)

type client struct {
	httpClient *http.Client
	url        string
	logger     *zap.Logger
}

// NewClient создает клиент портала открытых данных Москвы
func NewClient(cfg *config.DataSourceConfig, logger *zap.Logger) repository.ParkingSource {
	return &client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		url:    cfg.URL,
		logger: logger,
	}
}

// rawParking - запись в формате источника; всё, что не промоделировано,
// остаётся в сыром JSON
type rawParking struct {
	ID     int64             `json:"_id"`
	Name   domain.LangString `json:"name"`
	Litera string            `json:"litera"`
	Center *rawGeometry      `json:"center"`
}

type rawGeometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// envelope - обёртка нового формата API: {"total": N, "parkings": [...]}
type envelope struct {
	Total    int               `json:"total"`
	Parkings []json.RawMessage `json:"parkings"`
}

// FetchAll загружает полный набор данных одним запросом. Записи с нечитаемой
// структурой пропускаются и логируются, ошибка запроса или разбора ответа
// целиком - фатальна для вызова.
func (c *client) FetchAll(ctx context.Context) ([]*domain.Parking, error) {
	c.logger.Info("Fetching parking data", zap.String("url", c.url))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		c.logger.Error("Failed to create request", zap.Error(err))
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to execute request", zap.Error(err))
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		c.logger.Error("Data source returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, fmt.Errorf("data source error: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error("Failed to read response body", zap.Error(err))
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	items, err := extractItems(body)
	if err != nil {
		c.logger.Error("Failed to decode response", zap.Error(err))
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	start := time.Now()
	parkings := c.parseItems(items)

	c.logger.Info("Parking data fetched",
		zap.Int("total", len(items)),
		zap.Int("parsed", len(parkings)),
		zap.Duration("parse_time", time.Since(start)))

	return parkings, nil
}

// extractItems поддерживает оба формата ответа: объект с полем parkings
// и простой массив (старый формат выгрузки)
func extractItems(body []byte) ([]json.RawMessage, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && env.Parkings != nil {
		return env.Parkings, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *client) parseItems(items []json.RawMessage) []*domain.Parking {
	parkings := make([]*domain.Parking, 0, len(items))
	for _, item := range items {
		p, err := parseParking(item)
		if err != nil {
			c.logger.Warn("Failed to parse parking record", zap.Error(err))
			continue
		}
		parkings = append(parkings, p)
	}
	return parkings
}

func parseParking(item json.RawMessage) (*domain.Parking, error) {
	var raw rawParking
	if err := json.Unmarshal(item, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal record: %w", err)
	}

	if raw.ID == 0 {
		return nil, fmt.Errorf("record has no _id")
	}
	if raw.Center == nil || len(raw.Center.Coordinates) != 2 {
		return nil, fmt.Errorf("record %d has no center point", raw.ID)
	}

	// GeoJSON: [долгота, широта]
	return &domain.Parking{
		ID:     raw.ID,
		Name:   raw.Name,
		Litera: raw.Litera,
		Lon:    raw.Center.Coordinates[0],
		Lat:    raw.Center.Coordinates[1],
		Attrs:  json.RawMessage(item),
	}, nil
}
