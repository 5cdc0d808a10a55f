package mosdata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/parking-microservice/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const envelopePayload = `{
	"total": 3,
	"parkings": [
		{"_id": 42, "name": {"ru": "Парковка у метро", "en": "Parking near metro"}, "litera": "A-12",
		 "center": {"type": "Point", "coordinates": [37.62, 55.75]},
		 "spaces": {"total": 50}},
		{"_id": 43, "name": {"ru": "Парковка на Тверской", "en": "Tverskaya parking"}, "litera": "B-7",
		 "center": {"type": "Point", "coordinates": [37.6057, 55.7649]}},
		{"_id": 44, "name": {"ru": "Без геометрии", "en": "No geometry"}}
	]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger := zap.NewNop()
	cfg := &config.DataSourceConfig{
		URL:     server.URL,
		Timeout: 5 * time.Second,
	}
	return NewClient(cfg, logger).(*client)
}

func TestClient_FetchAll(t *testing.T) {
	t.Run("envelope format", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(envelopePayload))
		})

		parkings, err := c.FetchAll(context.Background())
		require.NoError(t, err)

		// Запись без центра пропускается на уровне клиента
		require.Len(t, parkings, 2)

		p := parkings[0]
		assert.Equal(t, int64(42), p.ID)
		assert.Equal(t, "Парковка у метро", p.Name.RU)
		assert.Equal(t, "Parking near metro", p.Name.EN)
		assert.Equal(t, "A-12", p.Litera)
		assert.InDelta(t, 55.75, p.Lat, 1e-9)
		assert.InDelta(t, 37.62, p.Lon, 1e-9)
		assert.JSONEq(t,
			`{"_id": 42, "name": {"ru": "Парковка у метро", "en": "Parking near metro"}, "litera": "A-12",
			  "center": {"type": "Point", "coordinates": [37.62, 55.75]}, "spaces": {"total": 50}}`,
			string(p.Attrs))
	})

	t.Run("plain array format", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[{"_id": 7, "name": {"ru": "Стоянка"}, "center": {"type": "Point", "coordinates": [37.1, 55.1]}}]`))
		})

		parkings, err := c.FetchAll(context.Background())
		require.NoError(t, err)
		require.Len(t, parkings, 1)
		assert.Equal(t, int64(7), parkings[0].ID)
	})

	t.Run("malformed record is skipped", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[{"_id": "not-a-number"}, {"_id": 8, "center": {"type": "Point", "coordinates": [37.2, 55.2]}}]`))
		})

		parkings, err := c.FetchAll(context.Background())
		require.NoError(t, err)
		require.Len(t, parkings, 1)
		assert.Equal(t, int64(8), parkings[0].ID)
	})

	t.Run("empty dataset", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"total": 0, "parkings": []}`))
		})

		parkings, err := c.FetchAll(context.Background())
		require.NoError(t, err)
		assert.Empty(t, parkings)
	})

	t.Run("server error", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		_, err := c.FetchAll(context.Background())
		assert.Error(t, err)
	})

	t.Run("invalid payload", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not json`))
		})

		_, err := c.FetchAll(context.Background())
		assert.Error(t, err)
	})

	t.Run("context cancellation", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
			w.Write([]byte(`[]`))
		})

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		_, err := c.FetchAll(ctx)
		assert.Error(t, err)
	})
}
