package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/parking-microservice/internal/domain"
	"github.com/parking-microservice/internal/domain/repository"
	"github.com/parking-microservice/internal/pkg/errors"
	"go.uber.org/zap"
)

type parkingRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewParkingRepository(db *DB) repository.ParkingRepository {
	return &parkingRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *parkingRepository) FindNear(
	ctx context.Context,
	lat, lon, radius float64,
	limit int,
) ([]*domain.Parking, error) {
	query := `
		WITH point AS (
			SELECT ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography AS geom
		)
		SELECT
			p.id, p.name_ru, p.name_en, p.litera, p.lat, p.lon, p.attrs,
			ST_Distance(p.geom::geography, point.geom) AS distance
		FROM parkings p, point
		WHERE ST_DWithin(p.geom::geography, point.geom, $3)
		ORDER BY distance
		LIMIT $4
	`

	rows, err := r.db.QueryContext(ctx, query, lon, lat, radius, limit)
	if err != nil {
		r.logger.Error("Failed to find parkings near point",
			zap.Float64("lat", lat),
			zap.Float64("lon", lon),
			zap.Error(err),
		)
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	var parkings []*domain.Parking
	for rows.Next() {
		p, err := scanParkingWithDistance(rows)
		if err != nil {
			r.logger.Error("Failed to scan parking", zap.Error(err))
			continue
		}
		parkings = append(parkings, p)
	}

	return parkings, nil
}

func (r *parkingRepository) FindByName(
	ctx context.Context,
	query string,
	limit int,
) ([]*domain.Parking, error) {
	sqlQuery := `
		SELECT id, name_ru, name_en, litera, lat, lon, attrs
		FROM parkings
		WHERE search_vector @@ plainto_tsquery('simple', $1)
		ORDER BY ts_rank(search_vector, plainto_tsquery('simple', $1)) DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, sqlQuery, query, limit)
	if err != nil {
		r.logger.Error("Failed to search parkings by name", zap.String("query", query), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	var parkings []*domain.Parking
	for rows.Next() {
		p, err := scanParking(rows)
		if err != nil {
			continue
		}
		parkings = append(parkings, p)
	}

	return parkings, nil
}

func (r *parkingRepository) FindByLitera(ctx context.Context, code string) (*domain.Parking, error) {
	// Литера не гарантированно уникальна - берём первое совпадение
	query := `
		SELECT id, name_ru, name_en, litera, lat, lon, attrs
		FROM parkings
		WHERE litera = $1
		ORDER BY id
		LIMIT 1
	`

	row := r.db.QueryRowContext(ctx, query, code)
	p, err := scanParkingRow(row)
	if err == sql.ErrNoRows {
		return nil, errors.ErrParkingNotFound
	}
	if err != nil {
		r.logger.Error("Failed to find parking by litera", zap.String("litera", code), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return p, nil
}

func (r *parkingRepository) GetByID(ctx context.Context, id int64) (*domain.Parking, error) {
	query := `
		SELECT id, name_ru, name_en, litera, lat, lon, attrs
		FROM parkings
		WHERE id = $1
	`

	row := r.db.QueryRowContext(ctx, query, id)
	p, err := scanParkingRow(row)
	if err == sql.ErrNoRows {
		return nil, errors.ErrParkingNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get parking by ID", zap.Int64("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return p, nil
}

func (r *parkingRepository) FindAll(ctx context.Context, limit int) ([]*domain.Parking, error) {
	query := `
		SELECT id, name_ru, name_en, litera, lat, lon, attrs
		FROM parkings
		ORDER BY id
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		r.logger.Error("Failed to list parkings", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	var parkings []*domain.Parking
	for rows.Next() {
		p, err := scanParking(rows)
		if err != nil {
			continue
		}
		parkings = append(parkings, p)
	}

	return parkings, nil
}

func (r *parkingRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM parkings`); err != nil {
		r.logger.Error("Failed to count parkings", zap.Error(err))
		return 0, errors.ErrDatabaseError
	}
	return count, nil
}

func (r *parkingRepository) UpsertMany(
	ctx context.Context,
	parkings []*domain.Parking,
) (*repository.UpsertResult, error) {
	if len(parkings) == 0 {
		return &repository.UpsertResult{}, nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to begin transaction", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer tx.Rollback()

	ids := make([]int64, len(parkings))
	for i, p := range parkings {
		ids[i] = p.ID
	}

	// Считаем существующие записи до upsert, чтобы различить created/updated
	var existing int
	if err := tx.GetContext(ctx, &existing,
		`SELECT COUNT(*) FROM parkings WHERE id = ANY($1)`, pq.Array(ids)); err != nil {
		r.logger.Error("Failed to count existing parkings", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	query := `
		INSERT INTO parkings (id, name_ru, name_en, litera, lat, lon, geom, attrs, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, ST_SetSRID(ST_MakePoint($6, $5), 4326), $7, now())
		ON CONFLICT (id) DO UPDATE SET
			name_ru = EXCLUDED.name_ru,
			name_en = EXCLUDED.name_en,
			litera = EXCLUDED.litera,
			lat = EXCLUDED.lat,
			lon = EXCLUDED.lon,
			geom = EXCLUDED.geom,
			attrs = EXCLUDED.attrs,
			updated_at = now()
	`

	stmt, err := tx.PreparexContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to prepare upsert statement", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer stmt.Close()

	for _, p := range parkings {
		var attrs interface{}
		if len(p.Attrs) > 0 {
			attrs = []byte(p.Attrs)
		}
		if _, err := stmt.ExecContext(ctx, p.ID, p.Name.RU, p.Name.EN, p.Litera, p.Lat, p.Lon, attrs); err != nil {
			r.logger.Error("Failed to upsert parking", zap.Int64("id", p.ID), zap.Error(err))
			return nil, errors.ErrDatabaseError
		}
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Failed to commit upsert transaction", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return &repository.UpsertResult{
		Created: len(parkings) - existing,
		Updated: existing,
	}, nil
}

func (r *parkingRepository) DeleteMissing(ctx context.Context, knownIDs []int64) (int, error) {
	if len(knownIDs) == 0 {
		// Пустой набор известных id означает "удалить всё" - такой вызов
		// не должен приходить из синхронизации, защищаемся от него здесь
		return 0, errors.ErrSyncEmptyDataset
	}

	res, err := r.db.ExecContext(ctx,
		`DELETE FROM parkings WHERE NOT (id = ANY($1))`, pq.Array(knownIDs))
	if err != nil {
		r.logger.Error("Failed to delete missing parkings", zap.Error(err))
		return 0, errors.ErrDatabaseError
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, errors.ErrDatabaseError
	}

	return int(deleted), nil
}

func scanParking(rows *sql.Rows) (*domain.Parking, error) {
	var p domain.Parking
	var attrs []byte
	err := rows.Scan(&p.ID, &p.Name.RU, &p.Name.EN, &p.Litera, &p.Lat, &p.Lon, &attrs)
	if err != nil {
		return nil, err
	}
	if len(attrs) > 0 {
		p.Attrs = json.RawMessage(attrs)
	}
	return &p, nil
}

func scanParkingWithDistance(rows *sql.Rows) (*domain.Parking, error) {
	var p domain.Parking
	var attrs []byte
	var distance float64
	err := rows.Scan(&p.ID, &p.Name.RU, &p.Name.EN, &p.Litera, &p.Lat, &p.Lon, &attrs, &distance)
	if err != nil {
		return nil, err
	}
	if len(attrs) > 0 {
		p.Attrs = json.RawMessage(attrs)
	}
	p.Distance = &distance
	return &p, nil
}

func scanParkingRow(row *sql.Row) (*domain.Parking, error) {
	var p domain.Parking
	var attrs []byte
	err := row.Scan(&p.ID, &p.Name.RU, &p.Name.EN, &p.Litera, &p.Lat, &p.Lon, &attrs)
	if err != nil {
		return nil, err
	}
	if len(attrs) > 0 {
		p.Attrs = json.RawMessage(attrs)
	}
	return &p, nil
}
