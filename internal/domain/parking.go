package domain

import (
	"encoding/json"
	"strings"
)

// LangString - строка на двух языках (ru/en), как её отдаёт портал открытых данных
type LangString struct {
	RU string `json:"ru,omitempty"`
	EN string `json:"en,omitempty"`
}

// IsEmpty проверяет, что строка не заполнена ни на одном языке
func (s LangString) IsEmpty() bool {
	return s.RU == "" && s.EN == ""
}

// Parking представляет парковку из реестра городских парковок Москвы
type Parking struct {
	ID     int64      `json:"id" db:"id"`
	Name   LangString `json:"name"`
	Litera string     `json:"litera,omitempty" db:"litera"`
	Lat    float64    `json:"lat" db:"lat"`
	Lon    float64    `json:"lon" db:"lon"`

	// Attrs - непромоделированные поля источника (адрес, места, зона, метро и т.д.),
	// сохраняются как есть
	Attrs json.RawMessage `json:"attrs,omitempty" db:"attrs"`

	// Distance - расстояние до точки запроса в метрах, заполняется только при геопоиске
	Distance *float64 `json:"distance,omitempty" db:"distance"`
}

// HasValidCenter проверяет, что координаты центра парковки лежат в допустимых диапазонах
func (p *Parking) HasValidCenter() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lon >= -180 && p.Lon <= 180
}

// IsActive проверяет, что парковка не выведена из эксплуатации.
// Источник помечает отключённые парковки текстом "disabled parking" в английском названии.
func (p *Parking) IsActive() bool {
	return !strings.Contains(strings.ToLower(p.Name.EN), "disabled parking")
}

// IsTextSearchable - запись попадает в полнотекстовый индекс только если
// заполнено название хотя бы на одном языке
func (p *Parking) IsTextSearchable() bool {
	return !p.Name.IsEmpty()
}
