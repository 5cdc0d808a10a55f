package dto

// CoordinatesSearchRequest - запрос поиска парковок по координатам
type CoordinatesSearchRequest struct {
	Lat      float64 `json:"lat" validate:"min=-90,max=90"`
	Lon      float64 `json:"long" validate:"min=-180,max=180"`
	Distance float64 `json:"distance" validate:"required,gt=0,max=50000"` // meters
	Limit    int     `json:"limit" validate:"omitempty,min=1,max=100"`
}

// NameSearchRequest - запрос поиска парковок по названию и/или литере
type NameSearchRequest struct {
	Name   string `json:"name" validate:"omitempty,min=2"`
	Number string `json:"number" validate:"omitempty,min=1"`
	Limit  int    `json:"limit" validate:"omitempty,min=1,max=100"`
}

// ListRequest - запрос списка всех парковок
type ListRequest struct {
	Limit int `json:"limit" validate:"omitempty,min=1,max=1000"`
}
