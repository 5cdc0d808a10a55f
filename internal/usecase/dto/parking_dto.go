package dto

import (
	"github.com/parking-microservice/internal/domain"
)

// ParkingListResponse - список парковок с количеством
type ParkingListResponse struct {
	Parkings []*domain.Parking `json:"parkings"`
	Total    int               `json:"total"`
}

// NewParkingListResponse строит ответ из результата запроса к хранилищу
func NewParkingListResponse(parkings []*domain.Parking) *ParkingListResponse {
	if parkings == nil {
		parkings = []*domain.Parking{}
	}
	return &ParkingListResponse{
		Parkings: parkings,
		Total:    len(parkings),
	}
}
