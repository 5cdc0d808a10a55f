package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineDistance(t *testing.T) {
	t.Run("zero distance for identical points", func(t *testing.T) {
		d := HaversineDistance(55.7558, 37.6176, 55.7558, 37.6176)
		assert.InDelta(t, 0.0, d, 0.001)
	})

	t.Run("red square to bolshoi theatre", func(t *testing.T) {
		// ~700 метров по прямой
		d := HaversineDistance(55.7539, 37.6208, 55.7601, 37.6186)
		assert.InDelta(t, 700.0, d, 50.0)
	})

	t.Run("symmetric", func(t *testing.T) {
		d1 := HaversineDistance(55.75, 37.62, 55.76, 37.63)
		d2 := HaversineDistance(55.76, 37.63, 55.75, 37.62)
		assert.InDelta(t, d1, d2, 0.0001)
	})
}

func TestValidateCoordinates(t *testing.T) {
	assert.True(t, ValidateCoordinates(55.7558, 37.6176))
	assert.True(t, ValidateCoordinates(-90, 180))
	assert.False(t, ValidateCoordinates(90.0001, 0))
	assert.False(t, ValidateCoordinates(0, -180.0001))
}

func TestValidateRadius(t *testing.T) {
	assert.True(t, ValidateRadius(1500))
	assert.True(t, ValidateRadius(50000))
	assert.False(t, ValidateRadius(0))
	assert.False(t, ValidateRadius(-100))
	assert.False(t, ValidateRadius(50001))
}
