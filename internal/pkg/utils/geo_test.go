package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripmap-microservice/internal/domain"
	"github.com/tripmap-microservice/internal/pkg/utils"
)

func TestValidateCoordinates(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
		expected bool
	}{
		{"seoul", 37.5665, 126.978, true},
		{"extremes", 90, 180, true},
		{"negative extremes", -90, -180, true},
		{"lat too big", 90.1, 0, false},
		{"lon too big", 0, 180.1, false},
		{"lat too small", -91, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, utils.ValidateCoordinates(tt.lat, tt.lon))
		})
	}
}

func TestFitViewport_NoPoints(t *testing.T) {
	assert.Nil(t, utils.FitViewport(nil))
	assert.Nil(t, utils.FitViewport([]domain.Coordinate{}))
}

func TestFitViewport_SinglePoint(t *testing.T) {
	point := domain.Coordinate{Lat: 37.5665, Lon: 126.978}

	vp := utils.FitViewport([]domain.Coordinate{point})

	require.NotNil(t, vp)
	assert.Equal(t, domain.ViewportCenter, vp.Kind)
	assert.Equal(t, point, vp.Center)
	assert.Equal(t, domain.ZoomClose, vp.ZoomLevel)
	assert.Nil(t, vp.Bounds)
}

func TestFitViewport_MultiplePoints(t *testing.T) {
	coords := []domain.Coordinate{
		{Lat: 37.5665, Lon: 126.978},
		{Lat: 35.1796, Lon: 129.0756},
		{Lat: 33.4996, Lon: 126.5312},
	}

	vp := utils.FitViewport(coords)

	require.NotNil(t, vp)
	assert.Equal(t, domain.ViewportFit, vp.Kind)
	require.NotNil(t, vp.Bounds)
	assert.Equal(t, 33.4996, vp.Bounds.MinLat)
	assert.Equal(t, 37.5665, vp.Bounds.MaxLat)
	assert.Equal(t, 126.5312, vp.Bounds.MinLon)
	assert.Equal(t, 129.0756, vp.Bounds.MaxLon)
	assert.Equal(t, domain.BoundsPadding, vp.Padding)

	// Center is the geometric middle of the box
	assert.InDelta(t, (33.4996+37.5665)/2, vp.Center.Lat, 1e-9)
	assert.InDelta(t, (126.5312+129.0756)/2, vp.Center.Lon, 1e-9)
}

func TestCoordinateValid(t *testing.T) {
	assert.True(t, domain.Coordinate{Lat: 37.5, Lon: 127.0}.Valid())

	// (0,0) means "not set" and is never rendered
	assert.False(t, domain.Coordinate{}.Valid())
	assert.False(t, domain.Coordinate{Lat: 91, Lon: 0}.Valid())
	assert.False(t, domain.Coordinate{Lat: 0, Lon: 181}.Valid())

	// A zero on one axis only is a real point
	assert.True(t, domain.Coordinate{Lat: 0, Lon: 127.0}.Valid())
}
