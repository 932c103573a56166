package geo

import (
	"testing"

	"github.com/mraditya/chmatrix/pkg/datastructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHaversineKnownDistance(t *testing.T) {
	// yogyakarta -> jakarta, roughly 430 km
	dist := CalculateHaversineDistance(-7.7956, 110.3695, -6.1751, 106.8650)
	assert.InDelta(t, 430, dist, 10)
}

func TestHaversineZero(t *testing.T) {
	assert.InDelta(t, 0, CalculateHaversineDistance(-7.7956, 110.3695, -7.7956, 110.3695), 1e-9)
}

func TestGetDestinationPointRoundTrip(t *testing.T) {
	lat, lon := GetDestinationPoint(-7.7956, 110.3695, 90, 10)
	back := CalculateHaversineDistance(-7.7956, 110.3695, lat, lon)
	assert.InDelta(t, 10, back, 0.01)
}

func TestPolylineRoundTrip(t *testing.T) {
	coords := []datastructure.Coordinate{
		{Lat: -7.79560, Lon: 110.36950},
		{Lat: -7.79000, Lon: 110.36000},
		{Lat: -7.78120, Lon: 110.35210},
	}
	encoded := PolylineFromCoords(coords)
	require.NotEmpty(t, encoded)

	decoded, err := CoordsFromPolyline(encoded)
	require.NoError(t, err)
	require.Len(t, decoded, len(coords))
	for i := range coords {
		assert.InDelta(t, coords[i].Lat, decoded[i].Lat, 1e-5)
		assert.InDelta(t, coords[i].Lon, decoded[i].Lon, 1e-5)
	}
}

func TestProjectPointToLineCoordOnSegment(t *testing.T) {
	a := datastructure.Coordinate{Lat: 0, Lon: 0}
	b := datastructure.Coordinate{Lat: 0, Lon: 1}
	snap := datastructure.Coordinate{Lat: 0.01, Lon: 0.5}

	proj := ProjectPointToLineCoord(a, b, snap)
	assert.InDelta(t, 0, proj.Lat, 1e-3)
	assert.InDelta(t, 0.5, proj.Lon, 1e-3)

	// distance from snap to the segment is about 0.01 degrees of
	// latitude, 1.11 km
	dist := PointLinePerpendicularDistance(a, b, snap)
	assert.InDelta(t, 1112, dist, 20)
}
