package geo

import (
	"github.com/mraditya/chmatrix/pkg/datastructure"
	"github.com/twpayne/go-polyline"
)

// PolylineFromCoords encodes a coordinate sequence with the google
// encoded-polyline algorithm.
func PolylineFromCoords(coords []datastructure.Coordinate) string {
	latLngs := make([][]float64, len(coords))
	for i, c := range coords {
		latLngs[i] = []float64{c.Lat, c.Lon}
	}
	return string(polyline.EncodeCoords(latLngs))
}

// CoordsFromPolyline decodes an encoded polyline back into
// coordinates.
func CoordsFromPolyline(encoded string) ([]datastructure.Coordinate, error) {
	latLngs, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, err
	}
	coords := make([]datastructure.Coordinate, len(latLngs))
	for i, ll := range latLngs {
		coords[i] = datastructure.Coordinate{Lat: ll[0], Lon: ll[1]}
	}
	return coords, nil
}
