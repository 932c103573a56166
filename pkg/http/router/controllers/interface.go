package controllers

import (
	"github.com/mraditya/chmatrix/pkg/datastructure"
)

type MatrixService interface {
	// Table returns the duration matrix (seconds) and the distance
	// matrix (meters) between every source and destination, plus the
	// road-snapped input coordinates. unreachable pairs are nil.
	Table(sources, destinations []datastructure.Coordinate, withDistances bool) (
		[][]*float64, [][]*float64, []datastructure.Coordinate, []datastructure.Coordinate, error)
}

type RoutingService interface {
	// ShortestPath returns eta in seconds, distance in meters and the
	// encoded polyline of the route.
	ShortestPath(origLat, origLon, dstLat, dstLon float64) (float64, float64, string, error)
}
