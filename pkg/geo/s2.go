package geo

import (
	"github.com/mraditya/chmatrix/pkg/datastructure"

	"github.com/golang/geo/s2"
)

// ProjectPointToLineCoord projects snap onto the great-circle segment
// (pointA, pointB) and returns the closest point on the segment.
func ProjectPointToLineCoord(pointA, pointB, snap datastructure.Coordinate) datastructure.Coordinate {
	pointAS2 := s2.PointFromLatLng(s2.LatLngFromDegrees(pointA.Lat, pointA.Lon))
	pointBS2 := s2.PointFromLatLng(s2.LatLngFromDegrees(pointB.Lat, pointB.Lon))
	snapS2 := s2.PointFromLatLng(s2.LatLngFromDegrees(snap.Lat, snap.Lon))
	projection := s2.Project(snapS2, pointAS2, pointBS2)
	projectLatLng := s2.LatLngFromPoint(projection)
	return datastructure.Coordinate{Lat: projectLatLng.Lat.Degrees(), Lon: projectLatLng.Lng.Degrees()}
}

// PointLinePerpendicularDistance. return in meter
func PointLinePerpendicularDistance(pointA, pointB, snap datastructure.Coordinate) float64 {
	projectionPoint := ProjectPointToLineCoord(pointA, pointB, snap)

	dist := CalculateHaversineDistance(snap.Lat, snap.Lon, projectionPoint.Lat, projectionPoint.Lon)

	return dist * 1000
}
