package datastructure

import "math"

type NodeID = uint32
type EdgeID = uint32

// EdgeWeight is a signed integer cost. it is non-negative on any real
// path but a single forward+backward combination may be transiently
// negative because phantom source offsets are inserted negated
// (see ManyToManySearch).
type EdgeWeight = int32

// EdgeDuration is travel time in centiseconds.
type EdgeDuration = int32

const (
	INVALID_NODE_ID NodeID = math.MaxUint32
	INVALID_EDGE_ID EdgeID = math.MaxUint32

	INVALID_EDGE_WEIGHT EdgeWeight   = math.MaxInt32
	MAX_EDGE_DURATION   EdgeDuration = math.MaxInt32
)

type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func NewCoordinate(lat, lon float64) Coordinate {
	return Coordinate{
		Lat: lat,
		Lon: lon,
	}
}

func (c Coordinate) GetLat() float64 {
	return c.Lat
}

func (c Coordinate) GetLon() float64 {
	return c.Lon
}
