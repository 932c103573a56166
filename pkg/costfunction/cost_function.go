package costfunction

import (
	"math"

	"github.com/mraditya/chmatrix/pkg"
	"github.com/mraditya/chmatrix/pkg/datastructure"
)

// CostFunction maps a road segment onto the integer (weight, duration)
// pair stored on graph edges. both are centiseconds; weight is what
// the searches minimize, duration what the tables report. the fastest
// profile keeps them identical, a custom profile may penalize weight
// without distorting the reported travel time.
type CostFunction interface {
	// Cost of a segment of dist meters driven at speed km/h.
	Cost(dist float64, speed float64) (datastructure.EdgeWeight, datastructure.EdgeDuration)
}

// FastestCostFunction minimizes travel time.
type FastestCostFunction struct{}

func NewFastestCostFunction() *FastestCostFunction {
	return &FastestCostFunction{}
}

func (f *FastestCostFunction) Cost(dist float64, speed float64) (datastructure.EdgeWeight, datastructure.EdgeDuration) {
	seconds := dist / (speed / 3.6)
	cs := math.Round(seconds * pkg.WEIGHT_PRECISION)
	return datastructure.EdgeWeight(cs), datastructure.EdgeDuration(cs)
}

// DurationToSeconds converts a table duration back to float seconds.
func DurationToSeconds(d datastructure.EdgeDuration) float64 {
	return float64(d) / pkg.WEIGHT_PRECISION
}

// WeightToSeconds converts a search weight back to float seconds.
func WeightToSeconds(w datastructure.EdgeWeight) float64 {
	return float64(w) / pkg.WEIGHT_PRECISION
}
