package usecases

import (
	"github.com/mraditya/chmatrix/pkg/costfunction"
	"github.com/mraditya/chmatrix/pkg/datastructure"
	"github.com/mraditya/chmatrix/pkg/engine/routing"
	"go.uber.org/zap"
)

type MatrixService struct {
	log          *zap.Logger
	engine       RoutingEngine
	spatialIndex SpatialIndex
	searchRadius float64 // km
	numWorkers   int
}

func NewMatrixService(log *zap.Logger, engine RoutingEngine, spatialIndex SpatialIndex,
	searchRadius float64, numWorkers int) *MatrixService {
	return &MatrixService{
		log:          log,
		engine:       engine,
		spatialIndex: spatialIndex,
		searchRadius: searchRadius,
		numWorkers:   numWorkers,
	}
}

// Table snaps every coordinate onto the road network and computes the
// full duration matrix in one bucket search. distance annotation needs
// the routes themselves, so it switches to the path-collecting search.
func (ms *MatrixService) Table(sources, destinations []datastructure.Coordinate, withDistances bool) (
	[][]*float64, [][]*float64, []datastructure.Coordinate, []datastructure.Coordinate, error) {

	phantoms := make([]datastructure.PhantomNode, 0, len(sources)+len(destinations))
	snappedSources := make([]datastructure.Coordinate, len(sources))
	snappedDestinations := make([]datastructure.Coordinate, len(destinations))

	for i, c := range sources {
		phantom, err := ms.spatialIndex.SnapToPhantom(c.Lat, c.Lon, ms.searchRadius)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		phantoms = append(phantoms, phantom)
		snappedSources[i] = phantom.Location
	}
	for i, c := range destinations {
		phantom, err := ms.spatialIndex.SnapToPhantom(c.Lat, c.Lon, ms.searchRadius)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		phantoms = append(phantoms, phantom)
		snappedDestinations[i] = phantom.Location
	}

	sourceIndices := make([]int, len(sources))
	for i := range sourceIndices {
		sourceIndices[i] = i
	}
	targetIndices := make([]int, len(destinations))
	for i := range targetIndices {
		targetIndices[i] = len(sources) + i
	}

	var table *routing.ManyToManyTable
	if withDistances {
		table = ms.engine.ManyToManySearch(routing.NewSearchContext(), phantoms,
			sourceIndices, targetIndices, true)
	} else {
		table = ms.engine.ManyToManySearchParallel(phantoms, sourceIndices, targetIndices, ms.numWorkers)
	}

	durations := make([][]*float64, len(sources))
	var distances [][]*float64
	if withDistances {
		distances = make([][]*float64, len(sources))
	}

	for row := 0; row < len(sources); row++ {
		durations[row] = make([]*float64, len(destinations))
		if withDistances {
			distances[row] = make([]*float64, len(destinations))
		}
		for col := 0; col < len(destinations); col++ {
			if !table.IsReachable(row, col) {
				continue
			}
			seconds := costfunction.DurationToSeconds(table.GetDuration(row, col))
			durations[row][col] = &seconds

			if withDistances {
				_, dist, err := ms.engine.UnpackPathCoordinates(table.GetPackedPath(row, col))
				if err != nil {
					return nil, nil, nil, nil, err
				}
				distances[row][col] = &dist
			}
		}
	}

	return durations, distances, snappedSources, snappedDestinations, nil
}
