package usecases

import (
	"github.com/mraditya/chmatrix/pkg/costfunction"
	"github.com/mraditya/chmatrix/pkg/datastructure"
	"github.com/mraditya/chmatrix/pkg/engine/routing"
	"github.com/mraditya/chmatrix/pkg/geo"
	"github.com/mraditya/chmatrix/pkg/util"
	"go.uber.org/zap"
)

type RoutingService struct {
	log          *zap.Logger
	engine       RoutingEngine
	spatialIndex SpatialIndex
	searchRadius float64 // km
}

func NewRoutingService(log *zap.Logger, engine RoutingEngine, spatialIndex SpatialIndex,
	searchRadius float64) *RoutingService {
	return &RoutingService{
		log:          log,
		engine:       engine,
		spatialIndex: spatialIndex,
		searchRadius: searchRadius,
	}
}

// ShortestPath is the one-to-one route query: a 1x1 table with path
// collection, unpacked into road geometry.
func (rs *RoutingService) ShortestPath(origLat, origLon, dstLat, dstLon float64) (float64, float64, string, error) {
	origin, err := rs.spatialIndex.SnapToPhantom(origLat, origLon, rs.searchRadius)
	if err != nil {
		return 0, 0, "", err
	}
	destination, err := rs.spatialIndex.SnapToPhantom(dstLat, dstLon, rs.searchRadius)
	if err != nil {
		return 0, 0, "", err
	}

	phantoms := []datastructure.PhantomNode{origin, destination}
	table := rs.engine.ManyToManySearch(routing.NewSearchContext(), phantoms,
		[]int{0}, []int{1}, true)

	if !table.IsReachable(0, 0) {
		return 0, 0, "", util.WrapErrorf(nil, util.ErrNotFound,
			"no path found from %f,%f to %f,%f", origLat, origLon, dstLat, dstLon)
	}

	pathCoords, dist, err := rs.engine.UnpackPathCoordinates(table.GetPackedPath(0, 0))
	if err != nil {
		return 0, 0, "", err
	}

	eta := costfunction.DurationToSeconds(table.GetDuration(0, 0))
	pathPolyline := geo.PolylineFromCoords(pathCoords)
	return eta, dist, pathPolyline, nil
}
