package usecases

import (
	"github.com/mraditya/chmatrix/pkg/datastructure"
	"github.com/mraditya/chmatrix/pkg/engine/routing"
)

type RoutingEngine interface {
	GetGraph() *datastructure.Graph
	GetCHGraph() *datastructure.CHGraph
	ManyToManySearch(sctx *routing.SearchContext, phantoms []datastructure.PhantomNode,
		sourceIndices, targetIndices []int, collectPaths bool) *routing.ManyToManyTable
	ManyToManySearchParallel(phantoms []datastructure.PhantomNode,
		sourceIndices, targetIndices []int, numWorkers int) *routing.ManyToManyTable
	UnpackPathCoordinates(packedPath []datastructure.NodeID) ([]datastructure.Coordinate, float64, error)
}

type SpatialIndex interface {
	SnapToPhantom(qLat, qLon, searchRadius float64) (datastructure.PhantomNode, error)
}
