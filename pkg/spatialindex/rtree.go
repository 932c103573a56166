package spatialindex

import (
	"math"

	"github.com/mraditya/chmatrix/pkg"
	"github.com/mraditya/chmatrix/pkg/datastructure"
	"github.com/mraditya/chmatrix/pkg/geo"
	"github.com/mraditya/chmatrix/pkg/util"
	"github.com/tidwall/rtree"
	"go.uber.org/zap"
)

// edgeEntry is one indexed directed edge: tail node, head node and the
// edge id in the tail's adjacency.
type edgeEntry struct {
	tail   datastructure.NodeID
	head   datastructure.NodeID
	edgeID datastructure.EdgeID
}

type Rtree struct {
	tr    *rtree.RTreeG[edgeEntry]
	graph *datastructure.Graph
}

func NewRtree() *Rtree {
	var tr rtree.RTreeG[edgeEntry]
	return &Rtree{
		tr: &tr,
	}
}

// Build indexes every directed edge of the network, each leaf carrying
// a bounding box padded by boundingBoxRadius (in km).
func (rt *Rtree) Build(graph *datastructure.Graph, boundingBoxRadius float64, log *zap.Logger) {
	log.Info("building r-tree spatial index",
		zap.Int("edges", graph.NumberOfEdges()))
	rt.graph = graph

	for u := datastructure.NodeID(0); int(u) < graph.NumberOfNodes(); u++ {
		from := graph.GetCoordinate(u)
		graph.ForOutEdgesOf(u, func(e *datastructure.OutEdge, eid datastructure.EdgeID) {
			to := graph.GetCoordinate(e.GetHead())

			lowerFromLat, lowerFromLon := geo.GetDestinationPoint(from.Lat, from.Lon, 225, boundingBoxRadius)
			upperFromLat, upperFromLon := geo.GetDestinationPoint(from.Lat, from.Lon, 45, boundingBoxRadius)

			lowerToLat, lowerToLon := geo.GetDestinationPoint(to.Lat, to.Lon, 225, boundingBoxRadius)
			upperToLat, upperToLon := geo.GetDestinationPoint(to.Lat, to.Lon, 45, boundingBoxRadius)

			minLat := math.Min(lowerFromLat, lowerToLat)
			minLon := math.Min(lowerFromLon, lowerToLon)
			maxLat := math.Max(upperFromLat, upperToLat)
			maxLon := math.Max(upperFromLon, upperToLon)

			rt.tr.Insert([2]float64{minLon, minLat}, [2]float64{maxLon, maxLat},
				edgeEntry{tail: u, head: e.GetHead(), edgeID: eid})
		})
	}

	log.Info("r-tree spatial index built")
}

// SnapToPhantom snaps a query coordinate onto the nearest directed
// edge within searchRadius (in km) and expresses it as a phantom node:
// the edge tail plus the cost already spent from the tail up to the
// projected point. when the opposite-direction edge of the same street
// exists, the phantom carries both sides.
func (rt *Rtree) SnapToPhantom(qLat, qLon, searchRadius float64) (datastructure.PhantomNode, error) {
	lowerLat, lowerLon := geo.GetDestinationPoint(qLat, qLon, 225, searchRadius)
	upperLat, upperLon := geo.GetDestinationPoint(qLat, qLon, 45, searchRadius)

	snap := datastructure.Coordinate{Lat: qLat, Lon: qLon}

	best := datastructure.NewInvalidPhantomNode()
	bestDist := math.Inf(1)

	rt.tr.Search([2]float64{lowerLon, lowerLat}, [2]float64{upperLon, upperLat},
		func(min, max [2]float64, entry edgeEntry) bool {
			tailCoord := rt.graph.GetCoordinate(entry.tail)
			headCoord := rt.graph.GetCoordinate(entry.head)

			perpDist := geo.PointLinePerpendicularDistance(tailCoord, headCoord, snap)
			if perpDist >= bestDist {
				return true
			}

			bestDist = perpDist
			best = rt.makePhantom(entry, snap)
			return true
		})

	if !best.IsValid() {
		return best, util.WrapErrorf(nil, util.ErrNotFound,
			"no road segment within %.2f km of (%f, %f)", searchRadius, qLat, qLon)
	}
	return best, nil
}

// makePhantom projects the snap point onto the edge and fills the
// forward side from the matched edge, the backward side from the
// opposite edge head->tail when the street is two-way.
func (rt *Rtree) makePhantom(entry edgeEntry, snap datastructure.Coordinate) datastructure.PhantomNode {
	g := rt.graph
	tailCoord := g.GetCoordinate(entry.tail)
	headCoord := g.GetCoordinate(entry.head)
	projection := geo.ProjectPointToLineCoord(tailCoord, headCoord, snap)

	edge := g.GetOutEdge(entry.edgeID)
	edgeLen := geo.HaversineMeters(tailCoord, headCoord)
	ratio := 0.0
	if edgeLen > 0 {
		ratio = geo.HaversineMeters(tailCoord, projection) / edgeLen
		ratio = math.Min(ratio, 1.0)
	}

	phantom := datastructure.PhantomNode{
		ForwardNode:           entry.tail,
		BackwardNode:          datastructure.INVALID_NODE_ID,
		ForwardWeightOffset:   scaleCost(edge.GetWeight(), ratio),
		ForwardDurationOffset: datastructure.EdgeDuration(scaleCost(datastructure.EdgeWeight(edge.GetDuration()), ratio)),
		Location:              projection,
	}

	if reverse, ok := g.FindEdge(entry.head, entry.tail); ok {
		phantom.BackwardNode = entry.head
		phantom.BackwardWeightOffset = scaleCost(reverse.GetWeight(), 1.0-ratio)
		phantom.BackwardDurationOffset = datastructure.EdgeDuration(scaleCost(datastructure.EdgeWeight(reverse.GetDuration()), 1.0-ratio))
	}
	return phantom
}

func scaleCost(w datastructure.EdgeWeight, ratio float64) datastructure.EdgeWeight {
	if pkg.DEBUG && w < 0 {
		panic("negative edge cost")
	}
	return datastructure.EdgeWeight(math.Round(float64(w) * ratio))
}
