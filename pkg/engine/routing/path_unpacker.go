package routing

import (
	da "github.com/mraditya/chmatrix/pkg/datastructure"
	"github.com/mraditya/chmatrix/pkg/util"
)

// UnpackCacheKey addresses one expanded shortcut hop in the lru cache.
type UnpackCacheKey struct {
	From da.NodeID
	To   da.NodeID
}

// UnpackPath expands every shortcut hop of a packed node sequence into
// the original-graph node sequence it represents. The packed path is
// one produced by a many-to-many search with path collection enabled.
func (e *CHRoutingEngine) UnpackPath(packedPath []da.NodeID) ([]da.NodeID, error) {
	if len(packedPath) == 0 {
		return nil, nil
	}

	unpacked := []da.NodeID{packedPath[0]}
	for i := 0; i+1 < len(packedPath); i++ {
		hop, err := e.unpackHop(packedPath[i], packedPath[i+1])
		if err != nil {
			return nil, err
		}
		unpacked = append(unpacked, hop...)
	}
	return unpacked, nil
}

// unpackHop returns the original-graph nodes of the hop from->to,
// excluding from itself. A plain edge contributes just to; a shortcut
// recurses through its via node. Expanded hops are memoized in the lru
// cache since popular shortcuts reappear across queries.
func (e *CHRoutingEngine) unpackHop(from, to da.NodeID) ([]da.NodeID, error) {
	if e.unpackCache != nil {
		if hop, ok := e.unpackCache.Get(UnpackCacheKey{From: from, To: to}); ok {
			return hop, nil
		}
	}

	data, ok := e.ch.FindSmallestEdge(from, to)
	if !ok {
		return nil, util.WrapErrorf(nil, util.ErrInternalServerError,
			"no edge between %d and %d while unpacking", from, to)
	}

	var hop []da.NodeID
	if !data.Shortcut {
		hop = []da.NodeID{to}
	} else {
		first, err := e.unpackHop(from, data.Via)
		if err != nil {
			return nil, err
		}
		second, err := e.unpackHop(data.Via, to)
		if err != nil {
			return nil, err
		}
		hop = append(append([]da.NodeID{}, first...), second...)
	}

	if e.unpackCache != nil {
		e.unpackCache.Add(UnpackCacheKey{From: from, To: to}, hop)
	}
	return hop, nil
}

// UnpackPathCoordinates maps an unpacked node sequence onto the
// original network geometry and sums up the travelled distance in
// meters.
func (e *CHRoutingEngine) UnpackPathCoordinates(packedPath []da.NodeID) ([]da.Coordinate, float64, error) {
	nodes, err := e.UnpackPath(packedPath)
	if err != nil {
		return nil, 0, err
	}

	g := e.ch.GetGraph()
	coords := make([]da.Coordinate, 0, len(nodes))
	dist := 0.0
	for i, node := range nodes {
		coords = append(coords, g.GetCoordinate(node))
		if i > 0 {
			if edge, ok := g.FindEdge(nodes[i-1], node); ok {
				dist += edge.GetDist()
			}
		}
	}
	return coords, dist, nil
}
