package datastructure

import (
	"sort"
)

// OutEdge is one directed edge of the original (uncontracted) road
// network.
type OutEdge struct {
	head     NodeID
	weight   EdgeWeight
	duration EdgeDuration
	dist     float64 // meters
}

func NewOutEdge(head NodeID, weight EdgeWeight, duration EdgeDuration, dist float64) OutEdge {
	return OutEdge{head: head, weight: weight, duration: duration, dist: dist}
}

func (e *OutEdge) GetHead() NodeID {
	return e.head
}

func (e *OutEdge) GetWeight() EdgeWeight {
	return e.weight
}

func (e *OutEdge) GetDuration() EdgeDuration {
	return e.duration
}

func (e *OutEdge) GetDist() float64 {
	return e.dist
}

// Edge is a directed edge before CSR packing, as produced by the osm
// parser or by test fixtures.
type Edge struct {
	Tail     NodeID
	Head     NodeID
	Weight   EdgeWeight
	Duration EdgeDuration
	Dist     float64
}

func NewEdge(tail, head NodeID, weight EdgeWeight, duration EdgeDuration, dist float64) Edge {
	return Edge{Tail: tail, Head: head, Weight: weight, Duration: duration, Dist: dist}
}

// Graph is the immutable original road network in compressed sparse
// row form. read concurrently without locking; never mutated after
// construction.
type Graph struct {
	coords   []Coordinate
	firstOut []EdgeID // len = number of vertices + 1
	outEdges []OutEdge
}

// NewGraph packs a directed edge list into CSR adjacency. the edge
// list is sorted by tail as a side effect.
func NewGraph(coords []Coordinate, edges []Edge) *Graph {
	n := len(coords)

	sort.SliceStable(edges, func(i, j int) bool {
		return edges[i].Tail < edges[j].Tail
	})

	firstOut := make([]EdgeID, n+1)
	outEdges := make([]OutEdge, len(edges))
	for i, e := range edges {
		firstOut[e.Tail+1]++
		outEdges[i] = NewOutEdge(e.Head, e.Weight, e.Duration, e.Dist)
	}
	for v := 1; v <= n; v++ {
		firstOut[v] += firstOut[v-1]
	}

	return &Graph{
		coords:   coords,
		firstOut: firstOut,
		outEdges: outEdges,
	}
}

func (g *Graph) NumberOfNodes() int {
	return len(g.coords)
}

func (g *Graph) NumberOfEdges() int {
	return len(g.outEdges)
}

func (g *Graph) GetCoordinate(v NodeID) Coordinate {
	return g.coords[v]
}

func (g *Graph) GetCoordinates() []Coordinate {
	return g.coords
}

// ForOutEdgesOf iterates the outgoing edges of u.
func (g *Graph) ForOutEdgesOf(u NodeID, fn func(e *OutEdge, edgeID EdgeID)) {
	for eid := g.firstOut[u]; eid < g.firstOut[u+1]; eid++ {
		fn(&g.outEdges[eid], eid)
	}
}

func (g *Graph) GetOutEdge(eid EdgeID) *OutEdge {
	return &g.outEdges[eid]
}

// FindEdge returns the cheapest directed edge u->v, or false if none
// exists.
func (g *Graph) FindEdge(u, v NodeID) (*OutEdge, bool) {
	var best *OutEdge
	for eid := g.firstOut[u]; eid < g.firstOut[u+1]; eid++ {
		e := &g.outEdges[eid]
		if e.head == v && (best == nil || e.weight < best.weight) {
			best = e
		}
	}
	return best, best != nil
}
