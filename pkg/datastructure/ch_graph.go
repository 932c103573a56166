package datastructure

import (
	"sort"
)

// CHEdgeData carries the attributes of one edge of the contracted
// search graph. Forward marks the edge usable by the forward (upward)
// search, Backward by the backward search on the reverse graph. A
// shortcut edge stores the contracted via node for unpacking.
type CHEdgeData struct {
	Weight   EdgeWeight
	Duration EdgeDuration
	Forward  bool
	Backward bool
	Shortcut bool
	Via      NodeID // INVALID_NODE_ID unless Shortcut
}

// CHEdge is one contracted-search-graph edge before CSR packing.
type CHEdge struct {
	From NodeID
	To   NodeID
	Data CHEdgeData
}

// CHGraph is the contraction hierarchy search graph: every edge is
// stored once, at its lower-ranked endpoint, pointing to the
// higher-ranked one; direction usability is carried by the
// Forward/Backward flags. Immutable after construction and read
// concurrently without locking.
type CHGraph struct {
	graph *Graph // original network, kept for snapping/oracle/geometry

	firstEdge []EdgeID
	targets   []NodeID
	edgeData  []CHEdgeData

	// self-loop artifacts of contraction, per node.
	// INVALID_EDGE_WEIGHT / MAX_EDGE_DURATION when the node has none.
	loopWeight   []EdgeWeight
	loopDuration []EdgeDuration
}

// NewCHGraph packs the contracted edge set into CSR form and
// precomputes the per-node self-loop weights.
func NewCHGraph(g *Graph, edges []CHEdge) *CHGraph {
	n := g.NumberOfNodes()

	sort.SliceStable(edges, func(i, j int) bool {
		return edges[i].From < edges[j].From
	})

	firstEdge := make([]EdgeID, n+1)
	targets := make([]NodeID, len(edges))
	edgeData := make([]CHEdgeData, len(edges))
	for i, e := range edges {
		firstEdge[e.From+1]++
		targets[i] = e.To
		edgeData[i] = e.Data
	}
	for v := 1; v <= n; v++ {
		firstEdge[v] += firstEdge[v-1]
	}

	ch := &CHGraph{
		graph:     g,
		firstEdge: firstEdge,
		targets:   targets,
		edgeData:  edgeData,
	}
	ch.buildLoopTables()
	return ch
}

// buildLoopTables records, per node, the cheapest forward self-loop
// edge node->node inserted by contraction. ties on weight break by
// duration.
func (ch *CHGraph) buildLoopTables() {
	n := ch.graph.NumberOfNodes()
	ch.loopWeight = make([]EdgeWeight, n)
	ch.loopDuration = make([]EdgeDuration, n)
	for v := 0; v < n; v++ {
		ch.loopWeight[v] = INVALID_EDGE_WEIGHT
		ch.loopDuration[v] = MAX_EDGE_DURATION
	}

	for node := NodeID(0); node < NodeID(n); node++ {
		for eid := ch.firstEdge[node]; eid < ch.firstEdge[node+1]; eid++ {
			data := &ch.edgeData[eid]
			if !data.Forward || ch.targets[eid] != node {
				continue
			}
			if data.Weight < ch.loopWeight[node] ||
				(data.Weight == ch.loopWeight[node] && data.Duration < ch.loopDuration[node]) {
				ch.loopWeight[node] = data.Weight
				ch.loopDuration[node] = data.Duration
			}
		}
	}
}

func (ch *CHGraph) NumberOfNodes() int {
	return ch.graph.NumberOfNodes()
}

func (ch *CHGraph) NumberOfEdges() int {
	return len(ch.targets)
}

func (ch *CHGraph) GetGraph() *Graph {
	return ch.graph
}

// AdjacentEdgeRange returns the half-open edge id range [begin, end)
// of node.
func (ch *CHGraph) AdjacentEdgeRange(node NodeID) (EdgeID, EdgeID) {
	return ch.firstEdge[node], ch.firstEdge[node+1]
}

func (ch *CHGraph) EdgeData(e EdgeID) *CHEdgeData {
	return &ch.edgeData[e]
}

func (ch *CHGraph) Target(e EdgeID) NodeID {
	return ch.targets[e]
}

// LoopWeight returns the weight of the cheapest self-loop of node, or
// INVALID_EDGE_WEIGHT when the node has none.
func (ch *CHGraph) LoopWeight(node NodeID) EdgeWeight {
	return ch.loopWeight[node]
}

func (ch *CHGraph) LoopDuration(node NodeID) EdgeDuration {
	return ch.loopDuration[node]
}

// FindSmallestEdge returns the cheapest search-graph edge that
// represents the original direction from->to, or false when none
// exists. such an edge is stored either at from with the Forward flag
// or at to with the Backward flag, depending on which endpoint ranks
// lower. used by the path unpacker.
func (ch *CHGraph) FindSmallestEdge(from, to NodeID) (*CHEdgeData, bool) {
	var best *CHEdgeData
	for eid := ch.firstEdge[from]; eid < ch.firstEdge[from+1]; eid++ {
		data := &ch.edgeData[eid]
		if data.Forward && ch.targets[eid] == to {
			if best == nil || data.Weight < best.Weight {
				best = data
			}
		}
	}
	for eid := ch.firstEdge[to]; eid < ch.firstEdge[to+1]; eid++ {
		data := &ch.edgeData[eid]
		if data.Backward && ch.targets[eid] == from {
			if best == nil || data.Weight < best.Weight {
				best = data
			}
		}
	}
	return best, best != nil
}
