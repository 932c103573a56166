package contractor

import (
	"time"

	da "github.com/mraditya/chmatrix/pkg/datastructure"
	"go.uber.org/zap"
)

const (
	// settled-node cap of one witness search. a capped search can only
	// miss witnesses, which adds redundant shortcuts but never breaks
	// correctness.
	witnessSearchLimit = 500

	logEveryNodes = 100000
)

// workEdge is one live edge of the mutable contraction graph. shortcut
// edges remember the contracted via node for later unpacking.
type workEdge struct {
	other    da.NodeID
	weight   da.EdgeWeight
	duration da.EdgeDuration
	via      da.NodeID
	shortcut bool
}

// Contractor builds a contraction hierarchy over a road network. node
// order is decided on the fly by a lazily updated edge-difference
// heuristic; every contracted node leaves shortcut edges preserving
// all shortest paths among the remaining nodes.
type Contractor struct {
	g      *da.Graph
	logger *zap.Logger

	outEdges [][]workEdge
	inEdges  [][]workEdge

	contracted          []bool
	rank                []int
	contractedNeighbors []int

	shortcutCount int
}

func NewContractor(g *da.Graph, logger *zap.Logger) *Contractor {
	n := g.NumberOfNodes()
	c := &Contractor{
		g:                   g,
		logger:              logger,
		outEdges:            make([][]workEdge, n),
		inEdges:             make([][]workEdge, n),
		contracted:          make([]bool, n),
		rank:                make([]int, n),
		contractedNeighbors: make([]int, n),
	}

	for u := da.NodeID(0); u < da.NodeID(n); u++ {
		g.ForOutEdgesOf(u, func(e *da.OutEdge, _ da.EdgeID) {
			c.addWorkEdge(u, e.GetHead(), e.GetWeight(), e.GetDuration(), da.INVALID_NODE_ID, false)
		})
	}
	return c
}

func (c *Contractor) addWorkEdge(from, to da.NodeID, weight da.EdgeWeight,
	duration da.EdgeDuration, via da.NodeID, shortcut bool) {
	c.outEdges[from] = append(c.outEdges[from],
		workEdge{other: to, weight: weight, duration: duration, via: via, shortcut: shortcut})
	c.inEdges[to] = append(c.inEdges[to],
		workEdge{other: from, weight: weight, duration: duration, via: via, shortcut: shortcut})
}

// Contract runs the full preprocessing and returns the search graph.
func (c *Contractor) Contract() *da.CHGraph {
	start := time.Now()
	n := c.g.NumberOfNodes()

	queue := da.NewFourAryHeap[da.NodeID]()
	items := make([]*da.PriorityQueueNode[da.NodeID], n)
	for v := da.NodeID(0); v < da.NodeID(n); v++ {
		items[v] = da.NewPriorityQueueNode(c.nodePriority(v), v)
		queue.Insert(items[v])
	}

	order := 0
	for !queue.IsEmpty() {
		item, _ := queue.ExtractMin()
		node := item.GetItem()

		// lazy update: the node's priority may be stale after neighbor
		// contractions, recompute and requeue when it no longer wins
		priority := c.nodePriority(node)
		if !queue.IsEmpty() && priority > queue.GetMinrank() {
			item.SetRank(priority)
			queue.Insert(item)
			continue
		}

		c.contractNode(node)
		c.rank[node] = order
		order++

		if order%logEveryNodes == 0 {
			c.logger.Info("contracting nodes",
				zap.Int("contracted", order),
				zap.Int("total", n),
				zap.Int("shortcuts", c.shortcutCount))
		}
	}

	c.logger.Info("contraction finished",
		zap.Int("nodes", n),
		zap.Int("shortcuts", c.shortcutCount),
		zap.Duration("took", time.Since(start)))

	return da.NewCHGraph(c.g, c.buildSearchEdges())
}

// nodePriority is the edge-difference heuristic: shortcuts the
// contraction would add minus edges it removes, plus a term keeping
// the contraction spatially uniform.
func (c *Contractor) nodePriority(node da.NodeID) da.EdgeWeight {
	shortcuts := c.countShortcuts(node)
	incident := 0
	for _, e := range c.outEdges[node] {
		if !c.contracted[e.other] {
			incident++
		}
	}
	for _, e := range c.inEdges[node] {
		if !c.contracted[e.other] {
			incident++
		}
	}
	return da.EdgeWeight(2*(shortcuts-incident) + c.contractedNeighbors[node])
}

// countShortcuts simulates the contraction of node without mutating
// the graph.
func (c *Contractor) countShortcuts(node da.NodeID) int {
	count := 0
	c.forEachNeededShortcut(node, func(_, _ da.NodeID, _ da.EdgeWeight, _ da.EdgeDuration) {
		count++
	})
	return count
}

// contractNode removes node from the remaining graph, inserting every
// shortcut the witness searches could not refute.
func (c *Contractor) contractNode(node da.NodeID) {
	c.forEachNeededShortcut(node, func(u, v da.NodeID, weight da.EdgeWeight, duration da.EdgeDuration) {
		c.addWorkEdge(u, v, weight, duration, node, true)
		c.shortcutCount++
	})

	c.contracted[node] = true
	for _, e := range c.outEdges[node] {
		if !c.contracted[e.other] {
			c.contractedNeighbors[e.other]++
		}
	}
	for _, e := range c.inEdges[node] {
		if !c.contracted[e.other] {
			c.contractedNeighbors[e.other]++
		}
	}
}

// forEachNeededShortcut enumerates the (u, v) pairs whose shortest
// connection runs through node and cannot be witnessed around it. for
// each in-neighbor u one witness search covers all out-neighbors v.
func (c *Contractor) forEachNeededShortcut(node da.NodeID,
	fn func(u, v da.NodeID, weight da.EdgeWeight, duration da.EdgeDuration)) {
	outNeighbors := make(map[da.NodeID]workEdge)
	var maxOutWeight da.EdgeWeight
	for _, e := range c.outEdges[node] {
		if c.contracted[e.other] || e.other == node {
			continue
		}
		// keep only the cheapest parallel edge node->v
		if prev, ok := outNeighbors[e.other]; !ok || e.weight < prev.weight {
			outNeighbors[e.other] = e
		}
		if e.weight > maxOutWeight {
			maxOutWeight = e.weight
		}
	}
	if len(outNeighbors) == 0 {
		return
	}

	inNeighbors := make(map[da.NodeID]workEdge)
	for _, e := range c.inEdges[node] {
		if c.contracted[e.other] || e.other == node {
			continue
		}
		if prev, ok := inNeighbors[e.other]; !ok || e.weight < prev.weight {
			inNeighbors[e.other] = e
		}
	}

	for u, inEdge := range inNeighbors {
		limit := inEdge.weight + maxOutWeight
		witness := c.witnessSearch(u, node, limit)

		for v, outEdge := range outNeighbors {
			if v == u {
				continue
			}
			shortcutWeight := inEdge.weight + outEdge.weight
			if w, ok := witness[v]; ok && w <= shortcutWeight {
				continue
			}
			fn(u, v, shortcutWeight, inEdge.duration+outEdge.duration)
		}
	}
}

// witnessSearch runs a bounded Dijkstra from source over the remaining
// graph with excluded skipped, returning the distances of every node
// it settled within the weight limit.
func (c *Contractor) witnessSearch(source, excluded da.NodeID, limit da.EdgeWeight) map[da.NodeID]da.EdgeWeight {
	heap := da.NewQueryHeap()
	heap.Insert(source, 0, da.HeapData{Parent: source})

	settled := make(map[da.NodeID]da.EdgeWeight)
	for !heap.Empty() && len(settled) < witnessSearchLimit {
		if heap.MinKey() > limit {
			break
		}
		node := heap.DeleteMin()
		weight := heap.GetKey(node)
		settled[node] = weight

		for _, e := range c.outEdges[node] {
			if c.contracted[e.other] || e.other == excluded {
				continue
			}
			if _, done := settled[e.other]; done {
				continue
			}
			toWeight := weight + e.weight
			if !heap.WasInserted(e.other) {
				heap.Insert(e.other, toWeight, da.HeapData{Parent: node})
			} else if toWeight < heap.GetKey(e.other) {
				_ = heap.DecreaseKey(e.other, toWeight)
			}
		}
	}
	return settled
}

// buildSearchEdges lays every surviving edge out at its lower-ranked
// endpoint, pointing to the higher-ranked one. the Forward flag marks
// edges whose original direction leads upward, Backward those leading
// downward; a two-way street contributes one edge per direction.
func (c *Contractor) buildSearchEdges() []da.CHEdge {
	var edges []da.CHEdge

	appendEdge := func(from da.NodeID, e workEdge) {
		to := e.other
		data := da.CHEdgeData{
			Weight:   e.weight,
			Duration: e.duration,
			Shortcut: e.shortcut,
			Via:      e.via,
		}
		if !e.shortcut {
			data.Via = da.INVALID_NODE_ID
		}

		switch {
		case from == to:
			data.Forward = true
			data.Backward = true
			edges = append(edges, da.CHEdge{From: from, To: to, Data: data})
		case c.rank[from] < c.rank[to]:
			data.Forward = true
			edges = append(edges, da.CHEdge{From: from, To: to, Data: data})
		default:
			data.Backward = true
			edges = append(edges, da.CHEdge{From: to, To: from, Data: data})
		}
	}

	for u := range c.outEdges {
		for _, e := range c.outEdges[u] {
			appendEdge(da.NodeID(u), e)
		}
	}
	return edges
}

// NodeRank returns the contraction order position of node. higher
// means contracted later, i.e. more important.
func (c *Contractor) NodeRank(node da.NodeID) int {
	return c.rank[node]
}
