package routing

import (
	da "github.com/mraditya/chmatrix/pkg/datastructure"
)

// DijkstraSolver runs plain Dijkstra on the original (uncontracted)
// network. It serves as the exact baseline for validating contracted
// query results and as the fallback when no hierarchy is loaded.
type DijkstraSolver struct {
	g *da.Graph
}

func NewDijkstraSolver(g *da.Graph) *DijkstraSolver {
	return &DijkstraSolver{g: g}
}

// ShortestPath returns the cheapest weight, its duration and the node
// sequence from source to target. Weight is INVALID_EDGE_WEIGHT when
// target is unreachable. Ties on weight break by duration, matching
// the contracted search.
func (d *DijkstraSolver) ShortestPath(source, target da.NodeID) (da.EdgeWeight, da.EdgeDuration, []da.NodeID) {
	heap := da.NewQueryHeap()
	heap.Insert(source, 0, da.HeapData{Parent: source})

	for !heap.Empty() {
		node := heap.DeleteMin()
		weight := heap.GetKey(node)
		duration := heap.GetData(node).Duration

		if node == target {
			return weight, duration, buildPath(heap, source, target)
		}

		d.g.ForOutEdgesOf(node, func(e *da.OutEdge, _ da.EdgeID) {
			to := e.GetHead()
			toWeight := weight + e.GetWeight()
			toDuration := duration + e.GetDuration()

			if !heap.WasInserted(to) {
				heap.Insert(to, toWeight, da.HeapData{Parent: node, Duration: toDuration})
			} else if toWeight < heap.GetKey(to) ||
				(toWeight == heap.GetKey(to) && toDuration < heap.GetData(to).Duration) {
				heap.SetData(to, da.HeapData{Parent: node, Duration: toDuration})
				_ = heap.DecreaseKey(to, toWeight)
			}
		})
	}

	return da.INVALID_EDGE_WEIGHT, da.MAX_EDGE_DURATION, nil
}

// OneToMany settles the whole graph from source and reads off the
// weights to every listed target.
func (d *DijkstraSolver) OneToMany(source da.NodeID, targets []da.NodeID) ([]da.EdgeWeight, []da.EdgeDuration) {
	heap := da.NewQueryHeap()
	heap.Insert(source, 0, da.HeapData{Parent: source})

	for !heap.Empty() {
		node := heap.DeleteMin()
		weight := heap.GetKey(node)
		duration := heap.GetData(node).Duration

		d.g.ForOutEdgesOf(node, func(e *da.OutEdge, _ da.EdgeID) {
			to := e.GetHead()
			toWeight := weight + e.GetWeight()
			toDuration := duration + e.GetDuration()

			if !heap.WasInserted(to) {
				heap.Insert(to, toWeight, da.HeapData{Parent: node, Duration: toDuration})
			} else if toWeight < heap.GetKey(to) ||
				(toWeight == heap.GetKey(to) && toDuration < heap.GetData(to).Duration) {
				heap.SetData(to, da.HeapData{Parent: node, Duration: toDuration})
				_ = heap.DecreaseKey(to, toWeight)
			}
		})
	}

	weights := make([]da.EdgeWeight, len(targets))
	durations := make([]da.EdgeDuration, len(targets))
	for i, t := range targets {
		if heap.WasInserted(t) {
			weights[i] = heap.GetKey(t)
			durations[i] = heap.GetData(t).Duration
		} else {
			weights[i] = da.INVALID_EDGE_WEIGHT
			durations[i] = da.MAX_EDGE_DURATION
		}
	}
	return weights, durations
}

func buildPath(heap *da.QueryHeap, source, target da.NodeID) []da.NodeID {
	path := []da.NodeID{target}
	node := target
	for node != source {
		node = heap.GetData(node).Parent
		path = append(path, node)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
