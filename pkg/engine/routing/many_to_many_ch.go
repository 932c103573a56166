package routing

import (
	"fmt"

	"github.com/mraditya/chmatrix/pkg"
	da "github.com/mraditya/chmatrix/pkg/datastructure"
)

/*
bucket-based many-to-many search on a contraction hierarchy.

implementation of: Knopp, S. et al. (2007) "Computing Many-to-Many
Shortest Paths Using Highway Hierarchies," ALENEX 2007.
https://doi.org/10.1137/1.9781611972870.4

one backward search per target drops a bucket entry at every settled
node; the buckets are sorted by node so that each forward search can
join against them with a binary range scan while it settles nodes.
*/

// addLoopWeight fixes up a combined forward+backward weight that went
// negative. that happens only when the meeting node carries a
// self-loop edge node->node created by contraction: the true path
// passes through that loop, so its weight and duration must be added.
// returns false when the node has no loop or the corrected weight is
// still negative; such a combination is invalid and dropped.
func addLoopWeight(ch *da.CHGraph, node da.NodeID, weight *da.EdgeWeight, duration *da.EdgeDuration) bool {
	if *weight >= 0 {
		panic("addLoopWeight called with non-negative weight")
	}

	loopWeight := ch.LoopWeight(node)
	if loopWeight != da.INVALID_EDGE_WEIGHT {
		newWeightWithLoop := *weight + loopWeight
		if newWeightWithLoop >= 0 {
			*weight = newWeightWithLoop
			*duration += ch.LoopDuration(node)
			return true
		}
	}

	// no loop found or adjusted weight is still negative
	return false
}

// stallAtNode is the stall-on-demand pruning check, run once per
// DeleteMin before relaxation. it scans the edges of node usable in
// the opposite search direction: if some neighbor m already queued
// satisfies key(m) + w(m->node) < key(node), the label of node is
// dominated by a better path the opposite-direction edge proves to
// exist, and node must not be expanded.
func stallAtNode(ch *da.CHGraph, direction pkg.Direction, node da.NodeID,
	weight da.EdgeWeight, queryHeap *da.QueryHeap) bool {
	begin, end := ch.AdjacentEdgeRange(node)
	for eid := begin; eid < end; eid++ {
		data := ch.EdgeData(eid)
		reverseFlag := data.Backward
		if direction == pkg.REVERSE_DIRECTION {
			reverseFlag = data.Forward
		}
		if !reverseFlag {
			continue
		}

		to := ch.Target(eid)
		if queryHeap.WasInserted(to) {
			if queryHeap.GetKey(to)+data.Weight < weight {
				return true
			}
		}
	}
	return false
}

// relaxOutgoingEdges expands node into the heap: forward relaxation
// traverses edges flagged usable-forward, backward relaxation the
// usable-backward ones on the reverse graph. weight is the primary
// key, duration only breaks weight ties, which keeps the choice among
// equal-cost paths deterministic.
func relaxOutgoingEdges(ch *da.CHGraph, direction pkg.Direction, node da.NodeID,
	weight da.EdgeWeight, duration da.EdgeDuration, queryHeap *da.QueryHeap) {
	if stallAtNode(ch, direction, node, weight, queryHeap) {
		return
	}

	begin, end := ch.AdjacentEdgeRange(node)
	for eid := begin; eid < end; eid++ {
		data := ch.EdgeData(eid)
		usable := data.Forward
		if direction == pkg.REVERSE_DIRECTION {
			usable = data.Backward
		}
		if !usable {
			continue
		}

		if data.Weight < 0 {
			// a negative non-loop edge means the preprocessed graph is
			// corrupt; fail loudly instead of corrupting the tables
			panic(fmt.Sprintf("invalid edge weight %d on edge %d->%d", data.Weight, node, ch.Target(eid)))
		}

		to := ch.Target(eid)
		toWeight := weight + data.Weight
		toDuration := duration + data.Duration

		if !queryHeap.WasInserted(to) {
			// new node discovered -> add to heap + node info storage
			queryHeap.Insert(to, toWeight, da.HeapData{Parent: node, Duration: toDuration})
		} else if toWeight < queryHeap.GetKey(to) ||
			(toWeight == queryHeap.GetKey(to) && toDuration < queryHeap.GetData(to).Duration) {
			// found a shorter path -> update weight and set new parent
			queryHeap.SetData(to, da.HeapData{Parent: node, Duration: toDuration})
			_ = queryHeap.DecreaseKey(to, toWeight)
		}
	}
}

// insertSourceInHeap inserts the one or two search roots of a source
// phantom. offsets are negated: the cost already spent from the edge
// tail to the location is subtracted so that it cancels against the
// positive offsets of a target on the same edge.
func insertSourceInHeap(queryHeap *da.QueryHeap, phantom *da.PhantomNode) {
	if phantom.IsValidForward() {
		queryHeap.Insert(phantom.ForwardNode, -phantom.ForwardWeightOffset,
			da.HeapData{Parent: phantom.ForwardNode, Duration: -phantom.ForwardDurationOffset})
	}
	if phantom.IsValidBackward() {
		queryHeap.Insert(phantom.BackwardNode, -phantom.BackwardWeightOffset,
			da.HeapData{Parent: phantom.BackwardNode, Duration: -phantom.BackwardDurationOffset})
	}
}

func insertTargetInHeap(queryHeap *da.QueryHeap, phantom *da.PhantomNode) {
	if phantom.IsValidForward() {
		queryHeap.Insert(phantom.ForwardNode, phantom.ForwardWeightOffset,
			da.HeapData{Parent: phantom.ForwardNode, Duration: phantom.ForwardDurationOffset})
	}
	if phantom.IsValidBackward() {
		queryHeap.Insert(phantom.BackwardNode, phantom.BackwardWeightOffset,
			da.HeapData{Parent: phantom.BackwardNode, Duration: phantom.BackwardDurationOffset})
	}
}

// backwardRoutingStep settles one node of a target's backward search
// and records it into the shared bucket collection, tagged with the
// target's column index, before relaxing its reverse edges.
func backwardRoutingStep(ch *da.CHGraph, columnIdx int, queryHeap *da.QueryHeap,
	buckets *[]da.NodeBucket) {
	node := queryHeap.DeleteMin()
	targetWeight := queryHeap.GetKey(node)
	data := queryHeap.GetData(node)

	*buckets = append(*buckets,
		da.NewNodeBucket(node, data.Parent, columnIdx, targetWeight, data.Duration))

	relaxOutgoingEdges(ch, pkg.REVERSE_DIRECTION, node, targetWeight, data.Duration, queryHeap)
}

// forwardRoutingStep settles one node of a source's forward search,
// joins it against the bucket runs of that node, and updates the
// row's table cells where the combined (weight, duration) pair is
// lexicographically better.
func forwardRoutingStep(ch *da.CHGraph, rowIdx, numberOfTargets int, queryHeap *da.QueryHeap,
	buckets []da.NodeBucket, weightsTable []da.EdgeWeight, durationsTable []da.EdgeDuration,
	middleNodesTable []da.NodeID) {
	node := queryHeap.DeleteMin()
	sourceWeight := queryHeap.GetKey(node)
	sourceDuration := queryHeap.GetData(node).Duration

	for _, bucket := range da.BucketRange(buckets, node) {
		columnIdx := bucket.ColumnIndex
		idx := rowIdx*numberOfTargets + columnIdx

		newWeight := sourceWeight + bucket.Weight
		newDuration := sourceDuration + bucket.Duration

		if newWeight < 0 {
			if !addLoopWeight(ch, node, &newWeight, &newDuration) {
				// negative and uncorrectable: this combination never
				// enters the table
				continue
			}
		}

		if newWeight < weightsTable[idx] ||
			(newWeight == weightsTable[idx] && newDuration < durationsTable[idx]) {
			weightsTable[idx] = newWeight
			durationsTable[idx] = newDuration
			middleNodesTable[idx] = node
		}
	}

	relaxOutgoingEdges(ch, pkg.FORWARD_DIRECTION, node, sourceWeight, sourceDuration, queryHeap)
}

// ManyToManyTable holds the result of one many-to-many call: flat
// row-major weight/duration/middle-node tables of size
// sources x targets. A cell left at its sentinel values means the
// pair is unreachable.
type ManyToManyTable struct {
	NumRows int
	NumCols int

	Weights   []da.EdgeWeight
	Durations []da.EdgeDuration
	Middles   []da.NodeID

	// PackedPaths is filled only when the search was asked to collect
	// paths; entries are nil/empty for unreachable cells.
	PackedPaths [][]da.NodeID
}

func (t *ManyToManyTable) GetWeight(row, col int) da.EdgeWeight {
	return t.Weights[row*t.NumCols+col]
}

func (t *ManyToManyTable) GetDuration(row, col int) da.EdgeDuration {
	return t.Durations[row*t.NumCols+col]
}

func (t *ManyToManyTable) GetMiddleNode(row, col int) da.NodeID {
	return t.Middles[row*t.NumCols+col]
}

func (t *ManyToManyTable) GetPackedPath(row, col int) []da.NodeID {
	if t.PackedPaths == nil {
		return nil
	}
	return t.PackedPaths[row*t.NumCols+col]
}

func (t *ManyToManyTable) IsReachable(row, col int) bool {
	return t.Weights[row*t.NumCols+col] != da.INVALID_EDGE_WEIGHT
}

// ManyToManySearch computes shortest-path weight and duration between
// every (source, target) pair selected by the two index lists out of
// phantoms. sctx carries the per-worker reusable heap and bucket
// buffers; the call is single-threaded and may run concurrently with
// other calls as long as each owns its own context. when collectPaths
// is set, a packed node sequence is reconstructed for every reachable
// cell for later shortcut unpacking.
func (e *CHRoutingEngine) ManyToManySearch(sctx *SearchContext, phantoms []da.PhantomNode,
	sourceIndices, targetIndices []int, collectPaths bool) *ManyToManyTable {
	numberOfSources := len(sourceIndices)
	numberOfTargets := len(targetIndices)
	numberOfEntries := numberOfSources * numberOfTargets

	table := &ManyToManyTable{
		NumRows:   numberOfSources,
		NumCols:   numberOfTargets,
		Weights:   make([]da.EdgeWeight, numberOfEntries),
		Durations: make([]da.EdgeDuration, numberOfEntries),
		Middles:   make([]da.NodeID, numberOfEntries),
	}
	for i := 0; i < numberOfEntries; i++ {
		table.Weights[i] = da.INVALID_EDGE_WEIGHT
		table.Durations[i] = da.MAX_EDGE_DURATION
		table.Middles[i] = da.INVALID_NODE_ID
	}
	if collectPaths {
		table.PackedPaths = make([][]da.NodeID, numberOfEntries)
	}

	sctx.Reset()
	ch := e.ch

	// populate buckets with paths from all accessible nodes to the
	// targets via backward searches
	for columnIdx := 0; columnIdx < numberOfTargets; columnIdx++ {
		phantom := &phantoms[targetIndices[columnIdx]]

		sctx.heap.Reset()
		insertTargetInHeap(sctx.heap, phantom)

		for !sctx.heap.Empty() {
			backwardRoutingStep(ch, columnIdx, sctx.heap, &sctx.buckets)
		}
	}

	// order lookup buckets
	da.SortBuckets(sctx.buckets)

	// find shortest paths from the sources to all accessible nodes,
	// probing the buckets at every settled node
	for rowIdx := 0; rowIdx < numberOfSources; rowIdx++ {
		phantom := &phantoms[sourceIndices[rowIdx]]

		sctx.heap.Reset()
		insertSourceInHeap(sctx.heap, phantom)

		for !sctx.heap.Empty() {
			forwardRoutingStep(ch, rowIdx, numberOfTargets, sctx.heap, sctx.buckets,
				table.Weights, table.Durations, table.Middles)
		}

		if collectPaths {
			// the forward heap still holds this row's parent chains;
			// reconstruct before the next row resets it
			for columnIdx := 0; columnIdx < numberOfTargets; columnIdx++ {
				idx := rowIdx*numberOfTargets + columnIdx
				table.PackedPaths[idx] = retrievePackedPath(
					table.Middles[idx], columnIdx, sctx.heap, sctx.buckets)
			}
		}
	}

	return table
}
