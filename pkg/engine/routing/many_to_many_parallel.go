package routing

import (
	"runtime"

	"github.com/mraditya/chmatrix/pkg/concurrent"
	da "github.com/mraditya/chmatrix/pkg/datastructure"
)

// ManyToManySearchParallel computes the same table as ManyToManySearch
// but fans the forward searches out over numWorkers goroutines. the
// bucket collection is built once up front and then only read; every
// worker owns its own heap and writes into its own disjoint table
// rows, so no locking is needed. paths are not collected here, large
// tables are the latency-critical case and never ask for them.
func (e *CHRoutingEngine) ManyToManySearchParallel(phantoms []da.PhantomNode,
	sourceIndices, targetIndices []int, numWorkers int) *ManyToManyTable {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

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

	ch := e.ch

	// backward phase stays sequential, it appends to one shared slice
	backwardHeap := da.NewQueryHeap()
	buckets := make([]da.NodeBucket, 0)
	for columnIdx := 0; columnIdx < numberOfTargets; columnIdx++ {
		phantom := &phantoms[targetIndices[columnIdx]]

		backwardHeap.Reset()
		insertTargetInHeap(backwardHeap, phantom)

		for !backwardHeap.Empty() {
			backwardRoutingStep(ch, columnIdx, backwardHeap, &buckets)
		}
	}
	da.SortBuckets(buckets)

	pool := concurrent.NewWorkerPool[int, int](numWorkers, numberOfSources)
	pool.StartWithWorkerState(
		func() any { return da.NewQueryHeap() },
		func(state any, rowIdx int) int {
			heap := state.(*da.QueryHeap)
			heap.Reset()

			insertSourceInHeap(heap, &phantoms[sourceIndices[rowIdx]])
			for !heap.Empty() {
				forwardRoutingStep(ch, rowIdx, numberOfTargets, heap, buckets,
					table.Weights, table.Durations, table.Middles)
			}
			return rowIdx
		})

	for rowIdx := 0; rowIdx < numberOfSources; rowIdx++ {
		pool.AddJob(rowIdx)
	}
	pool.Close()
	pool.Wait()
	for range pool.CollectResults() {
	}

	return table
}
