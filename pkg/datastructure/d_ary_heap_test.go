package datastructure

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinHeapExtractsInOrder(t *testing.T) {
	h := NewFourAryHeap[NodeID]()

	ranks := []EdgeWeight{7, 3, 9, 1, 5, 3}
	for i, r := range ranks {
		h.Insert(NewPriorityQueueNode(r, NodeID(i)))
	}

	sorted := append([]EdgeWeight(nil), ranks...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	for _, want := range sorted {
		item, err := h.ExtractMin()
		require.NoError(t, err)
		assert.Equal(t, want, item.GetRank())
	}
	assert.True(t, h.IsEmpty())
}

func TestMinHeapDecreaseKey(t *testing.T) {
	h := NewBinaryHeap[NodeID]()

	a := NewPriorityQueueNode(EdgeWeight(10), NodeID(0))
	b := NewPriorityQueueNode(EdgeWeight(20), NodeID(1))
	h.Insert(a)
	h.Insert(b)

	require.NoError(t, h.DecreaseKey(b, 5))

	item, err := h.ExtractMin()
	require.NoError(t, err)
	assert.Equal(t, NodeID(1), item.GetItem())

	// increasing is rejected
	assert.Error(t, h.DecreaseKey(a, 100))
}

func TestMinHeapDecreaseKeyOnExtractedItem(t *testing.T) {
	h := NewFourAryHeap[NodeID]()

	a := NewPriorityQueueNode(EdgeWeight(1), NodeID(0))
	h.Insert(a)
	_, err := h.ExtractMin()
	require.NoError(t, err)

	assert.Error(t, h.DecreaseKey(a, 0))
}

func TestMinHeapRandomized(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	h := NewFourAryHeap[NodeID]()

	n := 1000
	ranks := make([]EdgeWeight, n)
	for i := 0; i < n; i++ {
		ranks[i] = EdgeWeight(rng.Intn(100000))
		h.Insert(NewPriorityQueueNode(ranks[i], NodeID(i)))
	}
	sort.Slice(ranks, func(i, j int) bool { return ranks[i] < ranks[j] })

	for i := 0; i < n; i++ {
		item, err := h.ExtractMin()
		require.NoError(t, err)
		assert.Equal(t, ranks[i], item.GetRank())
	}
}

func TestQueryHeapSettledEntriesStayAddressable(t *testing.T) {
	q := NewQueryHeap()

	q.Insert(3, 10, HeapData{Parent: 3, Duration: 10})
	q.Insert(7, 5, HeapData{Parent: 3, Duration: 5})

	node := q.DeleteMin()
	assert.Equal(t, NodeID(7), node)

	// settled label still readable
	assert.True(t, q.WasInserted(7))
	assert.Equal(t, EdgeWeight(5), q.GetKey(7))
	assert.Equal(t, NodeID(3), q.GetData(7).Parent)

	q.Reset()
	assert.False(t, q.WasInserted(7))
	assert.True(t, q.Empty())
}
