package datastructure

// HeapData is the per-node auxiliary data of a many-to-many query
// search: the parent node in the search tree and the travel duration
// accumulated so far. A search root is marked by Parent == the node
// itself.
type HeapData struct {
	Parent   NodeID
	Duration EdgeDuration
}

type queryHeapEntry struct {
	weight EdgeWeight
	data   HeapData
	hnode  *PriorityQueueNode[NodeID]
}

// QueryHeap is the addressable min-priority-queue of a single search
// episode, keyed by tentative path weight. Entries stay addressable
// (WasInserted/GetKey/GetData) after DeleteMin so that settled labels
// and parent pointers survive until the episode ends. One QueryHeap is
// owned per worker and Reset between episodes instead of reallocated.
type QueryHeap struct {
	heap    *MinHeap[NodeID]
	entries map[NodeID]*queryHeapEntry
}

func NewQueryHeap() *QueryHeap {
	return &QueryHeap{
		heap:    NewFourAryHeap[NodeID](),
		entries: make(map[NodeID]*queryHeapEntry),
	}
}

// Reset clears the episode state but keeps the allocated buffers.
func (q *QueryHeap) Reset() {
	q.heap.Clear()
	clear(q.entries)
}

func (q *QueryHeap) Empty() bool {
	return q.heap.IsEmpty()
}

// Insert adds a node never seen in this episode.
func (q *QueryHeap) Insert(node NodeID, weight EdgeWeight, data HeapData) {
	hnode := NewPriorityQueueNode(weight, node)
	q.entries[node] = &queryHeapEntry{weight: weight, data: data, hnode: hnode}
	q.heap.Insert(hnode)
}

// WasInserted reports whether node was ever inserted in this episode,
// settled or not.
func (q *QueryHeap) WasInserted(node NodeID) bool {
	_, ok := q.entries[node]
	return ok
}

func (q *QueryHeap) GetKey(node NodeID) EdgeWeight {
	return q.entries[node].weight
}

func (q *QueryHeap) GetData(node NodeID) HeapData {
	return q.entries[node].data
}

func (q *QueryHeap) SetData(node NodeID, data HeapData) {
	q.entries[node].data = data
}

// DecreaseKey lowers the key of a node still queued. the entry weight
// is updated together with the heap rank so GetKey stays consistent.
func (q *QueryHeap) DecreaseKey(node NodeID, weight EdgeWeight) error {
	entry := q.entries[node]
	entry.weight = weight
	return q.heap.DecreaseKey(entry.hnode, weight)
}

// DeleteMin settles and returns the node with the smallest key.
// Undefined if the heap is empty.
func (q *QueryHeap) DeleteMin() NodeID {
	hnode, _ := q.heap.ExtractMin()
	return hnode.GetItem()
}

func (q *QueryHeap) MinKey() EdgeWeight {
	return q.heap.GetMinrank()
}
