package routing

import (
	"github.com/mraditya/chmatrix/pkg/datastructure"
)

// SearchContext owns the mutable scratch state of one query worker:
// the addressable query heap and the bucket buffer. A context must not
// be shared between goroutines; each worker allocates one and reuses
// it across calls, so the buffers are cleared between queries instead
// of reallocated.
type SearchContext struct {
	heap    *datastructure.QueryHeap
	buckets []datastructure.NodeBucket
}

func NewSearchContext() *SearchContext {
	return &SearchContext{
		heap:    datastructure.NewQueryHeap(),
		buckets: make([]datastructure.NodeBucket, 0),
	}
}

// Reset prepares the context for a fresh many-to-many call.
func (sc *SearchContext) Reset() {
	sc.heap.Reset()
	sc.buckets = sc.buckets[:0]
}
