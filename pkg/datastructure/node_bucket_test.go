package datastructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortBucketsGroupsByNodeThenColumn(t *testing.T) {
	buckets := []NodeBucket{
		NewNodeBucket(5, 5, 1, 10, 10),
		NewNodeBucket(2, 2, 0, 3, 3),
		NewNodeBucket(5, 4, 0, 7, 7),
		NewNodeBucket(2, 1, 2, 9, 9),
	}
	SortBuckets(buckets)

	assert.Equal(t, NodeID(2), buckets[0].MiddleNode)
	assert.Equal(t, 0, buckets[0].ColumnIndex)
	assert.Equal(t, NodeID(2), buckets[1].MiddleNode)
	assert.Equal(t, 2, buckets[1].ColumnIndex)
	assert.Equal(t, NodeID(5), buckets[2].MiddleNode)
	assert.Equal(t, 0, buckets[2].ColumnIndex)
	assert.Equal(t, NodeID(5), buckets[3].MiddleNode)
	assert.Equal(t, 1, buckets[3].ColumnIndex)
}

func TestBucketRange(t *testing.T) {
	buckets := []NodeBucket{
		NewNodeBucket(1, 1, 0, 1, 1),
		NewNodeBucket(3, 1, 0, 2, 2),
		NewNodeBucket(3, 2, 1, 4, 4),
		NewNodeBucket(8, 3, 0, 6, 6),
	}
	SortBuckets(buckets)

	assert.Len(t, BucketRange(buckets, 3), 2)
	assert.Len(t, BucketRange(buckets, 1), 1)
	assert.Empty(t, BucketRange(buckets, 5))
	assert.Empty(t, BucketRange(buckets, 100))
}

func TestBucketFor(t *testing.T) {
	buckets := []NodeBucket{
		NewNodeBucket(3, 1, 0, 2, 2),
		NewNodeBucket(3, 2, 1, 4, 4),
	}
	SortBuckets(buckets)

	b, ok := BucketFor(buckets, 3, 1)
	require.True(t, ok)
	assert.Equal(t, NodeID(2), b.ParentNode)
	assert.Equal(t, EdgeWeight(4), b.Weight)

	_, ok = BucketFor(buckets, 3, 2)
	assert.False(t, ok)
	_, ok = BucketFor(buckets, 4, 0)
	assert.False(t, ok)
}
