package datastructure

import (
	"sort"
)

// NodeBucket records one node settled by the backward search of a
// single target column: the settled node, its parent in that backward
// search tree, the target's column index and the cost from the node to
// the target. Buckets are appended by the backward searches only and
// read-only afterwards.
type NodeBucket struct {
	MiddleNode  NodeID
	ParentNode  NodeID
	ColumnIndex int
	Weight      EdgeWeight
	Duration    EdgeDuration
}

func NewNodeBucket(middleNode, parentNode NodeID, columnIndex int,
	weight EdgeWeight, duration EdgeDuration) NodeBucket {
	return NodeBucket{
		MiddleNode:  middleNode,
		ParentNode:  parentNode,
		ColumnIndex: columnIndex,
		Weight:      weight,
		Duration:    duration,
	}
}

// SortBuckets orders the bucket collection by (MiddleNode,
// ColumnIndex) so that all columns of one node form a contiguous run
// and a single (node, column) chain entry is binary-searchable.
func SortBuckets(buckets []NodeBucket) {
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].MiddleNode != buckets[j].MiddleNode {
			return buckets[i].MiddleNode < buckets[j].MiddleNode
		}
		return buckets[i].ColumnIndex < buckets[j].ColumnIndex
	})
}

// BucketRange returns the contiguous run of sorted bucket entries for
// node, covering every target column that settled it.
func BucketRange(buckets []NodeBucket, node NodeID) []NodeBucket {
	lo := sort.Search(len(buckets), func(i int) bool {
		return buckets[i].MiddleNode >= node
	})
	hi := sort.Search(len(buckets), func(i int) bool {
		return buckets[i].MiddleNode > node
	})
	return buckets[lo:hi]
}

// BucketFor returns the unique sorted bucket entry for (node, column),
// if any.
func BucketFor(buckets []NodeBucket, node NodeID, column int) (NodeBucket, bool) {
	lo := sort.Search(len(buckets), func(i int) bool {
		if buckets[i].MiddleNode != node {
			return buckets[i].MiddleNode > node
		}
		return buckets[i].ColumnIndex >= column
	})
	if lo < len(buckets) && buckets[lo].MiddleNode == node && buckets[lo].ColumnIndex == column {
		return buckets[lo], true
	}
	return NodeBucket{}, false
}
