package routing

import (
	da "github.com/mraditya/chmatrix/pkg/datastructure"
)

// retrievePackedPath reconstructs the packed node sequence of one
// table cell from the two half search trees: the forward half is read
// off the heap parent chain of the middle node, the backward half off
// the (node, column) bucket chain. The result still contains shortcut
// hops and must be expanded by the path unpacker before geometry use.
// Returns nil exactly when the cell is unreachable.
func retrievePackedPath(middleNode da.NodeID, columnIdx int,
	forwardHeap *da.QueryHeap, buckets []da.NodeBucket) []da.NodeID {
	if middleNode == da.INVALID_NODE_ID {
		return nil
	}

	packedPath := retrieveForwardHalf(middleNode, forwardHeap)
	return appendBackwardHalf(packedPath, middleNode, columnIdx, buckets)
}

// retrieveForwardHalf walks the forward heap parents from the middle
// node up to the search root and returns the chain in travel order,
// root first. The root marks itself as its own parent.
func retrieveForwardHalf(middleNode da.NodeID, forwardHeap *da.QueryHeap) []da.NodeID {
	path := []da.NodeID{middleNode}

	node := middleNode
	for {
		parent := forwardHeap.GetData(node).Parent
		if parent == node || !forwardHeap.WasInserted(parent) {
			break
		}
		path = append(path, parent)
		node = parent
	}

	// reverse into root -> middle order
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// appendBackwardHalf follows the bucket chain of one target column
// from the middle node down to the backward search root, appending
// every hop after the middle. A backward root also marks itself as
// its own parent; a missing chain entry ends the walk (the middle was
// the backward root of a phantom inserted directly).
func appendBackwardHalf(path []da.NodeID, middleNode da.NodeID, columnIdx int,
	buckets []da.NodeBucket) []da.NodeID {
	node := middleNode
	for {
		bucket, ok := da.BucketFor(buckets, node, columnIdx)
		if !ok || bucket.ParentNode == node {
			break
		}
		path = append(path, bucket.ParentNode)
		node = bucket.ParentNode
	}
	return path
}
