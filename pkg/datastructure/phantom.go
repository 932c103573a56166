package datastructure

// PhantomNode is a query location expressed relative to the directed
// edge(s) it snaps onto. ForwardNode is the tail of the directed edge
// the location lies on when driving in the edge direction;
// ForwardWeightOffset is the cost already spent from that tail up to
// the location. BackwardNode/BackwardWeightOffset describe the
// opposite-direction edge of a two-way street. A one-way snap leaves
// the other side at INVALID_NODE_ID.
//
// A source search inserts its roots with negated offsets, a target
// search with positive ones, so that the two cancel when forward and
// backward searches meet; this is what makes a combined weight
// transiently negative when the target lies behind the source on the
// same edge (resolved by the self-loop correction in the query).
type PhantomNode struct {
	ForwardNode  NodeID
	BackwardNode NodeID

	ForwardWeightOffset   EdgeWeight
	ForwardDurationOffset EdgeDuration

	BackwardWeightOffset   EdgeWeight
	BackwardDurationOffset EdgeDuration

	Location Coordinate
}

func NewInvalidPhantomNode() PhantomNode {
	return PhantomNode{
		ForwardNode:  INVALID_NODE_ID,
		BackwardNode: INVALID_NODE_ID,
	}
}

// NewPhantomNodeAt places a phantom exactly at a graph node with zero
// offsets. used by tests and by node-id queries.
func NewPhantomNodeAt(node NodeID) PhantomNode {
	return PhantomNode{
		ForwardNode:  node,
		BackwardNode: INVALID_NODE_ID,
	}
}

func (p *PhantomNode) IsValidForward() bool {
	return p.ForwardNode != INVALID_NODE_ID
}

func (p *PhantomNode) IsValidBackward() bool {
	return p.BackwardNode != INVALID_NODE_ID
}

func (p *PhantomNode) IsValid() bool {
	return p.IsValidForward() || p.IsValidBackward()
}
