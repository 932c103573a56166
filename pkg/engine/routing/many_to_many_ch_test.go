package routing

import (
	"math/rand"
	"testing"

	"github.com/mraditya/chmatrix/pkg/contractor"
	da "github.com/mraditya/chmatrix/pkg/datastructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func dummyCoords(n int) []da.Coordinate {
	return make([]da.Coordinate, n)
}

func buildCH(t *testing.T, numNodes int, edges []da.Edge) *da.CHGraph {
	t.Helper()
	g := da.NewGraph(dummyCoords(numNodes), edges)
	return contractor.NewContractor(g, zap.NewNop()).Contract()
}

func phantomsAt(nodes ...da.NodeID) []da.PhantomNode {
	phantoms := make([]da.PhantomNode, len(nodes))
	for i, n := range nodes {
		phantoms[i] = da.NewPhantomNodeAt(n)
	}
	return phantoms
}

// line graph 0->1->2->3->4 with a slow 0->2 alternative; node 5 is
// isolated.
func lineGraphEdges() []da.Edge {
	return []da.Edge{
		da.NewEdge(0, 1, 1, 1, 10),
		da.NewEdge(1, 2, 1, 1, 10),
		da.NewEdge(0, 2, 5, 5, 50),
		da.NewEdge(2, 3, 1, 1, 10),
		da.NewEdge(3, 4, 1, 1, 10),
	}
}

func TestManyToManyLineGraph(t *testing.T) {
	ch := buildCH(t, 6, lineGraphEdges())
	engine := NewCHRoutingEngine(ch, zap.NewNop(), nil)

	phantoms := phantomsAt(0, 4)
	table := engine.ManyToManySearch(NewSearchContext(), phantoms, []int{0}, []int{1}, false)

	require.True(t, table.IsReachable(0, 0))
	assert.Equal(t, da.EdgeWeight(4), table.GetWeight(0, 0))
	assert.Equal(t, da.EdgeDuration(4), table.GetDuration(0, 0))
	assert.NotEqual(t, da.INVALID_NODE_ID, table.GetMiddleNode(0, 0))
}

func TestManyToManyUnreachableKeepsSentinels(t *testing.T) {
	ch := buildCH(t, 6, lineGraphEdges())
	engine := NewCHRoutingEngine(ch, zap.NewNop(), nil)

	// node 5 is isolated, and 4 has no outgoing edges
	phantoms := phantomsAt(0, 4, 5)
	table := engine.ManyToManySearch(NewSearchContext(), phantoms, []int{1, 2}, []int{0}, true)

	assert.False(t, table.IsReachable(0, 0))
	assert.False(t, table.IsReachable(1, 0))
	assert.Equal(t, da.INVALID_EDGE_WEIGHT, table.GetWeight(0, 0))
	assert.Equal(t, da.MAX_EDGE_DURATION, table.GetDuration(0, 0))
	assert.Equal(t, da.INVALID_NODE_ID, table.GetMiddleNode(0, 0))
	assert.Nil(t, table.GetPackedPath(0, 0))
	assert.Nil(t, table.GetPackedPath(1, 0))
}

func TestManyToManyFullMatrix(t *testing.T) {
	ch := buildCH(t, 6, lineGraphEdges())
	engine := NewCHRoutingEngine(ch, zap.NewNop(), nil)

	phantoms := phantomsAt(0, 1, 2, 3, 4)
	indices := []int{0, 1, 2, 3, 4}
	table := engine.ManyToManySearch(NewSearchContext(), phantoms, indices, indices, false)

	// diagonal is zero
	for i := 0; i < 5; i++ {
		require.True(t, table.IsReachable(i, i))
		assert.Equal(t, da.EdgeWeight(0), table.GetWeight(i, i))
	}

	assert.Equal(t, da.EdgeWeight(2), table.GetWeight(0, 2))
	assert.Equal(t, da.EdgeWeight(3), table.GetWeight(1, 4))
	// the graph is a one-way chain, nothing leads back
	assert.False(t, table.IsReachable(4, 0))
	assert.False(t, table.IsReachable(2, 1))
}

func TestManyToManySearchContextReuse(t *testing.T) {
	ch := buildCH(t, 6, lineGraphEdges())
	engine := NewCHRoutingEngine(ch, zap.NewNop(), nil)

	sctx := NewSearchContext()
	phantoms := phantomsAt(0, 4)

	first := engine.ManyToManySearch(sctx, phantoms, []int{0}, []int{1}, false)
	second := engine.ManyToManySearch(sctx, phantoms, []int{0}, []int{1}, false)

	assert.Equal(t, first.Weights, second.Weights)
	assert.Equal(t, first.Durations, second.Durations)
	assert.Equal(t, first.Middles, second.Middles)
}

func TestManyToManyPackedPathUnpacksToOriginalNodes(t *testing.T) {
	ch := buildCH(t, 6, lineGraphEdges())
	engine := NewCHRoutingEngine(ch, zap.NewNop(), nil)

	phantoms := phantomsAt(0, 4)
	table := engine.ManyToManySearch(NewSearchContext(), phantoms, []int{0}, []int{1}, true)

	require.True(t, table.IsReachable(0, 0))
	packed := table.GetPackedPath(0, 0)
	require.NotEmpty(t, packed)
	assert.Equal(t, da.NodeID(0), packed[0])
	assert.Equal(t, da.NodeID(4), packed[len(packed)-1])

	unpacked, err := engine.UnpackPath(packed)
	require.NoError(t, err)
	assert.Equal(t, []da.NodeID{0, 1, 2, 3, 4}, unpacked)
}

// a source and a target snapped onto the same directed edge, target
// ahead of the source: the offsets must cancel at the shared tail.
func TestManyToManySameEdgeTargetAhead(t *testing.T) {
	edges := []da.Edge{da.NewEdge(0, 1, 10, 10, 100)}
	ch := buildCH(t, 2, edges)
	engine := NewCHRoutingEngine(ch, zap.NewNop(), nil)

	source := da.PhantomNode{
		ForwardNode: 0, BackwardNode: da.INVALID_NODE_ID,
		ForwardWeightOffset: 4, ForwardDurationOffset: 4,
	}
	target := da.PhantomNode{
		ForwardNode: 0, BackwardNode: da.INVALID_NODE_ID,
		ForwardWeightOffset: 6, ForwardDurationOffset: 6,
	}

	table := engine.ManyToManySearch(NewSearchContext(),
		[]da.PhantomNode{source, target}, []int{0}, []int{1}, false)

	require.True(t, table.IsReachable(0, 0))
	assert.Equal(t, da.EdgeWeight(2), table.GetWeight(0, 0))
}

// target behind the source on the same edge: the combined weight goes
// negative and is only valid through the node's self-loop.
func TestManyToManyLoopWeightCorrection(t *testing.T) {
	g := da.NewGraph(dummyCoords(2), []da.Edge{da.NewEdge(0, 1, 10, 10, 100)})

	withLoop := da.NewCHGraph(g, []da.CHEdge{
		{From: 0, To: 1, Data: da.CHEdgeData{Weight: 10, Duration: 10, Forward: true, Via: da.INVALID_NODE_ID}},
		{From: 0, To: 0, Data: da.CHEdgeData{Weight: 3, Duration: 3, Forward: true, Backward: true, Via: da.INVALID_NODE_ID}},
	})
	withoutLoop := da.NewCHGraph(g, []da.CHEdge{
		{From: 0, To: 1, Data: da.CHEdgeData{Weight: 10, Duration: 10, Forward: true, Via: da.INVALID_NODE_ID}},
	})

	source := da.PhantomNode{
		ForwardNode: 0, BackwardNode: da.INVALID_NODE_ID,
		ForwardWeightOffset: 6, ForwardDurationOffset: 6,
	}
	target := da.PhantomNode{
		ForwardNode: 0, BackwardNode: da.INVALID_NODE_ID,
		ForwardWeightOffset: 4, ForwardDurationOffset: 4,
	}
	phantoms := []da.PhantomNode{source, target}

	engine := NewCHRoutingEngine(withLoop, zap.NewNop(), nil)
	table := engine.ManyToManySearch(NewSearchContext(), phantoms, []int{0}, []int{1}, false)
	require.True(t, table.IsReachable(0, 0))
	assert.Equal(t, da.EdgeWeight(1), table.GetWeight(0, 0))
	assert.Equal(t, da.EdgeDuration(1), table.GetDuration(0, 0))

	engine = NewCHRoutingEngine(withoutLoop, zap.NewNop(), nil)
	table = engine.ManyToManySearch(NewSearchContext(), phantoms, []int{0}, []int{1}, false)
	assert.False(t, table.IsReachable(0, 0))
}

func randomGraphEdges(rng *rand.Rand, numNodes, numEdges int) []da.Edge {
	edges := make([]da.Edge, 0, numEdges)
	for i := 0; i < numEdges; i++ {
		u := da.NodeID(rng.Intn(numNodes))
		v := da.NodeID(rng.Intn(numNodes))
		if u == v {
			continue
		}
		w := da.EdgeWeight(1 + rng.Intn(100))
		edges = append(edges, da.NewEdge(u, v, w, da.EdgeDuration(w), float64(w)))
	}
	return edges
}

func TestManyToManyMatchesDijkstraOnRandomGraphs(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for round := 0; round < 5; round++ {
		numNodes := 40 + rng.Intn(40)
		edges := randomGraphEdges(rng, numNodes, numNodes*5)

		g := da.NewGraph(dummyCoords(numNodes), edges)
		ch := contractor.NewContractor(g, zap.NewNop()).Contract()
		engine := NewCHRoutingEngine(ch, zap.NewNop(), nil)
		oracle := NewDijkstraSolver(g)

		nodes := make([]da.NodeID, 0, 8)
		for len(nodes) < 8 {
			nodes = append(nodes, da.NodeID(rng.Intn(numNodes)))
		}

		phantoms := phantomsAt(nodes...)
		indices := make([]int, len(nodes))
		for i := range indices {
			indices[i] = i
		}
		table := engine.ManyToManySearch(NewSearchContext(), phantoms, indices, indices, false)

		for row, src := range nodes {
			wantWeights, _ := oracle.OneToMany(src, nodes)
			for col := range nodes {
				assert.Equal(t, wantWeights[col], table.GetWeight(row, col),
					"round %d: %d->%d", round, src, nodes[col])
			}
		}
	}
}

func TestManyToManyParallelMatchesSequential(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	numNodes := 80
	edges := randomGraphEdges(rng, numNodes, numNodes*5)

	ch := buildCH(t, numNodes, edges)
	engine := NewCHRoutingEngine(ch, zap.NewNop(), nil)

	nodes := make([]da.NodeID, 12)
	for i := range nodes {
		nodes[i] = da.NodeID(rng.Intn(numNodes))
	}
	phantoms := phantomsAt(nodes...)
	indices := make([]int, len(nodes))
	for i := range indices {
		indices[i] = i
	}

	sequential := engine.ManyToManySearch(NewSearchContext(), phantoms, indices, indices, false)
	parallel := engine.ManyToManySearchParallel(phantoms, indices, indices, 4)

	assert.Equal(t, sequential.Weights, parallel.Weights)
	assert.Equal(t, sequential.Durations, parallel.Durations)
}

func TestManyToManyEmptyInputs(t *testing.T) {
	ch := buildCH(t, 6, lineGraphEdges())
	engine := NewCHRoutingEngine(ch, zap.NewNop(), nil)

	table := engine.ManyToManySearch(NewSearchContext(), nil, nil, nil, false)
	assert.Equal(t, 0, table.NumRows)
	assert.Equal(t, 0, table.NumCols)
	assert.Empty(t, table.Weights)
}
