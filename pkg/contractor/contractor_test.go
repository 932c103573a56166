package contractor

import (
	"math/rand"
	"testing"

	da "github.com/mraditya/chmatrix/pkg/datastructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func randomGraph(rng *rand.Rand, numNodes, numEdges int) *da.Graph {
	edges := make([]da.Edge, 0, numEdges)
	for i := 0; i < numEdges; i++ {
		u := da.NodeID(rng.Intn(numNodes))
		v := da.NodeID(rng.Intn(numNodes))
		if u == v {
			continue
		}
		w := da.EdgeWeight(1 + rng.Intn(50))
		edges = append(edges, da.NewEdge(u, v, w, da.EdgeDuration(w), float64(w)))
	}
	return da.NewGraph(make([]da.Coordinate, numNodes), edges)
}

func TestContractAssignsUniqueRanks(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	g := randomGraph(rng, 50, 200)

	c := NewContractor(g, zap.NewNop())
	c.Contract()

	seen := make(map[int]bool)
	for v := 0; v < g.NumberOfNodes(); v++ {
		rank := c.NodeRank(da.NodeID(v))
		assert.False(t, seen[rank], "rank %d assigned twice", rank)
		assert.GreaterOrEqual(t, rank, 0)
		assert.Less(t, rank, g.NumberOfNodes())
		seen[rank] = true
	}
}

func TestContractPreservesOriginalEdges(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	g := randomGraph(rng, 40, 160)

	ch := NewContractor(g, zap.NewNop()).Contract()

	for u := da.NodeID(0); int(u) < g.NumberOfNodes(); u++ {
		g.ForOutEdgesOf(u, func(e *da.OutEdge, _ da.EdgeID) {
			data, ok := ch.FindSmallestEdge(u, e.GetHead())
			require.True(t, ok, "edge %d->%d lost", u, e.GetHead())
			assert.LessOrEqual(t, data.Weight, e.GetWeight())
		})
	}
}

func TestContractShortcutsCarryViaNode(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	g := randomGraph(rng, 60, 240)

	ch := NewContractor(g, zap.NewNop()).Contract()

	shortcuts := 0
	for eid := da.EdgeID(0); int(eid) < ch.NumberOfEdges(); eid++ {
		data := ch.EdgeData(eid)
		if data.Shortcut {
			shortcuts++
			assert.NotEqual(t, da.INVALID_NODE_ID, data.Via)
		} else {
			assert.Equal(t, da.INVALID_NODE_ID, data.Via)
		}
	}
	// a graph this dense contracts with at least some shortcuts
	assert.Greater(t, shortcuts, 0)
}

func TestContractEdgesStoredAtLowerRankedEndpoint(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	g := randomGraph(rng, 50, 200)

	c := NewContractor(g, zap.NewNop())
	ch := c.Contract()

	for from := da.NodeID(0); int(from) < g.NumberOfNodes(); from++ {
		begin, end := ch.AdjacentEdgeRange(from)
		for eid := begin; eid < end; eid++ {
			to := ch.Target(eid)
			if from == to {
				continue
			}
			assert.Less(t, c.NodeRank(from), c.NodeRank(to),
				"edge %d->%d stored at higher-ranked endpoint", from, to)
		}
	}
}
