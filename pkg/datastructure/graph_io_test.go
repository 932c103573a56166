package datastructure

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCHGraphRoundTrip(t *testing.T) {
	coords := []Coordinate{
		{Lat: -7.7713, Lon: 110.3774},
		{Lat: -7.7821, Lon: 110.3670},
		{Lat: -7.7900, Lon: 110.3601},
	}
	edges := []Edge{
		NewEdge(0, 1, 120, 120, 1400.5),
		NewEdge(1, 2, 80, 80, 900.25),
		NewEdge(1, 0, 120, 120, 1400.5),
	}
	chEdges := []CHEdge{
		{From: 0, To: 1, Data: CHEdgeData{Weight: 120, Duration: 120, Forward: true, Backward: true, Via: INVALID_NODE_ID}},
		{From: 1, To: 2, Data: CHEdgeData{Weight: 80, Duration: 80, Forward: true, Via: INVALID_NODE_ID}},
		{From: 0, To: 2, Data: CHEdgeData{Weight: 200, Duration: 200, Forward: true, Shortcut: true, Via: 1}},
	}
	ch := NewCHGraph(NewGraph(coords, edges), chEdges)

	file := filepath.Join(t.TempDir(), "contracted.graph")
	require.NoError(t, ch.WriteCHGraph(file))

	loaded, err := ReadCHGraph(file)
	require.NoError(t, err)

	require.Equal(t, ch.NumberOfNodes(), loaded.NumberOfNodes())
	require.Equal(t, ch.NumberOfEdges(), loaded.NumberOfEdges())
	assert.Equal(t, ch.GetGraph().NumberOfEdges(), loaded.GetGraph().NumberOfEdges())

	for v := NodeID(0); int(v) < ch.NumberOfNodes(); v++ {
		assert.Equal(t, ch.GetGraph().GetCoordinate(v), loaded.GetGraph().GetCoordinate(v))
	}

	for eid := EdgeID(0); int(eid) < ch.NumberOfEdges(); eid++ {
		assert.Equal(t, *ch.EdgeData(eid), *loaded.EdgeData(eid))
		assert.Equal(t, ch.Target(eid), loaded.Target(eid))
	}

	// loop tables rebuilt identically
	for v := NodeID(0); int(v) < ch.NumberOfNodes(); v++ {
		assert.Equal(t, ch.LoopWeight(v), loaded.LoopWeight(v))
	}
}

func TestReadCHGraphMissingFile(t *testing.T) {
	_, err := ReadCHGraph(filepath.Join(t.TempDir(), "does-not-exist.graph"))
	assert.Error(t, err)
}
