package roadgraph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/chokepoint-planner/internal/roadgraph"
	"github.com/jengzang/chokepoint-planner/internal/spatial"
	"github.com/jengzang/chokepoint-planner/internal/testutil"
)

func TestAddEdge_UnknownEndpoint(t *testing.T) {
	g := roadgraph.NewGraph()
	g.AddNode(1, 52, 4)

	err := g.AddEdge(roadgraph.Edge{From: 1, To: 2, Length: 10})

	assert.ErrorIs(t, err, roadgraph.ErrNodeNotFound)
}

func TestAddEdge_NegativeLength(t *testing.T) {
	g := roadgraph.NewGraph()
	g.AddNode(1, 52, 4)
	g.AddNode(2, 52.001, 4)

	err := g.AddEdge(roadgraph.Edge{From: 1, To: 2, Length: -1})

	assert.ErrorIs(t, err, roadgraph.ErrNegativeLength)
}

func TestAddEdge_ZeroLengthUsesGreatCircle(t *testing.T) {
	g := roadgraph.NewGraph()
	g.AddNode(1, 52, 4)
	g.AddNode(2, 53, 4)

	require.NoError(t, g.AddEdge(roadgraph.Edge{From: 1, To: 2}))

	e, ok := g.Edge(1, 2)
	require.True(t, ok)
	assert.InDelta(t, 111194.93, e.Length, 1)
}

func TestAddEdge_KeepsShorterParallelEdge(t *testing.T) {
	g := roadgraph.NewGraph()
	g.AddNode(1, 52, 4)
	g.AddNode(2, 52.001, 4)

	require.NoError(t, g.AddEdge(roadgraph.Edge{From: 1, To: 2, Length: 300, Tags: testutil.Tags("highway", "service")}))
	require.NoError(t, g.AddEdge(roadgraph.Edge{From: 1, To: 2, Length: 200, Tags: testutil.Tags("highway", "primary")}))
	require.NoError(t, g.AddEdge(roadgraph.Edge{From: 1, To: 2, Length: 250}))

	e, _ := g.Edge(1, 2)
	assert.Equal(t, 200.0, e.Length)
	assert.Equal(t, roadgraph.RoadClassPrimary, e.Class.Road)
	assert.Equal(t, 1, g.EdgeCount())
}

func TestDegreeCountsInAndOutEdges(t *testing.T) {
	g := testutil.CorridorGraph(t)

	assert.Equal(t, 6, g.Degree(testutil.CorridorS), "three two-way roads meet at S")
	assert.Equal(t, 4, g.Degree(testutil.CorridorA))
	assert.Equal(t, 8, g.Degree(testutil.CorridorV))
	assert.Equal(t, 2, g.Degree(testutil.CorridorE))
	assert.Equal(t, 0, g.Degree(testutil.CorridorIsland))
}

func TestDegree_OnewayAndSelfLoop(t *testing.T) {
	g := roadgraph.NewGraph()
	g.AddNode(1, 52.0, 4.0)
	g.AddNode(2, 52.001, 4.0)
	g.AddNode(3, 52.002, 4.0)
	require.NoError(t, g.AddEdge(roadgraph.Edge{From: 1, To: 2, Length: 100}))
	require.NoError(t, g.AddEdge(roadgraph.Edge{From: 3, To: 2, Length: 100}))
	require.NoError(t, g.AddEdge(roadgraph.Edge{From: 2, To: 2, Length: 10}))
	require.NoError(t, g.AddEdge(roadgraph.Edge{From: 1, To: 2, Length: 50}))

	assert.Equal(t, 1, g.Degree(1))
	assert.Equal(t, 2, g.Degree(2), "self-loop and replaced parallel edge add nothing")
	assert.Equal(t, 1, g.Degree(3))
}

func TestNearestNode(t *testing.T) {
	g := testutil.CorridorGraph(t)

	id, err := g.NearestNode(spatial.Point{Lat: 52.0099, Lon: 4.0001})
	require.NoError(t, err)
	assert.Equal(t, testutil.CorridorV, id)

	id, err = g.NearestNode(testutil.CorridorOnIsle.Point())
	require.NoError(t, err)
	assert.Equal(t, testutil.CorridorIsland, id)
}

func TestNearestNode_TieGoesToSmallerID(t *testing.T) {
	g := roadgraph.NewGraph()
	g.AddNode(7, 52.001, 4)
	g.AddNode(3, 51.999, 4)

	id, err := g.NearestNode(spatial.Point{Lat: 52, Lon: 4})

	require.NoError(t, err)
	assert.Equal(t, int64(3), id)
}

func TestNearestNode_EmptyGraph(t *testing.T) {
	_, err := roadgraph.NewGraph().NearestNode(spatial.Point{})

	assert.ErrorIs(t, err, roadgraph.ErrEmptyGraph)
}

func TestEdgesNamed(t *testing.T) {
	g := testutil.CorridorGraph(t)

	edges := g.EdgesNamed("n209")

	require.Len(t, edges, 4)
	assert.Equal(t, testutil.CorridorS, edges[0].From)
	assert.Equal(t, testutil.CorridorB, edges[0].To)
	for _, e := range edges {
		assert.Equal(t, "N209", e.Name())
	}
	assert.Empty(t, g.EdgesNamed("Unknown Road"))
}
