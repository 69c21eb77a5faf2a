package roadgraph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/chokepoint-planner/internal/roadgraph"
	"github.com/jengzang/chokepoint-planner/internal/testutil"
)

func TestAStarPath_Shortest(t *testing.T) {
	g := testutil.CorridorGraph(t)

	path, err := g.AStarPath(testutil.CorridorS, testutil.CorridorE, roadgraph.LengthCost)

	require.NoError(t, err)
	assert.Equal(t, []int64{
		testutil.CorridorS, testutil.CorridorA, testutil.CorridorV, testutil.CorridorD, testutil.CorridorE,
	}, path)
}

func TestDijkstraPath_MatchesAStarUnderLength(t *testing.T) {
	g := testutil.CorridorGraph(t)

	astar, err := g.AStarPath(testutil.CorridorE, testutil.CorridorS, roadgraph.LengthCost)
	require.NoError(t, err)
	dijkstra, err := g.DijkstraPath(testutil.CorridorE, testutil.CorridorS, roadgraph.LengthCost)
	require.NoError(t, err)

	assert.Equal(t, astar, dijkstra)
}

func TestDijkstraPath_CustomCost(t *testing.T) {
	g := testutil.CorridorGraph(t)

	motorwayOnly := func(e *roadgraph.Edge) float64 {
		if e.Class.Road == roadgraph.RoadClassMotorway {
			return e.Length
		}
		return e.Length * 10
	}

	path, err := g.DijkstraPath(testutil.CorridorS, testutil.CorridorV, motorwayOnly)

	require.NoError(t, err)
	assert.Equal(t, []int64{testutil.CorridorS, testutil.CorridorC, testutil.CorridorV}, path)
}

func TestSearch_SameNode(t *testing.T) {
	g := testutil.CorridorGraph(t)

	path, err := g.DijkstraPath(testutil.CorridorV, testutil.CorridorV, roadgraph.LengthCost)

	require.NoError(t, err)
	assert.Equal(t, []int64{testutil.CorridorV}, path)
}

func TestSearch_Unreachable(t *testing.T) {
	g := testutil.CorridorGraph(t)

	_, err := g.AStarPath(testutil.CorridorS, testutil.CorridorIsland, roadgraph.LengthCost)
	assert.ErrorIs(t, err, roadgraph.ErrNoPath)

	_, err = g.DijkstraPath(testutil.CorridorS, testutil.CorridorIsland, roadgraph.LengthCost)
	assert.ErrorIs(t, err, roadgraph.ErrNoPath)
}

func TestSearch_UnknownNode(t *testing.T) {
	g := testutil.CorridorGraph(t)

	_, err := g.DijkstraPath(testutil.CorridorS, 12345, roadgraph.LengthCost)

	assert.ErrorIs(t, err, roadgraph.ErrNodeNotFound)
}

func TestSearch_TiesResolveDeterministically(t *testing.T) {
	// Two equal-length detours between 1 and 4; the lower successor ID wins.
	g := roadgraph.NewGraph()
	g.AddNode(1, 52.000, 4.000)
	g.AddNode(2, 52.001, 4.001)
	g.AddNode(3, 52.001, 3.999)
	g.AddNode(4, 52.002, 4.000)
	for _, e := range []roadgraph.Edge{
		{From: 1, To: 3, Length: 200},
		{From: 3, To: 4, Length: 200},
		{From: 1, To: 2, Length: 200},
		{From: 2, To: 4, Length: 200},
	} {
		require.NoError(t, g.AddEdge(e))
	}

	for i := 0; i < 20; i++ {
		path, err := g.DijkstraPath(1, 4, roadgraph.LengthCost)
		require.NoError(t, err)
		require.Equal(t, []int64{1, 2, 4}, path)
	}
}
