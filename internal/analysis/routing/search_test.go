package routing

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jengzang/chokepoint-planner/internal/config"
	"github.com/jengzang/chokepoint-planner/internal/models"
	"github.com/jengzang/chokepoint-planner/internal/roadgraph"
	"github.com/jengzang/chokepoint-planner/internal/testutil"
)

func newCorridorSearcher(t *testing.T) *Searcher {
	t.Helper()
	return NewSearcher(testutil.CorridorGraph(t), config.DefaultTuning(), zap.NewNop())
}

func computeCorridor(t *testing.T, opts Options) Result {
	t.Helper()
	return newCorridorSearcher(t).Compute(testutil.CorridorStart, testutil.CorridorVia, testutil.CorridorEnd, opts)
}

func TestCompute_ThreeDistinctProfiles(t *testing.T) {
	res := computeCorridor(t, Options{})

	require.Equal(t, OutcomeComputed, res.Outcome)
	require.NoError(t, res.Err)
	require.Len(t, res.Routes, 3)

	s, v, e := testutil.CorridorS, testutil.CorridorV, testutil.CorridorE
	d := testutil.CorridorD
	assert.Equal(t, []int64{s, testutil.CorridorA, v, d, e}, res.Routes[models.RouteIDShortest].Nodes)
	assert.Equal(t, []int64{s, testutil.CorridorC, v, d, e}, res.Routes[models.RouteIDLogical].Nodes)
	assert.Equal(t, []int64{s, testutil.CorridorB, v, d, e}, res.Routes[models.RouteIDSafest].Nodes)
}

func TestCompute_RoutesPassThroughWaypointNodes(t *testing.T) {
	res := computeCorridor(t, Options{SafeRoads: []string{"N209"}})

	for _, r := range res.Routes {
		require.NotEmpty(t, r.Nodes)
		assert.Equal(t, testutil.CorridorS, r.Nodes[0], r.ID)
		assert.Contains(t, r.Nodes, testutil.CorridorV, r.ID)
		assert.Equal(t, testutil.CorridorE, r.Nodes[len(r.Nodes)-1], r.ID)
		assert.NoError(t, r.Validate())
		assert.False(t, r.Degraded)
	}
}

func TestCompute_Deterministic(t *testing.T) {
	first := computeCorridor(t, Options{SafeRoads: []string{"A16", "Koningskade"}})
	second := computeCorridor(t, Options{SafeRoads: []string{"A16", "Koningskade"}})

	assert.Equal(t, first, second)
}

func TestCompute_RouteMetadata(t *testing.T) {
	res := computeCorridor(t, Options{})
	r := res.Routes[models.RouteIDShortest]

	assert.Equal(t, "Shortest route", r.Label)
	assert.Equal(t, models.RouteKindShortest, r.Kind)
	assert.InDelta(t, 3200, r.LengthM, 1e-9)
	assert.Equal(t, 3, r.TurnCount, "every interior node joins two-way roads")
	assert.Equal(t, 0.0, r.RiskScore)
	require.NotNil(t, r.EstimatedTimeMin)
	assert.InDelta(t, 7.2, *r.EstimatedTimeMin, 1e-9)

	require.Len(t, r.EdgesMeta, 4)
	assert.Equal(t, "residential", r.EdgesMeta[0].Highway)
	assert.Equal(t, "Dorpsstraat", r.EdgesMeta[0].Name)
	assert.Equal(t, 1000.0, r.EdgesMeta[0].Length)

	assert.True(t, r.NodesMeta[0].IsIntersection)
	assert.Equal(t, 6, r.NodesMeta[0].Degree)
	assert.True(t, r.NodesMeta[1].IsIntersection)
	assert.Equal(t, 4, r.NodesMeta[1].Degree)
	assert.False(t, r.NodesMeta[4].IsIntersection, "dead end has degree 2")
	require.NotNil(t, r.NodesMeta[4].Location)
	assert.Equal(t, testutil.CorridorEnd, *r.NodesMeta[4].Location)

	require.Len(t, r.Path, 5)
	assert.Equal(t, testutil.CorridorStart, r.Path[0])
	assert.Equal(t, testutil.CorridorEnd, r.Path[4])
}

func TestCompute_ManualSafeRoute(t *testing.T) {
	res := computeCorridor(t, Options{SafeRoads: []string{"Unknown Road", "N209"}})

	manual, ok := res.Routes[models.RouteIDSafeManual]
	require.True(t, ok)
	assert.Equal(t, models.RouteKindSafeManual, manual.Kind)
	assert.Equal(t, []int64{
		testutil.CorridorS, testutil.CorridorB, testutil.CorridorV, testutil.CorridorD, testutil.CorridorE,
	}, manual.Nodes)
	assert.Contains(t, manual.Description, "Follows N209.")
}

func TestCompute_ManualSafeRouteWithoutMatches(t *testing.T) {
	res := computeCorridor(t, Options{SafeRoads: []string{"Nowhere"}})

	manual := res.Routes[models.RouteIDSafeManual]
	require.NotNil(t, manual)
	assert.Equal(t, res.Routes[models.RouteIDShortest].Nodes, manual.Nodes)
	assert.Contains(t, manual.Description, "shortest path used")
}

func TestCompute_UnreachableFallsBack(t *testing.T) {
	s := newCorridorSearcher(t)

	res := s.Compute(testutil.CorridorStart, testutil.CorridorVia, testutil.CorridorOnIsle, Options{})

	assert.Equal(t, OutcomeFallback, res.Outcome)
	assert.True(t, res.Degraded())
	assert.ErrorIs(t, res.Err, roadgraph.ErrNoPath)
	assert.Len(t, res.Routes, 3)
	for _, r := range res.Routes {
		assert.True(t, r.Degraded)
	}
}

func TestCompute_NoGraphFallsBack(t *testing.T) {
	res := NewSearcher(nil, nil, nil).Compute(testutil.CorridorStart, testutil.CorridorVia, testutil.CorridorEnd, Options{})

	assert.Equal(t, OutcomeFallback, res.Outcome)
	assert.ErrorIs(t, res.Err, ErrGraphUnavailable)
}

func TestCompute_EmptyGraphFallsBack(t *testing.T) {
	res := NewSearcher(roadgraph.NewGraph(), nil, nil).Compute(testutil.CorridorStart, testutil.CorridorVia, testutil.CorridorEnd, Options{})

	assert.ErrorIs(t, res.Err, roadgraph.ErrEmptyGraph)
}

func TestBuildRoute_FollowsEdgeGeometry(t *testing.T) {
	snap := &roadgraph.Snapshot{
		Nodes: []roadgraph.SnapshotNode{{ID: 1, Lat: 52.0, Lon: 4.0}, {ID: 2, Lat: 52.001, Lon: 4.0}, {ID: 3, Lat: 52.002, Lon: 4.0}},
		Edges: []roadgraph.SnapshotEdge{
			{U: 1, V: 2, Length: 150, Tags: map[string]string{"highway": "primary"}},
			{U: 2, V: 3, Length: 150, Tags: map[string]string{"highway": "primary"}},
		},
	}
	snap.Edges[0].Geometry = orb.LineString{{4.0, 52.0}, {4.0004, 52.0005}, {4.0, 52.001}}
	g, err := snap.Build()
	require.NoError(t, err)

	r, err := buildRoute(g, config.DefaultTuning().Speeds, []int64{1, 2, 3}, "r", "Route", models.RouteKindShortest)
	require.NoError(t, err)

	assert.Equal(t, []models.LatLon{
		{52.0, 4.0}, {52.0005, 4.0004}, {52.001, 4.0}, {52.002, 4.0},
	}, r.Path)
}

func TestBuildRoute_SingleNode(t *testing.T) {
	g := testutil.CorridorGraph(t)

	r, err := buildRoute(g, config.DefaultTuning().Speeds, []int64{testutil.CorridorV}, "r", "Route", models.RouteKindShortest)

	require.NoError(t, err)
	assert.Equal(t, []models.LatLon{testutil.CorridorVia}, r.Path)
	assert.Empty(t, r.EdgesMeta)
	assert.Zero(t, r.TurnCount)
}

func TestJoinLegs(t *testing.T) {
	assert.Equal(t, []int64{1, 2, 3, 4}, joinLegs([]int64{1, 2, 3}, []int64{3, 4}))
	assert.Equal(t, []int64{3, 4}, joinLegs(nil, []int64{3, 4}))
	assert.Equal(t, []int64{1}, joinLegs([]int64{1}, []int64{1}))
}
