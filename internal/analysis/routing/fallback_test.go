package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/chokepoint-planner/internal/models"
)

func TestFallbackRoutes(t *testing.T) {
	routes := FallbackRoutes()

	require.Len(t, routes, 3)
	require.NoError(t, routes.Validate())

	shortest := routes[models.RouteIDShortest]
	assert.Equal(t, "Shortest route (fallback)", shortest.Label)
	assert.Equal(t, 47000.0, shortest.LengthM)
	assert.Equal(t, 18, shortest.TurnCount)
	assert.Equal(t, 2.5, shortest.RiskScore)
	assert.True(t, shortest.Degraded)
	require.NotNil(t, shortest.EstimatedTimeMin)
	assert.InDelta(t, 47.0/1.2, *shortest.EstimatedTimeMin, 1e-9)

	require.Len(t, shortest.EdgesMeta, 6)
	assert.Equal(t, "motorway", shortest.EdgesMeta[2].Highway)
	assert.Equal(t, "primary", shortest.EdgesMeta[3].Highway)
	assert.InDelta(t, 47000.0/6, shortest.EdgesMeta[0].Length, 1e-9)

	assert.Equal(t, 15, routes[models.RouteIDLogical].TurnCount)
	assert.Equal(t, 52000.0, routes[models.RouteIDSafest].LengthM)
}

func TestFallbackRoutes_WaypointsAreSharedIntersections(t *testing.T) {
	routes := FallbackRoutes()
	airport := FallbackNodeID(models.NewLatLon(52.3105, 4.7683))

	for _, r := range routes {
		assert.Equal(t, airport, r.Nodes[0], r.ID)
		assert.True(t, r.NodesMeta[0].IsIntersection, r.ID)
		assert.Equal(t, 3, r.NodesMeta[0].Degree, r.ID)
		assert.False(t, r.NodesMeta[1].IsIntersection, r.ID)
		assert.Equal(t, 2, r.NodesMeta[1].Degree, r.ID)
	}
}

func TestFallbackRoutes_FreshCopies(t *testing.T) {
	a := FallbackRoutes()
	a[models.RouteIDShortest].Path[0] = models.LatLon{}

	b := FallbackRoutes()

	assert.Equal(t, models.NewLatLon(52.3105, 4.7683), b[models.RouteIDShortest].Path[0])
}

func TestFallbackNodeID(t *testing.T) {
	assert.Equal(t, int64(-(523105*10000000 + 47683)), FallbackNodeID(models.NewLatLon(52.3105, 4.7683)))
	assert.Equal(t, FallbackNodeID(models.NewLatLon(52.12, 4.42)), FallbackNodeID(models.NewLatLon(52.120004, 4.419996)))
}
