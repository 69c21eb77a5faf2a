package threat

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/chokepoint-planner/internal/analysis/chokepoint"
	"github.com/jengzang/chokepoint-planner/internal/analysis/routing"
	"github.com/jengzang/chokepoint-planner/internal/config"
	"github.com/jengzang/chokepoint-planner/internal/models"
)

func newGenerator() *Generator {
	return NewGenerator(config.DefaultTuning(), nil)
}

// line builds a route running north from (52, 4) with nodes spacing meters apart.
func line(id string, spacing float64, highways ...string) *models.Route {
	r := &models.Route{ID: id, Kind: models.RouteKindShortest}
	for i := 0; i <= len(highways); i++ {
		loc := models.NewLatLon(52+float64(i)*spacing/111194.93, 4)
		nodeID := int64(i + 1)
		r.Nodes = append(r.Nodes, nodeID)
		r.Path = append(r.Path, loc)
		r.NodesMeta = append(r.NodesMeta, models.NodeMeta{ID: nodeID, Degree: 2, Location: &loc})
	}
	for i, hw := range highways {
		r.EdgesMeta = append(r.EdgesMeta, models.EdgeMeta{Index: i, U: int64(i + 1), V: int64(i + 2), Highway: hw, Length: spacing})
	}
	return r
}

func repeat(s string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = s
	}
	return out
}

func TestAssess_ResidentialExample(t *testing.T) {
	a := newGenerator().Assess(models.EdgeMeta{Highway: "residential"})

	assert.InDelta(t, 12.0, a.SpeedKmh, 1e-9)
	assert.InDelta(t, 5.0, a.SpeedFactor, 1e-9)
	assert.InDelta(t, 3.0, a.IsolationFactor, 1e-9)
	assert.InDelta(t, 3.0, a.DensityFactor, 1e-9)
	assert.InDelta(t, 4.0, a.Threat, 1e-9)
}

func TestAssess_HazardsCompound(t *testing.T) {
	a := newGenerator().Assess(models.EdgeMeta{Highway: "living_street", IsTunnel: true, IsBridge: true})

	assert.InDelta(t, 15*0.7*0.8*0.6, a.SpeedKmh, 1e-9)
}

func TestAssess_ThreatIsCapped(t *testing.T) {
	tuning := config.DefaultTuning()
	tuning.Threat.MaxThreat = 3
	g := NewGenerator(tuning, nil)

	assert.Equal(t, 3.0, g.Assess(models.EdgeMeta{Highway: "residential"}).Threat)
}

func TestAmbushPoints(t *testing.T) {
	r := line("r_a", 500, "primary", "residential", "motorway")

	pois := newGenerator().ambushPoints(r)

	require.Len(t, pois, 1)
	p := pois[0]
	assert.Equal(t, "poi_ambush_r_a_1", p.ID)
	assert.Equal(t, models.POIAmbush, p.Type)
	assert.Equal(t, *r.NodesMeta[2].Location, p.Location, "ambush sits at the far end of the segment")
	require.NotNil(t, p.RelatedRoute)
	assert.Equal(t, "r_a", *p.RelatedRoute)
	assert.Nil(t, p.RelatedChokepoint)
	assert.InDelta(t, 4.0, p.PriorityScore, 1e-9)
}

func TestAmbushPoints_TunnelBelowThreshold(t *testing.T) {
	r := line("r_a", 500, "primary")
	r.EdgesMeta[0].IsTunnel = true

	// 0.5·(60/42) + 0.3·1 + 0.2·6 ≈ 2.21
	assert.Empty(t, newGenerator().ambushPoints(r))
}

func TestAmbushPoints_CappedPerRoute(t *testing.T) {
	r := line("r_a", 500, repeat("residential", 12)...)
	r.EdgesMeta[5].IsTunnel = true

	pois := newGenerator().ambushPoints(r)

	require.Len(t, pois, 8)
	assert.Equal(t, "poi_ambush_r_a_5", pois[0].ID, "highest threat first")
	assert.Equal(t, "poi_ambush_r_a_0", pois[1].ID, "ties keep ID order")
}

func TestSurveillancePriority(t *testing.T) {
	g := newGenerator()

	assert.InDelta(t, 0.4*10+0.3*4+0.3*3, g.SurveillancePriority(0, 5, "primary"), 1e-9)
	assert.InDelta(t, 0.4*1+0.3*1+0.3*1.5, g.SurveillancePriority(20000, 1, "service"), 1e-9)
}

func TestSurveillancePoints(t *testing.T) {
	r := line("r_a", 100, "primary", "primary", "residential")
	r.NodesMeta[1].IsIntersection = true
	r.NodesMeta[1].Degree = 4
	r.NodesMeta[3].IsIntersection = true

	pois := newGenerator().surveillancePoints(r)

	require.Len(t, pois, 1, "the residential approach does not qualify")
	assert.Equal(t, "poi_surv_r_a_0", pois[0].ID)
	assert.Equal(t, *r.NodesMeta[1].Location, pois[0].Location)
	assert.GreaterOrEqual(t, pois[0].PriorityScore, 2.0)
}

func TestSurveillancePoints_CappedPerRoute(t *testing.T) {
	r := line("r_a", 50, repeat("primary", 14)...)
	for i := range r.NodesMeta {
		r.NodesMeta[i].IsIntersection = true
		r.NodesMeta[i].Degree = 4
	}

	assert.Len(t, newGenerator().surveillancePoints(r), 10)
}

func TestChokepointPoints_Eligibility(t *testing.T) {
	r := line("r_a", 100, "primary")
	near := models.NewLatLon(52.001, 4.001)
	far := models.NewLatLon(52.5, 4.5)
	cps := map[string]*models.Chokepoint{
		"cp_high":     {ID: "cp_high", Location: far, Type: models.ChokepointTypeIntersection, VulnerabilityScore: 6},
		"cp_low":      {ID: "cp_low", Location: near, Type: models.ChokepointTypeIntersection, VulnerabilityScore: 5.9},
		"cp_far_span": {ID: "cp_far_span", Location: far, Type: "span", VulnerabilityScore: 9},
		"cp_near":     {ID: "cp_near", Location: near, Type: "span", VulnerabilityScore: 8},
	}

	pois := newGenerator().chokepointPoints(models.RouteSet{"r_a": r}, cps)

	ids := make([]string, len(pois))
	for i, p := range pois {
		ids[i] = p.ID
	}
	assert.Equal(t, []string{"poi_obs_cp_high", "poi_fire_cp_high", "poi_obs_cp_near", "poi_fire_cp_near"}, ids)
	assert.Equal(t, 3.0, pois[0].PriorityScore)
	assert.Equal(t, models.POIFiring, pois[1].Type)
	require.NotNil(t, pois[1].RelatedChokepoint)
	assert.Equal(t, "cp_high", *pois[1].RelatedChokepoint)
	assert.Nil(t, pois[1].RelatedRoute)
}

func TestCluster_KeepsTopAndMergesRemainder(t *testing.T) {
	var pois []*models.PointOfInterest
	for i := 0; i < 10; i++ {
		pois = append(pois, &models.PointOfInterest{
			ID:            fmt.Sprintf("poi_obs_cp_%d", i),
			Type:          models.POIObservation,
			Location:      models.NewLatLon(52, 4),
			Description:   "Obs.",
			PriorityScore: float64(i),
		})
	}

	out := newGenerator().cluster(pois)

	require.Len(t, out, 5)
	for i, want := range []string{"poi_obs_cp_9", "poi_obs_cp_8", "poi_obs_cp_7", "poi_obs_cp_6"} {
		assert.Equal(t, want, out[i].ID)
	}
	rep := out[4]
	assert.Equal(t, "poi_obs_cp_5_cluster_0", rep.ID)
	assert.Equal(t, 5.0, rep.PriorityScore)
	assert.Equal(t, "Obs. (Represents cluster of 6 nearby locations within 150m)", rep.Description)
	assert.Equal(t, "poi_obs_cp_5", pois[5].ID, "inputs are not mutated")
}

func TestCluster_CategoriesAreIndependent(t *testing.T) {
	at := models.NewLatLon(52, 4)
	var pois []*models.PointOfInterest
	for i := 0; i < 5; i++ {
		pois = append(pois,
			&models.PointOfInterest{ID: fmt.Sprintf("a%d", i), Type: models.POIFiring, Location: at, PriorityScore: 1},
			&models.PointOfInterest{ID: fmt.Sprintf("b%d", i), Type: models.POISurveillance, Location: at, PriorityScore: 1},
		)
	}

	out := newGenerator().cluster(pois)

	counts := map[models.POICategory]int{}
	for _, p := range out {
		counts[p.Type]++
	}
	assert.Equal(t, 5, counts[models.POIFiring], "4 kept plus one single-member remainder")
	assert.Equal(t, 5, counts[models.POISurveillance], "below keep-top of 8")
}

func TestGenerate_FallbackRoutes(t *testing.T) {
	routes := routing.FallbackRoutes()
	cps := chokepoint.NewScorer(config.DefaultTuning().Chokepoint, nil).Score(routes)

	pois := newGenerator().Generate(routes, cps)

	var obs, fire int
	for _, p := range pois {
		switch p.Type {
		case models.POIObservation:
			obs++
		case models.POIFiring:
			fire++
		default:
			t.Errorf("unexpected POI %s of type %s", p.ID, p.Type)
		}
	}
	assert.Equal(t, 3, obs)
	assert.Equal(t, 3, fire)
}
