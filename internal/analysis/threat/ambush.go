package threat

import (
	"fmt"
	"math"

	"github.com/jengzang/chokepoint-planner/internal/models"
)

const ambushDescription = "Likely ambush location where the motorcade must slow down " +
	"near a constrained or structurally complex segment."

// Assessment is the breakdown of a segment's ambush threat.
type Assessment struct {
	SpeedKmh        float64
	Isolation       float64
	Density         float64
	SpeedFactor     float64
	IsolationFactor float64
	DensityFactor   float64
	Threat          float64
}

// Assess scores how favourable a road segment is for an ambush. Slow,
// isolated and built-up segments score higher.
func (g *Generator) Assess(e models.EdgeMeta) Assessment {
	t := g.threat
	speed := g.speeds.Kmh(e.Highway)
	if e.IsTunnel {
		speed *= t.TunnelSpeedFactor
	}
	if e.IsBridge {
		speed *= t.BridgeSpeedFactor
	}
	if e.Highway == "residential" || e.Highway == "living_street" {
		speed *= t.ResidentialSpeedFactor
	}

	a := Assessment{
		SpeedKmh:  speed,
		Isolation: lookup(t.Isolation, e.Highway, t.DefaultIsolation),
		Density:   lookup(t.Density, e.Highway, t.DefaultDensity),
	}
	a.SpeedFactor = math.Max(1, 60/speed)
	a.IsolationFactor = a.Isolation / 2
	a.DensityFactor = math.Max(1, 10-a.Density)
	a.Threat = math.Min(t.MaxThreat, 0.5*a.SpeedFactor+0.3*a.IsolationFactor+0.2*a.DensityFactor)
	return a
}

func (g *Generator) ambushCandidate(e models.EdgeMeta) bool {
	return g.ambushClasses[e.Highway] || e.IsTunnel || e.IsBridge
}

func (g *Generator) ambushPoints(r *models.Route) []*models.PointOfInterest {
	var pois []*models.PointOfInterest
	for _, e := range r.EdgesMeta {
		if !g.ambushCandidate(e) {
			continue
		}
		a := g.Assess(e)
		if a.Threat < g.threat.AmbushMinThreat {
			continue
		}
		loc, ok := r.NodeLocation(e.Index + 1)
		if !ok {
			continue
		}
		pois = append(pois, &models.PointOfInterest{
			ID:            fmt.Sprintf("poi_ambush_%s_%d", r.ID, e.Index),
			Type:          models.POIAmbush,
			Location:      loc,
			RelatedRoute:  ptr(r.ID),
			Description:   ambushDescription,
			PriorityScore: a.Threat,
		})
	}
	return capped(pois, g.threat.AmbushMaxPerRoute)
}

func lookup(table map[string]float64, key string, def float64) float64 {
	if v, ok := table[key]; ok {
		return v
	}
	return def
}
