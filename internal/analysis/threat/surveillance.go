package threat

import (
	"fmt"
	"math"

	"github.com/jengzang/chokepoint-planner/internal/models"
	"github.com/jengzang/chokepoint-planner/internal/spatial"
)

const surveillanceDescription = "Intersection with multiple access routes suitable for hostile " +
	"or friendly surveillance of the motorcade."

// SurveillancePriority scores an intersection reached over a road of class
// highway. Central, well-connected intersections on major roads score higher.
func (g *Generator) SurveillancePriority(distToCentroidM float64, degree int, highway string) float64 {
	centrality := math.Max(1, 2000/(distToCentroidM+200))
	connectivity := math.Min(4, math.Max(1, float64(degree-1)))
	roadScore := lookup(g.threat.HighwayScore, highway, g.threat.DefaultHighwayScore)
	return 0.4*centrality + 0.3*connectivity + 0.3*roadScore
}

func (g *Generator) surveillancePoints(r *models.Route) []*models.PointOfInterest {
	centroid := spatial.Centroid(models.Points(r.Path))

	var pois []*models.PointOfInterest
	for _, e := range r.EdgesMeta {
		far := e.Index + 1
		if far >= len(r.NodesMeta) || !r.NodesMeta[far].IsIntersection {
			continue
		}
		if !g.surveillanceClasses[e.Highway] {
			continue
		}
		loc, ok := r.NodeLocation(far)
		if !ok {
			continue
		}
		priority := g.SurveillancePriority(spatial.Distance(loc.Point(), centroid), r.NodesMeta[far].Degree, e.Highway)
		if priority < g.threat.SurveillanceMinPriority {
			continue
		}
		pois = append(pois, &models.PointOfInterest{
			ID:            fmt.Sprintf("poi_surv_%s_%d", r.ID, e.Index),
			Type:          models.POISurveillance,
			Location:      loc,
			RelatedRoute:  ptr(r.ID),
			Description:   surveillanceDescription,
			PriorityScore: priority,
		})
	}
	return capped(pois, g.threat.SurveillanceMaxPerRoute)
}
