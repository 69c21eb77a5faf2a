package threat

import (
	"sort"

	"github.com/jengzang/chokepoint-planner/internal/models"
	"github.com/jengzang/chokepoint-planner/internal/spatial"
)

const (
	observationDescription = "Dominant observation point overlooking a key chokepoint, " +
		"suitable for pre-attack surveillance."
	firingDescription = "Potential firing position with line-of-sight to the chokepoint, " +
		"for example from elevated structures or cover near the route."
)

// overwatchEligible reports whether a chokepoint gets observation and firing
// points. The intersection type stands in for an elevation advantage.
func (g *Generator) overwatchEligible(cp *models.Chokepoint, paths [][]spatial.Point) bool {
	if cp.VulnerabilityScore < g.threat.ChokepointMinScore {
		return false
	}
	if cp.Type == models.ChokepointTypeIntersection {
		return true
	}
	for _, path := range paths {
		if d, ok := spatial.MinDistanceToPath(cp.Location.Point(), path); ok && d < g.threat.ChokepointProximityM {
			return true
		}
	}
	return false
}

func (g *Generator) chokepointPoints(routes models.RouteSet, chokepoints map[string]*models.Chokepoint) []*models.PointOfInterest {
	ordered := routes.Ordered()
	paths := make([][]spatial.Point, len(ordered))
	for i, r := range ordered {
		paths[i] = models.Points(r.Path)
	}

	ids := make([]string, 0, len(chokepoints))
	for id := range chokepoints {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var pois []*models.PointOfInterest
	for _, id := range ids {
		cp := chokepoints[id]
		if !g.overwatchEligible(cp, paths) {
			continue
		}
		priority := cp.VulnerabilityScore / 2
		pois = append(pois,
			&models.PointOfInterest{
				ID:                "poi_obs_" + cp.ID,
				Type:              models.POIObservation,
				Location:          cp.Location,
				RelatedChokepoint: ptr(cp.ID),
				Description:       observationDescription,
				PriorityScore:     priority,
			},
			&models.PointOfInterest{
				ID:                "poi_fire_" + cp.ID,
				Type:              models.POIFiring,
				Location:          cp.Location,
				RelatedChokepoint: ptr(cp.ID),
				Description:       firingDescription,
				PriorityScore:     priority,
			},
		)
	}
	return pois
}
