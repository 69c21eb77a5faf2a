package threat

import (
	"fmt"
	"sort"

	"github.com/jengzang/chokepoint-planner/internal/config"
	"github.com/jengzang/chokepoint-planner/internal/models"
	"github.com/jengzang/chokepoint-planner/internal/spatial"
)

// cluster thins POIs per category. The top KeepTop of each category by
// priority are kept as is; the rest are clustered within RadiusM with the
// highest-priority member of each cluster as representative.
func (g *Generator) cluster(pois []*models.PointOfInterest) []*models.PointOfInterest {
	groups := make(map[models.POICategory][]*models.PointOfInterest)
	for _, p := range pois {
		groups[p.Type] = append(groups[p.Type], p)
	}

	var out []*models.PointOfInterest
	for _, category := range categoryOrder(groups) {
		group := groups[category]
		rule := g.clustering.For(string(category))
		out = append(out, clusterCategory(group, rule)...)
	}
	return out
}

func clusterCategory(group []*models.PointOfInterest, rule config.CategoryCluster) []*models.PointOfInterest {
	byPriority(group)
	if len(group) <= rule.KeepTop {
		return group
	}

	kept := append([]*models.PointOfInterest(nil), group[:rule.KeepTop]...)
	merge := func(idx int, members []*models.PointOfInterest) *models.PointOfInterest {
		rep := *members[0]
		rep.ID = spatial.ClusterID(rep.ID, idx)
		rep.Description = fmt.Sprintf("%s (Represents cluster of %d nearby locations within %.0fm)",
			rep.Description, len(members), rule.RadiusM)
		return &rep
	}
	return append(kept, spatial.Collapse(group[rule.KeepTop:], locatePOI, rule.RadiusM, merge)...)
}

func locatePOI(p *models.PointOfInterest) spatial.Point { return p.Location.Point() }

// categoryOrder lists the known categories first, then any others by name.
func categoryOrder(groups map[models.POICategory][]*models.PointOfInterest) []models.POICategory {
	var order []models.POICategory
	known := make(map[models.POICategory]bool, len(models.POICategories))
	for _, c := range models.POICategories {
		known[c] = true
		if _, ok := groups[c]; ok {
			order = append(order, c)
		}
	}
	var extra []models.POICategory
	for c := range groups {
		if !known[c] {
			extra = append(extra, c)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(order, extra...)
}
