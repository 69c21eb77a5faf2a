package config

import (
	"sort"

	"github.com/jengzang/chokepoint-planner/internal/models"
)

// Scenario is a named set of fixed waypoints.
type Scenario struct {
	Name  string          `json:"name"`
	Start models.Waypoint `json:"start"`
	Via   models.Waypoint `json:"via"`
	End   models.Waypoint `json:"end"`

	// SafeRoads is the ordered list of road names the manual safe route follows.
	// Empty disables the manual safe route.
	SafeRoads []string `json:"safe_roads,omitempty"`
}

// DefaultScenarioName is used when a request names no known scenario.
const DefaultScenarioName = "schiphol"

var (
	worldForum  = models.NewLatLon(52.0930, 4.2867)
	mauritshuis = models.NewLatLon(52.0809, 4.3146)
)

var scenarios = map[string]Scenario{
	"schiphol": {
		Name:  "schiphol",
		Start: models.NewLatLon(52.3105, 4.7683),
		Via:   worldForum,
		End:   mauritshuis,
	},
	"rotterdam_the_hague": {
		Name:  "rotterdam_the_hague",
		Start: models.NewLatLon(51.9569, 4.4372),
		Via:   worldForum,
		End:   mauritshuis,
		// Hubertus Viaduct instead of the Hubertustunnel.
		SafeRoads: []string{"A16", "N209", "A12", "Koningskade", "Hubertus Viaduct", "S100", "Korte Voorhout"},
	},
}

// LookupScenario resolves a scenario by name. Unknown or empty names resolve
// to the default scenario and ok is false.
func LookupScenario(name string) (Scenario, bool) {
	if s, ok := scenarios[name]; ok {
		return s.clone(), true
	}
	return scenarios[DefaultScenarioName].clone(), false
}

// Scenarios lists all known scenarios ordered by name.
func Scenarios() []Scenario {
	list := make([]Scenario, 0, len(scenarios))
	for _, s := range scenarios {
		list = append(list, s.clone())
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}

func (s Scenario) clone() Scenario {
	if s.SafeRoads != nil {
		s.SafeRoads = append([]string(nil), s.SafeRoads...)
	}
	return s
}
