package routing

import (
	"math"

	"github.com/jengzang/chokepoint-planner/internal/models"
)

// Fallback routes cover the Schiphol → World Forum → Mauritshuis scenario with
// fixed approximate geometry.
var (
	fallbackAirport     = models.NewLatLon(52.3105, 4.7683)
	fallbackWorldForum  = models.NewLatLon(52.0930, 4.2867)
	fallbackMauritshuis = models.NewLatLon(52.0809, 4.3146)
)

const (
	fallbackRiskScore = 2.5
	fallbackKmPerMin  = 1.2 // 72 km/h
	fallbackMotorways = 3   // leading segments tagged motorway, the rest primary
)

type fallbackDef struct {
	id          string
	label       string
	kind        models.RouteKind
	coords      []models.LatLon
	lengthM     float64
	turns       int
	description string
}

var fallbackDefs = []fallbackDef{
	{
		id:    models.RouteIDShortest,
		label: "Shortest route (fallback)",
		kind:  models.RouteKindShortest,
		coords: []models.LatLon{
			fallbackAirport,
			{52.239, 4.708},
			{52.184, 4.553},
			{52.120, 4.420},
			fallbackWorldForum,
			{52.085, 4.300},
			fallbackMauritshuis,
		},
		lengthM:     47000,
		turns:       18,
		description: "Fallback baseline path using major A4/A12 corridors.",
	},
	{
		id:    models.RouteIDLogical,
		label: "Most logical route (fallback)",
		kind:  models.RouteKindLogical,
		coords: []models.LatLon{
			fallbackAirport,
			{52.287, 4.755},
			{52.220, 4.650},
			{52.160, 4.480},
			{52.120, 4.420},
			{52.100, 4.330},
			fallbackWorldForum,
			fallbackMauritshuis,
		},
		lengthM:     49500,
		turns:       15,
		description: "Fallback route prioritising wide arterial roads with fewer turns.",
	},
	{
		id:    models.RouteIDSafest,
		label: "Safest route (fallback)",
		kind:  models.RouteKindSafest,
		coords: []models.LatLon{
			fallbackAirport,
			{52.330, 4.750},
			{52.280, 4.620},
			{52.210, 4.500},
			{52.150, 4.380},
			{52.120, 4.340},
			fallbackWorldForum,
			{52.085, 4.300},
			fallbackMauritshuis,
		},
		lengthM:     52000,
		turns:       20,
		description: "Fallback route avoiding tunnels/underpasses by swinging north then west.",
	},
}

// FallbackRoutes returns the built-in degraded route set. Every call returns a
// fresh copy.
func FallbackRoutes() models.RouteSet {
	routes := make(models.RouteSet, len(fallbackDefs))
	for _, def := range fallbackDefs {
		routes[def.id] = def.build()
	}
	return routes
}

// FallbackNodeID derives a stable synthetic node ID from a coordinate rounded
// to four decimals. Synthetic IDs are negative so they never collide with
// road network IDs.
func FallbackNodeID(ll models.LatLon) int64 {
	lat := int64(math.Round(ll.Lat() * 1e4))
	lon := int64(math.Round(ll.Lon() * 1e4))
	return -(lat*1e7 + lon)
}

func isFallbackWaypoint(ll models.LatLon) bool {
	return ll == fallbackAirport || ll == fallbackWorldForum || ll == fallbackMauritshuis
}

func (def fallbackDef) build() *models.Route {
	minutes := def.lengthM / 1000 / fallbackKmPerMin
	route := &models.Route{
		ID:               def.id,
		Label:            def.label,
		Kind:             def.kind,
		Path:             append([]models.LatLon(nil), def.coords...),
		LengthM:          def.lengthM,
		EstimatedTimeMin: &minutes,
		TurnCount:        def.turns,
		RiskScore:        fallbackRiskScore,
		Description:      def.description,
		Degraded:         true,
		Nodes:            make([]int64, len(def.coords)),
		NodesMeta:        make([]models.NodeMeta, len(def.coords)),
	}

	for i, ll := range def.coords {
		loc := ll
		id := FallbackNodeID(ll)
		degree := 2
		if isFallbackWaypoint(ll) {
			degree = 3
		}
		route.Nodes[i] = id
		route.NodesMeta[i] = models.NodeMeta{
			ID:             id,
			IsIntersection: degree > intersectionDegree,
			Degree:         degree,
			Location:       &loc,
		}
	}

	segments := len(def.coords) - 1
	for i := 0; i < segments; i++ {
		highway := "primary"
		if i < fallbackMotorways {
			highway = "motorway"
		}
		route.EdgesMeta = append(route.EdgesMeta, models.EdgeMeta{
			Index:   i,
			U:       route.Nodes[i],
			V:       route.Nodes[i+1],
			Highway: highway,
			Length:  def.lengthM / float64(segments),
		})
	}

	return route
}
