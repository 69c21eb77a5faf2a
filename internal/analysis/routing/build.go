package routing

import (
	"fmt"

	"github.com/jengzang/chokepoint-planner/internal/config"
	"github.com/jengzang/chokepoint-planner/internal/models"
	"github.com/jengzang/chokepoint-planner/internal/roadgraph"
)

// intersectionDegree is the degree above which a node is a decision point.
const intersectionDegree = 2

// buildRoute materializes a node path into a Route with its analysis metadata.
func buildRoute(g RoadGraph, speeds config.SpeedTuning, path []int64, id, label string, kind models.RouteKind) (*models.Route, error) {
	route := &models.Route{
		ID:        id,
		Label:     label,
		Kind:      kind,
		Nodes:     append([]int64(nil), path...),
		NodesMeta: make([]models.NodeMeta, len(path)),
		EdgesMeta: make([]models.EdgeMeta, 0, len(path)),
	}

	for i, nodeID := range path {
		n, ok := g.Node(nodeID)
		if !ok {
			return nil, fmt.Errorf("%w: %d", roadgraph.ErrNodeNotFound, nodeID)
		}
		loc := models.NewLatLon(n.Lat, n.Lon)
		degree := g.Degree(nodeID)
		route.NodesMeta[i] = models.NodeMeta{
			ID:             nodeID,
			IsIntersection: degree > intersectionDegree,
			Degree:         degree,
			Location:       &loc,
		}
		if i > 0 && i < len(path)-1 && degree > intersectionDegree {
			route.TurnCount++
		}
	}

	var minutes float64
	for i := 0; i+1 < len(path); i++ {
		e, ok := g.Edge(path[i], path[i+1])
		if !ok {
			return nil, fmt.Errorf("route %s: missing edge %d→%d", id, path[i], path[i+1])
		}
		route.EdgesMeta = append(route.EdgesMeta, models.EdgeMeta{
			Index:    i,
			U:        e.From,
			V:        e.To,
			Highway:  string(e.Class.Road),
			Name:     e.Name(),
			IsTunnel: e.Class.Tunnel,
			IsBridge: e.Class.Bridge,
			Length:   e.Length,
		})
		route.LengthM += e.Length
		minutes += e.Length / 1000 / speeds.Kmh(string(e.Class.Road)) * 60
		route.Path = appendSegment(route.Path, segmentCoords(g, e))
	}

	if len(path) == 1 {
		route.Path = []models.LatLon{*route.NodesMeta[0].Location}
	}

	route.EstimatedTimeMin = &minutes
	route.Description = fmt.Sprintf("%s: %.1f km with %d decision points, about %.0f min.",
		label, route.LengthM/1000, route.TurnCount, minutes)
	return route, nil
}

// segmentCoords follows the fine geometry of e when present, else its end nodes.
func segmentCoords(g RoadGraph, e *roadgraph.Edge) []models.LatLon {
	if len(e.Geometry) > 0 {
		coords := make([]models.LatLon, len(e.Geometry))
		for i, p := range e.Geometry {
			coords[i] = models.NewLatLon(p.Lat(), p.Lon())
		}
		return coords
	}
	from, _ := g.Node(e.From)
	to, _ := g.Node(e.To)
	return []models.LatLon{models.NewLatLon(from.Lat, from.Lon), models.NewLatLon(to.Lat, to.Lon)}
}

// appendSegment appends seg to coords without duplicating the connection point.
func appendSegment(coords, seg []models.LatLon) []models.LatLon {
	if len(coords) > 0 && len(seg) > 0 && coords[len(coords)-1] == seg[0] {
		seg = seg[1:]
	}
	return append(coords, seg...)
}

// joinLegs concatenates two legs sharing their boundary node.
func joinLegs(first, second []int64) []int64 {
	if len(first) == 0 {
		return append([]int64(nil), second...)
	}
	if len(second) == 0 {
		return append([]int64(nil), first...)
	}
	path := make([]int64, 0, len(first)+len(second)-1)
	path = append(path, first...)
	return append(path, second[1:]...)
}
