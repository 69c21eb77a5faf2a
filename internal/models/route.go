package models

import (
	"fmt"
	"sort"
)

// RouteKind names the profile a route was computed with.
type RouteKind string

// RouteKind constants
const (
	RouteKindShortest   RouteKind = "shortest"
	RouteKindLogical    RouteKind = "logical"
	RouteKindSafest     RouteKind = "safest"
	RouteKindSafeManual RouteKind = "safe_manual"
)

// Route IDs used by route search.
const (
	RouteIDShortest   = "r_shortest"
	RouteIDLogical    = "r_logical"
	RouteIDSafest     = "r_safest"
	RouteIDSafeManual = "r_safe_manual"
)

// Route is one computed path from start through via to end.
// Nodes, NodesMeta and EdgesMeta are consumed by the analysis stages.
type Route struct {
	ID               string    `json:"id"`
	Label            string    `json:"label"`
	Kind             RouteKind `json:"kind"`
	Path             []LatLon  `json:"path"`
	LengthM          float64   `json:"length_m"`
	EstimatedTimeMin *float64  `json:"estimated_time_min"`
	TurnCount        int       `json:"turn_count"`
	RiskScore        float64   `json:"risk_score"`
	Description      string    `json:"description"`
	Degraded         bool      `json:"degraded"`

	Nodes     []int64    `json:"nodes"`
	NodesMeta []NodeMeta `json:"nodes_meta"`
	EdgesMeta []EdgeMeta `json:"edges_meta"`
}

// NodeMeta describes one node of a route's node sequence.
type NodeMeta struct {
	ID             int64   `json:"id"`
	IsIntersection bool    `json:"is_intersection"`
	Degree         int     `json:"degree"`
	Location       *LatLon `json:"location,omitempty"`
}

// EdgeMeta describes the edge between Nodes[Index] and Nodes[Index+1].
type EdgeMeta struct {
	Index    int     `json:"index"`
	U        int64   `json:"u"`
	V        int64   `json:"v"`
	Highway  string  `json:"highway"`
	Name     string  `json:"name,omitempty"`
	IsTunnel bool    `json:"is_tunnel"`
	IsBridge bool    `json:"is_bridge"`
	Length   float64 `json:"length"`
}

// Validate checks the internal metadata is consistent with the node sequence.
func (r *Route) Validate() error {
	if len(r.NodesMeta) != len(r.Nodes) {
		return fmt.Errorf("route %s: %d node metadata entries for %d nodes", r.ID, len(r.NodesMeta), len(r.Nodes))
	}
	for i, meta := range r.NodesMeta {
		if meta.ID != r.Nodes[i] {
			return fmt.Errorf("route %s: node metadata %d is for node %d, want %d", r.ID, i, meta.ID, r.Nodes[i])
		}
	}
	for _, e := range r.EdgesMeta {
		if e.Index < 0 || e.Index+1 >= len(r.Nodes) {
			return fmt.Errorf("route %s: edge index %d out of range", r.ID, e.Index)
		}
	}
	return nil
}

// NodeLocation resolves the coordinate of Nodes[idx].
func (r *Route) NodeLocation(idx int) (LatLon, bool) {
	if idx < 0 || idx >= len(r.NodesMeta) || r.NodesMeta[idx].Location == nil {
		return LatLon{}, false
	}
	return *r.NodesMeta[idx].Location, true
}

// RouteSet is a keyed route collection.
type RouteSet map[string]*Route

var kindRank = map[RouteKind]int{
	RouteKindShortest:   0,
	RouteKindLogical:    1,
	RouteKindSafest:     2,
	RouteKindSafeManual: 3,
}

// Ordered returns the routes in computation order (shortest, logical, safest,
// manual, then any other kind), ties broken by ID.
func (rs RouteSet) Ordered() []*Route {
	routes := make([]*Route, 0, len(rs))
	for _, r := range rs {
		routes = append(routes, r)
	}
	sort.Slice(routes, func(i, j int) bool {
		ri, iok := kindRank[routes[i].Kind]
		rj, jok := kindRank[routes[j].Kind]
		if !iok {
			ri = len(kindRank)
		}
		if !jok {
			rj = len(kindRank)
		}
		if ri != rj {
			return ri < rj
		}
		return routes[i].ID < routes[j].ID
	})
	return routes
}

// Validate validates every route in the set.
func (rs RouteSet) Validate() error {
	for _, r := range rs.Ordered() {
		if err := r.Validate(); err != nil {
			return err
		}
	}
	return nil
}
