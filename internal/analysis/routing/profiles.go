package routing

import (
	"github.com/jengzang/chokepoint-planner/internal/config"
	"github.com/jengzang/chokepoint-planner/internal/roadgraph"
)

// LogicalCost favours high-capacity roads and penalizes reuse of avoid.
func LogicalCost(t config.RoutingTuning, avoid EdgeSet) roadgraph.CostFunc {
	return func(e *roadgraph.Edge) float64 {
		cost := e.Length
		if m, ok := t.LogicalClassMultipliers[string(e.Class.Road)]; ok {
			cost *= m
		}
		if avoid.Contains(e.From, e.To) {
			cost *= t.LogicalReusePenalty
		}
		return cost
	}
}

// SafestCost avoids tunnels, bridges, minor roads and complex intersections,
// and penalizes reuse of avoid. degree reports the node degree of the graph.
func SafestCost(t config.RoutingTuning, degree func(id int64) int, avoid EdgeSet) roadgraph.CostFunc {
	return func(e *roadgraph.Edge) float64 {
		cost := e.Length
		if e.Class.Tunnel {
			cost *= t.SafestTunnelPenalty
		}
		if e.Class.Bridge {
			cost *= t.SafestBridgePenalty
		}
		if m, ok := t.SafestClassMultipliers[string(e.Class.Road)]; ok {
			cost *= m
		}
		if degree(e.From) > t.ComplexIntersectionDegree || degree(e.To) > t.ComplexIntersectionDegree {
			cost *= t.ComplexIntersectionPenalty
		}
		if avoid.Contains(e.From, e.To) {
			cost *= t.SafestReusePenalty
		}
		return cost
	}
}
