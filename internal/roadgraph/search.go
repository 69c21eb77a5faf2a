package roadgraph

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/iterator"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/jengzang/chokepoint-planner/internal/spatial"
)

// CostFunc assigns a non-negative traversal cost to an edge.
type CostFunc func(e *Edge) float64

// LengthCost is the physical edge length.
func LengthCost(e *Edge) float64 { return e.Length }

// costView exposes the graph to gonum's path algorithms with edge weights
// supplied by a cost function. Successors are yielded in ascending ID order so
// equal-cost ties resolve the same way on every run.
type costView struct {
	g    *Graph
	cost CostFunc
}

func (v costView) From(id int64) graph.Nodes {
	succ := v.g.adj[id]
	nodes := make([]graph.Node, len(succ))
	for i, to := range succ {
		nodes[i] = simple.Node(to)
	}
	return iterator.NewOrderedNodes(nodes)
}

func (v costView) Edge(uid, vid int64) graph.Edge {
	if _, ok := v.g.Edge(uid, vid); !ok {
		return nil
	}
	return simple.Edge{F: simple.Node(uid), T: simple.Node(vid)}
}

func (v costView) Weight(xid, yid int64) (float64, bool) {
	if xid == yid {
		return 0, true
	}
	e, ok := v.g.Edge(xid, yid)
	if !ok {
		return math.Inf(1), false
	}
	return v.cost(e), true
}

func (g *Graph) greatCircle(x, y graph.Node) float64 {
	a, aok := g.nodes[x.ID()]
	b, bok := g.nodes[y.ID()]
	if !aok || !bok {
		return 0
	}
	return spatial.Distance(a.Point(), b.Point())
}

func (g *Graph) checkEndpoints(from, to int64) error {
	if _, ok := g.nodes[from]; !ok {
		return fmt.Errorf("%w: %d", ErrNodeNotFound, from)
	}
	if _, ok := g.nodes[to]; !ok {
		return fmt.Errorf("%w: %d", ErrNodeNotFound, to)
	}
	return nil
}

// AStarPath finds the cheapest path from→to under cost using a great-circle
// heuristic. The heuristic is admissible only when cost never drops below the
// physical length.
func (g *Graph) AStarPath(from, to int64, cost CostFunc) ([]int64, error) {
	if err := g.checkEndpoints(from, to); err != nil {
		return nil, err
	}
	shortest, _ := path.AStar(simple.Node(from), simple.Node(to), costView{g: g, cost: cost}, g.greatCircle)
	return nodeIDs(shortest.To(to))
}

// DijkstraPath finds the cheapest path from→to under cost.
func (g *Graph) DijkstraPath(from, to int64, cost CostFunc) ([]int64, error) {
	if err := g.checkEndpoints(from, to); err != nil {
		return nil, err
	}
	shortest := path.DijkstraFrom(simple.Node(from), costView{g: g, cost: cost})
	return nodeIDs(shortest.To(to))
}

func nodeIDs(nodes []graph.Node, weight float64) ([]int64, error) {
	if len(nodes) == 0 || math.IsInf(weight, 1) {
		return nil, ErrNoPath
	}
	ids := make([]int64, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID()
	}
	return ids, nil
}
