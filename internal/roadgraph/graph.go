package roadgraph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"

	"github.com/jengzang/chokepoint-planner/internal/spatial"
)

// Node is a road network vertex.
type Node struct {
	ID  int64
	Lat float64
	Lon float64
}

// Point returns the node position.
func (n Node) Point() spatial.Point {
	return spatial.Point{Lat: n.Lat, Lon: n.Lon}
}

// Edge is a directed road segment from From to To.
type Edge struct {
	From     int64
	To       int64
	Length   float64 // meters
	Tags     osm.Tags
	Geometry orb.LineString // optional, lon/lat order
	Class    EdgeClass
}

// Name returns the first name of the segment, falling back to its ref.
func (e *Edge) Name() string {
	if names := TagValues(e.Tags.Find("name")); len(names) > 0 {
		return names[0]
	}
	if refs := TagValues(e.Tags.Find("ref")); len(refs) > 0 {
		return refs[0]
	}
	return ""
}

// Matches reports whether any name or ref value equals name, ignoring case.
func (e *Edge) Matches(name string) bool {
	for _, key := range []string{"name", "ref"} {
		for _, v := range TagValues(e.Tags.Find(key)) {
			if strings.EqualFold(v, name) {
				return true
			}
		}
	}
	return false
}

// Graph is an in-memory directed road network. It is built once and is
// read-only afterwards, so concurrent readers are safe.
type Graph struct {
	nodes     map[int64]Node
	edges     map[int64]map[int64]*Edge
	adj       map[int64][]int64 // ascending successor IDs
	degree    map[int64]int     // in-edges plus out-edges, self-loops excluded
	edgeCount int
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes:     make(map[int64]Node),
		edges:     make(map[int64]map[int64]*Edge),
		adj:       make(map[int64][]int64),
		degree:    make(map[int64]int),
	}
}

// AddNode inserts or replaces a node.
func (g *Graph) AddNode(id int64, lat, lon float64) {
	g.nodes[id] = Node{ID: id, Lat: lat, Lon: lon}
}

// AddEdge inserts a directed edge. Both endpoints must exist. A zero length is
// replaced by the great-circle distance of the endpoints. Of parallel edges the
// shortest is kept.
func (g *Graph) AddEdge(e Edge) error {
	from, ok := g.nodes[e.From]
	if !ok {
		return fmt.Errorf("%w: %d", ErrNodeNotFound, e.From)
	}
	to, ok := g.nodes[e.To]
	if !ok {
		return fmt.Errorf("%w: %d", ErrNodeNotFound, e.To)
	}
	if e.Length < 0 {
		return fmt.Errorf("%w: %d→%d length=%f", ErrNegativeLength, e.From, e.To, e.Length)
	}
	if e.Length == 0 {
		e.Length = spatial.Distance(from.Point(), to.Point())
	}
	e.Class = Classify(e.Tags)

	out := g.edges[e.From]
	if out == nil {
		out = make(map[int64]*Edge)
		g.edges[e.From] = out
	}
	if existing, ok := out[e.To]; ok {
		if existing.Length <= e.Length {
			return nil
		}
		out[e.To] = &e
		return nil
	}
	out[e.To] = &e
	g.edgeCount++

	succ := g.adj[e.From]
	i := sort.Search(len(succ), func(i int) bool { return succ[i] >= e.To })
	succ = append(succ, 0)
	copy(succ[i+1:], succ[i:])
	succ[i] = e.To
	g.adj[e.From] = succ

	if e.From != e.To {
		g.degree[e.From]++
		g.degree[e.To]++
	}
	return nil
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of directed edges.
func (g *Graph) EdgeCount() int { return g.edgeCount }

// Node looks up a node by ID.
func (g *Graph) Node(id int64) (Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Degree returns the number of directed edges entering or leaving id. A
// two-way street contributes two, so a junction of three two-way roads has
// degree 6. Self-loops are not counted.
func (g *Graph) Degree(id int64) int {
	return g.degree[id]
}

// Edge looks up the directed edge u→v.
func (g *Graph) Edge(u, v int64) (*Edge, bool) {
	e, ok := g.edges[u][v]
	return e, ok
}

// NearestNode returns the node closest to p. Ties go to the smaller ID.
func (g *Graph) NearestNode(p spatial.Point) (int64, error) {
	if len(g.nodes) == 0 {
		return 0, ErrEmptyGraph
	}

	var best int64
	bestDist := -1.0
	for id, n := range g.nodes {
		d := spatial.Distance(p, n.Point())
		if bestDist < 0 || d < bestDist || (d == bestDist && id < best) {
			best, bestDist = id, d
		}
	}
	return best, nil
}

// EdgesNamed returns the edges whose name or ref matches name, ordered by
// (From, To).
func (g *Graph) EdgesNamed(name string) []*Edge {
	var matched []*Edge
	for _, out := range g.edges {
		for _, e := range out {
			if e.Matches(name) {
				matched = append(matched, e)
			}
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].From != matched[j].From {
			return matched[i].From < matched[j].From
		}
		return matched[i].To < matched[j].To
	})
	return matched
}
