package roadgraph

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
)

// Snapshot is the on-disk node-link form of a road network.
type Snapshot struct {
	Nodes []SnapshotNode `json:"nodes"`
	Edges []SnapshotEdge `json:"edges"`
}

// SnapshotNode is one node record.
type SnapshotNode struct {
	ID  int64   `json:"id"`
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// SnapshotEdge is one road segment record. Unless tagged oneway, the reverse
// direction is added as well.
type SnapshotEdge struct {
	U        int64             `json:"u"`
	V        int64             `json:"v"`
	Length   float64           `json:"length"`
	Tags     map[string]string `json:"tags"`
	Geometry orb.LineString    `json:"geometry,omitempty"`
}

// LoadJSON reads a snapshot file and builds the graph.
func LoadJSON(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open road graph: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode reads a snapshot from r and builds the graph.
func Decode(r io.Reader) (*Graph, error) {
	var snap Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("failed to parse road graph: %w", err)
	}
	return snap.Build()
}

// Build converts the snapshot into a Graph.
func (s *Snapshot) Build() (*Graph, error) {
	g := NewGraph()
	for _, n := range s.Nodes {
		g.AddNode(n.ID, n.Lat, n.Lon)
	}

	for i, rec := range s.Edges {
		tags := toTags(rec.Tags)
		if err := g.AddEdge(Edge{From: rec.U, To: rec.V, Length: rec.Length, Tags: tags, Geometry: rec.Geometry}); err != nil {
			return nil, fmt.Errorf("edge %d: %w", i, err)
		}
		if isOneway(tags) {
			continue
		}

		var reversed orb.LineString
		if len(rec.Geometry) > 0 {
			reversed = rec.Geometry.Clone()
			reversed.Reverse()
		}
		if err := g.AddEdge(Edge{From: rec.V, To: rec.U, Length: rec.Length, Tags: tags, Geometry: reversed}); err != nil {
			return nil, fmt.Errorf("edge %d (reverse): %w", i, err)
		}
	}

	return g, nil
}

func toTags(m map[string]string) osm.Tags {
	tags := make(osm.Tags, 0, len(m))
	for k, v := range m {
		tags = append(tags, osm.Tag{Key: k, Value: v})
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].Key < tags[j].Key })
	return tags
}

func isOneway(tags osm.Tags) bool {
	switch strings.ToLower(tags.Find("oneway")) {
	case "yes", "true", "1":
		return true
	}
	return false
}
