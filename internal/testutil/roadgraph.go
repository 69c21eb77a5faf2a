// Package testutil provides shared test fixtures.
package testutil

import (
	"testing"

	"github.com/paulmach/osm"

	"github.com/jengzang/chokepoint-planner/internal/models"
	"github.com/jengzang/chokepoint-planner/internal/roadgraph"
)

// Corridor node IDs.
//
// Leg one runs from CorridorS to CorridorV over three alternatives:
// a short residential street through CorridorA, a primary road (N209) through
// CorridorB and a longer motorway (A16) through CorridorC. Leg two is a single
// primary road from CorridorV through CorridorD to CorridorE.
const (
	CorridorS int64 = 1
	CorridorA int64 = 2
	CorridorB int64 = 3
	CorridorC int64 = 4
	CorridorV int64 = 5
	CorridorD int64 = 6
	CorridorE int64 = 9

	// CorridorIsland is disconnected from everything else.
	CorridorIsland int64 = 99
)

// Corridor waypoints, placed exactly on their nodes.
var (
	CorridorStart  = models.NewLatLon(52.000, 4.000)
	CorridorVia    = models.NewLatLon(52.010, 4.000)
	CorridorEnd    = models.NewLatLon(52.020, 4.000)
	CorridorOnIsle = models.NewLatLon(53.000, 5.000)
)

// CorridorSnapshot returns the node-link description of the corridor network.
func CorridorSnapshot() *roadgraph.Snapshot {
	return &roadgraph.Snapshot{
		Nodes: []roadgraph.SnapshotNode{
			{ID: CorridorS, Lat: 52.000, Lon: 4.000},
			{ID: CorridorA, Lat: 52.005, Lon: 4.000},
			{ID: CorridorB, Lat: 52.005, Lon: 4.005},
			{ID: CorridorC, Lat: 52.005, Lon: 4.010},
			{ID: CorridorV, Lat: 52.010, Lon: 4.000},
			{ID: CorridorD, Lat: 52.015, Lon: 4.000},
			{ID: CorridorE, Lat: 52.020, Lon: 4.000},
			{ID: CorridorIsland, Lat: 53.000, Lon: 5.000},
		},
		Edges: []roadgraph.SnapshotEdge{
			{U: CorridorS, V: CorridorA, Length: 1000, Tags: map[string]string{"highway": "residential", "name": "Dorpsstraat"}},
			{U: CorridorA, V: CorridorV, Length: 1000, Tags: map[string]string{"highway": "residential", "name": "Dorpsstraat"}},
			{U: CorridorS, V: CorridorB, Length: 1100, Tags: map[string]string{"highway": "primary", "ref": "N209"}},
			{U: CorridorB, V: CorridorV, Length: 1100, Tags: map[string]string{"highway": "primary", "ref": "N209"}},
			{U: CorridorS, V: CorridorC, Length: 1300, Tags: map[string]string{"highway": "motorway", "ref": "A16"}},
			{U: CorridorC, V: CorridorV, Length: 1300, Tags: map[string]string{"highway": "motorway", "ref": "A16"}},
			{U: CorridorV, V: CorridorD, Length: 600, Tags: map[string]string{"highway": "primary", "name": "Koningskade"}},
			{U: CorridorD, V: CorridorE, Length: 600, Tags: map[string]string{"highway": "primary", "name": "Korte Voorhout"}},
		},
	}
}

// CorridorGraph builds the corridor network.
func CorridorGraph(tb testing.TB) *roadgraph.Graph {
	tb.Helper()
	g, err := CorridorSnapshot().Build()
	if err != nil {
		tb.Fatalf("build corridor graph: %v", err)
	}
	return g
}

// Tags builds an osm.Tags list from key/value pairs.
func Tags(kv ...string) osm.Tags {
	tags := make(osm.Tags, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		tags = append(tags, osm.Tag{Key: kv[i], Value: kv[i+1]})
	}
	return tags
}
