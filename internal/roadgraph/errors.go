package roadgraph

import "errors"

// Sentinel errors returned by the road graph.
var (
	// ErrEmptyGraph indicates a lookup on a graph without nodes.
	ErrEmptyGraph = errors.New("roadgraph: graph has no nodes")

	// ErrNodeNotFound indicates an unknown node ID.
	ErrNodeNotFound = errors.New("roadgraph: node not found")

	// ErrNoPath indicates that the target is unreachable from the source.
	ErrNoPath = errors.New("roadgraph: no path between nodes")

	// ErrNegativeLength indicates an edge with a negative physical length.
	ErrNegativeLength = errors.New("roadgraph: negative edge length")
)
