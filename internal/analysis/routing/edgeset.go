package routing

// EdgeKey identifies a directed edge u→v.
type EdgeKey struct {
	U, V int64
}

// EdgeSet is an immutable set of directed edges. The zero value is empty.
type EdgeSet struct {
	edges map[EdgeKey]struct{}
}

// EdgesOf returns the consecutive node pairs of path.
func EdgesOf(path []int64) EdgeSet {
	if len(path) < 2 {
		return EdgeSet{}
	}
	edges := make(map[EdgeKey]struct{}, len(path)-1)
	for i := 0; i+1 < len(path); i++ {
		edges[EdgeKey{path[i], path[i+1]}] = struct{}{}
	}
	return EdgeSet{edges: edges}
}

// Contains reports whether u→v is in the set.
func (s EdgeSet) Contains(u, v int64) bool {
	_, ok := s.edges[EdgeKey{u, v}]
	return ok
}

// Len returns the number of edges.
func (s EdgeSet) Len() int { return len(s.edges) }

// Union returns a new set holding the edges of both sets.
func (s EdgeSet) Union(other EdgeSet) EdgeSet {
	edges := make(map[EdgeKey]struct{}, len(s.edges)+len(other.edges))
	for k := range s.edges {
		edges[k] = struct{}{}
	}
	for k := range other.edges {
		edges[k] = struct{}{}
	}
	return EdgeSet{edges: edges}
}
