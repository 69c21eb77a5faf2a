package spatial

import "fmt"

// Locator extracts the position of a clustered item.
type Locator[T any] func(item T) Point

// Merger collapses a cluster of two or more members into one representative.
// clusterIndex is the position of the cluster in the full cluster list,
// singletons included.
type Merger[T any] func(clusterIndex int, members []T) T

// Cluster partitions items with a greedy single-link flood.
//
// Items are visited in slice order. Each unvisited item seeds a new cluster and
// absorbs every other unvisited item within thresholdM meters of the seed. Members
// absorbed this way do not extend the reach of the cluster. The first member of
// every returned cluster is its seed.
//
// Runs in O(n²); a grid or R-tree index can replace the inner scan for large
// inputs as long as the seed-radius semantics are kept.
func Cluster[T any](items []T, locate Locator[T], thresholdM float64) [][]T {
	visited := make([]bool, len(items))
	var clusters [][]T

	for i, seed := range items {
		if visited[i] {
			continue
		}
		visited[i] = true
		seedPos := locate(seed)
		cluster := []T{seed}

		for j := range items {
			if visited[j] {
				continue
			}
			if Distance(seedPos, locate(items[j])) <= thresholdM {
				cluster = append(cluster, items[j])
				visited[j] = true
			}
		}

		clusters = append(clusters, cluster)
	}

	return clusters
}

// Collapse clusters items and replaces every multi-member cluster with the
// value returned by merge. Singletons pass through unchanged. Output order
// follows cluster order.
func Collapse[T any](items []T, locate Locator[T], thresholdM float64, merge Merger[T]) []T {
	clusters := Cluster(items, locate, thresholdM)
	out := make([]T, 0, len(clusters))
	for idx, members := range clusters {
		if len(members) == 1 {
			out = append(out, members[0])
			continue
		}
		out = append(out, merge(idx, members))
	}
	return out
}

// ClusterID names the representative of a merged cluster.
func ClusterID(representativeID string, clusterIndex int) string {
	return fmt.Sprintf("%s_cluster_%d", representativeID, clusterIndex)
}
