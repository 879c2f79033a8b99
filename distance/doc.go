// Package distance provides the distance measures used by the clustering
// engines and the cluster-validity indices.
//
// A Measure pairs a distance function with its own ordering: Compare reports
// whether the first distance is strictly better (shorter) than the second.
// All nearest-centroid decisions go through Compare, never through a raw
// numeric comparison.
//
// # Supported Metrics
//
//   - MetricEuclidean: L2 distance (default)
//   - MetricManhattan: L1 distance
//   - MetricSquaredL2: squared Euclidean distance
//
// Euclidean and Manhattan accept an optional feature mask restricting the
// distance to the selected features.
//
// # Usage
//
//	dm := distance.Euclidean{}
//	d := dm.Measure(a, b)
//	closer := dm.Compare(d, best)
package distance
