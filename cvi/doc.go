// Package cvi provides cluster-validity indices for scoring a partition
// without ground-truth labels.
//
// Every Index knows its own optimization direction: Better(a, b) reports
// whether b is a better score than a.
//
// # Indices
//
//   - DaviesBouldin: mean worst-case similarity between clusters (minimize)
//   - Dunn: minimum inter-cluster distance over maximum diameter (maximize)
//   - MinFarthestCentroid: separation of the centroid set (maximize)
//   - OverallDeviation: sum of member-to-centroid distances (minimize)
//
// Empty clusters are ignored by all indices.
//
// # Feature-count normalization
//
// Distance-based scores grow with the number of features, so scores obtained
// on different feature subsets are not comparable as-is. A Normalizer
// provides scale factors that make them comparable:
//
//	n := cvi.NewNormalizer(nFeatures, clusters)
//	f, _ := n.Factor(cvi.NormRefClusterSize)
//	score := idx.Score(clusters) / f
package cvi
