// Package testutil provides testing utilities for vqcluster.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating reproducible random datasets and for
// checking structural properties of clustering results.
//
// # Random Data Generation
//
//	rng := testutil.NewRNG(seed)
//	vecs := rng.UniformVectors(100, 4)        // uniform [0, 1)
//	blobs := rng.Blobs(centers, 50, 0.1)      // Gaussian blobs
//
// # Partition Checks
//
//	ok := testutil.IsCover(data, res.Clusters)
package testutil
