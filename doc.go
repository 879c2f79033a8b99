// Package vqcluster provides adaptive vector-quantization clustering for Go.
//
// Two engines are available:
//
//   - LBG (Linde–Buzo–Gray): random seeding inside the data's bounding box,
//     then alternating centroid actualization and nearest-centroid
//     partitioning until the relative improvement of the mean distortion
//     drops below the stop criterion.
//   - ELBG (Enhanced LBG): LBG plus a utility-driven migration pass each
//     iteration that relocates under-loaded centroids into over-loaded
//     regions, committed only on a strict distortion decrease.
//
// # Quick Start
//
//	data := dataset.FromVectors(vectors)
//	e, _ := vqcluster.NewELBG(8, vqcluster.WithSeed(42))
//	res, _ := e.Cluster(data)
//	for i, c := range res.Clusters {
//	    fmt.Println(i, c.Len(), res.Distortions[i])
//	}
//
// # Reproducibility
//
// Every engine owns an explicitly seeded pseudorandom source (WithSeed or
// WithSource). Two runs with the same seed over the same data produce
// identical centroids, partitions and distortions.
//
// # Concurrency
//
// Engines are single-threaded and keep private state. To cluster several
// datasets in parallel, create one engine (and one source) per goroutine;
// package fselect does exactly that for feature-subset evaluation.
//
// # Degenerate migration passes
//
// When a migration pass meets an under-loaded cluster but no over-loaded one,
// ELBG follows its MigrationPolicy: SkipDegenerate (default) ends the pass for
// that round, FailOnDegenerate aborts with ErrDegenerateMigration.
package vqcluster
