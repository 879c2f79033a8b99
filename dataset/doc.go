// Package dataset provides the in-memory data model consumed by the clustering
// engines: fixed-length real-valued instances with an optional class label, and
// ordered collections of them.
//
// # Usage
//
//	data := dataset.FromVectors([][]float64{{0, 0}, {0, 1}, {10, 0}})
//	lo, hi := data.Bounds()
//	mean := data.Average()
//
// Feature subsets are expressed as roaring bitmaps of feature indexes:
//
//	mask := roaring.BitmapOf(0, 2)
//	projected := data.Project(mask)
package dataset
