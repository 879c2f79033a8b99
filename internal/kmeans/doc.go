// Package kmeans implements the partition and centroid-estimation primitives
// shared by the LBG and ELBG engines and the codebook quantizer.
//
// Partitions are rebuilt from scratch on every call, so they always reflect
// the current centroids exactly.
package kmeans
