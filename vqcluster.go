package vqcluster

import (
	"math/rand/v2"

	"github.com/hupe1980/vqcluster/dataset"
)

// Source is the pseudorandom generator consumed by the engines.
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	// Float64 returns a number in [0, 1).
	Float64() float64
	// IntN returns a number in [0, n).
	IntN(n int) int
}

// NewSource returns a PCG-backed source seeded with seed.
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Clusterer partitions a dataset into clusters.
type Clusterer interface {
	Cluster(data *dataset.Dataset) (*Result, error)
}

// Result is the outcome of a clustering run.
type Result struct {
	// Clusters holds, per cluster index, the instances assigned to it.
	// Empty clusters are possible.
	Clusters []*dataset.Dataset
	// Centroids holds the final centroid of every cluster.
	Centroids [][]float64
	// Distortions holds the final per-cluster distortion.
	Distortions []float64
	// MeanDistortion is the distortion sum divided by the number of clusters.
	MeanDistortion float64
	// Iterations is the number of actualize/partition iterations performed.
	Iterations int
}

// TotalDistortion returns the sum of all cluster distortions.
func (r *Result) TotalDistortion() float64 {
	var sum float64
	for _, d := range r.Distortions {
		sum += d
	}
	return sum
}

// NonEmpty returns the number of clusters with at least one member.
func (r *Result) NonEmpty() int {
	n := 0
	for _, c := range r.Clusters {
		if c.Len() > 0 {
			n++
		}
	}
	return n
}

// State is the lifecycle stage of an engine run.
type State int

const (
	StateUninitialized State = iota
	StateInitialized
	StatePartitioned
	StateRefining
	StateConverged
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitialized:
		return "initialized"
	case StatePartitioned:
		return "partitioned"
	case StateRefining:
		return "refining"
	case StateConverged:
		return "converged"
	default:
		return "unknown"
	}
}
