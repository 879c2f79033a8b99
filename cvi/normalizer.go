package cvi

import (
	"errors"
	"fmt"
	"math"

	"github.com/hupe1980/vqcluster/dataset"
)

// ErrUnknownNormalization is returned for an unregistered normalization name.
var ErrUnknownNormalization = errors.New("unknown normalization")

// Normalization names accepted by Normalizer.Factor.
const (
	NormRefClusterSize = "ref-cluster-size"
	NormMaxDistance    = "max-distance"
)

// Normalizer provides scale factors that make scores obtained with different
// numbers of features comparable. Data is assumed to be normalized to the
// unit hypercube.
type Normalizer struct {
	refClusterSize float64
	maxDistance    float64
}

// NewNormalizer creates a Normalizer for a partition of data with nFeatures
// features.
func NewNormalizer(nFeatures int, clusters []*dataset.Dataset) *Normalizer {
	var nonEmpty int
	for _, c := range clusters {
		if c.Len() > 0 {
			nonEmpty++
		}
	}

	return &Normalizer{
		refClusterSize: 1 / math.Pow(float64(nonEmpty), 1/float64(nFeatures)),
		maxDistance:    math.Sqrt(float64(nFeatures)),
	}
}

// RefClusterSize returns the expected cluster size for uniformly distributed
// data with the same number of features and non-empty clusters:
// 1 / nonEmpty^(1/nFeatures).
func (n *Normalizer) RefClusterSize() float64 { return n.refClusterSize }

// MaxDistance returns the largest Euclidean distance between two points of
// the unit hypercube: sqrt(nFeatures).
func (n *Normalizer) MaxDistance() float64 { return n.maxDistance }

// Factor returns the scale factor with the given name.
func (n *Normalizer) Factor(name string) (float64, error) {
	switch name {
	case NormRefClusterSize:
		return n.refClusterSize, nil
	case NormMaxDistance:
		return n.maxDistance, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownNormalization, name)
	}
}

// ValidNormalization reports whether name is a known normalization. The
// empty name means no normalization and is valid.
func ValidNormalization(name string) bool {
	switch name {
	case "", NormRefClusterSize, NormMaxDistance:
		return true
	default:
		return false
	}
}
