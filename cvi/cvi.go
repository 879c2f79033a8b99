package cvi

import (
	"errors"
	"fmt"
	"math"

	"github.com/hupe1980/vqcluster/dataset"
	"github.com/hupe1980/vqcluster/distance"
	"gonum.org/v1/gonum/stat"
)

// ErrUnknownIndex is returned by ByName for an unregistered index name.
var ErrUnknownIndex = errors.New("unknown validity index")

// Index names accepted by ByName.
const (
	NameDaviesBouldin       = "davies-bouldin"
	NameDunn                = "dunn"
	NameMinFarthestCentroid = "min-farthest-centroid"
	NameOverallDeviation    = "overall-deviation"
)

// Index scores a partition.
type Index interface {
	// Name returns the registry name of the index.
	Name() string

	// Score evaluates the clusters. Empty clusters are ignored.
	Score(clusters []*dataset.Dataset) float64

	// Maximize reports whether larger scores are better.
	Maximize() bool

	// Better reports whether b is strictly better than a.
	Better(a, b float64) bool
}

// Names returns the names of all built-in indices.
func Names() []string {
	return []string{NameDaviesBouldin, NameDunn, NameMinFarthestCentroid, NameOverallDeviation}
}

// ByName returns the built-in index with the given name. A nil measure
// defaults to distance.Euclidean.
func ByName(name string, dm distance.Measure) (Index, error) {
	switch name {
	case NameDaviesBouldin:
		return NewDaviesBouldin(dm), nil
	case NameDunn:
		return NewDunn(dm), nil
	case NameMinFarthestCentroid:
		return NewMinFarthestCentroid(dm), nil
	case NameOverallDeviation:
		return NewOverallDeviation(dm), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownIndex, name)
	}
}

// Worst returns the worst possible score of idx.
func Worst(idx Index) float64 {
	if idx.Maximize() {
		return -math.MaxFloat64
	}
	return math.MaxFloat64
}

type minimize struct{}

func (minimize) Maximize() bool           { return false }
func (minimize) Better(a, b float64) bool { return b < a }

type maximize struct{}

func (maximize) Maximize() bool           { return true }
func (maximize) Better(a, b float64) bool { return b > a }

func measureOrDefault(dm distance.Measure) distance.Measure {
	if dm == nil {
		return distance.Euclidean{}
	}
	return dm
}

// nonEmpty returns the non-empty clusters and their centroids.
func nonEmpty(clusters []*dataset.Dataset) ([]*dataset.Dataset, [][]float64) {
	var (
		kept      []*dataset.Dataset
		centroids [][]float64
	)
	for _, c := range clusters {
		if c.Len() == 0 {
			continue
		}
		kept = append(kept, c)
		centroids = append(centroids, c.Average())
	}
	return kept, centroids
}

// DaviesBouldin is the Davies-Bouldin index: the mean, over clusters, of the
// largest ratio (s_i + s_j) / d(c_i, c_j), where s_i is the mean distance of
// the members of cluster i to its centroid c_i. Lower is better.
type DaviesBouldin struct {
	minimize
	dm distance.Measure
}

// NewDaviesBouldin creates a Davies-Bouldin index using dm.
func NewDaviesBouldin(dm distance.Measure) *DaviesBouldin {
	return &DaviesBouldin{dm: measureOrDefault(dm)}
}

// Name implements Index.
func (*DaviesBouldin) Name() string { return NameDaviesBouldin }

// Score implements Index. It returns 0 when no cluster has members.
func (db *DaviesBouldin) Score(clusters []*dataset.Dataset) float64 {
	kept, centroids := nonEmpty(clusters)
	if len(kept) == 0 {
		return 0
	}

	dispersions := make([]float64, len(kept))
	for i, c := range kept {
		distances := make([]float64, 0, c.Len())
		for _, inst := range c.All() {
			distances = append(distances, db.dm.Measure(centroids[i], inst.Values))
		}
		dispersions[i] = stat.Mean(distances, nil)
	}

	similarities := make([]float64, len(kept))
	for i := range kept {
		for j := range kept {
			if i == j {
				continue
			}
			s := (dispersions[i] + dispersions[j]) / db.dm.Measure(centroids[i], centroids[j])
			if s > similarities[i] {
				similarities[i] = s
			}
		}
	}

	return stat.Mean(similarities, nil)
}

// Dunn is the Dunn index: the smallest distance between members of
// different clusters divided by the largest distance between members of the
// same cluster. Higher is better.
type Dunn struct {
	maximize
	dm distance.Measure
}

// NewDunn creates a Dunn index using dm.
func NewDunn(dm distance.Measure) *Dunn {
	return &Dunn{dm: measureOrDefault(dm)}
}

// Name implements Index.
func (*Dunn) Name() string { return NameDunn }

// Score implements Index. Fewer than two non-empty clusters score 0; a
// partition whose clusters all have zero diameter scores math.MaxFloat64.
func (d *Dunn) Score(clusters []*dataset.Dataset) float64 {
	kept, _ := nonEmpty(clusters)
	if len(kept) < 2 {
		return 0
	}

	minSeparation := math.Inf(1)
	var maxDiameter float64

	for i, ci := range kept {
		members := ci.Instances()
		for s, a := range members {
			for _, cj := range kept[i+1:] {
				for _, b := range cj.All() {
					minSeparation = math.Min(minSeparation, d.dm.Measure(a.Values, b.Values))
				}
			}
			for _, b := range members[s+1:] {
				maxDiameter = math.Max(maxDiameter, d.dm.Measure(a.Values, b.Values))
			}
		}
	}

	if maxDiameter == 0 {
		return math.MaxFloat64
	}
	return minSeparation / maxDiameter
}

// MinFarthestCentroid measures separation as the minimum, over centroids, of
// the distance to the farthest other centroid. Higher is better.
type MinFarthestCentroid struct {
	maximize
	dm distance.Measure
}

// NewMinFarthestCentroid creates a MinFarthestCentroid index using dm.
func NewMinFarthestCentroid(dm distance.Measure) *MinFarthestCentroid {
	return &MinFarthestCentroid{dm: measureOrDefault(dm)}
}

// Name implements Index.
func (*MinFarthestCentroid) Name() string { return NameMinFarthestCentroid }

// Score implements Index. Fewer than two non-empty clusters score 0.
func (m *MinFarthestCentroid) Score(clusters []*dataset.Dataset) float64 {
	_, centroids := nonEmpty(clusters)
	if len(centroids) < 2 {
		return 0
	}

	minMax := math.MaxFloat64
	for i := range centroids {
		var farthest float64
		for j := range centroids {
			if i != j {
				farthest = math.Max(farthest, m.dm.Measure(centroids[i], centroids[j]))
			}
		}
		minMax = math.Min(minMax, farthest)
	}
	return minMax
}

// OverallDeviation is the overall deviation cohesion index: the sum, over
// all members, of the distance to their cluster centroid. Lower is better.
type OverallDeviation struct {
	minimize
	dm distance.Measure
}

// NewOverallDeviation creates an OverallDeviation index using dm.
func NewOverallDeviation(dm distance.Measure) *OverallDeviation {
	return &OverallDeviation{dm: measureOrDefault(dm)}
}

// Name implements Index.
func (*OverallDeviation) Name() string { return NameOverallDeviation }

// Score implements Index.
func (o *OverallDeviation) Score(clusters []*dataset.Dataset) float64 {
	kept, centroids := nonEmpty(clusters)

	var sum float64
	for i, c := range kept {
		for _, inst := range c.All() {
			sum += o.dm.Measure(inst.Values, centroids[i])
		}
	}
	return sum
}
