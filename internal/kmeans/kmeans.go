package kmeans

import (
	"errors"

	"github.com/hupe1980/vqcluster/dataset"
	"github.com/hupe1980/vqcluster/distance"
)

var (
	// ErrEmptyDataset is returned when partitioning an empty dataset.
	ErrEmptyDataset = errors.New("kmeans: empty dataset")

	// ErrNoCentroids is returned when partitioning against zero centroids.
	ErrNoCentroids = errors.New("kmeans: no centroids")
)

// Partition is the result of assigning every instance to its nearest centroid.
type Partition struct {
	// Clusters holds, per centroid, the instances assigned to it.
	Clusters []*dataset.Dataset
	// Distortions holds, per centroid, the sum of distances to its members.
	Distortions []float64
	// MeanDistortion is the distortion sum divided by the number of clusters.
	MeanDistortion float64
}

// Nearest returns the index of the centroid closest to vec and its distance.
//
// Centroids are scanned in order and the winner only changes when dm reports
// a strictly better distance, so on ties the earlier index wins.
func Nearest(vec []float64, centroids []dataset.Instance, dm distance.Measure) (int, float64) {
	best := 0
	bestDist := dm.Measure(centroids[0].Values, vec)
	for j := 1; j < len(centroids); j++ {
		d := dm.Measure(centroids[j].Values, vec)
		if dm.Compare(d, bestDist) {
			bestDist = d
			best = j
		}
	}
	return best, bestDist
}

// Assign partitions data by nearest centroid and accumulates per-cluster distortion.
func Assign(data *dataset.Dataset, centroids []dataset.Instance, dm distance.Measure) (*Partition, error) {
	if data.Len() == 0 {
		return nil, ErrEmptyDataset
	}
	k := len(centroids)
	if k == 0 {
		return nil, ErrNoCentroids
	}

	p := &Partition{
		Clusters:    make([]*dataset.Dataset, k),
		Distortions: make([]float64, k),
	}
	for i := range p.Clusters {
		p.Clusters[i] = dataset.New()
	}

	var total float64
	for _, inst := range data.All() {
		c, d := Nearest(inst.Values, centroids, dm)
		p.Clusters[c].Add(inst)
		p.Distortions[c] += d
		total += d
	}
	p.MeanDistortion = total / float64(k)

	return p, nil
}

// Actualize moves every centroid to the mean of its cluster. Centroids of
// empty clusters are left unchanged.
func Actualize(centroids []dataset.Instance, clusters []*dataset.Dataset) {
	for i, c := range clusters {
		if c.Len() != 0 {
			centroids[i] = dataset.NewInstance(c.Average())
		}
	}
}

// Distortion returns the sum of distances from centroid to each member.
func Distortion(centroid []float64, members *dataset.Dataset, dm distance.Measure) float64 {
	var sum float64
	for _, inst := range members.All() {
		sum += dm.Measure(centroid, inst.Values)
	}
	return sum
}

// MeanDistortion returns the distortion sum divided by the number of clusters.
func MeanDistortion(distortions []float64) float64 {
	var sum float64
	for _, d := range distortions {
		sum += d
	}
	return sum / float64(len(distortions))
}

// ClosestOther returns the index of the centroid closest to centroids[idx],
// excluding idx itself, or -1 if there is no other centroid.
func ClosestOther(centroids []dataset.Instance, idx int, dm distance.Measure) int {
	closest := -1
	var best float64
	for i := range centroids {
		if i == idx {
			continue
		}
		d := dm.Measure(centroids[i].Values, centroids[idx].Values)
		if closest < 0 || dm.Compare(d, best) {
			closest = i
			best = d
		}
	}
	return closest
}

// Clone returns a deep copy of the centroids.
func Clone(centroids []dataset.Instance) []dataset.Instance {
	out := make([]dataset.Instance, len(centroids))
	for i, c := range centroids {
		out[i] = c.Clone()
	}
	return out
}
