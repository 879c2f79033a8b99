package vqcluster

import (
	"slices"
	"time"

	"github.com/hupe1980/vqcluster/dataset"
	"github.com/hupe1980/vqcluster/internal/kmeans"
)

// localStopCriterion is the stop criterion of the two-cluster refinement run
// inside a migration attempt.
const localStopCriterion = 0.2

// ELBG implements the Enhanced LBG algorithm. Every iteration starts with a
// migration pass that tries to move each under-loaded centroid (utility < 1)
// into an over-loaded region (utility > 1). A migration is committed only if
// it strictly lowers the distortion of the three clusters it touches.
//
// Like LBG, an ELBG is not safe for concurrent use.
type ELBG struct {
	lbg       *LBG
	utilities []float64
	weights   []float64
}

// NewELBG creates an ELBG engine with k clusters.
func NewELBG(k int, optFns ...Option) (*ELBG, error) {
	e := &ELBG{}

	opts := append(slices.Clone(optFns), WithPartitionHook(e.updateUtilities))
	lbg, err := newLBG(k, "elbg", opts)
	if err != nil {
		return nil, err
	}

	e.lbg = lbg
	e.utilities = make([]float64, k)
	e.weights = make([]float64, k)

	return e, nil
}

// K returns the number of clusters.
func (e *ELBG) K() int { return e.lbg.k }

// State returns the lifecycle stage of the last run.
func (e *ELBG) State() State { return e.lbg.state }

// Utilities returns a copy of the current per-cluster utilities.
func (e *ELBG) Utilities() []float64 { return slices.Clone(e.utilities) }

// Cluster runs ELBG on data and returns the final partition.
func (e *ELBG) Cluster(data *dataset.Dataset) (*Result, error) {
	start := time.Now()
	res, err := e.lbg.run(data, e.migrationPass)
	e.lbg.finish(res, start, err)
	return res, err
}

// updateUtilities is the partition hook deriving utilities from distortions.
func (e *ELBG) updateUtilities(distortions []float64, meanDistortion float64) {
	for i, d := range distortions {
		e.utilities[i] = d / meanDistortion
	}
}

// migrationPass tries to migrate every cluster whose utility, as it stands
// at that point of the scan, is below one.
func (e *ELBG) migrationPass() error {
	o := &e.lbg.opts
	for i := range e.utilities {
		if !(e.utilities[i] < 1) {
			continue
		}

		dest, ok := e.sampleDestination()
		if !ok {
			o.metricsCollector.RecordDegenerate()
			if o.policy == FailOnDegenerate {
				o.logger.LogDegenerate(i, ErrDegenerateMigration)
				return ErrDegenerateMigration
			}
			// Utilities only change on accepted migrations, so the rest of
			// the pass would be degenerate too.
			o.logger.LogDegenerate(i, nil)
			return nil
		}

		accepted, err := e.migrationAttempt(i, dest)
		if err != nil {
			return err
		}
		o.metricsCollector.RecordMigration(accepted)
	}
	return nil
}

// sampleDestination draws an over-loaded cluster with probability
// proportional to its utility. It reports false if no cluster is over-loaded.
func (e *ELBG) sampleDestination() (int, bool) {
	var acc float64
	for j, u := range e.utilities {
		e.weights[j] = 0
		if u > 1 {
			e.weights[j] = u
			acc += u
		}
	}
	if acc == 0 {
		return -1, false
	}

	r := e.lbg.opts.source.Float64()

	// Inverse CDF over cluster indices. Round-off can leave the cumulative
	// sum just below r; dest then stays on the last candidate.
	dest := -1
	var cum float64
	for j, w := range e.weights {
		if w == 0 {
			continue
		}
		cum += w / acc
		dest = j
		if !(cum < r) {
			break
		}
	}
	return dest, true
}

// migrationAttempt moves the emigrant centroid into the destination cluster
// and hands the emigrant's members to its closest cluster. The move is
// committed only if the distortion of the three touched clusters strictly
// decreases. It reports whether the move was committed.
func (e *ELBG) migrationAttempt(emigrant, destination int) (bool, error) {
	l := e.lbg
	dm := l.opts.measure

	closest := kmeans.ClosestOther(l.centroids, emigrant, dm)
	if closest < 0 || closest == destination {
		l.opts.logger.LogMigration(emigrant, destination, closest, 0, 0, false)
		return false, nil
	}

	// Seed two prototypes on the main diagonal of the destination's bounding box.
	members := l.clusters[destination]
	lo, hi := members.Bounds()
	seed1 := make([]float64, len(lo))
	seed2 := make([]float64, len(lo))
	for j := range lo {
		offset := (hi[j] - lo[j]) / 4
		seed1[j] = lo[j] + offset
		seed2[j] = lo[j] + offset*3
	}

	local, err := NewLBG(2,
		WithStopCriterion(localStopCriterion),
		WithDistance(dm),
		WithSource(l.opts.source),
		WithInitialCentroids(seed1, seed2),
	)
	if err != nil {
		return false, err
	}
	split, err := local.Cluster(members)
	if err != nil {
		return false, err
	}

	newEmigrant, newDestination := seed1, seed2
	if split.Clusters[0].Len() > 0 {
		newEmigrant = split.Clusters[0].Average()
	}
	if split.Clusters[1].Len() > 0 {
		newDestination = split.Clusters[1].Average()
	}

	merged := dataset.Merge(l.clusters[emigrant], l.clusters[closest])
	newClosest := l.centroids[closest].Values
	if merged.Len() > 0 {
		newClosest = merged.Average()
	}

	oldDistortion := l.distortions[emigrant] + l.distortions[closest] + l.distortions[destination]

	emigrantDistortion := kmeans.Distortion(newEmigrant, split.Clusters[0], dm)
	destinationDistortion := kmeans.Distortion(newDestination, split.Clusters[1], dm)
	closestDistortion := kmeans.Distortion(newClosest, merged, dm)
	newDistortion := emigrantDistortion + destinationDistortion + closestDistortion

	accepted := newDistortion < oldDistortion
	l.opts.logger.LogMigration(emigrant, destination, closest, oldDistortion, newDistortion, accepted)
	if !accepted {
		return false, nil
	}

	l.centroids[emigrant] = dataset.NewInstance(newEmigrant)
	l.centroids[destination] = dataset.NewInstance(newDestination)
	l.centroids[closest] = dataset.NewInstance(slices.Clone(newClosest))

	l.clusters[emigrant] = split.Clusters[0]
	l.clusters[destination] = split.Clusters[1]
	l.clusters[closest] = merged

	l.distortions[emigrant] = emigrantDistortion
	l.distortions[destination] = destinationDistortion
	l.distortions[closest] = closestDistortion

	l.mean = kmeans.MeanDistortion(l.distortions)
	e.updateUtilities(l.distortions, l.mean)

	return true, nil
}
