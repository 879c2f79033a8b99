package vqcluster

import (
	"math"
	"time"

	"github.com/hupe1980/vqcluster/dataset"
	"github.com/hupe1980/vqcluster/internal/kmeans"
)

// LBG implements the Linde–Buzo–Gray vector quantization algorithm:
// centroids are seeded uniformly inside the bounding box of the data, then
// refined by alternating centroid actualization and nearest-centroid
// partitioning until the relative improvement of the mean distortion falls
// below the stop criterion.
//
// An LBG owns its state and its pseudorandom source. It is not safe for
// concurrent use; run one engine per goroutine.
type LBG struct {
	k    int
	opts options

	state       State
	centroids   []dataset.Instance
	clusters    []*dataset.Dataset
	distortions []float64
	mean        float64
}

// NewLBG creates an LBG engine with k clusters.
func NewLBG(k int, optFns ...Option) (*LBG, error) {
	return newLBG(k, "lbg", optFns)
}

func newLBG(k int, algorithm string, optFns []Option) (*LBG, error) {
	if k <= 0 {
		return nil, ErrInvalidK
	}

	o := applyOptions(optFns)
	if o.initial != nil && len(o.initial) != k {
		return nil, &ErrCentroidCount{Expected: k, Actual: len(o.initial)}
	}
	o.logger = o.logger.WithAlgorithm(algorithm).WithK(k)

	return &LBG{
		k:    k,
		opts: o,
	}, nil
}

// K returns the number of clusters.
func (l *LBG) K() int { return l.k }

// State returns the lifecycle stage of the last run.
func (l *LBG) State() State { return l.state }

// Cluster runs LBG on data and returns the final partition.
func (l *LBG) Cluster(data *dataset.Dataset) (*Result, error) {
	start := time.Now()
	res, err := l.run(data, nil)
	l.finish(res, start, err)
	return res, err
}

// run drives the state machine. before, if non-nil, is invoked at the top of
// every refinement iteration.
func (l *LBG) run(data *dataset.Dataset, before func() error) (*Result, error) {
	if data.Len() == 0 {
		return nil, ErrEmptyDataset
	}

	l.init(data)

	last, err := l.partition(data)
	if err != nil {
		return nil, err
	}
	l.state = StatePartitioned

	iterations := 0
	for {
		l.state = StateRefining
		if before != nil {
			if err := before(); err != nil {
				return nil, err
			}
		}

		l.actualize()

		distortion, err := l.partition(data)
		if err != nil {
			return nil, err
		}
		iterations++

		improvement := (last - distortion) / distortion
		last = distortion

		l.opts.metricsCollector.RecordIteration(distortion, improvement)
		l.opts.logger.LogIteration(iterations, distortion, improvement)

		// A NaN improvement (zero distortion twice in a row) also terminates.
		if !(improvement >= l.opts.stopCriterion) {
			break
		}
		if l.opts.maxIterations > 0 && iterations >= l.opts.maxIterations {
			l.opts.logger.Warn("iteration limit reached before convergence",
				"iterations", iterations,
				"improvement", improvement,
			)
			break
		}
	}
	l.state = StateConverged

	return l.result(iterations), nil
}

// init seeds the centroids, either from the configured initial centroids or
// uniformly within the per-feature bounds of data.
func (l *LBG) init(data *dataset.Dataset) {
	if l.opts.initial != nil {
		l.centroids = kmeans.Clone(l.opts.initial)
		l.state = StateInitialized
		return
	}

	lo, hi := data.Bounds()
	l.centroids = make([]dataset.Instance, l.k)
	for i := range l.k {
		values := make([]float64, len(lo))
		for j := range values {
			span := math.Abs(hi[j] - lo[j])
			values[j] = lo[j] + l.opts.source.Float64()*span
		}
		l.centroids[i] = dataset.NewInstance(values)
	}
	l.state = StateInitialized
}

// partition rebuilds the clusters from the current centroids, runs the
// partition hooks and returns the mean distortion.
func (l *LBG) partition(data *dataset.Dataset) (float64, error) {
	p, err := kmeans.Assign(data, l.centroids, l.opts.measure)
	if err != nil {
		return 0, translateError(err)
	}

	l.clusters = p.Clusters
	l.distortions = p.Distortions
	l.mean = p.MeanDistortion

	for _, hook := range l.opts.hooks {
		hook(l.distortions, l.mean)
	}

	return l.mean, nil
}

func (l *LBG) actualize() {
	kmeans.Actualize(l.centroids, l.clusters)
}

func (l *LBG) result(iterations int) *Result {
	centroids := make([][]float64, len(l.centroids))
	for i, c := range kmeans.Clone(l.centroids) {
		centroids[i] = c.Values
	}
	return &Result{
		Clusters:       l.clusters,
		Centroids:      centroids,
		Distortions:    append([]float64(nil), l.distortions...),
		MeanDistortion: l.mean,
		Iterations:     iterations,
	}
}

func (l *LBG) finish(res *Result, start time.Time, err error) {
	iterations := 0
	distortion := math.NaN()
	if res != nil {
		iterations = res.Iterations
		distortion = res.TotalDistortion()
	}
	l.opts.metricsCollector.RecordRun(l.k, iterations, time.Since(start), err)
	l.opts.logger.LogRun(iterations, distortion, err)
}
