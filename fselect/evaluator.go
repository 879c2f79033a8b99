package fselect

import (
	"context"
	"fmt"
	"runtime"

	"github.com/RoaringBitmap/roaring/v2"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/vqcluster"
	"github.com/hupe1980/vqcluster/cvi"
	"github.com/hupe1980/vqcluster/dataset"
	"github.com/hupe1980/vqcluster/distance"
)

// Objectives is the evaluation of one feature subset.
type Objectives struct {
	Separation  float64 `json:"separation"`
	Compactness float64 `json:"compactness"`
	NumFeatures int     `json:"num_features"`
	NonEmpty    int     `json:"non_empty_clusters"`
	Iterations  int     `json:"iterations"`
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithLogger sets the logger handed to every clustering engine.
func WithLogger(logger *vqcluster.Logger) Option {
	return func(e *Evaluator) {
		if logger == nil {
			logger = vqcluster.NoopLogger()
		}
		e.logger = logger
	}
}

// WithMetricsCollector sets the collector handed to every clustering engine.
// It must be safe for concurrent use.
func WithMetricsCollector(mc vqcluster.MetricsCollector) Option {
	return func(e *Evaluator) {
		if mc == nil {
			mc = vqcluster.NoopMetricsCollector{}
		}
		e.metrics = mc
	}
}

// Evaluator scores feature subsets of a dataset by clustering the projected
// data and measuring the separation and compactness of the result.
//
// An Evaluator is safe for concurrent use: every evaluation builds its own
// engine with its own seeded source.
type Evaluator struct {
	data        *dataset.Dataset
	cfg         Config
	dm          distance.Measure
	separation  cvi.Index
	compactness cvi.Index
	logger      *vqcluster.Logger
	metrics     vqcluster.MetricsCollector
}

// New creates an Evaluator over data. With cfg.Normalize the evaluator works
// on a normalized copy; data itself is never modified.
func New(data *dataset.Dataset, cfg Config, optFns ...Option) (*Evaluator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if data.Len() == 0 {
		return nil, vqcluster.ErrEmptyDataset
	}

	metric, err := distance.ParseMetric(cfg.Metric)
	if err != nil {
		return nil, err
	}
	dm, err := distance.Provider(metric)
	if err != nil {
		return nil, err
	}

	separation, err := cvi.ByName(cfg.Separation, dm)
	if err != nil {
		return nil, err
	}
	compactness, err := cvi.ByName(cfg.Compactness, dm)
	if err != nil {
		return nil, err
	}

	if cfg.Normalize {
		all := roaring.New()
		all.AddRange(0, uint64(data.Dim()))
		data = data.Project(all)
		data.Normalize()
	}

	e := &Evaluator{
		data:        data,
		cfg:         cfg,
		dm:          dm,
		separation:  separation,
		compactness: compactness,
		logger:      vqcluster.NoopLogger(),
		metrics:     vqcluster.NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		fn(e)
	}

	return e, nil
}

// Config returns the evaluator's configuration.
func (e *Evaluator) Config() Config { return e.cfg }

// Worst returns the objectives assigned to a subset without features.
func (e *Evaluator) Worst() Objectives {
	return Objectives{
		Separation:  cvi.Worst(e.separation),
		Compactness: cvi.Worst(e.compactness),
	}
}

// Evaluate scores the features selected by mask, clustering with a fresh
// engine seeded with seed. Feature indexes beyond the dimensionality are
// ignored; a mask selecting no feature gets the worst objectives.
func (e *Evaluator) Evaluate(mask *roaring.Bitmap, seed uint64) (Objectives, error) {
	if mask == nil || mask.IsEmpty() {
		return e.Worst(), nil
	}

	projected := e.data.Project(mask)
	nFeatures := projected.Dim()
	if nFeatures == 0 {
		return e.Worst(), nil
	}

	clusterer, err := e.newClusterer(seed)
	if err != nil {
		return Objectives{}, err
	}

	res, err := clusterer.Cluster(projected)
	if err != nil {
		return Objectives{}, fmt.Errorf("clustering %d features: %w", nFeatures, err)
	}

	separation := e.separation.Score(res.Clusters)
	compactness := e.compactness.Score(res.Clusters)

	norm := cvi.NewNormalizer(nFeatures, res.Clusters)
	if e.cfg.SeparationNorm != "" {
		f, err := norm.Factor(e.cfg.SeparationNorm)
		if err != nil {
			return Objectives{}, err
		}
		separation /= f
	}
	if e.cfg.CompactnessNorm != "" {
		f, err := norm.Factor(e.cfg.CompactnessNorm)
		if err != nil {
			return Objectives{}, err
		}
		compactness /= f
	}

	return Objectives{
		Separation:  separation,
		Compactness: compactness,
		NumFeatures: nFeatures,
		NonEmpty:    res.NonEmpty(),
		Iterations:  res.Iterations,
	}, nil
}

// EvaluateAll evaluates masks concurrently. Mask i is clustered with seed
// cfg.Seed+i, so results equal sequential Evaluate calls with those seeds.
// Masks must not be modified while EvaluateAll runs.
func (e *Evaluator) EvaluateAll(ctx context.Context, masks []*roaring.Bitmap) ([]Objectives, error) {
	out := make([]Objectives, len(masks))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency())

	for i, mask := range masks {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			obj, err := e.Evaluate(mask, e.cfg.Seed+uint64(i))
			if err != nil {
				return fmt.Errorf("mask %d: %w", i, err)
			}
			out[i] = obj
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Dominates reports whether a Pareto-dominates b: a is no worse than b in
// both objectives and strictly better in at least one.
func (e *Evaluator) Dominates(a, b Objectives) bool {
	if e.separation.Better(a.Separation, b.Separation) || e.compactness.Better(a.Compactness, b.Compactness) {
		return false
	}
	return e.separation.Better(b.Separation, a.Separation) || e.compactness.Better(b.Compactness, a.Compactness)
}

// ParetoFront returns the indexes of the non-dominated objectives, in order.
func (e *Evaluator) ParetoFront(objs []Objectives) []int {
	var front []int
	for i, a := range objs {
		dominated := false
		for j, b := range objs {
			if i != j && e.Dominates(b, a) {
				dominated = true
				break
			}
		}
		if !dominated {
			front = append(front, i)
		}
	}
	return front
}

func (e *Evaluator) concurrency() int {
	if e.cfg.Concurrency > 0 {
		return e.cfg.Concurrency
	}
	return runtime.GOMAXPROCS(0)
}

func (e *Evaluator) newClusterer(seed uint64) (vqcluster.Clusterer, error) {
	opts := []vqcluster.Option{
		vqcluster.WithSeed(seed),
		vqcluster.WithDistance(e.dm),
		vqcluster.WithMaxIterations(e.cfg.MaxIterations),
		vqcluster.WithMigrationPolicy(e.cfg.MigrationPolicy),
		vqcluster.WithLogger(e.logger),
		vqcluster.WithMetricsCollector(e.metrics),
	}
	if e.cfg.StopCriterion > 0 {
		opts = append(opts, vqcluster.WithStopCriterion(e.cfg.StopCriterion))
	}

	switch e.cfg.Clusterer {
	case ClustererLBG:
		lbg, err := vqcluster.NewLBG(e.cfg.NumClusters, opts...)
		if err != nil {
			return nil, err
		}
		return lbg, nil
	default:
		elbg, err := vqcluster.NewELBG(e.cfg.NumClusters, opts...)
		if err != nil {
			return nil, err
		}
		return elbg, nil
	}
}
