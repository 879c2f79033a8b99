package vqcluster

import (
	"log/slog"

	"github.com/hupe1980/vqcluster/dataset"
	"github.com/hupe1980/vqcluster/distance"
)

// DefaultStopCriterion is the relative-improvement threshold used when none is configured.
const DefaultStopCriterion = 1e-4

// DefaultSeed seeds the pseudorandom source when neither WithSeed nor WithSource is given.
const DefaultSeed uint64 = 1

// PartitionHook is invoked after every partition step with the per-cluster
// distortions and the mean distortion. The slice must not be retained.
type PartitionHook func(distortions []float64, meanDistortion float64)

// MigrationPolicy decides what a migration pass does when an under-loaded
// cluster exists but no cluster is over-loaded.
type MigrationPolicy int

const (
	// SkipDegenerate skips the rest of the migration pass for that round.
	SkipDegenerate MigrationPolicy = iota
	// FailOnDegenerate aborts the run with ErrDegenerateMigration.
	FailOnDegenerate
)

func (p MigrationPolicy) String() string {
	switch p {
	case SkipDegenerate:
		return "skip"
	case FailOnDegenerate:
		return "fail"
	default:
		return "unknown"
	}
}

type options struct {
	stopCriterion    float64
	measure          distance.Measure
	source           Source
	seed             uint64
	initial          []dataset.Instance
	hooks            []PartitionHook
	maxIterations    int
	policy           MigrationPolicy
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures the LBG and ELBG engines.
type Option func(*options)

// WithStopCriterion sets the relative-improvement threshold below which
// refinement halts.
func WithStopCriterion(stop float64) Option {
	return func(o *options) {
		o.stopCriterion = stop
	}
}

// WithDistance sets the distance measure. Defaults to distance.Euclidean.
func WithDistance(dm distance.Measure) Option {
	return func(o *options) {
		if dm != nil {
			o.measure = dm
		}
	}
}

// WithSeed seeds the engine's own pseudorandom source.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
		o.source = nil
	}
}

// WithSource injects the pseudorandom source. The engine takes ownership;
// the source must not be shared with another engine running concurrently.
func WithSource(src Source) Option {
	return func(o *options) {
		o.source = src
	}
}

// WithInitialCentroids pre-seeds the centroids and skips the random
// initialization step. Every Cluster call restarts from these centroids.
//
// The number of centroids must match k.
func WithInitialCentroids(centroids ...[]float64) Option {
	return func(o *options) {
		o.initial = make([]dataset.Instance, len(centroids))
		for i, c := range centroids {
			o.initial[i] = dataset.NewInstance(c)
		}
	}
}

// WithPartitionHook registers a hook invoked after every partition step.
// Hooks run in registration order.
func WithPartitionHook(hook PartitionHook) Option {
	return func(o *options) {
		if hook != nil {
			o.hooks = append(o.hooks, hook)
		}
	}
}

// WithMaxIterations bounds the number of refinement iterations as an
// external safety net. Zero (the default) means unbounded.
func WithMaxIterations(n int) Option {
	return func(o *options) {
		o.maxIterations = n
	}
}

// WithMigrationPolicy sets the ELBG behavior for degenerate migration passes.
// Ignored by LBG.
func WithMigrationPolicy(p MigrationPolicy) Option {
	return func(o *options) {
		o.policy = p
	}
}

// WithMetricsCollector configures a metrics collector for monitoring runs.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &vqcluster.BasicMetricsCollector{}
//	e, _ := vqcluster.NewELBG(8, vqcluster.WithMetricsCollector(metrics))
//	// ... run e.Cluster ...
//	stats := metrics.GetStats()
//	fmt.Printf("Migrations: %d/%d\n", stats.MigrationsAccepted, stats.MigrationAttempts)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := vqcluster.NewJSONLogger(slog.LevelDebug)
//	e, _ := vqcluster.NewLBG(4, vqcluster.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		stopCriterion:    DefaultStopCriterion,
		measure:          distance.Euclidean{},
		seed:             DefaultSeed,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.source == nil {
		o.source = NewSource(o.seed)
	}
	return o
}
