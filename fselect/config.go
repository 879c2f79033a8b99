package fselect

import (
	"errors"
	"fmt"
	"slices"

	"github.com/hupe1980/vqcluster"
	"github.com/hupe1980/vqcluster/cvi"
	"github.com/hupe1980/vqcluster/distance"
)

// Clusterer kinds accepted by Config.Clusterer.
const (
	ClustererLBG  = "lbg"
	ClustererELBG = "elbg"
)

// MinClusters is the smallest number of clusters a feature subset is
// evaluated with.
const MinClusters = 2

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("invalid evaluator config")

// Config configures an Evaluator.
type Config struct {
	// Clusterer is ClustererLBG or ClustererELBG.
	Clusterer string `json:"clusterer"`

	// NumClusters is the number of clusters, at least MinClusters.
	NumClusters int `json:"num_clusters"`

	// StopCriterion is passed to the engine. Zero or negative values select
	// vqcluster.DefaultStopCriterion.
	StopCriterion float64 `json:"stop_criterion"`

	// MaxIterations bounds each clustering run. Zero means unbounded.
	MaxIterations int `json:"max_iterations,omitempty"`

	// MigrationPolicy is passed to ELBG engines.
	MigrationPolicy vqcluster.MigrationPolicy `json:"migration_policy"`

	// Separation and Compactness name the validity indices (see cvi.Names).
	Separation  string `json:"separation"`
	Compactness string `json:"compactness"`

	// SeparationNorm and CompactnessNorm name the normalization factor each
	// score is divided by. Empty means no normalization.
	SeparationNorm  string `json:"separation_norm,omitempty"`
	CompactnessNorm string `json:"compactness_norm,omitempty"`

	// Metric names the distance measure (see distance.ParseMetric).
	Metric string `json:"metric"`

	// Normalize rescales the data to the unit hypercube before evaluation.
	Normalize bool `json:"normalize"`

	// Seed is the base seed. EvaluateAll seeds mask i with Seed+i.
	Seed uint64 `json:"seed"`

	// Concurrency bounds EvaluateAll. Zero or negative uses GOMAXPROCS.
	Concurrency int `json:"concurrency,omitempty"`
}

// DefaultConfig returns a Config clustering with ELBG into two clusters,
// scored by normalized MinFarthestCentroid separation and OverallDeviation
// compactness.
func DefaultConfig() Config {
	return Config{
		Clusterer:       ClustererELBG,
		NumClusters:     MinClusters,
		StopCriterion:   vqcluster.DefaultStopCriterion,
		Separation:      cvi.NameMinFarthestCentroid,
		Compactness:     cvi.NameOverallDeviation,
		SeparationNorm:  cvi.NormMaxDistance,
		CompactnessNorm: cvi.NormRefClusterSize,
		Metric:          distance.MetricEuclidean.String(),
		Normalize:       true,
		Seed:            vqcluster.DefaultSeed,
	}
}

// Validate checks the config and reports every problem found.
func (c Config) Validate() error {
	var errs []error

	if c.Clusterer != ClustererLBG && c.Clusterer != ClustererELBG {
		errs = append(errs, fmt.Errorf("unknown clusterer %q", c.Clusterer))
	}
	if c.NumClusters < MinClusters {
		errs = append(errs, fmt.Errorf("number of clusters must be at least %d, got %d", MinClusters, c.NumClusters))
	}
	if c.MaxIterations < 0 {
		errs = append(errs, fmt.Errorf("max iterations must not be negative, got %d", c.MaxIterations))
	}
	if !slices.Contains(cvi.Names(), c.Separation) {
		errs = append(errs, fmt.Errorf("unknown separation index %q", c.Separation))
	}
	if !slices.Contains(cvi.Names(), c.Compactness) {
		errs = append(errs, fmt.Errorf("unknown compactness index %q", c.Compactness))
	}
	if !cvi.ValidNormalization(c.SeparationNorm) {
		errs = append(errs, fmt.Errorf("unknown separation normalization %q", c.SeparationNorm))
	}
	if !cvi.ValidNormalization(c.CompactnessNorm) {
		errs = append(errs, fmt.Errorf("unknown compactness normalization %q", c.CompactnessNorm))
	}
	if _, err := distance.ParseMetric(c.Metric); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}
