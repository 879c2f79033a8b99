package vqcluster

import (
	"errors"
	"fmt"

	"github.com/hupe1980/vqcluster/internal/kmeans"
)

var (
	// ErrInvalidK is returned when the number of clusters is not positive.
	ErrInvalidK = errors.New("number of clusters must be positive")

	// ErrEmptyDataset is returned when clustering an empty dataset.
	ErrEmptyDataset = errors.New("dataset must not be empty")

	// ErrDegenerateMigration is returned under FailOnDegenerate when a
	// migration pass finds an under-loaded cluster but no over-loaded one.
	ErrDegenerateMigration = errors.New("no over-loaded cluster to migrate to")
)

// ErrCentroidCount indicates that the number of pre-seeded centroids does not
// match the number of clusters.
type ErrCentroidCount struct {
	Expected int
	Actual   int
}

func (e *ErrCentroidCount) Error() string {
	return fmt.Sprintf("centroid count mismatch: expected %d, got %d", e.Expected, e.Actual)
}

func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, kmeans.ErrEmptyDataset) {
		return fmt.Errorf("%w: %w", ErrEmptyDataset, err)
	}
	if errors.Is(err, kmeans.ErrNoCentroids) {
		return fmt.Errorf("%w: %w", ErrInvalidK, err)
	}

	return err
}
