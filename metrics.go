package vqcluster

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting clustering metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// A collector may be shared by engines running in different goroutines, so
// implementations must be safe for concurrent use.
type MetricsCollector interface {
	// RecordRun is called after each Cluster call.
	// iterations is the number of refinement iterations, err is nil if successful.
	RecordRun(k, iterations int, duration time.Duration, err error)

	// RecordIteration is called after each refinement iteration.
	RecordIteration(distortion, improvement float64)

	// RecordMigration is called after each migration attempt.
	RecordMigration(accepted bool)

	// RecordDegenerate is called when a migration pass finds no over-loaded cluster.
	RecordDegenerate()
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordRun(int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordIteration(float64, float64)         {}
func (NoopMetricsCollector) RecordMigration(bool)                     {}
func (NoopMetricsCollector) RecordDegenerate()                        {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	RunCount           atomic.Int64
	RunErrors          atomic.Int64
	RunTotalNanos      atomic.Int64
	IterationCount     atomic.Int64
	MigrationAttempts  atomic.Int64
	MigrationsAccepted atomic.Int64
	DegenerateCount    atomic.Int64
}

// RecordRun implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRun(k, iterations int, duration time.Duration, err error) {
	b.RunCount.Add(1)
	b.RunTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.RunErrors.Add(1)
	}
}

// RecordIteration implements MetricsCollector.
func (b *BasicMetricsCollector) RecordIteration(distortion, improvement float64) {
	b.IterationCount.Add(1)
}

// RecordMigration implements MetricsCollector.
func (b *BasicMetricsCollector) RecordMigration(accepted bool) {
	b.MigrationAttempts.Add(1)
	if accepted {
		b.MigrationsAccepted.Add(1)
	}
}

// RecordDegenerate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDegenerate() {
	b.DegenerateCount.Add(1)
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		RunCount:           b.RunCount.Load(),
		RunErrors:          b.RunErrors.Load(),
		RunAvgNanos:        b.getAvgRunNanos(),
		IterationCount:     b.IterationCount.Load(),
		MigrationAttempts:  b.MigrationAttempts.Load(),
		MigrationsAccepted: b.MigrationsAccepted.Load(),
		DegenerateCount:    b.DegenerateCount.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgRunNanos() int64 {
	count := b.RunCount.Load()
	if count == 0 {
		return 0
	}
	return b.RunTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	RunCount           int64
	RunErrors          int64
	RunAvgNanos        int64
	IterationCount     int64
	MigrationAttempts  int64
	MigrationsAccepted int64
	DegenerateCount    int64
}
