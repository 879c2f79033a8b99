package vqcluster

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with clustering-specific helpers.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithK adds a k (cluster count) field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{
		Logger: l.Logger.With("k", k),
	}
}

// WithDimension adds a dimension field to the logger.
func (l *Logger) WithDimension(dim int) *Logger {
	return &Logger{
		Logger: l.Logger.With("dimension", dim),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// WithAlgorithm adds an algorithm field to the logger.
func (l *Logger) WithAlgorithm(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("algorithm", name),
	}
}

// LogIteration logs one refinement iteration.
func (l *Logger) LogIteration(iteration int, distortion, improvement float64) {
	l.Debug("iteration completed",
		"iteration", iteration,
		"distortion", distortion,
		"improvement", improvement,
	)
}

// LogMigration logs a migration attempt.
func (l *Logger) LogMigration(emigrant, destination, closest int, oldDistortion, newDistortion float64, accepted bool) {
	l.Debug("migration attempted",
		"emigrant", emigrant,
		"destination", destination,
		"closest", closest,
		"old_distortion", oldDistortion,
		"new_distortion", newDistortion,
		"accepted", accepted,
	)
}

// LogDegenerate logs a migration pass without any over-loaded cluster.
func (l *Logger) LogDegenerate(emigrant int, err error) {
	if err != nil {
		l.Error("migration pass failed",
			"emigrant", emigrant,
			"error", err,
		)
	} else {
		l.Debug("migration pass skipped: no over-loaded cluster",
			"emigrant", emigrant,
		)
	}
}

// LogRun logs the outcome of a clustering run.
func (l *Logger) LogRun(iterations int, distortion float64, err error) {
	if err != nil {
		l.Error("clustering failed",
			"iterations", iterations,
			"error", err,
		)
	} else {
		l.Info("clustering converged",
			"iterations", iterations,
			"distortion", distortion,
		)
	}
}
