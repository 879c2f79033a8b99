package distance

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Measure computes a non-negative distance between two vectors and orders
// distances according to its own notion of "closer".
type Measure interface {
	// Measure returns the distance between a and b.
	// Assumes vectors are the same length (caller's responsibility).
	Measure(a, b []float64) float64

	// Compare reports whether d1 is strictly better than d2.
	Compare(d1, d2 float64) bool
}

// Euclidean is the L2 distance. If Mask is non-nil, only features i with
// i < len(Mask) and Mask[i] set contribute.
type Euclidean struct {
	Mask []bool
}

// Measure implements Measure.
func (e Euclidean) Measure(a, b []float64) float64 {
	if e.Mask == nil {
		return floats.Distance(a, b, 2)
	}
	var sum float64
	for i := range min(len(a), len(e.Mask)) {
		if e.Mask[i] {
			d := a[i] - b[i]
			sum += d * d
		}
	}
	return math.Sqrt(sum)
}

// Compare implements Measure.
func (Euclidean) Compare(d1, d2 float64) bool { return d1 < d2 }

// Manhattan is the L1 distance. If Mask is non-nil, only features i with
// i < len(Mask) and Mask[i] set contribute.
type Manhattan struct {
	Mask []bool
}

// Measure implements Measure.
func (m Manhattan) Measure(a, b []float64) float64 {
	if m.Mask == nil {
		return floats.Distance(a, b, 1)
	}
	var sum float64
	for i := range min(len(a), len(m.Mask)) {
		if m.Mask[i] {
			sum += math.Abs(a[i] - b[i])
		}
	}
	return sum
}

// Compare implements Measure.
func (Manhattan) Compare(d1, d2 float64) bool { return d1 < d2 }

// SquaredL2 is the squared Euclidean distance.
type SquaredL2 struct{}

// Measure implements Measure.
func (SquaredL2) Measure(a, b []float64) float64 {
	d := floats.Distance(a, b, 2)
	return d * d
}

// Compare implements Measure.
func (SquaredL2) Compare(d1, d2 float64) bool { return d1 < d2 }

// Metric names a built-in distance measure.
type Metric int

const (
	MetricEuclidean Metric = iota
	MetricManhattan
	MetricSquaredL2
)

func (m Metric) String() string {
	switch m {
	case MetricEuclidean:
		return "Euclidean"
	case MetricManhattan:
		return "Manhattan"
	case MetricSquaredL2:
		return "SquaredL2"
	default:
		return fmt.Sprintf("Unknown(%d)", m)
	}
}

// ParseMetric returns the metric with the given (case-sensitive) name.
func ParseMetric(name string) (Metric, error) {
	for _, m := range []Metric{MetricEuclidean, MetricManhattan, MetricSquaredL2} {
		if m.String() == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown metric: %q", name)
}

// Provider returns the measure for the given metric.
func Provider(m Metric) (Measure, error) {
	switch m {
	case MetricEuclidean:
		return Euclidean{}, nil
	case MetricManhattan:
		return Manhattan{}, nil
	case MetricSquaredL2:
		return SquaredL2{}, nil
	default:
		return nil, fmt.Errorf("unsupported metric: %v", m)
	}
}
