package dataset

import (
	"errors"
	"iter"
	"math"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"
	"gonum.org/v1/gonum/floats"
)

// ErrDimensionMismatch is returned when an instance does not match the
// dimensionality of the dataset it is added to.
var ErrDimensionMismatch = errors.New("dataset: dimension mismatch")

// Instance is a fixed-length vector of real-valued features with an optional
// class label. The label is carried along but never used for clustering.
type Instance struct {
	Values []float64
	Label  any
}

// NewInstance creates an unlabeled instance over values. The slice is not copied.
func NewInstance(values []float64) Instance {
	return Instance{Values: values}
}

// Dim returns the number of features.
func (i Instance) Dim() int { return len(i.Values) }

// Clone returns a deep copy of the instance values. The label is shared.
func (i Instance) Clone() Instance {
	return Instance{Values: slices.Clone(i.Values), Label: i.Label}
}

// Dataset is an ordered collection of instances of equal dimensionality.
//
// A Dataset is not safe for concurrent mutation.
type Dataset struct {
	instances []Instance
}

// New creates a dataset holding the given instances.
func New(instances ...Instance) *Dataset {
	return &Dataset{instances: instances}
}

// FromVectors creates an unlabeled dataset from raw feature vectors.
func FromVectors(vectors [][]float64) *Dataset {
	d := &Dataset{instances: make([]Instance, len(vectors))}
	for i, v := range vectors {
		d.instances[i] = NewInstance(v)
	}
	return d
}

// WithCapacity creates an empty dataset with room for n instances.
func WithCapacity(n int) *Dataset {
	return &Dataset{instances: make([]Instance, 0, n)}
}

// Len returns the number of instances.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.instances)
}

// At returns the i-th instance.
func (d *Dataset) At(i int) Instance { return d.instances[i] }

// Add appends an instance.
func (d *Dataset) Add(inst Instance) { d.instances = append(d.instances, inst) }

// Append adds inst after checking it matches the dataset dimensionality.
func (d *Dataset) Append(inst Instance) error {
	if len(d.instances) > 0 && inst.Dim() != d.Dim() {
		return ErrDimensionMismatch
	}
	d.Add(inst)
	return nil
}

// Dim returns the dimensionality of the first instance, or 0 for an empty dataset.
func (d *Dataset) Dim() int {
	if d.Len() == 0 {
		return 0
	}
	return d.instances[0].Dim()
}

// Instances returns the backing slice. Callers must not modify it.
func (d *Dataset) Instances() []Instance {
	if d == nil {
		return nil
	}
	return d.instances
}

// All iterates over the instances in order.
func (d *Dataset) All() iter.Seq2[int, Instance] {
	return func(yield func(int, Instance) bool) {
		for i, inst := range d.Instances() {
			if !yield(i, inst) {
				return
			}
		}
	}
}

// Vectors returns the feature vectors of all instances (shared, not copied).
func (d *Dataset) Vectors() [][]float64 {
	out := make([][]float64, d.Len())
	for i, inst := range d.Instances() {
		out[i] = inst.Values
	}
	return out
}

// MinAttributes returns the per-feature minimum. Nil for an empty dataset.
func (d *Dataset) MinAttributes() []float64 {
	lo, _ := d.Bounds()
	return lo
}

// MaxAttributes returns the per-feature maximum. Nil for an empty dataset.
func (d *Dataset) MaxAttributes() []float64 {
	_, hi := d.Bounds()
	return hi
}

// Bounds returns the per-feature minimum and maximum of the bounding box
// containing every instance.
func (d *Dataset) Bounds() (lo, hi []float64) {
	if d.Len() == 0 {
		return nil, nil
	}
	dim := d.Dim()
	lo = make([]float64, dim)
	hi = make([]float64, dim)
	for j := range dim {
		lo[j] = math.Inf(1)
		hi[j] = math.Inf(-1)
	}
	for _, inst := range d.instances {
		for j, v := range inst.Values {
			lo[j] = math.Min(lo[j], v)
			hi[j] = math.Max(hi[j], v)
		}
	}
	return lo, hi
}

// Average returns the componentwise mean of all instances. Nil for an empty dataset.
func (d *Dataset) Average() []float64 {
	if d.Len() == 0 {
		return nil
	}
	sum := make([]float64, d.Dim())
	for _, inst := range d.instances {
		floats.Add(sum, inst.Values)
	}
	floats.Scale(1/float64(d.Len()), sum)
	return sum
}

// Project returns a new dataset with only the features whose index is set in
// mask, in ascending index order. Indexes beyond the dimensionality are
// ignored. Labels are preserved.
func (d *Dataset) Project(mask *roaring.Bitmap) *Dataset {
	dim := uint32(d.Dim())
	selected := make([]int, 0, mask.GetCardinality())
	it := mask.Iterator()
	for it.HasNext() {
		idx := it.Next()
		if idx >= dim {
			break
		}
		selected = append(selected, int(idx))
	}

	out := WithCapacity(d.Len())
	for _, inst := range d.Instances() {
		values := make([]float64, len(selected))
		for j, idx := range selected {
			values[j] = inst.Values[idx]
		}
		out.Add(Instance{Values: values, Label: inst.Label})
	}
	return out
}

// Normalize rescales every feature in place to [0, 1] by subtracting its
// minimum and dividing by the shifted maximum. Constant features become 0.
func (d *Dataset) Normalize() {
	lo, hi := d.Bounds()
	for i, inst := range d.Instances() {
		values := make([]float64, len(inst.Values))
		for j, v := range inst.Values {
			span := hi[j] - lo[j]
			if span != 0 {
				values[j] = (v - lo[j]) / span
			}
		}
		d.instances[i] = Instance{Values: values, Label: inst.Label}
	}
}

// Merge returns a new dataset holding the instances of a followed by those of b.
func Merge(a, b *Dataset) *Dataset {
	out := WithCapacity(a.Len() + b.Len())
	out.instances = append(out.instances, a.Instances()...)
	out.instances = append(out.instances, b.Instances()...)
	return out
}
