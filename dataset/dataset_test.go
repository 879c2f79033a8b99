package dataset

import (
	"testing"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoundsAndAverage(t *testing.T) {
	d := FromVectors([][]float64{{0, 0}, {0, 1}, {10, 0}, {10, 1}})

	lo, hi := d.Bounds()
	assert.Equal(t, []float64{0, 0}, lo)
	assert.Equal(t, []float64{10, 1}, hi)
	assert.Equal(t, lo, d.MinAttributes())
	assert.Equal(t, hi, d.MaxAttributes())

	avg := d.Average()
	assert.InDeltaSlice(t, []float64{5, 0.5}, avg, 1e-12)
}

func TestEmptyDataset(t *testing.T) {
	d := New()

	assert.Equal(t, 0, d.Len())
	assert.Equal(t, 0, d.Dim())
	assert.Nil(t, d.Average())

	lo, hi := d.Bounds()
	assert.Nil(t, lo)
	assert.Nil(t, hi)

	var nilSet *Dataset
	assert.Equal(t, 0, nilSet.Len())
}

func TestAppend_DimensionMismatch(t *testing.T) {
	d := New()
	require.NoError(t, d.Append(NewInstance([]float64{1, 2})))

	err := d.Append(NewInstance([]float64{1}))
	assert.ErrorIs(t, err, ErrDimensionMismatch)
	assert.Equal(t, 1, d.Len())
}

func TestAll(t *testing.T) {
	d := FromVectors([][]float64{{1}, {2}, {3}})

	var sum float64
	for i, inst := range d.All() {
		sum += inst.Values[0]
		if i == 1 {
			break
		}
	}
	assert.Equal(t, 3.0, sum)
}

func TestProject(t *testing.T) {
	d := New(
		Instance{Values: []float64{1, 2, 3, 4}, Label: "a"},
		Instance{Values: []float64{5, 6, 7, 8}, Label: "b"},
	)

	p := d.Project(roaring.BitmapOf(3, 1, 42))

	require.Equal(t, 2, p.Len())
	assert.Equal(t, 2, p.Dim())
	assert.Equal(t, []float64{2, 4}, p.At(0).Values)
	assert.Equal(t, []float64{6, 8}, p.At(1).Values)
	assert.Equal(t, "b", p.At(1).Label)

	// The source is untouched.
	assert.Equal(t, []float64{1, 2, 3, 4}, d.At(0).Values)
}

func TestProject_EmptyMask(t *testing.T) {
	d := FromVectors([][]float64{{1, 2}})

	p := d.Project(roaring.New())

	require.Equal(t, 1, p.Len())
	assert.Equal(t, 0, p.Dim())
}

func TestNormalize(t *testing.T) {
	d := FromVectors([][]float64{{2, 7}, {4, 7}, {6, 7}})

	d.Normalize()

	assert.Equal(t, []float64{0, 0}, d.At(0).Values)
	assert.Equal(t, []float64{0.5, 0}, d.At(1).Values)
	assert.Equal(t, []float64{1, 0}, d.At(2).Values)
}

func TestMerge(t *testing.T) {
	a := FromVectors([][]float64{{1}, {2}})
	b := FromVectors([][]float64{{3}})

	m := Merge(a, b)

	require.Equal(t, 3, m.Len())
	assert.Equal(t, [][]float64{{1}, {2}, {3}}, m.Vectors())

	m.Add(NewInstance([]float64{4}))
	assert.Equal(t, 2, a.Len())
}

func TestClone(t *testing.T) {
	inst := Instance{Values: []float64{1, 2}, Label: 7}
	c := inst.Clone()
	c.Values[0] = 9

	assert.Equal(t, 1.0, inst.Values[0])
	assert.Equal(t, 7, c.Label)
}
