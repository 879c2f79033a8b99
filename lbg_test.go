package vqcluster

import (
	"errors"
	"testing"

	"github.com/hupe1980/vqcluster/dataset"
	"github.com/hupe1980/vqcluster/distance"
	"github.com/hupe1980/vqcluster/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fourPoints() *dataset.Dataset {
	return dataset.FromVectors([][]float64{{0, 0}, {0, 1}, {10, 0}, {10, 1}})
}

// sortedByX returns the indexes of the two clusters ordered by centroid x.
func sortedByX(res *Result) (int, int) {
	if res.Centroids[0][0] <= res.Centroids[1][0] {
		return 0, 1
	}
	return 1, 0
}

func TestLBG_FourPointScenario(t *testing.T) {
	sequences := [][]float64{
		{0.1, 0.3, 0.9, 0.6},
		{0.9, 0.5, 0.1, 0.5},
		{0.45, 0.0, 0.7, 0.99},
	}
	for _, seq := range sequences {
		lbg, err := NewLBG(2, WithStopCriterion(1e-4), WithSource(&seqSource{vals: seq}))
		require.NoError(t, err)

		res, err := lbg.Cluster(fourPoints())
		require.NoError(t, err)

		left, right := sortedByX(res)
		assert.InDeltaSlice(t, []float64{0, 0.5}, res.Centroids[left], 1e-9)
		assert.InDeltaSlice(t, []float64{10, 0.5}, res.Centroids[right], 1e-9)
		assert.ElementsMatch(t, [][]float64{{0, 0}, {0, 1}}, res.Clusters[left].Vectors())
		assert.ElementsMatch(t, [][]float64{{10, 0}, {10, 1}}, res.Clusters[right].Vectors())
		assert.InDeltaSlice(t, []float64{1, 1}, res.Distortions, 1e-9)
		assert.InDelta(t, 1, res.MeanDistortion, 1e-9)
		assert.Equal(t, StateConverged, lbg.State())
	}
}

func TestLBG_Errors(t *testing.T) {
	_, err := NewLBG(0)
	assert.ErrorIs(t, err, ErrInvalidK)

	_, err = NewLBG(-3)
	assert.ErrorIs(t, err, ErrInvalidK)

	_, err = NewLBG(2, WithInitialCentroids([]float64{0}))
	var cc *ErrCentroidCount
	require.True(t, errors.As(err, &cc))
	assert.Equal(t, 2, cc.Expected)
	assert.Equal(t, 1, cc.Actual)

	lbg, err := NewLBG(2)
	require.NoError(t, err)

	_, err = lbg.Cluster(dataset.New())
	assert.ErrorIs(t, err, ErrEmptyDataset)

	_, err = lbg.Cluster(nil)
	assert.ErrorIs(t, err, ErrEmptyDataset)
}

func TestLBG_Properties(t *testing.T) {
	rng := testutil.NewRNG(4711)
	data := testutil.Dataset(rng.ClusteredVectors(300, 3, 6, 0.5))

	for _, k := range []int{1, 2, 5, 9} {
		for _, seed := range []uint64{1, 7, 99} {
			lbg, err := NewLBG(k, WithSeed(seed))
			require.NoError(t, err)

			res, err := lbg.Cluster(data)
			require.NoError(t, err)

			require.Len(t, res.Clusters, k)
			require.Len(t, res.Centroids, k)
			require.Len(t, res.Distortions, k)
			assert.True(t, testutil.IsCover(data, res.Clusters), "k=%d seed=%d", k, seed)
			for _, d := range res.Distortions {
				assert.GreaterOrEqual(t, d, 0.0)
			}
			assert.Greater(t, res.Iterations, 0)
			assert.InDelta(t, res.TotalDistortion()/float64(k), res.MeanDistortion, 1e-9)
		}
	}
}

func TestLBG_Deterministic(t *testing.T) {
	rng := testutil.NewRNG(1)
	data := testutil.Dataset(rng.UniformVectors(200, 4))

	run := func() *Result {
		lbg, err := NewLBG(6, WithSeed(1234))
		require.NoError(t, err)
		res, err := lbg.Cluster(data)
		require.NoError(t, err)
		return res
	}

	a, b := run(), run()
	assert.Equal(t, a.Centroids, b.Centroids)
	assert.Equal(t, a.Distortions, b.Distortions)
	assert.Equal(t, a.Iterations, b.Iterations)
	for i := range a.Clusters {
		assert.Equal(t, a.Clusters[i].Vectors(), b.Clusters[i].Vectors())
	}
}

func TestLBG_SourceInjection(t *testing.T) {
	data := testutil.Dataset(testutil.NewRNG(3).UniformVectors(50, 2))

	a, err := NewLBG(3, WithSource(NewSource(9)))
	require.NoError(t, err)
	b, err := NewLBG(3, WithSeed(9))
	require.NoError(t, err)

	ra, err := a.Cluster(data)
	require.NoError(t, err)
	rb, err := b.Cluster(data)
	require.NoError(t, err)

	assert.Equal(t, ra.Centroids, rb.Centroids)
}

func TestLBG_SeedsInsideBoundingBox(t *testing.T) {
	data := dataset.FromVectors([][]float64{{-2, 5}, {3, 7}, {1, 6}})

	lbg, err := NewLBG(8, WithSeed(5))
	require.NoError(t, err)

	lbg.init(data)

	require.Len(t, lbg.centroids, 8)
	for _, c := range lbg.centroids {
		assert.GreaterOrEqual(t, c.Values[0], -2.0)
		assert.LessOrEqual(t, c.Values[0], 3.0)
		assert.GreaterOrEqual(t, c.Values[1], 5.0)
		assert.LessOrEqual(t, c.Values[1], 7.0)
	}
	assert.Equal(t, StateInitialized, lbg.State())
}

func TestLBG_InitialCentroidsSkipInit(t *testing.T) {
	initial := [][]float64{{0, 0.25}, {10, 0.75}}
	lbg, err := NewLBG(2, WithInitialCentroids(initial...), WithSource(failingSource{t}))
	require.NoError(t, err)

	res, err := lbg.Cluster(fourPoints())
	require.NoError(t, err)

	assert.InDeltaSlice(t, []float64{0, 0.5}, res.Centroids[0], 1e-12)
	assert.InDeltaSlice(t, []float64{10, 0.5}, res.Centroids[1], 1e-12)
	assert.Equal(t, []float64{0, 0.25}, initial[0], "initial centroids are not mutated")

	// A second run restarts from the same seeds.
	again, err := lbg.Cluster(fourPoints())
	require.NoError(t, err)
	assert.Equal(t, res.Centroids, again.Centroids)
}

func TestLBG_EmptyClusterPersists(t *testing.T) {
	// The far centroid never attracts a point and keeps its position.
	lbg, err := NewLBG(3, WithInitialCentroids([]float64{0, 0.5}, []float64{1000, 1000}, []float64{10, 0.5}))
	require.NoError(t, err)

	res, err := lbg.Cluster(fourPoints())
	require.NoError(t, err)

	assert.Equal(t, 0, res.Clusters[1].Len())
	assert.Equal(t, []float64{1000, 1000}, res.Centroids[1])
	assert.Equal(t, 0.0, res.Distortions[1])
	assert.Equal(t, 2, res.NonEmpty())
	assert.True(t, testutil.IsCover(fourPoints(), res.Clusters))
}

func TestLBG_IdenticalPointsTerminate(t *testing.T) {
	data := dataset.FromVectors([][]float64{{3, 3}, {3, 3}, {3, 3}})

	lbg, err := NewLBG(2)
	require.NoError(t, err)

	res, err := lbg.Cluster(data)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Iterations)
	assert.Equal(t, 3, res.Clusters[0].Len(), "ties go to the first centroid")
	assert.Equal(t, []float64{0, 0}, res.Distortions)
}

func TestLBG_MaxIterations(t *testing.T) {
	rng := testutil.NewRNG(8)
	data := testutil.Dataset(rng.UniformVectors(500, 2))

	lbg, err := NewLBG(20, WithStopCriterion(-1), WithMaxIterations(3))
	require.NoError(t, err)

	res, err := lbg.Cluster(data)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Iterations)
}

func TestLBG_PartitionHook(t *testing.T) {
	var calls int
	var lastMean float64
	hook := func(distortions []float64, mean float64) {
		calls++
		lastMean = mean
		assert.Len(t, distortions, 2)
	}

	lbg, err := NewLBG(2, WithPartitionHook(hook), WithPartitionHook(nil))
	require.NoError(t, err)

	res, err := lbg.Cluster(fourPoints())
	require.NoError(t, err)

	// One partition before the loop plus one per iteration.
	assert.Equal(t, res.Iterations+1, calls)
	assert.Equal(t, res.MeanDistortion, lastMean)
}

func TestLBG_Manhattan(t *testing.T) {
	lbg, err := NewLBG(2,
		WithDistance(distance.Manhattan{}),
		WithDistance(nil),
		WithSource(&seqSource{vals: []float64{0.1, 0.3, 0.9, 0.6}}),
	)
	require.NoError(t, err)

	res, err := lbg.Cluster(fourPoints())
	require.NoError(t, err)

	assert.InDeltaSlice(t, []float64{1, 1}, res.Distortions, 1e-9)
}

func TestLBG_Metrics(t *testing.T) {
	mc := &BasicMetricsCollector{}
	lbg, err := NewLBG(2, WithMetricsCollector(mc))
	require.NoError(t, err)

	res, err := lbg.Cluster(fourPoints())
	require.NoError(t, err)

	_, err = lbg.Cluster(dataset.New())
	require.Error(t, err)

	stats := mc.GetStats()
	assert.Equal(t, int64(2), stats.RunCount)
	assert.Equal(t, int64(1), stats.RunErrors)
	assert.Equal(t, int64(res.Iterations), stats.IterationCount)
	assert.Zero(t, stats.MigrationAttempts)
}

// failingSource fails the test if the engine draws a random number.
type failingSource struct{ t *testing.T }

func (s failingSource) Float64() float64 {
	s.t.Fatal("unexpected random draw")
	return 0
}

func (s failingSource) IntN(int) int {
	s.t.Fatal("unexpected random draw")
	return 0
}

// seqSource replays a fixed sequence of draws, cycling when exhausted.
type seqSource struct {
	vals []float64
	i    int
}

func (s *seqSource) Float64() float64 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}

func (s *seqSource) IntN(n int) int {
	return int(s.Float64() * float64(n))
}
