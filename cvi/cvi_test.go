package cvi

import (
	"math"
	"testing"

	"github.com/hupe1980/vqcluster/dataset"
	"github.com/hupe1980/vqcluster/distance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clusters(groups ...[][]float64) []*dataset.Dataset {
	out := make([]*dataset.Dataset, len(groups))
	for i, g := range groups {
		out[i] = dataset.FromVectors(g)
	}
	return out
}

// twoBars has two vertical bars ten apart, plus an empty cluster.
func twoBars() []*dataset.Dataset {
	return clusters(
		[][]float64{{0, 0}, {0, 2}},
		nil,
		[][]float64{{10, 0}, {10, 2}},
	)
}

func TestScores(t *testing.T) {
	tests := []struct {
		name     string
		index    Index
		clusters []*dataset.Dataset
		want     float64
	}{
		{"DaviesBouldin", NewDaviesBouldin(nil), twoBars(), 0.2},
		{"DaviesBouldin/Three", NewDaviesBouldin(nil), clusters(
			[][]float64{{0}, {2}},
			[][]float64{{10}, {12}},
			[][]float64{{30}, {36}},
		), (0.2 + 0.2 + 4.0/22) / 3},
		{"Dunn", NewDunn(nil), twoBars(), 5},
		{"Dunn/LastClusterDiameter", NewDunn(nil), clusters(
			[][]float64{{0}, {1}},
			[][]float64{{10}, {16}},
		), 1.5},
		{"MinFarthestCentroid", NewMinFarthestCentroid(nil), twoBars(), 10},
		{"MinFarthestCentroid/Three", NewMinFarthestCentroid(nil), clusters(
			[][]float64{{0}},
			[][]float64{{1}},
			[][]float64{{10}},
		), 9},
		{"OverallDeviation", NewOverallDeviation(nil), twoBars(), 4},
		{"OverallDeviation/Manhattan", NewOverallDeviation(distance.Manhattan{}), clusters(
			[][]float64{{0, 0}, {2, 2}},
		), 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.index.Score(tt.clusters), 1e-12)
		})
	}
}

func TestScores_FewClusters(t *testing.T) {
	single := clusters([][]float64{{0}, {4}}, nil)
	none := clusters(nil, nil)

	assert.Equal(t, 0.0, NewDunn(nil).Score(single))
	assert.Equal(t, 0.0, NewMinFarthestCentroid(nil).Score(single))
	assert.Equal(t, 0.0, NewDaviesBouldin(nil).Score(single))
	assert.Equal(t, 0.0, NewDaviesBouldin(nil).Score(none))
	assert.Equal(t, 0.0, NewOverallDeviation(nil).Score(none))
	assert.Equal(t, 4.0, NewOverallDeviation(nil).Score(single))
}

func TestDunn_ZeroDiameter(t *testing.T) {
	score := NewDunn(nil).Score(clusters([][]float64{{0}}, [][]float64{{3}}))
	assert.Equal(t, math.MaxFloat64, score)
}

func TestDirections(t *testing.T) {
	tests := []struct {
		name     string
		maximize bool
	}{
		{NameDaviesBouldin, false},
		{NameDunn, true},
		{NameMinFarthestCentroid, true},
		{NameOverallDeviation, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, err := ByName(tt.name, nil)
			require.NoError(t, err)

			assert.Equal(t, tt.name, idx.Name())
			assert.Equal(t, tt.maximize, idx.Maximize())
			assert.Equal(t, tt.maximize, idx.Better(1, 2))
			assert.Equal(t, !tt.maximize, idx.Better(2, 1))
			assert.False(t, idx.Better(1, 1))

			worst := Worst(idx)
			assert.True(t, idx.Better(worst, 0))
		})
	}
}

func TestByName_Unknown(t *testing.T) {
	_, err := ByName("silhouette", nil)
	assert.ErrorIs(t, err, ErrUnknownIndex)
}

func TestNames(t *testing.T) {
	for _, name := range Names() {
		_, err := ByName(name, distance.Euclidean{})
		assert.NoError(t, err, name)
	}
}

func TestNormalizer(t *testing.T) {
	n := NewNormalizer(2, twoBars())

	assert.InDelta(t, 1/math.Sqrt2, n.RefClusterSize(), 1e-12)
	assert.InDelta(t, math.Sqrt2, n.MaxDistance(), 1e-12)

	f, err := n.Factor(NormRefClusterSize)
	require.NoError(t, err)
	assert.Equal(t, n.RefClusterSize(), f)

	f, err = n.Factor(NormMaxDistance)
	require.NoError(t, err)
	assert.Equal(t, n.MaxDistance(), f)

	_, err = n.Factor("bogus")
	assert.ErrorIs(t, err, ErrUnknownNormalization)
}

func TestNormalizer_SingleFeature(t *testing.T) {
	n := NewNormalizer(1, clusters([][]float64{{0}}, [][]float64{{1}}, [][]float64{{2}}, [][]float64{{3}}))
	assert.InDelta(t, 0.25, n.RefClusterSize(), 1e-12)
	assert.Equal(t, 1.0, n.MaxDistance())
}

func TestValidNormalization(t *testing.T) {
	assert.True(t, ValidNormalization(""))
	assert.True(t, ValidNormalization(NormMaxDistance))
	assert.True(t, ValidNormalization(NormRefClusterSize))
	assert.False(t, ValidNormalization("z-score"))
}
