package testutil

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/hupe1980/vqcluster/dataset"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// UniformVectors generates random vectors with values in range [0, 1).
// Uses a single backing array for efficiency.
func (r *RNG) UniformVectors(num int, dimensions int) [][]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]float64, num*dimensions)
	vectors := make([][]float64, num)

	for i := range num {
		vec := data[i*dimensions : (i+1)*dimensions]
		for j := range vec {
			vec[j] = r.rand.Float64()
		}
		vectors[i] = vec
	}

	return vectors
}

// UniformRangeVectors generates random vectors with values in range [minVal, maxVal).
func (r *RNG) UniformRangeVectors(num int, dimensions int, minVal, maxVal float64) [][]float64 {
	vectors := r.UniformVectors(num, dimensions)
	span := maxVal - minVal
	for _, vec := range vectors {
		for j := range vec {
			vec[j] = minVal + vec[j]*span
		}
	}
	return vectors
}

// Blobs generates perCenter points around each center with Gaussian noise of
// standard deviation spread. Points are emitted center by center.
func (r *RNG) Blobs(centers [][]float64, perCenter int, spread float64) [][]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	vectors := make([][]float64, 0, len(centers)*perCenter)
	for _, c := range centers {
		for range perCenter {
			vec := make([]float64, len(c))
			for j := range vec {
				vec[j] = c[j] + r.rand.NormFloat64()*spread
			}
			vectors = append(vectors, vec)
		}
	}
	return vectors
}

// ClusteredVectors generates num vectors around clusters random centers drawn
// uniformly from [0, 10) per dimension.
func (r *RNG) ClusteredVectors(num, dim, clusters int, spread float64) [][]float64 {
	centers := r.UniformRangeVectors(clusters, dim, 0, 10)

	r.mu.Lock()
	defer r.mu.Unlock()

	vectors := make([][]float64, num)
	for i := range num {
		c := centers[i%clusters]
		vec := make([]float64, dim)
		for j := range vec {
			vec[j] = c[j] + r.rand.NormFloat64()*spread
		}
		vectors[i] = vec
	}
	return vectors
}

// Dataset wraps vectors into an unlabeled dataset.
func Dataset(vectors [][]float64) *dataset.Dataset {
	return dataset.FromVectors(vectors)
}

// IsCover reports whether clusters form a disjoint cover of data: every
// instance of data appears in exactly one cluster, counting duplicates.
func IsCover(data *dataset.Dataset, clusters []*dataset.Dataset) bool {
	counts := make(map[string]int, data.Len())
	for _, inst := range data.All() {
		counts[key(inst.Values)]++
	}

	total := 0
	for _, c := range clusters {
		for _, inst := range c.All() {
			k := key(inst.Values)
			counts[k]--
			if counts[k] < 0 {
				return false
			}
			total++
		}
	}
	return total == data.Len()
}

func key(values []float64) string {
	return fmt.Sprint(values)
}
