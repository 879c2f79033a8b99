package quantization

import (
	"errors"
	"fmt"
	"slices"

	"github.com/hupe1980/vqcluster"
	"github.com/hupe1980/vqcluster/codec"
	"github.com/hupe1980/vqcluster/dataset"
	"github.com/hupe1980/vqcluster/distance"
	"github.com/hupe1980/vqcluster/internal/kmeans"
)

// MaxCodebookSize is the largest codebook that fits one-byte codes.
const MaxCodebookSize = 256

var (
	// ErrInvalidSize is returned for a codebook size outside [1, MaxCodebookSize].
	ErrInvalidSize = errors.New("codebook size must be in [1, 256]")

	// ErrNoVectors is returned when training without vectors.
	ErrNoVectors = errors.New("no vectors provided for training")

	// ErrNotTrained is returned when exporting an untrained codebook.
	ErrNotTrained = errors.New("codebook not trained")
)

// Codebook is a vector quantizer whose code vectors are learned with ELBG.
// Each vector is encoded as the one-byte index of its nearest code vector.
//
// A trained Codebook is safe for concurrent Encode and Decode calls. Train
// must not run concurrently with anything else.
type Codebook struct {
	size      int
	dimension int
	dm        distance.Measure
	opts      []vqcluster.Option
	codes     []dataset.Instance
	trained   bool
}

// NewCodebook creates a codebook with size code vectors under dm (nil means
// distance.Euclidean). opts are passed to the ELBG engine used by Train.
func NewCodebook(size int, dm distance.Measure, opts ...vqcluster.Option) (*Codebook, error) {
	if size < 1 || size > MaxCodebookSize {
		return nil, ErrInvalidSize
	}
	if dm == nil {
		dm = distance.Euclidean{}
	}

	return &Codebook{
		size: size,
		dm:   dm,
		opts: append(slices.Clone(opts), vqcluster.WithDistance(dm)),
	}, nil
}

// Train learns the code vectors from vectors, which must all have the same
// dimension. Code vectors that attract no training vector stay where ELBG
// left them.
func (cb *Codebook) Train(vectors [][]float64) error {
	if len(vectors) == 0 {
		return ErrNoVectors
	}

	data := dataset.WithCapacity(len(vectors))
	for i, v := range vectors {
		if err := data.Append(dataset.NewInstance(v)); err != nil {
			return fmt.Errorf("vector %d: %w", i, err)
		}
	}

	e, err := vqcluster.NewELBG(cb.size, cb.opts...)
	if err != nil {
		return err
	}
	res, err := e.Cluster(data)
	if err != nil {
		return err
	}

	cb.codes = make([]dataset.Instance, len(res.Centroids))
	for i, c := range res.Centroids {
		cb.codes[i] = dataset.NewInstance(c)
	}
	cb.dimension = data.Dim()
	cb.trained = true

	return nil
}

// IsTrained reports whether Train has completed successfully.
func (cb *Codebook) IsTrained() bool { return cb.trained }

// Size returns the number of code vectors.
func (cb *Codebook) Size() int { return cb.size }

// Dimension returns the vector dimension, or 0 before training.
func (cb *Codebook) Dimension() int { return cb.dimension }

// BytesPerVector returns 1.
func (cb *Codebook) BytesPerVector() int { return 1 }

// Codes returns a copy of the code vectors.
func (cb *Codebook) Codes() [][]float64 {
	out := make([][]float64, len(cb.codes))
	for i, c := range kmeans.Clone(cb.codes) {
		out[i] = c.Values
	}
	return out
}

// Quantize returns the index of the code vector nearest to vec and the
// distance to it. Ties go to the lower index.
func (cb *Codebook) Quantize(vec []float64) (int, float64) {
	cb.mustBeTrained(vec)
	return kmeans.Nearest(vec, cb.codes, cb.dm)
}

// Encode quantizes vec to a one-byte code.
func (cb *Codebook) Encode(vec []float64) []byte {
	idx, _ := cb.Quantize(vec)
	return []byte{byte(idx)}
}

// Decode returns a copy of the code vector for code.
func (cb *Codebook) Decode(code []byte) []float64 {
	if !cb.trained {
		panic("Codebook not trained")
	}
	if len(code) != 1 || int(code[0]) >= len(cb.codes) {
		panic("invalid code")
	}
	return cb.codes[code[0]].Clone().Values
}

// Distortion returns the mean distance between vectors and their
// reconstructions.
func (cb *Codebook) Distortion(vectors [][]float64) float64 {
	if len(vectors) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vectors {
		_, d := cb.Quantize(v)
		sum += d
	}
	return sum / float64(len(vectors))
}

func (cb *Codebook) mustBeTrained(vec []float64) {
	if !cb.trained {
		panic("Codebook not trained")
	}
	if len(vec) != cb.dimension {
		panic("vector dimension mismatch")
	}
}

type codebookSnapshot struct {
	Dimension int         `json:"dimension"`
	Metric    string      `json:"metric"`
	Codes     [][]float64 `json:"codes"`
}

// Marshal exports the trained code vectors with c, or codec.Default if c is
// nil. Only the built-in metrics can be exported.
func (cb *Codebook) Marshal(c codec.Codec) ([]byte, error) {
	if !cb.trained {
		return nil, ErrNotTrained
	}
	metric, err := metricOf(cb.dm)
	if err != nil {
		return nil, err
	}
	return codec.OrDefault(c).Marshal(codebookSnapshot{
		Dimension: cb.dimension,
		Metric:    metric.String(),
		Codes:     cb.Codes(),
	})
}

// UnmarshalCodebook restores a codebook exported by Marshal. The result is
// trained and ready to encode; training it again uses default engine options.
func UnmarshalCodebook(data []byte, c codec.Codec) (*Codebook, error) {
	var s codebookSnapshot
	if err := codec.OrDefault(c).Unmarshal(data, &s); err != nil {
		return nil, err
	}

	metric, err := distance.ParseMetric(s.Metric)
	if err != nil {
		return nil, err
	}
	dm, err := distance.Provider(metric)
	if err != nil {
		return nil, err
	}

	cb, err := NewCodebook(len(s.Codes), dm)
	if err != nil {
		return nil, err
	}
	cb.codes = make([]dataset.Instance, len(s.Codes))
	for i, code := range s.Codes {
		if len(code) != s.Dimension {
			return nil, fmt.Errorf("code %d: %w", i, dataset.ErrDimensionMismatch)
		}
		cb.codes[i] = dataset.NewInstance(code)
	}
	cb.dimension = s.Dimension
	cb.trained = true

	return cb, nil
}

func metricOf(dm distance.Measure) (distance.Metric, error) {
	switch m := dm.(type) {
	case distance.Euclidean:
		if m.Mask == nil {
			return distance.MetricEuclidean, nil
		}
	case distance.Manhattan:
		if m.Mask == nil {
			return distance.MetricManhattan, nil
		}
	case distance.SquaredL2:
		return distance.MetricSquaredL2, nil
	}
	return 0, fmt.Errorf("cannot export measure %T", dm)
}
