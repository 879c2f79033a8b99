package quantization

// Quantizer defines the interface for vector quantization methods.
type Quantizer interface {
	// Train calibrates the quantizer on a set of vectors.
	Train(vectors [][]float64) error

	// Encode quantizes a vector to its compressed representation.
	Encode(v []float64) []byte

	// Decode reconstructs a vector from its compressed representation.
	Decode(b []byte) []float64

	// BytesPerVector returns the size of an encoded vector.
	BytesPerVector() int
}

var _ Quantizer = (*Codebook)(nil)
