// Package quantization provides a codebook vector quantizer trained with ELBG.
//
// A Codebook of up to 256 code vectors compresses each vector to a single
// byte: the index of its nearest code vector. Training runs ELBG, so code
// vectors are spread according to the local distortion of the training set
// rather than its density alone.
//
//	cb, err := quantization.NewCodebook(64, distance.Euclidean{}, vqcluster.WithSeed(7))
//	if err != nil {
//		return err
//	}
//	if err := cb.Train(trainingVectors); err != nil {
//		return err
//	}
//	code := cb.Encode(vec)           // 1 byte
//	approx := cb.Decode(code)        // nearest code vector
//	mean := cb.Distortion(testVectors)
//
// Encode, Decode and Quantize panic when called before Train, or with a
// vector of the wrong dimension.
//
// Trained codebooks can be exported with Marshal and restored with
// UnmarshalCodebook through any codec.Codec.
package quantization
