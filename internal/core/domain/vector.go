package domain

import "math"

// CosineSimilarity returns the cosine similarity of two vectors, in
// [-1, 1]. It fails with ErrDimensionMismatch when the vectors differ
// in length and returns 0 when either vector has zero norm (degenerate
// guard against divide-by-zero).
func CosineSimilarity(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, ErrDimensionMismatch
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0, nil
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}

// NormalizeVector scales v to unit L2 norm in place and returns it.
// Zero vectors are returned unchanged. Embeddings are normalised at
// generation time so that cosine similarity reduces to a dot product.
func NormalizeVector(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return v
	}

	norm := math.Sqrt(sum)
	for i := range v {
		v[i] = float32(float64(v[i]) / norm)
	}
	return v
}
