package corpus

import "math"

// Normalize returns a unit-length copy of v. Vectors with a norm below
// epsilon are returned as a zero-filled copy rather than dividing by
// (near) zero.
func Normalize(v []float32) []float32 {
	const epsilon = 1e-12

	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}

	out := make([]float32, len(v))
	norm := math.Sqrt(sum)
	if norm < epsilon {
		return out
	}
	for i, x := range v {
		out[i] = float32(float64(x) / norm)
	}
	return out
}

// Dot returns the dot product of two equal-length vectors. For unit
// vectors this is the cosine similarity.
func Dot(a, b []float32) float32 {
	var sum float32
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
