package embedding

import "math"

// Normalize resizes vec to exactly dim elements and L2-normalizes the
// result. Longer vectors are truncated, shorter ones zero-padded. An
// all-zero vector is returned as-is after resizing since it has no
// direction to normalize.
func Normalize(vec []float32, dim int) []float32 {
	if dim <= 0 {
		return []float32{}
	}

	out := make([]float32, dim)
	copy(out, vec)

	var sum float64
	for _, v := range out {
		sum += float64(v) * float64(v)
	}
	if sum == 0 {
		return out
	}

	norm := math.Sqrt(sum)
	for i := range out {
		out[i] = float32(float64(out[i]) / norm)
	}
	return out
}
