package scoring

import (
	"errors"
	"fmt"
	"math"

	"alfredoptarigan/resume-radar/internal/embedding"
)

var ErrDimensionMismatch = errors.New("vector dimensions differ")

// CosineSimilarity returns the cosine of the angle between a and b in [-1, 1].
// A zero-norm vector on either side yields exactly 0.
func CosineSimilarity(a, b embedding.Vector) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}

	if normA == 0 || normB == 0 {
		return 0, nil
	}

	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	return math.Max(-1, math.Min(1, sim)), nil
}
