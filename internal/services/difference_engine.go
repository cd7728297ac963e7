package services

import (
	"fmt"
	"math"

	"github.com/sequentia-ai/sequentia-go/internal/models"
)

// Bounds on the finite-difference search. A degree above 4, or a table deeper
// than 5 levels, is declined rather than guessed: short noisy input reduces to
// "constant" levels too easily past that point.
const (
	minPolynomialLength  = 4
	maxDifferenceLevels  = 5
	maxPolynomialDegree  = 4
	minConstantLevelSize = 2
)

// detectPolynomial classifies the sequence via finite differences: a degree-d
// polynomial sequence reduces to a constant level after d differencings. The
// prediction is reconstructed by extending every level by one value, walking
// back from the constant level (cumulative-sum reconstruction, the inverse of
// differencing). Requires at least 4 points; below that the arithmetic
// detector already covers degree 1 and anything higher is indistinguishable
// from noise.
func detectPolynomial(values []float64) (models.DetectionResult, bool) {
	if len(values) < minPolynomialLength {
		return models.DetectionResult{}, false
	}

	table, degree, ok := buildDifferenceTable(values)
	if !ok {
		return models.DetectionResult{}, false
	}

	prediction := extendDifferenceTable(table)
	confidence := polynomialConfidence
	return models.DetectionResult{
		Success:    true,
		Kind:       models.PatternPolynomial,
		Prediction: &prediction,
		Confidence: &confidence,
		Polynomial: &models.PolynomialParams{
			Degree:          degree,
			DifferenceTable: table,
			Formula:         fmt.Sprintf("polynomial of degree %d", degree),
		},
	}, true
}

// buildDifferenceTable computes successive difference levels starting from the
// original sequence at level 0, stopping at the first level that is constant
// within Epsilon of its mean. It declines when no level up to
// maxDifferenceLevels is constant, when the degree found exceeds
// maxPolynomialDegree, or when a level shrinks below two values (a single
// value is trivially constant and would invite false positives).
func buildDifferenceTable(values []float64) ([][]float64, int, bool) {
	levels := [][]float64{append([]float64(nil), values...)}

	for depth := 1; depth <= maxDifferenceLevels; depth++ {
		next := consecutiveDiffs(levels[depth-1])
		if len(next) < minConstantLevelSize {
			return nil, 0, false
		}
		levels = append(levels, next)
		if isConstantLevel(next) {
			if depth > maxPolynomialDegree {
				return nil, 0, false
			}
			return levels, depth, true
		}
	}

	return nil, 0, false
}

// extendDifferenceTable appends one forward value to every level in place: the
// deepest (constant) level repeats its last value, and each shallower level
// appends its own last value plus the newly appended value one level deeper.
// Returns the value appended at level 0, which is the prediction.
func extendDifferenceTable(levels [][]float64) float64 {
	deepest := len(levels) - 1
	levels[deepest] = append(levels[deepest], levels[deepest][len(levels[deepest])-1])

	for k := deepest - 1; k >= 0; k-- {
		carry := levels[k+1][len(levels[k+1])-1]
		levels[k] = append(levels[k], levels[k][len(levels[k])-1]+carry)
	}

	return levels[0][len(levels[0])-1]
}

// isConstantLevel reports whether every value sits within Epsilon of the
// level's mean.
func isConstantLevel(level []float64) bool {
	mean := meanOf(level)
	for _, v := range level {
		if math.Abs(v-mean) > Epsilon {
			return false
		}
	}
	return true
}
