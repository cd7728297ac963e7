package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sequentia-ai/sequentia-go/internal/models"
)

func TestAnalyzeArithmetic(t *testing.T) {
	analyzer := NewSequenceAnalyzer(nil)

	tests := []struct {
		name           string
		values         []float64
		wantDifference float64
		wantPrediction float64
	}{
		{
			name:           "increasing integers",
			values:         []float64{3, 6, 9, 12},
			wantDifference: 3,
			wantPrediction: 15,
		},
		{
			name:           "negative difference",
			values:         []float64{10, 7, 4, 1},
			wantDifference: -3,
			wantPrediction: -2,
		},
		{
			name:           "constant sequence has zero difference",
			values:         []float64{7, 7, 7},
			wantDifference: 0,
			wantPrediction: 7,
		},
		{
			name:           "two points always define a line",
			values:         []float64{5, 100},
			wantDifference: 95,
			wantPrediction: 195,
		},
		{
			name:           "fractional difference",
			values:         []float64{0.5, 1.0, 1.5, 2.0},
			wantDifference: 0.5,
			wantPrediction: 2.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := analyzer.Analyze(tt.values)

			require.True(t, result.Success)
			assert.Equal(t, models.PatternArithmetic, result.Kind)
			require.NotNil(t, result.Confidence)
			assert.Equal(t, 1.0, *result.Confidence)
			require.NotNil(t, result.Prediction)
			assert.InDelta(t, tt.wantPrediction, *result.Prediction, Epsilon)
			require.NotNil(t, result.Arithmetic)
			assert.InDelta(t, tt.wantDifference, result.Arithmetic.Difference, Epsilon)
			assert.Equal(t, tt.values[0], result.Arithmetic.FirstTerm)
			assert.Empty(t, result.ErrorMessage)
		})
	}
}

func TestAnalyzeGeometric(t *testing.T) {
	analyzer := NewSequenceAnalyzer(nil)

	tests := []struct {
		name           string
		values         []float64
		wantRatio      float64
		wantPrediction float64
	}{
		{
			name:           "doubling",
			values:         []float64{3, 6, 12, 24},
			wantRatio:      2,
			wantPrediction: 48,
		},
		{
			name:           "alternating sign ratio",
			values:         []float64{1, -2, 4, -8},
			wantRatio:      -2,
			wantPrediction: 16,
		},
		{
			name:           "shrinking ratio",
			values:         []float64{16, 8, 4, 2},
			wantRatio:      0.5,
			wantPrediction: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := analyzer.Analyze(tt.values)

			require.True(t, result.Success)
			assert.Equal(t, models.PatternGeometric, result.Kind)
			require.NotNil(t, result.Confidence)
			assert.Equal(t, 1.0, *result.Confidence)
			require.NotNil(t, result.Prediction)
			assert.InDelta(t, tt.wantPrediction, *result.Prediction, Epsilon)
			require.NotNil(t, result.Geometric)
			assert.InDelta(t, tt.wantRatio, result.Geometric.Ratio, Epsilon)
			assert.Equal(t, tt.values[0], result.Geometric.FirstTerm)
		})
	}
}

func TestAnalyzeGeometricZeroGuard(t *testing.T) {
	analyzer := NewSequenceAnalyzer(nil)

	// A zero element must short-circuit the geometric detector, never divide.
	result := analyzer.Analyze([]float64{1, 0, 2})
	assert.NotEqual(t, models.PatternGeometric, result.Kind)
	assert.False(t, result.Success)
	assert.Equal(t, models.PatternUnknown, result.Kind)
}

func TestAnalyzePolynomial(t *testing.T) {
	analyzer := NewSequenceAnalyzer(nil)

	tests := []struct {
		name           string
		values         []float64
		wantDegree     int
		wantPrediction float64
	}{
		{
			name:           "squares",
			values:         []float64{1, 4, 9, 16, 25},
			wantDegree:     2,
			wantPrediction: 36,
		},
		{
			name:           "cubes",
			values:         []float64{1, 8, 27, 64, 125},
			wantDegree:     3,
			wantPrediction: 216,
		},
		{
			name:           "triangular numbers",
			values:         []float64{1, 3, 6, 10, 15},
			wantDegree:     2,
			wantPrediction: 21,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := analyzer.Analyze(tt.values)

			require.True(t, result.Success)
			assert.Equal(t, models.PatternPolynomial, result.Kind)
			require.NotNil(t, result.Confidence)
			assert.Equal(t, 0.9, *result.Confidence)
			require.NotNil(t, result.Prediction)
			assert.InDelta(t, tt.wantPrediction, *result.Prediction, Epsilon)
			require.NotNil(t, result.Polynomial)
			assert.Equal(t, tt.wantDegree, result.Polynomial.Degree)
			assert.Len(t, result.Polynomial.DifferenceTable, tt.wantDegree+1)
			// Every level is extended by one reconstructed value.
			assert.Len(t, result.Polynomial.DifferenceTable[0], len(tt.values)+1)
			assert.Contains(t, result.Polynomial.Formula, "degree")
		})
	}
}

func TestAnalyzeUnknown(t *testing.T) {
	analyzer := NewSequenceAnalyzer(nil)

	tests := []struct {
		name   string
		values []float64
	}{
		{
			// No difference level goes constant within the depth bound.
			name:   "no constant difference level",
			values: []float64{1, 2, 4, 7, 13},
		},
		{
			// Fibonacci-like recurrences must not be guessed.
			name:   "fibonacci",
			values: []float64{1, 1, 2, 3, 5, 8, 13},
		},
		{
			// Too short for the polynomial detector, not arithmetic, not geometric.
			name:   "short quadratic",
			values: []float64{1, 4, 9},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := analyzer.Analyze(tt.values)

			assert.False(t, result.Success)
			assert.Equal(t, models.PatternUnknown, result.Kind)
			assert.Equal(t, "no recognizable pattern", result.ErrorMessage)
			assert.Nil(t, result.Prediction)
			assert.Nil(t, result.Confidence)
		})
	}
}

func TestAnalyzeInvalidInput(t *testing.T) {
	analyzer := NewSequenceAnalyzer(nil)

	tests := []struct {
		name   string
		values []float64
	}{
		{name: "empty sequence", values: []float64{}},
		{name: "nil sequence", values: nil},
		{name: "single element", values: []float64{5}},
		{name: "contains NaN", values: []float64{1, math.NaN(), 3}},
		{name: "contains positive infinity", values: []float64{1, 2, math.Inf(1)}},
		{name: "contains negative infinity", values: []float64{math.Inf(-1), 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := analyzer.Analyze(tt.values)

			assert.False(t, result.Success)
			assert.Equal(t, models.PatternInvalid, result.Kind)
			assert.NotEmpty(t, result.ErrorMessage)
			assert.Nil(t, result.Prediction)
			assert.Nil(t, result.Confidence)
		})
	}
}

func TestAnalyzeDetectorPriority(t *testing.T) {
	analyzer := NewSequenceAnalyzer(nil)

	// A linear sequence is also a degree-1 polynomial, and a constant sequence
	// would read as ratio 1 to the geometric detector. Arithmetic must win both.
	linear := analyzer.Analyze([]float64{2, 4, 6, 8, 10})
	assert.Equal(t, models.PatternArithmetic, linear.Kind)

	constant := analyzer.Analyze([]float64{5, 5, 5, 5})
	assert.Equal(t, models.PatternArithmetic, constant.Kind)
	assert.Equal(t, 0.0, constant.Arithmetic.Difference)
}

func TestAnalyzeToleranceBoundary(t *testing.T) {
	analyzer := NewSequenceAnalyzer(nil)

	// Deviations a hair inside Epsilon still classify as arithmetic.
	within := analyzer.Analyze([]float64{0, 1, 2, 3.00009})
	assert.Equal(t, models.PatternArithmetic, within.Kind)

	// Deviations past Epsilon fall through every detector.
	beyond := analyzer.Analyze([]float64{0, 1, 2, 3.001})
	assert.Equal(t, models.PatternUnknown, beyond.Kind)
}

func TestAnalyzeIdempotent(t *testing.T) {
	analyzer := NewSequenceAnalyzer(nil)
	values := []float64{1, 4, 9, 16, 25}

	first := analyzer.Analyze(values)
	second := analyzer.Analyze(values)

	assert.Equal(t, first, second)
}

func TestPredictMultiple(t *testing.T) {
	analyzer := NewSequenceAnalyzer(nil)

	tests := []struct {
		name            string
		values          []float64
		count           int
		wantKind        models.PatternKind
		wantPredictions []float64
	}{
		{
			name:            "arithmetic chain",
			values:          []float64{3, 6, 9},
			count:           5,
			wantKind:        models.PatternArithmetic,
			wantPredictions: []float64{12, 15, 18, 21, 24},
		},
		{
			name:            "geometric chain",
			values:          []float64{2, 4, 8},
			count:           3,
			wantKind:        models.PatternGeometric,
			wantPredictions: []float64{16, 32, 64},
		},
		{
			name:            "polynomial chain",
			values:          []float64{1, 4, 9, 16, 25},
			count:           2,
			wantKind:        models.PatternPolynomial,
			wantPredictions: []float64{36, 49},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := analyzer.PredictMultiple(tt.values, tt.count)

			require.True(t, result.Success)
			assert.Equal(t, tt.wantKind, result.Kind)
			assert.Equal(t, tt.wantPredictions, result.Predictions)
			assert.Equal(t, append(append([]float64{}, tt.values...), tt.wantPredictions...), result.Sequence)
		})
	}
}

func TestPredictMultipleZeroCount(t *testing.T) {
	analyzer := NewSequenceAnalyzer(nil)

	result := analyzer.PredictMultiple([]float64{3, 6, 9}, 0)

	// The first analysis still runs and its classification is preserved.
	assert.True(t, result.Success)
	assert.Equal(t, models.PatternArithmetic, result.Kind)
	assert.Empty(t, result.Predictions)
	assert.Equal(t, []float64{3, 6, 9}, result.Sequence)
}

func TestPredictMultipleFailureStops(t *testing.T) {
	analyzer := NewSequenceAnalyzer(nil)

	result := analyzer.PredictMultiple([]float64{1, 2, 4, 7, 13}, 5)

	assert.False(t, result.Success)
	assert.Equal(t, models.PatternUnknown, result.Kind)
	assert.Empty(t, result.Predictions)
	assert.Equal(t, []float64{1, 2, 4, 7, 13}, result.Sequence)
}

func TestPredictMultipleInvalidInput(t *testing.T) {
	analyzer := NewSequenceAnalyzer(nil)

	result := analyzer.PredictMultiple([]float64{5}, 3)

	assert.False(t, result.Success)
	assert.Equal(t, models.PatternInvalid, result.Kind)
	assert.Empty(t, result.Predictions)
}
