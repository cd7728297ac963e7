package services

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/sequentia-ai/sequentia-go/internal/models"
)

// Epsilon is the absolute tolerance used for every floating-point comparison in
// the detection engine. Two values are treated as equal when they differ by at
// most Epsilon. Kept exported so tests can probe behavior at the boundary.
const Epsilon = 1e-4

// Confidence levels reported by the detectors. The arithmetic and geometric
// checks are exact constant checks; the finite-difference method is heuristic
// and cannot rule out a coincidental match over the sampled window.
const (
	exactConfidence      = 1.0
	polynomialConfidence = 0.9
)

// SequenceAnalyzer classifies numeric sequences as arithmetic, geometric or
// polynomial progressions and predicts their continuation. All analysis is a
// pure function of the input: the service holds no mutable state and a single
// instance may be shared across concurrent callers.
type SequenceAnalyzer struct {
	logger *logrus.Logger
}

// NewSequenceAnalyzer creates a new sequence analyzer.
func NewSequenceAnalyzer(logger *logrus.Logger) *SequenceAnalyzer {
	return &SequenceAnalyzer{logger: logger}
}

// Analyze validates the sequence and runs the detectors in fixed priority
// order: arithmetic, then geometric, then polynomial. The first match wins.
// Arithmetic runs first because a constant or linear sequence is a degenerate
// case of the later hypotheses and the most specific test must claim it.
func (s *SequenceAnalyzer) Analyze(values []float64) models.DetectionResult {
	if msg, ok := validateSequence(values); !ok {
		return invalidResult(msg)
	}

	result, ok := detectArithmetic(values)
	if !ok {
		result, ok = detectGeometric(values)
	}
	if !ok {
		result, ok = detectPolynomial(values)
	}
	if !ok {
		result = models.DetectionResult{
			Success:      false,
			Kind:         models.PatternUnknown,
			ErrorMessage: "no recognizable pattern",
		}
	}

	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{
			"input_length": len(values),
			"kind":         result.Kind,
			"success":      result.Success,
		}).Debug("Sequence analyzed")
	}

	return result
}

// PredictMultiple generates up to count predictions by repeatedly analyzing
// the growing sequence: each successful prediction is appended to the working
// sequence before the next analysis. The returned result carries the kind and
// confidence of the first analysis; a later failure stops the loop and leaves
// the predictions accumulated so far (partial success). count <= 0 still runs
// the first analysis and returns an empty prediction list.
func (s *SequenceAnalyzer) PredictMultiple(values []float64, count int) models.MultiStepResult {
	first := s.Analyze(values)

	out := models.MultiStepResult{
		DetectionResult: first,
		Predictions:     []float64{},
		Sequence:        append([]float64(nil), values...),
	}
	if !first.Success || count <= 0 {
		return out
	}

	out.Predictions = append(out.Predictions, *first.Prediction)
	out.Sequence = append(out.Sequence, *first.Prediction)

	// Re-derive the pattern at every step rather than extrapolating the first
	// formula. If an appended value nudges a later window into matching a
	// different detector, the switch is accepted silently.
	for step := 1; step < count; step++ {
		res := s.Analyze(out.Sequence)
		if !res.Success {
			break
		}
		out.Predictions = append(out.Predictions, *res.Prediction)
		out.Sequence = append(out.Sequence, *res.Prediction)
	}

	return out
}

// validateSequence rejects malformed input before any detector runs. It
// reports a descriptive message and false when the sequence has fewer than two
// elements or contains a non-finite value.
func validateSequence(values []float64) (string, bool) {
	if len(values) < 2 {
		return fmt.Sprintf("sequence must contain at least 2 values, got %d", len(values)), false
	}
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Sprintf("sequence contains a non-finite value at index %d", i), false
		}
	}
	return "", true
}

// detectArithmetic tests whether the consecutive differences are constant
// within Epsilon of their mean. Comparing against the mean rather than the
// first difference spreads accumulated floating error symmetrically. A
// length-2 sequence always matches: two points define a line.
func detectArithmetic(values []float64) (models.DetectionResult, bool) {
	diffs := consecutiveDiffs(values)
	mean := meanOf(diffs)
	for _, d := range diffs {
		if math.Abs(d-mean) > Epsilon {
			return models.DetectionResult{}, false
		}
	}

	prediction := values[len(values)-1] + mean
	confidence := exactConfidence
	return models.DetectionResult{
		Success:    true,
		Kind:       models.PatternArithmetic,
		Prediction: &prediction,
		Confidence: &confidence,
		Arithmetic: &models.ArithmeticParams{
			Difference: mean,
			FirstTerm:  values[0],
		},
	}, true
}

// detectGeometric tests whether the consecutive ratios are constant within
// Epsilon of their mean. A zero element anywhere makes the ratio degenerate
// and short-circuits the detector before any division. The |mean| > Epsilon
// guard keeps a near-zero ratio from being accepted as a valid progression.
func detectGeometric(values []float64) (models.DetectionResult, bool) {
	for _, v := range values {
		if v == 0 {
			return models.DetectionResult{}, false
		}
	}

	ratios := make([]float64, len(values)-1)
	for i := 0; i < len(values)-1; i++ {
		ratios[i] = values[i+1] / values[i]
	}
	mean := meanOf(ratios)
	if math.Abs(mean) <= Epsilon {
		return models.DetectionResult{}, false
	}
	for _, r := range ratios {
		if math.Abs(r-mean) > Epsilon {
			return models.DetectionResult{}, false
		}
	}

	prediction := values[len(values)-1] * mean
	confidence := exactConfidence
	return models.DetectionResult{
		Success:    true,
		Kind:       models.PatternGeometric,
		Prediction: &prediction,
		Confidence: &confidence,
		Geometric: &models.GeometricParams{
			Ratio:     mean,
			FirstTerm: values[0],
		},
	}, true
}

func invalidResult(message string) models.DetectionResult {
	return models.DetectionResult{
		Success:      false,
		Kind:         models.PatternInvalid,
		ErrorMessage: message,
	}
}

// consecutiveDiffs returns the element-wise consecutive differences.
func consecutiveDiffs(values []float64) []float64 {
	diffs := make([]float64, len(values)-1)
	for i := 0; i < len(values)-1; i++ {
		diffs[i] = values[i+1] - values[i]
	}
	return diffs
}

func meanOf(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
