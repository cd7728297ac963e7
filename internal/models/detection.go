package models

import (
	"time"
)

// PatternKind identifies which canonical progression a sequence was classified as.
type PatternKind string

const (
	PatternArithmetic PatternKind = "arithmetic"
	PatternGeometric  PatternKind = "geometric"
	PatternPolynomial PatternKind = "polynomial"
	PatternUnknown    PatternKind = "unknown"
	PatternInvalid    PatternKind = "invalid"
)

// ArithmeticParams describes a detected arithmetic progression.
type ArithmeticParams struct {
	Difference float64 `json:"difference"`
	FirstTerm  float64 `json:"first_term"`
}

// GeometricParams describes a detected geometric progression.
type GeometricParams struct {
	Ratio     float64 `json:"ratio"`
	FirstTerm float64 `json:"first_term"`
}

// PolynomialParams describes a detected polynomial progression. DifferenceTable
// holds every difference level from the original sequence (level 0) down to the
// first constant level, each already extended by one reconstructed value.
type PolynomialParams struct {
	Degree          int         `json:"degree"`
	DifferenceTable [][]float64 `json:"difference_table"`
	Formula         string      `json:"formula"`
}

// DetectionResult is the outcome of a single analysis. Exactly one of
// prediction+parameters or error_message is populated, depending on Kind.
// Results are value types created fresh per call and never mutated afterward.
type DetectionResult struct {
	Success      bool              `json:"success"`
	Kind         PatternKind       `json:"kind"`
	Prediction   *float64          `json:"prediction,omitempty"`
	Arithmetic   *ArithmeticParams `json:"arithmetic,omitempty"`
	Geometric    *GeometricParams  `json:"geometric,omitempty"`
	Polynomial   *PolynomialParams `json:"polynomial,omitempty"`
	Confidence   *float64          `json:"confidence,omitempty"`
	ErrorMessage string            `json:"error_message,omitempty"`
}

// MultiStepResult augments a DetectionResult with the predictions accumulated by
// iterative re-analysis and the input sequence extended with them. The embedded
// result always reflects the first analysis, even when a later step failed.
type MultiStepResult struct {
	DetectionResult
	Predictions []float64 `json:"predictions"`
	Sequence    []float64 `json:"sequence"`
}

// AnalyzeRequest is the request body for POST /api/v1/sequence/analyze.
type AnalyzeRequest struct {
	Values []float64 `json:"values"`
}

// PredictRequest is the request body for POST /api/v1/sequence/predict.
type PredictRequest struct {
	Values []float64 `json:"values"`
	Count  int       `json:"count"`
}

// AnalysisRecord is one entry in the in-memory analysis history.
type AnalysisRecord struct {
	ID           string      `json:"id"`
	Kind         PatternKind `json:"kind"`
	Success      bool        `json:"success"`
	InputLength  int         `json:"input_length"`
	Confidence   *float64    `json:"confidence,omitempty"`
	Prediction   *float64    `json:"prediction,omitempty"`
	ErrorMessage string      `json:"error_message,omitempty"`
	AnalyzedAt   time.Time   `json:"analyzed_at"`
}
