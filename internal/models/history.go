package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// HistoryStats aggregates derived statistics over the recorded analyses.
type HistoryStats struct {
	TotalAnalyses     int                 `json:"total_analyses"`
	SuccessCount      int                 `json:"success_count"`
	FailureCount      int                 `json:"failure_count"`
	KindCounts        map[PatternKind]int `json:"kind_counts"`
	SuccessRate       decimal.Decimal     `json:"success_rate"`
	AverageConfidence decimal.Decimal     `json:"average_confidence"`
	ConfidenceTrend   []float64           `json:"confidence_trend,omitempty"`
	GeneratedAt       time.Time           `json:"generated_at"`
}

// HistoryResponse wraps the recent analysis records for API responses.
type HistoryResponse struct {
	Records   []AnalysisRecord `json:"records"`
	Count     int              `json:"count"`
	Timestamp time.Time        `json:"timestamp"`
}
