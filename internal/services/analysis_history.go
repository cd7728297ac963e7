package services

import (
	"sync"
	"time"

	"github.com/cinar/indicator/v2/helper"
	"github.com/cinar/indicator/v2/trend"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/sequentia-ai/sequentia-go/internal/models"
)

// AnalysisHistory keeps a bounded in-memory log of past analyses and derives
// aggregate statistics from it. The detection engine itself is pure; this
// component owns all synchronization around recorded results.
type AnalysisHistory struct {
	logger      *logrus.Logger
	maxEntries  int
	trendWindow int

	mu      sync.RWMutex
	records []models.AnalysisRecord
}

// NewAnalysisHistory creates a history log holding at most maxEntries records.
// trendWindow is the SMA period used for the confidence trend.
func NewAnalysisHistory(maxEntries, trendWindow int, logger *logrus.Logger) *AnalysisHistory {
	if maxEntries < 1 {
		maxEntries = 1
	}
	if trendWindow < 1 {
		trendWindow = 1
	}
	return &AnalysisHistory{
		logger:      logger,
		maxEntries:  maxEntries,
		trendWindow: trendWindow,
	}
}

// Record appends the outcome of one analysis, evicting the oldest entry once
// the configured capacity is exceeded. Returns the stored record.
func (h *AnalysisHistory) Record(inputLength int, result models.DetectionResult) models.AnalysisRecord {
	record := models.AnalysisRecord{
		ID:           uuid.New().String(),
		Kind:         result.Kind,
		Success:      result.Success,
		InputLength:  inputLength,
		Confidence:   result.Confidence,
		Prediction:   result.Prediction,
		ErrorMessage: result.ErrorMessage,
		AnalyzedAt:   time.Now().UTC(),
	}

	h.mu.Lock()
	h.records = append(h.records, record)
	if len(h.records) > h.maxEntries {
		h.records = h.records[len(h.records)-h.maxEntries:]
	}
	h.mu.Unlock()

	if h.logger != nil {
		h.logger.WithFields(logrus.Fields{
			"record_id": record.ID,
			"kind":      record.Kind,
			"success":   record.Success,
		}).Debug("Analysis recorded")
	}

	return record
}

// Recent returns up to limit records, newest last. limit <= 0 returns all.
func (h *AnalysisHistory) Recent(limit int) []models.AnalysisRecord {
	h.mu.RLock()
	defer h.mu.RUnlock()

	start := 0
	if limit > 0 && len(h.records) > limit {
		start = len(h.records) - limit
	}
	out := make([]models.AnalysisRecord, len(h.records)-start)
	copy(out, h.records[start:])
	return out
}

// Len returns the number of stored records.
func (h *AnalysisHistory) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.records)
}

// Clear removes every stored record.
func (h *AnalysisHistory) Clear() {
	h.mu.Lock()
	h.records = nil
	h.mu.Unlock()
}

// Stats derives aggregate statistics over the stored records: totals,
// per-kind counts, success rate, average confidence over successful analyses
// and a simple-moving-average trend of recent confidences.
func (h *AnalysisHistory) Stats() models.HistoryStats {
	h.mu.RLock()
	records := make([]models.AnalysisRecord, len(h.records))
	copy(records, h.records)
	h.mu.RUnlock()

	stats := models.HistoryStats{
		TotalAnalyses:     len(records),
		KindCounts:        make(map[models.PatternKind]int),
		SuccessRate:       decimal.Zero,
		AverageConfidence: decimal.Zero,
		GeneratedAt:       time.Now().UTC(),
	}

	confidenceSum := decimal.Zero
	confidences := make([]float64, 0, len(records))
	for _, r := range records {
		stats.KindCounts[r.Kind]++
		if r.Success {
			stats.SuccessCount++
		} else {
			stats.FailureCount++
		}
		if r.Confidence != nil {
			confidenceSum = confidenceSum.Add(decimal.NewFromFloat(*r.Confidence))
			confidences = append(confidences, *r.Confidence)
		}
	}

	if stats.TotalAnalyses > 0 {
		stats.SuccessRate = decimal.NewFromInt(int64(stats.SuccessCount)).
			Div(decimal.NewFromInt(int64(stats.TotalAnalyses))).Round(4)
	}
	if len(confidences) > 0 {
		stats.AverageConfidence = confidenceSum.
			Div(decimal.NewFromInt(int64(len(confidences)))).Round(4)
	}
	if len(confidences) >= h.trendWindow {
		sma := trend.NewSmaWithPeriod[float64](h.trendWindow)
		stats.ConfidenceTrend = helper.ChanToSlice(sma.Compute(helper.SliceToChan(confidences)))
	}

	return stats
}
