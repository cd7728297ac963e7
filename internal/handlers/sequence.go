package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/sequentia-ai/sequentia-go/internal/config"
	"github.com/sequentia-ai/sequentia-go/internal/models"
	"github.com/sequentia-ai/sequentia-go/internal/services"
	"github.com/sequentia-ai/sequentia-go/internal/utils"
)

// SequenceHandler handles sequence analysis and prediction endpoints.
type SequenceHandler struct {
	cfg      *config.Config
	analyzer *services.SequenceAnalyzer
	history  *services.AnalysisHistory
	logger   *logrus.Logger
}

// NewSequenceHandler creates a new sequence handler.
func NewSequenceHandler(cfg *config.Config, analyzer *services.SequenceAnalyzer, history *services.AnalysisHistory, logger *logrus.Logger) *SequenceHandler {
	return &SequenceHandler{
		cfg:      cfg,
		analyzer: analyzer,
		history:  history,
		logger:   logger,
	}
}

// AnalyzeSequence handles POST /api/v1/sequence/analyze.
func (h *SequenceHandler) AnalyzeSequence(c *gin.Context) {
	var req models.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, invalidBody("request body must contain a numeric values array"))
		return
	}
	if err := h.validateLength(req.Values); err != nil {
		c.JSON(http.StatusBadRequest, invalidBody(err.Error()))
		return
	}

	result := h.analyzer.Analyze(req.Values)
	h.history.Record(len(req.Values), result)

	status := http.StatusOK
	if result.Kind == models.PatternInvalid {
		status = http.StatusBadRequest
	}
	c.JSON(status, result)
}

// PredictSequence handles POST /api/v1/sequence/predict.
func (h *SequenceHandler) PredictSequence(c *gin.Context) {
	var req models.PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, invalidBody("request body must contain a numeric values array and a count"))
		return
	}
	if err := h.validateLength(req.Values); err != nil {
		c.JSON(http.StatusBadRequest, invalidBody(err.Error()))
		return
	}
	if req.Count < 0 {
		c.JSON(http.StatusBadRequest, invalidBody("count must be non-negative"))
		return
	}
	if req.Count > h.cfg.Analysis.MaxPredictions {
		c.JSON(http.StatusBadRequest, invalidBody(
			utils.NewValidationErrorf("count exceeds maximum of %d predictions", h.cfg.Analysis.MaxPredictions).Error()))
		return
	}

	result := h.analyzer.PredictMultiple(req.Values, req.Count)
	h.history.Record(len(req.Values), result.DetectionResult)

	status := http.StatusOK
	if result.Kind == models.PatternInvalid {
		status = http.StatusBadRequest
	}
	c.JSON(status, result)
}

// GetHistory handles GET /api/v1/history.
func (h *SequenceHandler) GetHistory(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = parsed
	}

	records := h.history.Recent(limit)
	c.JSON(http.StatusOK, models.HistoryResponse{
		Records:   records,
		Count:     len(records),
		Timestamp: time.Now().UTC(),
	})
}

// GetHistoryStats handles GET /api/v1/history/stats.
func (h *SequenceHandler) GetHistoryStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.history.Stats())
}

// ClearHistory handles DELETE /api/v1/history.
func (h *SequenceHandler) ClearHistory(c *gin.Context) {
	h.history.Clear()
	h.logger.Info("Analysis history cleared")
	c.JSON(http.StatusOK, gin.H{"message": "history cleared"})
}

func (h *SequenceHandler) validateLength(values []float64) error {
	if len(values) > h.cfg.Analysis.MaxSequenceLength {
		return utils.NewValidationErrorf("sequence exceeds maximum length of %d values", h.cfg.Analysis.MaxSequenceLength)
	}
	return nil
}

// invalidBody mirrors the engine's invalid-input taxonomy for failures caught
// at the transport layer, so callers see one result shape for every rejection.
func invalidBody(message string) models.DetectionResult {
	return models.DetectionResult{
		Success:      false,
		Kind:         models.PatternInvalid,
		ErrorMessage: message,
	}
}
