package api

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/sequentia-ai/sequentia-go/internal/handlers"
)

// Version is the service version reported by the health endpoint.
const Version = "1.0.0"

type HealthResponse struct {
	Status    string       `json:"status"`
	Timestamp time.Time    `json:"timestamp"`
	Version   string       `json:"version"`
	Uptime    string       `json:"uptime"`
	System    SystemHealth `json:"system"`
}

type SystemHealth struct {
	Goroutines        int     `json:"goroutines"`
	MemoryUsedPercent float64 `json:"memory_used_percent"`
}

// SetupRoutes registers the health endpoint and the versioned API routes.
func SetupRoutes(router *gin.Engine, sequences *handlers.SequenceHandler) {
	started := time.Now()

	// Health check endpoint
	router.GET("/health", healthCheck(started))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		sequence := v1.Group("/sequence")
		{
			sequence.POST("/analyze", sequences.AnalyzeSequence)
			sequence.POST("/predict", sequences.PredictSequence)
		}

		history := v1.Group("/history")
		{
			history.GET("", sequences.GetHistory)
			history.GET("/stats", sequences.GetHistoryStats)
			history.DELETE("", sequences.ClearHistory)
		}
	}
}

func healthCheck(started time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		response := HealthResponse{
			Status:    "ok",
			Timestamp: time.Now().UTC(),
			Version:   Version,
			Uptime:    time.Since(started).Round(time.Second).String(),
			System: SystemHealth{
				Goroutines: runtime.NumGoroutine(),
			},
		}

		if vm, err := mem.VirtualMemory(); err == nil {
			response.System.MemoryUsedPercent = vm.UsedPercent
		}

		c.JSON(http.StatusOK, response)
	}
}
