package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ifnbl/statsapi/internal/services"
)

// HealthStatus is the health endpoint payload.
type HealthStatus struct {
	Status    string            `json:"status"`
	Service   string            `json:"service"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
}

// HealthHandler handles health check endpoints
type HealthHandler struct {
	seasons *services.SeasonService
	breaker *services.CircuitBreakerService
	logger  *logrus.Logger
	started time.Time
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(seasons *services.SeasonService, breaker *services.CircuitBreakerService, logger *logrus.Logger) *HealthHandler {
	return &HealthHandler{
		seasons: seasons,
		breaker: breaker,
		logger:  logger,
		started: time.Now(),
	}
}

// GetHealth returns the basic health status. The service itself holds no
// state, so health is the breaker's view of the static data host.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	response := HealthStatus{
		Status:    "ok",
		Service:   "ifnbl-stats-api",
		Timestamp: time.Now(),
		Checks:    make(map[string]string),
	}

	response.Checks["circuit_breaker"] = h.breaker.State().String()

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()
	if err := h.seasons.Ping(ctx); err != nil {
		// a flapping static host degrades pages to their fallbacks but the
		// service keeps answering, so this stays a check, not a failure
		response.Checks["data_host"] = "unreachable: " + err.Error()
	} else {
		response.Checks["data_host"] = "ok"
	}

	c.JSON(http.StatusOK, response)
}

// GetReady returns the readiness status.
func (h *HealthHandler) GetReady(c *gin.Context) {
	c.JSON(http.StatusOK, HealthStatus{
		Status:    "ready",
		Service:   "ifnbl-stats-api",
		Timestamp: time.Now(),
		Checks:    map[string]string{"circuit_breaker": h.breaker.State().String()},
	})
}

// GetMetrics returns basic metrics for monitoring
func (h *HealthHandler) GetMetrics(c *gin.Context) {
	counts := h.breaker.Counts()
	c.JSON(http.StatusOK, gin.H{
		"service":   "ifnbl-stats-api",
		"timestamp": time.Now(),
		"uptime":    time.Since(h.started).Seconds(),
		"upstream": gin.H{
			"state":                h.breaker.State().String(),
			"requests":             counts.Requests,
			"total_failures":       counts.TotalFailures,
			"consecutive_failures": counts.ConsecutiveFailures,
		},
	})
}
