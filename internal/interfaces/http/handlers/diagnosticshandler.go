package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/autocrm/autocrm/internal/shared/biztime"
	"github.com/autocrm/autocrm/internal/shared/errors"
	"github.com/autocrm/autocrm/internal/shared/logger"
	"github.com/autocrm/autocrm/internal/shared/utils"
)

const diagnosticsTimeout = 5 * time.Second

type pinger interface {
	Ping(ctx context.Context) error
}

// DiagnosticsHandler reports liveness and backend reachability.
type DiagnosticsHandler struct {
	backend pinger
	version string
	logger  logger.Interface
}

func NewDiagnosticsHandler(backend pinger, version string, logger logger.Interface) *DiagnosticsHandler {
	return &DiagnosticsHandler{
		backend: backend,
		version: version,
		logger:  logger,
	}
}

type DiagnosticsResponse struct {
	Status    string    `json:"status"`
	Database  string    `json:"database"`
	Version   string    `json:"version,omitempty"`
	CheckedAt time.Time `json:"checked_at"`
	LatencyMS int64     `json:"latency_ms"`
}

// Health handles GET /health
func (h *DiagnosticsHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Diagnostics handles GET /diagnostics
func (h *DiagnosticsHandler) Diagnostics(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), diagnosticsTimeout)
	defer cancel()

	start := biztime.NowUTC()
	err := h.backend.Ping(ctx)
	resp := DiagnosticsResponse{
		Status:    "ok",
		Database:  "reachable",
		Version:   h.version,
		CheckedAt: start,
		LatencyMS: time.Since(start).Milliseconds(),
	}
	if err != nil {
		h.logger.Errorw("diagnostics ping failed", "error", err)
		resp.Status = "degraded"
		resp.Database = "unreachable"
		c.JSON(http.StatusServiceUnavailable, utils.APIResponse{
			Success: false,
			Data:    resp,
			Error: &utils.ErrorInfo{
				Type:    string(errors.ErrorTypeBackend),
				Message: "database unreachable",
			},
		})
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", resp)
}
