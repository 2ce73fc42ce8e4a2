package handler

import (
	"net/http"

	"valuescore/internal/model"
	"valuescore/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// InfoHandler serves the fixed informational and probe endpoints
type InfoHandler struct {
	scoringService *service.ScoringService
	build          model.VersionResponse
	logger         *zap.Logger
}

// NewInfoHandler creates a new info handler
func NewInfoHandler(scoringService *service.ScoringService, build model.VersionResponse, logger *zap.Logger) *InfoHandler {
	return &InfoHandler{
		scoringService: scoringService,
		build:          build,
		logger:         logger,
	}
}

// Root handles GET /
func (h *InfoHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, model.MessageResponse{Message: "API is working"})
}

// Health handles GET /health. It is a liveness probe and never touches the model.
func (h *InfoHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, model.StatusResponse{Status: "ok"})
}

// Ready handles GET /ready
func (h *InfoHandler) Ready(c *gin.Context) {
	if err := h.scoringService.Ready(); err != nil {
		h.logger.Warn("readiness probe failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, model.StatusResponse{Status: "model_unavailable"})
		return
	}
	c.JSON(http.StatusOK, model.StatusResponse{Status: "ready"})
}

// Version handles GET /version
func (h *InfoHandler) Version(c *gin.Context) {
	c.JSON(http.StatusOK, h.build)
}

// NotFound answers unknown routes
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, model.DetailResponse{Detail: "Not Found"})
}

// MethodNotAllowed answers known routes called with the wrong method
func MethodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, model.DetailResponse{Detail: "Method Not Allowed"})
}
