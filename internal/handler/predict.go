package handler

import (
	"net/http"

	"valuescore/internal/model"
	"valuescore/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PredictHandler handles scoring requests
type PredictHandler struct {
	scoringService *service.ScoringService
	strict         bool
	logger         *zap.Logger
}

// NewPredictHandler creates a new predict handler
func NewPredictHandler(scoringService *service.ScoringService, strict bool, logger *zap.Logger) *PredictHandler {
	return &PredictHandler{
		scoringService: scoringService,
		strict:         strict,
		logger:         logger,
	}
}

// Predict handles POST /predict
func (h *PredictHandler) Predict(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		h.logger.Warn("failed to read request body", zap.Error(err))
		writeInternalError(c)
		return
	}

	features, verrs := model.ParseFeatures(body, h.strict)
	if len(verrs) > 0 {
		h.logger.Debug("request failed validation", zap.Int("errors", len(verrs)))
		writeValidationErrors(c, verrs)
		return
	}

	result, err := h.scoringService.Predict(c.Request.Context(), features)
	if err != nil {
		h.logger.Error("prediction failed", zap.Error(err), zap.String("request_id", requestID(c)))
		writeInternalError(c)
		return
	}

	c.JSON(http.StatusOK, result)
}
