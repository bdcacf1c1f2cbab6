package handlers

import (
	"net/http"

	"therapair/models"
	"therapair/services/availability"
	"therapair/services/matching"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MatchingHandler exposes the client-to-therapist matching endpoint.
type MatchingHandler struct {
	Service matching.MatcherService
	Logger  *zap.Logger
}

// NewMatchingHandler creates a MatchingHandler.
func NewMatchingHandler(svc matching.MatcherService, logger *zap.Logger) *MatchingHandler {
	return &MatchingHandler{Service: svc, Logger: logger}
}

// MatchHandler handles POST /api/matching. An empty match list is a valid
// outcome, returned as 200 with totalMatches 0.
func (h *MatchingHandler) MatchHandler(c *gin.Context) {
	var criteria models.MatchCriteria
	if err := c.ShouldBindJSON(&criteria); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	resp, err := h.Service.Match(criteria)
	if err != nil {
		if availability.IsValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.Logger.Error("Failed to match therapists", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute matches"})
		return
	}
	c.JSON(http.StatusOK, resp)
}
