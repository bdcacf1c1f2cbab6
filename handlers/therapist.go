package handlers

import (
	"net/http"
	"strings"

	"therapair/models"
	"therapair/services/availability"
	"therapair/services/therapist"
	"therapair/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TherapistHandler exposes therapist account endpoints.
type TherapistHandler struct {
	Service therapist.TherapistService
}

// NewTherapistHandler creates a TherapistHandler.
func NewTherapistHandler(svc therapist.TherapistService) *TherapistHandler {
	return &TherapistHandler{Service: svc}
}

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case availability.IsValidationError(err):
		return http.StatusBadRequest
	case strings.Contains(err.Error(), "not found"):
		return http.StatusNotFound
	case strings.Contains(err.Error(), "already exists"):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// RegisterTherapistHandler handles POST /api/therapists.
func (h *TherapistHandler) RegisterTherapistHandler(c *gin.Context) {
	logger := utils.GetLogger()
	var t models.TherapistProfile
	if err := c.ShouldBindJSON(&t); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	resp, err := h.Service.RegisterTherapist(t)
	if err != nil {
		logger.Error("Failed to register therapist", zap.Error(err))
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// AuthenticateTherapistHandler handles POST /api/auth/signin.
func (h *TherapistHandler) AuthenticateTherapistHandler(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	resp, err := h.Service.AuthenticateTherapist(input.Email, input.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetTherapistByIDHandler handles GET /api/therapists/:id.
func (h *TherapistHandler) GetTherapistByIDHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id := c.Param("id")

	t, err := h.Service.GetTherapistByID(id)
	if err != nil {
		logger.Error("Therapist not found", zap.String("id", id), zap.Error(err))
		c.JSON(statusFor(err), gin.H{"error": "Therapist not found"})
		return
	}
	c.JSON(http.StatusOK, t)
}

// UpdateTherapistHandler handles PUT /api/therapists/:id.
func (h *TherapistHandler) UpdateTherapistHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id := c.Param("id")
	if !authorizedFor(c, id) {
		return
	}

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	t, err := h.Service.UpdateTherapist(id, updates)
	if err != nil {
		logger.Error("Failed to update therapist", zap.String("id", id), zap.Error(err))
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, t)
}

// DeleteTherapistHandler handles DELETE /api/therapists/:id.
func (h *TherapistHandler) DeleteTherapistHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id := c.Param("id")
	if !authorizedFor(c, id) {
		return
	}

	if err := h.Service.DeleteTherapist(id); err != nil {
		logger.Error("Failed to delete therapist", zap.String("id", id), zap.Error(err))
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "therapist deleted"})
}

// RevokeAuthTokenHandler handles DELETE /api/therapists/:id/token.
func (h *TherapistHandler) RevokeAuthTokenHandler(c *gin.Context) {
	id := c.Param("id")
	if !authorizedFor(c, id) {
		return
	}

	if err := h.Service.RevokeAuthToken(id); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "token revoked"})
}

// ReplaceWeeklyTemplateHandler handles PUT /api/therapists/:id/weekly-template.
// The template is replaced wholesale; there is no partial merge.
func (h *TherapistHandler) ReplaceWeeklyTemplateHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id := c.Param("id")
	if !authorizedFor(c, id) {
		return
	}

	var template models.WeeklyTemplate
	if err := c.ShouldBindJSON(&template); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := h.Service.ReplaceWeeklyTemplate(id, template); err != nil {
		logger.Error("Failed to replace weekly template", zap.String("id", id), zap.Error(err))
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "weekly template replaced"})
}

// authorizedFor ensures the authenticated therapist only mutates their own
// record. The auth middleware sets therapistID from the validated token.
func authorizedFor(c *gin.Context, id string) bool {
	tid, exists := c.Get("therapistID")
	if !exists || tid != id {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "you may only modify your own profile"})
		return false
	}
	return true
}
