package handlers

import (
	"net/http"

	"therapair/models"
	"therapair/services/therapist"
	"therapair/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AvailabilityHandler exposes resolved availability and override management.
type AvailabilityHandler struct {
	Service therapist.TherapistService
}

// NewAvailabilityHandler creates an AvailabilityHandler.
func NewAvailabilityHandler(svc therapist.TherapistService) *AvailabilityHandler {
	return &AvailabilityHandler{Service: svc}
}

// GetDayAvailabilityHandler handles
// GET /api/therapists/:id/availability?date=YYYY-MM-DD.
func (h *AvailabilityHandler) GetDayAvailabilityHandler(c *gin.Context) {
	id := c.Param("id")
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter is required"})
		return
	}

	day, err := h.Service.GetDayAvailability(id, date)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, day)
}

// GetRangeAvailabilityHandler handles
// GET /api/therapists/:id/availability/range?start=&end=.
func (h *AvailabilityHandler) GetRangeAvailabilityHandler(c *gin.Context) {
	id := c.Param("id")
	start, end := c.Query("start"), c.Query("end")
	if start == "" || end == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start and end query parameters are required"})
		return
	}

	days, err := h.Service.GetRangeAvailability(id, start, end)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": days})
}

// CheckAvailabilityHandler handles
// GET /api/therapists/:id/availability/check?date=&start=&end=.
func (h *AvailabilityHandler) CheckAvailabilityHandler(c *gin.Context) {
	id := c.Param("id")
	date, start, end := c.Query("date"), c.Query("start"), c.Query("end")
	if date == "" || start == "" || end == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date, start and end query parameters are required"})
		return
	}

	ok, err := h.Service.CheckAvailability(id, date, start, end)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"available": ok})
}

// CreateOverrideHandler handles POST /api/therapists/:id/overrides.
func (h *AvailabilityHandler) CreateOverrideHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id := c.Param("id")
	if !authorizedFor(c, id) {
		return
	}

	var o models.AvailabilityOverride
	if err := c.ShouldBindJSON(&o); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	o.TherapistID = id

	created, err := h.Service.CreateOverride(o)
	if err != nil {
		logger.Error("Failed to create override", zap.String("therapistID", id), zap.Error(err))
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateOverrideHandler handles PUT /api/therapists/:id/overrides/:oid.
func (h *AvailabilityHandler) UpdateOverrideHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id := c.Param("id")
	if !authorizedFor(c, id) {
		return
	}

	var o models.AvailabilityOverride
	if err := c.ShouldBindJSON(&o); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	o.ID = c.Param("oid")
	o.TherapistID = id

	updated, err := h.Service.UpdateOverride(o)
	if err != nil {
		logger.Error("Failed to update override", zap.String("overrideID", o.ID), zap.Error(err))
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteOverrideHandler handles DELETE /api/therapists/:id/overrides/:oid.
func (h *AvailabilityHandler) DeleteOverrideHandler(c *gin.Context) {
	id := c.Param("id")
	if !authorizedFor(c, id) {
		return
	}

	if err := h.Service.DeleteOverride(id, c.Param("oid")); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "override deleted"})
}
