package handlers

import (
	therapistRepoPkg "therapair/database/repository/therapist"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	TherapistRepo therapistRepoPkg.TherapistRepository

	// Therapist endpoints
	RegisterTherapistHandler     gin.HandlerFunc
	AuthenticateTherapistHandler gin.HandlerFunc
	GetTherapistByIDHandler      gin.HandlerFunc
	UpdateTherapistHandler       gin.HandlerFunc
	DeleteTherapistHandler       gin.HandlerFunc
	RevokeAuthTokenHandler       gin.HandlerFunc

	// Weekly template and overrides
	ReplaceWeeklyTemplateHandler gin.HandlerFunc
	CreateOverrideHandler        gin.HandlerFunc
	UpdateOverrideHandler        gin.HandlerFunc
	DeleteOverrideHandler        gin.HandlerFunc

	// Resolved availability
	GetDayAvailabilityHandler   gin.HandlerFunc
	GetRangeAvailabilityHandler gin.HandlerFunc
	CheckAvailabilityHandler    gin.HandlerFunc

	// Matching
	MatchHandler gin.HandlerFunc
}
