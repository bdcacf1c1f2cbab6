package routes

import (
	"net/http"

	"therapair/handlers"
	"therapair/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires every endpoint group onto the router.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	RegisterHealthRoute(r)
	RegisterAuthRoutes(r, hb)
	RegisterTherapistRoutes(r, hb)
	RegisterMatchingRoutes(r, hb)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Therapair"})
	})
}

// RegisterAuthRoutes registers authentication endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/signin", hb.AuthenticateTherapistHandler)
	}
}

// RegisterTherapistRoutes registers therapist management, weekly template,
// override and availability endpoints.
func RegisterTherapistRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/therapists")
	{
		// Public endpoints.
		api.POST("", hb.RegisterTherapistHandler)
		api.GET("/:id", hb.GetTherapistByIDHandler)
		api.GET("/:id/availability", hb.GetDayAvailabilityHandler)
		api.GET("/:id/availability/range", hb.GetRangeAvailabilityHandler)
		api.GET("/:id/availability/check", hb.CheckAvailabilityHandler)

		// Endpoints that modify therapist data require authentication.
		protected := api.Group("")
		protected.Use(middleware.JWTAuthTherapistMiddleware(hb.TherapistRepo))
		protected.PUT("/:id", hb.UpdateTherapistHandler)
		protected.DELETE("/:id", hb.DeleteTherapistHandler)
		protected.DELETE("/:id/token", hb.RevokeAuthTokenHandler)
		protected.PUT("/:id/weekly-template", hb.ReplaceWeeklyTemplateHandler)
		protected.POST("/:id/overrides", hb.CreateOverrideHandler)
		protected.PUT("/:id/overrides/:oid", hb.UpdateOverrideHandler)
		protected.DELETE("/:id/overrides/:oid", hb.DeleteOverrideHandler)
	}
}

// RegisterMatchingRoutes registers the matching endpoint.
func RegisterMatchingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/matching")
	{
		api.POST("", hb.MatchHandler)
	}
}
