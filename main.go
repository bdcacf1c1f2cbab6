package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"therapair/config"
	"therapair/cron"
	"therapair/database"
	overrideRepoPkg "therapair/database/repository/override"
	therapistRepoPkg "therapair/database/repository/therapist"
	"therapair/handlers"
	"therapair/middleware"
	"therapair/routes"
	"therapair/services/matching"
	"therapair/services/therapist"
	"therapair/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()
	cron.InitCacheWorker()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(cors.Default())

	// repositories.
	therapistRepo := therapistRepoPkg.NewMongoTherapistRepo()
	overrideRepo := overrideRepoPkg.NewMongoOverrideRepo()

	// services.
	taskClient := cron.NewTaskClient()
	defer taskClient.Close()

	therapistService := &therapist.DefaultTherapistService{
		Repo:      therapistRepo,
		Overrides: overrideRepo,
		Tasks:     taskClient,
	}
	matcherService := &matching.DefaultMatcherService{
		TherapistRepo: therapistRepo,
		OverrideRepo:  overrideRepo,
		CacheClient:   utils.GetCacheClient(),
		Engine:        matching.NewEngine(),
		CacheTTL:      time.Duration(config.AppConfig.MatchCacheTTLMinutes) * time.Minute,
	}

	therapistHandler := handlers.NewTherapistHandler(therapistService)
	availabilityHandler := handlers.NewAvailabilityHandler(therapistService)
	matchingHandler := handlers.NewMatchingHandler(matcherService, logger)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		TherapistRepo: therapistRepo,

		// Therapist endpoints.
		RegisterTherapistHandler:     therapistHandler.RegisterTherapistHandler,
		AuthenticateTherapistHandler: therapistHandler.AuthenticateTherapistHandler,
		GetTherapistByIDHandler:      therapistHandler.GetTherapistByIDHandler,
		UpdateTherapistHandler:       therapistHandler.UpdateTherapistHandler,
		DeleteTherapistHandler:       therapistHandler.DeleteTherapistHandler,
		RevokeAuthTokenHandler:       therapistHandler.RevokeAuthTokenHandler,

		// Weekly template and overrides.
		ReplaceWeeklyTemplateHandler: therapistHandler.ReplaceWeeklyTemplateHandler,
		CreateOverrideHandler:        availabilityHandler.CreateOverrideHandler,
		UpdateOverrideHandler:        availabilityHandler.UpdateOverrideHandler,
		DeleteOverrideHandler:        availabilityHandler.DeleteOverrideHandler,

		// Resolved availability.
		GetDayAvailabilityHandler:   availabilityHandler.GetDayAvailabilityHandler,
		GetRangeAvailabilityHandler: availabilityHandler.GetRangeAvailabilityHandler,
		CheckAvailabilityHandler:    availabilityHandler.CheckAvailabilityHandler,

		// Matching.
		MatchHandler: matchingHandler.MatchHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
