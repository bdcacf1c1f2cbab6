package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	therapistRepo "therapair/database/repository/therapist"
	"therapair/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

const (
	authCachePrefix = "auth:"
	authCacheTTL    = 15 * time.Minute
)

// JWTAuthTherapistMiddleware validates the JWT token for therapists with
// Redis caching of validated token hashes.
func JWTAuthTherapistMiddleware(repo therapistRepo.TherapistRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := zap.L()
		ctx := context.Background()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		// Extract the therapist ID from the token.
		therapistID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || therapistID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		// Compute the token hash.
		computedHash := utils.HashToken(tokenString)
		cacheKey := authCachePrefix + computedHash

		// Check the authorization cache.
		authCache := utils.GetAuthCacheClient()
		if cached, err := authCache.Get(ctx, cacheKey).Result(); err == nil && cached == "1" {
			// Refresh TTL (sliding expiration) and proceed.
			if err := authCache.Expire(ctx, cacheKey, authCacheTTL).Err(); err != nil {
				logger.Error("Failed to refresh auth cache TTL", zap.Error(err))
			}
			c.Set("therapistID", therapistID)
			c.Next()
			return
		} else if err != nil && err != redis.Nil {
			logger.Error("Error checking auth cache", zap.Error(err))
		}

		// Cache miss: query the therapist repository.
		proj := bson.M{"id": 1, "security": 1}
		therapist, err := repo.GetByIDWithProjection(therapistID, proj)
		if err != nil || therapist == nil {
			logger.Error("Therapist not found when validating token", zap.String("therapistID", therapistID), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Therapist not found"})
			return
		}

		// Validate the token hash.
		if computedHash != therapist.Security.TokenHash {
			logger.Error("Token hash mismatch", zap.String("therapistID", therapistID))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token mismatch"})
			return
		}

		// Successful validation: cache the token hash.
		if err := authCache.Set(ctx, cacheKey, "1", authCacheTTL).Err(); err != nil {
			logger.Error("Failed to set auth cache", zap.Error(err))
		}

		// Set the therapist ID in context and proceed.
		c.Set("therapistID", therapistID)
		c.Next()
	}
}
