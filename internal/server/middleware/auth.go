// Package middleware holds the Gin middlewares shared by the API routes.
package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mamadbah2/resto/internal/apperror"
	"github.com/mamadbah2/resto/internal/domain/models"
	"github.com/mamadbah2/resto/internal/service/auth"
)

// Context keys set by RequireAuth for downstream handlers.
const (
	CtxUserID       = "user_id"
	CtxRestaurantID = "restaurant_id"
)

// RestaurantResolver maps an authenticated owner to their restaurant.
type RestaurantResolver interface {
	RestaurantByOwner(ctx context.Context, owner primitive.ObjectID) (*models.Restaurant, error)
}

// RequireAuth validates the bearer token and resolves the caller's
// restaurant. Requests without a valid token are rejected with 401.
func RequireAuth(tokens *auth.TokenManager, resolver RestaurantResolver, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthorized(c, "missing bearer token")
			return
		}

		userHex, err := tokens.Verify(parts[1])
		if err != nil {
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		userID, err := primitive.ObjectIDFromHex(userHex)
		if err != nil {
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		restaurant, err := resolver.RestaurantByOwner(c.Request.Context(), userID)
		if err != nil {
			logger.Warn("authenticated user has no restaurant",
				zap.String("user_id", userHex), zap.Error(err))
			abortUnauthorized(c, "no restaurant associated with this account")
			return
		}

		c.Set(CtxUserID, userID)
		c.Set(CtxRestaurantID, restaurant.ID)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	ae := apperror.NewUnauthorized(message)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ae})
}

// RequestLogger logs one line per completed request.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
