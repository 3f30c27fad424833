// Package handlers adapts the domain services to Gin HTTP endpoints.
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mamadbah2/resto/internal/apperror"
	"github.com/mamadbah2/resto/internal/server/middleware"
)

// respondError maps service errors to HTTP responses. Structured errors keep
// their status and code; anything else becomes a generic 500.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	var ae *apperror.AppError
	if !errors.As(err, &ae) {
		ae = apperror.NewInternal(err)
	}

	if ae.HTTPStatus >= http.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("path", c.Request.URL.Path), zap.Error(err))
	} else {
		logger.Warn("request rejected",
			zap.String("path", c.Request.URL.Path), zap.Error(err))
	}

	c.JSON(ae.HTTPStatus, gin.H{"error": ae})
}

// restaurantFrom reads the restaurant id set by the auth middleware.
func restaurantFrom(c *gin.Context) primitive.ObjectID {
	return c.MustGet(middleware.CtxRestaurantID).(primitive.ObjectID)
}

// userFrom reads the user id set by the auth middleware.
func userFrom(c *gin.Context) primitive.ObjectID {
	return c.MustGet(middleware.CtxUserID).(primitive.ObjectID)
}

// pathID parses the named path parameter as an ObjectID.
func pathID(c *gin.Context, name string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		return primitive.NilObjectID, apperror.NewInvalidInput("invalid " + name)
	}
	return id, nil
}

// dateRange parses optional startDate/endDate query parameters (YYYY-MM-DD).
// The end bound is pushed to the end of its day so the range is inclusive.
func dateRange(c *gin.Context) (from, to *time.Time, err error) {
	if raw := c.Query("startDate"); raw != "" {
		t, perr := time.Parse("2006-01-02", raw)
		if perr != nil {
			return nil, nil, apperror.NewInvalidInput("invalid startDate, expected YYYY-MM-DD")
		}
		from = &t
	}
	if raw := c.Query("endDate"); raw != "" {
		t, perr := time.Parse("2006-01-02", raw)
		if perr != nil {
			return nil, nil, apperror.NewInvalidInput("invalid endDate, expected YYYY-MM-DD")
		}
		end := t.AddDate(0, 0, 1).Add(-time.Millisecond)
		to = &end
	}
	return from, to, nil
}
