package handlers

import (
	"errors"
	"net/http"

	"podium/services/application"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondServiceError maps lifecycle service errors onto HTTP statuses. The
// mapping is fixed: identity failures are 401, guard failures that depend on
// state are 403, concurrent or illegal transitions are 409, and payload
// problems are 400. Anything unrecognized is a 500 with a generic body.
func respondServiceError(c *gin.Context, logger *zap.Logger, err error) {
	var (
		invalidTransition *application.InvalidTransitionError
		incomplete        *application.IncompleteApplicationError
		ineligible        *application.IneligibleActionError
		validation        *application.ValidationError
	)

	switch {
	case errors.Is(err, application.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	case errors.Is(err, application.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.As(err, &invalidTransition):
		c.JSON(http.StatusConflict, gin.H{
			"error": err.Error(),
			"from":  invalidTransition.From,
			"to":    invalidTransition.To,
		})
	case errors.As(err, &incomplete):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   err.Error(),
			"missing": incomplete.Missing,
		})
	case errors.As(err, &ineligible):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "Validation failed",
			"fields": validation.Fields,
		})
	default:
		logger.Error("unhandled service error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// currentActor builds the caller identity from values set by the auth
// middleware. ok is false when the request slipped past authentication.
func currentActor(c *gin.Context) (application.Actor, bool) {
	userID, exists := c.Get("userID")
	if !exists {
		return application.Actor{}, false
	}
	id, ok := userID.(string)
	if !ok || id == "" {
		return application.Actor{}, false
	}
	return application.Actor{
		UserID:  id,
		IsAdmin: c.GetBool("isAdmin"),
	}, true
}
