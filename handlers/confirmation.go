package handlers

import (
	"net/http"

	"podium/services/application"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetConfirmationHandler returns the caller's confirmation form data. Only
// reachable once accepted; 404 before the first submission.
func GetConfirmationHandler(svc application.ApplicationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		actor, ok := currentActor(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		conf, err := svc.GetConfirmation(actor)
		if err != nil {
			respondServiceError(c, logger, err)
			return
		}
		if conf == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Confirmation not submitted"})
			return
		}
		c.JSON(http.StatusOK, conf)
	}
}

// SubmitConfirmationHandler records consents and confirms the spot.
func SubmitConfirmationHandler(svc application.ApplicationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		actor, ok := currentActor(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var form application.ConfirmationForm
		if err := c.ShouldBindJSON(&form); err != nil {
			logger.Error("invalid confirmation payload", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		conf, err := svc.SubmitConfirmation(actor, form)
		if err != nil {
			respondServiceError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, conf)
	}
}
