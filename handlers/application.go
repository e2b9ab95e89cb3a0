package handlers

import (
	"net/http"

	"podium/models"
	"podium/services/application"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetApplicationHandler returns the caller's application. A 404 means the
// application has not been started.
func GetApplicationHandler(svc application.ApplicationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		actor, ok := currentActor(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		app, err := svc.GetOwn(actor)
		if err != nil {
			respondServiceError(c, logger, err)
			return
		}
		if app == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Application not started"})
			return
		}
		c.JSON(http.StatusOK, app)
	}
}

// SaveDraftHandler auto-saves applicant content. The first save creates the
// application.
func SaveDraftHandler(svc application.ApplicationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		actor, ok := currentActor(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var draft models.ApplicationDraft
		if err := c.ShouldBindJSON(&draft); err != nil {
			logger.Error("invalid draft payload", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		app, err := svc.SaveDraft(actor, draft)
		if err != nil {
			respondServiceError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, app)
	}
}

// SubmitApplicationHandler locks the application for review.
func SubmitApplicationHandler(svc application.ApplicationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		actor, ok := currentActor(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		app, err := svc.Submit(actor)
		if err != nil {
			respondServiceError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, app)
	}
}
