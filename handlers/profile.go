package handlers

import (
	"net/http"

	profileRepo "podium/database/repository/profile"
	"podium/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetProfileHandler returns the caller's contact profile, or 404 before the
// first save.
func GetProfileHandler(repo profileRepo.ProfileRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		actor, ok := currentActor(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		profile, err := repo.GetByUserID(actor.UserID)
		if err != nil {
			logger.Error("failed to fetch profile", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve profile"})
			return
		}
		if profile == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not started"})
			return
		}
		c.JSON(http.StatusOK, profile)
	}
}

// SaveProfileHandler creates or replaces the caller's contact profile.
func SaveProfileHandler(repo profileRepo.ProfileRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		actor, ok := currentActor(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var profile models.Profile
		if err := c.ShouldBindJSON(&profile); err != nil {
			logger.Error("invalid profile payload", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		// Ownership comes from the session, never from the payload.
		profile.UserID = actor.UserID
		if err := repo.Upsert(&profile); err != nil {
			logger.Error("failed to save profile", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save profile"})
			return
		}

		saved, err := repo.GetByUserID(actor.UserID)
		if err != nil || saved == nil {
			logger.Error("failed to reload profile after save", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save profile"})
			return
		}
		c.JSON(http.StatusOK, saved)
	}
}
