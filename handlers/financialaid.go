package handlers

import (
	"net/http"

	"podium/services/application"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetFinancialAidHandler returns the caller's aid application, 404 when none
// has been submitted.
func GetFinancialAidHandler(svc application.ApplicationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		actor, ok := currentActor(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		aid, err := svc.GetFinancialAid(actor)
		if err != nil {
			respondServiceError(c, logger, err)
			return
		}
		if aid == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Financial aid application not submitted"})
			return
		}
		c.JSON(http.StatusOK, aid)
	}
}

// SubmitFinancialAidHandler files the caller's aid request.
func SubmitFinancialAidHandler(svc application.ApplicationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		actor, ok := currentActor(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var form application.FinancialAidForm
		if err := c.ShouldBindJSON(&form); err != nil {
			logger.Error("invalid financial aid payload", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		aid, err := svc.SubmitFinancialAid(actor, form)
		if err != nil {
			respondServiceError(c, logger, err)
			return
		}
		c.JSON(http.StatusCreated, aid)
	}
}
