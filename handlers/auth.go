package handlers

import (
	"errors"
	"net/http"

	"podium/services/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignUpHandler handles account registration.
func SignUpHandler(svc user.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		var req credentialsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Error("invalid signup request", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		resp, err := svc.RegisterUser(req.Email, req.Password)
		if err != nil {
			if errors.Is(err, user.ErrEmailTaken) {
				c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
				return
			}
			logger.Error("signup failed", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, resp)
	}
}

// SignInHandler handles signin and returns the session token.
func SignInHandler(svc user.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		var req credentialsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Error("invalid signin request", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		resp, err := svc.AuthenticateUser(req.Email, req.Password)
		if err != nil {
			if errors.Is(err, user.ErrInvalidCredentials) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
				return
			}
			logger.Error("signin failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Authentication failed"})
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// RevokeAuthTokenHandler ends the caller's session.
func RevokeAuthTokenHandler(svc user.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		actor, ok := currentActor(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		if err := svc.RevokeAuthToken(actor.UserID); err != nil {
			logger.Error("token revocation failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to logout"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
	}
}
