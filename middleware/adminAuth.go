package middleware

import (
	"net/http"

	userRepo "podium/database/repository/user"
	"podium/utils"

	"github.com/gin-gonic/gin"
)

// JWTAuthAdminMiddleware authenticates the bearer token like the user
// middleware and then requires the admin bit on the account. The role check
// always hits the database: promotions and demotions take effect on the next
// request, not at the next signin.
func JWTAuthAdminMiddleware(repo userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		userID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		usr, err := repo.GetByID(userID)
		if err != nil || usr == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication error"})
			return
		}
		if usr.TokenHash == "" || usr.TokenHash != utils.HashToken(tokenString) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token mismatch"})
			return
		}
		if !usr.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}

		c.Set("userID", userID)
		c.Set("isAdmin", true)
		c.Next()
	}
}
