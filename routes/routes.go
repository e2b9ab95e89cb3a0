package routes

import (
	"net/http"
	"time"

	"podium/handlers"
	"podium/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers account endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/signup", hb.SignUpHandler)
		api.POST("/signin", hb.SignInHandler)

		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		api.DELETE("/revoke", hb.RevokeAuthTokenHandler)
	}
}

// RegisterApplicantRoutes registers the applicant-facing portal endpoints.
// Everything here requires a signed-in session.
func RegisterApplicantRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
	{
		api.GET("/profile", hb.GetProfileHandler)
		api.POST("/profile", hb.SaveProfileHandler)

		api.GET("/application", hb.GetApplicationHandler)
		api.POST("/application", hb.SaveDraftHandler)
		api.POST("/application/submit", hb.SubmitApplicationHandler)

		api.GET("/confirmation", hb.GetConfirmationHandler)
		api.POST("/confirmation", hb.SubmitConfirmationHandler)

		api.GET("/financial-aid", hb.GetFinancialAidHandler)
		api.POST("/financial-aid", hb.SubmitFinancialAidHandler)
	}
}

// RegisterAdminRoutes registers the staff review endpoints.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/admin")
	api.Use(middleware.JWTAuthAdminMiddleware(hb.UserRepo))
	{
		api.GET("/stats", hb.AdminStatsHandler)

		api.GET("/applications", hb.AdminListApplicationsHandler)
		api.GET("/applications/export", hb.AdminExportHandler)
		api.GET("/applications/:id", hb.AdminGetApplicationHandler)
		api.PATCH("/applications/:id", hb.AdminPatchApplicationHandler)

		api.GET("/financial-aid", hb.AdminListFinancialAidHandler)
		api.GET("/financial-aid/export", hb.AdminExportFinancialAidHandler)
		api.PATCH("/financial-aid/:id", hb.AdminUpdateAidStatusHandler)

		api.GET("/tools/emails", hb.AdminEmailRosterHandler)
		api.DELETE("/settings/applications", hb.AdminDeleteAllHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterApplicantRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterHealthRoute(r)
}
