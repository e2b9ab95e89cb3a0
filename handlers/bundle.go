package handlers

import (
	userRepoPkg "podium/database/repository/user"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct. Routes pull the
// UserRepo for the auth middlewares.
type HandlerBundle struct {
	UserRepo userRepoPkg.UserRepository

	// Auth endpoints
	SignUpHandler          gin.HandlerFunc
	SignInHandler          gin.HandlerFunc
	RevokeAuthTokenHandler gin.HandlerFunc

	// Applicant endpoints
	GetProfileHandler         gin.HandlerFunc
	SaveProfileHandler        gin.HandlerFunc
	GetApplicationHandler     gin.HandlerFunc
	SaveDraftHandler          gin.HandlerFunc
	SubmitApplicationHandler  gin.HandlerFunc
	GetConfirmationHandler    gin.HandlerFunc
	SubmitConfirmationHandler gin.HandlerFunc
	GetFinancialAidHandler    gin.HandlerFunc
	SubmitFinancialAidHandler gin.HandlerFunc

	// Admin endpoints
	AdminStatsHandler              gin.HandlerFunc
	AdminListApplicationsHandler   gin.HandlerFunc
	AdminGetApplicationHandler     gin.HandlerFunc
	AdminPatchApplicationHandler   gin.HandlerFunc
	AdminExportHandler             gin.HandlerFunc
	AdminListFinancialAidHandler   gin.HandlerFunc
	AdminExportFinancialAidHandler gin.HandlerFunc
	AdminUpdateAidStatusHandler    gin.HandlerFunc
	AdminEmailRosterHandler        gin.HandlerFunc
	AdminDeleteAllHandler          gin.HandlerFunc
}
