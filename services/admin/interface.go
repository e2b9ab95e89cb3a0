package admin

import (
	applicationRepo "podium/database/repository/application"
	confirmationRepo "podium/database/repository/confirmation"
	financialAidRepo "podium/database/repository/financialaid"
	profileRepo "podium/database/repository/profile"
	"podium/models"

	"go.uber.org/zap"
)

// DashboardStats is the review-dashboard summary.
type DashboardStats struct {
	Total    int64                              `json:"total"`
	ByStatus map[models.ApplicationStatus]int64 `json:"byStatus"`
	Recent   []models.Application               `json:"recent"`
}

// ApplicationDetail is the full staff view of one application: the record plus
// its attached profile, confirmation and aid request where they exist.
type ApplicationDetail struct {
	Application  models.Application              `json:"application"`
	Profile      *models.Profile                 `json:"profile,omitempty"`
	Confirmation *models.ProgramConfirmation     `json:"confirmation,omitempty"`
	FinancialAid *models.FinancialAidApplication `json:"financialAid,omitempty"`
}

// AidReviewRow joins an aid request with the applicant it belongs to.
type AidReviewRow struct {
	Aid               models.FinancialAidApplication `json:"aid"`
	StudentName       string                         `json:"studentName"`
	StudentEmail      string                         `json:"studentEmail"`
	UDLStudent        bool                           `json:"udlStudent"`
	ApplicationStatus models.ApplicationStatus       `json:"applicationStatus"`
}

// RosterEntry is one line of the outreach email roster.
type RosterEntry struct {
	StudentName  string                   `json:"studentName"`
	StudentEmail string                   `json:"studentEmail"`
	ParentEmail  string                   `json:"parentEmail"`
	Status       models.ApplicationStatus `json:"status"`
}

// PurgeResult reports what a season reset removed.
type PurgeResult struct {
	Applications  int64 `json:"applications"`
	Confirmations int64 `json:"confirmations"`
	FinancialAid  int64 `json:"financialAid"`
}

// AdminService is the staff review surface. Decisions themselves go through
// the application service; this service covers the read and bulk operations.
type AdminService interface {
	// GetStats returns counts per status and the latest arrivals.
	GetStats() (*DashboardStats, error)
	// ListApplications returns all applications, optionally filtered by status.
	ListApplications(status *models.ApplicationStatus) ([]models.Application, error)
	// GetApplicationDetail returns one application with its attachments.
	GetApplicationDetail(applicationID string) (*ApplicationDetail, error)

	// ListFinancialAid returns every aid request joined with its applicant.
	ListFinancialAid() ([]AidReviewRow, error)
	// UpdateAidStatus records an aid review decision.
	UpdateAidStatus(applicationID string, status models.AidStatus) error
	// ExportFinancialAidCSV writes every aid request as CSV rows.
	ExportFinancialAidCSV() ([]byte, error)

	// EmailRoster returns student and parent addresses for applications in the
	// given status.
	EmailRoster(status models.ApplicationStatus) ([]RosterEntry, error)
	// ExportCSV writes every application as CSV rows.
	ExportCSV() ([]byte, error)
	// DeleteAllApplications removes every application together with its
	// confirmations and aid requests. Accounts and profiles survive.
	DeleteAllApplications() (*PurgeResult, error)
}

// DefaultAdminService is the production implementation.
type DefaultAdminService struct {
	AppRepo     applicationRepo.ApplicationRepository
	ProfileRepo profileRepo.ProfileRepository
	ConfRepo    confirmationRepo.ConfirmationRepository
	AidRepo     financialAidRepo.FinancialAidRepository
	Logger      *zap.Logger
}
