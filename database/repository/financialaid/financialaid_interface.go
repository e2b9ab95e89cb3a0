package financialAidRepo

import "podium/models"

// FinancialAidRepository defines methods for financial aid data access.
type FinancialAidRepository interface {
	// GetByApplicationID retrieves the aid application owned by an application.
	// Returns nil, nil when none exists.
	GetByApplicationID(applicationID string) (*models.FinancialAidApplication, error)
	// GetAll retrieves all aid applications, newest submission first.
	GetAll() ([]models.FinancialAidApplication, error)
	// Create inserts a new aid application.
	Create(aid *models.FinancialAidApplication) error
	// UpdateStatus moves an aid application to a review decision.
	UpdateStatus(applicationID string, status models.AidStatus) error
	// DeleteByApplicationIDs removes aid applications owned by the given applications.
	DeleteByApplicationIDs(applicationIDs []string) (int64, error)
}
