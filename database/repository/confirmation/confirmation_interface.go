package confirmationRepo

import "podium/models"

// ConfirmationRepository defines methods for program confirmation data access.
type ConfirmationRepository interface {
	// GetByApplicationID retrieves the confirmation owned by an application.
	// Returns nil, nil when none exists.
	GetByApplicationID(applicationID string) (*models.ProgramConfirmation, error)
	// Upsert creates or replaces the confirmation for its application.
	Upsert(conf *models.ProgramConfirmation) error
	// SetPayment records the invoice order created for the confirmation.
	SetPayment(applicationID, orderID, paymentStatus string) error
	// DeleteByApplicationIDs removes confirmations owned by the given applications.
	DeleteByApplicationIDs(applicationIDs []string) (int64, error)
}
