package applicationRepo

import "podium/models"

// ApplicationRepository defines methods for application data access.
//
// Status writes go through UpdateStatus exclusively, which compares against
// the stored status so a stale snapshot can never drive an illegal edge.
type ApplicationRepository interface {
	// GetByID retrieves an application by its unique ID. Returns nil, nil when
	// no application exists for the ID.
	GetByID(id string) (*models.Application, error)
	// GetByUserID retrieves the application owned by a user. Returns nil, nil
	// when the user has not started one.
	GetByUserID(userID string) (*models.Application, error)
	// GetAll retrieves all applications, newest first.
	GetAll() ([]models.Application, error)
	// GetByStatus retrieves all applications in the given status, newest first.
	GetByStatus(status models.ApplicationStatus) ([]models.Application, error)
	// GetRecent retrieves the most recently created applications.
	GetRecent(limit int) ([]models.Application, error)
	// Count returns the total number of applications.
	Count() (int64, error)
	// CountByStatus returns the number of applications in the given status.
	CountByStatus(status models.ApplicationStatus) (int64, error)
	// Create inserts a new application record.
	Create(app *models.Application) error
	// UpdateContent writes applicant-editable fields for the user's
	// application, but only while it is still IN_PROGRESS. Returns false when
	// no in-progress application matched (locked or missing).
	UpdateContent(userID string, draft models.ApplicationDraft) (bool, error)
	// UpdateStatus moves the application from one status to another. The write
	// is conditional on the stored status still being `from`; false means the
	// row changed underneath the caller.
	UpdateStatus(id string, from, to models.ApplicationStatus) (bool, error)
	// SetUDLStudent updates the admin-writable fee-waiver flag.
	SetUDLStudent(id string, udl bool) error
	// DeleteAll removes every application and returns the count removed.
	DeleteAll() (int64, error)
}
