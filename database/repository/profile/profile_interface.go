package profileRepo

import "podium/models"

// ProfileRepository defines methods for profile data access.
type ProfileRepository interface {
	// GetByUserID retrieves the profile owned by a user. Returns nil, nil when
	// the user has no profile yet.
	GetByUserID(userID string) (*models.Profile, error)
	// Upsert creates or replaces the profile owned by profile.UserID.
	Upsert(profile *models.Profile) error
}
