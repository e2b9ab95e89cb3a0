package userRepo

import "podium/models"

// UserRepository defines methods for user data access.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID.
	GetByID(id string) (*models.User, error)
	// GetByEmail retrieves a user by its email address. Returns nil, nil when
	// no user exists for the address.
	GetByEmail(email string) (*models.User, error)
	// Create inserts a new user record.
	Create(user *models.User) error
	// UpdateTokenHash stores the hash of the user's active session token.
	// An empty hash revokes the session.
	UpdateTokenHash(id, tokenHash string) error
}
