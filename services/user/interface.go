package user

import (
	userRepo "podium/database/repository/user"

	"go.uber.org/zap"
)

// AuthResponse contains the account ID, session token and role bit.
type AuthResponse struct {
	ID      string `json:"id"`
	Token   string `json:"token"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}

// UserService manages portal accounts and sessions.
type UserService interface {
	// RegisterUser creates an account and opens a session.
	RegisterUser(email, password string) (*AuthResponse, error)
	// AuthenticateUser verifies credentials and opens a fresh session,
	// invalidating any previous token for the account.
	AuthenticateUser(email, password string) (*AuthResponse, error)
	// RevokeAuthToken ends the account's session.
	RevokeAuthToken(userID string) error
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo   userRepo.UserRepository
	Logger *zap.Logger
}
