package user

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"podium/models"
	"podium/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const sessionDuration = 24 * time.Hour

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// verifyPasswordComplexity checks that the password contains at least one
// lowercase letter, one uppercase letter and one digit.
func verifyPasswordComplexity(pw string) error {
	var (
		hasMinLen = len(pw) >= 8
		hasUpper  = regexp.MustCompile(`[A-Z]`).MatchString(pw)
		hasLower  = regexp.MustCompile(`[a-z]`).MatchString(pw)
		hasNumber = regexp.MustCompile(`[0-9]`).MatchString(pw)
	)
	if !hasMinLen {
		return fmt.Errorf("password must be at least 8 characters long")
	}
	if !hasUpper {
		return fmt.Errorf("password must include at least one uppercase letter")
	}
	if !hasLower {
		return fmt.Errorf("password must include at least one lowercase letter")
	}
	if !hasNumber {
		return fmt.Errorf("password must include at least one number")
	}
	return nil
}

// RegisterUser creates a new account, generates a token and stores its hash.
func (s *DefaultUserService) RegisterUser(email, password string) (*AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, fmt.Errorf("email and password are required")
	}
	if !emailPattern.MatchString(email) {
		return nil, fmt.Errorf("invalid email address")
	}
	if err := verifyPasswordComplexity(password); err != nil {
		return nil, err
	}

	existing, err := s.Repo.GetByEmail(email)
	if err != nil {
		s.Logger.Error("failed to check for existing user", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.Logger.Error("failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	now := time.Now()
	account := models.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hashedPassword),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Create(&account); err != nil {
		s.Logger.Error("failed to create user", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	return s.openSession(&account)
}

// AuthenticateUser verifies credentials, generates a new token and updates
// the stored token hash. Any previous session token stops validating.
func (s *DefaultUserService) AuthenticateUser(email, password string) (*AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	account, err := s.Repo.GetByEmail(email)
	if err != nil {
		s.Logger.Error("failed to fetch user for authentication", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if account == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.openSession(account)
}

// RevokeAuthToken clears the token hash from the database and removes the
// corresponding cache entry.
func (s *DefaultUserService) RevokeAuthToken(userID string) error {
	account, err := s.Repo.GetByID(userID)
	if err != nil {
		s.Logger.Error("failed to retrieve user", zap.String("userId", userID), zap.Error(err))
		return fmt.Errorf("failed to logout, please try again")
	}
	if account == nil {
		return fmt.Errorf("user not found")
	}

	if err := s.Repo.UpdateTokenHash(userID, ""); err != nil {
		s.Logger.Error("failed to revoke auth token", zap.String("userId", userID), zap.Error(err))
		return fmt.Errorf("failed to logout, please try again")
	}

	s.clearAuthCache(userID)
	return nil
}

func (s *DefaultUserService) openSession(account *models.User) (*AuthResponse, error) {
	token, err := utils.GenerateToken(account.ID, account.Email, sessionDuration)
	if err != nil {
		s.Logger.Error("failed to generate auth token", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}

	if err := s.Repo.UpdateTokenHash(account.ID, utils.HashToken(token)); err != nil {
		s.Logger.Error("failed to store token hash", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}

	s.clearAuthCache(account.ID)

	return &AuthResponse{
		ID:      account.ID,
		Token:   token,
		Email:   account.Email,
		IsAdmin: account.IsAdmin,
	}, nil
}

func (s *DefaultUserService) clearAuthCache(userID string) {
	cacheKey := utils.AuthCachePrefix + userID
	authCache := utils.GetAuthCacheClient()
	if err := authCache.Del(context.Background(), cacheKey).Err(); err != nil {
		s.Logger.Error("failed to clear auth cache", zap.Error(err))
	}
}
