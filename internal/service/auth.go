package service

import (
	"context"
	"fmt"

	"wordlearner/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// AuthService handles authentication logic
type AuthService struct {
	userRepo     repository.UserRepository
	passwordHash []byte
}

// NewAuthService creates a new auth service. Only a bcrypt hash of
// botPassword is kept; an empty password rejects everyone.
func NewAuthService(userRepo repository.UserRepository, botPassword string) (*AuthService, error) {
	s := &AuthService{userRepo: userRepo}
	if botPassword == "" {
		return s, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(botPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash bot password: %w", err)
	}
	s.passwordHash = hash
	return s, nil
}

// CheckPassword verifies if provided password matches
func (s *AuthService) CheckPassword(password string) bool {
	if password == "" || s.passwordHash == nil {
		return false
	}
	return bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)) == nil
}

// IsAuthorized checks if user is authorized
func (s *AuthService) IsAuthorized(ctx context.Context, userID int64) (bool, error) {
	return s.userRepo.IsAuthorized(ctx, userID)
}

// AuthorizeUser authorizes a user
func (s *AuthService) AuthorizeUser(ctx context.Context, userID int64) error {
	return s.userRepo.AuthorizeUser(ctx, userID)
}

// EnsureUserExists creates user record if doesn't exist
func (s *AuthService) EnsureUserExists(ctx context.Context, userID int64) error {
	return s.userRepo.EnsureUserExists(ctx, userID)
}
