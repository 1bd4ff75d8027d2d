package services

import (
	"context"
	"errors"
	"strings"

	"github.com/beshgebeya/pos/app/models"
	"github.com/beshgebeya/pos/app/repositories"
	"github.com/beshgebeya/pos/pkg/auth"
	"github.com/beshgebeya/pos/pkg/logger"
)

// SignupInput carries a new operator's details.
type SignupInput struct {
	Username string
	Email    string
	Password string
	Name     string
}

// AuthService manages operator accounts and access tokens.
type AuthService struct {
	store         repositories.Store
	defaultBranch uint
}

func NewAuthService(store repositories.Store, defaultBranch uint) *AuthService {
	return &AuthService{store: store, defaultBranch: defaultBranch}
}

// Signup creates an operator at the default branch. The first account
// ever created is the administrator.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.ToLower(strings.TrimSpace(in.Email))

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: hash,
		Name:     strings.TrimSpace(in.Name),
		BranchID: s.defaultBranch,
	}

	err = s.store.Transaction(ctx, func(tx repositories.Store) error {
		if _, err := tx.Users().FindByUsername(ctx, username); err == nil {
			return ErrUsernameTaken
		} else if !errors.Is(err, repositories.ErrNotFound) {
			return err
		}

		n, err := tx.Users().Count(ctx)
		if err != nil {
			return err
		}
		user.IsAdmin = n == 0

		if err := tx.Users().Create(ctx, user); err != nil {
			if isUniqueViolation(err) {
				return ErrEmailTaken
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.WithCtx(ctx).Info("user registered", "user_id", user.ID, "admin", user.IsAdmin)
	return user, nil
}

// Login verifies credentials and returns an access token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	user, err := s.store.Users().FindByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, repositories.ErrNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}

	if !auth.CheckPassword(user.Password, password) {
		logger.WithCtx(ctx).Warn("login failed", "username", user.Username)
		return "", nil, ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, user.Role(), user.BranchID)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Profile returns the operator with their branch.
func (s *AuthService) Profile(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.store.Users().FindByID(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}

// isUniqueViolation recognises duplicate-key errors across the supported
// drivers by message, since each driver wraps them in its own type.
func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}
