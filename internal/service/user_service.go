// Package service implements the transport-agnostic business logic for
// users, groups, and memberships. Both the REST and Connect bindings call
// into these services, so validation lives here and nowhere else.
package service

import (
	"context"
	"log/slog"

	"github.com/fitconnect/community/internal/domain"
	"github.com/fitconnect/community/internal/models"
	"github.com/fitconnect/community/internal/storage"
)

// UserService manages user accounts and enforces username/email uniqueness.
type UserService struct {
	store storage.UserStore
}

// NewUserService creates a UserService backed by the given store.
func NewUserService(store storage.UserStore) *UserService {
	return &UserService{store: store}
}

// CreateUser registers a new user. The email uniqueness check runs before
// the username check so a dual collision always reports the email conflict.
func (s *UserService) CreateUser(ctx context.Context, username, email string) (*models.User, error) {
	if username == "" || email == "" {
		return nil, domain.ErrValidation("username and email are required")
	}

	existing, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrConflict("a user with email %s already exists", email)
	}

	existing, err = s.store.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrConflict("a user with username %s already exists", username)
	}

	user := &models.User{
		Username: username,
		Email:    email,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	slog.Info("user created", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// GetUserProfile returns the user with the given id.
func (s *UserService) GetUserProfile(ctx context.Context, id string) (*models.User, error) {
	if id == "" {
		return nil, domain.ErrValidation("userId is required")
	}

	user, err := s.store.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound("user with ID %s not found", id)
	}

	return user, nil
}

// GetUserByEmail returns the user with the given email, or nil if no such
// user exists. Absence is not an error.
func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if email == "" {
		return nil, domain.ErrValidation("email is required")
	}
	return s.store.GetUserByEmail(ctx, email)
}

// GetUserByUsername returns the user with the given username, or nil if no
// such user exists. Absence is not an error.
func (s *UserService) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	if username == "" {
		return nil, domain.ErrValidation("username is required")
	}
	return s.store.GetUserByUsername(ctx, username)
}

// ListAllUsers returns every user, in storage order.
func (s *UserService) ListAllUsers(ctx context.Context) ([]*models.User, error) {
	return s.store.ListUsers(ctx)
}

// UserExists reports whether a user with the given id exists.
// A missing id is simply reported as false, never as an error.
func (s *UserService) UserExists(ctx context.Context, id string) (bool, error) {
	user, err := s.store.GetUserByID(ctx, id)
	if err != nil {
		return false, err
	}
	return user != nil, nil
}
