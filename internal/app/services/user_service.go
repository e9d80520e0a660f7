package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/questionmaster/api/internal/app/models"
	"github.com/questionmaster/api/internal/pkg/apperrors"
	"github.com/questionmaster/api/internal/pkg/logger"
)

// userStore is the persistence surface the user service needs
type userStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	GetAll(ctx context.Context) ([]*models.User, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role models.AppRole) error
	UpdateDisplayName(ctx context.Context, id uuid.UUID, displayName string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// UserService defines the interface for user directory operations
type UserService interface {
	Create(ctx context.Context, id uuid.UUID, displayName *string, role models.AppRole, email *string, passwordHash *string) (*models.User, error)
	GetOrCreate(ctx context.Context, id uuid.UUID, email, displayName *string, role models.AppRole) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetAll(ctx context.Context) ([]*models.User, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role models.AppRole) (*models.User, error)
	UpdateDisplayName(ctx context.Context, id uuid.UUID, displayName string) (*models.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

type userServiceImpl struct {
	users userStore
}

// NewUserService creates a new user service instance
func NewUserService(users userStore) UserService {
	return &userServiceImpl{users: users}
}

// Create creates a new user with a caller-assigned id
func (s *userServiceImpl) Create(ctx context.Context, id uuid.UUID, displayName *string, role models.AppRole, email *string, passwordHash *string) (*models.User, error) {
	user := &models.User{
		ID:           id,
		Role:         role,
		DisplayName:  displayName,
		Email:        email,
		PasswordHash: passwordHash,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	logger.Info().Str("userID", user.ID.String()).Str("role", string(user.Role)).Msg("User created")
	return user, nil
}

// GetOrCreate returns the user with the given id, creating it first when
// an externally authenticated principal is not yet mirrored locally
func (s *userServiceImpl) GetOrCreate(ctx context.Context, id uuid.UUID, email, displayName *string, role models.AppRole) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return s.Create(ctx, id, displayName, role, email, nil)
}

// GetByID retrieves a user by id
func (s *userServiceImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("User not found with id: %s", id))
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}
	return user, nil
}

// GetAll retrieves all users
func (s *userServiceImpl) GetAll(ctx context.Context) ([]*models.User, error) {
	users, err := s.users.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving users: %w", err)
	}
	return users, nil
}

// UpdateRole changes a user's role and returns the updated user
func (s *userServiceImpl) UpdateRole(ctx context.Context, id uuid.UUID, role models.AppRole) (*models.User, error) {
	if role != models.RoleUser && role != models.RoleAdmin {
		return nil, apperrors.NewValidationError(fmt.Sprintf("Invalid role: %s", role))
	}

	if err := s.users.UpdateRole(ctx, id, role); err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("User not found with id: %s", id))
		}
		return nil, fmt.Errorf("error updating user role: %w", err)
	}

	logger.Info().Str("userID", id.String()).Str("role", string(role)).Msg("User role updated")
	return s.GetByID(ctx, id)
}

// UpdateDisplayName changes a user's display name and returns the updated user
func (s *userServiceImpl) UpdateDisplayName(ctx context.Context, id uuid.UUID, displayName string) (*models.User, error) {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return nil, apperrors.NewValidationError("Display name cannot be empty")
	}

	if err := s.users.UpdateDisplayName(ctx, id, displayName); err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("User not found with id: %s", id))
		}
		return nil, fmt.Errorf("error updating display name: %w", err)
	}

	return s.GetByID(ctx, id)
}

// Delete removes a user
func (s *userServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return apperrors.NewResourceNotFoundError(fmt.Sprintf("User not found with id: %s", id))
		}
		return fmt.Errorf("error deleting user: %w", err)
	}

	logger.Info().Str("userID", id.String()).Msg("User deleted")
	return nil
}

// FindByEmail retrieves a user by email
func (s *userServiceImpl) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user by email: %w", err)
	}
	return user, nil
}

// EmailExists checks whether a user with the email exists
func (s *userServiceImpl) EmailExists(ctx context.Context, email string) (bool, error) {
	return s.users.EmailExists(ctx, email)
}
