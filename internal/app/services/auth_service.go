package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/questionmaster/api/internal/app/models"
	"github.com/questionmaster/api/internal/app/models/dto"
	"github.com/questionmaster/api/internal/pkg/apperrors"
	"github.com/questionmaster/api/internal/pkg/auth"
	"github.com/questionmaster/api/internal/pkg/logger"
)

// AuthService defines the interface for authentication operations
type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)
	Register(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)
	RegisterAdmin(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)
}

type authServiceImpl struct {
	userService UserService
	jwtService  *auth.JWTService
}

// NewAuthService creates a new auth service instance
func NewAuthService(userService UserService, jwtService *auth.JWTService) AuthService {
	return &authServiceImpl{
		userService: userService,
		jwtService:  jwtService,
	}
}

// Login authenticates a caller. A user registered with a password is
// verified against its stored hash. Unknown emails are mirrored as demo
// principals the way an external identity provider would hand them to
// us: the role is derived from the email and no password is stored.
func (s *authServiceImpl) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userService.FindByEmail(ctx, req.Email)
	if err != nil {
		if !errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, err
		}
		user, err = s.createDemoPrincipal(ctx, req.Email, demoRole(req.Email))
		if err != nil {
			return nil, err
		}
	} else if user.PasswordHash != nil {
		if !auth.CheckPassword(*user.PasswordHash, req.Password) {
			return nil, apperrors.ErrInvalidCredentials
		}
	}

	return s.issueFor(user)
}

// Register creates a new user with a hashed password and issues a token
func (s *authServiceImpl) Register(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	return s.register(ctx, req, models.RoleUser)
}

// RegisterAdmin creates an admin user. This exists for bootstrap and
// demo setups and is not meant for production deployments.
func (s *authServiceImpl) RegisterAdmin(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	return s.register(ctx, req, models.RoleAdmin)
}

func (s *authServiceImpl) register(ctx context.Context, req dto.LoginRequest, role models.AppRole) (*dto.AuthResponse, error) {
	exists, err := s.userService.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("error checking email: %w", err)
	}
	if exists {
		return nil, apperrors.NewBusinessError(fmt.Sprintf("Email already registered: %s", req.Email))
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	displayName := displayNameFromEmail(req.Email)
	email := req.Email
	user, err := s.userService.Create(ctx, uuid.New(), &displayName, role, &email, &hash)
	if err != nil {
		return nil, err
	}

	logger.Info().Str("userID", user.ID.String()).Str("role", string(role)).Msg("User registered")
	return s.issueFor(user)
}

func (s *authServiceImpl) createDemoPrincipal(ctx context.Context, email string, role models.AppRole) (*models.User, error) {
	displayName := displayNameFromEmail(email)
	return s.userService.Create(ctx, uuid.New(), &displayName, role, &email, nil)
}

func (s *authServiceImpl) issueFor(user *models.User) (*dto.AuthResponse, error) {
	token, err := s.jwtService.GenerateToken(user.ID, user.Role, user.DisplayName)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	return &dto.AuthResponse{
		Token:       token,
		UserID:      user.ID,
		Role:        user.Role,
		DisplayName: user.DisplayName,
	}, nil
}

// demoRole grants ADMIN to demo principals whose email mentions admin
func demoRole(email string) models.AppRole {
	if strings.Contains(strings.ToLower(email), "admin") {
		return models.RoleAdmin
	}
	return models.RoleUser
}

func displayNameFromEmail(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}
