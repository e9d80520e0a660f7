package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/questionmaster/api/internal/app/models"
	"github.com/questionmaster/api/internal/app/models/dto"
	"github.com/questionmaster/api/internal/pkg/apperrors"
	"github.com/questionmaster/api/internal/pkg/auth"
)

// fakeUserService backs the auth service with an in-memory user set.
type fakeUserService struct {
	byEmail map[string]*models.User
}

func newFakeUserService() *fakeUserService {
	return &fakeUserService{byEmail: map[string]*models.User{}}
}

func (f *fakeUserService) Create(ctx context.Context, id uuid.UUID, displayName *string, role models.AppRole, email *string, passwordHash *string) (*models.User, error) {
	user := &models.User{ID: id, Role: role, DisplayName: displayName, Email: email, PasswordHash: passwordHash}
	if email != nil {
		if _, exists := f.byEmail[*email]; exists {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		f.byEmail[*email] = user
	}
	return user, nil
}

func (f *fakeUserService) GetOrCreate(ctx context.Context, id uuid.UUID, email, displayName *string, role models.AppRole) (*models.User, error) {
	if email != nil {
		if user, ok := f.byEmail[*email]; ok {
			return user, nil
		}
	}
	return f.Create(ctx, id, displayName, role, email, nil)
}

func (f *fakeUserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	for _, user := range f.byEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, apperrors.NewResourceNotFoundError("User not found")
}

func (f *fakeUserService) GetAll(ctx context.Context) ([]*models.User, error) { return nil, nil }

func (f *fakeUserService) UpdateRole(ctx context.Context, id uuid.UUID, role models.AppRole) (*models.User, error) {
	return nil, nil
}

func (f *fakeUserService) UpdateDisplayName(ctx context.Context, id uuid.UUID, displayName string) (*models.User, error) {
	return nil, nil
}

func (f *fakeUserService) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (f *fakeUserService) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserService) EmailExists(ctx context.Context, email string) (bool, error) {
	_, ok := f.byEmail[email]
	return ok, nil
}

func newAuthFixture() (*fakeUserService, AuthService, *auth.JWTService) {
	users := newFakeUserService()
	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret", TokenExp: time.Hour})
	return users, NewAuthService(users, jwtService), jwtService
}

func TestLoginUnknownEmailCreatesDemoUser(t *testing.T) {
	users, svc, jwtService := newAuthFixture()

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Email: "maria@example.com", Password: "whatever"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if resp.Role != models.RoleUser {
		t.Errorf("role = %s, want USER", resp.Role)
	}
	if resp.DisplayName == nil || *resp.DisplayName != "maria" {
		t.Errorf("display name = %v, want maria", resp.DisplayName)
	}
	if _, ok := users.byEmail["maria@example.com"]; !ok {
		t.Error("demo principal was not persisted")
	}

	claims, err := jwtService.ValidateToken(resp.Token)
	if err != nil {
		t.Fatalf("issued token invalid: %v", err)
	}
	if claims.ResolveRole() != models.RoleUser {
		t.Errorf("token role = %s, want USER", claims.ResolveRole())
	}
}

func TestLoginAdminEmailGetsAdminRole(t *testing.T) {
	_, svc, _ := newAuthFixture()

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Email: "site-Admin@example.com", Password: "whatever"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if resp.Role != models.RoleAdmin {
		t.Errorf("role = %s, want ADMIN", resp.Role)
	}
}

func TestLoginRegisteredUserChecksPassword(t *testing.T) {
	_, svc, _ := newAuthFixture()

	if _, err := svc.Register(context.Background(), dto.LoginRequest{Email: "joao@example.com", Password: "correct-pass"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := svc.Login(context.Background(), dto.LoginRequest{Email: "joao@example.com", Password: "correct-pass"}); err != nil {
		t.Errorf("login with correct password: %v", err)
	}

	_, err := svc.Login(context.Background(), dto.LoginRequest{Email: "joao@example.com", Password: "wrong-pass"})
	if !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Errorf("err = %v, want invalid credentials", err)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	_, svc, _ := newAuthFixture()

	req := dto.LoginRequest{Email: "ana@example.com", Password: "secret123"}
	if _, err := svc.Register(context.Background(), req); err != nil {
		t.Fatalf("first register: %v", err)
	}

	_, err := svc.Register(context.Background(), req)
	if !errors.Is(err, apperrors.ErrBusinessRule) {
		t.Fatalf("err = %v, want business rule violation", err)
	}
	if !strings.Contains(err.Error(), "ana@example.com") {
		t.Errorf("message %q should name the email", err.Error())
	}
}

func TestRegisterAdminIssuesAdminRole(t *testing.T) {
	users, svc, _ := newAuthFixture()

	resp, err := svc.RegisterAdmin(context.Background(), dto.LoginRequest{Email: "ops@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("register admin: %v", err)
	}

	if resp.Role != models.RoleAdmin {
		t.Errorf("role = %s, want ADMIN", resp.Role)
	}
	stored := users.byEmail["ops@example.com"]
	if stored == nil || stored.PasswordHash == nil {
		t.Fatal("registered admin missing stored password hash")
	}
	if !auth.CheckPassword(*stored.PasswordHash, "secret123") {
		t.Error("stored hash does not verify the password")
	}
}
