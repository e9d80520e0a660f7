package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/questionmaster/api/internal/app/models"
	"github.com/questionmaster/api/internal/pkg/auth"
)

func newAuthTestRouter(t *testing.T) (*gin.Engine, *AuthMiddleware, *auth.JWTService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:   "test-secret",
		TokenExp:    time.Hour,
		TokenIssuer: "questionmaster-test",
	})
	return gin.New(), NewAuthMiddleware(jwtService), jwtService
}

func bearerRequest(token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestJWTAuthStoresIdentity(t *testing.T) {
	router, m, jwtService := newAuthTestRouter(t)
	userID := uuid.New()
	name := "maria"
	token, err := jwtService.GenerateToken(userID, models.RoleAdmin, &name)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	var gotID uuid.UUID
	var gotRole models.AppRole
	var gotName string
	router.GET("/protected", m.JWTAuth(), func(c *gin.Context) {
		gotID = c.MustGet(ContextUserID).(uuid.UUID)
		gotRole = c.MustGet(ContextUserRole).(models.AppRole)
		gotName = c.GetString(ContextDisplayName)
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, bearerRequest(token))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotID != userID {
		t.Errorf("expected user id %s, got %s", userID, gotID)
	}
	if gotRole != models.RoleAdmin {
		t.Errorf("expected ADMIN role, got %s", gotRole)
	}
	if gotName != "maria" {
		t.Errorf("expected display name maria, got %q", gotName)
	}
}

func TestJWTAuthRejectsMissingToken(t *testing.T) {
	router, m, _ := newAuthTestRouter(t)
	router.GET("/protected", m.JWTAuth(), func(c *gin.Context) {
		t.Fatal("handler must not run without a token")
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, bearerRequest(""))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestJWTAuthRejectsExpiredToken(t *testing.T) {
	router, m, _ := newAuthTestRouter(t)
	expired := auth.NewJWTService(auth.JWTConfig{
		SecretKey:   "test-secret",
		TokenExp:    -time.Minute,
		TokenIssuer: "questionmaster-test",
	})
	token, err := expired.GenerateToken(uuid.New(), models.RoleUser, nil)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	router.GET("/protected", m.JWTAuth(), func(c *gin.Context) {
		t.Fatal("handler must not run with an expired token")
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, bearerRequest(token))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if body := rec.Body.String(); !strings.Contains(body, "Token has expired") {
		t.Errorf("expected expiry message, got %s", body)
	}
}

func TestOptionalAuthAllowsAnonymous(t *testing.T) {
	router, m, _ := newAuthTestRouter(t)
	router.GET("/protected", m.OptionalAuth(), func(c *gin.Context) {
		if _, exists := c.Get(ContextUserID); exists {
			t.Error("anonymous request must not carry a user id")
		}
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, bearerRequest(""))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestOptionalAuthRejectsBadToken(t *testing.T) {
	router, m, _ := newAuthTestRouter(t)
	router.GET("/protected", m.OptionalAuth(), func(c *gin.Context) {
		t.Fatal("handler must not run with a malformed token")
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, bearerRequest("not-a-jwt"))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRoleRequired(t *testing.T) {
	router, m, jwtService := newAuthTestRouter(t)
	router.GET("/protected", m.JWTAuth(), m.RoleRequired(models.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	userToken, err := jwtService.GenerateToken(uuid.New(), models.RoleUser, nil)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	adminToken, err := jwtService.GenerateToken(uuid.New(), models.RoleAdmin, nil)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, bearerRequest(userToken))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for USER role, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, bearerRequest(adminToken))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for ADMIN role, got %d", rec.Code)
	}
}
