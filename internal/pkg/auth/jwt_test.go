package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/questionmaster/api/internal/app/models"
)

func newTestService(exp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:   "test-secret",
		TokenExp:    exp,
		TokenIssuer: "questionmaster-test",
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestService(time.Hour)
	userID := uuid.New()
	displayName := "maria"

	token, err := svc.GenerateToken(userID, models.RoleAdmin, &displayName)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}

	gotID, err := claims.UserID()
	if err != nil {
		t.Fatalf("claims user id: %v", err)
	}
	if gotID != userID {
		t.Errorf("user id = %s, want %s", gotID, userID)
	}
	if got := claims.ResolveRole(); got != models.RoleAdmin {
		t.Errorf("role = %s, want %s", got, models.RoleAdmin)
	}
	if got := claims.ResolveDisplayName(); got == nil || *got != displayName {
		t.Errorf("display name = %v, want %s", got, displayName)
	}
	if claims.Issuer != "questionmaster-test" {
		t.Errorf("issuer = %s, want questionmaster-test", claims.Issuer)
	}
}

func TestValidateTokenExpired(t *testing.T) {
	svc := newTestService(-time.Minute)

	token, err := svc.GenerateToken(uuid.New(), models.RoleUser, nil)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	if _, err := svc.ValidateToken(token); err != ErrExpiredToken {
		t.Errorf("err = %v, want %v", err, ErrExpiredToken)
	}
}

func TestValidateTokenWrongKey(t *testing.T) {
	svc := newTestService(time.Hour)
	other := NewJWTService(JWTConfig{SecretKey: "other-secret", TokenExp: time.Hour})

	token, err := other.GenerateToken(uuid.New(), models.RoleUser, nil)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	if _, err := svc.ValidateToken(token); err != ErrInvalidToken {
		t.Errorf("err = %v, want %v", err, ErrInvalidToken)
	}
}

func TestValidateTokenSecondaryKey(t *testing.T) {
	// A service holding the old key as secondary must still accept
	// tokens the old issuer minted.
	oldIssuer := NewJWTService(JWTConfig{SecretKey: "old-secret", TokenExp: time.Hour})
	svc := NewJWTService(JWTConfig{
		SecretKey:    "new-secret",
		SecondaryKey: "old-secret",
		TokenExp:     time.Hour,
	})

	token, err := oldIssuer.GenerateToken(uuid.New(), models.RoleUser, nil)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	if _, err := svc.ValidateToken(token); err != nil {
		t.Errorf("validate with secondary key: %v", err)
	}
}

func TestResolveRoleFromMetadata(t *testing.T) {
	tests := []struct {
		name   string
		claims Claims
		want   models.AppRole
	}{
		{"flat admin", Claims{Role: "ADMIN"}, models.RoleAdmin},
		{"flat lowercase", Claims{Role: "admin"}, models.RoleAdmin},
		{"metadata admin", Claims{UserMetadata: map[string]interface{}{"role": "ADMIN"}}, models.RoleAdmin},
		{"metadata user", Claims{UserMetadata: map[string]interface{}{"role": "USER"}}, models.RoleUser},
		{"unknown value", Claims{Role: "SUPERUSER"}, models.RoleUser},
		{"empty", Claims{}, models.RoleUser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.claims.ResolveRole(); got != tt.want {
				t.Errorf("ResolveRole() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestResolveDisplayNameFallback(t *testing.T) {
	name := "joao"
	flat := Claims{DisplayName: &name}
	if got := flat.ResolveDisplayName(); got == nil || *got != "joao" {
		t.Errorf("flat display name = %v, want joao", got)
	}

	meta := Claims{UserMetadata: map[string]interface{}{"username": "joao_m"}}
	if got := meta.ResolveDisplayName(); got == nil || *got != "joao_m" {
		t.Errorf("metadata display name = %v, want joao_m", got)
	}

	empty := Claims{}
	if got := empty.ResolveDisplayName(); got != nil {
		t.Errorf("empty display name = %v, want nil", got)
	}
}

func TestValidateTokenRejectsWrongAlg(t *testing.T) {
	svc := newTestService(time.Hour)

	// alg=none token with well-formed claims
	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   uuid.New().String(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	unsigned, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none token: %v", err)
	}

	if _, err := svc.ValidateToken(unsigned); err != ErrInvalidToken {
		t.Errorf("err = %v, want %v", err, ErrInvalidToken)
	}
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc.def.ghi")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if token != "abc.def.ghi" {
		t.Errorf("token = %q, want abc.def.ghi", token)
	}

	if _, err := ExtractBearerToken(""); err != ErrInvalidFormat {
		t.Errorf("empty header err = %v, want %v", err, ErrInvalidFormat)
	}
	if _, err := ExtractBearerToken("abc.def.ghi"); err != ErrInvalidFormat {
		t.Errorf("missing prefix err = %v, want %v", err, ErrInvalidFormat)
	}
}
