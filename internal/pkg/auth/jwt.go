package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/questionmaster/api/internal/app/models"
)

// JWT errors
var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrExpiredToken  = errors.New("token expired")
	ErrInvalidFormat = errors.New("invalid token format")
)

// JWTConfig defines JWT configuration settings
type JWTConfig struct {
	SecretKey string
	// SecondaryKey verifies tokens minted by an external identity
	// provider during a migration window. Empty disables it.
	SecondaryKey string
	TokenExp     time.Duration
	TokenIssuer  string
}

// JWTService handles JWT operations
type JWTService struct {
	config JWTConfig
	keys   [][]byte
}

// NewJWTService creates a new JWT service
func NewJWTService(config JWTConfig) *JWTService {
	keys := [][]byte{[]byte(config.SecretKey)}
	if config.SecondaryKey != "" {
		keys = append(keys, []byte(config.SecondaryKey))
	}
	return &JWTService{
		config: config,
		keys:   keys,
	}
}

// Claims defines JWT token content. Externally issued tokens carry the
// role and display name inside a user_metadata object instead of flat
// claims, so both shapes are kept here.
type Claims struct {
	Role         string                 `json:"role,omitempty"`
	DisplayName  *string                `json:"displayName,omitempty"`
	UserMetadata map[string]interface{} `json:"user_metadata,omitempty"`
	jwt.RegisteredClaims
}

// GenerateToken creates a signed token for a user
func (s *JWTService) GenerateToken(userID uuid.UUID, role models.AppRole, displayName *string) (string, error) {
	now := time.Now()
	claims := &Claims{
		Role:        string(role),
		DisplayName: displayName,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.TokenExp)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.config.TokenIssuer,
			Subject:   userID.String(),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.keys[0])
	if err != nil {
		return "", fmt.Errorf("failed to create token: %w", err)
	}

	return signed, nil
}

// ValidateToken validates a token against the configured keys in order;
// the first key that verifies wins.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	var lastErr error
	for _, key := range s.keys {
		claims, err := s.parseWithKey(tokenString, key)
		if err == nil {
			return claims, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

func (s *JWTService) parseWithKey(tokenString string, key []byte) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return key, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}

// UserID returns the token subject as a UUID.
func (c *Claims) UserID() (uuid.UUID, error) {
	id, err := uuid.Parse(c.Subject)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	return id, nil
}

// ResolveRole extracts the role from either the flat claim or the
// user_metadata object. Unrecognized values fall back to the
// non-privileged role.
func (c *Claims) ResolveRole() models.AppRole {
	role := c.Role
	if role == "" {
		if meta, ok := c.UserMetadata["role"].(string); ok {
			role = meta
		}
	}

	if strings.EqualFold(role, string(models.RoleAdmin)) {
		return models.RoleAdmin
	}
	return models.RoleUser
}

// ResolveDisplayName extracts the display name, falling back through the
// metadata fields external issuers use.
func (c *Claims) ResolveDisplayName() *string {
	if c.DisplayName != nil {
		return c.DisplayName
	}
	for _, field := range []string{"display_name", "username", "email"} {
		if v, ok := c.UserMetadata[field].(string); ok && v != "" {
			return &v
		}
	}
	return nil
}

// ExtractBearerToken extracts the token from the Authorization header
func ExtractBearerToken(authHeader string) (string, error) {
	if authHeader == "" {
		return "", ErrInvalidFormat
	}

	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer "), nil
	}

	return "", ErrInvalidFormat
}
