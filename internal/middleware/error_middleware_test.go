package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/questionmaster/api/internal/pkg/apperrors"
)

func newErrorTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/questions/1", nil)
	return c, rec
}

func TestHandleAPIErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"not found", apperrors.NewResourceNotFoundError("Question not found"), http.StatusNotFound, "Question not found"},
		{"business rule", apperrors.NewBusinessError("Question is not active"), http.StatusBadRequest, "Question is not active"},
		{"invalid credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
		{"token expired", apperrors.ErrTokenExpired, http.StatusUnauthorized, "Token has expired"},
		{"token invalid", apperrors.ErrTokenInvalid, http.StatusUnauthorized, "Invalid token"},
		{"forbidden", apperrors.NewForbiddenError("Admin role required"), http.StatusForbidden, "Admin role required"},
		{"unknown", errors.New("connection reset"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newErrorTestContext(t)
			HandleAPIError(c, tc.err)

			if rec.Code != tc.wantStatus {
				t.Fatalf("expected status %d, got %d", tc.wantStatus, rec.Code)
			}
			var body struct {
				Message string `json:"message"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body.Message != tc.wantMsg {
				t.Fatalf("expected message %q, got %q", tc.wantMsg, body.Message)
			}
		})
	}
}

func TestHandleAPIErrorValidationFields(t *testing.T) {
	c, rec := newErrorTestContext(t)
	HandleAPIError(c, apperrors.NewValidationError("Validation failed").WithFields(map[string]string{
		"alternatives": "Exactly one alternative must be correct",
	}))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var body struct {
		Message string            `json:"message"`
		Errors  map[string]string `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Errors["alternatives"] != "Exactly one alternative must be correct" {
		t.Fatalf("expected field message, got %v", body.Errors)
	}
}

func TestHandleValidationErrorFieldMap(t *testing.T) {
	c, rec := newErrorTestContext(t)
	var req struct {
		Email string `validate:"required,email"`
	}
	req.Email = "not-an-email"
	err := validator.New().Struct(req)
	if err == nil {
		t.Fatal("expected a validation error")
	}
	HandleValidationError(c, err)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var body struct {
		Errors map[string]string `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Errors["Email"] != "Email must be a valid email address" {
		t.Fatalf("unexpected field map %v", body.Errors)
	}
}

func TestHandleValidationError(t *testing.T) {
	c, rec := newErrorTestContext(t)
	HandleValidationError(c, errors.New("Key: 'LoginRequest.Email' Error:Field validation"))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Message == "" || body.Message[:16] != "Invalid request:" {
		t.Fatalf("unexpected message %q", body.Message)
	}
}
