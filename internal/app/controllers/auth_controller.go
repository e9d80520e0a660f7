package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/questionmaster/api/internal/app/models/dto"
	"github.com/questionmaster/api/internal/app/services"
	"github.com/questionmaster/api/internal/middleware"
)

// AuthController handles authentication operations
type AuthController struct {
	authService services.AuthService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Login authenticates a user and issues a JWT
// @Summary Log in
// @Description Authenticates with email and password and returns a signed token. Unknown emails are accepted as demo accounts.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.AuthResponse "Authentication succeeded"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	resp, err := c.authService.Login(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// Register creates a regular user account
// @Summary Register
// @Description Registers a new user with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 201 {object} dto.AuthResponse "Account created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or email already registered"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	resp, err := c.authService.Register(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, resp)
}

// RegisterAdmin creates an administrator account. Bootstrap capability,
// kept open like the login endpoint.
// @Summary Register an admin
// @Description Registers a new administrator with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 201 {object} dto.AuthResponse "Account created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or email already registered"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/admin [post]
func (c *AuthController) RegisterAdmin(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	resp, err := c.authService.RegisterAdmin(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, resp)
}
