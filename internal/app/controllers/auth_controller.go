package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dawitf/ece-backend/internal/app/models/dto"
	"github.com/dawitf/ece-backend/internal/app/services"
	"github.com/dawitf/ece-backend/internal/middleware"
	"github.com/dawitf/ece-backend/internal/pkg/apperrors"
)

// AuthController handles authentication endpoints
type AuthController struct {
	authService *services.AuthService
}

// NewAuthController creates a new authentication controller
func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Login authenticates a non-student user and returns a token.
func (ac *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewValidationError("email and password are required"))
		return
	}

	token, err := ac.authService.Login(c.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(dto.TokenResponse{Token: token}))
}

// LoginStudent authenticates a student with the passwordless pair.
func (ac *AuthController) LoginStudent(c *gin.Context) {
	var req dto.StudentLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewValidationError("idNumber and firstName are required"))
		return
	}

	token, err := ac.authService.LoginStudent(c.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(dto.TokenResponse{Token: token}))
}

// ChangePassword replaces the acting user's password.
func (ac *AuthController) ChangePassword(c *gin.Context) {
	actor, ok := middleware.IdentityFromContext(c)
	if !ok {
		middleware.HandleAPIError(c, apperrors.ErrUnauthenticated)
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewValidationError("oldPassword and newPassword are required"))
		return
	}

	if err := ac.authService.ChangePassword(c.Request.Context(), actor, req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewMessageResponse("password changed"))
}

// ForgotPassword starts the password-reset flow.
func (ac *AuthController) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewValidationError("email is required"))
		return
	}

	if err := ac.authService.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewMessageResponse("reset link sent"))
}

// ResetPassword completes the password-reset flow.
func (ac *AuthController) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewValidationError("token and newPassword are required"))
		return
	}

	if err := ac.authService.ResetPassword(c.Request.Context(), req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewMessageResponse("password reset"))
}

// CheckAuthStatus echoes the verified token's identity and scope. The
// authorization middleware has already done the verification by the
// time this runs.
func (ac *AuthController) CheckAuthStatus(c *gin.Context) {
	actor, ok := middleware.IdentityFromContext(c)
	if !ok {
		middleware.HandleAPIError(c, apperrors.ErrUnauthenticated)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(dto.IdentityResponse{
		UserID:   actor.UserID,
		RoleID:   int64(actor.Role),
		BatchIDs: actor.BatchIDs,
		StreamID: actor.StreamID,
	}))
}
