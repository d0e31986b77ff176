package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "recordshop/internal/errors"
	"recordshop/internal/middleware"
	"recordshop/internal/model"
	"recordshop/internal/policy"
	"recordshop/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is the public profile plus the bearer token for the session.
type LoginResponse struct {
	ID        uint       `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      model.Role `json:"role"`
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expiresAt"`
}

// MeResponse describes the signed-in user.
type MeResponse struct {
	ID    uint       `json:"id"`
	Name  string     `json:"name"`
	Email string     `json:"email"`
	Role  model.Role `json:"role"`
	Title string     `json:"title"`
}

// MessageResponse carries a single human-readable message.
type MessageResponse struct {
	Message string `json:"message"`
}

// Login godoc
// @Summary Login staff member
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Message: "invalid request body",
			Code:    "INVALID_BODY",
		})
	}

	if err := c.Validate(&req); err != nil {
		return invalid(err)
	}

	result, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, LoginResponse{
		ID:        result.Profile.ID,
		Name:      result.Profile.Name,
		Email:     result.Profile.Email,
		Role:      result.Profile.Role,
		Token:     result.Token,
		ExpiresAt: result.Session.ExpiresAt,
	})
}

// Logout godoc
// @Summary Logout staff member
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	session, ok := middleware.CurrentSession(c)
	if !ok {
		return fail(c, apperrors.ErrSessionInvalid)
	}

	if err := h.authService.Logout(c.Request().Context(), session.ID); err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Logged out."})
}

// Me godoc
// @Summary Current staff member
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} MeResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	session, ok := middleware.CurrentSession(c)
	if !ok {
		return fail(c, apperrors.ErrSessionInvalid)
	}

	return c.JSON(http.StatusOK, MeResponse{
		ID:    session.UserID,
		Name:  session.Name,
		Email: session.Email,
		Role:  session.Role,
		Title: policy.AssignmentTitle(session.Role),
	})
}
