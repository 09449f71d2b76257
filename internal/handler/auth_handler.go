package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"cstdportal/internal/auth"
	apperrors "cstdportal/internal/errors"
	"cstdportal/internal/model"
	"cstdportal/internal/service"
	"cstdportal/internal/view"
)

// AuthHandler handles the authentication dialog's form submissions.
type AuthHandler struct {
	authService service.AuthService
	jwtService  *auth.JWTService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, jwtService *auth.JWTService) *AuthHandler {
	return &AuthHandler{authService: authService, jwtService: jwtService}
}

// RegisterRequest represents a registration form submission.
type RegisterRequest struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
	Role     string `form:"role" validate:"omitempty,oneof=user admin"`
}

// LoginRequest represents a login form submission.
type LoginRequest struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// ForgotRequest represents a password reset form submission.
type ForgotRequest struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// Register creates a new account. Registering never logs the visitor in; on
// success the dialog switches to login mode.
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return renderAuth(c, "register", "Please enter both username and password.", true)
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Password = strings.TrimSpace(req.Password)
	if err := c.Validate(&req); err != nil {
		return renderAuth(c, "register", "Please enter both username and password.", true)
	}

	role := model.Role(req.Role)
	if role == "" {
		role = model.RoleUser
	}

	if _, err := h.authService.Register(c.Request().Context(), req.Username, req.Password, role); err != nil {
		if errors.Is(err, apperrors.ErrDuplicateUsername) {
			return renderAuth(c, "register", "Username already exists. Please choose another one.", true)
		}
		return renderAuth(c, "register", "Registration failed. Please try again.", true)
	}

	return renderAuth(c, "login", "Registration successful! You can now login.", false)
}

// Login authenticates against the local store and, on success, sets the
// session cookie and navigates to the analysis view.
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return renderAuth(c, "login", "Please enter both username and password.", true)
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Password = strings.TrimSpace(req.Password)
	if err := c.Validate(&req); err != nil {
		return renderAuth(c, "login", "Please enter both username and password.", true)
	}

	session, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return renderAuth(c, "login", "Access Denied!", true)
	}

	if err := auth.SetSessionCookie(c, h.jwtService, session); err != nil {
		return renderAuth(c, "login", "Login failed. Please try again.", true)
	}
	return c.Redirect(http.StatusSeeOther, "/analyze")
}

// Forgot resets an account's password. Session state is unchanged.
func (h *AuthHandler) Forgot(c echo.Context) error {
	var req ForgotRequest
	if err := c.Bind(&req); err != nil {
		return renderAuth(c, "forgot", "Please enter both username and password.", true)
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Password = strings.TrimSpace(req.Password)
	if err := c.Validate(&req); err != nil {
		return renderAuth(c, "forgot", "Please enter both username and password.", true)
	}

	if err := h.authService.ResetPassword(c.Request().Context(), req.Username, req.Password); err != nil {
		if errors.Is(err, apperrors.ErrUnknownUsername) {
			return renderAuth(c, "forgot", "User not found. Please check the username.", true)
		}
		return renderAuth(c, "forgot", "Password reset failed. Please try again.", true)
	}

	return renderAuth(c, "login", "Password reset successful! You can now login with your new password.", false)
}

// Logout clears the persisted session and the cookie and returns home.
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.authService.Logout(c.Request().Context()); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "logout failed")
	}
	auth.ClearSessionCookie(c)
	return c.Redirect(http.StatusSeeOther, "/")
}

// renderAuth re-renders the authentication dialog with an inline message.
func renderAuth(c echo.Context, mode, message string, isError bool) error {
	status := http.StatusOK
	if isError {
		status = http.StatusBadRequest
	}
	return c.Render(status, "auth", view.Data{
		Session: auth.CurrentSession(c),
		Mode:    mode,
		Message: message,
		IsError: isError,
	})
}
