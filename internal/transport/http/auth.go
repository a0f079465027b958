package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shopapi/internal/logging"
	authmw "github.com/Skotchmaster/shopapi/internal/middleware/auth"
	"github.com/Skotchmaster/shopapi/internal/service"
	"github.com/Skotchmaster/shopapi/internal/transport"
)

// Credentials accepted by the legacy /api/login endpoint.
const (
	legacyUsername = "admin"
	legacyPassword = "password123"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "register_failed", "invalid body", err)
	}

	user, err := h.Svc.Register(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		return fail(l, "register_failed", err, "", "Registration failed")
	}

	l.Info("register_success", "user_id", user.ID)
	return c.JSON(http.StatusCreated, map[string]any{"message": "User registered successfully", "userId": user.ID})
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "login_failed", "invalid body", err)
	}

	res, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			l.Warn("login_failed", "status", 401, "reason", "invalid credentials")
			return c.JSON(http.StatusUnauthorized, map[string]any{"message": "Invalid Credentials"})
		}
		return fail(l, "login_failed", err, "", "Login failed")
	}

	l.Info("login_success", "user_id", res.User.ID)
	return c.JSON(http.StatusOK, map[string]any{
		"message": "Login Successful",
		"token":   res.Token,
		"user": transport.UserResponse{
			ID:       res.User.ID,
			Username: res.User.Username,
			Email:    res.User.Email,
			Role:     res.User.Role,
		},
	})
}

func (h *AuthHTTP) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.logout")

	if err := h.Svc.Logout(ctx, authmw.Claims(c)); err != nil {
		return fail(l, "logout_failed", err, "", "Logout failed")
	}
	return c.JSON(http.StatusOK, map[string]any{"message": "Logged out"})
}

func (h *AuthHTTP) Me(c echo.Context) error {
	claims := authmw.Claims(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authorization token required")
	}
	return c.JSON(http.StatusOK, map[string]any{
		"id":       claims.UserID,
		"username": claims.Username,
		"role":     claims.Role,
	})
}

// LegacyLogin keeps the fixed-credential login used by older UI tests.
func LegacyLogin(c echo.Context) error {
	var req transport.LegacyLoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]any{"message": "Invalid Credentials"})
	}
	if req.Username == legacyUsername && req.Password == legacyPassword {
		return c.JSON(http.StatusOK, map[string]any{"message": "Login Successful"})
	}
	return c.JSON(http.StatusUnauthorized, map[string]any{"message": "Invalid Credentials"})
}
