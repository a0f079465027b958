package auth

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shopapi/internal/logging"
	"github.com/Skotchmaster/shopapi/internal/service"
	"github.com/Skotchmaster/shopapi/internal/tokens"
)

const (
	CtxClaims = "claims"
	CtxUserID = "user_id"
	CtxRole   = "role"
)

// Authenticator is satisfied by *service.AuthService.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*tokens.AccessClaims, error)
}

func bearer(c echo.Context) string {
	h := c.Request().Header.Get(echo.HeaderAuthorization)
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// Middleware requires a valid bearer token and stores its claims in the echo context.
func Middleware(auth Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			token := bearer(c)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authorization token required")
			}

			claims, err := auth.Authenticate(ctx, token)
			if err != nil {
				if !errors.Is(err, service.ErrUnauthorized) {
					logging.FromContext(ctx).Error("authenticate_failed", "error", err)
					return echo.NewHTTPError(http.StatusInternalServerError, "Authentication failed").SetInternal(err)
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
			}

			c.Set(CtxClaims, claims)
			c.Set(CtxUserID, claims.UserID)
			c.Set(CtxRole, claims.Role)
			return next(c)
		}
	}
}

func RequireRole(required ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(CtxRole).(string)
			if role == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authorization token required")
			}
			if !slices.Contains(required, role) {
				return echo.NewHTTPError(http.StatusForbidden, "Admin access required")
			}
			return next(c)
		}
	}
}

// Claims returns the claims stored by Middleware, or nil on an unauthenticated route.
func Claims(c echo.Context) *tokens.AccessClaims {
	claims, _ := c.Get(CtxClaims).(*tokens.AccessClaims)
	return claims
}
