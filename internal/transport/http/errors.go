package httpserver

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shopapi/internal/logging"
	"github.com/Skotchmaster/shopapi/internal/search"
	"github.com/Skotchmaster/shopapi/internal/service"
)

// ErrorHandler renders every error as {"error": "..."}. Server errors also carry
// the underlying cause in "details".
func ErrorHandler(c echo.Context, err error) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	body := map[string]any{"error": "Internal server error"}

	var he *echo.HTTPError
	switch {
	case errors.Is(err, echo.ErrNotFound), errors.Is(err, echo.ErrMethodNotAllowed):
		code = http.StatusNotFound
		body["error"] = fmt.Sprintf("Route %s %s not found", c.Request().Method, c.Request().URL.Path)
	case errors.As(err, &he):
		code = he.Code
		if m, ok := he.Message.(string); ok {
			body["error"] = m
		} else {
			body["error"] = fmt.Sprint(he.Message)
		}
		if code >= http.StatusInternalServerError && he.Internal != nil {
			body["details"] = he.Internal.Error()
		}
	default:
		body["details"] = err.Error()
	}

	var werr error
	if c.Request().Method == http.MethodHead {
		werr = c.NoContent(code)
	} else {
		werr = c.JSON(code, body)
	}
	if werr != nil {
		logging.FromContext(c.Request().Context()).Error("write_error_response_failed", "error", werr)
	}
}

// fail maps a service error onto an HTTP error and logs it under event.
// notFound is the message used for service.ErrNotFound, internal the one for unexpected failures.
func fail(l *slog.Logger, event string, err error, notFound, internal string) error {
	var stockErr *service.InsufficientStockError
	switch {
	case errors.As(err, &stockErr):
		l.Warn(event, "status", 400, "reason", "insufficient_stock", "product_id", stockErr.ProductID, "available", stockErr.Available)
		return echo.NewHTTPError(http.StatusBadRequest, stockErr.Error())
	case errors.Is(err, service.ErrEmptyCart):
		l.Warn(event, "status", 400, "reason", "empty_cart")
		return echo.NewHTTPError(http.StatusBadRequest, service.ErrEmptyCart.Error())
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrConflict):
		l.Warn(event, "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, service.Message(err))
	case errors.Is(err, service.ErrNotFound):
		l.Warn(event, "status", 404, "error", err)
		return echo.NewHTTPError(http.StatusNotFound, notFound)
	case errors.Is(err, service.ErrUnauthorized):
		l.Warn(event, "status", 401, "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
	case errors.Is(err, service.ErrForbidden):
		l.Warn(event, "status", 403, "error", err)
		return echo.NewHTTPError(http.StatusForbidden, "Admin access required")
	case errors.Is(err, search.ErrDisabled):
		l.Warn(event, "status", 503, "reason", "search_disabled")
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Search is not configured")
	default:
		l.Error(event, "status", 500, "reason", internal, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, internal).SetInternal(err)
	}
}

func badRequest(l *slog.Logger, event, msg string, err error) error {
	l.Warn(event, "status", 400, "reason", msg, "error", err)
	return echo.NewHTTPError(http.StatusBadRequest, msg)
}
