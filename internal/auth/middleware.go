package auth

import (
	"net/http"
	"strings"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"tripcraft/internal/errors"
	"tripcraft/internal/logging"
)

const (
	contextKey   = "auth.claims"
	bearerPrefix = "Bearer "
)

// Middleware admits only requests carrying a valid "Authorization: Bearer <token>" header.
// Verified claims are available to handlers through UserIDFromContext.
func Middleware(s *JWTService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  contextKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":" + bearerPrefix,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return s.ValidateToken(token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			l := logging.FromContext(c.Request().Context())
			if !hasBearerToken(header) {
				l.Warn("auth_rejected", "reason", "missing_token")
				return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
					Message: "No token provided",
					Code:    "TOKEN_MISSING",
				})
			}
			l.Warn("auth_rejected", "reason", "invalid_token", "error", err)
			return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
				Message: "Invalid token",
				Code:    "TOKEN_INVALID",
			})
		},
	})
}

// hasBearerToken matches the scheme case-insensitively, like echo-jwt does.
func hasBearerToken(header string) bool {
	if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return false
	}
	return strings.TrimSpace(header[len(bearerPrefix):]) != ""
}

// ClaimsFromContext returns the claims stored by Middleware.
func ClaimsFromContext(c echo.Context) (*Claims, bool) {
	claims, ok := c.Get(contextKey).(*Claims)
	return claims, ok
}

// UserIDFromContext returns the authenticated user id stored by Middleware.
func UserIDFromContext(c echo.Context) (uint, bool) {
	claims, ok := ClaimsFromContext(c)
	if !ok {
		return 0, false
	}
	return claims.UserID, true
}
