package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"propertyhub-api/pkg/jwtutil"
	"propertyhub-api/pkg/logger"
	"propertyhub-api/prometheus"
)

// Context keys set by AuthMiddleware for downstream handlers.
const (
	UserIDKey   = "user_id"
	EmailKey    = "email"
	UserTypeKey = "user_type"
)

// AuthMiddleware validates the JWT token from the Authorization header. An
// absent or malformed header is a 401; a token that fails verification is a
// 403 — callers may want to re-authenticate versus retry differently.
func AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromContext(c)

		// Get the Authorization header
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			log.Error("Missing Authorization header")
			prometheus.RecordAuthError("missing_token")
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Access token is required"})
		}

		// Check if it's a Bearer token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			log.Error("Invalid Authorization header format")
			prometheus.RecordAuthError("invalid_auth_format")
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Access token is required"})
		}

		// Validate the token
		claims, err := jwtutil.ValidateToken(parts[1])
		if err != nil {
			log.Error("Invalid JWT token", zap.Error(err))
			prometheus.RecordAuthError("invalid_token")
			return c.JSON(http.StatusForbidden, echo.Map{"message": "Invalid or expired token"})
		}

		// Store the session claims in context for later use
		c.Set(UserIDKey, claims.UserID)
		c.Set(EmailKey, claims.Email)
		c.Set(UserTypeKey, claims.UserType)

		// Token is valid, proceed with the request
		return next(c)
	}
}
