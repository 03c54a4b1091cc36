package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"tracker-service/internal/model"
	"tracker-service/pkg/jwtutil"
	"tracker-service/pkg/logger"
	"tracker-service/prometheus"
)

// principalKey is the single context key the normalized principal lives
// under. Handlers read it back only through PrincipalFromContext, so the
// claim-to-principal field mapping happens in exactly one place.
const principalKey = "principal"

// AuthMiddleware validates the Bearer token from the Authorization header
// and attaches the normalized principal to the request context before any
// handler runs.
func AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromContext(c)

		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			log.Warn("Missing Authorization header")
			prometheus.RecordAuthError("missing_token")
			return c.JSON(http.StatusUnauthorized, echo.Map{
				"success": false,
				"message": "No token provided",
			})
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			log.Warn("Invalid Authorization header format")
			prometheus.RecordAuthError("invalid_auth_format")
			return c.JSON(http.StatusUnauthorized, echo.Map{
				"success": false,
				"message": "No token provided",
			})
		}

		principal, err := jwtutil.ValidateToken(parts[1])
		if err != nil {
			if errors.Is(err, jwtutil.ErrTokenExpired) {
				log.Warn("Expired JWT token")
				prometheus.RecordAuthError("token_expired")
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"success": false,
					"message": "Token expired",
				})
			}
			log.Warn("Invalid JWT token", zap.Error(err))
			prometheus.RecordAuthError("invalid_token")
			return c.JSON(http.StatusUnauthorized, echo.Map{
				"success": false,
				"message": "Invalid token",
			})
		}

		c.Set(principalKey, *principal)

		log.Debug("Request authenticated",
			zap.Uint("subject_id", principal.SubjectID),
			zap.Uint("tenant_id", principal.TenantID),
			zap.String("role", principal.Role))

		return next(c)
	}
}

// PrincipalFromContext returns the principal the auth middleware attached
// to the request.
func PrincipalFromContext(c echo.Context) (model.Principal, bool) {
	principal, ok := c.Get(principalKey).(model.Principal)
	return principal, ok
}
