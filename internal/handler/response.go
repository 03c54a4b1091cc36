package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"tracker-service/internal/apperror"
	"tracker-service/internal/middleware"
	"tracker-service/internal/model"
	"tracker-service/prometheus"
)

// respondData writes the success envelope with a payload.
func respondData(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, echo.Map{
		"success": true,
		"data":    data,
	})
}

// respondMessage writes the success envelope with a message only.
func respondMessage(c echo.Context, status int, message string) error {
	return c.JSON(status, echo.Map{
		"success": true,
		"message": message,
	})
}

// respondError is the outermost error boundary: taxonomy errors map to
// their status and client-safe message, everything else collapses to a
// logged 500 with a generic body.
func respondError(c echo.Context, log *zap.Logger, err error) error {
	switch apperror.KindOf(err) {
	case apperror.KindQuotaExceeded:
		prometheus.QuotaDeniedCounter.Inc()
	case apperror.KindAuthorization:
		prometheus.ScopeDeniedCounter.Inc()
	case apperror.KindInternal:
		log.Error("Unexpected error", zap.Error(err))
	}

	return c.JSON(apperror.Status(err), echo.Map{
		"success": false,
		"message": apperror.Message(err),
	})
}

// currentPrincipal pulls the authenticated principal off the request. When
// the auth middleware did not run it writes the 401 itself and reports
// false; the handler just returns nil.
func currentPrincipal(c echo.Context) (model.Principal, bool) {
	principal, ok := middleware.PrincipalFromContext(c)
	if !ok {
		_ = c.JSON(http.StatusUnauthorized, echo.Map{
			"success": false,
			"message": "No token provided",
		})
	}
	return principal, ok
}
