package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"tracker-service/internal/apperror"
	"tracker-service/internal/service"
	"tracker-service/pkg/logger"
	"tracker-service/prometheus"
)

// AuthHandler exposes login and the current-principal endpoint.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler builds the auth handler.
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login authenticates a subdomain/email/password triple and returns a
// session token.
func (h *AuthHandler) Login(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.LoginCounter.Inc()

	var req struct {
		Email           string `json:"email"`
		Password        string `json:"password"`
		TenantSubdomain string `json:"tenantSubdomain"`
	}

	if err := c.Bind(&req); err != nil {
		log.Warn("Failed to parse login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return respondError(c, log, apperror.Validation("Email, password and tenant subdomain are required"))
	}

	result, err := h.auth.Login(c.Request().Context(), req.TenantSubdomain, req.Email, req.Password)
	if err != nil {
		log.Warn("Login failed",
			zap.String("subdomain", req.TenantSubdomain),
			zap.String("email", req.Email))
		prometheus.RecordAuthError("invalid_credentials")
		return respondError(c, log, err)
	}

	prometheus.IncreaseActiveTokens()

	log.Info("User logged in",
		zap.Uint("user_id", result.User.ID),
		zap.Uint("tenant_id", result.User.TenantID),
		zap.String("role", result.User.Role))

	return respondData(c, http.StatusOK, echo.Map{
		"user": echo.Map{
			"id":       result.User.ID,
			"email":    result.User.Email,
			"fullName": result.User.FullName,
			"role":     result.User.Role,
			"tenantId": result.User.TenantID,
		},
		"token":     result.Token,
		"expiresIn": result.ExpiresIn,
	})
}

// Me returns the principal bound to the current request.
func (h *AuthHandler) Me(c echo.Context) error {
	principal, ok := currentPrincipal(c)
	if !ok {
		return nil
	}
	return respondData(c, http.StatusOK, principal)
}
