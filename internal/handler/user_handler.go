package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"tracker-service/internal/service"
	"tracker-service/pkg/logger"
)

// UserHandler lists the caller's tenant users, mainly for assignee pickers.
type UserHandler struct {
	users *service.UserService
}

// NewUserHandler builds the user handler.
func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// List returns a page of the caller's tenant users.
func (h *UserHandler) List(c echo.Context) error {
	log := logger.FromContext(c)

	principal, ok := currentPrincipal(c)
	if !ok {
		return nil
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	list, err := h.users.List(c.Request().Context(), principal, page, limit)
	if err != nil {
		return respondError(c, log, err)
	}

	return respondData(c, http.StatusOK, echo.Map{
		"users":      list.Users,
		"pagination": list.Pagination,
	})
}
