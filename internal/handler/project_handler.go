package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"tracker-service/internal/apperror"
	"tracker-service/internal/service"
	"tracker-service/pkg/logger"
	"tracker-service/prometheus"
)

// ProjectHandler exposes the project CRUD endpoints.
type ProjectHandler struct {
	projects *service.ProjectService
}

// NewProjectHandler builds the project handler.
func NewProjectHandler(projects *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

// Create adds a project to the caller's tenant, subject to the plan quota.
func (h *ProjectHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordProjectOperation("create")

	principal, ok := currentPrincipal(c)
	if !ok {
		return nil
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.Bind(&req); err != nil {
		log.Warn("Failed to parse project request", zap.Error(err))
		return respondError(c, log, apperror.Validation("Invalid request data"))
	}

	project, err := h.projects.Create(c.Request().Context(), principal, service.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return respondError(c, log, err)
	}

	log.Info("Project created",
		zap.Uint("project_id", project.ID),
		zap.Uint("tenant_id", project.TenantID))

	return respondData(c, http.StatusCreated, project)
}

// List returns a page of the caller's projects.
func (h *ProjectHandler) List(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordProjectOperation("list")

	principal, ok := currentPrincipal(c)
	if !ok {
		return nil
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	list, err := h.projects.List(c.Request().Context(), principal, page, limit)
	if err != nil {
		return respondError(c, log, err)
	}

	return respondData(c, http.StatusOK, echo.Map{
		"projects":   list.Projects,
		"pagination": list.Pagination,
	})
}

// Get returns one project.
func (h *ProjectHandler) Get(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordProjectOperation("get")

	principal, ok := currentPrincipal(c)
	if !ok {
		return nil
	}

	id, err := strconv.ParseUint(c.Param("projectId"), 10, 32)
	if err != nil {
		return respondError(c, log, apperror.Validation("Invalid project ID"))
	}

	project, err := h.projects.Get(c.Request().Context(), principal, uint(id))
	if err != nil {
		return respondError(c, log, err)
	}

	return respondData(c, http.StatusOK, project)
}

// Update applies a partial update to a project.
func (h *ProjectHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordProjectOperation("update")

	principal, ok := currentPrincipal(c)
	if !ok {
		return nil
	}

	id, err := strconv.ParseUint(c.Param("projectId"), 10, 32)
	if err != nil {
		return respondError(c, log, apperror.Validation("Invalid project ID"))
	}

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		Status      *string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		log.Warn("Failed to parse project request", zap.Error(err))
		return respondError(c, log, apperror.Validation("Invalid request data"))
	}

	project, err := h.projects.Update(c.Request().Context(), principal, uint(id), service.UpdateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		return respondError(c, log, err)
	}

	log.Info("Project updated", zap.Uint("project_id", project.ID))

	return respondData(c, http.StatusOK, project)
}

// Delete removes a project.
func (h *ProjectHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordProjectOperation("delete")

	principal, ok := currentPrincipal(c)
	if !ok {
		return nil
	}

	id, err := strconv.ParseUint(c.Param("projectId"), 10, 32)
	if err != nil {
		return respondError(c, log, apperror.Validation("Invalid project ID"))
	}

	if err := h.projects.Delete(c.Request().Context(), principal, uint(id)); err != nil {
		return respondError(c, log, err)
	}

	log.Info("Project deleted", zap.Uint64("project_id", id))

	return respondMessage(c, http.StatusOK, "Project deleted successfully")
}
