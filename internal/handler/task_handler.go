package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"tracker-service/internal/apperror"
	"tracker-service/internal/service"
	"tracker-service/pkg/logger"
	"tracker-service/prometheus"
)

// TaskHandler exposes the task endpoints. All tenant decisions are made in
// the service from the parent project's stored tenant.
type TaskHandler struct {
	tasks *service.TaskService
}

// NewTaskHandler builds the task handler.
func NewTaskHandler(tasks *service.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// Create adds a task to a project.
func (h *TaskHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordTaskOperation("create")

	principal, ok := currentPrincipal(c)
	if !ok {
		return nil
	}

	projectID, err := strconv.ParseUint(c.Param("projectId"), 10, 32)
	if err != nil {
		return respondError(c, log, apperror.Validation("Invalid project ID"))
	}

	var req struct {
		Title       string     `json:"title"`
		Description string     `json:"description"`
		Priority    string     `json:"priority"`
		AssignedTo  *uint      `json:"assignedTo"`
		DueDate     *time.Time `json:"dueDate"`
	}
	if err := c.Bind(&req); err != nil {
		log.Warn("Failed to parse task request", zap.Error(err))
		return respondError(c, log, apperror.Validation("Invalid request data"))
	}

	task, err := h.tasks.Create(c.Request().Context(), principal, uint(projectID), service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		AssignedTo:  req.AssignedTo,
		DueDate:     req.DueDate,
	})
	if err != nil {
		return respondError(c, log, err)
	}

	log.Info("Task created",
		zap.Uint("task_id", task.ID),
		zap.Uint("project_id", task.ProjectID),
		zap.Uint("tenant_id", task.TenantID))

	return respondData(c, http.StatusCreated, task)
}

// List returns a filtered, ordered page of a project's tasks.
func (h *TaskHandler) List(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordTaskOperation("list")

	principal, ok := currentPrincipal(c)
	if !ok {
		return nil
	}

	projectID, err := strconv.ParseUint(c.Param("projectId"), 10, 32)
	if err != nil {
		return respondError(c, log, apperror.Validation("Invalid project ID"))
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	assignedTo, _ := strconv.ParseUint(c.QueryParam("assignedTo"), 10, 32)

	list, err := h.tasks.List(c.Request().Context(), principal, uint(projectID), service.TaskListInput{
		Status:     c.QueryParam("status"),
		Priority:   c.QueryParam("priority"),
		AssignedTo: uint(assignedTo),
		Search:     c.QueryParam("search"),
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		return respondError(c, log, err)
	}

	return respondData(c, http.StatusOK, echo.Map{
		"tasks":      list.Tasks,
		"total":      list.Pagination.Total,
		"pagination": list.Pagination,
	})
}

// UpdateStatus moves a task to a new status.
func (h *TaskHandler) UpdateStatus(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordTaskOperation("update_status")

	principal, ok := currentPrincipal(c)
	if !ok {
		return nil
	}

	taskID, err := strconv.ParseUint(c.Param("taskId"), 10, 32)
	if err != nil {
		return respondError(c, log, apperror.Validation("Invalid task ID"))
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		log.Warn("Failed to parse task status request", zap.Error(err))
		return respondError(c, log, apperror.Validation("Invalid request data"))
	}

	task, err := h.tasks.UpdateStatus(c.Request().Context(), principal, uint(taskID), req.Status)
	if err != nil {
		return respondError(c, log, err)
	}

	log.Info("Task status updated",
		zap.Uint("task_id", task.ID),
		zap.String("status", task.Status))

	return respondData(c, http.StatusOK, task)
}

// Update applies a partial update to a task.
func (h *TaskHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordTaskOperation("update")

	principal, ok := currentPrincipal(c)
	if !ok {
		return nil
	}

	taskID, err := strconv.ParseUint(c.Param("taskId"), 10, 32)
	if err != nil {
		return respondError(c, log, apperror.Validation("Invalid task ID"))
	}

	var req struct {
		Title       *string    `json:"title"`
		Description *string    `json:"description"`
		Status      *string    `json:"status"`
		Priority    *string    `json:"priority"`
		AssignedTo  *uint      `json:"assignedTo"`
		DueDate     *time.Time `json:"dueDate"`
	}
	if err := c.Bind(&req); err != nil {
		log.Warn("Failed to parse task request", zap.Error(err))
		return respondError(c, log, apperror.Validation("Invalid request data"))
	}

	task, err := h.tasks.Update(c.Request().Context(), principal, uint(taskID), service.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		AssignedTo:  req.AssignedTo,
		DueDate:     req.DueDate,
	})
	if err != nil {
		return respondError(c, log, err)
	}

	log.Info("Task updated", zap.Uint("task_id", task.ID))

	return respondData(c, http.StatusOK, task)
}

// Delete removes a task.
func (h *TaskHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordTaskOperation("delete")

	principal, ok := currentPrincipal(c)
	if !ok {
		return nil
	}

	taskID, err := strconv.ParseUint(c.Param("taskId"), 10, 32)
	if err != nil {
		return respondError(c, log, apperror.Validation("Invalid task ID"))
	}

	if err := h.tasks.Delete(c.Request().Context(), principal, uint(taskID)); err != nil {
		return respondError(c, log, err)
	}

	log.Info("Task deleted", zap.Uint64("task_id", taskID))

	return respondMessage(c, http.StatusOK, "Task deleted successfully")
}
