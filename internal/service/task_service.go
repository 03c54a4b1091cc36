package service

import (
	"context"
	"errors"
	"time"

	"tracker-service/internal/apperror"
	"tracker-service/internal/model"
	"tracker-service/internal/repository"
	"tracker-service/internal/scope"
	"tracker-service/pkg/config"
)

// TaskService applies derived tenant scoping: a task's tenant always comes
// from its parent project in storage, never from the caller. Existence is
// always checked before ownership, so a missing task reads as NotFound
// while a foreign one reads as Forbidden.
type TaskService struct {
	tasks    repository.TaskRepository
	projects repository.ProjectRepository
	users    repository.UserRepository
	pages    config.PageConfig
}

// NewTaskService builds the task service.
func NewTaskService(tasks repository.TaskRepository, projects repository.ProjectRepository, users repository.UserRepository, pages config.PageConfig) *TaskService {
	return &TaskService{tasks: tasks, projects: projects, users: users, pages: pages}
}

// CreateTaskInput carries client-supplied task fields. There is no tenant
// field on purpose.
type CreateTaskInput struct {
	Title       string
	Description string
	Priority    string
	AssignedTo  *uint
	DueDate     *time.Time
}

// UpdateTaskInput carries a partial update; nil fields stay unchanged.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *string
	Priority    *string
	AssignedTo  *uint
	DueDate     *time.Time
}

// TaskListInput carries list filters and pagination for a project's tasks.
type TaskListInput struct {
	Status     string
	Priority   string
	AssignedTo uint
	Search     string
	Page       int
	Limit      int
}

// TaskList is a page of tasks plus its metadata.
type TaskList struct {
	Tasks      []model.Task
	Pagination Pagination
}

// resolveProject confirms the project exists, then checks ownership. The
// order matters: an existence miss is NotFound, a tenant mismatch on an
// existing project is Forbidden.
func (s *TaskService) resolveProject(ctx context.Context, p model.Principal, projectID uint) (*model.Project, error) {
	project, err := s.projects.FindAnyByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("Project not found")
		}
		return nil, apperror.Internal(err)
	}
	if err := scope.EnsureOwner(p, project.TenantID); err != nil {
		return nil, err
	}
	return project, nil
}

// resolveTask does the same existence-then-ownership dance for a task.
func (s *TaskService) resolveTask(ctx context.Context, p model.Principal, taskID uint) (*model.Task, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("Task not found")
		}
		return nil, apperror.Internal(err)
	}
	if err := scope.EnsureOwner(p, task.TenantID); err != nil {
		return nil, err
	}
	return task, nil
}

// checkAssignee verifies the assignee exists in the given tenant. The
// tenant is always the project's, not the caller's, so a forged assignee
// cannot bridge tenants even under a super_admin principal.
func (s *TaskService) checkAssignee(ctx context.Context, assigneeID, tenantID uint) error {
	_, err := s.users.FindInTenant(ctx, assigneeID, tenantID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.Validation("Assigned user does not belong to this tenant")
		}
		return apperror.Internal(err)
	}
	return nil
}

// Create adds a task to a project. The task's tenant is copied from the
// project row resolved from storage.
func (s *TaskService) Create(ctx context.Context, p model.Principal, projectID uint, in CreateTaskInput) (*model.Task, error) {
	if in.Title == "" {
		return nil, apperror.Validation("Task title is required")
	}

	priority := in.Priority
	if priority == "" {
		priority = model.TaskPriorityMedium
	}
	if !model.ValidPriority(priority) {
		return nil, apperror.Validation("Invalid task priority")
	}

	project, err := s.resolveProject(ctx, p, projectID)
	if err != nil {
		return nil, err
	}

	if in.AssignedTo != nil {
		if err := s.checkAssignee(ctx, *in.AssignedTo, project.TenantID); err != nil {
			return nil, err
		}
	}

	task := &model.Task{
		TenantID:    project.TenantID,
		ProjectID:   project.ID,
		Title:       in.Title,
		Description: in.Description,
		Status:      model.TaskStatusTodo,
		Priority:    priority,
		AssignedTo:  in.AssignedTo,
		DueDate:     in.DueDate,
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, apperror.Internal(err)
	}
	return task, nil
}

// List returns a page of a project's tasks, filtered and in the fixed
// priority/due-date order.
func (s *TaskService) List(ctx context.Context, p model.Principal, projectID uint, in TaskListInput) (*TaskList, error) {
	project, err := s.resolveProject(ctx, p, projectID)
	if err != nil {
		return nil, err
	}

	pg := clampPage(in.Page, in.Limit, s.pages)
	filter := repository.TaskFilter{
		ProjectID:  project.ID,
		Status:     in.Status,
		Priority:   in.Priority,
		AssignedTo: in.AssignedTo,
		Search:     in.Search,
	}

	tasks, total, err := s.tasks.List(ctx, filter, pg)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	return &TaskList{
		Tasks:      tasks,
		Pagination: paginate(total, pg),
	}, nil
}

// UpdateStatus moves a task to a new status.
func (s *TaskService) UpdateStatus(ctx context.Context, p model.Principal, taskID uint, status string) (*model.Task, error) {
	if status == "" {
		return nil, apperror.Validation("Status is required")
	}

	task, err := s.resolveTask(ctx, p, taskID)
	if err != nil {
		return nil, err
	}

	task.Status = status
	if err := s.tasks.Save(ctx, task); err != nil {
		return nil, apperror.Internal(err)
	}
	return task, nil
}

// Update applies a partial update to a task. A new assignee is checked
// against the task's stored tenant.
func (s *TaskService) Update(ctx context.Context, p model.Principal, taskID uint, in UpdateTaskInput) (*model.Task, error) {
	task, err := s.resolveTask(ctx, p, taskID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		if *in.Title == "" {
			return nil, apperror.Validation("Task title is required")
		}
		task.Title = *in.Title
	}
	if in.Description != nil {
		task.Description = *in.Description
	}
	if in.Status != nil {
		if *in.Status == "" {
			return nil, apperror.Validation("Status is required")
		}
		task.Status = *in.Status
	}
	if in.Priority != nil {
		if !model.ValidPriority(*in.Priority) {
			return nil, apperror.Validation("Invalid task priority")
		}
		task.Priority = *in.Priority
	}
	if in.AssignedTo != nil {
		if err := s.checkAssignee(ctx, *in.AssignedTo, task.TenantID); err != nil {
			return nil, err
		}
		task.AssignedTo = in.AssignedTo
	}
	if in.DueDate != nil {
		task.DueDate = in.DueDate
	}

	if err := s.tasks.Save(ctx, task); err != nil {
		return nil, apperror.Internal(err)
	}
	return task, nil
}

// Delete removes a task after the existence and ownership checks.
func (s *TaskService) Delete(ctx context.Context, p model.Principal, taskID uint) error {
	task, err := s.resolveTask(ctx, p, taskID)
	if err != nil {
		return err
	}
	if err := s.tasks.Delete(ctx, task.ID); err != nil {
		return apperror.Internal(err)
	}
	return nil
}
