package service

import (
	"context"
	"errors"

	"tracker-service/internal/apperror"
	"tracker-service/internal/model"
	"tracker-service/internal/repository"
	"tracker-service/internal/scope"
	"tracker-service/pkg/config"
	"tracker-service/prometheus"
)

// ProjectService applies direct tenant scoping to project operations: every
// read and write carries the principal's tenant in its predicate, so a
// project in another tenant behaves exactly like one that does not exist.
type ProjectService struct {
	projects repository.ProjectRepository
	pages    config.PageConfig
}

// NewProjectService builds the project service.
func NewProjectService(projects repository.ProjectRepository, pages config.PageConfig) *ProjectService {
	return &ProjectService{projects: projects, pages: pages}
}

// CreateProjectInput carries the client-supplied project fields. The owning
// tenant and creator come from the principal, never from the body.
type CreateProjectInput struct {
	Name        string
	Description string
}

// UpdateProjectInput carries a partial update; nil fields stay unchanged.
type UpdateProjectInput struct {
	Name        *string
	Description *string
	Status      *string
}

// ProjectList is a page of projects plus its metadata.
type ProjectList struct {
	Projects   []model.Project
	Pagination Pagination
}

// Create inserts a project for the principal's tenant after the quota
// check. super_admin gets no tenant-override here: the project lands in
// the token's own tenant and the quota still applies.
func (s *ProjectService) Create(ctx context.Context, p model.Principal, in CreateProjectInput) (*model.Project, error) {
	if in.Name == "" {
		return nil, apperror.Validation("Project name is required")
	}

	project := &model.Project{
		TenantID:    p.TenantID,
		Name:        in.Name,
		Description: in.Description,
		Status:      model.ProjectStatusActive,
		CreatedBy:   p.SubjectID,
	}

	if err := s.projects.CreateWithQuota(ctx, project); err != nil {
		switch {
		case errors.Is(err, repository.ErrQuotaExceeded):
			return nil, apperror.QuotaExceeded("Project limit reached for subscription plan")
		case errors.Is(err, repository.ErrNotFound):
			return nil, apperror.NotFound("Tenant not found")
		default:
			return nil, apperror.Internal(err)
		}
	}

	if count, cerr := s.projects.CountByTenant(ctx, p.TenantID); cerr == nil {
		prometheus.UpdateProjectsPerTenant(p.TenantID, int(count))
	}

	return project, nil
}

// List returns the principal's projects. super_admin sees all tenants;
// this is the one read path where the tenant predicate is dropped.
func (s *ProjectService) List(ctx context.Context, p model.Principal, page, limit int) (*ProjectList, error) {
	pg := clampPage(page, limit, s.pages)

	projects, total, err := s.projects.List(ctx, scope.ForPrincipal(p), pg)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	return &ProjectList{
		Projects:   projects,
		Pagination: paginate(total, pg),
	}, nil
}

// Get returns one project within the principal's scope.
func (s *ProjectService) Get(ctx context.Context, p model.Principal, id uint) (*model.Project, error) {
	project, err := s.projects.FindByID(ctx, id, scope.ForPrincipal(p))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("Project not found")
		}
		return nil, apperror.Internal(err)
	}
	return project, nil
}

// Update applies a partial update to a project within the principal's
// scope. A project in another tenant reads as absent.
func (s *ProjectService) Update(ctx context.Context, p model.Principal, id uint, in UpdateProjectInput) (*model.Project, error) {
	project, err := s.projects.FindByID(ctx, id, scope.ForPrincipal(p))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("Project not found")
		}
		return nil, apperror.Internal(err)
	}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, apperror.Validation("Project name is required")
		}
		project.Name = *in.Name
	}
	if in.Description != nil {
		project.Description = *in.Description
	}
	if in.Status != nil {
		project.Status = *in.Status
	}
	// TenantID stays untouched: ownership is fixed at creation.

	if err := s.projects.Save(ctx, project); err != nil {
		return nil, apperror.Internal(err)
	}
	return project, nil
}

// Delete removes a project within the principal's scope. Zero affected
// rows means the project is absent or foreign; both read as NotFound.
func (s *ProjectService) Delete(ctx context.Context, p model.Principal, id uint) error {
	rows, err := s.projects.Delete(ctx, id, scope.ForPrincipal(p))
	if err != nil {
		return apperror.Internal(err)
	}
	if rows == 0 {
		return apperror.NotFound("Project not found")
	}
	return nil
}
