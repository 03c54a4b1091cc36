// Package repository defines the storage contracts the services depend on
// and their PostgreSQL implementation. Scoped lookups apply the tenant
// predicate inside the query (cross-tenant rows simply don't match);
// unscoped lookups exist only so derived scoping can resolve a resource's
// owning tenant before the ownership check.
package repository

import (
	"context"
	"errors"

	"tracker-service/internal/model"
	"tracker-service/internal/scope"
)

var (
	// ErrNotFound means the row does not exist within the queried scope.
	ErrNotFound = errors.New("record not found")
	// ErrQuotaExceeded means a quota-checked insert was rejected.
	ErrQuotaExceeded = errors.New("quota exceeded")
)

// Page is a 1-based pagination request. Callers clamp values before they
// get here.
type Page struct {
	Number int
	Limit  int
}

// Offset returns the row offset for the page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Limit
}

// TaskFilter selects tasks within one project. Zero values mean "no
// filter" for the optional fields.
type TaskFilter struct {
	ProjectID  uint
	Status     string
	Priority   string
	AssignedTo uint
	Search     string
}

// TenantRepository resolves tenants.
type TenantRepository interface {
	FindBySubdomain(ctx context.Context, subdomain string) (*model.Tenant, error)
	FindByID(ctx context.Context, id uint) (*model.Tenant, error)
}

// UserRepository resolves users. FindInTenant is the assignee check used by
// derived scoping: it matches only when the user exists in the given tenant.
type UserRepository interface {
	FindByEmail(ctx context.Context, tenantID uint, email string) (*model.User, error)
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindInTenant(ctx context.Context, id, tenantID uint) (*model.User, error)
	List(ctx context.Context, tenantID uint, page Page) ([]model.User, int64, error)
}

// ProjectRepository stores projects. Point lookups and deletes take a scope
// so cross-tenant rows are indistinguishable from absent ones.
type ProjectRepository interface {
	// CreateWithQuota inserts the project inside a single transaction that
	// counts the tenant's existing projects against tenant.max_projects.
	// Returns ErrQuotaExceeded when the count is already at the limit.
	CreateWithQuota(ctx context.Context, project *model.Project) error
	FindByID(ctx context.Context, id uint, sc scope.Scope) (*model.Project, error)
	// FindAnyByID ignores tenant scoping; used to resolve a project's
	// owning tenant for derived scoping checks.
	FindAnyByID(ctx context.Context, id uint) (*model.Project, error)
	List(ctx context.Context, sc scope.Scope, page Page) ([]model.Project, int64, error)
	Save(ctx context.Context, project *model.Project) error
	Delete(ctx context.Context, id uint, sc scope.Scope) (int64, error)
	CountByTenant(ctx context.Context, tenantID uint) (int64, error)
}

// TaskRepository stores tasks. FindByID is deliberately unscoped: derived
// scoping requires confirming existence before checking ownership.
type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	FindByID(ctx context.Context, id uint) (*model.Task, error)
	List(ctx context.Context, filter TaskFilter, page Page) ([]model.Task, int64, error)
	Save(ctx context.Context, task *model.Task) error
	Delete(ctx context.Context, id uint) error
}
