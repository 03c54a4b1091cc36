package service_test

// In-memory repository fakes backing the service tests. They mirror the
// storage contract exactly: scoped lookups miss cross-tenant rows, task
// listing applies the fixed priority/due-date/id order, and the quota
// check counts inside the same "transaction" as the insert.

import (
	"context"
	"sort"
	"strings"

	"tracker-service/internal/model"
	"tracker-service/internal/repository"
	"tracker-service/internal/scope"
)

func pageSlice[T any](items []T, page repository.Page) []T {
	start := page.Offset()
	if start >= len(items) {
		return nil
	}
	end := start + page.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// --- tenants ---

type memoryTenantRepo struct {
	tenants []model.Tenant
}

func (m *memoryTenantRepo) FindBySubdomain(ctx context.Context, subdomain string) (*model.Tenant, error) {
	for i := range m.tenants {
		if m.tenants[i].Subdomain == subdomain {
			t := m.tenants[i]
			return &t, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memoryTenantRepo) FindByID(ctx context.Context, id uint) (*model.Tenant, error) {
	for i := range m.tenants {
		if m.tenants[i].ID == id {
			t := m.tenants[i]
			return &t, nil
		}
	}
	return nil, repository.ErrNotFound
}

// --- users ---

type memoryUserRepo struct {
	users []model.User
}

func (m *memoryUserRepo) FindByEmail(ctx context.Context, tenantID uint, email string) (*model.User, error) {
	for i := range m.users {
		if m.users[i].TenantID == tenantID && m.users[i].Email == email {
			u := m.users[i]
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memoryUserRepo) FindByID(ctx context.Context, id uint) (*model.User, error) {
	for i := range m.users {
		if m.users[i].ID == id {
			u := m.users[i]
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memoryUserRepo) FindInTenant(ctx context.Context, id, tenantID uint) (*model.User, error) {
	for i := range m.users {
		if m.users[i].ID == id && m.users[i].TenantID == tenantID {
			u := m.users[i]
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memoryUserRepo) List(ctx context.Context, tenantID uint, page repository.Page) ([]model.User, int64, error) {
	var matched []model.User
	for _, u := range m.users {
		if u.TenantID == tenantID {
			matched = append(matched, u)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].FullName != matched[j].FullName {
			return matched[i].FullName < matched[j].FullName
		}
		return matched[i].ID < matched[j].ID
	})
	return pageSlice(matched, page), int64(len(matched)), nil
}

// --- projects ---

type memoryProjectRepo struct {
	tenants  *memoryTenantRepo
	projects []model.Project
	nextID   uint
}

func (m *memoryProjectRepo) CreateWithQuota(ctx context.Context, project *model.Project) error {
	tenant, err := m.tenants.FindByID(ctx, project.TenantID)
	if err != nil {
		return err
	}

	count, _ := m.CountByTenant(ctx, project.TenantID)
	if count >= int64(tenant.MaxProjects) {
		return repository.ErrQuotaExceeded
	}

	m.nextID++
	project.ID = m.nextID
	m.projects = append(m.projects, *project)
	return nil
}

func (m *memoryProjectRepo) FindByID(ctx context.Context, id uint, sc scope.Scope) (*model.Project, error) {
	for i := range m.projects {
		p := m.projects[i]
		if p.ID == id && (sc.All || p.TenantID == sc.TenantID) {
			return &p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memoryProjectRepo) FindAnyByID(ctx context.Context, id uint) (*model.Project, error) {
	for i := range m.projects {
		if m.projects[i].ID == id {
			p := m.projects[i]
			return &p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memoryProjectRepo) List(ctx context.Context, sc scope.Scope, page repository.Page) ([]model.Project, int64, error) {
	var matched []model.Project
	for _, p := range m.projects {
		if sc.All || p.TenantID == sc.TenantID {
			matched = append(matched, p)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})
	return pageSlice(matched, page), int64(len(matched)), nil
}

func (m *memoryProjectRepo) Save(ctx context.Context, project *model.Project) error {
	for i := range m.projects {
		if m.projects[i].ID == project.ID {
			m.projects[i] = *project
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memoryProjectRepo) Delete(ctx context.Context, id uint, sc scope.Scope) (int64, error) {
	for i := range m.projects {
		p := m.projects[i]
		if p.ID == id && (sc.All || p.TenantID == sc.TenantID) {
			m.projects = append(m.projects[:i], m.projects[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (m *memoryProjectRepo) CountByTenant(ctx context.Context, tenantID uint) (int64, error) {
	var count int64
	for _, p := range m.projects {
		if p.TenantID == tenantID {
			count++
		}
	}
	return count, nil
}

// --- tasks ---

type memoryTaskRepo struct {
	tasks  []model.Task
	nextID uint
}

func (m *memoryTaskRepo) Create(ctx context.Context, task *model.Task) error {
	m.nextID++
	task.ID = m.nextID
	m.tasks = append(m.tasks, *task)
	return nil
}

func (m *memoryTaskRepo) FindByID(ctx context.Context, id uint) (*model.Task, error) {
	for i := range m.tasks {
		if m.tasks[i].ID == id {
			t := m.tasks[i]
			return &t, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memoryTaskRepo) List(ctx context.Context, filter repository.TaskFilter, page repository.Page) ([]model.Task, int64, error) {
	var matched []model.Task
	for _, t := range m.tasks {
		if t.ProjectID != filter.ProjectID {
			continue
		}
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if filter.Priority != "" && t.Priority != filter.Priority {
			continue
		}
		if filter.AssignedTo != 0 && (t.AssignedTo == nil || *t.AssignedTo != filter.AssignedTo) {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(t.Title), strings.ToLower(filter.Search)) {
			continue
		}
		matched = append(matched, t)
	}

	sort.Slice(matched, func(i, j int) bool {
		return taskLess(&matched[i], &matched[j])
	})
	return pageSlice(matched, page), int64(len(matched)), nil
}

// taskLess mirrors the SQL listing order: priority rank, due date ascending
// with nulls last, id as tiebreaker.
func taskLess(a, b *model.Task) bool {
	ra, rb := model.PriorityRank(a.Priority), model.PriorityRank(b.Priority)
	if ra != rb {
		return ra < rb
	}
	switch {
	case a.DueDate == nil && b.DueDate != nil:
		return false
	case a.DueDate != nil && b.DueDate == nil:
		return true
	case a.DueDate != nil && b.DueDate != nil && !a.DueDate.Equal(*b.DueDate):
		return a.DueDate.Before(*b.DueDate)
	}
	return a.ID < b.ID
}

func (m *memoryTaskRepo) Save(ctx context.Context, task *model.Task) error {
	for i := range m.tasks {
		if m.tasks[i].ID == task.ID {
			m.tasks[i] = *task
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memoryTaskRepo) Delete(ctx context.Context, id uint) error {
	for i := range m.tasks {
		if m.tasks[i].ID == id {
			m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
			return nil
		}
	}
	return nil
}
