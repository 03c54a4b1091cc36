package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"tracker-service/internal/model"
	"tracker-service/internal/scope"
	"tracker-service/prometheus"
)

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// --- tenants ---

type tenantRepository struct {
	db *gorm.DB
}

// NewTenantRepository returns the PostgreSQL-backed tenant repository.
func NewTenantRepository(db *gorm.DB) TenantRepository {
	return &tenantRepository{db: db}
}

func (r *tenantRepository) FindBySubdomain(ctx context.Context, subdomain string) (*model.Tenant, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var tenant model.Tenant
	if err := r.db.WithContext(ctx).Where("subdomain = ?", subdomain).First(&tenant).Error; err != nil {
		return nil, translate(err)
	}
	return &tenant, nil
}

func (r *tenantRepository) FindByID(ctx context.Context, id uint) (*model.Tenant, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var tenant model.Tenant
	if err := r.db.WithContext(ctx).First(&tenant, id).Error; err != nil {
		return nil, translate(err)
	}
	return &tenant, nil
}

// --- users ---

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns the PostgreSQL-backed user repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByEmail(ctx context.Context, tenantID uint, email string) (*model.User, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var user model.User
	err := r.db.WithContext(ctx).
		Where("email = ? AND tenant_id = ?", email, tenantID).
		First(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *userRepository) FindInTenant(ctx context.Context, id, tenantID uint) (*model.User, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var user model.User
	err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context, tenantID uint, page Page) ([]model.User, int64, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	query := r.db.WithContext(ctx).Model(&model.User{}).Where("tenant_id = ?", tenantID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []model.User
	err := query.
		Order("full_name ASC, id ASC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// --- projects ---

type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository returns the PostgreSQL-backed project repository.
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) CreateWithQuota(ctx context.Context, project *model.Project) error {
	defer prometheus.TrackDBOperation("insert")(time.Now())

	// The count and the insert share one transaction so the quota check
	// only races to the extent the database's isolation level allows.
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tenant model.Tenant
		if err := tx.First(&tenant, project.TenantID).Error; err != nil {
			return translate(err)
		}

		var count int64
		if err := tx.Model(&model.Project{}).
			Where("tenant_id = ?", project.TenantID).
			Count(&count).Error; err != nil {
			return err
		}

		if count >= int64(tenant.MaxProjects) {
			return ErrQuotaExceeded
		}

		return tx.Create(project).Error
	})
}

func (r *projectRepository) FindByID(ctx context.Context, id uint, sc scope.Scope) (*model.Project, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var project model.Project
	query := sc.Apply(r.db.WithContext(ctx).Where("id = ?", id))
	if err := query.First(&project).Error; err != nil {
		return nil, translate(err)
	}
	return &project, nil
}

func (r *projectRepository) FindAnyByID(ctx context.Context, id uint) (*model.Project, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var project model.Project
	if err := r.db.WithContext(ctx).First(&project, id).Error; err != nil {
		return nil, translate(err)
	}
	return &project, nil
}

func (r *projectRepository) List(ctx context.Context, sc scope.Scope, page Page) ([]model.Project, int64, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	query := sc.Apply(r.db.WithContext(ctx).Model(&model.Project{}))

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var projects []model.Project
	err := query.
		Order(projectOrderSQL).
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&projects).Error
	if err != nil {
		return nil, 0, err
	}
	return projects, total, nil
}

func (r *projectRepository) Save(ctx context.Context, project *model.Project) error {
	defer prometheus.TrackDBOperation("update")(time.Now())

	return r.db.WithContext(ctx).Save(project).Error
}

func (r *projectRepository) Delete(ctx context.Context, id uint, sc scope.Scope) (int64, error) {
	defer prometheus.TrackDBOperation("delete")(time.Now())

	result := sc.Apply(r.db.WithContext(ctx).Where("id = ?", id)).Delete(&model.Project{})
	return result.RowsAffected, result.Error
}

func (r *projectRepository) CountByTenant(ctx context.Context, tenantID uint) (int64, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Project{}).
		Where("tenant_id = ?", tenantID).
		Count(&count).Error
	return count, err
}

// --- tasks ---

type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository returns the PostgreSQL-backed task repository.
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *model.Task) error {
	defer prometheus.TrackDBOperation("insert")(time.Now())

	return r.db.WithContext(ctx).Create(task).Error
}

func (r *taskRepository) FindByID(ctx context.Context, id uint) (*model.Task, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var task model.Task
	if err := r.db.WithContext(ctx).First(&task, id).Error; err != nil {
		return nil, translate(err)
	}
	return &task, nil
}

func (r *taskRepository) List(ctx context.Context, filter TaskFilter, page Page) ([]model.Task, int64, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	where, args := taskFilterClauses(filter)
	query := r.db.WithContext(ctx).Model(&model.Task{}).Where(where, args...)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tasks []model.Task
	err := query.
		Order(taskOrderSQL).
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&tasks).Error
	if err != nil {
		return nil, 0, err
	}
	return tasks, total, nil
}

func (r *taskRepository) Save(ctx context.Context, task *model.Task) error {
	defer prometheus.TrackDBOperation("update")(time.Now())

	return r.db.WithContext(ctx).Save(task).Error
}

func (r *taskRepository) Delete(ctx context.Context, id uint) error {
	defer prometheus.TrackDBOperation("delete")(time.Now())

	return r.db.WithContext(ctx).Delete(&model.Task{}, id).Error
}
