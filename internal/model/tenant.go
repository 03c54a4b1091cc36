package model

import (
	"time"

	"gorm.io/gorm"
)

// Tenant statuses. Only active tenants accept logins.
const (
	TenantStatusActive    = "active"
	TenantStatusSuspended = "suspended"
)

// Tenant represents a customer organization. Every user, project and task
// belongs to exactly one tenant; the subdomain is what login requests use
// to pick the tenant.
type Tenant struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Name        string         `json:"name" gorm:"type:varchar(100);not null"`
	Subdomain   string         `json:"subdomain" gorm:"type:varchar(63);uniqueIndex;not null"`
	Status      string         `json:"status" gorm:"type:varchar(20);not null;default:'active'"`
	MaxProjects int            `json:"max_projects" gorm:"not null;default:5"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}
