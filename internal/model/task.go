package model

import (
	"time"

	"gorm.io/gorm"
)

// Task priorities, ordered high first for listing.
const (
	TaskPriorityHigh   = "high"
	TaskPriorityMedium = "medium"
	TaskPriorityLow    = "low"
)

// Task statuses.
const (
	TaskStatusTodo       = "todo"
	TaskStatusInProgress = "in_progress"
	TaskStatusDone       = "done"
)

// Task represents a unit of work inside a project. TenantID is always
// copied from the parent project at creation, never taken from the caller,
// so a task's tenant can never diverge from its project's tenant.
type Task struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	TenantID    uint           `json:"tenant_id" gorm:"index;not null"`
	ProjectID   uint           `json:"project_id" gorm:"index;not null"`
	Title       string         `json:"title" gorm:"type:varchar(200);not null"`
	Description string         `json:"description" gorm:"type:text"`
	Status      string         `json:"status" gorm:"type:varchar(20);not null;default:'todo'"`
	Priority    string         `json:"priority" gorm:"type:varchar(10);not null;default:'medium'"`
	AssignedTo  *uint          `json:"assigned_to,omitempty" gorm:"index"`
	DueDate     *time.Time     `json:"due_date,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// PriorityRank maps a priority to its sort position: high sorts before
// medium before low. Unknown values sort last. This is the single source
// for the ordering used both in SQL and in tests.
func PriorityRank(priority string) int {
	switch priority {
	case TaskPriorityHigh:
		return 1
	case TaskPriorityMedium:
		return 2
	case TaskPriorityLow:
		return 3
	default:
		return 4
	}
}

// ValidPriority reports whether the given value is one of the accepted
// task priorities.
func ValidPriority(priority string) bool {
	switch priority {
	case TaskPriorityHigh, TaskPriorityMedium, TaskPriorityLow:
		return true
	}
	return false
}
