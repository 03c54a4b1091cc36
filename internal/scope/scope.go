// Package scope is the tenant scoping guard. All tenant isolation decisions
// live here instead of being re-derived inline in every handler: direct
// scoping narrows queries to the principal's tenant, derived scoping
// compares a resource's stored tenant against the principal after the
// resource's existence has already been confirmed.
package scope

import (
	"gorm.io/gorm"

	"tracker-service/internal/apperror"
	"tracker-service/internal/model"
)

// Scope describes the tenant visibility of a query. All is only ever true
// for super_admin principals.
type Scope struct {
	TenantID uint
	All      bool
}

// ForPrincipal derives the query scope for a principal. super_admin sees
// every tenant; everyone else is pinned to their own.
func ForPrincipal(p model.Principal) Scope {
	if p.IsSuperAdmin() {
		return Scope{All: true}
	}
	return Scope{TenantID: p.TenantID}
}

// Apply adds the tenant predicate to a query unless the scope is global.
// A cross-tenant point lookup through an applied scope matches zero rows,
// so the caller reports NotFound and never reveals the row exists.
func (s Scope) Apply(db *gorm.DB) *gorm.DB {
	if s.All {
		return db
	}
	return db.Where("tenant_id = ?", s.TenantID)
}

// EnsureOwner is the derived scoping check: the resource's tenant was
// resolved from storage (never from the caller) and existence is already
// confirmed, so a mismatch is Forbidden rather than NotFound.
func EnsureOwner(p model.Principal, resourceTenantID uint) error {
	if p.IsSuperAdmin() {
		return nil
	}
	if p.TenantID != resourceTenantID {
		return apperror.Forbidden("Unauthorized access")
	}
	return nil
}
