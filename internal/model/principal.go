package model

// Principal is the authenticated identity bound to a single request. It is
// derived exclusively from a verified session token and never from any
// client-supplied body or query field. Field names are the contract between
// the auth middleware and every handler; they must not drift.
type Principal struct {
	SubjectID uint   `json:"subjectId"`
	TenantID  uint   `json:"tenantId"`
	Role      string `json:"role"`
}

// IsSuperAdmin reports whether the principal holds the cross-tenant role.
func (p Principal) IsSuperAdmin() bool {
	return p.Role == RoleSuperAdmin
}
