package service_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"tracker-service/internal/apperror"
	"tracker-service/internal/model"
	"tracker-service/internal/service"
	"tracker-service/pkg/config"
	"tracker-service/pkg/jwtutil"
)

func newAuthFixture(t *testing.T) (*service.AuthService, *memoryTenantRepo, *memoryUserRepo) {
	t.Helper()
	jwtutil.Initialize(&config.JWTConfig{SigningKey: "test-secret", ExpirationHours: 1})

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)

	tenants := &memoryTenantRepo{tenants: []model.Tenant{
		{ID: 1, Name: "Acme", Subdomain: "acme", Status: model.TenantStatusActive, MaxProjects: 5},
		{ID: 2, Name: "Globex", Subdomain: "globex", Status: model.TenantStatusSuspended, MaxProjects: 5},
	}}
	users := &memoryUserRepo{users: []model.User{
		{ID: 10, TenantID: 1, Email: "alice@acme.test", PasswordHash: string(hash), FullName: "Alice", Role: model.RoleAdmin, IsActive: true},
		{ID: 11, TenantID: 1, Email: "bob@acme.test", PasswordHash: string(hash), FullName: "Bob", Role: model.RoleMember, IsActive: false},
	}}

	return service.NewAuthService(tenants, users, service.NewBcryptVerifier()), tenants, users
}

func TestLoginSuccess(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	result, err := svc.Login(context.Background(), "acme", "alice@acme.test", "correct-horse")
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)
	require.Equal(t, 3600, result.ExpiresIn)

	// Token round-trip: the principal carries exactly the user's identity.
	principal, err := jwtutil.ValidateToken(result.Token)
	require.NoError(t, err)
	require.Equal(t, uint(10), principal.SubjectID)
	require.Equal(t, uint(1), principal.TenantID)
	require.Equal(t, model.RoleAdmin, principal.Role)
}

func TestLoginMissingFields(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), "acme", "", "pw")
	require.Error(t, err)
	require.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestLoginUnknownTenant(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), "nosuch", "alice@acme.test", "correct-horse")
	require.Error(t, err)
	require.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	require.Equal(t, "Tenant not found", apperror.Message(err))
}

func TestLoginSuspendedTenant(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), "globex", "alice@acme.test", "correct-horse")
	require.Error(t, err)
	require.Equal(t, apperror.KindAuthorization, apperror.KindOf(err))
	require.Equal(t, "Tenant is not active", apperror.Message(err))
}

// Unknown email and wrong password must be indistinguishable so the
// response never leaks which half of the pair failed.
func TestLoginFailureIsUniform(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, errEmail := svc.Login(context.Background(), "acme", "nobody@acme.test", "correct-horse")
	_, errPassword := svc.Login(context.Background(), "acme", "alice@acme.test", "wrong")

	require.Error(t, errEmail)
	require.Error(t, errPassword)
	require.Equal(t, apperror.KindOf(errEmail), apperror.KindOf(errPassword))
	require.Equal(t, apperror.Message(errEmail), apperror.Message(errPassword))
	require.Equal(t, apperror.Status(errEmail), apperror.Status(errPassword))
	require.Equal(t, http.StatusUnauthorized, apperror.Status(errEmail))
	require.Equal(t, "Invalid credentials", apperror.Message(errEmail))
}

func TestLoginInactiveAccount(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), "acme", "bob@acme.test", "correct-horse")
	require.Error(t, err)
	require.Equal(t, apperror.KindAuthorization, apperror.KindOf(err))
	require.Equal(t, "Account is inactive", apperror.Message(err))
}

// The same email can exist under two tenants; the subdomain picks which
// account logs in.
func TestLoginScopedByTenant(t *testing.T) {
	svc, tenants, users := newAuthFixture(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("other-pw"), bcrypt.MinCost)
	require.NoError(t, err)
	tenants.tenants = append(tenants.tenants, model.Tenant{
		ID: 3, Name: "Initech", Subdomain: "initech", Status: model.TenantStatusActive, MaxProjects: 5,
	})
	users.users = append(users.users, model.User{
		ID: 30, TenantID: 3, Email: "alice@acme.test", PasswordHash: string(hash), Role: model.RoleMember, IsActive: true,
	})

	result, err := svc.Login(context.Background(), "initech", "alice@acme.test", "other-pw")
	require.NoError(t, err)

	principal, err := jwtutil.ValidateToken(result.Token)
	require.NoError(t, err)
	require.Equal(t, uint(30), principal.SubjectID)
	require.Equal(t, uint(3), principal.TenantID)
}
