package service

import (
	"context"
	"errors"

	"tracker-service/internal/apperror"
	"tracker-service/internal/model"
	"tracker-service/internal/repository"
	"tracker-service/pkg/jwtutil"
)

// AuthService is the credential verifier: it binds a subdomain/email/
// password triple to exactly one tenant and issues a session token.
type AuthService struct {
	tenants   repository.TenantRepository
	users     repository.UserRepository
	passwords PasswordVerifier
}

// NewAuthService builds the credential verifier.
func NewAuthService(tenants repository.TenantRepository, users repository.UserRepository, passwords PasswordVerifier) *AuthService {
	return &AuthService{tenants: tenants, users: users, passwords: passwords}
}

// LoginResult is what a successful login returns to the handler.
type LoginResult struct {
	User      *model.User
	Token     string
	ExpiresIn int
}

// Login authenticates a user within the tenant named by subdomain. An
// unknown email and a wrong password both come back as the same
// "Invalid credentials" error so the response never reveals which part
// of the pair was wrong.
func (s *AuthService) Login(ctx context.Context, subdomain, email, password string) (*LoginResult, error) {
	if subdomain == "" || email == "" || password == "" {
		return nil, apperror.Validation("Email, password and tenant subdomain are required")
	}

	tenant, err := s.tenants.FindBySubdomain(ctx, subdomain)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("Tenant not found")
		}
		return nil, apperror.Internal(err)
	}

	if tenant.Status != model.TenantStatusActive {
		return nil, apperror.Forbidden("Tenant is not active")
	}

	user, err := s.users.FindByEmail(ctx, tenant.ID, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.Authentication("Invalid credentials")
		}
		return nil, apperror.Internal(err)
	}

	if !user.IsActive {
		return nil, apperror.Forbidden("Account is inactive")
	}

	if !s.passwords.Verify(password, user.PasswordHash) {
		return nil, apperror.Authentication("Invalid credentials")
	}

	token, err := jwtutil.GenerateToken(user)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	return &LoginResult{
		User:      user,
		Token:     token,
		ExpiresIn: int(jwtutil.TokenTTL().Seconds()),
	}, nil
}
