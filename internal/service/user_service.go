package service

import (
	"context"

	"tracker-service/internal/apperror"
	"tracker-service/internal/model"
	"tracker-service/internal/repository"
	"tracker-service/pkg/config"
)

// UserService lists the users of the principal's own tenant, mainly for
// assignee pickers. There is no cross-tenant user listing.
type UserService struct {
	users repository.UserRepository
	pages config.PageConfig
}

// NewUserService builds the user service.
func NewUserService(users repository.UserRepository, pages config.PageConfig) *UserService {
	return &UserService{users: users, pages: pages}
}

// UserList is a page of users plus its metadata.
type UserList struct {
	Users      []model.User
	Pagination Pagination
}

// List returns the users of the principal's tenant.
func (s *UserService) List(ctx context.Context, p model.Principal, page, limit int) (*UserList, error) {
	pg := clampPage(page, limit, s.pages)

	users, total, err := s.users.List(ctx, p.TenantID, pg)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	return &UserList{
		Users:      users,
		Pagination: paginate(total, pg),
	}, nil
}
