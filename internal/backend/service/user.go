package service

import (
	"context"
	"fmt"

	"github.com/robochamp/backend/internal/backend/domain"
	"github.com/robochamp/backend/internal/backend/store"
)

// UserService is the admin surface over accounts: listing, lookup and role
// assignment. Account creation goes through AuthService.SignUp only.
type UserService struct {
	store store.Store
}

func NewUserService(st store.Store) *UserService {
	return &UserService{store: st}
}

func (s *UserService) Get(ctx context.Context, id string) (domain.User, error) {
	u, err := s.store.Users().GetUserByID(ctx, id)
	if err != nil {
		return domain.User{}, mapStoreErr(err)
	}
	return u, nil
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.store.Users().ListUsers(ctx)
}

// Delete removes an account entirely. Their session and any pending tokens
// go with the row.
func (s *UserService) Delete(ctx context.Context, id string) error {
	return mapStoreErr(s.store.Users().DeleteUser(ctx, id))
}

// UpdateRole assigns a new role to an existing user.
func (s *UserService) UpdateRole(ctx context.Context, id string, role domain.Role) (domain.User, error) {
	if !role.Valid() {
		return domain.User{}, fmt.Errorf("%w: unknown role %q", ErrInvalidRequest, role)
	}

	if err := s.store.Users().UpdateRole(ctx, id, role); err != nil {
		return domain.User{}, mapStoreErr(err)
	}
	return s.store.Users().GetUserByID(ctx, id)
}
