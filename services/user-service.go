package services

import (
	"context"
	"errors"
	"fmt"

	"project-manager/backend/models"
	"project-manager/backend/repositories"
)

// UserService is the read-only profile surface over the users
// collection.
type UserService struct {
	users repositories.UserRepository
}

func NewUserService(users repositories.UserRepository) *UserService {
	return &UserService{users: users}
}

// Me returns the caller's own record as a public projection.
// ErrNotFound covers a record deleted since the token was issued.
func (s *UserService) Me(ctx context.Context, principal *models.Principal) (*models.PublicUser, error) {
	if principal == nil {
		return nil, ErrUnauthorized
	}

	user, err := s.users.FindByID(ctx, principal.ID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	return user.Public(), nil
}

// ListMembers returns every user with the member role, for assignee
// selection. Password hashes never leave this layer.
func (s *UserService) ListMembers(ctx context.Context) ([]models.PublicUser, error) {
	users, err := s.users.FindByRole(ctx, models.RoleMember)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch members: %w", err)
	}

	members := make([]models.PublicUser, 0, len(users))
	for i := range users {
		members = append(members, *users[i].Public())
	}
	return members, nil
}
