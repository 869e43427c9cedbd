package auth

import (
	"context"
	"fmt"
	"strings"
)

// Administrative user management behind /api/users. It shares the account
// store with the credential pipeline; password changes go through the same
// hash policy and summaries stay secret-free.

// UserUpdateInput carries optional changes; nil leaves a field untouched.
type UserUpdateInput struct {
	Name     *string
	Email    *string
	Password *string
	Role     *string
}

func (s *Service) ListUsers(ctx context.Context) ([]UserSummary, error) {
	principals, err := s.store.List(ctx, KindUser)
	if err != nil {
		return nil, err
	}
	out := make([]UserSummary, 0, len(principals))
	for _, p := range principals {
		out = append(out, userSummary(p))
	}
	return out, nil
}

func (s *Service) GetUser(ctx context.Context, id string) (UserSummary, error) {
	p, err := s.store.Find(ctx, KindUser, id)
	if err != nil {
		return UserSummary{}, err
	}
	return userSummary(p), nil
}

func (s *Service) UpdateUser(ctx context.Context, id string, in UserUpdateInput) (UserSummary, error) {
	upd := Update{Name: in.Name, Email: in.Email}
	if in.Email != nil && strings.TrimSpace(*in.Email) == "" {
		return UserSummary{}, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if in.Role != nil {
		switch *in.Role {
		case RoleAdmin, RoleEvaluator, RoleOwner:
			upd.Role = in.Role
		default:
			return UserSummary{}, fmt.Errorf("%w: unsupported role %q", ErrInvalidInput, *in.Role)
		}
	}
	if in.Password != nil {
		if *in.Password == "" {
			return UserSummary{}, fmt.Errorf("%w: password is required", ErrInvalidInput)
		}
		hash, err := HashPassword(*in.Password)
		if err != nil {
			return UserSummary{}, err
		}
		upd.PasswordHash = &hash
	}
	p, err := s.store.Update(ctx, KindUser, id, upd)
	if err != nil {
		return UserSummary{}, err
	}
	return userSummary(p), nil
}

func (s *Service) DeleteUser(ctx context.Context, id string) error {
	return s.store.Delete(ctx, KindUser, id)
}
