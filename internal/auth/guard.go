package auth

import (
	"context"
	"errors"
	"fmt"

	"myContacts/models"
)

var (
	// ErrUnauthenticated means no valid session is attached to the call.
	ErrUnauthenticated = errors.New("not logged in")
	// ErrForbidden means the caller's role does not allow the operation.
	ErrForbidden = errors.New("permission denied")
)

// UserLookup is the slice of the user store the guards need.
type UserLookup interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// RequirePrincipal ensures a principal is present in context.
func RequirePrincipal(ctx context.Context) (*Principal, error) {
	p, ok := FromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}
	return p, nil
}

// RequireRole ensures the principal has the given role.
func RequireRole(ctx context.Context, role models.Role) (*Principal, error) {
	p, err := RequirePrincipal(ctx)
	if err != nil {
		return nil, err
	}
	if p.Role != role {
		return nil, fmt.Errorf("%w: only %s can perform this action", ErrForbidden, role)
	}
	return p, nil
}

// RequireAdmin ensures the caller is an admin principal AND that the stored
// credential row with the principal's id still carries the admin role.
func RequireAdmin(ctx context.Context, users UserLookup) (*Principal, error) {
	p, err := RequireRole(ctx, models.RoleAdmin)
	if err != nil {
		return nil, err
	}
	if users == nil {
		return nil, errors.New("users repository not configured")
	}
	u, err := users.GetByID(ctx, p.UserID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if u == nil || u.Role != models.RoleAdmin || u.Username != p.Username {
		return nil, fmt.Errorf("%w: only admin can perform this action", ErrForbidden)
	}
	return p, nil
}
