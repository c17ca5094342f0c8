package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"projectmanager/internal/repository"
)

// IdentityResolver turns the verified token subject into a user id.
type IdentityResolver struct {
	users UserStore
}

func NewIdentityResolver(users UserStore) *IdentityResolver {
	return &IdentityResolver{users: users}
}

// CurrentUserID fails with ErrUnauthenticated for a blank subject and with
// ErrUserNotFound when the user no longer exists.
func (r *IdentityResolver) CurrentUserID(ctx context.Context, subject string) (int64, error) {
	if strings.TrimSpace(subject) == "" {
		return 0, ErrUnauthenticated
	}

	user, err := r.users.GetByEmail(ctx, subject)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrUserNotFound
		}
		return 0, fmt.Errorf("resolve identity: %w", err)
	}
	return user.ID, nil
}
