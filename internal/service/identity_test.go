package service

import (
	"context"
	"errors"
	"testing"
)

func TestCurrentUserID(t *testing.T) {
	env := newTestEnv(t)
	id := env.register(t, "alice@example.com")
	ctx := context.Background()

	got, err := env.identity.CurrentUserID(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != id {
		t.Fatalf("id = %d; want %d", got, id)
	}

	for _, subject := range []string{"", "   "} {
		if _, err := env.identity.CurrentUserID(ctx, subject); !errors.Is(err, ErrUnauthenticated) {
			t.Fatalf("subject %q: expected ErrUnauthenticated, got %v", subject, err)
		}
	}
}

func TestCurrentUserID_UserDeletedAfterTokenIssued(t *testing.T) {
	env := newTestEnv(t)
	id := env.register(t, "alice@example.com")
	ctx := context.Background()

	if err := env.store.Users().Delete(ctx, id); err != nil {
		t.Fatalf("delete user: %v", err)
	}

	if _, err := env.identity.CurrentUserID(ctx, "alice@example.com"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
