package service

import (
	"context"
	"errors"
	"math"
	"testing"
)

func TestProgress_Empty(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice@example.com")
	p := env.project(t, alice, "Empty")

	got, err := env.progress.Get(context.Background(), alice, p.ID)
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if got.ProjectID != p.ID || got.TotalTasks != 0 || got.CompletedTasks != 0 || got.ProgressPercentage != 0 {
		t.Fatalf("unexpected progress: %+v", got)
	}
}

func TestProgress_Counts(t *testing.T) {
	cases := []struct {
		total, done int
		want        float64
	}{
		{4, 1, 25.0},
		{3, 1, 100.0 / 3},
		{2, 2, 100.0},
	}

	for _, tc := range cases {
		env := newTestEnv(t)
		alice := env.register(t, "alice@example.com")
		ctx := context.Background()
		p := env.project(t, alice, "P")

		for i := 0; i < tc.total; i++ {
			task := env.task(t, alice, p.ID, "t")
			if i < tc.done {
				if _, err := env.tasks.ToggleComplete(ctx, alice, p.ID, task.ID); err != nil {
					t.Fatalf("toggle: %v", err)
				}
			}
		}

		got, err := env.progress.Get(ctx, alice, p.ID)
		if err != nil {
			t.Fatalf("progress: %v", err)
		}
		if got.TotalTasks != int64(tc.total) || got.CompletedTasks != int64(tc.done) {
			t.Fatalf("counts = %d/%d; want %d/%d", got.CompletedTasks, got.TotalTasks, tc.done, tc.total)
		}
		if math.Abs(got.ProgressPercentage-tc.want) > 1e-9 {
			t.Fatalf("percentage = %v; want %v", got.ProgressPercentage, tc.want)
		}
	}
}

func TestProgress_Authorization(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice@example.com")
	bob := env.register(t, "bob@example.com")
	ctx := context.Background()
	p := env.project(t, alice, "P")

	if _, err := env.progress.Get(ctx, bob, p.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := env.progress.Get(ctx, alice, p.ID+100); !errors.Is(err, ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}
