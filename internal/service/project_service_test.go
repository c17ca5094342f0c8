package service

import (
	"context"
	"errors"
	"testing"

	"projectmanager/internal/domain"
)

func TestCreateProject_UnknownUser(t *testing.T) {
	env := newTestEnv(t)

	if _, err := env.projects.Create(context.Background(), 999, "Ghost", nil); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestProjectRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice@example.com")
	ctx := context.Background()

	created, err := env.projects.Create(ctx, alice, "Launch", strPtr("first release"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := env.projects.GetOwned(ctx, alice, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "Launch" || got.Description == nil || *got.Description != "first release" {
		t.Fatalf("unexpected project: %+v", got)
	}

	if _, err := env.projects.Update(ctx, alice, created.ID, "Launch v2", nil); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err = env.projects.GetOwned(ctx, alice, created.ID)
	if err != nil {
		t.Fatalf("get after update: %v", err)
	}
	if got.Title != "Launch v2" || got.Description != nil {
		t.Fatalf("update not reflected: %+v", got)
	}
	if got.ID != created.ID || got.OwnerID != alice {
		t.Fatalf("id/owner changed: %+v", got)
	}
}

func TestGetOwned_Authorization(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice@example.com")
	bob := env.register(t, "bob@example.com")
	ctx := context.Background()
	p := env.project(t, alice, "Private")

	if _, err := env.projects.GetOwned(ctx, bob, p.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("foreign project: expected ErrForbidden, got %v", err)
	}
	if _, err := env.projects.GetOwned(ctx, alice, p.ID+100); !errors.Is(err, ErrProjectNotFound) {
		t.Fatalf("missing project: expected ErrProjectNotFound, got %v", err)
	}
	if _, err := env.projects.Update(ctx, bob, p.ID, "Hijack", nil); !errors.Is(err, ErrForbidden) {
		t.Fatalf("foreign update: expected ErrForbidden, got %v", err)
	}
	if err := env.projects.Delete(ctx, bob, p.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("foreign delete: expected ErrForbidden, got %v", err)
	}

	got, err := env.projects.GetOwned(ctx, alice, p.ID)
	if err != nil {
		t.Fatalf("owner get: %v", err)
	}
	if got.Title != "Private" {
		t.Fatalf("project changed by foreign user: %+v", got)
	}
}

func TestListProjects_OwnerScoped(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice@example.com")
	bob := env.register(t, "bob@example.com")
	ctx := context.Background()

	env.project(t, alice, "A1")
	env.project(t, bob, "B1")
	env.project(t, alice, "A2")

	res, err := env.projects.List(ctx, alice)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(res) != 2 || res[0].Title != "A1" || res[1].Title != "A2" {
		t.Fatalf("unexpected list: %+v", res)
	}
}

func TestListProjectsPaged(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice@example.com")
	ctx := context.Background()
	for _, title := range []string{"p1", "p2", "p3", "p4", "p5"} {
		env.project(t, alice, title)
	}

	page, err := env.projects.ListPaged(ctx, alice, domain.PageRequest{Page: 1, Size: 2})
	if err != nil {
		t.Fatalf("list paged: %v", err)
	}
	if page.TotalElements != 5 || page.TotalPages != 3 || page.Number != 1 || page.Size != 2 {
		t.Fatalf("unexpected page meta: %+v", page)
	}
	if len(page.Content) != 2 || page.Content[0].Title != "p3" || page.Content[1].Title != "p4" {
		t.Fatalf("unexpected page content: %+v", page.Content)
	}
	if page.First || page.Last {
		t.Fatalf("middle page flagged first/last: %+v", page)
	}

	last, err := env.projects.ListPaged(ctx, alice, domain.PageRequest{Page: 2, Size: 2})
	if err != nil {
		t.Fatalf("list last page: %v", err)
	}
	if len(last.Content) != 1 || !last.Last {
		t.Fatalf("unexpected last page: %+v", last)
	}
}

func TestDeleteProject_CascadesTasks(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice@example.com")
	ctx := context.Background()
	p := env.project(t, alice, "Doomed")
	t1 := env.task(t, alice, p.ID, "one")
	t2 := env.task(t, alice, p.ID, "two")

	if err := env.projects.Delete(ctx, alice, p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := env.tasks.List(ctx, alice, p.ID); !errors.Is(err, ErrProjectNotFound) {
		t.Fatalf("list after delete: expected ErrProjectNotFound, got %v", err)
	}
	for _, id := range []int64{t1.ID, t2.ID} {
		if _, err := env.store.Tasks().GetByID(ctx, id); err == nil {
			t.Fatalf("task %d survived project deletion", id)
		}
	}
}
