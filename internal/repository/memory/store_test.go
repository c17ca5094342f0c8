package memory

import (
	"context"
	"errors"
	"testing"

	"projectmanager/internal/domain"
	"projectmanager/internal/repository"
)

func TestStore_UniqueEmail(t *testing.T) {
	s := New()
	ctx := context.Background()

	if err := s.Users().Create(ctx, &domain.User{Email: "a@example.com"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.Users().Create(ctx, &domain.User{Email: "a@example.com"}); !errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
	ok, err := s.Users().ExistsByEmail(ctx, "A@example.com")
	if err != nil || ok {
		t.Fatalf("email match must be exact: ok=%v err=%v", ok, err)
	}
}

func TestStore_CascadeFromUser(t *testing.T) {
	s := New()
	ctx := context.Background()

	u := &domain.User{Email: "a@example.com"}
	_ = s.Users().Create(ctx, u)
	p := &domain.Project{OwnerID: u.ID, Title: "P"}
	if err := s.Projects().Create(ctx, p); err != nil {
		t.Fatalf("create project: %v", err)
	}
	task := &domain.Task{ProjectID: p.ID, Title: "T"}
	if err := s.Tasks().Create(ctx, task); err != nil {
		t.Fatalf("create task: %v", err)
	}

	if err := s.Users().Delete(ctx, u.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}
	if _, err := s.Projects().GetByID(ctx, p.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("project survived: %v", err)
	}
	if _, err := s.Tasks().GetByID(ctx, task.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("task survived: %v", err)
	}
}

func TestStore_ForeignKeys(t *testing.T) {
	s := New()
	ctx := context.Background()

	if err := s.Projects().Create(ctx, &domain.Project{OwnerID: 42, Title: "P"}); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("project without owner: expected ErrNotFound, got %v", err)
	}
	if err := s.Tasks().Create(ctx, &domain.Task{ProjectID: 42, Title: "T"}); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("task without project: expected ErrNotFound, got %v", err)
	}
}

func TestStore_ReturnsCopies(t *testing.T) {
	s := New()
	ctx := context.Background()

	u := &domain.User{Email: "a@example.com"}
	_ = s.Users().Create(ctx, u)
	desc := "original"
	p := &domain.Project{OwnerID: u.ID, Title: "P", Description: &desc}
	_ = s.Projects().Create(ctx, p)

	got, _ := s.Projects().GetByID(ctx, p.ID)
	*got.Description = "mutated"
	got.Title = "mutated"

	again, _ := s.Projects().GetByID(ctx, p.ID)
	if again.Title != "P" || *again.Description != "original" {
		t.Fatalf("store aliased caller memory: %+v", again)
	}
}

func TestStore_Paging(t *testing.T) {
	s := New()
	ctx := context.Background()
	u := &domain.User{Email: "a@example.com"}
	_ = s.Users().Create(ctx, u)
	for i := 0; i < 3; i++ {
		_ = s.Projects().Create(ctx, &domain.Project{OwnerID: u.ID, Title: "P"})
	}

	res, total, err := s.Projects().ListByOwnerPaged(ctx, u.ID, 2, 2)
	if err != nil || total != 3 || len(res) != 1 {
		t.Fatalf("page 2: len=%d total=%d err=%v", len(res), total, err)
	}
	res, _, _ = s.Projects().ListByOwnerPaged(ctx, u.ID, 2, 10)
	if len(res) != 0 {
		t.Fatalf("offset past end should be empty, got %d", len(res))
	}
}

func TestWindow_OutOfRange(t *testing.T) {
	all := []int{1, 2, 3}
	if got := window(all, 2, -4); got != nil {
		t.Fatalf("negative offset: %v", got)
	}
	if got := window(all, 0, 0); got != nil {
		t.Fatalf("zero limit: %v", got)
	}
	if got := window(all, 2, 2); len(got) != 1 || got[0] != 3 {
		t.Fatalf("tail: %v", got)
	}
}
