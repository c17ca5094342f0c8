package service

import (
	"context"
	"testing"
	"time"

	"projectmanager/internal/domain"
	"projectmanager/internal/repository/memory"

	"golang.org/x/crypto/bcrypt"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type testEnv struct {
	store    *memory.Store
	tokens   *TokenIssuer
	auth     *AuthService
	identity *IdentityResolver
	projects *ProjectService
	tasks    *TaskService
	progress *ProgressService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := memory.New()
	tokens, err := NewTokenIssuer(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("token issuer: %v", err)
	}
	projects := NewProjectService(store.Projects(), store.Users())
	return &testEnv{
		store:    store,
		tokens:   tokens,
		auth:     NewAuthService(store.Users(), NewPasswordHasher(bcrypt.MinCost), tokens),
		identity: NewIdentityResolver(store.Users()),
		projects: projects,
		tasks:    NewTaskService(store.Tasks(), projects),
		progress: NewProgressService(store.Tasks(), projects),
	}
}

func (e *testEnv) register(t *testing.T, email string) int64 {
	t.Helper()
	res, err := e.auth.Register(context.Background(), email, "secret-password", "Test User")
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	return res.UserID
}

func (e *testEnv) project(t *testing.T, userID int64, title string) *domain.Project {
	t.Helper()
	p, err := e.projects.Create(context.Background(), userID, title, nil)
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	return p
}

func (e *testEnv) task(t *testing.T, userID, projectID int64, title string) *domain.Task {
	t.Helper()
	task, err := e.tasks.Add(context.Background(), userID, projectID, domain.TaskInput{Title: title})
	if err != nil {
		t.Fatalf("add task: %v", err)
	}
	return task
}

func strPtr(s string) *string { return &s }
