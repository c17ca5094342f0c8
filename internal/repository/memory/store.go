// Package memory is an in-process persistence backend with the same contract
// as the Postgres repositories, including cascade of project deletion.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"projectmanager/internal/domain"
	"projectmanager/internal/repository"
)

// Store holds all rows. Repositories handed out by it share one lock.
type Store struct {
	mu       sync.RWMutex
	nextID   int64
	users    map[int64]domain.User
	projects map[int64]domain.Project
	tasks    map[int64]domain.Task
}

func New() *Store {
	return &Store{
		users:    make(map[int64]domain.User),
		projects: make(map[int64]domain.Project),
		tasks:    make(map[int64]domain.Task),
	}
}

func (s *Store) Users() *UserRepository       { return &UserRepository{s: s} }
func (s *Store) Projects() *ProjectRepository { return &ProjectRepository{s: s} }
func (s *Store) Tasks() *TaskRepository       { return &TaskRepository{s: s} }

// Ping satisfies the readiness check.
func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

type UserRepository struct{ s *Store }

func (r *UserRepository) Create(_ context.Context, u *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	u.ID = r.s.id()
	u.CreatedAt = time.Now().UTC()
	r.s.users[u.ID] = *u
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	if err == repository.ErrNotFound {
		return false, nil
	}
	return err == nil, err
}

// Delete removes a user and everything the user owns.
func (r *UserRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.users, id)
	for pid, p := range r.s.projects {
		if p.OwnerID == id {
			r.s.deleteProjectLocked(pid)
		}
	}
	return nil
}

type ProjectRepository struct{ s *Store }

func (r *ProjectRepository) Create(_ context.Context, p *domain.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[p.OwnerID]; !ok {
		return repository.ErrNotFound
	}
	p.ID = r.s.id()
	p.CreatedAt = time.Now().UTC()
	r.s.projects[p.ID] = cloneProject(*p)
	return nil
}

func (r *ProjectRepository) GetByID(_ context.Context, id int64) (*domain.Project, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.projects[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	p = cloneProject(p)
	return &p, nil
}

func (r *ProjectRepository) ListByOwner(_ context.Context, ownerID int64) ([]*domain.Project, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.s.projectsOf(ownerID), nil
}

func (r *ProjectRepository) ListByOwnerPaged(_ context.Context, ownerID int64, limit, offset int) ([]*domain.Project, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	all := r.s.projectsOf(ownerID)
	return window(all, limit, offset), int64(len(all)), nil
}

func (r *ProjectRepository) Update(_ context.Context, p *domain.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.projects[p.ID]
	if !ok {
		return repository.ErrNotFound
	}
	stored.Title = p.Title
	stored.Description = p.Description
	r.s.projects[p.ID] = cloneProject(stored)
	return nil
}

func (r *ProjectRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.projects[id]; !ok {
		return repository.ErrNotFound
	}
	r.s.deleteProjectLocked(id)
	return nil
}

type TaskRepository struct{ s *Store }

func (r *TaskRepository) Create(_ context.Context, t *domain.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.projects[t.ProjectID]; !ok {
		return repository.ErrNotFound
	}
	t.ID = r.s.id()
	t.CreatedAt = time.Now().UTC()
	r.s.tasks[t.ID] = cloneTask(*t)
	return nil
}

func (r *TaskRepository) GetByID(_ context.Context, id int64) (*domain.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	t, ok := r.s.tasks[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	t = cloneTask(t)
	return &t, nil
}

func (r *TaskRepository) ListByProject(_ context.Context, projectID int64) ([]*domain.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.s.tasksOf(projectID), nil
}

func (r *TaskRepository) ListByProjectPaged(_ context.Context, projectID int64, limit, offset int) ([]*domain.Task, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	all := r.s.tasksOf(projectID)
	return window(all, limit, offset), int64(len(all)), nil
}

func (r *TaskRepository) Update(_ context.Context, t *domain.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.tasks[t.ID]
	if !ok {
		return repository.ErrNotFound
	}
	stored.Title = t.Title
	stored.Description = t.Description
	stored.DueDate = t.DueDate
	stored.Completed = t.Completed
	r.s.tasks[t.ID] = cloneTask(stored)
	return nil
}

func (r *TaskRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.tasks[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.tasks, id)
	return nil
}

func (r *TaskRepository) CountByProject(_ context.Context, projectID int64) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var n int64
	for _, t := range r.s.tasks {
		if t.ProjectID == projectID {
			n++
		}
	}
	return n, nil
}

func (r *TaskRepository) CountCompletedByProject(_ context.Context, projectID int64) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var n int64
	for _, t := range r.s.tasks {
		if t.ProjectID == projectID && t.Completed {
			n++
		}
	}
	return n, nil
}

// deleteProjectLocked mirrors ON DELETE CASCADE. Caller holds the write lock.
func (s *Store) deleteProjectLocked(id int64) {
	delete(s.projects, id)
	for tid, t := range s.tasks {
		if t.ProjectID == id {
			delete(s.tasks, tid)
		}
	}
}

func (s *Store) projectsOf(ownerID int64) []*domain.Project {
	var res []*domain.Project
	for _, p := range s.projects {
		if p.OwnerID == ownerID {
			p = cloneProject(p)
			res = append(res, &p)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res
}

func (s *Store) tasksOf(projectID int64) []*domain.Task {
	var res []*domain.Task
	for _, t := range s.tasks {
		if t.ProjectID == projectID {
			t = cloneTask(t)
			res = append(res, &t)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res
}

func window[T any](all []T, limit, offset int) []T {
	if offset < 0 || limit <= 0 || offset >= len(all) {
		return nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end]
}

func cloneProject(p domain.Project) domain.Project {
	if p.Description != nil {
		d := *p.Description
		p.Description = &d
	}
	return p
}

func cloneTask(t domain.Task) domain.Task {
	if t.Description != nil {
		d := *t.Description
		t.Description = &d
	}
	if t.DueDate != nil {
		d := *t.DueDate
		t.DueDate = &d
	}
	return t
}
