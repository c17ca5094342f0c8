package service

import (
	"context"
	"errors"
	"fmt"

	"projectmanager/internal/domain"
	"projectmanager/internal/repository"
)

// TaskService authorizes in two steps: the project must be owned by the
// caller, and the task must belong to that project.
type TaskService struct {
	tasks    TaskStore
	projects *ProjectService
}

func NewTaskService(tasks TaskStore, projects *ProjectService) *TaskService {
	return &TaskService{tasks: tasks, projects: projects}
}

func (s *TaskService) Add(ctx context.Context, userID, projectID int64, in domain.TaskInput) (*domain.Task, error) {
	if _, err := s.projects.GetOwned(ctx, userID, projectID); err != nil {
		return nil, err
	}

	t := &domain.Task{
		ProjectID:   projectID,
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		Completed:   false,
	}
	if err := s.tasks.Create(ctx, t); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("create task: %w", err)
	}
	return t, nil
}

func (s *TaskService) List(ctx context.Context, userID, projectID int64) ([]*domain.Task, error) {
	if _, err := s.projects.GetOwned(ctx, userID, projectID); err != nil {
		return nil, err
	}

	res, err := s.tasks.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return res, nil
}

func (s *TaskService) ListPaged(ctx context.Context, userID, projectID int64, req domain.PageRequest) (domain.Page[*domain.Task], error) {
	if _, err := s.projects.GetOwned(ctx, userID, projectID); err != nil {
		return domain.Page[*domain.Task]{}, err
	}

	req = req.Normalize()
	res, total, err := s.tasks.ListByProjectPaged(ctx, projectID, req.Size, req.Offset())
	if err != nil {
		return domain.Page[*domain.Task]{}, fmt.Errorf("list tasks: %w", err)
	}
	return domain.NewPage(res, total, req), nil
}

// Get returns ErrTaskNotFound both for unknown ids and for tasks that live
// under another project.
func (s *TaskService) Get(ctx context.Context, userID, projectID, taskID int64) (*domain.Task, error) {
	if _, err := s.projects.GetOwned(ctx, userID, projectID); err != nil {
		return nil, err
	}

	t, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}

	if t.ProjectID != projectID {
		return nil, ErrTaskNotFound
	}
	return t, nil
}

// Update overwrites title, description and due date. Completed is left alone.
func (s *TaskService) Update(ctx context.Context, userID, projectID, taskID int64, in domain.TaskInput) (*domain.Task, error) {
	t, err := s.Get(ctx, userID, projectID, taskID)
	if err != nil {
		return nil, err
	}

	t.Title = in.Title
	t.Description = in.Description
	t.DueDate = in.DueDate
	return t, s.save(ctx, t)
}

func (s *TaskService) ToggleComplete(ctx context.Context, userID, projectID, taskID int64) (*domain.Task, error) {
	t, err := s.Get(ctx, userID, projectID, taskID)
	if err != nil {
		return nil, err
	}

	t.Completed = !t.Completed
	return t, s.save(ctx, t)
}

func (s *TaskService) Delete(ctx context.Context, userID, projectID, taskID int64) error {
	if _, err := s.Get(ctx, userID, projectID, taskID); err != nil {
		return err
	}

	if err := s.tasks.Delete(ctx, taskID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

func (s *TaskService) save(ctx context.Context, t *domain.Task) error {
	if err := s.tasks.Update(ctx, t); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("update task: %w", err)
	}
	return nil
}
