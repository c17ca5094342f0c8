package service

import (
	"context"
	"errors"
	"fmt"

	"projectmanager/internal/domain"
	"projectmanager/internal/logger"
	"projectmanager/internal/repository"
)

// ProjectService owns project CRUD. Every project-scoped access goes through GetOwned.
type ProjectService struct {
	projects ProjectStore
	users    UserStore
}

func NewProjectService(projects ProjectStore, users UserStore) *ProjectService {
	return &ProjectService{projects: projects, users: users}
}

func (s *ProjectService) Create(ctx context.Context, userID int64, title string, description *string) (*domain.Project, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find owner: %w", err)
	}

	p := &domain.Project{
		OwnerID:     userID,
		Title:       title,
		Description: description,
	}
	if err := s.projects.Create(ctx, p); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("create project: %w", err)
	}
	return p, nil
}

func (s *ProjectService) List(ctx context.Context, userID int64) ([]*domain.Project, error) {
	res, err := s.projects.ListByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return res, nil
}

func (s *ProjectService) ListPaged(ctx context.Context, userID int64, req domain.PageRequest) (domain.Page[*domain.Project], error) {
	req = req.Normalize()
	res, total, err := s.projects.ListByOwnerPaged(ctx, userID, req.Size, req.Offset())
	if err != nil {
		return domain.Page[*domain.Project]{}, fmt.Errorf("list projects: %w", err)
	}
	return domain.NewPage(res, total, req), nil
}

// GetOwned returns the project if userID owns it. A missing project is
// ErrProjectNotFound; a project owned by someone else is ErrForbidden.
func (s *ProjectService) GetOwned(ctx context.Context, userID, projectID int64) (*domain.Project, error) {
	p, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("find project: %w", err)
	}

	if p.OwnerID != userID {
		logger.WithContext(ctx).Warn("project access denied", "user_id", userID, "project_id", projectID)
		return nil, ErrForbidden
	}
	return p, nil
}

func (s *ProjectService) Update(ctx context.Context, userID, projectID int64, title string, description *string) (*domain.Project, error) {
	p, err := s.GetOwned(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}

	p.Title = title
	p.Description = description
	if err := s.projects.Update(ctx, p); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("update project: %w", err)
	}
	return p, nil
}

// Delete removes the project together with all of its tasks.
func (s *ProjectService) Delete(ctx context.Context, userID, projectID int64) error {
	if _, err := s.GetOwned(ctx, userID, projectID); err != nil {
		return err
	}

	if err := s.projects.Delete(ctx, projectID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("delete project: %w", err)
	}

	logger.WithContext(ctx).Info("project deleted", "user_id", userID, "project_id", projectID)
	return nil
}
