package service

import (
	"context"
	"fmt"

	"projectmanager/internal/domain"
)

type ProgressService struct {
	tasks    TaskStore
	projects *ProjectService
}

func NewProgressService(tasks TaskStore, projects *ProjectService) *ProgressService {
	return &ProgressService{tasks: tasks, projects: projects}
}

// Get counts tasks with two count queries rather than loading the task list.
func (s *ProgressService) Get(ctx context.Context, userID, projectID int64) (domain.Progress, error) {
	if _, err := s.projects.GetOwned(ctx, userID, projectID); err != nil {
		return domain.Progress{}, err
	}

	total, err := s.tasks.CountByProject(ctx, projectID)
	if err != nil {
		return domain.Progress{}, fmt.Errorf("count tasks: %w", err)
	}
	done, err := s.tasks.CountCompletedByProject(ctx, projectID)
	if err != nil {
		return domain.Progress{}, fmt.Errorf("count completed tasks: %w", err)
	}

	return domain.NewProgress(projectID, total, done), nil
}
