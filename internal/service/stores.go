package service

import (
	"context"

	"projectmanager/internal/domain"
)

// UserStore is implemented by repository.UserRepository and memory.UserRepository.
type UserStore interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type ProjectStore interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id int64) (*domain.Project, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Project, error)
	ListByOwnerPaged(ctx context.Context, ownerID int64, limit, offset int) ([]*domain.Project, int64, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id int64) error
}

type TaskStore interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id int64) (*domain.Task, error)
	ListByProject(ctx context.Context, projectID int64) ([]*domain.Task, error)
	ListByProjectPaged(ctx context.Context, projectID int64, limit, offset int) ([]*domain.Task, int64, error)
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id int64) error
	CountByProject(ctx context.Context, projectID int64) (int64, error)
	CountCompletedByProject(ctx context.Context, projectID int64) (int64, error)
}
