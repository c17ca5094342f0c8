package repository

import (
	"context"

	"projectmanager/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TaskRepository struct {
	db *pgxpool.Pool
}

func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{db: db}
}

const taskColumns = `id, project_id, title, description, due_date, completed, created_at`

func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO tasks (project_id, title, description, due_date, completed)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		t.ProjectID, t.Title, t.Description, t.DueDate, t.Completed,
	).Scan(&t.ID, &t.CreatedAt)
	return translate(err)
}

func (r *TaskRepository) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	row := r.db.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id)

	var t domain.Task
	if err := row.Scan(&t.ID, &t.ProjectID, &t.Title, &t.Description, &t.DueDate, &t.Completed, &t.CreatedAt); err != nil {
		return nil, translate(err)
	}
	return &t, nil
}

func (r *TaskRepository) ListByProject(ctx context.Context, projectID int64) ([]*domain.Task, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE project_id = $1 ORDER BY id`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTasks(rows)
}

func (r *TaskRepository) ListByProjectPaged(ctx context.Context, projectID int64, limit, offset int) ([]*domain.Task, int64, error) {
	total, err := r.CountByProject(ctx, projectID)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE project_id = $1 ORDER BY id LIMIT $2 OFFSET $3`,
		projectID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	res, err := scanTasks(rows)
	return res, total, err
}

// Update writes the mutable columns. project_id is never written.
func (r *TaskRepository) Update(ctx context.Context, t *domain.Task) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE tasks SET title = $1, description = $2, due_date = $3, completed = $4 WHERE id = $5`,
		t.Title, t.Description, t.DueDate, t.Completed, t.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *TaskRepository) CountByProject(ctx context.Context, projectID int64) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM tasks WHERE project_id = $1`, projectID).Scan(&n)
	return n, err
}

func (r *TaskRepository) CountCompletedByProject(ctx context.Context, projectID int64) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM tasks WHERE project_id = $1 AND completed = TRUE`, projectID).Scan(&n)
	return n, err
}

func scanTasks(rows pgx.Rows) ([]*domain.Task, error) {
	var res []*domain.Task
	for rows.Next() {
		var t domain.Task
		if err := rows.Scan(&t.ID, &t.ProjectID, &t.Title, &t.Description, &t.DueDate, &t.Completed, &t.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, &t)
	}
	return res, rows.Err()
}
