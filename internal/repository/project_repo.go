package repository

import (
	"context"

	"projectmanager/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProjectRepository struct {
	db *pgxpool.Pool
}

func NewProjectRepository(db *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{db: db}
}

const projectColumns = `id, user_id, title, description, created_at`

func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO projects (user_id, title, description)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		p.OwnerID, p.Title, p.Description,
	).Scan(&p.ID, &p.CreatedAt)
	return translate(err)
}

func (r *ProjectRepository) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	row := r.db.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id)

	var p domain.Project
	if err := row.Scan(&p.ID, &p.OwnerID, &p.Title, &p.Description, &p.CreatedAt); err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *ProjectRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Project, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE user_id = $1 ORDER BY id`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanProjects(rows)
}

// ListByOwnerPaged returns one page of the owner's projects and the owner's total count.
func (r *ProjectRepository) ListByOwnerPaged(ctx context.Context, ownerID int64, limit, offset int) ([]*domain.Project, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM projects WHERE user_id = $1`, ownerID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE user_id = $1 ORDER BY id LIMIT $2 OFFSET $3`,
		ownerID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	res, err := scanProjects(rows)
	return res, total, err
}

// Update overwrites title and description. Owner is never written.
func (r *ProjectRepository) Update(ctx context.Context, p *domain.Project) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE projects SET title = $1, description = $2 WHERE id = $3`,
		p.Title, p.Description, p.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the project; tasks go with it through ON DELETE CASCADE.
func (r *ProjectRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanProjects(rows pgx.Rows) ([]*domain.Project, error) {
	var res []*domain.Project
	for rows.Next() {
		var p domain.Project
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.Title, &p.Description, &p.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, &p)
	}
	return res, rows.Err()
}
