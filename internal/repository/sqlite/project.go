package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/mvasiliades/portfolio-api/internal/apperror"
	"github.com/mvasiliades/portfolio-api/internal/model"
	"github.com/mvasiliades/portfolio-api/internal/repository"
)

// ProjectRepo persists projects. It satisfies both the uniform gateway
// and the project-specific reads.
type ProjectRepo struct {
	conn *sql.DB
}

var _ repository.ProjectRepository = (*ProjectRepo)(nil)

const projectColumns = `id, title, description, status, category, technologies,
	featured, repo_url, demo_url, image_url, created_at, updated_at`

// Insert stores a new project, assigning its id and both timestamps on
// the passed record.
func (r *ProjectRepo) Insert(ctx context.Context, rec *model.Project) error {
	rec.ID = xid.New().String()
	now := time.Now().UTC()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	techs, err := marshalList(rec.Technologies)
	if err != nil {
		return fmt.Errorf("sqlite: inserting project: %w", err)
	}

	_, err = r.conn.ExecContext(ctx,
		`INSERT INTO projects (`+projectColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Title, rec.Description, rec.Status, rec.Category, techs,
		rec.Featured, rec.RepoURL, rec.DemoURL, rec.ImageURL,
		rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting project: %w", err)
	}
	return nil
}

// GetByID fetches a single project.
func (r *ProjectRepo) GetByID(ctx context.Context, id string) (*model.Project, error) {
	row := r.conn.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	rec, err := scanProject(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("project", id)
		}
		return nil, fmt.Errorf("sqlite: getting project %s: %w", id, err)
	}
	return rec, nil
}

// List returns projects ordered most recent first.
func (r *ProjectRepo) List(ctx context.Context, opts repository.ListOptions) ([]model.Project, error) {
	return r.list(ctx, opts, false)
}

// ListFeatured returns only the featured projects, most recent first.
func (r *ProjectRepo) ListFeatured(ctx context.Context, opts repository.ListOptions) ([]model.Project, error) {
	return r.list(ctx, opts, true)
}

func (r *ProjectRepo) list(ctx context.Context, opts repository.ListOptions, featuredOnly bool) ([]model.Project, error) {
	limit, offset := clampList(opts.Limit, opts.Offset)

	query := `SELECT ` + projectColumns + ` FROM projects`
	if featuredOnly {
		query += ` WHERE featured = 1`
	}
	query += ` ORDER BY created_at DESC LIMIT ? OFFSET ?`

	rows, err := r.conn.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing projects: %w", err)
	}
	defer rows.Close()

	records := make([]model.Project, 0, limit)
	for rows.Next() {
		rec, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning project row: %w", err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating projects: %w", err)
	}
	return records, nil
}

// Update rewrites every operator-editable column. created_at is never
// part of the SET clause, so the original creation time survives edits.
func (r *ProjectRepo) Update(ctx context.Context, rec *model.Project) error {
	rec.UpdatedAt = time.Now().UTC()

	techs, err := marshalList(rec.Technologies)
	if err != nil {
		return fmt.Errorf("sqlite: updating project %s: %w", rec.ID, err)
	}

	result, err := r.conn.ExecContext(ctx,
		`UPDATE projects
		 SET title = ?, description = ?, status = ?, category = ?,
		     technologies = ?, featured = ?, repo_url = ?, demo_url = ?,
		     image_url = ?, updated_at = ?
		 WHERE id = ?`,
		rec.Title, rec.Description, rec.Status, rec.Category,
		techs, rec.Featured, rec.RepoURL, rec.DemoURL,
		rec.ImageURL, rec.UpdatedAt, rec.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating project %s: %w", rec.ID, err)
	}
	return checkAffected(result, "project", rec.ID)
}

// Delete removes a project; stale ids report not found.
func (r *ProjectRepo) Delete(ctx context.Context, id string) error {
	result, err := r.conn.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting project %s: %w", id, err)
	}
	return checkAffected(result, "project", id)
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*model.Project, error) {
	var rec model.Project
	var techs string
	if err := row.Scan(
		&rec.ID, &rec.Title, &rec.Description, &rec.Status, &rec.Category,
		&techs, &rec.Featured, &rec.RepoURL, &rec.DemoURL, &rec.ImageURL,
		&rec.CreatedAt, &rec.UpdatedAt,
	); err != nil {
		return nil, err
	}
	list, err := scanList(techs)
	if err != nil {
		return nil, err
	}
	rec.Technologies = list
	return &rec, nil
}

// checkAffected translates a zero-row UPDATE/DELETE into a not-found
// domain error.
func checkAffected(result sql.Result, resource, id string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if affected == 0 {
		return apperror.NotFound(resource, id)
	}
	return nil
}
