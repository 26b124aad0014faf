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

// TestimonialRepo persists testimonials.
type TestimonialRepo struct {
	conn *sql.DB
}

var _ repository.TestimonialRepository = (*TestimonialRepo)(nil)

const testimonialColumns = `id, author_name, author_role, company, feedback,
	rating, status, avatar_url, created_at, updated_at`

// Insert stores a new testimonial, assigning its id and both timestamps.
// New submissions default to pending moderation.
func (r *TestimonialRepo) Insert(ctx context.Context, rec *model.Testimonial) error {
	rec.ID = xid.New().String()
	now := time.Now().UTC()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	if rec.Status == "" {
		rec.Status = model.TestimonialStatusPending
	}

	_, err := r.conn.ExecContext(ctx,
		`INSERT INTO testimonials (`+testimonialColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.AuthorName, rec.AuthorRole, rec.Company, rec.Feedback,
		rec.Rating, rec.Status, rec.AvatarURL, rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting testimonial: %w", err)
	}
	return nil
}

// GetByID fetches a single testimonial.
func (r *TestimonialRepo) GetByID(ctx context.Context, id string) (*model.Testimonial, error) {
	row := r.conn.QueryRowContext(ctx,
		`SELECT `+testimonialColumns+` FROM testimonials WHERE id = ?`, id)
	rec, err := scanTestimonial(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("testimonial", id)
		}
		return nil, fmt.Errorf("sqlite: getting testimonial %s: %w", id, err)
	}
	return rec, nil
}

// List returns all testimonials, pending included, most recent first.
func (r *TestimonialRepo) List(ctx context.Context, opts repository.ListOptions) ([]model.Testimonial, error) {
	return r.list(ctx, opts, false)
}

// ListApproved returns only approved testimonials, most recent first.
func (r *TestimonialRepo) ListApproved(ctx context.Context, opts repository.ListOptions) ([]model.Testimonial, error) {
	return r.list(ctx, opts, true)
}

func (r *TestimonialRepo) list(ctx context.Context, opts repository.ListOptions, approvedOnly bool) ([]model.Testimonial, error) {
	limit, offset := clampList(opts.Limit, opts.Offset)

	query := `SELECT ` + testimonialColumns + ` FROM testimonials`
	if approvedOnly {
		query += ` WHERE status = 'approved'`
	}
	query += ` ORDER BY created_at DESC LIMIT ? OFFSET ?`

	rows, err := r.conn.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing testimonials: %w", err)
	}
	defer rows.Close()

	records := make([]model.Testimonial, 0, limit)
	for rows.Next() {
		rec, err := scanTestimonial(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning testimonial row: %w", err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating testimonials: %w", err)
	}
	return records, nil
}

// Update rewrites the operator-editable columns; created_at survives.
func (r *TestimonialRepo) Update(ctx context.Context, rec *model.Testimonial) error {
	rec.UpdatedAt = time.Now().UTC()

	result, err := r.conn.ExecContext(ctx,
		`UPDATE testimonials
		 SET author_name = ?, author_role = ?, company = ?, feedback = ?,
		     rating = ?, status = ?, avatar_url = ?, updated_at = ?
		 WHERE id = ?`,
		rec.AuthorName, rec.AuthorRole, rec.Company, rec.Feedback,
		rec.Rating, rec.Status, rec.AvatarURL, rec.UpdatedAt, rec.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating testimonial %s: %w", rec.ID, err)
	}
	return checkAffected(result, "testimonial", rec.ID)
}

// Delete removes a testimonial; stale ids report not found.
func (r *TestimonialRepo) Delete(ctx context.Context, id string) error {
	result, err := r.conn.ExecContext(ctx, `DELETE FROM testimonials WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting testimonial %s: %w", id, err)
	}
	return checkAffected(result, "testimonial", id)
}

func scanTestimonial(row rowScanner) (*model.Testimonial, error) {
	var rec model.Testimonial
	if err := row.Scan(
		&rec.ID, &rec.AuthorName, &rec.AuthorRole, &rec.Company, &rec.Feedback,
		&rec.Rating, &rec.Status, &rec.AvatarURL, &rec.CreatedAt, &rec.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &rec, nil
}
