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

// BlogPostRepo persists blog posts. Slugs are unique; views and likes
// are bumped atomically in SQL and never written through Update.
type BlogPostRepo struct {
	conn *sql.DB
}

var _ repository.BlogPostRepository = (*BlogPostRepo)(nil)

const blogPostColumns = `id, title, slug, excerpt, content, status, published,
	tags, read_time, views, likes, created_at, updated_at`

// Insert stores a new post, assigning its id and both timestamps. A
// non-positive read time falls back to the default.
func (r *BlogPostRepo) Insert(ctx context.Context, rec *model.BlogPost) error {
	rec.ID = xid.New().String()
	now := time.Now().UTC()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	if rec.ReadTime <= 0 {
		rec.ReadTime = model.DefaultReadTime
	}
	// Counters start at zero regardless of what the caller supplied.
	rec.Views = 0
	rec.Likes = 0

	tags, err := marshalList(rec.Tags)
	if err != nil {
		return fmt.Errorf("sqlite: inserting blog post: %w", err)
	}

	_, err = r.conn.ExecContext(ctx,
		`INSERT INTO blog_posts (`+blogPostColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Title, rec.Slug, rec.Excerpt, rec.Content, rec.Status,
		rec.Published, tags, rec.ReadTime, rec.Views, rec.Likes,
		rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("blog post", fmt.Sprintf("slug %q already exists", rec.Slug))
		}
		return fmt.Errorf("sqlite: inserting blog post: %w", err)
	}
	return nil
}

// GetByID fetches a single post.
func (r *BlogPostRepo) GetByID(ctx context.Context, id string) (*model.BlogPost, error) {
	row := r.conn.QueryRowContext(ctx,
		`SELECT `+blogPostColumns+` FROM blog_posts WHERE id = ?`, id)
	rec, err := scanBlogPost(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("blog post", id)
		}
		return nil, fmt.Errorf("sqlite: getting blog post %s: %w", id, err)
	}
	return rec, nil
}

// GetBySlug fetches a single post by its URL slug.
func (r *BlogPostRepo) GetBySlug(ctx context.Context, slug string) (*model.BlogPost, error) {
	row := r.conn.QueryRowContext(ctx,
		`SELECT `+blogPostColumns+` FROM blog_posts WHERE slug = ?`, slug)
	rec, err := scanBlogPost(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("blog post", slug)
		}
		return nil, fmt.Errorf("sqlite: getting blog post by slug %s: %w", slug, err)
	}
	return rec, nil
}

// List returns all posts, drafts included, most recent first.
func (r *BlogPostRepo) List(ctx context.Context, opts repository.ListOptions) ([]model.BlogPost, error) {
	return r.list(ctx, opts, false)
}

// ListPublished returns only published posts, most recent first.
func (r *BlogPostRepo) ListPublished(ctx context.Context, opts repository.ListOptions) ([]model.BlogPost, error) {
	return r.list(ctx, opts, true)
}

func (r *BlogPostRepo) list(ctx context.Context, opts repository.ListOptions, publishedOnly bool) ([]model.BlogPost, error) {
	limit, offset := clampList(opts.Limit, opts.Offset)

	query := `SELECT ` + blogPostColumns + ` FROM blog_posts`
	if publishedOnly {
		query += ` WHERE status = 'published'`
	}
	query += ` ORDER BY created_at DESC LIMIT ? OFFSET ?`

	rows, err := r.conn.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing blog posts: %w", err)
	}
	defer rows.Close()

	records := make([]model.BlogPost, 0, limit)
	for rows.Next() {
		rec, err := scanBlogPost(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning blog post row: %w", err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating blog posts: %w", err)
	}
	return records, nil
}

// Update rewrites the operator-editable columns. created_at, views and
// likes are not in the SET clause: creation time is immutable and the
// counters belong to the increment methods.
func (r *BlogPostRepo) Update(ctx context.Context, rec *model.BlogPost) error {
	rec.UpdatedAt = time.Now().UTC()
	if rec.ReadTime <= 0 {
		rec.ReadTime = model.DefaultReadTime
	}

	tags, err := marshalList(rec.Tags)
	if err != nil {
		return fmt.Errorf("sqlite: updating blog post %s: %w", rec.ID, err)
	}

	result, err := r.conn.ExecContext(ctx,
		`UPDATE blog_posts
		 SET title = ?, slug = ?, excerpt = ?, content = ?, status = ?,
		     published = ?, tags = ?, read_time = ?, updated_at = ?
		 WHERE id = ?`,
		rec.Title, rec.Slug, rec.Excerpt, rec.Content, rec.Status,
		rec.Published, tags, rec.ReadTime, rec.UpdatedAt, rec.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("blog post", fmt.Sprintf("slug %q already exists", rec.Slug))
		}
		return fmt.Errorf("sqlite: updating blog post %s: %w", rec.ID, err)
	}
	return checkAffected(result, "blog post", rec.ID)
}

// Delete removes a post; stale ids report not found.
func (r *BlogPostRepo) Delete(ctx context.Context, id string) error {
	result, err := r.conn.ExecContext(ctx, `DELETE FROM blog_posts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting blog post %s: %w", id, err)
	}
	return checkAffected(result, "blog post", id)
}

// IncrementViews bumps the view counter by one.
func (r *BlogPostRepo) IncrementViews(ctx context.Context, id string) error {
	return r.increment(ctx, "views", id)
}

// IncrementLikes bumps the like counter by one.
func (r *BlogPostRepo) IncrementLikes(ctx context.Context, id string) error {
	return r.increment(ctx, "likes", id)
}

func (r *BlogPostRepo) increment(ctx context.Context, column, id string) error {
	// column is one of the two fixed counter names, never user input.
	result, err := r.conn.ExecContext(ctx,
		`UPDATE blog_posts SET `+column+` = `+column+` + 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: incrementing %s for blog post %s: %w", column, id, err)
	}
	return checkAffected(result, "blog post", id)
}

func scanBlogPost(row rowScanner) (*model.BlogPost, error) {
	var rec model.BlogPost
	var tags string
	if err := row.Scan(
		&rec.ID, &rec.Title, &rec.Slug, &rec.Excerpt, &rec.Content,
		&rec.Status, &rec.Published, &tags, &rec.ReadTime,
		&rec.Views, &rec.Likes, &rec.CreatedAt, &rec.UpdatedAt,
	); err != nil {
		return nil, err
	}
	list, err := scanList(tags)
	if err != nil {
		return nil, err
	}
	rec.Tags = list
	return &rec, nil
}
