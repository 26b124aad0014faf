// Package repository declares the persistence gateway interfaces. The
// admin controller and the public-site service depend on these, never on
// the SQLite implementation directly.
package repository

import (
	"context"

	"github.com/mvasiliades/portfolio-api/internal/model"
)

// ListOptions bounds list queries. A non-positive limit falls back to a
// per-implementation default.
type ListOptions struct {
	Limit  int
	Offset int
}

// Gateway is the uniform persistence contract every resource type
// satisfies. One admin workflow, four data shapes: the generic admin
// controller is parameterized over this interface.
//
// Insert assigns the record's id and both timestamps in place. Update
// refreshes updated_at and never touches created_at; it reports
// apperror.ErrNotFound for stale ids, as does Delete. List returns rows
// ordered by created_at descending (most recent first).
type Gateway[T any] interface {
	Insert(ctx context.Context, rec *T) error
	GetByID(ctx context.Context, id string) (*T, error)
	List(ctx context.Context, opts ListOptions) ([]T, error)
	Update(ctx context.Context, rec *T) error
	Delete(ctx context.Context, id string) error
}

// ProjectRepository adds the project-specific read used by the public
// site on top of the uniform gateway.
type ProjectRepository interface {
	Gateway[model.Project]
	ListFeatured(ctx context.Context, opts ListOptions) ([]model.Project, error)
}

// BlogPostRepository adds slug lookup and the server-maintained
// counters. The counters are bumped atomically in SQL so concurrent
// readers never lose increments.
type BlogPostRepository interface {
	Gateway[model.BlogPost]
	GetBySlug(ctx context.Context, slug string) (*model.BlogPost, error)
	ListPublished(ctx context.Context, opts ListOptions) ([]model.BlogPost, error)
	IncrementViews(ctx context.Context, id string) error
	IncrementLikes(ctx context.Context, id string) error
}

// CertificateRepository is the uniform gateway for certificates.
type CertificateRepository interface {
	Gateway[model.Certificate]
}

// TestimonialRepository adds the approved-only read used by the public
// site.
type TestimonialRepository interface {
	Gateway[model.Testimonial]
	ListApproved(ctx context.Context, opts ListOptions) ([]model.Testimonial, error)
}
