// Package service contains the business logic layer. Handlers parse
// HTTP and write responses; services enforce the rules and orchestrate
// repositories; repositories own the SQL. Services depend on the
// repository interfaces, never on the sqlite package.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mvasiliades/portfolio-api/internal/apperror"
	"github.com/mvasiliades/portfolio-api/internal/model"
	"github.com/mvasiliades/portfolio-api/internal/repository"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// CertificateView is a certificate annotated with its derived expiry
// state. Expiry is computed at read time and never stored.
type CertificateView struct {
	model.Certificate
	Expired bool `json:"expired"`
}

// Portfolio serves the public site: published posts only, approved
// testimonials only, and blog counters bumped server-side.
type Portfolio struct {
	projects     repository.ProjectRepository
	posts        repository.BlogPostRepository
	certificates repository.CertificateRepository
	testimonials repository.TestimonialRepository
	logger       *slog.Logger
	now          func() time.Time
}

// NewPortfolio creates the public-site service.
func NewPortfolio(
	projects repository.ProjectRepository,
	posts repository.BlogPostRepository,
	certificates repository.CertificateRepository,
	testimonials repository.TestimonialRepository,
	logger *slog.Logger,
) *Portfolio {
	return &Portfolio{
		projects:     projects,
		posts:        posts,
		certificates: certificates,
		testimonials: testimonials,
		logger:       logger,
		now:          time.Now,
	}
}

// clampList bounds pagination so callers can't request unbounded rows.
func clampList(limit, offset int) repository.ListOptions {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return repository.ListOptions{Limit: limit, Offset: offset}
}

// Projects lists projects most recent first, optionally only the
// featured ones.
func (s *Portfolio) Projects(ctx context.Context, featuredOnly bool, limit, offset int) ([]model.Project, error) {
	opts := clampList(limit, offset)

	var (
		records []model.Project
		err     error
	)
	if featuredOnly {
		records, err = s.projects.ListFeatured(ctx, opts)
	} else {
		records, err = s.projects.List(ctx, opts)
	}
	if err != nil {
		s.logger.Error("failed to list projects", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	return records, nil
}

// PublishedPosts lists published posts only; drafts never leave the
// admin surface.
func (s *Portfolio) PublishedPosts(ctx context.Context, limit, offset int) ([]model.BlogPost, error) {
	posts, err := s.posts.ListPublished(ctx, clampList(limit, offset))
	if err != nil {
		s.logger.Error("failed to list posts", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing posts: %w", err)
	}
	return posts, nil
}

// PostBySlug returns a published post and counts the read. A draft slug
// reports not found, same as a missing one. The view counter is bumped
// atomically; a counter failure is logged but does not fail the read.
func (s *Portfolio) PostBySlug(ctx context.Context, slug string) (*model.BlogPost, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, apperror.ValidationFailed("slug", "post slug is required")
	}

	post, err := s.posts.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if post.Status != model.PostStatusPublished {
		return nil, apperror.NotFound("post", slug)
	}

	if err := s.posts.IncrementViews(ctx, post.ID); err != nil {
		s.logger.Error("failed to count view",
			slog.String("id", post.ID),
			slog.String("error", err.Error()),
		)
	} else {
		post.Views++
	}
	return post, nil
}

// LikePost bumps the like counter of a published post and returns the
// new count.
func (s *Portfolio) LikePost(ctx context.Context, slug string) (int64, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return 0, apperror.ValidationFailed("slug", "post slug is required")
	}

	post, err := s.posts.GetBySlug(ctx, slug)
	if err != nil {
		return 0, err
	}
	if post.Status != model.PostStatusPublished {
		return 0, apperror.NotFound("post", slug)
	}

	if err := s.posts.IncrementLikes(ctx, post.ID); err != nil {
		s.logger.Error("failed to count like",
			slog.String("id", post.ID),
			slog.String("error", err.Error()),
		)
		return 0, fmt.Errorf("liking post %s: %w", slug, err)
	}

	s.logger.Info("post liked", slog.String("id", post.ID), slog.String("slug", slug))
	return post.Likes + 1, nil
}

// Certificates lists certificates annotated with their expiry state as
// of now.
func (s *Portfolio) Certificates(ctx context.Context, limit, offset int) ([]CertificateView, error) {
	records, err := s.certificates.List(ctx, clampList(limit, offset))
	if err != nil {
		s.logger.Error("failed to list certificates", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing certificates: %w", err)
	}

	now := s.now()
	views := make([]CertificateView, 0, len(records))
	for _, rec := range records {
		views = append(views, CertificateView{Certificate: rec, Expired: rec.Expired(now)})
	}
	return views, nil
}

// ApprovedTestimonials lists approved testimonials only; pending ones
// stay in the moderation queue.
func (s *Portfolio) ApprovedTestimonials(ctx context.Context, limit, offset int) ([]model.Testimonial, error) {
	records, err := s.testimonials.ListApproved(ctx, clampList(limit, offset))
	if err != nil {
		s.logger.Error("failed to list testimonials", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing testimonials: %w", err)
	}
	return records, nil
}

// SetTestimonialApproval moves a testimonial between the moderation
// queue and the public site. The fetched row is written back with only
// its status changed.
func (s *Portfolio) SetTestimonialApproval(ctx context.Context, id string, approved bool) (*model.Testimonial, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "testimonial ID is required")
	}

	rec, err := s.testimonials.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if approved {
		rec.Status = model.TestimonialStatusApproved
	} else {
		rec.Status = model.TestimonialStatusPending
	}

	if err := s.testimonials.Update(ctx, rec); err != nil {
		s.logger.Error("failed to update testimonial approval",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("updating testimonial %s: %w", id, err)
	}

	s.logger.Info("testimonial approval changed",
		slog.String("id", id),
		slog.String("status", rec.Status),
	)
	return rec, nil
}
