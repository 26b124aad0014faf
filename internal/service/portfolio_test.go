package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/mvasiliades/portfolio-api/internal/apperror"
	"github.com/mvasiliades/portfolio-api/internal/model"
	"github.com/mvasiliades/portfolio-api/internal/repository"
)

// Hand-written in-memory repositories. Each stores copies so tests
// can't leak state through shared pointers.

type mockProjectRepo struct {
	byID   map[string]model.Project
	nextID int
}

func newMockProjectRepo() *mockProjectRepo {
	return &mockProjectRepo{byID: map[string]model.Project{}}
}

func (m *mockProjectRepo) Insert(_ context.Context, rec *model.Project) error {
	m.nextID++
	rec.ID = fmt.Sprintf("proj-%d", m.nextID)
	m.byID[rec.ID] = *rec
	return nil
}

func (m *mockProjectRepo) GetByID(_ context.Context, id string) (*model.Project, error) {
	rec, ok := m.byID[id]
	if !ok {
		return nil, apperror.NotFound("project", id)
	}
	return &rec, nil
}

func (m *mockProjectRepo) List(_ context.Context, _ repository.ListOptions) ([]model.Project, error) {
	out := make([]model.Project, 0, len(m.byID))
	for _, rec := range m.byID {
		out = append(out, rec)
	}
	return out, nil
}

func (m *mockProjectRepo) ListFeatured(_ context.Context, _ repository.ListOptions) ([]model.Project, error) {
	var out []model.Project
	for _, rec := range m.byID {
		if rec.Featured {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (m *mockProjectRepo) Update(_ context.Context, rec *model.Project) error {
	if _, ok := m.byID[rec.ID]; !ok {
		return apperror.NotFound("project", rec.ID)
	}
	m.byID[rec.ID] = *rec
	return nil
}

func (m *mockProjectRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return apperror.NotFound("project", id)
	}
	delete(m.byID, id)
	return nil
}

type mockPostRepo struct {
	byID     map[string]model.BlogPost
	nextID   int
	failIncr error
}

func newMockPostRepo() *mockPostRepo {
	return &mockPostRepo{byID: map[string]model.BlogPost{}}
}

func (m *mockPostRepo) Insert(_ context.Context, rec *model.BlogPost) error {
	m.nextID++
	rec.ID = fmt.Sprintf("post-%d", m.nextID)
	rec.Views, rec.Likes = 0, 0
	m.byID[rec.ID] = *rec
	return nil
}

func (m *mockPostRepo) GetByID(_ context.Context, id string) (*model.BlogPost, error) {
	rec, ok := m.byID[id]
	if !ok {
		return nil, apperror.NotFound("post", id)
	}
	return &rec, nil
}

func (m *mockPostRepo) GetBySlug(_ context.Context, slug string) (*model.BlogPost, error) {
	for _, rec := range m.byID {
		if rec.Slug == slug {
			return &rec, nil
		}
	}
	return nil, apperror.NotFound("post", slug)
}

func (m *mockPostRepo) List(_ context.Context, _ repository.ListOptions) ([]model.BlogPost, error) {
	out := make([]model.BlogPost, 0, len(m.byID))
	for _, rec := range m.byID {
		out = append(out, rec)
	}
	return out, nil
}

func (m *mockPostRepo) ListPublished(_ context.Context, _ repository.ListOptions) ([]model.BlogPost, error) {
	var out []model.BlogPost
	for _, rec := range m.byID {
		if rec.Status == model.PostStatusPublished {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (m *mockPostRepo) Update(_ context.Context, rec *model.BlogPost) error {
	if _, ok := m.byID[rec.ID]; !ok {
		return apperror.NotFound("post", rec.ID)
	}
	m.byID[rec.ID] = *rec
	return nil
}

func (m *mockPostRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return apperror.NotFound("post", id)
	}
	delete(m.byID, id)
	return nil
}

func (m *mockPostRepo) IncrementViews(_ context.Context, id string) error {
	if m.failIncr != nil {
		return m.failIncr
	}
	rec, ok := m.byID[id]
	if !ok {
		return apperror.NotFound("post", id)
	}
	rec.Views++
	m.byID[id] = rec
	return nil
}

func (m *mockPostRepo) IncrementLikes(_ context.Context, id string) error {
	if m.failIncr != nil {
		return m.failIncr
	}
	rec, ok := m.byID[id]
	if !ok {
		return apperror.NotFound("post", id)
	}
	rec.Likes++
	m.byID[id] = rec
	return nil
}

type mockCertificateRepo struct {
	byID   map[string]model.Certificate
	nextID int
}

func newMockCertificateRepo() *mockCertificateRepo {
	return &mockCertificateRepo{byID: map[string]model.Certificate{}}
}

func (m *mockCertificateRepo) Insert(_ context.Context, rec *model.Certificate) error {
	m.nextID++
	rec.ID = fmt.Sprintf("cert-%d", m.nextID)
	m.byID[rec.ID] = *rec
	return nil
}

func (m *mockCertificateRepo) GetByID(_ context.Context, id string) (*model.Certificate, error) {
	rec, ok := m.byID[id]
	if !ok {
		return nil, apperror.NotFound("certificate", id)
	}
	return &rec, nil
}

func (m *mockCertificateRepo) List(_ context.Context, _ repository.ListOptions) ([]model.Certificate, error) {
	out := make([]model.Certificate, 0, len(m.byID))
	for _, rec := range m.byID {
		out = append(out, rec)
	}
	return out, nil
}

func (m *mockCertificateRepo) Update(_ context.Context, rec *model.Certificate) error {
	if _, ok := m.byID[rec.ID]; !ok {
		return apperror.NotFound("certificate", rec.ID)
	}
	m.byID[rec.ID] = *rec
	return nil
}

func (m *mockCertificateRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return apperror.NotFound("certificate", id)
	}
	delete(m.byID, id)
	return nil
}

type mockTestimonialRepo struct {
	byID   map[string]model.Testimonial
	nextID int
}

func newMockTestimonialRepo() *mockTestimonialRepo {
	return &mockTestimonialRepo{byID: map[string]model.Testimonial{}}
}

func (m *mockTestimonialRepo) Insert(_ context.Context, rec *model.Testimonial) error {
	m.nextID++
	rec.ID = fmt.Sprintf("tst-%d", m.nextID)
	if rec.Status == "" {
		rec.Status = model.TestimonialStatusPending
	}
	m.byID[rec.ID] = *rec
	return nil
}

func (m *mockTestimonialRepo) GetByID(_ context.Context, id string) (*model.Testimonial, error) {
	rec, ok := m.byID[id]
	if !ok {
		return nil, apperror.NotFound("testimonial", id)
	}
	return &rec, nil
}

func (m *mockTestimonialRepo) List(_ context.Context, _ repository.ListOptions) ([]model.Testimonial, error) {
	out := make([]model.Testimonial, 0, len(m.byID))
	for _, rec := range m.byID {
		out = append(out, rec)
	}
	return out, nil
}

func (m *mockTestimonialRepo) ListApproved(_ context.Context, _ repository.ListOptions) ([]model.Testimonial, error) {
	var out []model.Testimonial
	for _, rec := range m.byID {
		if rec.Status == model.TestimonialStatusApproved {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (m *mockTestimonialRepo) Update(_ context.Context, rec *model.Testimonial) error {
	if _, ok := m.byID[rec.ID]; !ok {
		return apperror.NotFound("testimonial", rec.ID)
	}
	m.byID[rec.ID] = *rec
	return nil
}

func (m *mockTestimonialRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return apperror.NotFound("testimonial", id)
	}
	delete(m.byID, id)
	return nil
}

type testRepos struct {
	projects     *mockProjectRepo
	posts        *mockPostRepo
	certificates *mockCertificateRepo
	testimonials *mockTestimonialRepo
}

func newTestPortfolio(t *testing.T) (*Portfolio, *testRepos) {
	t.Helper()
	repos := &testRepos{
		projects:     newMockProjectRepo(),
		posts:        newMockPostRepo(),
		certificates: newMockCertificateRepo(),
		testimonials: newMockTestimonialRepo(),
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	svc := NewPortfolio(repos.projects, repos.posts, repos.certificates, repos.testimonials, logger)
	return svc, repos
}

func insertPost(t *testing.T, repo *mockPostRepo, slug, status string) *model.BlogPost {
	t.Helper()
	rec := &model.BlogPost{Title: slug, Slug: slug, Content: "body", Status: status}
	if err := repo.Insert(context.Background(), rec); err != nil {
		t.Fatalf("setup: Insert() error = %v", err)
	}
	return rec
}

func TestProjects_FeaturedOnly(t *testing.T) {
	svc, repos := newTestPortfolio(t)

	plain := &model.Project{Title: "plain", Description: "d"}
	featured := &model.Project{Title: "featured", Description: "d", Featured: true}
	_ = repos.projects.Insert(context.Background(), plain)
	_ = repos.projects.Insert(context.Background(), featured)

	all, err := svc.Projects(context.Background(), false, 0, 0)
	if err != nil {
		t.Fatalf("Projects() error = %v", err)
	}
	if len(all) != 2 {
		t.Errorf("Projects() = %d records, want 2", len(all))
	}

	only, err := svc.Projects(context.Background(), true, 0, 0)
	if err != nil {
		t.Fatalf("Projects(featured) error = %v", err)
	}
	if len(only) != 1 || only[0].ID != featured.ID {
		t.Errorf("Projects(featured) = %v, want only %s", only, featured.ID)
	}
}

func TestPublishedPosts_ExcludesDrafts(t *testing.T) {
	svc, repos := newTestPortfolio(t)
	insertPost(t, repos.posts, "draft", model.PostStatusDraft)
	live := insertPost(t, repos.posts, "live", model.PostStatusPublished)

	posts, err := svc.PublishedPosts(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("PublishedPosts() error = %v", err)
	}
	if len(posts) != 1 || posts[0].ID != live.ID {
		t.Errorf("PublishedPosts() = %d records, want only the published one", len(posts))
	}
}

func TestPostBySlug_CountsView(t *testing.T) {
	svc, repos := newTestPortfolio(t)
	insertPost(t, repos.posts, "counted", model.PostStatusPublished)

	post, err := svc.PostBySlug(context.Background(), "counted")
	if err != nil {
		t.Fatalf("PostBySlug() error = %v", err)
	}
	if post.Views != 1 {
		t.Errorf("Views = %d, want 1", post.Views)
	}

	stored, _ := repos.posts.GetBySlug(context.Background(), "counted")
	if stored.Views != 1 {
		t.Errorf("stored Views = %d, want 1", stored.Views)
	}
}

func TestPostBySlug_DraftHidden(t *testing.T) {
	svc, repos := newTestPortfolio(t)
	insertPost(t, repos.posts, "secret", model.PostStatusDraft)

	_, err := svc.PostBySlug(context.Background(), "secret")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("PostBySlug() draft error = %v, want ErrNotFound", err)
	}
}

func TestPostBySlug_CounterFailureStillServes(t *testing.T) {
	svc, repos := newTestPortfolio(t)
	insertPost(t, repos.posts, "flaky", model.PostStatusPublished)
	repos.posts.failIncr = errors.New("db busy")

	post, err := svc.PostBySlug(context.Background(), "flaky")
	if err != nil {
		t.Fatalf("PostBySlug() error = %v, want the post despite counter failure", err)
	}
	if post.Views != 0 {
		t.Errorf("Views = %d, want 0 when the counter write failed", post.Views)
	}
}

func TestLikePost(t *testing.T) {
	svc, repos := newTestPortfolio(t)
	insertPost(t, repos.posts, "likeable", model.PostStatusPublished)

	likes, err := svc.LikePost(context.Background(), "likeable")
	if err != nil {
		t.Fatalf("LikePost() error = %v", err)
	}
	if likes != 1 {
		t.Errorf("likes = %d, want 1", likes)
	}

	if _, err := svc.LikePost(context.Background(), "missing"); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("LikePost() missing error = %v, want ErrNotFound", err)
	}
}

func TestCertificates_ExpiryAnnotation(t *testing.T) {
	svc, repos := newTestPortfolio(t)

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	past := now.AddDate(-1, 0, 0)
	future := now.AddDate(1, 0, 0)
	_ = repos.certificates.Insert(context.Background(), &model.Certificate{Title: "expired", ExpiryDate: &past})
	_ = repos.certificates.Insert(context.Background(), &model.Certificate{Title: "valid", ExpiryDate: &future})
	_ = repos.certificates.Insert(context.Background(), &model.Certificate{Title: "forever"})

	views, err := svc.Certificates(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("Certificates() error = %v", err)
	}
	expired := map[string]bool{}
	for _, v := range views {
		expired[v.Title] = v.Expired
	}
	if !expired["expired"] {
		t.Error("certificate past its expiry should be annotated expired")
	}
	if expired["valid"] || expired["forever"] {
		t.Error("unexpired certificates should not be annotated expired")
	}
}

func TestApprovedTestimonials(t *testing.T) {
	svc, repos := newTestPortfolio(t)
	_ = repos.testimonials.Insert(context.Background(), &model.Testimonial{AuthorName: "Pat", Feedback: "f", Rating: 4})
	approved := &model.Testimonial{AuthorName: "Ana", Feedback: "f", Rating: 5, Status: model.TestimonialStatusApproved}
	_ = repos.testimonials.Insert(context.Background(), approved)

	records, err := svc.ApprovedTestimonials(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("ApprovedTestimonials() error = %v", err)
	}
	if len(records) != 1 || records[0].ID != approved.ID {
		t.Errorf("ApprovedTestimonials() = %d records, want only the approved one", len(records))
	}
}

func TestSetTestimonialApproval(t *testing.T) {
	svc, repos := newTestPortfolio(t)
	rec := &model.Testimonial{AuthorName: "Pat", Feedback: "f", Rating: 4}
	_ = repos.testimonials.Insert(context.Background(), rec)

	updated, err := svc.SetTestimonialApproval(context.Background(), rec.ID, true)
	if err != nil {
		t.Fatalf("SetTestimonialApproval() error = %v", err)
	}
	if updated.Status != model.TestimonialStatusApproved {
		t.Errorf("Status = %q, want %q", updated.Status, model.TestimonialStatusApproved)
	}

	updated, err = svc.SetTestimonialApproval(context.Background(), rec.ID, false)
	if err != nil {
		t.Fatalf("SetTestimonialApproval(false) error = %v", err)
	}
	if updated.Status != model.TestimonialStatusPending {
		t.Errorf("Status = %q, want %q", updated.Status, model.TestimonialStatusPending)
	}

	if _, err := svc.SetTestimonialApproval(context.Background(), "missing", true); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("SetTestimonialApproval() missing error = %v, want ErrNotFound", err)
	}
}
