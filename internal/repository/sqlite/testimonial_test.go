package sqlite

import (
	"context"
	"testing"

	"github.com/mvasiliades/portfolio-api/internal/model"
	"github.com/mvasiliades/portfolio-api/internal/repository"
)

func createTestTestimonial(t *testing.T, repo *TestimonialRepo, author, status string) *model.Testimonial {
	t.Helper()
	rec := &model.Testimonial{
		AuthorName: author,
		Feedback:   "Great service!",
		Rating:     5,
		Status:     status,
	}
	if err := repo.Insert(context.Background(), rec); err != nil {
		t.Fatalf("failed to insert test testimonial: %v", err)
	}
	return rec
}

func TestTestimonialInsert_DefaultsToPending(t *testing.T) {
	repo := newTestDB(t).Testimonials()

	rec := &model.Testimonial{AuthorName: "Alex", Feedback: "Nice", Rating: 4}
	if err := repo.Insert(context.Background(), rec); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if rec.Status != model.TestimonialStatusPending {
		t.Errorf("Status = %q, want %q", rec.Status, model.TestimonialStatusPending)
	}
}

func TestTestimonialListApproved(t *testing.T) {
	repo := newTestDB(t).Testimonials()
	createTestTestimonial(t, repo, "Pending Pat", model.TestimonialStatusPending)
	approved := createTestTestimonial(t, repo, "Approved Ana", model.TestimonialStatusApproved)

	records, err := repo.ListApproved(context.Background(), repository.ListOptions{})
	if err != nil {
		t.Fatalf("ListApproved() error = %v", err)
	}
	if len(records) != 1 || records[0].ID != approved.ID {
		t.Errorf("ListApproved() = %d records, want only the approved one", len(records))
	}
}

func TestTestimonialApprovalToggle(t *testing.T) {
	repo := newTestDB(t).Testimonials()
	rec := createTestTestimonial(t, repo, "Toggle Tim", model.TestimonialStatusPending)

	rec.Status = model.TestimonialStatusApproved
	if err := repo.Update(context.Background(), rec); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	found, err := repo.GetByID(context.Background(), rec.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if found.Status != model.TestimonialStatusApproved {
		t.Errorf("Status = %q, want %q", found.Status, model.TestimonialStatusApproved)
	}
}
