package model

import "time"

// Testimonial moderation statuses. Approval is a one-click toggle in the
// admin surface rather than a full edit form.
const (
	TestimonialStatusPending  = "pending"
	TestimonialStatusApproved = "approved"
)

// Testimonial is a visitor-submitted review. Only approved testimonials
// are shown on the public site.
type Testimonial struct {
	ID         string    `json:"id"`
	AuthorName string    `json:"author_name" validate:"required"`
	AuthorRole string    `json:"author_role"`
	Company    string    `json:"company"`
	Feedback   string    `json:"feedback" validate:"required"`
	Rating     int       `json:"rating" validate:"min=1,max=5"`
	Status     string    `json:"status" validate:"oneof=pending approved"`
	AvatarURL  string    `json:"avatar_url"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// RecordID implements the identity accessor shared by all record types.
func (t Testimonial) RecordID() string { return t.ID }
