package model

import "time"

// Blog post lifecycle statuses.
const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
)

// DefaultReadTime is used when a draft is submitted with a non-positive
// read time (e.g. the operator left the field blank or it failed to parse).
const DefaultReadTime = 5

// BlogPost is a blog entry. Views and likes are server-maintained
// counters: they are bumped by dedicated repository methods and never
// written through the admin edit flow.
type BlogPost struct {
	ID        string    `json:"id"`
	Title     string    `json:"title" validate:"required"`
	Slug      string    `json:"slug" validate:"required"`
	Excerpt   string    `json:"excerpt"`
	Content   string    `json:"content" validate:"required"`
	Status    string    `json:"status" validate:"oneof=draft published"`
	Published bool      `json:"published"`
	Tags      []string  `json:"tags"`
	ReadTime  int       `json:"read_time"`
	Views     int64     `json:"views"`
	Likes     int64     `json:"likes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RecordID implements the identity accessor shared by all record types.
func (p BlogPost) RecordID() string { return p.ID }
