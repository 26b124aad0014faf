package model

import "time"

// Certificate is an earned certification. Unlike the other record types
// it has no status enum: it carries a `verified` flag instead, and
// "expired" is derived from the optional expiry date rather than stored.
type Certificate struct {
	ID           string     `json:"id"`
	Title        string     `json:"title" validate:"required"`
	Organization string     `json:"organization" validate:"required"`
	ImageURL     string     `json:"image_url" validate:"required"`
	CredentialID string     `json:"credential_id"`
	Skills       []string   `json:"skills"`
	Verified     bool       `json:"verified"`
	IssueDate    time.Time  `json:"issue_date" validate:"required"`
	ExpiryDate   *time.Time `json:"expiry_date,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// RecordID implements the identity accessor shared by all record types.
func (c Certificate) RecordID() string { return c.ID }

// Expired reports whether the certificate's expiry date has passed at
// the given instant. Certificates without an expiry date never expire.
func (c Certificate) Expired(now time.Time) bool {
	return c.ExpiryDate != nil && c.ExpiryDate.Before(now)
}
