// Package model defines the four portfolio record types managed by the
// admin controller: projects, blog posts, certificates and testimonials.
//
// Every record carries a server-assigned xid string ID and a pair of
// timestamps set by the persistence layer. `created_at` is immutable once
// assigned; `updated_at` is refreshed on every edit. List-valued fields
// (technologies, tags, skills) are stored as JSON arrays.
package model

import "time"

// Project lifecycle statuses.
const (
	ProjectStatusPlanned    = "planned"
	ProjectStatusInProgress = "in-progress"
	ProjectStatusCompleted  = "completed"
)

// Project portfolio categories.
const (
	ProjectCategoryPersonal    = "personal"
	ProjectCategoryAIAlchemist = "aialchemist"
	ProjectCategoryVasiliades  = "vasiliades"
)

// Project is a portfolio project entry.
type Project struct {
	ID           string    `json:"id"`
	Title        string    `json:"title" validate:"required"`
	Description  string    `json:"description" validate:"required"`
	Status       string    `json:"status" validate:"oneof=planned in-progress completed"`
	Category     string    `json:"category" validate:"oneof=personal aialchemist vasiliades"`
	Technologies []string  `json:"technologies"`
	Featured     bool      `json:"featured"`
	RepoURL      string    `json:"repo_url"`
	DemoURL      string    `json:"demo_url"`
	ImageURL     string    `json:"image_url"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RecordID implements the identity accessor shared by all record types.
func (p Project) RecordID() string { return p.ID }
