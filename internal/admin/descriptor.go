package admin

import (
	"strings"

	"github.com/mvasiliades/portfolio-api/internal/model"
)

// Descriptor is the per-resource-type strategy the generic controller
// and projector are parameterized over. It collapses what would
// otherwise be four parallel copies of the admin workflow into data:
// type-specific defaults, the search/selector field sets and the status
// accessor.
type Descriptor[T Record] struct {
	// Name is the resource name used in logs and error messages.
	Name string

	// Defaults returns a fresh draft with type-specific defaults
	// (e.g. a project starts planned, personal, not featured).
	Defaults func() T

	// SetID stamps an existing record's id onto a draft before an
	// update, so the operator can never retarget an edit.
	SetID func(rec *T, id string)

	// SearchText returns the fields free-text search matches against.
	SearchText func(rec T) []string

	// SelectorValues returns the values the category/tag selector axis
	// matches exactly against (one value for a category field, many for
	// membership in a tag list). Nil means the type has no selector axis.
	SelectorValues func(rec T) []string

	// Status returns the value fed to Classify for per-row affordances.
	Status func(rec T) string
}

// Query is a filter request: free-text term and/or selector value.
// Empty values mean "no filtering on that axis"; both axes combine with
// logical AND.
type Query struct {
	Term     string
	Selector string
}

// Filter computes the visible subset of records for the query. It is a
// pure projection: deterministic, non-mutating, order-preserving. Text
// matching is a case-insensitive substring check over the descriptor's
// search fields; selector matching is exact.
func (d Descriptor[T]) Filter(records []T, q Query) []T {
	term := strings.ToLower(strings.TrimSpace(q.Term))

	out := make([]T, 0, len(records))
	for _, rec := range records {
		if term != "" && !d.matchesTerm(rec, term) {
			continue
		}
		if q.Selector != "" && !d.matchesSelector(rec, q.Selector) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func (d Descriptor[T]) matchesTerm(rec T, term string) bool {
	for _, field := range d.SearchText(rec) {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

func (d Descriptor[T]) matchesSelector(rec T, selector string) bool {
	if d.SelectorValues == nil {
		return false
	}
	for _, v := range d.SelectorValues(rec) {
		if v == selector {
			return true
		}
	}
	return false
}

// ProjectDescriptor describes projects: searched by title, selected by
// category.
func ProjectDescriptor() Descriptor[model.Project] {
	return Descriptor[model.Project]{
		Name: "project",
		Defaults: func() model.Project {
			return model.Project{
				Status:       model.ProjectStatusPlanned,
				Category:     model.ProjectCategoryPersonal,
				Technologies: []string{},
			}
		},
		SetID:          func(rec *model.Project, id string) { rec.ID = id },
		SearchText:     func(rec model.Project) []string { return []string{rec.Title} },
		SelectorValues: func(rec model.Project) []string { return []string{rec.Category} },
		Status:         func(rec model.Project) string { return rec.Status },
	}
}

// BlogPostDescriptor describes blog posts: searched by title, selected
// by tag membership.
func BlogPostDescriptor() Descriptor[model.BlogPost] {
	return Descriptor[model.BlogPost]{
		Name: "blog post",
		Defaults: func() model.BlogPost {
			return model.BlogPost{
				Status:   model.PostStatusDraft,
				Tags:     []string{},
				ReadTime: model.DefaultReadTime,
			}
		},
		SetID:          func(rec *model.BlogPost, id string) { rec.ID = id },
		SearchText:     func(rec model.BlogPost) []string { return []string{rec.Title} },
		SelectorValues: func(rec model.BlogPost) []string { return rec.Tags },
		Status:         func(rec model.BlogPost) string { return rec.Status },
	}
}

// CertificateDescriptor describes certificates: searched by title,
// selected by issuing organization. Certificates have no status enum;
// the verified flag drives the affordance tier instead.
func CertificateDescriptor() Descriptor[model.Certificate] {
	return Descriptor[model.Certificate]{
		Name: "certificate",
		Defaults: func() model.Certificate {
			return model.Certificate{
				Skills: []string{},
			}
		},
		SetID:          func(rec *model.Certificate, id string) { rec.ID = id },
		SearchText:     func(rec model.Certificate) []string { return []string{rec.Title} },
		SelectorValues: func(rec model.Certificate) []string { return []string{rec.Organization} },
		Status: func(rec model.Certificate) string {
			if rec.Verified {
				return "approved"
			}
			return "pending"
		},
	}
}

// TestimonialDescriptor describes testimonials: searched by feedback or
// author name; no selector axis.
func TestimonialDescriptor() Descriptor[model.Testimonial] {
	return Descriptor[model.Testimonial]{
		Name: "testimonial",
		Defaults: func() model.Testimonial {
			return model.Testimonial{
				Rating: 5,
				Status: model.TestimonialStatusPending,
			}
		},
		SetID: func(rec *model.Testimonial, id string) { rec.ID = id },
		SearchText: func(rec model.Testimonial) []string {
			return []string{rec.Feedback, rec.AuthorName}
		},
		Status: func(rec model.Testimonial) string { return rec.Status },
	}
}
