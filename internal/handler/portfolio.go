package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/mvasiliades/portfolio-api/internal/admin"
	"github.com/mvasiliades/portfolio-api/internal/service"
)

// PortfolioHandler serves the public read-only endpoints. Everything
// here is visitor-facing: published posts only, approved testimonials
// only, no authentication.
type PortfolioHandler struct {
	svc    *service.Portfolio
	logger *slog.Logger
}

// NewPortfolioHandler creates a PortfolioHandler.
func NewPortfolioHandler(svc *service.Portfolio, logger *slog.Logger) *PortfolioHandler {
	return &PortfolioHandler{svc: svc, logger: logger}
}

// HandleProjects lists projects, optionally only featured ones,
// narrowed by free-text search and category.
//
// HTTP: GET /api/projects?featured=true&q=term&category=personal&limit=20&offset=0
func (h *PortfolioHandler) HandleProjects(w http.ResponseWriter, r *http.Request) {
	featuredOnly := r.URL.Query().Get("featured") == "true"

	projects, err := h.svc.Projects(r.Context(), featuredOnly, queryInt(r, "limit"), queryInt(r, "offset"))
	if err != nil {
		writeError(w, err)
		return
	}

	projects = admin.ProjectDescriptor().Filter(projects, admin.Query{
		Term:     r.URL.Query().Get("q"),
		Selector: r.URL.Query().Get("category"),
	})
	writeJSON(w, http.StatusOK, projects)
}

// HandlePosts lists published posts, narrowed by free-text search and
// tag membership.
//
// HTTP: GET /api/posts?q=term&tag=go&limit=20&offset=0
func (h *PortfolioHandler) HandlePosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.svc.PublishedPosts(r.Context(), queryInt(r, "limit"), queryInt(r, "offset"))
	if err != nil {
		writeError(w, err)
		return
	}

	posts = admin.BlogPostDescriptor().Filter(posts, admin.Query{
		Term:     r.URL.Query().Get("q"),
		Selector: r.URL.Query().Get("tag"),
	})
	writeJSON(w, http.StatusOK, posts)
}

// HandlePostBySlug returns a single published post and counts the view.
//
// HTTP: GET /api/posts/{slug}
func (h *PortfolioHandler) HandlePostBySlug(w http.ResponseWriter, r *http.Request) {
	post, err := h.svc.PostBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// HandleLikePost bumps a post's like counter.
//
// HTTP: POST /api/posts/{slug}/like
func (h *PortfolioHandler) HandleLikePost(w http.ResponseWriter, r *http.Request) {
	likes, err := h.svc.LikePost(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"likes": likes})
}

// HandleCertificates lists certificates with their derived expiry
// state, optionally narrowed to one issuing organization.
//
// HTTP: GET /api/certificates?organization=AWS
func (h *PortfolioHandler) HandleCertificates(w http.ResponseWriter, r *http.Request) {
	certs, err := h.svc.Certificates(r.Context(), queryInt(r, "limit"), queryInt(r, "offset"))
	if err != nil {
		writeError(w, err)
		return
	}

	if org := strings.TrimSpace(r.URL.Query().Get("organization")); org != "" {
		filtered := make([]service.CertificateView, 0, len(certs))
		for _, cert := range certs {
			if cert.Organization == org {
				filtered = append(filtered, cert)
			}
		}
		certs = filtered
	}
	writeJSON(w, http.StatusOK, certs)
}

// HandleTestimonials lists approved testimonials.
//
// HTTP: GET /api/testimonials
func (h *PortfolioHandler) HandleTestimonials(w http.ResponseWriter, r *http.Request) {
	records, err := h.svc.ApprovedTestimonials(r.Context(), queryInt(r, "limit"), queryInt(r, "offset"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// HandleHealth reports liveness.
//
// HTTP: GET /healthz
func (h *PortfolioHandler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
