package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mvasiliades/portfolio-api/internal/admin"
	"github.com/mvasiliades/portfolio-api/internal/apperror"
	"github.com/mvasiliades/portfolio-api/internal/model"
	"github.com/mvasiliades/portfolio-api/internal/service"
)

// Resource is the admin CRUD surface for one record type. The same
// handler code serves all four resources; what differs per type is the
// controller and the request decoder.
//
// The decoder is where the admin form's pending list-entry fields
// (newTech, newTag, newSkill) are folded into the record's list and
// discarded. They never reach the controller, the gateway or the
// database.
type Resource[T admin.Record] struct {
	ctrl   *admin.Controller[T]
	decode func(r *http.Request) (T, error)
	logger *slog.Logger
}

// NewResource creates the admin handler for one record type.
func NewResource[T admin.Record](
	ctrl *admin.Controller[T],
	decode func(r *http.Request) (T, error),
	logger *slog.Logger,
) *Resource[T] {
	return &Resource[T]{ctrl: ctrl, decode: decode, logger: logger}
}

// listItem pairs a record with its status tier so the admin UI can
// color rows without re-deriving the classification.
type listItem[T admin.Record] struct {
	Record T          `json:"record"`
	Tier   admin.Tier `json:"tier"`
}

// Mount attaches the CRUD routes to an admin subrouter.
func (h *Resource[T]) Mount(r chi.Router) {
	r.Get("/", h.handleList)
	r.Post("/", h.handleCreate)
	r.Post("/refresh", h.handleRefresh)
	r.Get("/{id}", h.handleGet)
	r.Put("/{id}", h.handleUpdate)
	r.Delete("/{id}", h.handleDelete)
}

// handleList returns the filtered store view.
//
// HTTP: GET /api/admin/{resource}?q=term&selector=value
func (h *Resource[T]) handleList(w http.ResponseWriter, r *http.Request) {
	q := admin.Query{
		Term:     r.URL.Query().Get("q"),
		Selector: r.URL.Query().Get("selector"),
	}

	records := h.ctrl.Records(q)
	items := make([]listItem[T], 0, len(records))
	for _, rec := range records {
		items = append(items, listItem[T]{Record: rec, Tier: h.ctrl.Classify(rec)})
	}
	writeJSON(w, http.StatusOK, items)
}

// handleGet returns a single stored record.
func (h *Resource[T]) handleGet(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	rec, ok := h.ctrl.Get(id)
	if !ok {
		writeError(w, apperror.NotFound("record", id))
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// handleCreate validates and persists a new record.
//
// HTTP: POST /api/admin/{resource}
func (h *Resource[T]) handleCreate(w http.ResponseWriter, r *http.Request) {
	draft, err := h.decode(r)
	if err != nil {
		writeError(w, err)
		return
	}

	created, err := h.ctrl.Create(r.Context(), draft)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// handleUpdate saves an edit to an existing record.
//
// HTTP: PUT /api/admin/{resource}/{id}
func (h *Resource[T]) handleUpdate(w http.ResponseWriter, r *http.Request) {
	draft, err := h.decode(r)
	if err != nil {
		writeError(w, err)
		return
	}

	saved, err := h.ctrl.Save(r.Context(), r.PathValue("id"), draft)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// handleDelete removes a record.
//
// HTTP: DELETE /api/admin/{resource}/{id}
func (h *Resource[T]) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.ctrl.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleRefresh reloads the store from persistence and returns the
// fresh list.
//
// HTTP: POST /api/admin/{resource}/refresh
func (h *Resource[T]) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := h.ctrl.Refresh(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	h.handleList(w, r)
}

// NewApprovalHandler returns the one-click testimonial approval toggle.
// The flip is persisted through the service; the confirmed row is then
// reflected into the admin store so the admin list and detail reads
// serve the new status without a refresh.
//
// HTTP: PUT /api/admin/testimonials/{id}/approval
// Body: {"approved": true}
func NewApprovalHandler(svc *service.Portfolio, ctrl *admin.Controller[model.Testimonial]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Approved bool `json:"approved"`
		}
		if err := decodeBody(r, &req); err != nil {
			writeError(w, err)
			return
		}

		rec, err := svc.SetTestimonialApproval(r.Context(), r.PathValue("id"), req.Approved)
		if err != nil {
			writeError(w, err)
			return
		}

		ctrl.Reflect(*rec)
		writeJSON(w, http.StatusOK, rec)
	}
}

// DecodeProject decodes an admin project payload, folding a pending
// newTech entry into the technologies list. Fields the payload omits
// keep the type's draft defaults.
func DecodeProject(r *http.Request) (model.Project, error) {
	var req struct {
		model.Project
		NewTech string `json:"newTech"`
	}
	req.Project = admin.ProjectDescriptor().Defaults()
	if err := decodeBody(r, &req); err != nil {
		return model.Project{}, err
	}

	rec := req.Project
	if strings.TrimSpace(req.NewTech) != "" {
		rec.Technologies, _ = admin.AddListValue(rec.Technologies, req.NewTech)
	}
	return rec, nil
}

// DecodeBlogPost decodes an admin blog post payload, folding a pending
// newTag entry into the tags list. The published flag is derived from
// the status so the two can never disagree, and a blank read time falls
// back to the default.
func DecodeBlogPost(r *http.Request) (model.BlogPost, error) {
	var req struct {
		model.BlogPost
		NewTag string `json:"newTag"`
	}
	req.BlogPost = admin.BlogPostDescriptor().Defaults()
	if err := decodeBody(r, &req); err != nil {
		return model.BlogPost{}, err
	}

	rec := req.BlogPost
	if strings.TrimSpace(req.NewTag) != "" {
		rec.Tags, _ = admin.AddListValue(rec.Tags, req.NewTag)
	}
	rec.Published = rec.Status == model.PostStatusPublished
	if rec.ReadTime <= 0 {
		rec.ReadTime = model.DefaultReadTime
	}
	return rec, nil
}

// DecodeCertificate decodes an admin certificate payload, folding a
// pending newSkill entry into the skills list.
func DecodeCertificate(r *http.Request) (model.Certificate, error) {
	var req struct {
		model.Certificate
		NewSkill string `json:"newSkill"`
	}
	req.Certificate = admin.CertificateDescriptor().Defaults()
	if err := decodeBody(r, &req); err != nil {
		return model.Certificate{}, err
	}

	rec := req.Certificate
	if strings.TrimSpace(req.NewSkill) != "" {
		rec.Skills, _ = admin.AddListValue(rec.Skills, req.NewSkill)
	}
	return rec, nil
}

// DecodeTestimonial decodes an admin testimonial payload. Testimonials
// have no list fields, so no folding happens.
func DecodeTestimonial(r *http.Request) (model.Testimonial, error) {
	rec := admin.TestimonialDescriptor().Defaults()
	if err := decodeBody(r, &rec); err != nil {
		return model.Testimonial{}, err
	}
	return rec, nil
}
