package book

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"booknotes/internal/httpx"
)

// Renderer writes a named page. Implementations handle their own failures.
type Renderer interface {
	Render(w http.ResponseWriter, r *http.Request, status int, page string, data any)
}

// ListPage feeds the index page.
type ListPage struct {
	Books []Book
	Sort  SortKey
}

// FormPage feeds the new and edit pages. ID is zero on the new page.
type FormPage struct {
	ID     int64
	Form   Form
	Errors []httpx.ErrorDetail
	Sort   SortKey
}

type HTTPHandler struct {
	service *Service
	views   Renderer
}

func NewHTTPHandler(service *Service, views Renderer) *HTTPHandler {
	return &HTTPHandler{service: service, views: views}
}

// List handles GET /
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	books, key, err := h.service.List(r.Context(), r.URL.Query().Get("sort"))
	if err != nil {
		h.internalError(w, r, "list books failed", err)
		return
	}
	h.views.Render(w, r, http.StatusOK, "index", ListPage{Books: books, Sort: key})
}

// New handles GET /books/new
func (h *HTTPHandler) New(w http.ResponseWriter, r *http.Request) {
	h.views.Render(w, r, http.StatusOK, "new", FormPage{Sort: SortRecency})
}

// Create handles POST /books
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	form, err := FormFromRequest(r)
	if err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	if errs := httpx.ValidateStruct(form); len(errs) > 0 {
		h.views.Render(w, r, http.StatusBadRequest, "new", FormPage{Form: form, Errors: errs, Sort: SortRecency})
		return
	}

	id, err := h.service.Create(r.Context(), form)
	if err != nil {
		h.internalError(w, r, "create book failed", err)
		return
	}
	slog.Info("book created", slog.Int64("id", id), slog.String("request_id", httpx.RequestIDFrom(r)))
	redirectHome(w, r)
}

// Edit handles GET /books/{id}/edit
func (h *HTTPHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	b, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "Not found", http.StatusNotFound)
			return
		}
		h.internalError(w, r, "get book failed", err)
		return
	}
	h.views.Render(w, r, http.StatusOK, "edit", FormPage{ID: b.ID, Form: FormFromBook(b), Sort: SortRecency})
}

// Update handles POST /books/{id}
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	form, err := FormFromRequest(r)
	if err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	if errs := httpx.ValidateStruct(form); len(errs) > 0 {
		h.views.Render(w, r, http.StatusBadRequest, "edit", FormPage{ID: id, Form: form, Errors: errs, Sort: SortRecency})
		return
	}

	if err := h.service.Update(r.Context(), id, form); err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "Not found", http.StatusNotFound)
			return
		}
		h.internalError(w, r, "update book failed", err)
		return
	}
	redirectHome(w, r)
}

// Delete handles POST /books/{id}/delete
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "Not found", http.StatusNotFound)
			return
		}
		h.internalError(w, r, "delete book failed", err)
		return
	}
	slog.Info("book deleted", slog.Int64("id", id), slog.String("request_id", httpx.RequestIDFrom(r)))
	redirectHome(w, r)
}

func (h *HTTPHandler) internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	slog.Error(msg,
		slog.String("path", r.URL.Path),
		slog.String("request_id", httpx.RequestIDFrom(r)),
		slog.String("error", err.Error()))
	httpx.InternalError(w)
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// redirectHome sends the browser back to the listing, keeping the admin
// parameter so the flag survives the round trip.
func redirectHome(w http.ResponseWriter, r *http.Request) {
	target := "/"
	if httpx.IsAdminFrom(r) {
		target += "?admin=" + url.QueryEscape(r.URL.Query().Get("admin"))
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
