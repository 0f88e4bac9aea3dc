package search

import (
	"errors"
	"log/slog"
	"net/http"

	"booknotes/internal/httpx"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

type searchRequest struct {
	Q string `form:"q" validate:"required,max=200"`
}

type searchResponse struct {
	Query   string `json:"query"`
	Results []Hit  `json:"results"`
}

// Search handles GET /api/search?q=
func (h *HTTPHandler) Search(w http.ResponseWriter, r *http.Request) {
	req := searchRequest{Q: r.URL.Query().Get("q")}
	if errs := httpx.ValidateStruct(req); len(errs) > 0 {
		httpx.JSONErrorWithRequest(r, w, http.StatusBadRequest, "VALIDATION_ERROR", "Provide ?q=", errs)
		return
	}

	hits, err := h.service.Search(r.Context(), req.Q)
	if err != nil {
		if errors.Is(err, ErrEmptyQuery) {
			httpx.JSONErrorWithRequest(r, w, http.StatusBadRequest, "VALIDATION_ERROR", "Provide ?q=", nil)
			return
		}
		slog.Error("search failed",
			slog.String("query", req.Q),
			slog.String("request_id", httpx.RequestIDFrom(r)),
			slog.String("error", err.Error()))
		httpx.JSONErrorWithRequest(r, w, http.StatusBadGateway, "SEARCH_FAILED", "search failed", nil)
		return
	}

	httpx.JSON(w, http.StatusOK, searchResponse{Query: req.Q, Results: hits})
}
