package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/starford/bindrune/internal/apperr"
	"github.com/starford/bindrune/internal/linkservice"
	"github.com/starford/bindrune/internal/store"
)

// Handler holds API route handlers.
type Handler struct {
	svc *linkservice.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *linkservice.Service) *Handler {
	return &Handler{svc: svc}
}

// LinkItem is one link in a list or detail response.
type LinkItem struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	Title       string    `json:"title,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	ModifiedAt  time.Time `json:"modified_at"`
}

// RelatedItem is one forward relation in a detail response.
type RelatedItem struct {
	URL          string `json:"url"`
	Relationship string `json:"relationship,omitempty"`
}

func toLinkItem(l store.Link) LinkItem {
	return LinkItem{
		ID:          l.ID.String(),
		URL:         l.URL,
		Title:       l.Title,
		Description: l.Description,
		CreatedAt:   l.CreatedAt,
		ModifiedAt:  l.ModifiedAt,
	}
}

// ListLinks handles GET /api/links with optional repeated tag params.
func (h *Handler) ListLinks(w http.ResponseWriter, r *http.Request) {
	tags := r.URL.Query()["tag"]
	links, err := h.svc.List(r.Context(), tags)
	if err != nil {
		if errors.Is(err, apperr.ErrValidation) {
			writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
			return
		}
		slog.Error("list links failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	items := make([]LinkItem, len(links))
	for i, l := range links {
		items[i] = toLinkItem(l)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"links": items,
		"total": len(items),
	})
}

// GetLink handles GET /api/links/{id}.
func (h *Handler) GetLink(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid link id"))
		return
	}
	d, err := h.svc.Show(r.Context(), store.ByID(id))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("get link failed", slog.String("id", id.String()), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, detailBody(d))
}

// GetRelated handles GET /api/links/{id}/related.
func (h *Handler) GetRelated(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid link id"))
		return
	}
	d, err := h.svc.Show(r.Context(), store.ByID(id))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("get related failed", slog.String("id", id.String()), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"related": relatedItems(d.Related),
	})
}

// CreateLink handles POST /api/links. The page is fetched and
// distilled before anything is written, exactly as the CLI add does.
func (h *Handler) CreateLink(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req struct {
		URL         string   `json:"url"`
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Tags        []string `json:"tags"`
		Note        string   `json:"note"`
		RelatedURL  string   `json:"related_url"`
		Relation    string   `json:"relation"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.URL == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("url is required"))
		return
	}
	err := h.svc.Add(r.Context(), linkservice.AddInput{
		URL:         req.URL,
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
		Note:        req.Note,
		RelatedURL:  req.RelatedURL,
		Relation:    req.Relation,
	})
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrConflict):
			writeJSON(w, http.StatusConflict, errorBody("link already exists"))
		case errors.Is(err, apperr.ErrValidation):
			writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		case errors.Is(err, apperr.ErrFetch):
			writeJSON(w, http.StatusBadGateway, errorBody(err.Error()))
		default:
			slog.Error("create link failed", slog.String("url", req.URL), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	d, err := h.svc.Show(r.Context(), store.ByTerm(req.URL))
	if err != nil {
		slog.Error("create link readback failed", slog.String("url", req.URL), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusCreated, detailBody(d))
}

// Search handles GET /api/search.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'q' is required"))
		return
	}
	links, err := h.svc.Search(r.Context(), q)
	if err != nil {
		slog.Error("search failed", slog.String("query", q), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	items := make([]LinkItem, len(links))
	for i, l := range links {
		items[i] = toLinkItem(l)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"results": items,
	})
}

func detailBody(d *linkservice.Detail) map[string]any {
	tags := make([]string, len(d.Tags))
	for i, t := range d.Tags {
		tags[i] = t.Name
	}
	body := map[string]any{
		"link":    toLinkItem(d.Link),
		"tags":    tags,
		"related": relatedItems(d.Related),
	}
	if d.Note != nil {
		body["note"] = d.Note.Content
	}
	return body
}

func relatedItems(related []store.RelatedLink) []RelatedItem {
	items := make([]RelatedItem, len(related))
	for i, rl := range related {
		items[i] = RelatedItem{URL: rl.URL, Relationship: rl.Relationship}
	}
	return items
}
