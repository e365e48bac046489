package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/frontendhub/hub/pkg/hub"
)

// CategoryHandler handles HTTP requests for categories
type CategoryHandler struct {
	service hub.Service
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(service hub.Service) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// Routes returns the routes for categories
func (h *CategoryHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ListCategories)
	r.Get("/{slug}", h.GetCategory)

	return r
}

// ListCategories lists all known categories
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	if categories == nil {
		categories = []*hub.Category{}
	}
	render.JSON(w, r, categories)
}

// GetCategory retrieves a category by slug
func (h *CategoryHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	category, err := h.service.GetCategoryBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, category)
}
