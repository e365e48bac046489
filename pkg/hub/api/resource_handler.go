package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/frontendhub/hub/pkg/hub"
)

// ResourceHandler handles HTTP requests for roadmap resources
type ResourceHandler struct {
	service hub.Service
}

// NewResourceHandler creates a new resource handler
func NewResourceHandler(service hub.Service) *ResourceHandler {
	return &ResourceHandler{service: service}
}

// Routes returns the routes for resources
func (h *ResourceHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.CreateResource)
	r.Get("/me", h.GetUserResource)
	r.Get("/{resourceID}", h.GetResource)
	r.Put("/{resourceID}", h.UpdateResource)
	r.Delete("/{resourceID}", h.DeleteResource)

	return r
}

// CreateResourceRequest is the request body for creating a resource
type CreateResourceRequest struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	Content  string `json:"content"`
}

// CreateResource creates the caller's roadmap resource
func (h *ResourceHandler) CreateResource(w http.ResponseWriter, r *http.Request) {
	var req CreateResourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, r, err.Error())
		return
	}

	if req.Title == "" {
		writeBadRequest(w, r, "title is required")
		return
	}

	resource, err := h.service.CreateResource(r.Context(), hub.CreateResourceRequest{
		Title:    req.Title,
		Category: req.Category,
		Content:  req.Content,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, resource)
}

// GetUserResource fetches the caller's own resource
func (h *ResourceHandler) GetUserResource(w http.ResponseWriter, r *http.Request) {
	resource, err := h.service.GetUserResource(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, resource)
}

// GetResource retrieves a resource by its public id
func (h *ResourceHandler) GetResource(w http.ResponseWriter, r *http.Request) {
	resource, err := h.service.GetResource(r.Context(), chi.URLParam(r, "resourceID"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, resource)
}

// UpdateResourceRequest is the request body for replacing a resource's
// title and content
type UpdateResourceRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// UpdateResource replaces a resource's title and content
func (h *ResourceHandler) UpdateResource(w http.ResponseWriter, r *http.Request) {
	var req UpdateResourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, r, err.Error())
		return
	}

	if req.Title == "" {
		writeBadRequest(w, r, "title is required")
		return
	}

	resource, err := h.service.UpdateResource(r.Context(), hub.UpdateResourceRequest{
		ResourceID: chi.URLParam(r, "resourceID"),
		Title:      req.Title,
		Content:    req.Content,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, resource)
}

// DeleteResource deletes a resource
func (h *ResourceHandler) DeleteResource(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteResource(r.Context(), chi.URLParam(r, "resourceID")); err != nil {
		writeError(w, r, err)
		return
	}

	render.NoContent(w, r)
}
