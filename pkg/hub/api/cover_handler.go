package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/frontendhub/hub/pkg/hub"
)

// CoverHandler brokers presigned URLs for blog cover images
type CoverHandler struct {
	service hub.Service
}

// NewCoverHandler creates a new cover image handler
func NewCoverHandler(service hub.Service) *CoverHandler {
	return &CoverHandler{service: service}
}

// Routes returns the routes for cover images
func (h *CoverHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/{objectKey}/upload-url", h.GetUploadURL)
	r.Get("/{objectKey}/download-url", h.GetDownloadURL)

	return r
}

// URLResponse carries a presigned URL
type URLResponse struct {
	URL string `json:"url"`
}

// GetUploadURL returns a presigned upload URL for a cover image
func (h *CoverHandler) GetUploadURL(w http.ResponseWriter, r *http.Request) {
	url, err := h.service.GetCoverUploadURL(r.Context(), chi.URLParam(r, "objectKey"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, URLResponse{URL: url})
}

// GetDownloadURL returns a presigned download URL for a cover image
func (h *CoverHandler) GetDownloadURL(w http.ResponseWriter, r *http.Request) {
	url, err := h.service.GetCoverDownloadURL(r.Context(), chi.URLParam(r, "objectKey"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, URLResponse{URL: url})
}
