package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/frontendhub/hub/pkg/hub"
)

// DocumentHandler handles HTTP requests for documentation pages
type DocumentHandler struct {
	service hub.Service
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(service hub.Service) *DocumentHandler {
	return &DocumentHandler{service: service}
}

// Routes returns the routes for documents
func (h *DocumentHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.CreateDocument)
	r.Get("/", h.ListDocuments)
	r.Get("/{docID}", h.GetDocument)
	r.Put("/{docID}", h.UpdateDocument)
	r.Delete("/{docID}", h.DeleteDocument)

	return r
}

// CreateDocumentRequest is the request body for creating a document
type CreateDocumentRequest struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	Content  string `json:"content"`
}

// CreateDocument creates a new documentation page
func (h *DocumentHandler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	var req CreateDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, r, err.Error())
		return
	}

	if req.Title == "" || req.Category == "" {
		writeBadRequest(w, r, "title and category are required")
		return
	}

	doc, err := h.service.CreateDocument(r.Context(), hub.CreateDocumentRequest{
		Title:    req.Title,
		Category: req.Category,
		Content:  req.Content,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, doc)
}

// ListDocuments lists documents, optionally filtered by category
func (h *DocumentHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	var (
		docs []*hub.Document
		err  error
	)

	if slug := r.URL.Query().Get("category"); slug != "" {
		docs, err = h.service.GetDocumentsByCategory(r.Context(), slug)
	} else {
		docs, err = h.service.GetAllDocuments(r.Context())
	}

	if err != nil {
		writeError(w, r, err)
		return
	}

	if docs == nil {
		docs = []*hub.Document{}
	}
	render.JSON(w, r, docs)
}

// GetDocument retrieves a document with its author joined in
func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := h.service.GetDocument(r.Context(), chi.URLParam(r, "docID"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, doc)
}

// UpdateDocumentRequest is the request body for replacing a document's
// title and content
type UpdateDocumentRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// UpdateDocument replaces a document's title and content
func (h *DocumentHandler) UpdateDocument(w http.ResponseWriter, r *http.Request) {
	var req UpdateDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, r, err.Error())
		return
	}

	if req.Title == "" {
		writeBadRequest(w, r, "title is required")
		return
	}

	doc, err := h.service.UpdateDocument(r.Context(), hub.UpdateDocumentRequest{
		DocID:   chi.URLParam(r, "docID"),
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, doc)
}

// DeleteDocument deletes a document
func (h *DocumentHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteDocument(r.Context(), chi.URLParam(r, "docID")); err != nil {
		writeError(w, r, err)
		return
	}

	render.NoContent(w, r)
}
