package api

import (
	"encoding/json"
	"hash/fnv"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/frontendhub/hub/pkg/hub"
)

// BlogHandler handles HTTP requests for blogs, likes and comments
type BlogHandler struct {
	service hub.Service
}

// NewBlogHandler creates a new blog handler
func NewBlogHandler(service hub.Service) *BlogHandler {
	return &BlogHandler{service: service}
}

// Routes returns the routes for blogs
func (h *BlogHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.CreateBlog)
	r.Get("/", h.ListBlogs)
	r.Get("/{blogID}", h.GetBlog)
	r.Get("/{blogID}/related", h.RelatedBlogs)
	r.Patch("/{blogID}", h.UpdateBlog)
	r.Delete("/{blogID}", h.DeleteBlog)

	r.Post("/{blogID}/like", h.ToggleLike)
	r.Post("/{blogID}/comments", h.AddComment)
	r.Delete("/{blogID}/comments/{commentID}", h.DeleteComment)

	return r
}

// CreateBlogRequest is the request body for creating a blog
type CreateBlogRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	CoverImage  string `json:"cover_image"`
	Content     string `json:"content"`
	Category    string `json:"category"`
}

// CreateBlog creates a new blog
func (h *BlogHandler) CreateBlog(w http.ResponseWriter, r *http.Request) {
	var req CreateBlogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, r, err.Error())
		return
	}

	if req.Title == "" {
		writeBadRequest(w, r, "title is required")
		return
	}

	blog, err := h.service.CreateBlog(r.Context(), hub.CreateBlogRequest{
		Title:       req.Title,
		Description: req.Description,
		CoverImage:  req.CoverImage,
		Content:     req.Content,
		Category:    req.Category,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, blog)
}

// ListBlogs lists blogs, optionally filtered by category or limited to the
// most recent N via ?recent=N
func (h *BlogHandler) ListBlogs(w http.ResponseWriter, r *http.Request) {
	var (
		blogs []*hub.Blog
		err   error
	)

	switch {
	case r.URL.Query().Get("category") != "":
		blogs, err = h.service.GetBlogsByCategory(r.Context(), r.URL.Query().Get("category"))
	case r.URL.Query().Get("recent") != "":
		limit, convErr := strconv.Atoi(r.URL.Query().Get("recent"))
		if convErr != nil {
			writeBadRequest(w, r, "recent must be an integer")
			return
		}
		blogs, err = h.service.GetRecentBlogs(r.Context(), limit)
	default:
		blogs, err = h.service.GetAllBlogs(r.Context())
	}

	if err != nil {
		writeError(w, r, err)
		return
	}

	if blogs == nil {
		blogs = []*hub.Blog{}
	}
	render.JSON(w, r, blogs)
}

// GetBlog retrieves a blog by its public id
func (h *BlogHandler) GetBlog(w http.ResponseWriter, r *http.Request) {
	blog, err := h.service.GetBlog(r.Context(), chi.URLParam(r, "blogID"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, blog)
}

// RelatedBlogs returns a "you may like" selection of other blogs. The
// selection is seeded from the blog id so it stays stable across reloads
// of the same page without any cached state.
func (h *BlogHandler) RelatedBlogs(w http.ResponseWriter, r *http.Request) {
	blogID := chi.URLParam(r, "blogID")

	if _, err := h.service.GetBlog(r.Context(), blogID); err != nil {
		writeError(w, r, err)
		return
	}

	all, err := h.service.GetAllBlogs(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	others := make([]*hub.Blog, 0, len(all))
	for _, b := range all {
		if b.BlogID != blogID {
			others = append(others, b)
		}
	}

	limit := 3
	if v := r.URL.Query().Get("limit"); v != "" {
		n, convErr := strconv.Atoi(v)
		if convErr != nil || n <= 0 {
			writeBadRequest(w, r, "limit must be a positive integer")
			return
		}
		limit = n
	}

	seed := fnv.New64a()
	seed.Write([]byte(blogID))

	picks := hub.Sample(others, limit, seed.Sum64())
	if picks == nil {
		picks = []*hub.Blog{}
	}
	render.JSON(w, r, picks)
}

// UpdateBlogRequest is the request body for a partial blog update
type UpdateBlogRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	CoverImage  *string `json:"cover_image"`
	Content     *string `json:"content"`
}

// UpdateBlog applies a partial update to a blog
func (h *BlogHandler) UpdateBlog(w http.ResponseWriter, r *http.Request) {
	var req UpdateBlogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, r, err.Error())
		return
	}

	blog, err := h.service.UpdateBlog(r.Context(), hub.UpdateBlogRequest{
		BlogID:      chi.URLParam(r, "blogID"),
		Title:       req.Title,
		Description: req.Description,
		CoverImage:  req.CoverImage,
		Content:     req.Content,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, blog)
}

// DeleteBlog deletes a blog
func (h *BlogHandler) DeleteBlog(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteBlog(r.Context(), chi.URLParam(r, "blogID")); err != nil {
		writeError(w, r, err)
		return
	}

	render.NoContent(w, r)
}

// ToggleLikeRequest is the request body for setting like state
type ToggleLikeRequest struct {
	Liked bool `json:"liked"`
}

// ToggleLikeResponse reports the like count after the toggle
type ToggleLikeResponse struct {
	Likes int `json:"likes"`
}

// ToggleLike sets the caller's like state on a blog
func (h *BlogHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	var req ToggleLikeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, r, err.Error())
		return
	}

	likes, err := h.service.ToggleLike(r.Context(), chi.URLParam(r, "blogID"), req.Liked)
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, ToggleLikeResponse{Likes: likes})
}

// AddCommentRequest is the request body for adding a comment
type AddCommentRequest struct {
	Comment   string    `json:"comment"`
	Timestamp time.Time `json:"timestamp"`
}

// AddComment appends a comment to a blog
func (h *BlogHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	var req AddCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, r, err.Error())
		return
	}

	if req.Comment == "" {
		writeBadRequest(w, r, "comment is required")
		return
	}

	comment, err := h.service.AddComment(r.Context(), hub.AddCommentRequest{
		BlogID:    chi.URLParam(r, "blogID"),
		Comment:   req.Comment,
		Timestamp: req.Timestamp,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, comment)
}

// DeleteComment removes a comment from a blog
func (h *BlogHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	err := h.service.DeleteComment(r.Context(),
		chi.URLParam(r, "blogID"), chi.URLParam(r, "commentID"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.NoContent(w, r)
}
