package api

import (
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/frontendhub/hub/pkg/hub"
)

// SyncSignatureHeader carries the shared-secret signature on webhook calls
// from the identity provider.
const SyncSignatureHeader = "X-Sync-Signature"

// UserHandler handles HTTP requests for identity sync and profile lookup
type UserHandler struct {
	service hub.Service

	// webhookSecret authenticates the identity provider's sync webhook.
	// Only signed calls may set or clear roles; empty disables the
	// webhook path entirely.
	webhookSecret string
}

// NewUserHandler creates a new user handler
func NewUserHandler(service hub.Service, webhookSecret string) *UserHandler {
	return &UserHandler{service: service, webhookSecret: webhookSecret}
}

// Routes returns the routes for users
func (h *UserHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/sync", h.SyncUser)
	r.Get("/me", h.GetMe)

	return r
}

// SyncUserRequest mirrors the identity provider's profile payload
type SyncUserRequest struct {
	ClerkUserID string  `json:"clerk_user_id"`
	Email       string  `json:"email"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	ImageURL    string  `json:"image_url"`
	Role        *string `json:"role,omitempty"`
}

// fromSignedWebhook reports whether the request carries a valid provider
// signature.
func (h *UserHandler) fromSignedWebhook(r *http.Request) bool {
	if h.webhookSecret == "" {
		return false
	}
	signature := r.Header.Get(SyncSignatureHeader)
	return subtle.ConstantTimeCompare([]byte(signature), []byte(h.webhookSecret)) == 1
}

// SyncUser upserts the local user row from the provider profile. Signed
// webhook calls may sync any subject and manage roles; everyone else must be
// authenticated as the subject being synced, and the role field is ignored.
func (h *UserHandler) SyncUser(w http.ResponseWriter, r *http.Request) {
	var req SyncUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, r, err.Error())
		return
	}

	if req.ClerkUserID == "" || req.Email == "" {
		writeBadRequest(w, r, "clerk_user_id and email are required")
		return
	}

	if !h.fromSignedWebhook(r) {
		identity, ok := hub.IdentityFromContext(r.Context())
		if !ok {
			writeError(w, r, fmt.Errorf("sync user: %w", hub.ErrUnauthenticated))
			return
		}
		if identity.Subject != req.ClerkUserID {
			writeError(w, r, fmt.Errorf("sync user %q: %w", req.ClerkUserID, hub.ErrUnauthorized))
			return
		}
		req.Role = nil
	}

	user, err := h.service.SyncUser(r.Context(), hub.SyncUserRequest{
		ClerkUserID: req.ClerkUserID,
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		ImageURL:    req.ImageURL,
		Role:        req.Role,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, user)
}

// GetMe returns the local user row for the authenticated caller
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.GetUserByIdentity(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, user)
}
