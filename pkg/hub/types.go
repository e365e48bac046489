package hub

import (
	"time"

	"github.com/google/uuid"
)

// Role constants for User.Role.
const (
	RoleAdmin = "admin"
)

// User mirrors an account from the external identity provider. Rows are
// provisioned out-of-band via SyncUser; content operations never create them.
type User struct {
	ID          uuid.UUID `json:"id"`
	ClerkUserID string    `json:"clerk_user_id"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name,omitempty"`
	LastName    string    `json:"last_name,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	Role        string    `json:"role,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Category is an append-only lookup row, auto-created the first time any
// content is filed under a new slug. There is no update or delete path.
type Category struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

// Comment is embedded in its Blog row. Author display fields are a snapshot
// taken at comment time; they do not follow later profile changes.
type Comment struct {
	ID        string    `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	FirstName string    `json:"first_name,omitempty"`
	LastName  string    `json:"last_name,omitempty"`
	UserImage string    `json:"user_image,omitempty"`
	Comment   string    `json:"comment"`
	Timestamp time.Time `json:"timestamp"`
}

// Blog is a published post. BlogID is the opaque public identifier used in
// URLs; ID is the storage row key and never leaves the repository layer's
// callers. Likes always equals len(LikedBy).
type Blog struct {
	ID           uuid.UUID   `json:"-"`
	BlogID       string      `json:"blog_id"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	CoverImage   string      `json:"cover_image"`
	Content      string      `json:"content"`
	CategorySlug string      `json:"category,omitempty"`
	OwnerID      uuid.UUID   `json:"owner_id"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
	Likes        int         `json:"likes"`
	LikedBy      []uuid.UUID `json:"liked_by"`
	Comments     []Comment   `json:"comments"`
}

// LikedByUser reports whether the given user is in the blog's liked set.
func (b *Blog) LikedByUser(userID uuid.UUID) bool {
	for _, id := range b.LikedBy {
		if id == userID {
			return true
		}
	}
	return false
}

// Document is a documentation page filed under exactly one category.
type Document struct {
	ID           uuid.UUID `json:"-"`
	DocID        string    `json:"doc_id"`
	Title        string    `json:"title"`
	CategorySlug string    `json:"category"`
	Content      string    `json:"content"`
	OwnerID      uuid.UUID `json:"owner_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// DocumentWithAuthor is the read shape for a single document lookup: the row
// plus the owning user joined for display. Author is nil when the owner row
// no longer resolves.
type DocumentWithAuthor struct {
	Document
	Author *User `json:"user,omitempty"`
}

// Resource is a roadmap entry. Each user owns at most one.
type Resource struct {
	ID           uuid.UUID `json:"-"`
	ResourceID   string    `json:"resource_id"`
	Title        string    `json:"title"`
	CategorySlug string    `json:"category,omitempty"`
	Content      string    `json:"content"`
	OwnerID      uuid.UUID `json:"owner_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
