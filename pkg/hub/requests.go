package hub

import "time"

// Request DTOs

// SyncUserRequest contains the identity-provider account fields mirrored into
// the local users table. Called by the provider webhook, not by end users.
// A nil Role leaves the stored role unchanged; a pointer to the empty string
// clears it, so the mirror can revoke admin as well as grant it.
type SyncUserRequest struct {
	ClerkUserID string
	Email       string
	FirstName   string
	LastName    string
	ImageURL    string
	Role        *string
}

// CreateBlogRequest contains parameters for publishing a new blog post.
type CreateBlogRequest struct {
	Title       string
	Description string
	CoverImage  string
	Content     string
	Category    string
}

// UpdateBlogRequest patches a blog. Nil fields are left unchanged.
type UpdateBlogRequest struct {
	BlogID      string
	Title       *string
	Description *string
	CoverImage  *string
	Content     *string
}

// AddCommentRequest appends a comment to a blog. A zero Timestamp means
// "now".
type AddCommentRequest struct {
	BlogID    string
	Comment   string
	Timestamp time.Time
}

// CreateDocumentRequest contains parameters for creating a documentation page.
type CreateDocumentRequest struct {
	Title    string
	Category string
	Content  string
}

// UpdateDocumentRequest replaces a document's title and content.
type UpdateDocumentRequest struct {
	DocID   string
	Title   string
	Content string
}

// CreateResourceRequest contains parameters for creating a roadmap resource.
type CreateResourceRequest struct {
	Title    string
	Category string
	Content  string
}

// UpdateResourceRequest replaces a resource's title and content.
type UpdateResourceRequest struct {
	ResourceID string
	Title      string
	Content    string
}
