package hub

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for persistence of users, categories, and
// the three content kinds. Update methods replace the whole row; like and
// comment mutations therefore commit as a single-row write, which is what
// keeps a failed mutation from leaving partial state behind.
type Repository interface {
	// User operations
	CreateUser(ctx context.Context, user *User) error
	GetUserByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetUserByClerkID(ctx context.Context, clerkUserID string) (*User, error)
	UpdateUser(ctx context.Context, user *User) error

	// Category operations. GetCategoryBySlug returns the first match;
	// duplicate slugs from concurrent first use are tolerated.
	CreateCategory(ctx context.Context, category *Category) error
	GetCategoryBySlug(ctx context.Context, slug string) (*Category, error)
	ListCategories(ctx context.Context) ([]*Category, error)

	// Blog operations, keyed by the opaque public BlogID except for delete,
	// which takes the row key the service already resolved.
	CreateBlog(ctx context.Context, blog *Blog) error
	GetBlogByBlogID(ctx context.Context, blogID string) (*Blog, error)
	UpdateBlog(ctx context.Context, blog *Blog) error
	DeleteBlog(ctx context.Context, id uuid.UUID) error
	ListBlogs(ctx context.Context) ([]*Blog, error)
	ListBlogsByCategory(ctx context.Context, slug string) ([]*Blog, error)
	ListRecentBlogs(ctx context.Context, limit int) ([]*Blog, error)

	// Document operations
	CreateDocument(ctx context.Context, doc *Document) error
	GetDocumentByDocID(ctx context.Context, docID string) (*Document, error)
	UpdateDocument(ctx context.Context, doc *Document) error
	DeleteDocument(ctx context.Context, id uuid.UUID) error
	ListDocuments(ctx context.Context) ([]*Document, error)
	ListDocumentsByCategory(ctx context.Context, slug string) ([]*Document, error)

	// Resource operations
	CreateResource(ctx context.Context, resource *Resource) error
	GetResourceByResourceID(ctx context.Context, resourceID string) (*Resource, error)
	GetResourceByOwner(ctx context.Context, ownerID uuid.UUID) (*Resource, error)
	UpdateResource(ctx context.Context, resource *Resource) error
	DeleteResource(ctx context.Context, id uuid.UUID) error
}

// ImageStore brokers URLs for blog cover images. The hub never handles image
// bytes; it stores whatever URL the presentation layer ends up with.
type ImageStore interface {
	// GetUploadURL returns a URL the client uploads the cover image to
	GetUploadURL(ctx context.Context, objectKey string) (string, error)

	// GetDownloadURL returns a URL the cover image is served from
	GetDownloadURL(ctx context.Context, objectKey string) (string, error)

	// Delete removes the stored image
	Delete(ctx context.Context, objectKey string) error
}

// EventSink defines the interface for content event handling
type EventSink interface {
	// BlogCreated is fired when a blog is created
	BlogCreated(ctx context.Context, blog *Blog) error

	// BlogDeleted is fired when a blog is deleted
	BlogDeleted(ctx context.Context, blogID string) error

	// DocumentCreated is fired when a document is created
	DocumentCreated(ctx context.Context, doc *Document) error

	// DocumentDeleted is fired when a document is deleted
	DocumentDeleted(ctx context.Context, docID string) error

	// ResourceCreated is fired when a resource is created
	ResourceCreated(ctx context.Context, resource *Resource) error

	// ResourceDeleted is fired when a resource is deleted
	ResourceDeleted(ctx context.Context, resourceID string) error
}
