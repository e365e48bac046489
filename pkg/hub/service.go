package hub

import "context"

// Service defines the main interface for the hub content store
type Service interface {
	// User operations
	SyncUser(ctx context.Context, req SyncUserRequest) (*User, error)
	GetUserByIdentity(ctx context.Context) (*User, error)

	// Blog operations
	CreateBlog(ctx context.Context, req CreateBlogRequest) (*Blog, error)
	GetBlog(ctx context.Context, blogID string) (*Blog, error)
	GetAllBlogs(ctx context.Context) ([]*Blog, error)
	GetRecentBlogs(ctx context.Context, limit int) ([]*Blog, error)
	GetBlogsByCategory(ctx context.Context, slug string) ([]*Blog, error)
	UpdateBlog(ctx context.Context, req UpdateBlogRequest) (*Blog, error)
	DeleteBlog(ctx context.Context, blogID string) error

	// Like and comment operations
	ToggleLike(ctx context.Context, blogID string, liked bool) (int, error)
	AddComment(ctx context.Context, req AddCommentRequest) (*Comment, error)
	DeleteComment(ctx context.Context, blogID, commentID string) error

	// Document operations
	CreateDocument(ctx context.Context, req CreateDocumentRequest) (*Document, error)
	GetDocument(ctx context.Context, docID string) (*DocumentWithAuthor, error)
	GetAllDocuments(ctx context.Context) ([]*Document, error)
	GetDocumentsByCategory(ctx context.Context, slug string) ([]*Document, error)
	UpdateDocument(ctx context.Context, req UpdateDocumentRequest) (*Document, error)
	DeleteDocument(ctx context.Context, docID string) error

	// Resource operations
	CreateResource(ctx context.Context, req CreateResourceRequest) (*Resource, error)
	GetResource(ctx context.Context, resourceID string) (*Resource, error)
	GetUserResource(ctx context.Context) (*Resource, error)
	UpdateResource(ctx context.Context, req UpdateResourceRequest) (*Resource, error)
	DeleteResource(ctx context.Context, resourceID string) error

	// Category operations
	ListCategories(ctx context.Context) ([]*Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*Category, error)

	// Cover image URL brokering
	GetCoverUploadURL(ctx context.Context, objectKey string) (string, error)
	GetCoverDownloadURL(ctx context.Context, objectKey string) (string, error)
}
