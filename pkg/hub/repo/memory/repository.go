package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/frontendhub/hub/pkg/hub"
)

// Repository implements hub.Repository using in-memory storage
type Repository struct {
	mu         sync.RWMutex
	users      map[uuid.UUID]*hub.User
	categories map[uuid.UUID]*hub.Category
	blogs      map[uuid.UUID]*hub.Blog
	documents  map[uuid.UUID]*hub.Document
	resources  map[uuid.UUID]*hub.Resource

	usersByClerkID map[string]uuid.UUID // clerk_user_id -> user row id
	blogsByBlogID  map[string]uuid.UUID // public blog id -> row id
	docsByDocID    map[string]uuid.UUID
	resourcesByRID map[string]uuid.UUID
}

// New creates a new in-memory repository
func New() hub.Repository {
	return &Repository{
		users:          make(map[uuid.UUID]*hub.User),
		categories:     make(map[uuid.UUID]*hub.Category),
		blogs:          make(map[uuid.UUID]*hub.Blog),
		documents:      make(map[uuid.UUID]*hub.Document),
		resources:      make(map[uuid.UUID]*hub.Resource),
		usersByClerkID: make(map[string]uuid.UUID),
		blogsByBlogID:  make(map[string]uuid.UUID),
		docsByDocID:    make(map[string]uuid.UUID),
		resourcesByRID: make(map[string]uuid.UUID),
	}
}

// copyBlog deep-copies the embedded slices so callers can't mutate stored rows.
func copyBlog(b *hub.Blog) *hub.Blog {
	blogCopy := *b
	blogCopy.LikedBy = append([]uuid.UUID(nil), b.LikedBy...)
	blogCopy.Comments = append([]hub.Comment(nil), b.Comments...)
	return &blogCopy
}

// User operations

func (r *Repository) CreateUser(ctx context.Context, user *hub.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	userCopy := *user
	r.users[user.ID] = &userCopy
	r.usersByClerkID[user.ClerkUserID] = user.ID

	return nil
}

func (r *Repository) GetUserByID(ctx context.Context, id uuid.UUID) (*hub.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, exists := r.users[id]
	if !exists {
		return nil, hub.ErrUserNotFound
	}

	userCopy := *user
	return &userCopy, nil
}

func (r *Repository) GetUserByClerkID(ctx context.Context, clerkUserID string) (*hub.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, exists := r.usersByClerkID[clerkUserID]
	if !exists {
		return nil, hub.ErrUserNotFound
	}

	userCopy := *r.users[id]
	return &userCopy, nil
}

func (r *Repository) UpdateUser(ctx context.Context, user *hub.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.ID]; !exists {
		return hub.ErrUserNotFound
	}

	userCopy := *user
	r.users[user.ID] = &userCopy
	r.usersByClerkID[user.ClerkUserID] = user.ID

	return nil
}

// Category operations

func (r *Repository) CreateCategory(ctx context.Context, category *hub.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	categoryCopy := *category
	r.categories[category.ID] = &categoryCopy

	return nil
}

func (r *Repository) GetCategoryBySlug(ctx context.Context, slug string) (*hub.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, category := range r.categories {
		if category.Slug == slug {
			categoryCopy := *category
			return &categoryCopy, nil
		}
	}

	return nil, hub.ErrCategoryNotFound
}

func (r *Repository) ListCategories(ctx context.Context) ([]*hub.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*hub.Category, 0, len(r.categories))
	for _, category := range r.categories {
		categoryCopy := *category
		result = append(result, &categoryCopy)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result, nil
}

// Blog operations

func (r *Repository) CreateBlog(ctx context.Context, blog *hub.Blog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.blogs[blog.ID] = copyBlog(blog)
	r.blogsByBlogID[blog.BlogID] = blog.ID

	return nil
}

func (r *Repository) GetBlogByBlogID(ctx context.Context, blogID string) (*hub.Blog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, exists := r.blogsByBlogID[blogID]
	if !exists {
		return nil, hub.ErrBlogNotFound
	}

	return copyBlog(r.blogs[id]), nil
}

func (r *Repository) UpdateBlog(ctx context.Context, blog *hub.Blog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.blogs[blog.ID]; !exists {
		return hub.ErrBlogNotFound
	}

	r.blogs[blog.ID] = copyBlog(blog)

	return nil
}

func (r *Repository) DeleteBlog(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	blog, exists := r.blogs[id]
	if !exists {
		return hub.ErrBlogNotFound
	}

	delete(r.blogsByBlogID, blog.BlogID)
	delete(r.blogs, id)

	return nil
}

func (r *Repository) ListBlogs(ctx context.Context) ([]*hub.Blog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*hub.Blog, 0, len(r.blogs))
	for _, blog := range r.blogs {
		result = append(result, copyBlog(blog))
	}

	// Sort by created_at descending
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result, nil
}

func (r *Repository) ListBlogsByCategory(ctx context.Context, slug string) ([]*hub.Blog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*hub.Blog
	for _, blog := range r.blogs {
		if blog.CategorySlug == slug {
			result = append(result, copyBlog(blog))
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result, nil
}

func (r *Repository) ListRecentBlogs(ctx context.Context, limit int) ([]*hub.Blog, error) {
	all, err := r.ListBlogs(ctx)
	if err != nil {
		return nil, err
	}

	if limit < len(all) {
		all = all[:limit]
	}

	return all, nil
}

// Document operations

func (r *Repository) CreateDocument(ctx context.Context, doc *hub.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	docCopy := *doc
	r.documents[doc.ID] = &docCopy
	r.docsByDocID[doc.DocID] = doc.ID

	return nil
}

func (r *Repository) GetDocumentByDocID(ctx context.Context, docID string) (*hub.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, exists := r.docsByDocID[docID]
	if !exists {
		return nil, hub.ErrDocumentNotFound
	}

	docCopy := *r.documents[id]
	return &docCopy, nil
}

func (r *Repository) UpdateDocument(ctx context.Context, doc *hub.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.documents[doc.ID]; !exists {
		return hub.ErrDocumentNotFound
	}

	docCopy := *doc
	r.documents[doc.ID] = &docCopy

	return nil
}

func (r *Repository) DeleteDocument(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, exists := r.documents[id]
	if !exists {
		return hub.ErrDocumentNotFound
	}

	delete(r.docsByDocID, doc.DocID)
	delete(r.documents, id)

	return nil
}

func (r *Repository) ListDocuments(ctx context.Context) ([]*hub.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*hub.Document, 0, len(r.documents))
	for _, doc := range r.documents {
		docCopy := *doc
		result = append(result, &docCopy)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result, nil
}

func (r *Repository) ListDocumentsByCategory(ctx context.Context, slug string) ([]*hub.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*hub.Document
	for _, doc := range r.documents {
		if doc.CategorySlug == slug {
			docCopy := *doc
			result = append(result, &docCopy)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result, nil
}

// Resource operations

func (r *Repository) CreateResource(ctx context.Context, resource *hub.Resource) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	resourceCopy := *resource
	r.resources[resource.ID] = &resourceCopy
	r.resourcesByRID[resource.ResourceID] = resource.ID

	return nil
}

func (r *Repository) GetResourceByResourceID(ctx context.Context, resourceID string) (*hub.Resource, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, exists := r.resourcesByRID[resourceID]
	if !exists {
		return nil, hub.ErrResourceNotFound
	}

	resourceCopy := *r.resources[id]
	return &resourceCopy, nil
}

func (r *Repository) GetResourceByOwner(ctx context.Context, ownerID uuid.UUID) (*hub.Resource, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, resource := range r.resources {
		if resource.OwnerID == ownerID {
			resourceCopy := *resource
			return &resourceCopy, nil
		}
	}

	return nil, hub.ErrResourceNotFound
}

func (r *Repository) UpdateResource(ctx context.Context, resource *hub.Resource) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.resources[resource.ID]; !exists {
		return hub.ErrResourceNotFound
	}

	resourceCopy := *resource
	r.resources[resource.ID] = &resourceCopy

	return nil
}

func (r *Repository) DeleteResource(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	resource, exists := r.resources[id]
	if !exists {
		return hub.ErrResourceNotFound
	}

	delete(r.resourcesByRID, resource.ResourceID)
	delete(r.resources, id)

	return nil
}
