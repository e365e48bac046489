package hub

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// service implements the Service interface
type service struct {
	repository Repository
	images     ImageStore
	eventSink  EventSink

	blogMutate Policy
	ownerOnly  Policy
}

// Option represents a functional option for configuring the service
type Option func(*service)

// WithRepository sets the repository for the service
func WithRepository(repo Repository) Option {
	return func(s *service) {
		s.repository = repo
	}
}

// WithImageStore sets the cover-image store for the service
func WithImageStore(store ImageStore) Option {
	return func(s *service) {
		s.images = store
	}
}

// WithEventSink sets the event sink for the service
func WithEventSink(sink EventSink) Option {
	return func(s *service) {
		s.eventSink = sink
	}
}

// New creates a new service instance with the given options
func New(options ...Option) (Service, error) {
	s := &service{
		blogMutate: AnyOf(RequireOwner(), RequireRole(RoleAdmin)),
		ownerOnly:  RequireOwner(),
	}

	for _, option := range options {
		option(s)
	}

	if s.repository == nil {
		return nil, fmt.Errorf("repository is required")
	}

	return s, nil
}

// requireUser resolves the context identity to the local user row. Every
// mutation goes through here first, so ownership checks always compare
// internal user references, never the raw provider subject.
func (s *service) requireUser(ctx context.Context) (*User, error) {
	ident, ok := IdentityFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	user, err := s.repository.GetUserByClerkID(ctx, ident.Subject)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("resolve identity %q: %w", ident.Subject, err)
	}

	return user, nil
}

// ensureCategory looks up the category for slug, inserting one if absent.
// Read-then-insert is not isolated from a concurrent identical insert; the
// duplicate row that can result is tolerated, and every caller still resolves
// to a valid category.
func (s *service) ensureCategory(ctx context.Context, slug string) (*Category, error) {
	category, err := s.repository.GetCategoryBySlug(ctx, slug)
	if err == nil {
		return category, nil
	}
	if !errors.Is(err, ErrCategoryNotFound) {
		return nil, err
	}

	category = &Category{
		ID:        uuid.New(),
		Name:      strings.ToUpper(slug),
		Slug:      slug,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repository.CreateCategory(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// User operations

func (s *service) SyncUser(ctx context.Context, req SyncUserRequest) (*User, error) {
	now := time.Now().UTC()

	existing, err := s.repository.GetUserByClerkID(ctx, req.ClerkUserID)
	if err == nil {
		existing.Email = req.Email
		existing.FirstName = req.FirstName
		existing.LastName = req.LastName
		existing.ImageURL = req.ImageURL
		if req.Role != nil {
			existing.Role = *req.Role
		}
		existing.UpdatedAt = now
		if err := s.repository.UpdateUser(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	user := &User{
		ID:          uuid.New(),
		ClerkUserID: req.ClerkUserID,
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		ImageURL:    req.ImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if err := s.repository.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *service) GetUserByIdentity(ctx context.Context) (*User, error) {
	return s.requireUser(ctx)
}

// Blog operations

func (s *service) CreateBlog(ctx context.Context, req CreateBlogRequest) (*Blog, error) {
	user, err := s.requireUser(ctx)
	if err != nil {
		return nil, err
	}

	if req.Category != "" {
		if _, err := s.ensureCategory(ctx, req.Category); err != nil {
			return nil, &BlogError{Op: "create", Err: err}
		}
	}

	now := time.Now().UTC()
	blog := &Blog{
		ID:           uuid.New(),
		BlogID:       uuid.NewString(),
		Title:        req.Title,
		Description:  req.Description,
		CoverImage:   req.CoverImage,
		Content:      req.Content,
		CategorySlug: req.Category,
		OwnerID:      user.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
		Likes:        0,
		LikedBy:      []uuid.UUID{},
		Comments:     []Comment{},
	}

	if err := s.repository.CreateBlog(ctx, blog); err != nil {
		return nil, &BlogError{BlogID: blog.BlogID, Op: "create", Err: err}
	}

	// Read back the persisted row; a miss here means the store lost the
	// insert and the caller must not be handed a phantom.
	created, err := s.repository.GetBlogByBlogID(ctx, blog.BlogID)
	if err != nil {
		return nil, &BlogError{BlogID: blog.BlogID, Op: "create", Err: ErrCreateFailed}
	}

	if s.eventSink != nil {
		_ = s.eventSink.BlogCreated(ctx, created)
	}

	return created, nil
}

func (s *service) GetBlog(ctx context.Context, blogID string) (*Blog, error) {
	return s.repository.GetBlogByBlogID(ctx, blogID)
}

func (s *service) GetAllBlogs(ctx context.Context) ([]*Blog, error) {
	return s.repository.ListBlogs(ctx)
}

func (s *service) GetRecentBlogs(ctx context.Context, limit int) ([]*Blog, error) {
	if limit <= 0 {
		limit = 5
	}
	return s.repository.ListRecentBlogs(ctx, limit)
}

func (s *service) GetBlogsByCategory(ctx context.Context, slug string) ([]*Blog, error) {
	return s.repository.ListBlogsByCategory(ctx, slug)
}

func (s *service) UpdateBlog(ctx context.Context, req UpdateBlogRequest) (*Blog, error) {
	user, err := s.requireUser(ctx)
	if err != nil {
		return nil, err
	}

	blog, err := s.repository.GetBlogByBlogID(ctx, req.BlogID)
	if err != nil {
		return nil, err
	}

	if err := s.blogMutate(user, blog.OwnerID); err != nil {
		return nil, err
	}

	if req.Title != nil {
		blog.Title = *req.Title
	}
	if req.Description != nil {
		blog.Description = *req.Description
	}
	if req.CoverImage != nil {
		blog.CoverImage = *req.CoverImage
	}
	if req.Content != nil {
		blog.Content = *req.Content
	}
	blog.UpdatedAt = time.Now().UTC()

	if err := s.repository.UpdateBlog(ctx, blog); err != nil {
		return nil, &BlogError{BlogID: req.BlogID, Op: "update", Err: err}
	}

	return blog, nil
}

func (s *service) DeleteBlog(ctx context.Context, blogID string) error {
	user, err := s.requireUser(ctx)
	if err != nil {
		return err
	}

	blog, err := s.repository.GetBlogByBlogID(ctx, blogID)
	if err != nil {
		return err
	}

	if err := s.blogMutate(user, blog.OwnerID); err != nil {
		return err
	}

	// Hard removal. Comments and likes are embedded in the row, so they go
	// with it and no orphan cleanup is needed.
	if err := s.repository.DeleteBlog(ctx, blog.ID); err != nil {
		return &BlogError{BlogID: blogID, Op: "delete", Err: err}
	}

	if s.eventSink != nil {
		_ = s.eventSink.BlogDeleted(ctx, blogID)
	}

	return nil
}

// Like and comment operations

func (s *service) ToggleLike(ctx context.Context, blogID string, liked bool) (int, error) {
	user, err := s.requireUser(ctx)
	if err != nil {
		return 0, err
	}

	blog, err := s.repository.GetBlogByBlogID(ctx, blogID)
	if err != nil {
		return 0, err
	}

	present := blog.LikedByUser(user.ID)
	if liked == present {
		// Double-like and redundant unlike are safe no-ops.
		return blog.Likes, nil
	}

	if liked {
		blog.LikedBy = append(blog.LikedBy, user.ID)
	} else {
		kept := blog.LikedBy[:0]
		for _, id := range blog.LikedBy {
			if id != user.ID {
				kept = append(kept, id)
			}
		}
		blog.LikedBy = kept
	}

	// The count is derived from membership, so it can never drift negative.
	blog.Likes = len(blog.LikedBy)
	blog.UpdatedAt = time.Now().UTC()

	if err := s.repository.UpdateBlog(ctx, blog); err != nil {
		return 0, &BlogError{BlogID: blogID, Op: "toggle_like", Err: err}
	}

	return blog.Likes, nil
}

func (s *service) AddComment(ctx context.Context, req AddCommentRequest) (*Comment, error) {
	user, err := s.requireUser(ctx)
	if err != nil {
		return nil, err
	}

	blog, err := s.repository.GetBlogByBlogID(ctx, req.BlogID)
	if err != nil {
		return nil, err
	}

	ts := req.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	// Snapshot the author's display fields; the comment keeps them even if
	// the profile changes later.
	comment := Comment{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		UserImage: user.ImageURL,
		Comment:   req.Comment,
		Timestamp: ts,
	}

	blog.Comments = append(blog.Comments, comment)
	blog.UpdatedAt = time.Now().UTC()

	if err := s.repository.UpdateBlog(ctx, blog); err != nil {
		return nil, &BlogError{BlogID: req.BlogID, Op: "add_comment", Err: err}
	}

	return &comment, nil
}

func (s *service) DeleteComment(ctx context.Context, blogID, commentID string) error {
	user, err := s.requireUser(ctx)
	if err != nil {
		return err
	}

	blog, err := s.repository.GetBlogByBlogID(ctx, blogID)
	if err != nil {
		return err
	}

	idx := -1
	for i, c := range blog.Comments {
		if c.ID == commentID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrCommentNotFound
	}

	// The comment's author or the blog's owner may delete; nobody else.
	if blog.Comments[idx].UserID != user.ID && blog.OwnerID != user.ID {
		return ErrUnauthorized
	}

	blog.Comments = append(blog.Comments[:idx], blog.Comments[idx+1:]...)
	blog.UpdatedAt = time.Now().UTC()

	if err := s.repository.UpdateBlog(ctx, blog); err != nil {
		return &BlogError{BlogID: blogID, Op: "delete_comment", Err: err}
	}

	return nil
}

// Document operations

func (s *service) CreateDocument(ctx context.Context, req CreateDocumentRequest) (*Document, error) {
	user, err := s.requireUser(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := s.ensureCategory(ctx, req.Category); err != nil {
		return nil, &DocumentError{Op: "create", Err: err}
	}

	now := time.Now().UTC()
	doc := &Document{
		ID:           uuid.New(),
		DocID:        uuid.NewString(),
		Title:        req.Title,
		CategorySlug: req.Category,
		Content:      req.Content,
		OwnerID:      user.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repository.CreateDocument(ctx, doc); err != nil {
		return nil, &DocumentError{DocID: doc.DocID, Op: "create", Err: err}
	}

	created, err := s.repository.GetDocumentByDocID(ctx, doc.DocID)
	if err != nil {
		return nil, &DocumentError{DocID: doc.DocID, Op: "create", Err: ErrCreateFailed}
	}

	if s.eventSink != nil {
		_ = s.eventSink.DocumentCreated(ctx, created)
	}

	return created, nil
}

func (s *service) GetDocument(ctx context.Context, docID string) (*DocumentWithAuthor, error) {
	doc, err := s.repository.GetDocumentByDocID(ctx, docID)
	if err != nil {
		return nil, err
	}

	out := &DocumentWithAuthor{Document: *doc}

	// A dangling owner reference just leaves Author nil for display; any
	// other repository failure is a real error.
	author, err := s.repository.GetUserByID(ctx, doc.OwnerID)
	switch {
	case err == nil:
		out.Author = author
	case !errors.Is(err, ErrUserNotFound):
		return nil, err
	}

	return out, nil
}

func (s *service) GetAllDocuments(ctx context.Context) ([]*Document, error) {
	return s.repository.ListDocuments(ctx)
}

func (s *service) GetDocumentsByCategory(ctx context.Context, slug string) ([]*Document, error) {
	return s.repository.ListDocumentsByCategory(ctx, slug)
}

func (s *service) UpdateDocument(ctx context.Context, req UpdateDocumentRequest) (*Document, error) {
	user, err := s.requireUser(ctx)
	if err != nil {
		return nil, err
	}

	doc, err := s.repository.GetDocumentByDocID(ctx, req.DocID)
	if err != nil {
		return nil, err
	}

	if err := s.ownerOnly(user, doc.OwnerID); err != nil {
		return nil, err
	}

	doc.Title = req.Title
	doc.Content = req.Content
	doc.UpdatedAt = time.Now().UTC()

	if err := s.repository.UpdateDocument(ctx, doc); err != nil {
		return nil, &DocumentError{DocID: req.DocID, Op: "update", Err: err}
	}

	return doc, nil
}

func (s *service) DeleteDocument(ctx context.Context, docID string) error {
	user, err := s.requireUser(ctx)
	if err != nil {
		return err
	}

	doc, err := s.repository.GetDocumentByDocID(ctx, docID)
	if err != nil {
		return err
	}

	if err := s.ownerOnly(user, doc.OwnerID); err != nil {
		return err
	}

	if err := s.repository.DeleteDocument(ctx, doc.ID); err != nil {
		return &DocumentError{DocID: docID, Op: "delete", Err: err}
	}

	if s.eventSink != nil {
		_ = s.eventSink.DocumentDeleted(ctx, docID)
	}

	return nil
}

// Resource operations

func (s *service) CreateResource(ctx context.Context, req CreateResourceRequest) (*Resource, error) {
	user, err := s.requireUser(ctx)
	if err != nil {
		return nil, err
	}

	// One roadmap per user. The read path looks up by owner and expects a
	// single row, so a second create is refused outright.
	if _, err := s.repository.GetResourceByOwner(ctx, user.ID); err == nil {
		return nil, ErrResourceExists
	} else if !errors.Is(err, ErrResourceNotFound) {
		return nil, err
	}

	if req.Category != "" {
		if _, err := s.ensureCategory(ctx, req.Category); err != nil {
			return nil, &ResourceError{Op: "create", Err: err}
		}
	}

	now := time.Now().UTC()
	resource := &Resource{
		ID:           uuid.New(),
		ResourceID:   uuid.NewString(),
		Title:        req.Title,
		CategorySlug: req.Category,
		Content:      req.Content,
		OwnerID:      user.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repository.CreateResource(ctx, resource); err != nil {
		return nil, &ResourceError{ResourceID: resource.ResourceID, Op: "create", Err: err}
	}

	created, err := s.repository.GetResourceByResourceID(ctx, resource.ResourceID)
	if err != nil {
		return nil, &ResourceError{ResourceID: resource.ResourceID, Op: "create", Err: ErrCreateFailed}
	}

	if s.eventSink != nil {
		_ = s.eventSink.ResourceCreated(ctx, created)
	}

	return created, nil
}

func (s *service) GetResource(ctx context.Context, resourceID string) (*Resource, error) {
	return s.repository.GetResourceByResourceID(ctx, resourceID)
}

func (s *service) GetUserResource(ctx context.Context) (*Resource, error) {
	user, err := s.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	return s.repository.GetResourceByOwner(ctx, user.ID)
}

func (s *service) UpdateResource(ctx context.Context, req UpdateResourceRequest) (*Resource, error) {
	user, err := s.requireUser(ctx)
	if err != nil {
		return nil, err
	}

	resource, err := s.repository.GetResourceByResourceID(ctx, req.ResourceID)
	if err != nil {
		return nil, err
	}

	if err := s.ownerOnly(user, resource.OwnerID); err != nil {
		return nil, err
	}

	resource.Title = req.Title
	resource.Content = req.Content
	resource.UpdatedAt = time.Now().UTC()

	if err := s.repository.UpdateResource(ctx, resource); err != nil {
		return nil, &ResourceError{ResourceID: req.ResourceID, Op: "update", Err: err}
	}

	return resource, nil
}

func (s *service) DeleteResource(ctx context.Context, resourceID string) error {
	user, err := s.requireUser(ctx)
	if err != nil {
		return err
	}

	resource, err := s.repository.GetResourceByResourceID(ctx, resourceID)
	if err != nil {
		return err
	}

	if err := s.ownerOnly(user, resource.OwnerID); err != nil {
		return err
	}

	if err := s.repository.DeleteResource(ctx, resource.ID); err != nil {
		return &ResourceError{ResourceID: resourceID, Op: "delete", Err: err}
	}

	if s.eventSink != nil {
		_ = s.eventSink.ResourceDeleted(ctx, resourceID)
	}

	return nil
}

// Category operations

func (s *service) ListCategories(ctx context.Context) ([]*Category, error) {
	return s.repository.ListCategories(ctx)
}

func (s *service) GetCategoryBySlug(ctx context.Context, slug string) (*Category, error) {
	return s.repository.GetCategoryBySlug(ctx, slug)
}

// Cover image URL brokering

func (s *service) GetCoverUploadURL(ctx context.Context, objectKey string) (string, error) {
	if s.images == nil {
		return "", fmt.Errorf("no image store configured")
	}
	if _, err := s.requireUser(ctx); err != nil {
		return "", err
	}
	return s.images.GetUploadURL(ctx, objectKey)
}

func (s *service) GetCoverDownloadURL(ctx context.Context, objectKey string) (string, error) {
	if s.images == nil {
		return "", fmt.Errorf("no image store configured")
	}
	return s.images.GetDownloadURL(ctx, objectKey)
}
