package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/frontendhub/hub/pkg/hub"
)

// DBTX is an interface that allows us to use either a database connection or a transaction
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Repository implements hub.Repository using PostgreSQL
type Repository struct {
	db DBTX
}

// New creates a new PostgreSQL repository
func New(db DBTX) hub.Repository {
	return &Repository{db: db}
}

// NewWithPool creates a new PostgreSQL repository with connection pool
func NewWithPool(pool *pgxpool.Pool) hub.Repository {
	return &Repository{db: pool}
}

// Error handling helper
func (r *Repository) handlePostgresError(operation string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("duplicate entry in %s: %s", operation, pgErr.ConstraintName)
		case "23503": // foreign_key_violation
			return fmt.Errorf("referenced record not found")
		case "23502": // not_null_violation
			return fmt.Errorf("required field %s is missing", pgErr.ColumnName)
		case "42P01": // undefined_table
			return fmt.Errorf("table does not exist - database migration required")
		default:
			return fmt.Errorf("database error in %s: %s (code: %s)", operation, pgErr.Message, pgErr.Code)
		}
	}

	return fmt.Errorf("database error in %s: %w", operation, err)
}

// User operations

func (r *Repository) CreateUser(ctx context.Context, user *hub.User) error {
	query := `
		INSERT INTO users (
			id, clerk_user_id, email, first_name, last_name, image_url,
			role, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.Exec(ctx, query,
		user.ID, user.ClerkUserID, user.Email, user.FirstName, user.LastName,
		user.ImageURL, user.Role, user.CreatedAt, user.UpdatedAt)

	if err != nil {
		return r.handlePostgresError("create user", err)
	}

	return nil
}

func (r *Repository) GetUserByID(ctx context.Context, id uuid.UUID) (*hub.User, error) {
	query := `
        SELECT id, clerk_user_id, email, first_name, last_name, image_url,
               role, created_at, updated_at
        FROM users WHERE id = $1`

	return r.scanUser(r.db.QueryRow(ctx, query, id))
}

func (r *Repository) GetUserByClerkID(ctx context.Context, clerkUserID string) (*hub.User, error) {
	query := `
        SELECT id, clerk_user_id, email, first_name, last_name, image_url,
               role, created_at, updated_at
        FROM users WHERE clerk_user_id = $1`

	return r.scanUser(r.db.QueryRow(ctx, query, clerkUserID))
}

func (r *Repository) scanUser(row pgx.Row) (*hub.User, error) {
	var user hub.User
	err := row.Scan(
		&user.ID, &user.ClerkUserID, &user.Email, &user.FirstName,
		&user.LastName, &user.ImageURL, &user.Role, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, hub.ErrUserNotFound
		}
		return nil, err
	}

	return &user, nil
}

func (r *Repository) UpdateUser(ctx context.Context, user *hub.User) error {
	query := `
		UPDATE users SET
			email = $2, first_name = $3, last_name = $4, image_url = $5,
			role = $6, updated_at = $7
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		user.ID, user.Email, user.FirstName, user.LastName,
		user.ImageURL, user.Role, user.UpdatedAt)
	if err != nil {
		return r.handlePostgresError("update user", err)
	}
	if tag.RowsAffected() == 0 {
		return hub.ErrUserNotFound
	}

	return nil
}

// Category operations

func (r *Repository) CreateCategory(ctx context.Context, category *hub.Category) error {
	query := `
		INSERT INTO categories (id, name, slug, created_at)
		VALUES ($1, $2, $3, $4)`

	_, err := r.db.Exec(ctx, query,
		category.ID, category.Name, category.Slug, category.CreatedAt)

	if err != nil {
		return r.handlePostgresError("create category", err)
	}

	return nil
}

func (r *Repository) GetCategoryBySlug(ctx context.Context, slug string) (*hub.Category, error) {
	// Concurrent upserts can leave duplicate slugs; take the earliest row
	// so lookups stay deterministic.
	query := `
        SELECT id, name, slug, created_at
        FROM categories WHERE slug = $1
        ORDER BY created_at ASC LIMIT 1`

	var category hub.Category
	err := r.db.QueryRow(ctx, query, slug).Scan(
		&category.ID, &category.Name, &category.Slug, &category.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, hub.ErrCategoryNotFound
		}
		return nil, err
	}

	return &category, nil
}

func (r *Repository) ListCategories(ctx context.Context) ([]*hub.Category, error) {
	query := `SELECT id, name, slug, created_at FROM categories ORDER BY name ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*hub.Category
	for rows.Next() {
		var category hub.Category
		if err := rows.Scan(&category.ID, &category.Name, &category.Slug, &category.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, &category)
	}

	return categories, rows.Err()
}

// Blog operations
//
// Comments and the liked-by set are stored as jsonb columns on the blogs
// row so every blog mutation is a single-row write.

func (r *Repository) CreateBlog(ctx context.Context, blog *hub.Blog) error {
	likedBy, comments, err := marshalBlogEmbeds(blog)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO blogs (
			id, blog_id, title, description, cover_image, content,
			category_slug, owner_id, likes, liked_by, comments,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err = r.db.Exec(ctx, query,
		blog.ID, blog.BlogID, blog.Title, blog.Description, blog.CoverImage,
		blog.Content, blog.CategorySlug, blog.OwnerID, blog.Likes,
		likedBy, comments, blog.CreatedAt, blog.UpdatedAt)

	if err != nil {
		return r.handlePostgresError("create blog", err)
	}

	return nil
}

func (r *Repository) GetBlogByBlogID(ctx context.Context, blogID string) (*hub.Blog, error) {
	query := blogSelect + ` WHERE blog_id = $1`

	blog, err := scanBlog(r.db.QueryRow(ctx, query, blogID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, hub.ErrBlogNotFound
		}
		return nil, err
	}

	return blog, nil
}

func (r *Repository) UpdateBlog(ctx context.Context, blog *hub.Blog) error {
	likedBy, comments, err := marshalBlogEmbeds(blog)
	if err != nil {
		return err
	}

	query := `
		UPDATE blogs SET
			title = $2, description = $3, cover_image = $4, content = $5,
			category_slug = $6, likes = $7, liked_by = $8, comments = $9,
			updated_at = $10
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		blog.ID, blog.Title, blog.Description, blog.CoverImage, blog.Content,
		blog.CategorySlug, blog.Likes, likedBy, comments, blog.UpdatedAt)
	if err != nil {
		return r.handlePostgresError("update blog", err)
	}
	if tag.RowsAffected() == 0 {
		return hub.ErrBlogNotFound
	}

	return nil
}

func (r *Repository) DeleteBlog(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM blogs WHERE id = $1`, id)
	if err != nil {
		return r.handlePostgresError("delete blog", err)
	}
	if tag.RowsAffected() == 0 {
		return hub.ErrBlogNotFound
	}

	return nil
}

func (r *Repository) ListBlogs(ctx context.Context) ([]*hub.Blog, error) {
	query := blogSelect + ` ORDER BY created_at DESC`
	return r.queryBlogs(ctx, query)
}

func (r *Repository) ListBlogsByCategory(ctx context.Context, slug string) ([]*hub.Blog, error) {
	query := blogSelect + ` WHERE category_slug = $1 ORDER BY created_at DESC`
	return r.queryBlogs(ctx, query, slug)
}

func (r *Repository) ListRecentBlogs(ctx context.Context, limit int) ([]*hub.Blog, error) {
	query := blogSelect + ` ORDER BY created_at DESC LIMIT $1`
	return r.queryBlogs(ctx, query, limit)
}

const blogSelect = `
        SELECT id, blog_id, title, description, cover_image, content,
               category_slug, owner_id, likes, liked_by, comments,
               created_at, updated_at
        FROM blogs`

func (r *Repository) queryBlogs(ctx context.Context, query string, args ...interface{}) ([]*hub.Blog, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blogs []*hub.Blog
	for rows.Next() {
		blog, err := scanBlog(rows)
		if err != nil {
			return nil, err
		}
		blogs = append(blogs, blog)
	}

	return blogs, rows.Err()
}

func marshalBlogEmbeds(blog *hub.Blog) ([]byte, []byte, error) {
	likedBy := blog.LikedBy
	if likedBy == nil {
		likedBy = []uuid.UUID{}
	}
	likedByJSON, err := json.Marshal(likedBy)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal liked_by: %w", err)
	}

	comments := blog.Comments
	if comments == nil {
		comments = []hub.Comment{}
	}
	commentsJSON, err := json.Marshal(comments)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal comments: %w", err)
	}

	return likedByJSON, commentsJSON, nil
}

func scanBlog(row pgx.Row) (*hub.Blog, error) {
	var blog hub.Blog
	var likedByJSON, commentsJSON []byte

	err := row.Scan(
		&blog.ID, &blog.BlogID, &blog.Title, &blog.Description, &blog.CoverImage,
		&blog.Content, &blog.CategorySlug, &blog.OwnerID, &blog.Likes,
		&likedByJSON, &commentsJSON, &blog.CreatedAt, &blog.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(likedByJSON, &blog.LikedBy); err != nil {
		return nil, fmt.Errorf("unmarshal liked_by: %w", err)
	}
	if err := json.Unmarshal(commentsJSON, &blog.Comments); err != nil {
		return nil, fmt.Errorf("unmarshal comments: %w", err)
	}

	return &blog, nil
}

// Document operations

func (r *Repository) CreateDocument(ctx context.Context, doc *hub.Document) error {
	query := `
		INSERT INTO documents (
			id, doc_id, title, category_slug, content, owner_id,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(ctx, query,
		doc.ID, doc.DocID, doc.Title, doc.CategorySlug, doc.Content,
		doc.OwnerID, doc.CreatedAt, doc.UpdatedAt)

	if err != nil {
		return r.handlePostgresError("create document", err)
	}

	return nil
}

func (r *Repository) GetDocumentByDocID(ctx context.Context, docID string) (*hub.Document, error) {
	query := `
        SELECT id, doc_id, title, category_slug, content, owner_id,
               created_at, updated_at
        FROM documents WHERE doc_id = $1`

	var doc hub.Document
	err := r.db.QueryRow(ctx, query, docID).Scan(
		&doc.ID, &doc.DocID, &doc.Title, &doc.CategorySlug, &doc.Content,
		&doc.OwnerID, &doc.CreatedAt, &doc.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, hub.ErrDocumentNotFound
		}
		return nil, err
	}

	return &doc, nil
}

func (r *Repository) UpdateDocument(ctx context.Context, doc *hub.Document) error {
	query := `
		UPDATE documents SET
			title = $2, category_slug = $3, content = $4, updated_at = $5
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		doc.ID, doc.Title, doc.CategorySlug, doc.Content, doc.UpdatedAt)
	if err != nil {
		return r.handlePostgresError("update document", err)
	}
	if tag.RowsAffected() == 0 {
		return hub.ErrDocumentNotFound
	}

	return nil
}

func (r *Repository) DeleteDocument(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return r.handlePostgresError("delete document", err)
	}
	if tag.RowsAffected() == 0 {
		return hub.ErrDocumentNotFound
	}

	return nil
}

func (r *Repository) ListDocuments(ctx context.Context) ([]*hub.Document, error) {
	query := `
        SELECT id, doc_id, title, category_slug, content, owner_id,
               created_at, updated_at
        FROM documents ORDER BY created_at DESC`

	return r.queryDocuments(ctx, query)
}

func (r *Repository) ListDocumentsByCategory(ctx context.Context, slug string) ([]*hub.Document, error) {
	query := `
        SELECT id, doc_id, title, category_slug, content, owner_id,
               created_at, updated_at
        FROM documents WHERE category_slug = $1 ORDER BY created_at DESC`

	return r.queryDocuments(ctx, query, slug)
}

func (r *Repository) queryDocuments(ctx context.Context, query string, args ...interface{}) ([]*hub.Document, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*hub.Document
	for rows.Next() {
		var doc hub.Document
		if err := rows.Scan(
			&doc.ID, &doc.DocID, &doc.Title, &doc.CategorySlug, &doc.Content,
			&doc.OwnerID, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
			return nil, err
		}
		docs = append(docs, &doc)
	}

	return docs, rows.Err()
}

// Resource operations

func (r *Repository) CreateResource(ctx context.Context, resource *hub.Resource) error {
	query := `
		INSERT INTO resources (
			id, resource_id, title, category_slug, content, owner_id,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(ctx, query,
		resource.ID, resource.ResourceID, resource.Title, resource.CategorySlug,
		resource.Content, resource.OwnerID, resource.CreatedAt, resource.UpdatedAt)

	if err != nil {
		return r.handlePostgresError("create resource", err)
	}

	return nil
}

func (r *Repository) GetResourceByResourceID(ctx context.Context, resourceID string) (*hub.Resource, error) {
	query := `
        SELECT id, resource_id, title, category_slug, content, owner_id,
               created_at, updated_at
        FROM resources WHERE resource_id = $1`

	return r.scanResource(r.db.QueryRow(ctx, query, resourceID))
}

func (r *Repository) GetResourceByOwner(ctx context.Context, ownerID uuid.UUID) (*hub.Resource, error) {
	query := `
        SELECT id, resource_id, title, category_slug, content, owner_id,
               created_at, updated_at
        FROM resources WHERE owner_id = $1`

	return r.scanResource(r.db.QueryRow(ctx, query, ownerID))
}

func (r *Repository) scanResource(row pgx.Row) (*hub.Resource, error) {
	var resource hub.Resource
	err := row.Scan(
		&resource.ID, &resource.ResourceID, &resource.Title, &resource.CategorySlug,
		&resource.Content, &resource.OwnerID, &resource.CreatedAt, &resource.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, hub.ErrResourceNotFound
		}
		return nil, err
	}

	return &resource, nil
}

func (r *Repository) UpdateResource(ctx context.Context, resource *hub.Resource) error {
	query := `
		UPDATE resources SET
			title = $2, category_slug = $3, content = $4, updated_at = $5
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		resource.ID, resource.Title, resource.CategorySlug, resource.Content,
		resource.UpdatedAt)
	if err != nil {
		return r.handlePostgresError("update resource", err)
	}
	if tag.RowsAffected() == 0 {
		return hub.ErrResourceNotFound
	}

	return nil
}

func (r *Repository) DeleteResource(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM resources WHERE id = $1`, id)
	if err != nil {
		return r.handlePostgresError("delete resource", err)
	}
	if tag.RowsAffected() == 0 {
		return hub.ErrResourceNotFound
	}

	return nil
}
