package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frontendhub/hub/pkg/hub"
)

func newBlog(owner uuid.UUID, title, category string, createdAt time.Time) *hub.Blog {
	return &hub.Blog{
		ID:           uuid.New(),
		BlogID:       uuid.NewString(),
		Title:        title,
		CategorySlug: category,
		OwnerID:      owner,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
		LikedBy:      []uuid.UUID{},
		Comments:     []hub.Comment{},
	}
}

func TestUserStorage(t *testing.T) {
	repo := New()
	ctx := context.Background()

	user := &hub.User{
		ID:          uuid.New(),
		ClerkUserID: "clerk_1",
		Email:       "a@example.com",
	}
	require.NoError(t, repo.CreateUser(ctx, user))

	t.Run("lookup by row id", func(t *testing.T) {
		got, err := repo.GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, user.Email, got.Email)
	})

	t.Run("lookup by clerk id", func(t *testing.T) {
		got, err := repo.GetUserByClerkID(ctx, "clerk_1")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("missing user", func(t *testing.T) {
		_, err := repo.GetUserByID(ctx, uuid.New())
		assert.ErrorIs(t, err, hub.ErrUserNotFound)

		_, err = repo.GetUserByClerkID(ctx, "clerk_missing")
		assert.ErrorIs(t, err, hub.ErrUserNotFound)
	})

	t.Run("update", func(t *testing.T) {
		user.Email = "b@example.com"
		require.NoError(t, repo.UpdateUser(ctx, user))

		got, err := repo.GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "b@example.com", got.Email)
	})

	t.Run("update missing user", func(t *testing.T) {
		missing := &hub.User{ID: uuid.New(), ClerkUserID: "clerk_x"}
		assert.ErrorIs(t, repo.UpdateUser(ctx, missing), hub.ErrUserNotFound)
	})

	t.Run("returned rows are copies", func(t *testing.T) {
		got, err := repo.GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		got.Email = "mutated@example.com"

		again, err := repo.GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "b@example.com", again.Email)
	})
}

func TestCategoryStorage(t *testing.T) {
	repo := New()
	ctx := context.Background()

	require.NoError(t, repo.CreateCategory(ctx, &hub.Category{
		ID: uuid.New(), Name: "REACT", Slug: "react", CreatedAt: time.Now(),
	}))
	require.NoError(t, repo.CreateCategory(ctx, &hub.Category{
		ID: uuid.New(), Name: "GO", Slug: "go", CreatedAt: time.Now(),
	}))

	t.Run("lookup by slug", func(t *testing.T) {
		got, err := repo.GetCategoryBySlug(ctx, "react")
		require.NoError(t, err)
		assert.Equal(t, "REACT", got.Name)
	})

	t.Run("missing slug", func(t *testing.T) {
		_, err := repo.GetCategoryBySlug(ctx, "vue")
		assert.ErrorIs(t, err, hub.ErrCategoryNotFound)
	})

	t.Run("list sorted by name", func(t *testing.T) {
		categories, err := repo.ListCategories(ctx)
		require.NoError(t, err)
		require.Len(t, categories, 2)
		assert.Equal(t, "GO", categories[0].Name)
		assert.Equal(t, "REACT", categories[1].Name)
	})
}

func TestBlogStorage(t *testing.T) {
	repo := New()
	ctx := context.Background()
	owner := uuid.New()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	oldest := newBlog(owner, "oldest", "react", base)
	middle := newBlog(owner, "middle", "go", base.Add(time.Hour))
	newest := newBlog(owner, "newest", "react", base.Add(2*time.Hour))

	for _, b := range []*hub.Blog{oldest, middle, newest} {
		require.NoError(t, repo.CreateBlog(ctx, b))
	}

	t.Run("lookup by public id", func(t *testing.T) {
		got, err := repo.GetBlogByBlogID(ctx, middle.BlogID)
		require.NoError(t, err)
		assert.Equal(t, "middle", got.Title)
	})

	t.Run("missing blog", func(t *testing.T) {
		_, err := repo.GetBlogByBlogID(ctx, "nope")
		assert.ErrorIs(t, err, hub.ErrBlogNotFound)
	})

	t.Run("list newest first", func(t *testing.T) {
		blogs, err := repo.ListBlogs(ctx)
		require.NoError(t, err)
		require.Len(t, blogs, 3)
		assert.Equal(t, "newest", blogs[0].Title)
		assert.Equal(t, "oldest", blogs[2].Title)
	})

	t.Run("list by category", func(t *testing.T) {
		blogs, err := repo.ListBlogsByCategory(ctx, "react")
		require.NoError(t, err)
		assert.Len(t, blogs, 2)
	})

	t.Run("recent honors limit", func(t *testing.T) {
		blogs, err := repo.ListRecentBlogs(ctx, 2)
		require.NoError(t, err)
		require.Len(t, blogs, 2)
		assert.Equal(t, "newest", blogs[0].Title)

		blogs, err = repo.ListRecentBlogs(ctx, 10)
		require.NoError(t, err)
		assert.Len(t, blogs, 3)
	})

	t.Run("embedded slices are copied", func(t *testing.T) {
		got, err := repo.GetBlogByBlogID(ctx, oldest.BlogID)
		require.NoError(t, err)

		got.Comments = append(got.Comments, hub.Comment{ID: "rogue"})
		got.LikedBy = append(got.LikedBy, uuid.New())

		again, err := repo.GetBlogByBlogID(ctx, oldest.BlogID)
		require.NoError(t, err)
		assert.Empty(t, again.Comments)
		assert.Empty(t, again.LikedBy)
	})

	t.Run("update", func(t *testing.T) {
		middle.Title = "renamed"
		middle.Comments = []hub.Comment{{ID: "c1", Comment: "hi"}}
		require.NoError(t, repo.UpdateBlog(ctx, middle))

		got, err := repo.GetBlogByBlogID(ctx, middle.BlogID)
		require.NoError(t, err)
		assert.Equal(t, "renamed", got.Title)
		require.Len(t, got.Comments, 1)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.DeleteBlog(ctx, oldest.ID))

		_, err := repo.GetBlogByBlogID(ctx, oldest.BlogID)
		assert.ErrorIs(t, err, hub.ErrBlogNotFound)

		assert.ErrorIs(t, repo.DeleteBlog(ctx, oldest.ID), hub.ErrBlogNotFound)
	})
}

func TestDocumentStorage(t *testing.T) {
	repo := New()
	ctx := context.Background()
	owner := uuid.New()

	doc := &hub.Document{
		ID:           uuid.New(),
		DocID:        uuid.NewString(),
		Title:        "doc",
		CategorySlug: "guides",
		OwnerID:      owner,
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, repo.CreateDocument(ctx, doc))

	got, err := repo.GetDocumentByDocID(ctx, doc.DocID)
	require.NoError(t, err)
	assert.Equal(t, "doc", got.Title)

	docs, err := repo.ListDocumentsByCategory(ctx, "guides")
	require.NoError(t, err)
	assert.Len(t, docs, 1)

	doc.Title = "doc v2"
	require.NoError(t, repo.UpdateDocument(ctx, doc))

	require.NoError(t, repo.DeleteDocument(ctx, doc.ID))
	_, err = repo.GetDocumentByDocID(ctx, doc.DocID)
	assert.ErrorIs(t, err, hub.ErrDocumentNotFound)
}

func TestResourceStorage(t *testing.T) {
	repo := New()
	ctx := context.Background()
	owner := uuid.New()

	resource := &hub.Resource{
		ID:         uuid.New(),
		ResourceID: uuid.NewString(),
		Title:      "roadmap",
		OwnerID:    owner,
		CreatedAt:  time.Now().UTC(),
	}
	require.NoError(t, repo.CreateResource(ctx, resource))

	t.Run("lookup by owner", func(t *testing.T) {
		got, err := repo.GetResourceByOwner(ctx, owner)
		require.NoError(t, err)
		assert.Equal(t, resource.ResourceID, got.ResourceID)

		_, err = repo.GetResourceByOwner(ctx, uuid.New())
		assert.ErrorIs(t, err, hub.ErrResourceNotFound)
	})

	t.Run("delete frees the owner slot", func(t *testing.T) {
		require.NoError(t, repo.DeleteResource(ctx, resource.ID))

		_, err := repo.GetResourceByOwner(ctx, owner)
		assert.ErrorIs(t, err, hub.ErrResourceNotFound)
	})
}
