package hub_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frontendhub/hub/pkg/hub"
	"github.com/frontendhub/hub/pkg/hub/repo/memory"
	memorystorage "github.com/frontendhub/hub/pkg/hub/storage/memory"
)

func TestServiceCreation(t *testing.T) {
	tests := []struct {
		name        string
		options     []hub.Option
		expectError bool
	}{
		{
			name:        "no options should fail",
			options:     []hub.Option{},
			expectError: true,
		},
		{
			name: "with repository should succeed",
			options: []hub.Option{
				hub.WithRepository(memory.New()),
			},
			expectError: false,
		},
		{
			name: "with repository and image store should succeed",
			options: []hub.Option{
				hub.WithRepository(memory.New()),
				hub.WithImageStore(memorystorage.New()),
			},
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := hub.New(tt.options...)

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, svc)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, svc)
			}
		})
	}
}

func setupTestService(t *testing.T) hub.Service {
	t.Helper()

	svc, err := hub.New(
		hub.WithRepository(memory.New()),
		hub.WithImageStore(memorystorage.New()),
		hub.WithEventSink(hub.NewNoopEventSink()),
	)
	require.NoError(t, err)
	require.NotNil(t, svc)

	return svc
}

// syncUser registers a provider subject as a local user and returns an
// authenticated context for it.
func syncUser(t *testing.T, svc hub.Service, subject, role string) (context.Context, *hub.User) {
	t.Helper()

	ctx := hub.WithIdentity(context.Background(), hub.Identity{Subject: subject})
	req := hub.SyncUserRequest{
		ClerkUserID: subject,
		Email:       subject + "@example.com",
		FirstName:   "Test",
		LastName:    "User",
		ImageURL:    "https://img.example.com/" + subject,
	}
	if role != "" {
		req.Role = &role
	}
	user, err := svc.SyncUser(ctx, req)
	require.NoError(t, err)

	return ctx, user
}

func TestSyncUser(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	created, err := svc.SyncUser(ctx, hub.SyncUserRequest{
		ClerkUserID: "clerk_abc",
		Email:       "first@example.com",
		FirstName:   "First",
	})
	require.NoError(t, err)
	assert.NotEqual(t, "", created.ID.String())
	assert.Equal(t, "clerk_abc", created.ClerkUserID)
	assert.False(t, created.CreatedAt.IsZero())

	// Second sync with the same subject updates the profile in place.
	updated, err := svc.SyncUser(ctx, hub.SyncUserRequest{
		ClerkUserID: "clerk_abc",
		Email:       "second@example.com",
		FirstName:   "Second",
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "second@example.com", updated.Email)
	assert.Equal(t, "Second", updated.FirstName)
}

func TestSyncUserRole(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	admin := "admin"
	none := ""

	granted, err := svc.SyncUser(ctx, hub.SyncUserRequest{
		ClerkUserID: "clerk_role",
		Email:       "role@example.com",
		Role:        &admin,
	})
	require.NoError(t, err)
	assert.Equal(t, hub.RoleAdmin, granted.Role)

	// A sync without the role field leaves the stored role alone.
	kept, err := svc.SyncUser(ctx, hub.SyncUserRequest{
		ClerkUserID: "clerk_role",
		Email:       "role@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, hub.RoleAdmin, kept.Role)

	// An explicit empty role revokes it.
	revoked, err := svc.SyncUser(ctx, hub.SyncUserRequest{
		ClerkUserID: "clerk_role",
		Email:       "role@example.com",
		Role:        &none,
	})
	require.NoError(t, err)
	assert.Equal(t, "", revoked.Role)
}

func TestGetUserByIdentity(t *testing.T) {
	svc := setupTestService(t)

	t.Run("anonymous", func(t *testing.T) {
		_, err := svc.GetUserByIdentity(context.Background())
		assert.ErrorIs(t, err, hub.ErrUnauthenticated)
	})

	t.Run("unknown subject", func(t *testing.T) {
		ctx := hub.WithIdentity(context.Background(), hub.Identity{Subject: "clerk_nobody"})
		_, err := svc.GetUserByIdentity(ctx)
		assert.ErrorIs(t, err, hub.ErrUserNotFound)
	})

	t.Run("known subject", func(t *testing.T) {
		ctx, user := syncUser(t, svc, "clerk_me", "")
		got, err := svc.GetUserByIdentity(ctx)
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})
}

func TestBlogOperations(t *testing.T) {
	svc := setupTestService(t)

	t.Run("CreateBlog requires authentication", func(t *testing.T) {
		_, err := svc.CreateBlog(context.Background(), hub.CreateBlogRequest{Title: "x"})
		assert.ErrorIs(t, err, hub.ErrUnauthenticated)
	})

	t.Run("CreateBlog requires synced user", func(t *testing.T) {
		ctx := hub.WithIdentity(context.Background(), hub.Identity{Subject: "clerk_ghost"})
		_, err := svc.CreateBlog(ctx, hub.CreateBlogRequest{Title: "x"})
		assert.ErrorIs(t, err, hub.ErrUserNotFound)
	})

	t.Run("CreateBlog", func(t *testing.T) {
		ctx, user := syncUser(t, svc, "clerk_writer", "")

		blog, err := svc.CreateBlog(ctx, hub.CreateBlogRequest{
			Title:       "Introduction to Hooks",
			Description: "A primer",
			Content:     "...",
			Category:    "react",
		})
		require.NoError(t, err)

		assert.NotEqual(t, "", blog.BlogID)
		assert.Equal(t, user.ID, blog.OwnerID)
		assert.Equal(t, 0, blog.Likes)
		assert.Empty(t, blog.LikedBy)
		assert.Empty(t, blog.Comments)
		assert.False(t, blog.CreatedAt.IsZero())

		// Category is auto-created with an uppercased display name.
		category, err := svc.GetCategoryBySlug(ctx, "react")
		require.NoError(t, err)
		assert.Equal(t, "REACT", category.Name)
	})

	t.Run("GetBlog not found", func(t *testing.T) {
		_, err := svc.GetBlog(context.Background(), "no-such-blog")
		assert.ErrorIs(t, err, hub.ErrBlogNotFound)
	})

	t.Run("UpdateBlog partial", func(t *testing.T) {
		ctx, _ := syncUser(t, svc, "clerk_editor", "")
		blog, err := svc.CreateBlog(ctx, hub.CreateBlogRequest{Title: "v1", Description: "keep me"})
		require.NoError(t, err)

		title := "v2"
		updated, err := svc.UpdateBlog(ctx, hub.UpdateBlogRequest{BlogID: blog.BlogID, Title: &title})
		require.NoError(t, err)
		assert.Equal(t, "v2", updated.Title)
		assert.Equal(t, "keep me", updated.Description)
	})

	t.Run("DeleteBlog removes embedded comments", func(t *testing.T) {
		ctx, _ := syncUser(t, svc, "clerk_deleter", "")
		blog, err := svc.CreateBlog(ctx, hub.CreateBlogRequest{Title: "doomed"})
		require.NoError(t, err)

		_, err = svc.AddComment(ctx, hub.AddCommentRequest{BlogID: blog.BlogID, Comment: "bye"})
		require.NoError(t, err)

		require.NoError(t, svc.DeleteBlog(ctx, blog.BlogID))

		_, err = svc.GetBlog(ctx, blog.BlogID)
		assert.ErrorIs(t, err, hub.ErrBlogNotFound)
	})
}

func TestBlogAuthorization(t *testing.T) {
	svc := setupTestService(t)

	ownerCtx, _ := syncUser(t, svc, "clerk_owner", "")
	otherCtx, _ := syncUser(t, svc, "clerk_other", "")
	adminCtx, _ := syncUser(t, svc, "clerk_admin", hub.RoleAdmin)

	blog, err := svc.CreateBlog(ownerCtx, hub.CreateBlogRequest{Title: "guarded"})
	require.NoError(t, err)

	title := "hijacked"

	t.Run("non-owner cannot update", func(t *testing.T) {
		_, err := svc.UpdateBlog(otherCtx, hub.UpdateBlogRequest{BlogID: blog.BlogID, Title: &title})
		assert.ErrorIs(t, err, hub.ErrUnauthorized)
	})

	t.Run("non-owner cannot delete", func(t *testing.T) {
		err := svc.DeleteBlog(otherCtx, blog.BlogID)
		assert.ErrorIs(t, err, hub.ErrUnauthorized)
	})

	t.Run("admin can update", func(t *testing.T) {
		updated, err := svc.UpdateBlog(adminCtx, hub.UpdateBlogRequest{BlogID: blog.BlogID, Title: &title})
		require.NoError(t, err)
		assert.Equal(t, "hijacked", updated.Title)
	})

	t.Run("admin can delete", func(t *testing.T) {
		assert.NoError(t, svc.DeleteBlog(adminCtx, blog.BlogID))
	})
}

func TestToggleLike(t *testing.T) {
	svc := setupTestService(t)

	ownerCtx, _ := syncUser(t, svc, "clerk_author", "")
	fanCtx, fan := syncUser(t, svc, "clerk_fan", "")

	blog, err := svc.CreateBlog(ownerCtx, hub.CreateBlogRequest{Title: "likeable"})
	require.NoError(t, err)

	t.Run("like", func(t *testing.T) {
		likes, err := svc.ToggleLike(fanCtx, blog.BlogID, true)
		require.NoError(t, err)
		assert.Equal(t, 1, likes)

		got, err := svc.GetBlog(fanCtx, blog.BlogID)
		require.NoError(t, err)
		assert.True(t, got.LikedByUser(fan.ID))
	})

	t.Run("double like is a no-op", func(t *testing.T) {
		likes, err := svc.ToggleLike(fanCtx, blog.BlogID, true)
		require.NoError(t, err)
		assert.Equal(t, 1, likes)
	})

	t.Run("unlike", func(t *testing.T) {
		likes, err := svc.ToggleLike(fanCtx, blog.BlogID, false)
		require.NoError(t, err)
		assert.Equal(t, 0, likes)

		got, err := svc.GetBlog(fanCtx, blog.BlogID)
		require.NoError(t, err)
		assert.False(t, got.LikedByUser(fan.ID))
	})

	t.Run("unlike when not liked is a no-op", func(t *testing.T) {
		likes, err := svc.ToggleLike(fanCtx, blog.BlogID, false)
		require.NoError(t, err)
		assert.Equal(t, 0, likes)
	})

	t.Run("count tracks membership", func(t *testing.T) {
		_, err := svc.ToggleLike(ownerCtx, blog.BlogID, true)
		require.NoError(t, err)
		likes, err := svc.ToggleLike(fanCtx, blog.BlogID, true)
		require.NoError(t, err)
		assert.Equal(t, 2, likes)

		got, err := svc.GetBlog(fanCtx, blog.BlogID)
		require.NoError(t, err)
		assert.Equal(t, len(got.LikedBy), got.Likes)
	})

	t.Run("requires authentication", func(t *testing.T) {
		_, err := svc.ToggleLike(context.Background(), blog.BlogID, true)
		assert.ErrorIs(t, err, hub.ErrUnauthenticated)
	})
}

func TestComments(t *testing.T) {
	svc := setupTestService(t)

	ownerCtx, owner := syncUser(t, svc, "clerk_blog_owner", "")
	authorCtx, author := syncUser(t, svc, "clerk_commenter", "")
	otherCtx, _ := syncUser(t, svc, "clerk_bystander", "")

	blog, err := svc.CreateBlog(ownerCtx, hub.CreateBlogRequest{Title: "discuss"})
	require.NoError(t, err)

	t.Run("AddComment snapshots the author", func(t *testing.T) {
		comment, err := svc.AddComment(authorCtx, hub.AddCommentRequest{
			BlogID:  blog.BlogID,
			Comment: "great post",
		})
		require.NoError(t, err)

		assert.NotEqual(t, "", comment.ID)
		assert.Equal(t, author.ID, comment.UserID)
		assert.Equal(t, author.FirstName, comment.FirstName)
		assert.Equal(t, author.ImageURL, comment.UserImage)
		assert.False(t, comment.Timestamp.IsZero())

		got, err := svc.GetBlog(authorCtx, blog.BlogID)
		require.NoError(t, err)
		require.Len(t, got.Comments, 1)
	})

	t.Run("snapshot survives profile change", func(t *testing.T) {
		_, err := svc.SyncUser(authorCtx, hub.SyncUserRequest{
			ClerkUserID: "clerk_commenter",
			Email:       "new@example.com",
			FirstName:   "Renamed",
		})
		require.NoError(t, err)

		got, err := svc.GetBlog(authorCtx, blog.BlogID)
		require.NoError(t, err)
		require.Len(t, got.Comments, 1)
		assert.Equal(t, "Test", got.Comments[0].FirstName)
	})

	t.Run("explicit timestamp is kept", func(t *testing.T) {
		ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		comment, err := svc.AddComment(authorCtx, hub.AddCommentRequest{
			BlogID:    blog.BlogID,
			Comment:   "backdated",
			Timestamp: ts,
		})
		require.NoError(t, err)
		assert.Equal(t, ts, comment.Timestamp)
	})

	t.Run("bystander cannot delete", func(t *testing.T) {
		got, err := svc.GetBlog(otherCtx, blog.BlogID)
		require.NoError(t, err)
		require.NotEmpty(t, got.Comments)

		err = svc.DeleteComment(otherCtx, blog.BlogID, got.Comments[0].ID)
		assert.ErrorIs(t, err, hub.ErrUnauthorized)
	})

	t.Run("comment author can delete", func(t *testing.T) {
		got, err := svc.GetBlog(authorCtx, blog.BlogID)
		require.NoError(t, err)
		before := len(got.Comments)

		err = svc.DeleteComment(authorCtx, blog.BlogID, got.Comments[0].ID)
		require.NoError(t, err)

		got, err = svc.GetBlog(authorCtx, blog.BlogID)
		require.NoError(t, err)
		assert.Len(t, got.Comments, before-1)
	})

	t.Run("blog owner can delete any comment", func(t *testing.T) {
		comment, err := svc.AddComment(authorCtx, hub.AddCommentRequest{
			BlogID:  blog.BlogID,
			Comment: "moderate me",
		})
		require.NoError(t, err)
		require.NotEqual(t, owner.ID, comment.UserID)

		assert.NoError(t, svc.DeleteComment(ownerCtx, blog.BlogID, comment.ID))
	})

	t.Run("missing comment", func(t *testing.T) {
		err := svc.DeleteComment(ownerCtx, blog.BlogID, "no-such-comment")
		assert.ErrorIs(t, err, hub.ErrCommentNotFound)
	})
}

func TestBlogListing(t *testing.T) {
	svc := setupTestService(t)
	ctx, _ := syncUser(t, svc, "clerk_lister", "")

	for _, spec := range []struct{ title, category string }{
		{"a", "react"},
		{"b", "react"},
		{"c", "go"},
	} {
		_, err := svc.CreateBlog(ctx, hub.CreateBlogRequest{Title: spec.title, Category: spec.category})
		require.NoError(t, err)
	}

	t.Run("all", func(t *testing.T) {
		blogs, err := svc.GetAllBlogs(ctx)
		require.NoError(t, err)
		assert.Len(t, blogs, 3)
	})

	t.Run("by category", func(t *testing.T) {
		blogs, err := svc.GetBlogsByCategory(ctx, "react")
		require.NoError(t, err)
		assert.Len(t, blogs, 2)
		for _, b := range blogs {
			assert.Equal(t, "react", b.CategorySlug)
		}
	})

	t.Run("recent is capped", func(t *testing.T) {
		blogs, err := svc.GetRecentBlogs(ctx, 2)
		require.NoError(t, err)
		assert.Len(t, blogs, 2)
	})

	t.Run("categories are deduplicated", func(t *testing.T) {
		categories, err := svc.ListCategories(ctx)
		require.NoError(t, err)
		assert.Len(t, categories, 2)
	})
}

func TestDocumentOperations(t *testing.T) {
	svc := setupTestService(t)

	ownerCtx, owner := syncUser(t, svc, "clerk_doc_owner", "")
	otherCtx, _ := syncUser(t, svc, "clerk_doc_other", "")

	doc, err := svc.CreateDocument(ownerCtx, hub.CreateDocumentRequest{
		Title:    "Getting Started",
		Category: "guides",
		Content:  "intro",
	})
	require.NoError(t, err)
	assert.NotEqual(t, "", doc.DocID)
	assert.Equal(t, owner.ID, doc.OwnerID)

	t.Run("GetDocument joins the author", func(t *testing.T) {
		got, err := svc.GetDocument(otherCtx, doc.DocID)
		require.NoError(t, err)
		require.NotNil(t, got.Author)
		assert.Equal(t, owner.ID, got.Author.ID)
	})

	t.Run("non-owner cannot update", func(t *testing.T) {
		_, err := svc.UpdateDocument(otherCtx, hub.UpdateDocumentRequest{
			DocID: doc.DocID, Title: "x", Content: "y",
		})
		assert.ErrorIs(t, err, hub.ErrUnauthorized)
	})

	t.Run("owner can update", func(t *testing.T) {
		updated, err := svc.UpdateDocument(ownerCtx, hub.UpdateDocumentRequest{
			DocID: doc.DocID, Title: "Getting Further", Content: "more",
		})
		require.NoError(t, err)
		assert.Equal(t, "Getting Further", updated.Title)
	})

	t.Run("list by category", func(t *testing.T) {
		docs, err := svc.GetDocumentsByCategory(ownerCtx, "guides")
		require.NoError(t, err)
		assert.Len(t, docs, 1)
	})

	t.Run("non-owner cannot delete", func(t *testing.T) {
		assert.ErrorIs(t, svc.DeleteDocument(otherCtx, doc.DocID), hub.ErrUnauthorized)
	})

	t.Run("owner can delete", func(t *testing.T) {
		require.NoError(t, svc.DeleteDocument(ownerCtx, doc.DocID))
		_, err := svc.GetDocument(ownerCtx, doc.DocID)
		assert.ErrorIs(t, err, hub.ErrDocumentNotFound)
	})
}

// userLookupFailingRepo forces GetUserByID to fail so the author join's
// error handling can be exercised.
type userLookupFailingRepo struct {
	hub.Repository
	err error
}

func (r *userLookupFailingRepo) GetUserByID(ctx context.Context, id uuid.UUID) (*hub.User, error) {
	return nil, r.err
}

func TestGetDocumentAuthorJoin(t *testing.T) {
	newService := func(t *testing.T, lookupErr error) hub.Service {
		t.Helper()
		svc, err := hub.New(hub.WithRepository(&userLookupFailingRepo{
			Repository: memory.New(),
			err:        lookupErr,
		}))
		require.NoError(t, err)
		return svc
	}

	createDoc := func(t *testing.T, svc hub.Service) *hub.Document {
		t.Helper()
		ctx, _ := syncUser(t, svc, "clerk_join_owner", "")
		doc, err := svc.CreateDocument(ctx, hub.CreateDocumentRequest{
			Title: "Joined", Category: "guides", Content: "body",
		})
		require.NoError(t, err)
		return doc
	}

	t.Run("missing author leaves the join empty", func(t *testing.T) {
		svc := newService(t, hub.ErrUserNotFound)
		doc := createDoc(t, svc)

		got, err := svc.GetDocument(context.Background(), doc.DocID)
		require.NoError(t, err)
		assert.Nil(t, got.Author)
	})

	t.Run("lookup failure propagates", func(t *testing.T) {
		lookupErr := errors.New("connection reset")
		svc := newService(t, lookupErr)
		doc := createDoc(t, svc)

		_, err := svc.GetDocument(context.Background(), doc.DocID)
		assert.ErrorIs(t, err, lookupErr)
	})
}

func TestResourceOperations(t *testing.T) {
	svc := setupTestService(t)

	ownerCtx, owner := syncUser(t, svc, "clerk_res_owner", "")
	otherCtx, _ := syncUser(t, svc, "clerk_res_other", "")

	resource, err := svc.CreateResource(ownerCtx, hub.CreateResourceRequest{
		Title:    "Frontend Roadmap",
		Category: "roadmaps",
		Content:  "step 1",
	})
	require.NoError(t, err)
	assert.Equal(t, owner.ID, resource.OwnerID)

	t.Run("second resource for same user is refused", func(t *testing.T) {
		_, err := svc.CreateResource(ownerCtx, hub.CreateResourceRequest{Title: "Another"})
		assert.ErrorIs(t, err, hub.ErrResourceExists)
	})

	t.Run("GetUserResource", func(t *testing.T) {
		got, err := svc.GetUserResource(ownerCtx)
		require.NoError(t, err)
		assert.Equal(t, resource.ResourceID, got.ResourceID)

		_, err = svc.GetUserResource(otherCtx)
		assert.ErrorIs(t, err, hub.ErrResourceNotFound)
	})

	t.Run("non-owner cannot mutate", func(t *testing.T) {
		_, err := svc.UpdateResource(otherCtx, hub.UpdateResourceRequest{
			ResourceID: resource.ResourceID, Title: "x", Content: "y",
		})
		assert.ErrorIs(t, err, hub.ErrUnauthorized)

		assert.ErrorIs(t, svc.DeleteResource(otherCtx, resource.ResourceID), hub.ErrUnauthorized)
	})

	t.Run("owner can recreate after delete", func(t *testing.T) {
		require.NoError(t, svc.DeleteResource(ownerCtx, resource.ResourceID))

		_, err := svc.CreateResource(ownerCtx, hub.CreateResourceRequest{Title: "Fresh Start"})
		assert.NoError(t, err)
	})
}

func TestCoverURLs(t *testing.T) {
	svc := setupTestService(t)
	ctx, _ := syncUser(t, svc, "clerk_uploader", "")

	t.Run("upload requires authentication", func(t *testing.T) {
		_, err := svc.GetCoverUploadURL(context.Background(), "cover.png")
		assert.ErrorIs(t, err, hub.ErrUnauthenticated)
	})

	t.Run("upload then download", func(t *testing.T) {
		uploadURL, err := svc.GetCoverUploadURL(ctx, "cover.png")
		require.NoError(t, err)
		assert.NotEqual(t, "", uploadURL)

		downloadURL, err := svc.GetCoverDownloadURL(ctx, "cover.png")
		require.NoError(t, err)
		assert.NotEqual(t, "", downloadURL)
	})
}
