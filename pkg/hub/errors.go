package hub

import (
	"errors"
	"fmt"
)

// Error types
var (
	// ErrUnauthenticated indicates no identity was attached to the call
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrUserNotFound indicates the identity has no provisioned local user row
	ErrUserNotFound = errors.New("user not found")

	// ErrBlogNotFound indicates a blog id did not resolve to a row
	ErrBlogNotFound = errors.New("blog not found")

	// ErrDocumentNotFound indicates a document id did not resolve to a row
	ErrDocumentNotFound = errors.New("document not found")

	// ErrResourceNotFound indicates a resource id did not resolve to a row
	ErrResourceNotFound = errors.New("resource not found")

	// ErrCommentNotFound indicates no comment on the blog matched the id
	ErrCommentNotFound = errors.New("comment not found")

	// ErrCategoryNotFound indicates no category exists for a slug
	ErrCategoryNotFound = errors.New("category not found")

	// ErrUnauthorized indicates the caller is not the owner/author the
	// mutation requires
	ErrUnauthorized = errors.New("not authorized")

	// ErrResourceExists indicates the caller already owns a roadmap resource
	ErrResourceExists = errors.New("resource already exists for user")

	// ErrCreateFailed indicates the post-insert read-back returned nothing
	ErrCreateFailed = errors.New("create failed: row missing after insert")
)

// Stable error kinds for programmatic handling by callers. Kind collapses the
// sentinel taxonomy into code strings that survive wrapping.
const (
	KindUnauthenticated = "unauthenticated"
	KindUnauthorized    = "unauthorized"
	KindNotFound        = "not_found"
	KindConflict        = "conflict"
	KindInternal        = "internal"
)

// Kind returns the stable kind code for err. Unknown errors map to
// KindInternal.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return KindUnauthenticated
	case errors.Is(err, ErrUnauthorized):
		return KindUnauthorized
	case errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrBlogNotFound),
		errors.Is(err, ErrDocumentNotFound),
		errors.Is(err, ErrResourceNotFound),
		errors.Is(err, ErrCommentNotFound),
		errors.Is(err, ErrCategoryNotFound):
		return KindNotFound
	case errors.Is(err, ErrResourceExists):
		return KindConflict
	default:
		return KindInternal
	}
}

// BlogError represents an error from a blog operation
type BlogError struct {
	BlogID string
	Op     string
	Err    error
}

func (e *BlogError) Error() string {
	return fmt.Sprintf("blog operation %s failed for blog %s: %v", e.Op, e.BlogID, e.Err)
}

func (e *BlogError) Unwrap() error {
	return e.Err
}

// DocumentError represents an error from a document operation
type DocumentError struct {
	DocID string
	Op    string
	Err   error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("document operation %s failed for document %s: %v", e.Op, e.DocID, e.Err)
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}

// ResourceError represents an error from a resource operation
type ResourceError struct {
	ResourceID string
	Op         string
	Err        error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("resource operation %s failed for resource %s: %v", e.Op, e.ResourceID, e.Err)
}

func (e *ResourceError) Unwrap() error {
	return e.Err
}
