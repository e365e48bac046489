package hub

import (
	"context"
	"log/slog"
)

// NoopEventSink is a no-operation implementation of EventSink
// Useful for production when you don't need event handling or for testing
type NoopEventSink struct{}

// NewNoopEventSink creates a new no-operation event sink
func NewNoopEventSink() EventSink {
	return &NoopEventSink{}
}

// BlogCreated does nothing and returns nil
func (n *NoopEventSink) BlogCreated(ctx context.Context, blog *Blog) error {
	return nil
}

// BlogDeleted does nothing and returns nil
func (n *NoopEventSink) BlogDeleted(ctx context.Context, blogID string) error {
	return nil
}

// DocumentCreated does nothing and returns nil
func (n *NoopEventSink) DocumentCreated(ctx context.Context, doc *Document) error {
	return nil
}

// DocumentDeleted does nothing and returns nil
func (n *NoopEventSink) DocumentDeleted(ctx context.Context, docID string) error {
	return nil
}

// ResourceCreated does nothing and returns nil
func (n *NoopEventSink) ResourceCreated(ctx context.Context, resource *Resource) error {
	return nil
}

// ResourceDeleted does nothing and returns nil
func (n *NoopEventSink) ResourceDeleted(ctx context.Context, resourceID string) error {
	return nil
}

// LoggingEventSink is an event sink that logs events but takes no other action
// Useful for development and debugging
type LoggingEventSink struct {
	logger *slog.Logger
}

// NewLoggingEventSink creates a new logging event sink
func NewLoggingEventSink(logger *slog.Logger) EventSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingEventSink{logger: logger}
}

// BlogCreated logs the blog creation event
func (l *LoggingEventSink) BlogCreated(ctx context.Context, blog *Blog) error {
	l.logger.InfoContext(ctx, "blog created", "blog_id", blog.BlogID, "title", blog.Title, "category", blog.CategorySlug)
	return nil
}

// BlogDeleted logs the blog deletion event
func (l *LoggingEventSink) BlogDeleted(ctx context.Context, blogID string) error {
	l.logger.InfoContext(ctx, "blog deleted", "blog_id", blogID)
	return nil
}

// DocumentCreated logs the document creation event
func (l *LoggingEventSink) DocumentCreated(ctx context.Context, doc *Document) error {
	l.logger.InfoContext(ctx, "document created", "doc_id", doc.DocID, "title", doc.Title, "category", doc.CategorySlug)
	return nil
}

// DocumentDeleted logs the document deletion event
func (l *LoggingEventSink) DocumentDeleted(ctx context.Context, docID string) error {
	l.logger.InfoContext(ctx, "document deleted", "doc_id", docID)
	return nil
}

// ResourceCreated logs the resource creation event
func (l *LoggingEventSink) ResourceCreated(ctx context.Context, resource *Resource) error {
	l.logger.InfoContext(ctx, "resource created", "resource_id", resource.ResourceID, "title", resource.Title)
	return nil
}

// ResourceDeleted logs the resource deletion event
func (l *LoggingEventSink) ResourceDeleted(ctx context.Context, resourceID string) error {
	l.logger.InfoContext(ctx, "resource deleted", "resource_id", resourceID)
	return nil
}
