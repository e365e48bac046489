package postgres

import "context"

// schemaStatements creates the tables the repository expects. Statements are
// idempotent so Migrate can run on every startup.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		clerk_user_id VARCHAR(255) NOT NULL UNIQUE,
		email VARCHAR(320) NOT NULL,
		first_name VARCHAR(255) NOT NULL DEFAULT '',
		last_name VARCHAR(255) NOT NULL DEFAULT '',
		image_url TEXT NOT NULL DEFAULT '',
		role VARCHAR(50) NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL DEFAULT (now() AT TIME ZONE 'utc'),
		updated_at TIMESTAMP NOT NULL DEFAULT (now() AT TIME ZONE 'utc')
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id UUID PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		slug VARCHAR(255) NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT (now() AT TIME ZONE 'utc')
	)`,
	`CREATE INDEX IF NOT EXISTS idx_categories_slug ON categories (slug)`,
	`CREATE TABLE IF NOT EXISTS blogs (
		id UUID PRIMARY KEY,
		blog_id VARCHAR(64) NOT NULL UNIQUE,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		cover_image TEXT NOT NULL DEFAULT '',
		content TEXT NOT NULL DEFAULT '',
		category_slug VARCHAR(255) NOT NULL DEFAULT '',
		owner_id UUID NOT NULL,
		likes INTEGER NOT NULL DEFAULT 0,
		liked_by JSONB NOT NULL DEFAULT '[]'::jsonb,
		comments JSONB NOT NULL DEFAULT '[]'::jsonb,
		created_at TIMESTAMP NOT NULL DEFAULT (now() AT TIME ZONE 'utc'),
		updated_at TIMESTAMP NOT NULL DEFAULT (now() AT TIME ZONE 'utc')
	)`,
	`CREATE INDEX IF NOT EXISTS idx_blogs_category ON blogs (category_slug)`,
	`CREATE INDEX IF NOT EXISTS idx_blogs_created_at ON blogs (created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS documents (
		id UUID PRIMARY KEY,
		doc_id VARCHAR(64) NOT NULL UNIQUE,
		title TEXT NOT NULL,
		category_slug VARCHAR(255) NOT NULL DEFAULT '',
		content TEXT NOT NULL DEFAULT '',
		owner_id UUID NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT (now() AT TIME ZONE 'utc'),
		updated_at TIMESTAMP NOT NULL DEFAULT (now() AT TIME ZONE 'utc')
	)`,
	`CREATE INDEX IF NOT EXISTS idx_documents_category ON documents (category_slug)`,
	`CREATE TABLE IF NOT EXISTS resources (
		id UUID PRIMARY KEY,
		resource_id VARCHAR(64) NOT NULL UNIQUE,
		title TEXT NOT NULL,
		category_slug VARCHAR(255) NOT NULL DEFAULT '',
		content TEXT NOT NULL DEFAULT '',
		owner_id UUID NOT NULL UNIQUE,
		created_at TIMESTAMP NOT NULL DEFAULT (now() AT TIME ZONE 'utc'),
		updated_at TIMESTAMP NOT NULL DEFAULT (now() AT TIME ZONE 'utc')
	)`,
}

// Migrate creates the schema if it does not exist yet.
func Migrate(ctx context.Context, db DBTX) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
