package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/frontendhub/hub/pkg/hub"
	repomemory "github.com/frontendhub/hub/pkg/hub/repo/memory"
	repopg "github.com/frontendhub/hub/pkg/hub/repo/postgres"
	memorystorage "github.com/frontendhub/hub/pkg/hub/storage/memory"
	s3storage "github.com/frontendhub/hub/pkg/hub/storage/s3"
)

// Option applies configuration to a ServerConfig instance.
type Option func(*ServerConfig) error

// Load constructs a ServerConfig by applying the supplied options on top of
// library defaults.
func Load(opts ...Option) (*ServerConfig, error) {
	cfg := defaults()

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func defaults() ServerConfig {
	return ServerConfig{
		Port:               "8080",
		Environment:        "development",
		DatabaseType:       "memory",
		StorageType:        "memory",
		EnableEventLogging: true,
		MigrateOnStart:     true,
	}
}

// ServerConfig represents server configuration for the hub service
type ServerConfig struct {
	Port        string
	Environment string // development, production, testing

	// Database configuration
	DatabaseURL  string
	DatabaseType string // "memory", "postgres"

	// Cover image storage configuration
	StorageType string // "memory", "s3"
	S3          s3storage.Config

	// Bearer token verification
	JWTSecret string

	// Shared secret authenticating the identity provider's user-sync
	// webhook; empty disables signed sync
	SyncWebhookSecret string

	// Server options
	EnableEventLogging bool
	MigrateOnStart     bool
}

// Validate validates the server configuration
func (c *ServerConfig) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}

	if c.DatabaseType != "memory" && c.DatabaseType != "postgres" {
		return errors.New("database_type must be 'memory' or 'postgres'")
	}

	if c.DatabaseType == "postgres" && c.DatabaseURL == "" {
		return errors.New("database_url is required when using postgres")
	}

	if c.StorageType != "memory" && c.StorageType != "s3" {
		return errors.New("storage_type must be 'memory' or 's3'")
	}

	if c.StorageType == "s3" && c.S3.Bucket == "" {
		return errors.New("s3 bucket is required when using s3 storage")
	}

	return nil
}

// BuildService creates a Service instance from the server configuration
func (c *ServerConfig) BuildService() (hub.Service, error) {
	var options []hub.Option

	repo, err := c.buildRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to build repository: %w", err)
	}
	options = append(options, hub.WithRepository(repo))

	store, err := c.buildImageStore()
	if err != nil {
		return nil, fmt.Errorf("failed to build image store: %w", err)
	}
	options = append(options, hub.WithImageStore(store))

	if c.EnableEventLogging {
		options = append(options, hub.WithEventSink(hub.NewLoggingEventSink(slog.Default())))
	} else {
		options = append(options, hub.WithEventSink(hub.NewNoopEventSink()))
	}

	return hub.New(options...)
}

// buildRepository creates a Repository based on the configuration
func (c *ServerConfig) buildRepository() (hub.Repository, error) {
	switch c.DatabaseType {
	case "memory":
		return repomemory.New(), nil
	case "postgres":
		pool, err := pgxpool.New(context.Background(), c.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to create pgx pool: %w", err)
		}
		if c.MigrateOnStart {
			if err := repopg.Migrate(context.Background(), pool); err != nil {
				return nil, fmt.Errorf("failed to migrate schema: %w", err)
			}
		}
		return repopg.NewWithPool(pool), nil
	default:
		return nil, fmt.Errorf("unsupported database type: %s", c.DatabaseType)
	}
}

// buildImageStore creates an ImageStore based on the configuration
func (c *ServerConfig) buildImageStore() (hub.ImageStore, error) {
	switch c.StorageType {
	case "memory":
		return memorystorage.New(), nil
	case "s3":
		return s3storage.New(c.S3)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", c.StorageType)
	}
}
