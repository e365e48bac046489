package config

import (
	"fmt"

	s3storage "github.com/frontendhub/hub/pkg/hub/storage/s3"
)

// WithPort sets the server port
func WithPort(port string) Option {
	return func(c *ServerConfig) error {
		if port == "" {
			return fmt.Errorf("port cannot be empty")
		}
		c.Port = port
		return nil
	}
}

// WithEnvironment sets the environment (development, production, testing)
func WithEnvironment(env string) Option {
	return func(c *ServerConfig) error {
		if env == "" {
			return fmt.Errorf("environment cannot be empty")
		}
		c.Environment = env
		return nil
	}
}

// WithDatabase configures the database backend
func WithDatabase(dbType, url string) Option {
	return func(c *ServerConfig) error {
		if dbType != "memory" && dbType != "postgres" {
			return fmt.Errorf("database type must be 'memory' or 'postgres', got: %s", dbType)
		}
		if dbType == "postgres" && url == "" {
			return fmt.Errorf("database URL is required for postgres")
		}
		c.DatabaseType = dbType
		c.DatabaseURL = url
		return nil
	}
}

// WithJWTSecret sets the signing secret for bearer token verification
func WithJWTSecret(secret string) Option {
	return func(c *ServerConfig) error {
		c.JWTSecret = secret
		return nil
	}
}

// WithSyncWebhookSecret sets the shared secret for the identity provider's
// user-sync webhook
func WithSyncWebhookSecret(secret string) Option {
	return func(c *ServerConfig) error {
		c.SyncWebhookSecret = secret
		return nil
	}
}

// WithMemoryStorage selects the in-memory cover image store
func WithMemoryStorage() Option {
	return func(c *ServerConfig) error {
		c.StorageType = "memory"
		return nil
	}
}

// WithS3Storage selects the S3 cover image store
func WithS3Storage(cfg s3storage.Config) Option {
	return func(c *ServerConfig) error {
		if cfg.Bucket == "" {
			return fmt.Errorf("s3 bucket cannot be empty")
		}
		c.StorageType = "s3"
		c.S3 = cfg
		return nil
	}
}

// WithEventLogging toggles the logging event sink
func WithEventLogging(enabled bool) Option {
	return func(c *ServerConfig) error {
		c.EnableEventLogging = enabled
		return nil
	}
}

// WithMigrateOnStart toggles schema creation on startup (postgres only)
func WithMigrateOnStart(enabled bool) Option {
	return func(c *ServerConfig) error {
		c.MigrateOnStart = enabled
		return nil
	}
}
