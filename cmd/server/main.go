package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth"
	"github.com/go-chi/render"
	"github.com/ilyakaznacheev/cleanenv"

	"github.com/frontendhub/hub/pkg/hub"
	"github.com/frontendhub/hub/pkg/hub/api"
	"github.com/frontendhub/hub/pkg/hub/config"
	s3storage "github.com/frontendhub/hub/pkg/hub/storage/s3"
)

// EnvConfig is the environment surface for the server binary
type EnvConfig struct {
	Port        string `env:"PORT" env-default:"8080"`
	Environment string `env:"ENVIRONMENT" env-default:"development"`

	DatabaseURL  string `env:"DATABASE_URL" env-default:""`
	DatabaseType string `env:"DATABASE_TYPE" env-default:"memory"`

	JWTSecret         string `env:"JWT_SECRET" env-default:"dev-secret"`
	SyncWebhookSecret string `env:"SYNC_WEBHOOK_SECRET" env-default:""`

	StorageType       string `env:"STORAGE_TYPE" env-default:"memory"`
	S3Region          string `env:"S3_REGION" env-default:""`
	S3Bucket          string `env:"S3_BUCKET" env-default:""`
	S3AccessKeyID     string `env:"S3_ACCESS_KEY_ID" env-default:""`
	S3SecretAccessKey string `env:"S3_SECRET_ACCESS_KEY" env-default:""`
	S3Endpoint        string `env:"S3_ENDPOINT" env-default:""`
	S3UsePathStyle    bool   `env:"S3_USE_PATH_STYLE" env-default:"false"`
}

func main() {
	var env EnvConfig
	if err := cleanenv.ReadEnv(&env); err != nil {
		log.Fatalf("Failed to read environment: %v", err)
	}

	opts := []config.Option{
		config.WithPort(env.Port),
		config.WithEnvironment(env.Environment),
		config.WithDatabase(env.DatabaseType, env.DatabaseURL),
		config.WithJWTSecret(env.JWTSecret),
		config.WithSyncWebhookSecret(env.SyncWebhookSecret),
	}

	if env.StorageType == "s3" {
		opts = append(opts, config.WithS3Storage(s3storage.Config{
			Region:          env.S3Region,
			Bucket:          env.S3Bucket,
			AccessKeyID:     env.S3AccessKeyID,
			SecretAccessKey: env.S3SecretAccessKey,
			Endpoint:        env.S3Endpoint,
			UsePathStyle:    env.S3UsePathStyle,
		}))
	}

	serverConfig, err := config.Load(opts...)
	if err != nil {
		log.Fatalf("Failed to load server configuration: %v", err)
	}

	svc, err := serverConfig.BuildService()
	if err != nil {
		log.Fatalf("Failed to build service: %v", err)
	}

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%s", serverConfig.Port),
		Handler: routes(svc, serverConfig),
	}

	go func() {
		log.Printf("Frontend Hub server starting on port %s (env: %s)", serverConfig.Port, serverConfig.Environment)
		log.Printf("Database: %s, cover storage: %s", serverConfig.DatabaseType, serverConfig.StorageType)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}

// routes sets up the HTTP routes
func routes(svc hub.Service, serverConfig *config.ServerConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS for development
	if serverConfig.Environment == "development" {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Access-Control-Allow-Origin", "*")
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

				if r.Method == "OPTIONS" {
					w.WriteHeader(http.StatusOK)
					return
				}

				next.ServeHTTP(w, r)
			})
		})
	}

	tokenAuth := jwtauth.New("HS256", []byte(serverConfig.JWTSecret), nil)
	r.Use(api.Verifier(tokenAuth))
	r.Use(api.IdentityLoader)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/users", api.NewUserHandler(svc, serverConfig.SyncWebhookSecret).Routes())
		r.Mount("/blogs", api.NewBlogHandler(svc).Routes())
		r.Mount("/docs", api.NewDocumentHandler(svc).Routes())
		r.Mount("/resources", api.NewResourceHandler(svc).Routes())
		r.Mount("/categories", api.NewCategoryHandler(svc).Routes())
		r.Mount("/covers", api.NewCoverHandler(svc).Routes())
	})

	return r
}
