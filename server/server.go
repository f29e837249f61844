package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"Inshpho/cache"
	"Inshpho/config"
	"Inshpho/core/auth"
	"Inshpho/core/identity"
	"Inshpho/core/news"
	"Inshpho/db"
	"Inshpho/logger"
	"Inshpho/repository"
	"Inshpho/storage"

	"github.com/gorilla/mux"
)

// NewRouter registers every route on a gorilla/mux router.
func NewRouter(h *APIHandler) *mux.Router {
	router := mux.NewRouter()
	router.Use(recoverMiddleware, logMiddleware, corsMiddleware)

	router.HandleFunc("/healthz", h.HealthHandler).Methods(http.MethodGet)

	// identity
	router.HandleFunc("/api/auth/register", h.RegisterHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/login", h.LoginHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/user", h.AuthMiddleware(h.GetUserHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/auth/users/{userId}", h.GetUserByIDHandler).Methods(http.MethodGet)

	router.HandleFunc("/users/{id}", h.GetUserByIDHandler).Methods(http.MethodGet)
	router.HandleFunc("/users/{id}/feedback", h.guarded(h.SubmitFeedbackHandler)).Methods(http.MethodPost)
	router.HandleFunc("/users/{id}/update-password", h.guarded(h.UpdatePasswordHandler)).Methods(http.MethodPost)

	// news; categories must be registered before {category}
	router.HandleFunc("/api/news/live", h.LiveNewsHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/news/categories", h.NewsCategoriesHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/news/{category}", h.CategoryNewsHandler).Methods(http.MethodGet)

	// blogs
	router.HandleFunc("/api/blogs", h.ListBlogsHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/blogs", h.CreateBlogHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/blogs/images", h.UploadBlogImageHandler).Methods(http.MethodPost)

	// Preflight requests are answered by corsMiddleware, but mux only runs
	// middleware on matched routes.
	router.Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	return router
}

// guarded applies AuthMiddleware only when ownership checks are enabled.
func (h *APIHandler) guarded(next http.HandlerFunc) http.HandlerFunc {
	if h.cfg.EnforceOwnership {
		return h.AuthMiddleware(next)
	}
	return next
}

// Deps holds the backing stores for a running server.
type Deps struct {
	Users  repository.UserRepository
	Blogs  repository.BlogRepository
	Images storage.ImageStore
	News   NewsFeed

	closers []func() error
}

// Close releases every connection opened by BuildDeps.
func (d *Deps) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](); err != nil {
			logger.Warn("failed to close dependency", logger.ErrorField(err))
		}
	}
}

// BuildDeps connects the stores selected by cfg.StoreDriver. The memory
// driver needs no external services; mysql also brings up Redis for blogs
// and MinIO for images when MINIO_ENDPOINT is set.
func BuildDeps(ctx context.Context, cfg *config.Config) (*Deps, error) {
	deps := &Deps{News: news.NewServiceFromConfig(cfg)}

	switch cfg.StoreDriver {
	case "memory":
		deps.Users = repository.NewMemoryUserRepository()
		deps.Blogs = repository.NewMemoryBlogRepository()
		logger.Warn("using in-memory stores; data is lost on restart")
	case "mysql":
		gdb, err := db.ConnectGormDB(cfg)
		if err != nil {
			return nil, err
		}
		deps.closers = append(deps.closers, func() error { return db.Close(gdb) })
		if err := db.AutoMigrate(gdb); err != nil {
			deps.Close()
			return nil, err
		}
		deps.Users = repository.NewGormUserRepository(gdb)
		logger.Info("connected to MySQL", logger.String("host", cfg.DBHost), logger.String("db", cfg.DBName))

		rdb, err := cache.ConnectRedis(ctx, cfg)
		if err != nil {
			deps.Close()
			return nil, err
		}
		deps.closers = append(deps.closers, rdb.Close)
		deps.Blogs = repository.NewRedisBlogRepository(rdb)
		logger.Info("connected to Redis", logger.String("addr", cfg.RedisAddr()))
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	if cfg.MinioEndpoint != "" {
		store, err := storage.NewMinioStore(cfg)
		if err != nil {
			deps.Close()
			return nil, err
		}
		if err := store.EnsureBucket(ctx); err != nil {
			deps.Close()
			return nil, err
		}
		deps.Images = store
		logger.Info("connected to MinIO",
			logger.String("endpoint", cfg.MinioEndpoint),
			logger.String("bucket", store.Bucket()))
	} else {
		logger.Warn("MINIO_ENDPOINT not set; blog image uploads are disabled")
	}

	return deps, nil
}

// NewHandlerFromDeps wires the identity service and handler set.
func NewHandlerFromDeps(cfg *config.Config, deps *Deps) (*APIHandler, error) {
	tokens, err := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid token settings: %w", err)
	}
	identitySvc := identity.NewService(deps.Users, tokens, identity.Options{
		BcryptCost:  cfg.BcryptCost,
		MaxAttempts: cfg.UsernameMaxAttempts,
	})
	return NewAPIHandler(identitySvc, deps.News, deps.Blogs, deps.Images, cfg), nil
}

// Run serves the API until ctx is cancelled, then drains in-flight requests.
func Run(ctx context.Context, cfg *config.Config) error {
	deps, err := BuildDeps(ctx, cfg)
	if err != nil {
		return err
	}
	defer deps.Close()

	h, err := NewHandlerFromDeps(cfg, deps)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      NewRouter(h),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", logger.String("addr", cfg.ServerAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
