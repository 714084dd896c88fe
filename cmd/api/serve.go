package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	httptransport "github.com/bookshelf-labs/book-service/internal/api/http"
	"github.com/bookshelf-labs/book-service/internal/api/http/handlers"
	"github.com/bookshelf-labs/book-service/internal/auth"
	"github.com/bookshelf-labs/book-service/internal/config"
	"github.com/bookshelf-labs/book-service/internal/observability"
	"github.com/bookshelf-labs/book-service/internal/persistence"
	"github.com/bookshelf-labs/book-service/internal/repository"
	"github.com/bookshelf-labs/book-service/internal/service"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	books, store, closeStore, err := openBookStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open book store", zap.String("driver", cfg.Store.Driver), zap.Error(err))
		return err
	}
	defer closeStore()

	deps := map[string]handlers.Pinger{"store": store}
	if redis := persistence.NewRedis(ctx, cfg.Redis, logger); redis != nil {
		defer redis.Close()
		deps["redis"] = redis
	}

	tokens, err := auth.NewTokenManager(cfg.Auth)
	if err != nil {
		logger.Error("failed to init token manager", zap.Error(err))
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewMetrics(reg)

	users := repository.NewStaticUserRepository(cfg.Auth.Users)
	if len(cfg.Auth.Users) == 0 {
		logger.Warn("AUTH_USERS is empty; every token request will be rejected")
	}
	authService := service.NewAuthService(service.AuthDependencies{
		Directory:    service.NewUserDirectory(users),
		TokenManager: tokens,
		Metrics:      metrics,
		Logger:       logger,
	})

	app := httptransport.NewApp(logger, metrics, cfg.App.RequestTimeout(), httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, deps),
		Books:          handlers.NewBooksHandler(service.NewBookService(books)),
		Auth:           handlers.NewAuthHandler(authService),
		AuthMiddleware: auth.NewAuthMiddleware(tokens),
		Metrics:        metrics,
	})

	listenErr := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()), zap.String("store", cfg.Store.Driver))
		listenErr <- app.Listen(cfg.App.Addr())
	}()

	select {
	case err := <-listenErr:
		logger.Error("fiber listen", zap.Error(err))
		return err
	case <-waitForShutdown(ctx, logger):
	}

	return app.Shutdown()
}

// openBookStore connects the configured backend and returns its repository,
// a readiness probe, and a close function.
func openBookStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.BookRepository, handlers.Pinger, func(), error) {
	switch cfg.Store.Driver {
	case config.StoreDriverSQLite:
		db, err := persistence.NewSQLite(ctx, cfg.SQLite, logger)
		if err != nil {
			return nil, nil, nil, err
		}
		if cfg.Store.BootstrapSchema {
			if err := persistence.EnsureSQLiteSchema(ctx, db.DB, logger); err != nil {
				db.Close()
				return nil, nil, nil, err
			}
		}
		return repository.NewSQLiteBookRepository(db.DB), db, db.Close, nil
	default:
		pg, err := persistence.NewPostgres(ctx, cfg.Postgres, cfg.Store.BootstrapSchema, logger)
		if err != nil {
			return nil, nil, nil, err
		}
		return repository.NewBookRepository(pg.Pool()), pg, pg.Close, nil
	}
}

func waitForShutdown(ctx context.Context, logger *zap.Logger) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigCh)

		select {
		case sig := <-sigCh:
			logger.Info("shutting down", zap.String("signal", sig.String()))
		case <-ctx.Done():
			logger.Info("shutting down", zap.Error(ctx.Err()))
		}
	}()
	return done
}
