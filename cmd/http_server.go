package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/techcorp/internal-tools/api"
	"github.com/techcorp/internal-tools/internal"
	"github.com/techcorp/internal-tools/internal/analytics"
	analyticsPostgres "github.com/techcorp/internal-tools/internal/analytics/postgres"
	"github.com/techcorp/internal-tools/internal/category"
	categoryPostgres "github.com/techcorp/internal-tools/internal/category/postgres"
	"github.com/techcorp/internal-tools/internal/tool"
	toolPostgres "github.com/techcorp/internal-tools/internal/tool/postgres"
	"github.com/techcorp/internal-tools/internal/transport"
	"github.com/techcorp/internal-tools/internal/transport/middleware"
	"github.com/techcorp/internal-tools/internal/transport/rest"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return startHTTPServer(cmd.Context())
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	Gorm   *gorm.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps, err := initializeDependencies(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		return err
	}
	defer func() {
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("Database close error", "error", err)
		}
	}()

	if doc, err := api.Load(ctx); err != nil {
		deps.Logger.Warn("OpenAPI document is invalid; /docs may be inaccurate", "error", err)
	} else {
		deps.Logger.Debug("OpenAPI document loaded", "paths", doc.Paths.Len())
	}

	setupRoutes(deps)

	cfg := deps.Config.Server
	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           deps.Router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		deps.Logger.Info("Starting HTTP server",
			"address", server.Addr,
			"api_prefix", deps.Config.App.APIPrefix,
			"version", deps.Config.App.Version)
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		deps.Logger.Info("Received signal, shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			deps.Logger.Error("Server shutdown error", "error", err)
			return err
		}
	case err := <-serverErrChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			deps.Logger.Error("Server failed to start", "error", err)
			return err
		}
	}

	deps.Logger.Info("Server stopped")
	return nil
}

func setupRoutes(deps *Dependencies) {
	base := transport.NewBaseHandler(deps.Logger)

	categoryService := category.NewService(categoryPostgres.NewCategoryRepository(deps.Gorm), deps.Logger)
	toolService := tool.NewService(toolPostgres.NewToolRepository(deps.Gorm), deps.Logger)
	analyticsService := analytics.NewService(analyticsPostgres.NewAnalyticsRepository(deps.DB, deps.Config.Database.QueryTimeout), deps.Logger)

	routeDeps := rest.Dependencies{
		Config:           deps.Config,
		DB:               deps.DB,
		ToolHandler:      tool.NewHandler(base, toolService),
		CategoryHandler:  category.NewHandler(base, categoryService),
		AnalyticsHandler: analytics.NewHandler(base, analyticsService),
		Logger:           deps.Logger,
	}

	if deps.Config.Observability.Metrics.Enabled {
		registry := prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewDBStatsCollector(deps.DB.DB, "internal_tools"),
		)
		routeDeps.Metrics = middleware.NewMetrics(registry)
		routeDeps.MetricsHandler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})
	}

	rest.RegisterAllRoutes(deps.Router, routeDeps)
}

func initializeDependencies(ctx context.Context) (*Dependencies, error) {
	config, lg, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	db, err := initDB(ctx, config.Database, lg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gdb, err := initGorm(db, config.Database)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	return &Dependencies{
		Config: config,
		Logger: lg,
		DB:     db,
		Gorm:   gdb,
		Router: chi.NewRouter(),
	}, nil
}
