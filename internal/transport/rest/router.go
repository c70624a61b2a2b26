package rest

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi"
	"github.com/techcorp/internal-tools/api"
	"github.com/techcorp/internal-tools/internal"
	"github.com/techcorp/internal-tools/internal/analytics"
	"github.com/techcorp/internal-tools/internal/category"
	"github.com/techcorp/internal-tools/internal/tool"
	"github.com/techcorp/internal-tools/internal/transport"
	"github.com/techcorp/internal-tools/internal/transport/middleware"
	"github.com/techcorp/internal-tools/internal/transport/swagger"
)

// Dependencies are the handlers and infrastructure the router wires together.
// Nil handlers leave their routes unregistered.
type Dependencies struct {
	Config           *internal.Config
	DB               Pinger
	ToolHandler      *tool.Handler
	CategoryHandler  *category.Handler
	AnalyticsHandler *analytics.Handler
	Metrics          *middleware.Metrics
	MetricsHandler   http.Handler
	Logger           *slog.Logger
}

func RegisterAllRoutes(router chi.Router, deps Dependencies) {
	cfg := deps.Config
	healthHandler := NewHealthHandler(transport.NewBaseHandler(deps.Logger), deps.DB, cfg.App.Version)

	// Apply global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(deps.Logger))
	router.Use(middleware.CORS(cfg.Server.Origins(), cfg.Server.AllowCredentials))
	if deps.Metrics != nil {
		router.Use(deps.Metrics.Middleware)
	}
	router.Use(middleware.LoggingMiddleware(deps.Logger))

	prefix := strings.TrimRight(cfg.App.APIPrefix, "/")
	docsPath := strings.TrimRight(cfg.App.DocsPath, "/")

	router.Get("/", healthHandler.infoHandler(InfoResponse{
		Name:    cfg.App.Name,
		Version: cfg.App.Version,
		Docs:    docsPath + "/index.html",
		Health:  "/health",
		API:     prefix,
	}))
	router.Get("/health", healthHandler.healthCheckHandler)
	router.Get("/ping", healthHandler.pingHandler)

	if cfg.Observability.Metrics.Enabled && deps.MetricsHandler != nil {
		router.Method(http.MethodGet, cfg.Observability.Metrics.Path, deps.MetricsHandler)
	}

	// OpenAPI document lives outside the API prefix
	router.Get(swagger.SpecURL, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(api.OpenAPI)
	})
	if docsPath != "" {
		router.Handle(docsPath+"/*", swagger.Handler())
	}

	registerAPI := func(r chi.Router) {
		if deps.CategoryHandler != nil {
			r.Get("/categories", deps.CategoryHandler.GetCategories)
			r.Get("/categories/{id}", deps.CategoryHandler.GetCategory)
		}

		if deps.ToolHandler != nil {
			r.Route("/tools", func(tr chi.Router) {
				tr.Get("/", deps.ToolHandler.ListTools)
				tr.Post("/", deps.ToolHandler.CreateTool)
				tr.Get("/{id}", deps.ToolHandler.GetTool)
				tr.Put("/{id}", deps.ToolHandler.UpdateTool)
				tr.Delete("/{id}", deps.ToolHandler.DeleteTool)
			})
		}

		if deps.AnalyticsHandler != nil {
			r.Route("/analytics", func(ar chi.Router) {
				ar.Get("/department-costs", deps.AnalyticsHandler.GetDepartmentCosts)
				ar.Get("/expensive-tools", deps.AnalyticsHandler.GetExpensiveTools)
				ar.Get("/tools-by-category", deps.AnalyticsHandler.GetToolsByCategory)
				ar.Get("/low-usage-tools", deps.AnalyticsHandler.GetLowUsageTools)
				ar.Get("/vendor-summary", deps.AnalyticsHandler.GetVendorSummary)
			})
		}
	}

	if prefix == "" {
		router.Group(registerAPI)
	} else {
		router.Route(prefix, registerAPI)
	}
}
