package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	api "github.com/GriffinCanCode/PackStudio/internal/api/http"
	"github.com/GriffinCanCode/PackStudio/internal/api/middleware"
	"github.com/GriffinCanCode/PackStudio/internal/domain/archive"
	"github.com/GriffinCanCode/PackStudio/internal/domain/catalog"
	"github.com/GriffinCanCode/PackStudio/internal/domain/project"
	"github.com/GriffinCanCode/PackStudio/internal/infrastructure/config"
	"github.com/GriffinCanCode/PackStudio/internal/infrastructure/logging"
	"github.com/GriffinCanCode/PackStudio/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/PackStudio/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/PackStudio/internal/shared/paths"
)

// ShutdownTimeout bounds how long in-flight requests may run after Run's
// context is canceled
const ShutdownTimeout = 10 * time.Second

// Server wraps the HTTP server and dependencies
type Server struct {
	router   *gin.Engine
	store    *project.Store
	catalog  *catalog.Catalog
	tracer   *tracing.Tracer
	logger   *logging.Logger
	config   *config.Config
	metrics  *monitoring.Metrics
	registry *prometheus.Registry
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, logger *logging.Logger) (*Server, error) {
	if logger == nil {
		logger = logging.NewDefault()
	}

	logger.Info("Initializing PackStudio server",
		zap.String("addr", cfg.Addr()),
		zap.String("projects_dir", cfg.Storage.ProjectsDir),
		zap.String("project_ext", cfg.Storage.ProjectExt),
	)

	// Initialize metrics first (needed by other components)
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := monitoring.NewMetrics(registry)

	tracer := tracing.New("packstudio", logger)

	cat, err := catalog.New(catalog.Options{
		PackFormatFile: cfg.Catalog.PackFormatFile,
		FileTypesFile:  cfg.Catalog.FileTypesFile,
	})
	if err != nil {
		tracer.Close()
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	logger.Info("Catalog loaded", zap.Strings("versions", cat.Supported()))

	root, err := paths.NewRoot(cfg.Storage.ProjectsDir)
	if err != nil {
		tracer.Close()
		return nil, fmt.Errorf("failed to open projects directory: %w", err)
	}

	mirror, err := archive.New(archive.Config{
		Root:     root,
		Catalog:  cat,
		Ext:      cfg.Storage.ProjectExt,
		Logger:   logger,
		Recorder: metrics,
	})
	if err != nil {
		tracer.Close()
		return nil, err
	}

	store, err := project.NewStore(project.Config{
		Mirror:   mirror,
		Catalog:  cat,
		Logger:   logger,
		Recorder: metrics,
	})
	if err != nil {
		tracer.Close()
		return nil, err
	}

	// Create router
	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(tracing.HTTPMiddleware(tracer))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		rl := middleware.DefaultRateLimitConfig()
		rl.RequestsPerSecond = cfg.RateLimit.RequestsPerSecond
		rl.Burst = cfg.RateLimit.Burst
		router.Use(middleware.RateLimit(rl))
	}

	api.NewHandlers(store, metrics, logger).Register(router)

	if cfg.Metrics.Enabled {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	}

	logger.Info("Server initialized successfully")

	return &Server{
		router:   router,
		store:    store,
		catalog:  cat,
		tracer:   tracer,
		logger:   logger,
		config:   cfg,
		metrics:  metrics,
		registry: registry,
	}, nil
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Store returns the project store the routes are served from
func (s *Server) Store() *project.Store {
	return s.store
}

// ReloadCatalog re-reads the catalog override files. The previous tables
// stay active when the reload fails.
func (s *Server) ReloadCatalog() error {
	err := s.catalog.Reload()
	s.metrics.RecordCatalogReload(err)
	if err != nil {
		s.logger.Warn("Catalog reload failed, keeping previous tables", zap.Error(err))
		return err
	}
	s.logger.Info("Catalog reloaded", zap.Strings("versions", s.catalog.Supported()))
	return nil
}

// Run serves HTTP until ctx is canceled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Addr(),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting HTTP server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return <-errCh
}

// Close releases the tracer and flushes the logger
func (s *Server) Close() error {
	s.logger.Info("Shutting down server...")
	s.tracer.Close()

	// Sync logger before exit
	_ = s.logger.Sync()
	return nil
}
