// Package server provides a thin http api for status, tracked apps, report downloads and on-demand jobs
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/reviewscope/reviewscope/pkg/domain"
	"github.com/reviewscope/reviewscope/pkg/scheduler"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/database.go -pkg mocks -skip-ensure -fmt goimports . Database
//go:generate moq -out mocks/reports.go -pkg mocks -skip-ensure -fmt goimports . Reports
//go:generate moq -out mocks/jobs.go -pkg mocks -skip-ensure -fmt goimports . Jobs

// Server represents HTTP server instance
type Server struct {
	config  ConfigProvider
	db      Database
	reports Reports
	jobs    Jobs
	version string
	debug   bool
	now     func() time.Time

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// Database interface for server operations
type Database interface {
	ListApps(ctx context.Context, activeOnly bool) ([]domain.TrackedApp, error)
	CreateApp(ctx context.Context, app *domain.TrackedApp) (bool, error)
	SetAppActive(ctx context.Context, appID int64, active bool) error
	GetGame(ctx context.Context, id string) (*domain.Game, error)
	StatusCounts(ctx context.Context) (map[string]map[string]int, error)
}

// Reports builds report workbooks
type Reports interface {
	BuildSteamReport(ctx context.Context, appID int64, w domain.ReportWindow) ([]byte, error)
	BuildYouTubeReport(ctx context.Context, gameID string, w domain.ReportWindow) ([]byte, error)
}

// Jobs runs a named job now
type Jobs interface {
	Run(ctx context.Context, name scheduler.JobName) scheduler.JobSummary
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
}

// New initializes a new server instance
func New(cfg ConfigProvider, db Database, reports Reports, jobs Jobs, version string, debug bool) *Server {
	s := &Server{
		config:  cfg,
		db:      db,
		reports: reports,
		jobs:    jobs,
		version: version,
		debug:   debug,
		now:     time.Now,
		router:  routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	lgr.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              listen,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		lgr.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			lgr.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("reviewscope", "reviewscope", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(1024 * 1024)) // 1MB
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)
		r.HandleFunc("GET /apps", s.listAppsHandler)
		r.HandleFunc("POST /apps", s.createAppHandler)
		r.HandleFunc("POST /apps/{id}/active", s.setAppActiveHandler)
		r.HandleFunc("GET /reports/steam/{app_id}", s.steamReportHandler)
		r.HandleFunc("GET /reports/youtube/{game_id}", s.youtubeReportHandler)
		r.HandleFunc("POST /jobs/{name}", s.runJobHandler)
	})
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			lgr.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, map[string]string{"error": errMsg})
}
