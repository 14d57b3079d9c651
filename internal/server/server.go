// Package server wires the dependency graph and owns the HTTP lifecycle.
//
// This is the composition root: the database, the auth primitives, the
// services, and the handlers are all constructed here and nowhere else.
// main.go stays minimal — read config, create the server, start it.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/mi-wada/todo-api/internal/auth"
	"github.com/mi-wada/todo-api/internal/handler"
	"github.com/mi-wada/todo-api/internal/middleware"
	sqliteRepo "github.com/mi-wada/todo-api/internal/repository/sqlite"
	"github.com/mi-wada/todo-api/internal/service"
)

// Config holds the three required startup values. All of them are validated
// before the server accepts a single request — a missing secret must kill
// the process, not surface as 500s later.
type Config struct {
	Port              int
	DBPath            string
	AccessTokenSecret string
}

// Server owns the router and the database connection. The connection is
// closed during graceful shutdown, after in-flight requests drain.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New builds the full dependency chain:
//
//	sqlite.DB → services (auth, task) → handlers → routes
//
// Handlers never touch the database directly and services never touch HTTP.
// The token secret flows explicitly into the TokenService here; nothing
// reads it from ambient state, so tests can run gates with distinct secrets.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	tokens, err := auth.NewTokenService(cfg.AccessTokenSecret)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating token service: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}
	s.setupRoutes(tokens)

	return s, nil
}

// setupRoutes configures middleware and all route handlers.
//
// Route table:
//
//	GET    /healthz            → liveness probe
//	POST   /users              → register            (public)
//	POST   /login              → issue access token  (public)
//	POST   /tasks              → create task         (authenticated)
//	GET    /tasks              → list tasks          (authenticated)
//	GET    /tasks/{task_id}    → get task            (authenticated)
//	DELETE /tasks/{task_id}    → delete task         (authenticated)
func (s *Server) setupRoutes(tokens *auth.TokenService) {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	passwords := auth.NewPasswordService()
	authService := service.NewAuthService(s.db.Users(), tokens, passwords, s.logger)
	taskService := service.NewTaskService(s.db, s.logger)

	authHandler := handler.NewAuthHandler(authService, s.logger)
	taskHandler := handler.NewTaskHandler(taskService, s.logger)

	s.router.Get("/healthz", handler.HandleHealthz)
	s.router.Post("/users", authHandler.HandleRegister)
	s.router.Post("/login", authHandler.HandleLogin)

	s.router.Route("/tasks", func(r chi.Router) {
		r.Use(auth.RequireAuth(tokens, s.db.Users(), s.logger))
		r.Post("/", taskHandler.HandleCreate)
		r.Get("/", taskHandler.HandleList)
		r.Get("/{task_id}", taskHandler.HandleGet)
		r.Delete("/{task_id}", taskHandler.HandleDelete)
	})
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, give in-flight requests 30
// seconds to finish, and close the database last.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
