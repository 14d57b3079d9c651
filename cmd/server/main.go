// Package main is the entry point for the todo API server.
//
// Its job is deliberately small: read configuration from the environment,
// build the logger, and hand everything to internal/server. All real logic
// lives in the imported packages.
package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/mi-wada/todo-api/internal/server"
)

// The server refuses to start without all three of these. Defaulting the
// token secret in particular would silently produce forgeable tokens.
const (
	envPort     = "TODO_API_PORT"
	envDBPath   = "TODO_API_DATABASE_PATH"
	envTokenKey = "TODO_API_ACCESS_TOKEN_SECRET"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg, err := loadConfig()
	if err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Create the database directory if it doesn't exist yet, so a fresh
	// deploy works without a manual mkdir.
	if dbDir := filepath.Dir(cfg.DBPath); dbDir != "." {
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			logger.Error("failed to create database directory",
				slog.String("dir", dbDir),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start blocks until SIGINT/SIGTERM.
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func loadConfig() (server.Config, error) {
	portStr := os.Getenv(envPort)
	if portStr == "" {
		return server.Config{}, missingEnv(envPort)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return server.Config{}, &configError{envPort, "must be a number, got " + strconv.Quote(portStr)}
	}

	dbPath := os.Getenv(envDBPath)
	if dbPath == "" {
		return server.Config{}, missingEnv(envDBPath)
	}

	secret := os.Getenv(envTokenKey)
	if secret == "" {
		return server.Config{}, missingEnv(envTokenKey)
	}

	return server.Config{
		Port:              port,
		DBPath:            dbPath,
		AccessTokenSecret: secret,
	}, nil
}

type configError struct {
	name   string
	reason string
}

func (e *configError) Error() string {
	return e.name + " " + e.reason
}

func missingEnv(name string) error {
	return &configError{name, "is required but not set"}
}
