package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/veles/academia/internal/bootstrap"
	"github.com/veles/academia/internal/config"
	"github.com/veles/academia/internal/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// Server is the application HTTP server
type Server struct {
	config *config.Config
	router *gin.Engine
	dbPool *pgxpool.Pool
	http   *http.Server
}

// NewServer loads configuration, connects to the database and wires up
// the full application
func NewServer(configPath string) (*Server, error) {
	cfg, err := bootstrap.LoadConfigAndSetupLogger(configPath)
	if err != nil {
		return nil, err
	}

	dbPool, err := bootstrap.SetupDatabase(cfg)
	if err != nil {
		return nil, err
	}

	deps, err := bootstrap.BuildDependencies(cfg, dbPool)
	if err != nil {
		dbPool.Close()
		return nil, err
	}

	router := bootstrap.SetupRouter(cfg, deps)

	srv := &Server{
		config: cfg,
		router: router,
		dbPool: dbPool,
		http: &http.Server{
			Addr:    ":" + cfg.Server.Port,
			Handler: router,
		},
	}

	if err := srv.setupStaticFileServing(); err != nil {
		dbPool.Close()
		return nil, err
	}

	return srv, nil
}

// setupStaticFileServing exposes uploaded files under /uploads
func (s *Server) setupStaticFileServing() error {
	storagePath, err := filepath.Abs(s.config.Server.StoragePath)
	if err != nil {
		return fmt.Errorf("failed to resolve storage path: %w", err)
	}

	if err := os.MkdirAll(storagePath, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}

	s.router.Static("/uploads", storagePath)
	logger.Info().Str("path", storagePath).Msg("Serving uploaded files from /uploads")
	return nil
}

// Run starts the HTTP server and blocks until shutdown
func (s *Server) Run() error {
	serverErrors := make(chan error, 1)

	go func() {
		logger.Info().Str("addr", s.http.Addr).Msg("Starting HTTP server")
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		s.dbPool.Close()
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		logger.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.http.Shutdown(ctx); err != nil {
		s.dbPool.Close()
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	s.dbPool.Close()
	logger.Info().Msg("Server stopped")
	return nil
}
