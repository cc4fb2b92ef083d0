// Package main provides the entry point for the HTTP server.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/danilkaz/pickup-queue/internal/config"
	"github.com/danilkaz/pickup-queue/internal/database/database"
	"github.com/danilkaz/pickup-queue/internal/database/migrate"
	gameRouter "github.com/danilkaz/pickup-queue/internal/game/router"
	groupRouter "github.com/danilkaz/pickup-queue/internal/group/router"
	"github.com/danilkaz/pickup-queue/internal/health"
	"github.com/danilkaz/pickup-queue/internal/middleware"
	playerRouter "github.com/danilkaz/pickup-queue/internal/player/router"
	"github.com/danilkaz/pickup-queue/internal/realtime"
	"github.com/danilkaz/pickup-queue/internal/roster/engine"
	"github.com/danilkaz/pickup-queue/internal/roster/repository"
	"github.com/danilkaz/pickup-queue/pkg/logger"
)

func main() {
	cfg := config.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	zapLogger, err := logger.NewWithConfig(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	gin.SetMode(cfg.GinMode)

	db, err := database.New()
	if err != nil {
		zapLogger.Fatalw("failed to connect to database", "error", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			zapLogger.Errorw("failed to close database", "error", err)
		}
	}()

	if err := migrate.Migrate(db); err != nil {
		zapLogger.Fatalw("failed to run migrations", "error", err)
	}

	repo := repository.New(db)
	eng := engine.New(repo, db, zapLogger)
	hub := realtime.NewHub(func(ctx context.Context) (interface{}, error) {
		return eng.Project(ctx)
	}, zapLogger)

	r := gin.New()
	r.Use(middleware.Logger(zapLogger))
	r.Use(middleware.Recovery(zapLogger))
	r.Use(middleware.CORS(cfg.CORS))

	healthHandler := health.New(db, zapLogger)
	r.GET("/api/health", healthHandler.Check)

	playerRouter.RegisterRoutes(r, eng, hub, zapLogger)
	groupRouter.RegisterRoutes(r, eng, hub, zapLogger)
	gameRouter.RegisterRoutes(r, eng, hub, zapLogger)

	// The websocket upgrade hijacks the connection and needs the raw
	// ResponseWriter, so /ws sits beside the gin engine on the mux.
	mux := http.NewServeMux()
	mux.Handle("/ws", hub)
	mux.Handle("/", r)

	srv := &http.Server{
		Addr:         cfg.Server.GetAddress(),
		Handler:      mux,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		zapLogger.Infow("starting server", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Infow("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Errorw("forced shutdown", "error", err)
	}
	zapLogger.Infow("server stopped")
}
