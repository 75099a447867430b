// GroomifyAI - speaking practice server
// Entry point for the web server
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gungunaswani/GroomifyAI/internal/config"
	"github.com/gungunaswani/GroomifyAI/internal/handlers"
	"github.com/gungunaswani/GroomifyAI/internal/logging"
	"github.com/gungunaswani/GroomifyAI/internal/middleware"
	"github.com/gungunaswani/GroomifyAI/internal/services/analytics"
	"github.com/gungunaswani/GroomifyAI/internal/services/auth"
	"github.com/gungunaswani/GroomifyAI/internal/services/capture"
	"github.com/gungunaswani/GroomifyAI/internal/services/contextimage"
	"github.com/gungunaswani/GroomifyAI/internal/services/feedback"
	"github.com/gungunaswani/GroomifyAI/internal/services/practice"
	"github.com/gungunaswani/GroomifyAI/internal/storage"
	"github.com/gungunaswani/GroomifyAI/internal/websocket"
	"github.com/joho/godotenv"
)

func main() {
	// A missing .env is fine; the environment may already be set
	envErr := godotenv.Load()

	cfg := config.Load()
	logger := logging.Setup(cfg.LogLevel)
	if envErr != nil && !errors.Is(envErr, os.ErrNotExist) {
		logger.Warn("failed to load .env", "error", envErr)
	}

	db, err := storage.New(cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Repositories over the key-value documents
	kv := storage.NewSQLiteKV(db.DB)
	userRepo := storage.NewUserRepository(kv, logger)
	currentUser := storage.NewCurrentUserStore(kv, logger)

	// Services
	authService := auth.NewService(cfg, userRepo, currentUser, logger)
	analyticsService := analytics.NewService()
	hub := websocket.NewHub(logger)

	recorders := practice.NewRegistry(practice.Config{
		TickInterval:     cfg.TickInterval,
		FeedbackDelay:    cfg.FeedbackDelay,
		PlaybackDuration: cfg.PlaybackDuration,
	}, practice.Deps{
		Device:    capture.NewSimulated(cfg.CaptureEnabled, nil),
		Clock:     practice.SystemClock{},
		Generator: feedback.NewMock(nil),
		Persister: practice.NewPersister(userRepo, currentUser, logger),
		Logger:    logger,
	}, hub)
	defer recorders.Close()

	h := handlers.New(cfg, logger, authService, analyticsService, recorders, contextimage.NewService(cfg.ImageDelay))
	mux := h.Routes(middleware.NewAuth(authService), hub)

	handler := middleware.Chain(
		mux,
		middleware.Recover(logger),
		middleware.SecurityHeaders,
		middleware.Logger(logger),
	)

	// No read/write timeouts: the snapshot stream is long-lived
	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logger.Info("GroomifyAI server starting", "addr", "http://localhost:"+cfg.Port, "env", cfg.Environment)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}
