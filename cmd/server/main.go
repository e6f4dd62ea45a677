// File: cmd/server/main.go
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iyunix/go-chatbot/internal/config"
	"github.com/iyunix/go-chatbot/internal/handlers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Config Error: %v", err)
	}

	app, err := buildApplication(cfg)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize application: %v", err)
	}
	defer app.Close()

	app.PurgeExpiredSessions(context.Background())

	router := handlers.NewRouter(handlers.RouterDeps{
		Auth:     app.AuthHandler,
		Chat:     app.ChatHandler,
		Sessions: app.SessionService,
		Logger:   app.Logger.Named("http"),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		// Sends block on the model, so the write deadline must outlast it.
		WriteTimeout: cfg.LLMTimeout*time.Duration(cfg.ChatReplyRetries+1) + 30*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	app.Logger.Info("server starting",
		"addr", srv.Addr,
		"database", cfg.DatabasePath,
		"model", cfg.LLMModel,
		"environment", cfg.Environment)

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// --- Graceful Shutdown ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		app.Logger.Error("server startup failed", "error", err)
		return
	case <-stop:
	}

	app.Logger.Info("shutting down server gracefully")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		app.Logger.Error("server shutdown failed", "error", err)
		return
	}
	app.Logger.Info("server stopped gracefully")
}
