package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/aliskhannn/vocab-quiz/internal/app"
	"github.com/aliskhannn/vocab-quiz/internal/config"
	"github.com/aliskhannn/vocab-quiz/internal/delivery/rest"
	"github.com/aliskhannn/vocab-quiz/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	if cfg.Auth.Secret == "" {
		lg.Fatal("AUTH_SECRET is not set", zap.Error(config.ErrMissingEnvironmentVariables))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps, err := app.New(ctx, cfg, lg)
	if err != nil {
		lg.Fatal("failed to initialize application", zap.Error(err))
	}
	defer deps.Close()

	handler := rest.NewHandler(deps.QuizService, deps.SummaryService, lg)
	router := rest.NewRouter(handler, rest.RouterConfig{
		AuthSecret:     []byte(cfg.Auth.Secret),
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		Timeout:        cfg.HTTP.WriteTimeout,
	}, lg)

	srv := &http.Server{
		Addr:         cfg.HTTP.ListenAddr,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		lg.Info("http server started", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Error("http server failed", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	lg.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error("http server shutdown failed", zap.Error(err))
	}
}
