package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/statusgate/engine/internal/api"
	"github.com/statusgate/engine/internal/api/handlers"
	mw "github.com/statusgate/engine/internal/api/middleware"
	"github.com/statusgate/engine/internal/origin"
	"github.com/statusgate/engine/pkg/config"
	"github.com/statusgate/engine/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.MustLoad()

	// Initialize logger
	log, err := logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	log.Info("Starting status gate",
		zap.String("env", cfg.AppEnv),
		zap.String("addr", cfg.HTTPAddr),
	)

	policy, err := origin.NewPolicy(cfg.AllowedOrigins())
	if err != nil {
		log.Fatal("invalid CORS allow-list", zap.Error(err))
	}
	log.Info("CORS allow-list loaded", zap.Strings("origins", cfg.AllowedOrigins()))

	var verifier mw.Verifier = mw.PresenceVerifier{}
	if cfg.AuthJWTSecret != "" {
		verifier = mw.HMACVerifier{Secret: []byte(cfg.AuthJWTSecret)}
		log.Info("JWT verification enabled")
	}

	router := api.NewRouter(api.Dependencies{
		Origins:    policy,
		CORSMaxAge: cfg.CORSMaxAge,
		Verifier:   verifier,
		Status: mw.StatusOptions{
			RejectEmptyBody: cfg.RejectEmptyBody,
			MaxBodyBytes:    cfg.MaxBodyBytes,
		},
		ErrorDetail: cfg.ErrorDetail,
		TestStatus:  handlers.NewStatusHandler().TestStatus,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		log.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown error", zap.Error(err))
	} else {
		log.Info("server exited gracefully")
	}
}
