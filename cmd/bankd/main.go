package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/arthurmdp/bankledger/internal/audit"
	"github.com/arthurmdp/bankledger/internal/config"
	"github.com/arthurmdp/bankledger/internal/ledger"
	"github.com/arthurmdp/bankledger/pkg/accesslog"
	"github.com/arthurmdp/bankledger/pkg/logger"
	"github.com/arthurmdp/bankledger/pkg/throttle"
	"github.com/arthurmdp/bankledger/pkg/unzip"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/nanmu42/gzip"
)

// Version indicates the current version of the application.
var Version = "1.0.0"

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Server run context.
	serverCtx, serverStopCtx := context.WithCancel(context.Background())
	defer serverStopCtx()

	// Load application configurations.
	cfg := config.MustLoad()

	// Create root logger tagged with server version.
	logger := logger.New(cfg).With(serverCtx, "version", Version)
	defer func() {
		_ = logger.Sync()
	}()

	// All state lives in memory for the lifetime of the process.
	registry := ledger.NewRegistry(cfg)

	// Audit trail observing every registration and transaction attempt.
	auditor := audit.NewFromConfig(cfg, logger)

	// Init ledger service.
	ledgerService, err := ledger.NewService(registry, auditor, logger, cfg)
	if err != nil {
		return fmt.Errorf("failed to init ledger service: %w", err)
	}

	// Create root router.
	router := initRootRouter(logger, cfg)

	// Init and group handlers for ledger routes.
	handler := ledger.HandlerWithOptions(ledgerService, ledger.ChiServerOptions{
		BaseURL:          "/api/v1",
		BaseRouter:       router,
		ErrorHandlerFunc: ledger.ErrorHandlerFunc,
	})

	// Build HTTP server.
	hs := &http.Server{
		Addr:              cfg.HTTPServer.Address,
		ReadHeaderTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:       cfg.HTTPServer.IdleTimeout,
		Handler:           handler,
	}

	// Graceful shutdown.
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGHUP, syscall.SIGINT,
			syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)

		signal := <-sig

		logger.With(serverCtx, "signal", signal.String()).
			Infof("Shutting down server with %s timeout",
				cfg.HTTPServer.ShutdownTimeout)

		if err = hs.Shutdown(serverCtx); err != nil {
			logger.Errorf("graceful shutdown failed: %s", err)
		}
		serverStopCtx()
	}()

	// Start the HTTP server with graceful shutdown.
	logger.Infof("Server %v is running at %v", Version, cfg.HTTPServer.Address)
	if err = hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("run server failed: %w", err)
	}

	// Wait for server context to be stopped or force exit if timeout exceeded.
	select {
	case <-serverCtx.Done():
	case <-time.After(cfg.HTTPServer.ShutdownTimeout):
		return errors.New("graceful shutdown timed out.. forcing exit")
	}

	return nil
}

func initRootRouter(logger logger.Logger, cfg *config.Config) *chi.Mux {
	router := chi.NewRouter()
	router.Use(accesslog.Handler(logger))
	router.Use(middleware.Recoverer)
	router.Use(throttle.New(cfg.HTTPServer.RateEvery, cfg.HTTPServer.RateBurst).Middleware)
	router.Use(gzip.DefaultHandler().WrapHandler)
	router.Use(unzip.Middleware(logger))

	return router
}
