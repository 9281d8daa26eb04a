package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/verifyap/threeway/internal/api"
	"github.com/verifyap/threeway/internal/config"
	"github.com/verifyap/threeway/internal/domain"
	"github.com/verifyap/threeway/internal/ingestion"
	"github.com/verifyap/threeway/internal/orders"
	"github.com/verifyap/threeway/internal/reconciliation"
	"github.com/verifyap/threeway/internal/repository"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger.Info("initializing database", "path", cfg.Feed.DBPath)
	db, err := repository.InitDB(cfg.Feed.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	// Create repositories.
	feedRepo := repository.NewFeedRepo(db)
	loadRepo := repository.NewLoadRepo(db)

	// Create services.
	index := orders.NewIndex()
	loader := ingestion.NewLoader(ingestion.Source{
		Kind:  cfg.Feed.Source,
		Path:  cfg.Feed.Location(),
		Sheet: cfg.Feed.Sheet,
	}, index, feedRepo, loadRepo, logger)
	reconSvc := reconciliation.NewService(index, cfg.Matching, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Feed.Source == domain.SourceSQLite {
		n, err := feedRepo.Count(ctx)
		if err != nil {
			return fmt.Errorf("count stored feed rows: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("feed store %s is empty, import a feed with feedimport first", cfg.Feed.DBPath)
		}
	}

	// Never serve without order data.
	if _, err := loader.Reload(ctx); err != nil {
		return err
	}

	go reloadOnHangup(ctx, loader, logger)

	router := api.NewRouter(reconSvc, index, loader, loadRepo, logger)
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("three-way match service listening",
		"addr", "http://localhost:"+cfg.Server.Port,
		"feed", cfg.Feed.Location(),
		"source", cfg.Feed.Source)
	logger.Info("endpoints",
		"routes", []string{
			"POST /api/v1/receipts/match",
			"POST /api/v1/invoices/match",
			"GET  /api/v1/orders/{number}",
			"GET  /api/v1/orders/stats",
			"GET  /api/v1/orders/loads",
			"POST /api/v1/orders/reload",
			"GET  /api/v1/vendors/{name}/orders",
			"GET  /healthz",
		})

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down", "timeout", cfg.Server.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// reloadOnHangup rebuilds the index whenever the process receives SIGHUP.
func reloadOnHangup(ctx context.Context, loader *ingestion.Loader, logger *slog.Logger) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			// Failures are logged by the loader; the current index stays live.
			_, _ = loader.Reload(ctx)
		}
	}
}
