package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/heartmarshall/rhymebook-backend/internal/adapter/provider/datamuse"
	"github.com/heartmarshall/rhymebook-backend/internal/config"
	"github.com/heartmarshall/rhymebook-backend/internal/service/lookup"
	"github.com/heartmarshall/rhymebook-backend/internal/service/session"
	"github.com/heartmarshall/rhymebook-backend/internal/transport/middleware"
	"github.com/heartmarshall/rhymebook-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, initializes
// the logger, wires the word provider and services, and serves HTTP until
// the context is cancelled, then shuts down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	words := datamuse.NewProviderWithURL(cfg.Datamuse.BaseURL, cfg.Datamuse.MaxResults, logger)

	lookupSvc := lookup.NewService(logger, words,
		cfg.Lookup.MaxWordLength, cfg.Lookup.CacheSize, cfg.Lookup.CacheTTL)

	sessionSvc := session.NewService(logger,
		cfg.Session.MaxSavedWords, cfg.Session.IdleTTL, cfg.Session.CleanupInterval)
	defer sessionSvc.Stop()

	rateLimiter := middleware.NewRateLimiter(cfg.Rate.CleanupInterval)
	defer rateLimiter.Stop()

	router := rest.NewRouter(rest.RouterDeps{
		Lookup:      rest.NewLookupHandler(lookupSvc, sessionSvc, logger),
		Notebook:    rest.NewNotebookHandler(sessionSvc, logger),
		Health:      rest.NewHealthHandler(words, BuildVersion()),
		Logger:      logger,
		CORS:        cfg.CORS,
		RateLimiter: rateLimiter,
		RatePerMin:  cfg.Rate.RequestsPerMinute,
	})

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("stopped")
	return nil
}
