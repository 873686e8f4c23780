package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"finitefield.org/catalog-web/internal/cms"
	"finitefield.org/catalog-web/internal/config"
	"finitefield.org/catalog-web/internal/directory"
	"finitefield.org/catalog-web/internal/i18n"
	"finitefield.org/catalog-web/internal/metrics"
	"finitefield.org/catalog-web/internal/observability"
	"finitefield.org/catalog-web/internal/stats"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "web: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	var logger *zap.Logger
	if cfg.Server.DevMode {
		logger = observability.NewDevelopmentLogger()
	} else if logger, err = observability.NewLogger(cfg.Log.Level); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := directory.Validate(); err != nil {
		return fmt.Errorf("catalog data: %w", err)
	}

	a, cleanup, err := newApp(cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	if cfg.Server.DevMode {
		if w, err := cms.NewWatcher(a.content, logger); err != nil {
			logger.Warn("content watcher disabled", zap.Error(err))
		} else {
			w.Start(ctx)
			defer w.Stop()
		}
	}
	if client, ok := a.stats.(*stats.Client); ok && cfg.Stats.URL != "" && cfg.Stats.Refresh != "" {
		stop, err := client.StartRefresh(cfg.Stats.Refresh, logger)
		if err != nil {
			return err
		}
		defer stop()
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           a.routes(),
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("web listening",
			zap.String("addr", srv.Addr),
			zap.Bool("dev_mode", cfg.Server.DevMode),
			zap.Strings("locales", cfg.Site.Locales),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", zap.Duration("timeout", cfg.Server.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// newApp wires the collaborators shared by all handlers. The returned cleanup
// releases the content cache.
func newApp(cfg config.Config, logger *zap.Logger) (*app, func(), error) {
	bundle, err := i18n.Load(cfg.Paths.Locales, cfg.Site.DefaultLocale, cfg.Site.Locales)
	if err != nil {
		return nil, nil, fmt.Errorf("load locales: %w", err)
	}

	tmpl := newTemplates(cfg.Paths.Templates, bundle, cfg.Server.DevMode)
	if !cfg.Server.DevMode {
		if err := tmpl.load(); err != nil {
			return nil, nil, fmt.Errorf("parse templates: %w", err)
		}
	}

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New(true)
	}

	opts := []cms.Option{}
	if m != nil {
		opts = append(opts, cms.WithRecorder(m))
	}
	cleanup := func() {}
	if cfg.Cache.Enabled {
		cache, err := cms.NewRistrettoCache(cfg.Cache.MaxCost, cfg.Cache.NumCounters, cfg.Cache.TTL)
		if err != nil {
			return nil, nil, fmt.Errorf("content cache: %w", err)
		}
		opts = append(opts, cms.WithCache(cache))
		cleanup = cache.Close
	}

	a := &app{
		cfg:       cfg,
		logger:    logger,
		bundle:    bundle,
		content:   cms.NewStore(cfg.Paths.Content, cfg.Site.DefaultLocale, opts...),
		templates: tmpl,
		metrics:   m,
		stats:     stats.NewClient(cfg.Stats.URL, cfg.Stats.Timeout, cfg.Stats.TTL),
		shuffler:  newShufflerFactory(cfg.Catalog.ShuffleSeed),
	}
	return a, cleanup, nil
}
