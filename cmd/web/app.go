package main

import (
	"io"
	"math/rand/v2"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"finitefield.org/catalog-web/internal/catalog"
	"finitefield.org/catalog-web/internal/cms"
	"finitefield.org/catalog-web/internal/config"
	"finitefield.org/catalog-web/internal/directory"
	"finitefield.org/catalog-web/internal/handlers"
	"finitefield.org/catalog-web/internal/i18n"
	"finitefield.org/catalog-web/internal/metrics"
	mw "finitefield.org/catalog-web/internal/middleware"
)

const assetsMaxAge = 7 * 24 * time.Hour

type app struct {
	cfg       config.Config
	logger    *zap.Logger
	bundle    *i18n.Bundle
	content   *cms.Store
	templates *templates
	// metrics is nil when disabled; its recorders are nil-safe.
	metrics *metrics.Metrics
	stats   handlers.StatsSource
	// shuffler returns a fresh permutation source per request.
	shuffler func() catalog.Shuffler
}

// newShufflerFactory seeds every request identically when seed is non-zero so
// shuffled catalogs render reproducibly.
func newShufflerFactory(seed uint64) func() catalog.Shuffler {
	if seed != 0 {
		return func() catalog.Shuffler { return rand.New(rand.NewPCG(seed, seed)) }
	}
	return func() catalog.Shuffler { return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())) }
}

func (a *app) site() handlers.Site {
	return handlers.Site{
		Name:          a.cfg.Site.Name,
		URL:           a.cfg.Site.URL,
		DefaultLocale: a.cfg.Site.DefaultLocale,
		Locales:       a.bundle.Supported(),
		Analytics: handlers.Analytics{
			GA4MeasurementID: a.cfg.Analytics.GA4MeasurementID,
			GTMContainerID:   a.cfg.Analytics.GTMContainerID,
			Debug:            a.cfg.Analytics.Debug,
		},
	}
}

func (a *app) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	// RealIP trusts X-Forwarded-For; deploy behind a proxy that sets it.
	r.Use(chimw.RealIP)
	r.Use(mw.HTMX)
	r.Use(mw.Logger(a.logger))
	r.Use(chimw.Recoverer)
	if a.metrics != nil {
		r.Use(a.metrics.Instrument)
	}
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(a.cfg.Server.RequestTimeout))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, "ok")
	})
	if a.metrics != nil {
		r.Handle(a.cfg.Metrics.Path, a.metrics.Handler())
	}

	maxAge := assetsMaxAge
	if a.cfg.Server.DevMode {
		maxAge = 0
	}
	r.Handle("/assets/*", mw.AssetsWithCache(filepath.Join(a.cfg.Paths.Public, "assets"), "/assets", maxAge))

	r.Get("/", mw.LocaleRedirect(a.bundle))

	r.Route("/{lang}", func(r chi.Router) {
		r.Use(mw.Locale(a.bundle))
		r.Use(mw.VaryLocale)

		r.Get("/", a.home)
		for _, page := range directory.Pages() {
			base := "/" + page.Slug
			r.Get(base, redirectSlash)
			r.Get(base+"/", a.catalogPage(page))
			r.Get(base+"/select", a.catalogSelect(page))
		}
		r.Get("/*", a.contentPage)
	})
	return r
}

func redirectSlash(w http.ResponseWriter, r *http.Request) {
	target := r.URL.Path + "/"
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}
	http.Redirect(w, r, target, http.StatusMovedPermanently)
}
