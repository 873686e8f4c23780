package main

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"finitefield.org/catalog-web/internal/i18n"
	mw "finitefield.org/catalog-web/internal/middleware"
	"finitefield.org/catalog-web/internal/observability"
)

// templates holds one template set per page under <dir>/pages, each cloned
// from the shared layouts and partials. Fragments execute against the shared
// set. In dev mode every render reparses from disk.
type templates struct {
	dir     string
	bundle  *i18n.Bundle
	devMode bool

	mu     sync.RWMutex
	shared *template.Template
	pages  map[string]*template.Template
}

func newTemplates(dir string, bundle *i18n.Bundle, devMode bool) *templates {
	return &templates{dir: dir, bundle: bundle, devMode: devMode}
}

func (t *templates) funcs() template.FuncMap {
	return template.FuncMap{
		"now": time.Now,
		"t":   t.bundle.T,
		"jsonld": func(s string) template.JS {
			return template.JS(s) //nolint:gosec // produced by encoding/json
		},
	}
}

func (t *templates) load() error {
	shared := template.New("_root").Funcs(t.funcs())
	var common, pages []string
	err := filepath.WalkDir(t.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".tmpl") {
			return nil
		}
		if filepath.Base(filepath.Dir(path)) == "pages" {
			pages = append(pages, path)
		} else {
			common = append(common, path)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if len(common) == 0 || len(pages) == 0 {
		return fmt.Errorf("no templates found under %s", t.dir)
	}
	if shared, err = shared.ParseFiles(common...); err != nil {
		return err
	}

	set := make(map[string]*template.Template, len(pages))
	for _, p := range pages {
		clone, err := shared.Clone()
		if err != nil {
			return err
		}
		if clone, err = clone.ParseFiles(p); err != nil {
			return err
		}
		set[strings.TrimSuffix(filepath.Base(p), ".tmpl")] = clone
	}

	t.mu.Lock()
	t.shared, t.pages = shared, set
	t.mu.Unlock()
	return nil
}

func (t *templates) lookup(page string) (*template.Template, error) {
	if t.devMode {
		if err := t.load(); err != nil {
			return nil, fmt.Errorf("template parse error: %w", err)
		}
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	if page == "" {
		if t.shared == nil {
			return nil, fmt.Errorf("templates not initialized")
		}
		return t.shared, nil
	}
	tmpl, ok := t.pages[page]
	if !ok {
		return nil, fmt.Errorf("unknown page template %q", page)
	}
	return tmpl, nil
}

// renderPage executes the base layout of page.
func (a *app) renderPage(w http.ResponseWriter, r *http.Request, page string, data any) {
	a.renderPageStatus(w, r, page, data, http.StatusOK)
}

func (a *app) renderPageStatus(w http.ResponseWriter, r *http.Request, page string, data any, status int) {
	tmpl, err := a.templates.lookup(page)
	if err != nil {
		a.renderError(w, r, err)
		return
	}
	a.execute(w, r, tmpl, "base", data, status)
}

// renderFragment executes a shared partial for htmx swaps.
func (a *app) renderFragment(w http.ResponseWriter, r *http.Request, name string, data any) {
	tmpl, err := a.templates.lookup("")
	if err != nil {
		a.renderError(w, r, err)
		return
	}
	a.execute(w, r, tmpl, name, data, http.StatusOK)
}

func (a *app) execute(w http.ResponseWriter, r *http.Request, tmpl *template.Template, name string, data any, status int) {
	// buffer so a failing template never leaves a half-written 200
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		a.renderError(w, r, fmt.Errorf("template exec error: %w", err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (a *app) renderError(w http.ResponseWriter, r *http.Request, err error) {
	observability.FromContext(r.Context()).Error("render", zap.Error(err))
	mw.Error(w, r, http.StatusInternalServerError, "internal server error")
}
