package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"finitefield.org/catalog-web/internal/i18n"
	"finitefield.org/catalog-web/internal/observability"
)

// VaryLocale sets Vary header for Accept-Language on dynamic responses
func VaryLocale(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// append to existing Vary if any
		w.Header().Add("Vary", "Accept-Language")
		next.ServeHTTP(w, r)
	})
}

// Locale validates the {lang} path segment against the bundle and stores it in
// the request context. Unsupported locales are answered with 404.
func Locale(bundle *i18n.Bundle) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := strings.ToLower(chi.URLParam(r, "lang"))
			if !bundle.IsSupported(lang) {
				Error(w, r, http.StatusNotFound, "page not found")
				return
			}
			ctx := WithLocale(r.Context(), lang)
			ctx = observability.WithLogger(ctx, observability.FromContext(ctx).With(zap.String("locale", lang)))
			w.Header().Set("Content-Language", lang)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// LocaleRedirect sends requests for the site root to the best matching locale.
func LocaleRedirect(bundle *i18n.Bundle) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lang := bundle.Resolve(r.Header.Get("Accept-Language"))
		w.Header().Add("Vary", "Accept-Language")
		http.Redirect(w, r, "/"+lang+"/", http.StatusFound)
	}
}

// Lang returns the request locale, or fallback when none was resolved.
func Lang(r *http.Request, fallback string) string {
	if lang, ok := LocaleFromContext(r.Context()); ok {
		return lang
	}
	return fallback
}
