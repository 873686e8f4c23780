package middleware

import (
	"context"
	"net/http"
	"strings"
)

// HTMXInfo captures request metadata from HX-* headers.
type HTMXInfo struct {
	IsHTMX         bool
	IsBoosted      bool
	CurrentURL     string
	Target         string
	TriggerID      string
	TriggerName    string
	HistoryRestore bool
}

// HTMX marks requests coming from htmx so handlers can answer with fragments.
func HTMX(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		info := HTMXInfo{
			IsHTMX:         strings.EqualFold(r.Header.Get("HX-Request"), "true"),
			IsBoosted:      strings.EqualFold(r.Header.Get("HX-Boosted"), "true"),
			CurrentURL:     r.Header.Get("HX-Current-URL"),
			Target:         r.Header.Get("HX-Target"),
			TriggerID:      r.Header.Get("HX-Trigger"),
			TriggerName:    r.Header.Get("HX-Trigger-Name"),
			HistoryRestore: strings.EqualFold(r.Header.Get("HX-History-Restore-Request"), "true"),
		}
		// fragment and full responses share URLs
		w.Header().Add("Vary", "HX-Request")
		ctx := context.WithValue(r.Context(), ctxKeyHTMX, info)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// HTMXInfoFromContext retrieves HTMX metadata; returns zero value if absent.
func HTMXInfoFromContext(ctx context.Context) HTMXInfo {
	info, _ := ctx.Value(ctxKeyHTMX).(HTMXInfo)
	return info
}

// IsHTMX returns whether this is an htmx request. Boosted navigations expect
// full pages and are not treated as fragment requests.
func IsHTMX(ctx context.Context) bool {
	info := HTMXInfoFromContext(ctx)
	return info.IsHTMX && !info.IsBoosted
}

// ReplaceURL asks htmx to replace the current history entry with target
// without adding a new one.
func ReplaceURL(w http.ResponseWriter, target string) {
	w.Header().Set("HX-Replace-Url", target)
}

// Redirect sends the client to target: through HX-Redirect for htmx requests,
// which performs a full navigation and honours the fragment, and through a
// 303 otherwise.
func Redirect(w http.ResponseWriter, r *http.Request, target string) {
	if IsHTMX(r.Context()) {
		w.Header().Set("HX-Redirect", target)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
