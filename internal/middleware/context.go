package middleware

import (
	"context"
)

// context keys are unexported to avoid collisions
type ctxKey string

const (
	ctxKeyHTMX   ctxKey = "htmx"
	ctxKeyLocale ctxKey = "locale"
)

// WithLocale stores the active locale in context.
func WithLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, ctxKeyLocale, locale)
}

// LocaleFromContext returns the active locale if one was resolved.
func LocaleFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ctxKeyLocale).(string)
	return v, ok && v != ""
}
