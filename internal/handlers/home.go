package handlers

import (
	"context"
	"errors"
	"strings"

	"finitefield.org/catalog-web/internal/directory"
	"finitefield.org/catalog-web/internal/format"
	"finitefield.org/catalog-web/internal/nav"
	"finitefield.org/catalog-web/internal/stats"
)

// ErrStatsUnavailable is returned by stats sources that have no data.
var ErrStatsUnavailable = errors.New("handlers: stats unavailable")

// StatsSource supplies network statistics rendered on the home page, keyed
// by the stats.Key* names. Values come from an external service; a failure or
// a missing key renders as a placeholder.
type StatsSource interface {
	Values(ctx context.Context) (map[string]string, error)
}

// NoStats is a StatsSource without a backend.
type NoStats struct{}

// Values always fails with ErrStatsUnavailable.
func (NoStats) Values(context.Context) (map[string]string, error) { return nil, ErrStatsUnavailable }

// Card links to one catalog page.
type Card struct {
	Href        string
	Title       string
	Description string
	Count       string
}

// StatView is a rendered statistic.
type StatView struct {
	Label string
	Value string
}

// HomeData is the view model for the home page.
type HomeData struct {
	Layout
	Title   string
	Message string
	Cards   []Card
	Stats   []StatView
}

// BuildHomeData constructs the view model for the landing page.
func BuildHomeData(ctx context.Context, site Site, lang string, source StatsSource, t func(string) string) HomeData {
	t = translator(t)
	if source == nil {
		source = NoStats{}
	}
	title := t("page-index-meta-title")
	data := HomeData{
		Layout:  NewLayout(site, lang, "/", title, t("page-index-meta-description")),
		Title:   title,
		Message: t("page-index-title"),
	}
	for _, p := range directory.Pages() {
		data.Cards = append(data.Cards, Card{
			Href:        nav.LocalePath(lang, "/"+strings.Trim(p.Slug, "/")+"/"),
			Title:       t(p.TitleKey),
			Description: t(p.DescriptionKey),
			Count:       format.Count(int64(p.Catalog.Len()), lang),
		})
	}
	placeholder := t("page-index-network-stats-error")
	values, err := source.Values(ctx)
	for _, key := range stats.Keys {
		data.Stats = append(data.Stats, StatView{
			Label: t("page-index-network-stats-" + key),
			Value: format.ValueOrPlaceholder(values[key], err, placeholder),
		})
	}
	return data
}
