package handlers

import (
	"html/template"
	"time"

	"finitefield.org/catalog-web/internal/cms"
	"finitefield.org/catalog-web/internal/format"
	"finitefield.org/catalog-web/internal/nav"
	"finitefield.org/catalog-web/internal/seo"
)

// ContentPageData is the view model of a markdown page.
type ContentPageData struct {
	Layout
	Title         string
	Description   string
	SummaryPoints []string
	Headings      []cms.Heading
	// Body is sanitized by the content store before it reaches the template.
	Body    template.HTML
	Updated string
	// Fallback marks a page served in the default locale; FallbackNotice
	// explains that to the reader.
	Fallback       bool
	FallbackNotice string
	// ContentLang is the locale of the served file.
	ContentLang string
}

// BuildContentPage wraps a rendered page with layout and breadcrumbs.
func BuildContentPage(site Site, lang string, page cms.Page, t func(string) string) ContentPageData {
	t = translator(t)
	path := "/" + page.Slug + "/"
	data := ContentPageData{
		Layout:        NewLayout(site, lang, path, page.Title, page.Description),
		Title:         page.Title,
		Description:   page.Description,
		SummaryPoints: page.SummaryPoints,
		Headings:      page.Headings,
		Body:          template.HTML(page.HTML), //nolint:gosec // sanitized by cms
		Updated:       format.FmtDate(page.UpdatedAt, lang),
		Fallback:      page.Fallback,
		ContentLang:   page.Lang,
	}
	if page.Fallback {
		data.FallbackNotice = t("page-translation-fallback")
	}
	data.withCrumbs(site, nav.BuildCrumbs(nav.LocalePath(lang, path), lang, path, page.BreadcrumbStartDepth, t))
	if !page.UpdatedAt.IsZero() {
		data.SEO.OG.Type = "article"
		data.SEO.JSONLD = append(data.SEO.JSONLD, seo.JSON(seo.Article(
			page.Title, data.SEO.Canonical, page.Lang, page.UpdatedAt.UTC().Format(time.RFC3339))))
	}
	return data
}
