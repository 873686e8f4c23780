// Package handlers builds the view models rendered by the web templates.
package handlers

import (
	"strings"

	"finitefield.org/catalog-web/internal/nav"
	"finitefield.org/catalog-web/internal/seo"
)

// Analytics holds client instrumentation configuration surfaced to templates.
type Analytics struct {
	GA4MeasurementID string // e.g. G-XXXXXXXXXX
	GTMContainerID   string // e.g. GTM-XXXXXXX
	Debug            bool
}

// Site carries the per-process settings every view model needs.
type Site struct {
	Name          string
	URL           string
	DefaultLocale string
	Locales       []string
	Analytics     Analytics
}

// LocaleLink is an entry of the language switcher.
type LocaleLink struct {
	Code   string
	Href   string
	Active bool
}

// Layout holds the fields shared by every full page.
type Layout struct {
	Lang        string
	SiteName    string
	SEO         seo.Meta
	Analytics   Analytics
	Path        string // locale-stripped, e.g. "/dapps/"
	Nav         []nav.RenderedItem
	Breadcrumbs []nav.Crumb
	Locales     []LocaleLink
}

// NewLayout fills the shared layout for a page at the locale-stripped path.
func NewLayout(site Site, lang, path, title, description string) Layout {
	path = normalizePath(path)
	meta := seo.New(site.Name, site.URL, lang, path, title, description)
	meta.Alternates = seo.Alternates(site.URL, site.Locales, site.DefaultLocale, path)
	meta.JSONLD = append(meta.JSONLD, seo.JSON(seo.Organization(site.Name, seo.Absolute(site.URL, "/"), "")))

	locales := make([]LocaleLink, 0, len(site.Locales))
	for _, l := range site.Locales {
		locales = append(locales, LocaleLink{Code: l, Href: nav.LocalePath(l, path), Active: l == lang})
	}
	return Layout{
		Lang:      lang,
		SiteName:  site.Name,
		SEO:       meta,
		Analytics: site.Analytics,
		Path:      path,
		Nav:       nav.Build(lang, path),
		Locales:   locales,
	}
}

// withCrumbs attaches breadcrumbs and their BreadcrumbList JSON-LD.
func (l *Layout) withCrumbs(site Site, crumbs []nav.Crumb) {
	l.Breadcrumbs = crumbs
	if len(crumbs) == 0 {
		return
	}
	items := make([]seo.BreadcrumbItem, 0, len(crumbs))
	for _, c := range crumbs {
		items = append(items, seo.BreadcrumbItem{Name: c.Label, Item: seo.Absolute(site.URL, c.Href)})
	}
	l.SEO.JSONLD = append(l.SEO.JSONLD, seo.JSON(seo.BreadcrumbList(items)))
}

func normalizePath(p string) string {
	p = "/" + strings.Trim(p, "/")
	if p != "/" {
		p += "/"
	}
	return p
}

func translator(t func(string) string) func(string) string {
	if t == nil {
		return func(key string) string { return key }
	}
	return t
}
