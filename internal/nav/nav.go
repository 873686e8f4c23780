package nav

import (
	"strings"
)

// Item represents a top-level navigation item. Path is locale-relative.
type Item struct {
	Path     string // e.g. "/dapps/"
	LabelKey string // i18n key, e.g. "nav-dapps"
}

// RenderedItem is a view model for templates.
type RenderedItem struct {
	Href     string
	LabelKey string
	Active   bool
}

// Main is the primary navigation definition.
var Main = []Item{
	{Path: "/get-eth/", LabelKey: "nav-get-eth"},
	{Path: "/dapps/", LabelKey: "nav-dapps"},
	{Path: "/layer-2/", LabelKey: "nav-layer-2"},
	{Path: "/developers/learning-tools/", LabelKey: "nav-learning-tools"},
	{Path: "/what-is-ethereum/", LabelKey: "nav-what-is-ethereum"},
}

// Build renders navigation items for locale with active state given the
// locale-stripped current path.
func Build(locale, currentPath string) []RenderedItem {
	if currentPath == "" {
		currentPath = "/"
	}
	items := make([]RenderedItem, 0, len(Main))
	for _, it := range Main {
		items = append(items, RenderedItem{
			Href:     LocalePath(locale, it.Path),
			LabelKey: it.LabelKey,
			Active:   isActive(it.Path, currentPath),
		})
	}
	return items
}

func isActive(itemPath, currentPath string) bool {
	itemPath = strings.TrimSuffix(itemPath, "/")
	currentPath = strings.TrimSuffix(currentPath, "/")
	if itemPath == "" {
		return currentPath == ""
	}
	// match exact or prefix boundary: "/dapps" or "/dapps/..."
	if currentPath == itemPath {
		return true
	}
	return strings.HasPrefix(currentPath, itemPath+"/")
}

// LocalePath prefixes a locale-relative path with /<locale>.
func LocalePath(locale, p string) string {
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if locale == "" {
		return p
	}
	return "/" + locale + p
}

// StripLocale removes a leading /<locale>/ from p. "/en" alone becomes "/".
func StripLocale(p, locale string) string {
	if locale == "" {
		return p
	}
	prefix := "/" + locale + "/"
	if strings.HasPrefix(p, prefix) {
		return "/" + strings.TrimPrefix(p, prefix)
	}
	if p == "/"+locale {
		return "/"
	}
	return p
}
