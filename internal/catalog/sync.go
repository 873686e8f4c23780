package catalog

import (
	"net/url"
	"strings"
)

// NavigationMode tells the HTTP layer how the browser should apply a new URL.
type NavigationMode int

const (
	// NavigateSoftReplace rewrites the current history entry without reloading.
	NavigateSoftReplace NavigationMode = iota
	// NavigateAnchorJump navigates to the path's fragment; the query update is best-effort.
	NavigateAnchorJump
)

func (m NavigationMode) String() string {
	if m == NavigateAnchorJump {
		return "anchor_jump"
	}
	return "soft_replace"
}

// Navigation is the outcome of applying a selection.
type Navigation struct {
	Path string
	Mode NavigationMode
}

// Synchronizer encodes selections into canonical page URLs.
type Synchronizer struct {
	Locale string
	// Page is the slug below the locale, e.g. "dapps" or "developers/learning-tools".
	Page   string
	Param  string
	Anchor string
}

// Path returns /<locale>/<page>/?<param>=<value>. The parameter is always
// present, including for the default selection.
func (s Synchronizer) Path(value Category) string {
	var b strings.Builder
	b.WriteByte('/')
	if loc := strings.Trim(s.Locale, "/"); loc != "" {
		b.WriteString(loc)
		b.WriteByte('/')
	}
	if page := strings.Trim(s.Page, "/"); page != "" {
		b.WriteString(page)
		b.WriteByte('/')
	}
	b.WriteByte('?')
	b.WriteString(url.QueryEscape(s.Param))
	b.WriteByte('=')
	b.WriteString(url.QueryEscape(string(value)))
	return b.String()
}

// Apply builds the navigation for a user selection. The primary selector
// updates the URL in place; the secondary "jump" trigger appends the anchor
// fragment and navigates to it instead.
func (s Synchronizer) Apply(newFilter Category, secondary bool) Navigation {
	p := s.Path(newFilter)
	if !secondary {
		return Navigation{Path: p, Mode: NavigateSoftReplace}
	}
	if s.Anchor != "" {
		p += "#" + url.PathEscape(s.Anchor)
	}
	return Navigation{Path: p, Mode: NavigateAnchorJump}
}
