package catalog

import "strings"

// Selection is the active filter for one page render, derived from the URL.
type Selection struct {
	Active Category
	// FromQuery is true when the request carried a non-empty filter parameter.
	FromQuery bool
	// ScrollToAnchor asks the page to scroll its anchor into view once on load.
	ScrollToAnchor bool
}

// IsNone reports whether nothing is selected.
func (s Selection) IsNone() bool { return s.Active == None }

// ResolveSelection derives the active filter from a raw query value.
//
// Absent or empty input yields the taxonomy default. Only the first
// comma-separated token is considered; unknown tokens silently fall back to the
// default so stale or hand-edited links never fail.
func ResolveSelection(queryValue string, tax Taxonomy) Selection {
	raw := strings.TrimSpace(queryValue)
	if raw == "" {
		return Selection{Active: tax.Default()}
	}
	first, _, _ := strings.Cut(raw, ",")
	sel := Selection{Active: tax.Default(), FromQuery: true}
	if c, ok := tax.Parse(first); ok {
		sel.Active = c
	}
	sel.ScrollToAnchor = sel.Active != tax.Default()
	return sel
}
