package nav

import "strings"

// HomeLabelKey is the translation key of the leading "home" crumb.
const HomeLabelKey = "page-index-meta-title"

// Crumb represents a breadcrumb entry.
type Crumb struct {
	// Path is locale-stripped, e.g. "/eth2/".
	Path string
	// Href is the locale-prefixed link target.
	Href  string
	Label string
	// Current marks the crumb for the page being viewed; it renders without a link.
	Current bool
}

// BuildCrumbs derives breadcrumbs from a page slug.
//
// "/en/eth2/proof-of-stake/" yields home, "/eth2/" and "/eth2/proof-of-stake/".
// Segment labels are looked up with t using the raw segment text. The home
// crumb is omitted when currentPath is exactly "/". startDepth drops that many
// leading crumbs, home included.
func BuildCrumbs(slug, locale, currentPath string, startDepth int, t func(string) string) []Crumb {
	if t == nil {
		t = func(key string) string { return key }
	}
	stripped := StripLocale(slug, locale)
	segments := make([]string, 0, 4)
	for _, s := range strings.Split(stripped, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}

	crumbs := make([]Crumb, 0, len(segments)+1)
	if currentPath != "/" {
		crumbs = append(crumbs, Crumb{Path: "/", Label: t(HomeLabelKey)})
	}
	for i, seg := range segments {
		crumbs = append(crumbs, Crumb{
			Path:  "/" + strings.Join(segments[:i+1], "/") + "/",
			Label: t(seg),
		})
	}

	if startDepth < 0 {
		startDepth = 0
	}
	if startDepth >= len(crumbs) {
		return []Crumb{}
	}
	crumbs = crumbs[startDepth:]
	for i := range crumbs {
		crumbs[i].Href = LocalePath(locale, crumbs[i].Path)
		crumbs[i].Current = crumbs[i].Path == stripped
	}
	return crumbs
}
