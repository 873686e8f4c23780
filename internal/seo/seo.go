package seo

import "strings"

type OpenGraph struct {
	Title       string
	Description string
	Image       string
	Type        string
	URL         string
	SiteName    string
	Locale      string
}

type Twitter struct {
	Card  string
	Site  string
	Image string
}

// Alternate is one hreflang link.
type Alternate struct {
	Hreflang string
	Href     string
}

type Meta struct {
	Title       string
	Description string
	Canonical   string
	Robots      string
	OG          OpenGraph
	Twitter     Twitter
	Alternates  []Alternate
	JSONLD      []string
}

// Absolute joins the site base URL and a root-relative path.
func Absolute(siteURL, p string) string {
	siteURL = strings.TrimRight(siteURL, "/")
	if p == "" {
		return siteURL + "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return siteURL + p
}

// Alternates lists the page at path (locale-relative, e.g. "/dapps/") in every
// locale plus an x-default entry pointing at defaultLocale.
func Alternates(siteURL string, locales []string, defaultLocale, path string) []Alternate {
	path = "/" + strings.TrimLeft(path, "/")
	out := make([]Alternate, 0, len(locales)+1)
	for _, l := range locales {
		out = append(out, Alternate{Hreflang: l, Href: Absolute(siteURL, "/"+l+path)})
	}
	if defaultLocale != "" {
		out = append(out, Alternate{Hreflang: "x-default", Href: Absolute(siteURL, "/"+defaultLocale+path)})
	}
	return out
}

// New builds page metadata with canonical and Open Graph fields filled from
// the same values.
func New(siteName, siteURL, locale, path, title, description string) Meta {
	canonical := Absolute(siteURL, "/"+locale+"/"+strings.TrimLeft(path, "/"))
	fullTitle := title
	if siteName != "" && title != "" && title != siteName {
		fullTitle = title + " | " + siteName
	}
	return Meta{
		Title:       fullTitle,
		Description: description,
		Canonical:   canonical,
		Robots:      "index, follow",
		OG: OpenGraph{
			Title:       title,
			Description: description,
			Type:        "website",
			URL:         canonical,
			SiteName:    siteName,
			Locale:      locale,
		},
		Twitter: Twitter{Card: "summary_large_image"},
	}
}
