package catalog

import "strings"

// Shuffler permutes n items in place through swap. *rand.Rand from math/rand/v2
// satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// ListFormatter joins values into a localized conjunction, e.g. "NY and TX".
type ListFormatter func(values []string) string

// DisplayEntry is the card view model handed to templates.
type DisplayEntry struct {
	Key         string
	Title       string
	Description string
	// Caveat is the region exception note, rendered right after Description.
	Caveat     string
	Link       string
	Image      string
	Alt        string
	Background string
	Links      []DisplayLink
}

// DisplayLink is a translated auxiliary link.
type DisplayLink struct {
	Label string
	URL   string
}

// FilterOptions carries the per-request collaborators used by Filter.
type FilterOptions struct {
	// Region enables exception caveats when it equals HomeRegion.
	Region     string
	HomeRegion string
	// ExceptLabelKey prefixes the caveat, e.g. "page-get-eth-exchanges-except".
	ExceptLabelKey string
	Translate      func(key string) string
	FormatList     ListFormatter
	// Shuffler is required for OrderShuffled results; without one results stay in source order.
	Shuffler Shuffler
}

// Filter returns display entries whose categories contain active. An empty
// result is valid and is returned as an empty, non-nil slice.
func Filter(c Catalog, active Category, opts FilterOptions) []DisplayEntry {
	t := opts.Translate
	if t == nil {
		t = func(key string) string { return key }
	}
	join := opts.FormatList
	if join == nil {
		join = func(values []string) string { return strings.Join(values, ", ") }
	}
	caveats := opts.Region != "" && opts.Region == opts.HomeRegion

	out := make([]DisplayEntry, 0)
	if active == None {
		return out
	}
	for _, e := range c.entries {
		if !e.HasCategory(active) {
			continue
		}
		d := DisplayEntry{
			Key:        e.Key,
			Title:      e.DisplayName,
			Link:       e.ExternalURL,
			Image:      e.ImageRef,
			Background: e.Background,
		}
		if e.Description != "" {
			d.Description = t(e.Description)
		}
		if e.AltKey != "" {
			d.Alt = t(e.AltKey)
		}
		for _, l := range e.Links {
			if l.URL == "" {
				continue
			}
			d.Links = append(d.Links, DisplayLink{Label: t(l.LabelKey), URL: l.URL})
		}
		if caveats {
			if codes := e.RegionExceptions[opts.Region]; len(codes) > 0 {
				d.Caveat = strings.TrimSpace(t(opts.ExceptLabelKey) + " " + join(codes))
			}
		}
		out = append(out, d)
	}
	if c.OrderFor(active) == OrderShuffled && opts.Shuffler != nil && len(out) > 1 {
		opts.Shuffler.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	}
	return out
}
