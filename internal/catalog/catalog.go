// Package catalog implements the filterable, localized card listings shown on
// the dApps, exchanges, layer-2 and learning-tools pages.
//
// A Catalog is fixed at build time and never mutated. Pages derive a Selection
// from the request URL, filter the catalog with it, and hand the resulting
// DisplayEntry list to templates.
package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDuplicateKey is returned when two entries share a key.
var ErrDuplicateKey = errors.New("catalog: duplicate entry key")

// Ordering controls how filtered results are ordered.
type Ordering int

const (
	// OrderSource keeps entries in their authored order.
	OrderSource Ordering = iota
	// OrderShuffled permutes results on every call so position implies no ranking.
	OrderShuffled
)

func (o Ordering) String() string {
	switch o {
	case OrderShuffled:
		return "shuffled"
	default:
		return "source"
	}
}

// Link is an auxiliary outbound link attached to an entry (docs, explorer, bridge).
type Link struct {
	LabelKey string
	URL      string
}

// Entry is a single authored catalog item.
type Entry struct {
	Key         string
	DisplayName string
	// Description is a translation key; an empty value renders no description.
	Description string
	ExternalURL string
	ImageRef    string
	AltKey      string
	Background  string
	Categories  []Category
	Links       []Link
	// RegionExceptions maps a region to the sub-region codes where the entry is unavailable.
	RegionExceptions map[string][]string
}

// HasCategory reports whether c is one of the entry's categories.
func (e Entry) HasCategory(c Category) bool {
	if c == None {
		return false
	}
	for _, ec := range e.Categories {
		if ec == c {
			return true
		}
	}
	return false
}

// Exceptions returns the exception codes recorded for region.
func (e Entry) Exceptions(region string) []string {
	codes := e.RegionExceptions[region]
	if len(codes) == 0 {
		return nil
	}
	out := make([]string, len(codes))
	copy(out, codes)
	return out
}

// Catalog is an immutable, ordered set of entries sharing one taxonomy.
type Catalog struct {
	name     string
	taxonomy Taxonomy
	ordering Ordering
	// byCategory overrides ordering for results filtered by one category.
	byCategory map[Category]Ordering
	entries    []Entry
	byKey      map[string]int
}

// New validates entries against the taxonomy and builds a catalog.
func New(name string, taxonomy Taxonomy, ordering Ordering, entries ...Entry) (Catalog, error) {
	c := Catalog{
		name:     name,
		taxonomy: taxonomy,
		ordering: ordering,
		entries:  make([]Entry, 0, len(entries)),
		byKey:    make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		key := strings.TrimSpace(e.Key)
		if key == "" {
			return Catalog{}, fmt.Errorf("catalog %s: entry %q has no key", name, e.DisplayName)
		}
		if _, dup := c.byKey[key]; dup {
			return Catalog{}, fmt.Errorf("catalog %s: %w: %s", name, ErrDuplicateKey, key)
		}
		for _, cat := range e.Categories {
			if !taxonomy.Contains(cat) {
				return Catalog{}, fmt.Errorf("catalog %s: entry %s: %w: %q", name, key, ErrUnknownCategory, cat)
			}
		}
		e.Key = key
		c.byKey[key] = len(c.entries)
		c.entries = append(c.entries, cloneEntry(e))
	}
	return c, nil
}

// Name returns the catalog identifier.
func (c Catalog) Name() string { return c.name }

// Taxonomy returns the catalog's category set.
func (c Catalog) Taxonomy() Taxonomy { return c.taxonomy }

// Ordering returns the catalog-wide result ordering policy.
func (c Catalog) Ordering() Ordering { return c.ordering }

// OrderFor returns the ordering applied to results filtered by cat.
func (c Catalog) OrderFor(cat Category) Ordering {
	if o, ok := c.byCategory[cat]; ok {
		return o
	}
	return c.ordering
}

// WithCategoryOrdering returns a copy of c whose results for cat use o
// instead of the catalog-wide ordering.
func (c Catalog) WithCategoryOrdering(cat Category, o Ordering) (Catalog, error) {
	if !c.taxonomy.Contains(cat) {
		return Catalog{}, fmt.Errorf("catalog %s: ordering: %w: %q", c.name, ErrUnknownCategory, cat)
	}
	m := make(map[Category]Ordering, len(c.byCategory)+1)
	for k, v := range c.byCategory {
		m[k] = v
	}
	m[cat] = o
	c.byCategory = m
	return c, nil
}

// Len reports the number of entries.
func (c Catalog) Len() int { return len(c.entries) }

// Entries returns a copy of all entries in source order.
func (c Catalog) Entries() []Entry {
	out := make([]Entry, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, cloneEntry(e))
	}
	return out
}

// Entry looks up an entry by key.
func (c Catalog) Entry(key string) (Entry, bool) {
	i, ok := c.byKey[key]
	if !ok {
		return Entry{}, false
	}
	return cloneEntry(c.entries[i]), true
}

// Counts returns the number of entries per category.
func (c Catalog) Counts() map[Category]int {
	out := make(map[Category]int, c.taxonomy.Len())
	for _, e := range c.entries {
		for _, cat := range e.Categories {
			out[cat]++
		}
	}
	return out
}

func cloneEntry(e Entry) Entry {
	if e.Categories != nil {
		e.Categories = append([]Category(nil), e.Categories...)
	}
	if e.Links != nil {
		e.Links = append([]Link(nil), e.Links...)
	}
	if e.RegionExceptions != nil {
		m := make(map[string][]string, len(e.RegionExceptions))
		for k, v := range e.RegionExceptions {
			m[k] = append([]string(nil), v...)
		}
		e.RegionExceptions = m
	}
	return e
}
