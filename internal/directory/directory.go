// Package directory holds the hand-authored catalogs rendered by the site and
// the page definitions that bind each catalog to its URL contract.
package directory

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"finitefield.org/catalog-web/internal/catalog"
)

// Benefit is a translated highlight shown for a category.
type Benefit struct {
	Emoji          string
	TitleKey       string
	DescriptionKey string
}

// CategoryInfo carries presentation keys for one category of a page.
type CategoryInfo struct {
	LabelKey               string
	Emoji                  string
	BenefitsTitleKey       string
	BenefitsDescriptionKey string
	Benefits               []Benefit
}

// Page binds a catalog to the page that renders it.
type Page struct {
	Name    string
	Catalog catalog.Catalog
	// Slug is the locale-relative page path without slashes, e.g. "dapps".
	Slug           string
	Param          string
	Anchor         string
	TitleKey       string
	DescriptionKey string
	// PromptKey is shown when nothing is selected.
	PromptKey string
	// EmptyKey is shown when the selection matches no entries.
	EmptyKey       string
	HomeRegion     string
	ExceptLabelKey string
	Categories     map[catalog.Category]CategoryInfo
}

// Synchronizer returns the URL encoder for this page in locale.
func (p Page) Synchronizer(locale string) catalog.Synchronizer {
	return catalog.Synchronizer{Locale: locale, Page: p.Slug, Param: p.Param, Anchor: p.Anchor}
}

// Category returns presentation info for c, defaulting the label to the raw tag.
func (p Page) Category(c catalog.Category) CategoryInfo {
	if info, ok := p.Categories[c]; ok {
		return info
	}
	return CategoryInfo{LabelKey: string(c)}
}

type builder struct {
	name  string
	build func() (Page, error)
}

var builders = []builder{
	{name: "dapps", build: buildDapps},
	{name: "exchanges", build: buildExchanges},
	{name: "layer-2", build: buildLayer2},
	{name: "learning-tools", build: buildLearningTools},
}

// loadRegistry builds the tables on first use. Validate reports its error.
var loadRegistry = sync.OnceValues(func() (map[string]Page, error) {
	return buildAll(builders)
})

func buildAll(bs []builder) (map[string]Page, error) {
	pages := make(map[string]Page, len(bs))
	var errs []error
	for _, b := range bs {
		p, err := b.build()
		if err != nil {
			errs = append(errs, fmt.Errorf("directory: %s: %w", b.name, err))
			continue
		}
		p.Name = b.name
		pages[b.name] = p
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return pages, nil
}

// Validate builds every table and reports all construction errors.
func Validate() error {
	_, err := loadRegistry()
	return err
}

// Names returns registered page names in display order.
func Names() []string {
	out := make([]string, 0, len(builders))
	for _, b := range builders {
		out = append(out, b.name)
	}
	return out
}

// Lookup returns the page registered under name. It reports false for every
// name when the tables fail to build; Validate returns the reason.
func Lookup(name string) (Page, bool) {
	pages, err := loadRegistry()
	if err != nil {
		return Page{}, false
	}
	p, ok := pages[name]
	return p, ok
}

// Pages returns every page in display order, or nil when the tables fail to build.
func Pages() []Page {
	pages, err := loadRegistry()
	if err != nil {
		return nil
	}
	out := make([]Page, 0, len(pages))
	for _, name := range Names() {
		out = append(out, pages[name])
	}
	return out
}

func pageNamed(name string) Page {
	p, _ := Lookup(name)
	return p
}

// Dapps returns the decentralized applications page.
func Dapps() Page { return pageNamed("dapps") }

// Exchanges returns the exchange finder page.
func Exchanges() Page { return pageNamed("exchanges") }

// Layer2 returns the rollups page.
func Layer2() Page { return pageNamed("layer-2") }

// LearningTools returns the developer learning tools page.
func LearningTools() Page { return pageNamed("learning-tools") }

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
