package handlers

import (
	"net/url"
	"strings"

	"finitefield.org/catalog-web/internal/catalog"
	"finitefield.org/catalog-web/internal/directory"
	"finitefield.org/catalog-web/internal/nav"
	"finitefield.org/catalog-web/internal/seo"
)

// CatalogRequest is the input of BuildCatalogPage.
type CatalogRequest struct {
	Site       Site
	Page       directory.Page
	Lang       string
	Query      string
	Translate  func(string) string
	FormatList catalog.ListFormatter
	Shuffler   catalog.Shuffler
}

// FilterOption is one selectable category.
type FilterOption struct {
	Value  string
	Label  string
	Emoji  string
	Active bool
	// Href is the canonical page URL for this value, used without JavaScript.
	Href string
	// SelectURL and JumpURL target the selection endpoint for the primary and
	// secondary triggers.
	SelectURL string
	JumpURL   string
}

// BenefitView is a translated category highlight.
type BenefitView struct {
	Emoji       string
	Title       string
	Description string
}

// CatalogPageData is the view model of a filterable catalog page.
type CatalogPageData struct {
	Layout
	Name        string
	Title       string
	Description string
	Param       string
	Anchor      string
	// UsesSelect renders a drop-down instead of buttons; catalogs without a
	// default selection start from a prompt.
	UsesSelect bool
	SelectURL  string
	Selection  catalog.Selection
	Options    []FilterOption
	Entries    []catalog.DisplayEntry
	// Prompt is shown when nothing is selected, Empty when the selection
	// matches no entries.
	Prompt string
	Empty  string

	BenefitsTitle       string
	BenefitsDescription string
	Benefits            []BenefitView
}

// ShowPrompt reports whether the prompt replaces the results.
func (d CatalogPageData) ShowPrompt() bool { return d.Selection.IsNone() }

// ShowEmpty reports whether the empty-state message replaces the results.
func (d CatalogPageData) ShowEmpty() bool {
	return !d.Selection.IsNone() && len(d.Entries) == 0
}

// ResultsID is the DOM id of the results container swapped by htmx.
func (d CatalogPageData) ResultsID() string { return d.Anchor + "-results" }

// BuildCatalogPage resolves the selection from the raw query value and
// filters the page's catalog for display.
func BuildCatalogPage(req CatalogRequest) CatalogPageData {
	t := translator(req.Translate)
	p := req.Page
	tax := p.Catalog.Taxonomy()
	sel := catalog.ResolveSelection(req.Query, tax)

	opts := catalog.FilterOptions{
		HomeRegion:     p.HomeRegion,
		ExceptLabelKey: p.ExceptLabelKey,
		Translate:      t,
		FormatList:     req.FormatList,
		Shuffler:       req.Shuffler,
	}
	if p.HomeRegion != "" {
		opts.Region = string(sel.Active)
	}
	entries := catalog.Filter(p.Catalog, sel.Active, opts)

	path := "/" + strings.Trim(p.Slug, "/") + "/"
	title := t(p.TitleKey)
	data := CatalogPageData{
		Layout:      NewLayout(req.Site, req.Lang, path, title, t(p.DescriptionKey)),
		Name:        p.Name,
		Title:       title,
		Description: t(p.DescriptionKey),
		Param:       p.Param,
		Anchor:      p.Anchor,
		UsesSelect:  tax.Default() == catalog.None,
		SelectURL:   SelectPath(req.Lang, p),
		Selection:   sel,
		Options:     buildOptions(req.Lang, p, sel.Active, t),
		Entries:     entries,
		Empty:       t(p.EmptyKey),
	}
	if p.PromptKey != "" {
		data.Prompt = t(p.PromptKey)
	}

	info := p.Category(sel.Active)
	if info.BenefitsTitleKey != "" {
		data.BenefitsTitle = t(info.BenefitsTitleKey)
		data.BenefitsDescription = t(info.BenefitsDescriptionKey)
		for _, b := range info.Benefits {
			data.Benefits = append(data.Benefits, BenefitView{
				Emoji:       b.Emoji,
				Title:       t(b.TitleKey),
				Description: t(b.DescriptionKey),
			})
		}
	}

	data.withCrumbs(req.Site, nav.BuildCrumbs(nav.LocalePath(req.Lang, path), req.Lang, path, 0, t))
	if len(entries) > 0 {
		items := make([]seo.ListItem, 0, len(entries))
		for _, e := range entries {
			items = append(items, seo.ListItem{Name: e.Title, URL: e.Link})
		}
		data.SEO.JSONLD = append(data.SEO.JSONLD, seo.JSON(seo.ItemList(title, items)))
	}
	return data
}

func buildOptions(lang string, p directory.Page, active catalog.Category, t func(string) string) []FilterOption {
	sync := p.Synchronizer(lang)
	selectPath := SelectPath(lang, p)
	values := p.Catalog.Taxonomy().Values()
	out := make([]FilterOption, 0, len(values))
	for _, v := range values {
		info := p.Category(v)
		q := url.Values{p.Param: {string(v)}}
		out = append(out, FilterOption{
			Value:     string(v),
			Label:     t(info.LabelKey),
			Emoji:     info.Emoji,
			Active:    v == active,
			Href:      sync.Path(v),
			SelectURL: selectPath + "?" + q.Encode(),
			JumpURL:   selectPath + "?" + q.Encode() + "&jump=1",
		})
	}
	return out
}

// SelectPath is the selection endpoint of page p in lang.
func SelectPath(lang string, p directory.Page) string {
	return nav.LocalePath(lang, "/"+strings.Trim(p.Slug, "/")+"/select")
}
