package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"finitefield.org/catalog-web/internal/catalog"
	"finitefield.org/catalog-web/internal/cms"
	"finitefield.org/catalog-web/internal/directory"
	"finitefield.org/catalog-web/internal/format"
	"finitefield.org/catalog-web/internal/handlers"
	"finitefield.org/catalog-web/internal/metrics"
	mw "finitefield.org/catalog-web/internal/middleware"
	"finitefield.org/catalog-web/internal/observability"
)

func (a *app) lang(r *http.Request) string {
	return mw.Lang(r, a.bundle.Fallback())
}

// home renders the landing page.
func (a *app) home(w http.ResponseWriter, r *http.Request) {
	lang := a.lang(r)
	vm := handlers.BuildHomeData(r.Context(), a.site(), lang, a.stats, a.bundle.Translator(lang))
	a.renderPage(w, r, "home", vm)
}

func (a *app) catalogData(r *http.Request, page directory.Page) handlers.CatalogPageData {
	lang := a.lang(r)
	return handlers.BuildCatalogPage(handlers.CatalogRequest{
		Site:       a.site(),
		Page:       page,
		Lang:       lang,
		Query:      r.URL.Query().Get(page.Param),
		Translate:  a.bundle.Translator(lang),
		FormatList: format.Lister(lang),
		Shuffler:   a.shuffler(),
	})
}

// catalogPage renders the full page for the selection carried in the URL.
func (a *app) catalogPage(page directory.Page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vm := a.catalogData(r, page)
		a.metrics.RecordSelection(page.Name, string(vm.Selection.Active), metrics.TriggerPage)
		a.renderPage(w, r, "catalog", vm)
	}
}

// catalogSelect applies a filter change. A primary selection from htmx swaps
// the results and replaces the address bar entry; a jump navigates to the
// canonical URL with the anchor fragment. Clients without htmx are redirected.
func (a *app) catalogSelect(page directory.Page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lang := a.lang(r)
		jump, _ := strconv.ParseBool(r.URL.Query().Get("jump"))
		sel := catalog.ResolveSelection(r.URL.Query().Get(page.Param), page.Catalog.Taxonomy())
		nav := page.Synchronizer(lang).Apply(sel.Active, jump)

		trigger := metrics.TriggerPrimary
		if jump {
			trigger = metrics.TriggerJump
		}
		a.metrics.RecordSelection(page.Name, string(sel.Active), trigger)
		observability.FromContext(r.Context()).Debug("catalog selection",
			zap.String("catalog", page.Name),
			zap.String("category", string(sel.Active)),
			zap.Stringer("mode", nav.Mode),
		)

		if nav.Mode == catalog.NavigateAnchorJump || !mw.IsHTMX(r.Context()) {
			mw.Redirect(w, r, nav.Path)
			return
		}
		mw.ReplaceURL(w, nav.Path)
		a.renderFragment(w, r, "catalog_results", a.catalogData(r, page))
	}
}

// contentPage renders a markdown page below the locale prefix.
func (a *app) contentPage(w http.ResponseWriter, r *http.Request) {
	lang := a.lang(r)
	page, err := a.content.Page(r.Context(), chi.URLParam(r, "*"), lang)
	if err != nil {
		if errors.Is(err, cms.ErrNotFound) {
			a.notFound(w, r)
			return
		}
		observability.FromContext(r.Context()).Error("content page", zap.Error(err))
		mw.Error(w, r, http.StatusInternalServerError, "failed to load page")
		return
	}
	vm := handlers.BuildContentPage(a.site(), lang, page, a.bundle.Translator(lang))
	a.renderPage(w, r, "content", vm)
}

func (a *app) notFound(w http.ResponseWriter, r *http.Request) {
	lang := a.lang(r)
	t := a.bundle.Translator(lang)
	vm := handlers.NewLayout(a.site(), lang, "/", t("page-not-found-title"), "")
	vm.SEO.Robots = "noindex"
	a.renderPageStatus(w, r, "not_found", vm, http.StatusNotFound)
}
