package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"finitefield.org/catalog-web/internal/config"
)

// newTestRouter builds the application router against the repository's
// templates, locales and content with a fixed shuffle seed.
func newTestRouter(t *testing.T, extra map[string]string) http.Handler {
	t.Helper()
	env := map[string]string{
		"WEB_TEMPLATES_DIR": "../../templates",
		"WEB_PUBLIC_DIR":    "../../public",
		"WEB_LOCALES_DIR":   "../../locales",
		"WEB_CONTENT_DIR":   "../../content",
		"WEB_SITE_URL":      "https://ethereum.example",
		"WEB_SHUFFLE_SEED":  "42",
	}
	for k, v := range extra {
		env[k] = v
	}
	cfg, err := config.Load(t.Context(), config.WithEnvMap(env), config.WithoutSystemEnv(), config.WithEnvFile(""))
	require.NoError(t, err)

	a, cleanup, err := newApp(cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(cleanup)
	return a.routes()
}

func get(t *testing.T, h http.Handler, target string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func document(t *testing.T, rec *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)
	return doc
}

func entryKeys(doc *goquery.Document) []string {
	var keys []string
	doc.Find("li.catalog-entry").Each(func(_ int, s *goquery.Selection) {
		keys = append(keys, s.AttrOr("data-key", ""))
	})
	return keys
}

var htmxHeaders = map[string]string{"HX-Request": "true"}

func TestHealthzOK(t *testing.T) {
	srv := newTestRouter(t, nil)
	rec := get(t, srv, "/healthz", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", strings.TrimSpace(rec.Body.String()))
}

func TestRootRedirectsToPreferredLocale(t *testing.T) {
	srv := newTestRouter(t, nil)

	rec := get(t, srv, "/", map[string]string{"Accept-Language": "ja-JP,ja;q=0.9,en;q=0.5"})
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/ja/", rec.Header().Get("Location"))

	rec = get(t, srv, "/", nil)
	assert.Equal(t, "/en/", rec.Header().Get("Location"))
}

func TestUnknownLocaleIsNotFound(t *testing.T) {
	srv := newTestRouter(t, nil)
	rec := get(t, srv, "/de/dapps/", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHomePageRenders(t *testing.T) {
	srv := newTestRouter(t, nil)
	rec := get(t, srv, "/en/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "en", rec.Header().Get("Content-Language"))

	doc := document(t, rec)
	assert.Equal(t, "Home | ethereum.org", doc.Find("title").Text())
	assert.Equal(t, "https://ethereum.example/en/", doc.Find(`link[rel="canonical"]`).AttrOr("href", ""))
	assert.Equal(t, 4, doc.Find(`link[rel="alternate"]`).Length())
	assert.Equal(t, 0, doc.Find("nav.breadcrumbs").Length())
	assert.Equal(t, 4, doc.Find("a.card").Length())

	var labels []string
	doc.Find(".site-nav a").Each(func(_ int, s *goquery.Selection) { labels = append(labels, s.Text()) })
	assert.Contains(t, labels, "Dapps")

	// stats have no backend and render the placeholder
	doc.Find(".network-stats dd").Each(func(_ int, s *goquery.Selection) {
		assert.Equal(t, "Loading error", s.Text())
	})
}

func TestHomePageLocalized(t *testing.T) {
	srv := newTestRouter(t, nil)
	doc := document(t, get(t, srv, "/ja/", nil))
	assert.Equal(t, "ja", doc.Find("html").AttrOr("lang", ""))
	assert.Contains(t, doc.Find("title").Text(), "ホーム")
}

func TestDappsDefaultSelection(t *testing.T) {
	srv := newTestRouter(t, nil)
	rec := get(t, srv, "/en/dapps/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	doc := document(t, rec)

	assert.Equal(t, "finance", doc.Find(".catalog-filter a.active").AttrOr("data-value", ""))
	assert.Equal(t, 0, doc.Find("[data-scroll-to]").Length())
	assert.Contains(t, entryKeys(doc), "aave")
	assert.NotContains(t, entryKeys(doc), "axie")
	assert.Equal(t, "Decentralized finance", doc.Find(".catalog-benefits h3").Text())
}

func TestDappsQuerySelectionScrollsOnce(t *testing.T) {
	srv := newTestRouter(t, nil)
	doc := document(t, get(t, srv, "/en/dapps/?category=gaming", nil))

	assert.Equal(t, "gaming", doc.Find(".catalog-filter a.active").AttrOr("data-value", ""))
	assert.Equal(t, "explore", doc.Find("article.catalog-page").AttrOr("data-scroll-to", ""))
	keys := entryKeys(doc)
	assert.Contains(t, keys, "axie")
	assert.NotContains(t, keys, "aave")

	jump := doc.Find(`.catalog-jump a[data-value="social"]`)
	assert.Equal(t, "/en/dapps/?category=social#explore", jump.AttrOr("href", ""))
	assert.Equal(t, "/en/dapps/select?category=social&jump=1", jump.AttrOr("hx-get", ""))
}

func TestDappsUnknownCategoryFallsBack(t *testing.T) {
	srv := newTestRouter(t, nil)
	doc := document(t, get(t, srv, "/en/dapps/?category=unknown", nil))
	assert.Equal(t, "finance", doc.Find(".catalog-filter a.active").AttrOr("data-value", ""))
}

func TestSelectPrimaryReplacesURL(t *testing.T) {
	srv := newTestRouter(t, nil)
	rec := get(t, srv, "/en/dapps/select?category=gaming", htmxHeaders)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/en/dapps/?category=gaming", rec.Header().Get("HX-Replace-Url"))
	assert.Empty(t, rec.Header().Get("HX-Redirect"))

	body := rec.Body.String()
	assert.NotContains(t, body, "<html")
	doc := document(t, rec)
	assert.Equal(t, 1, doc.Find("section#explore-results").Length())
	assert.Contains(t, entryKeys(doc), "axie")
}

func TestSelectPrimaryInvalidValueUsesDefault(t *testing.T) {
	srv := newTestRouter(t, nil)
	rec := get(t, srv, "/en/dapps/select?category=bogus", htmxHeaders)
	assert.Equal(t, "/en/dapps/?category=finance", rec.Header().Get("HX-Replace-Url"))
}

func TestSelectJumpRedirectsToAnchor(t *testing.T) {
	srv := newTestRouter(t, nil)
	rec := get(t, srv, "/en/dapps/select?category=gaming&jump=1", htmxHeaders)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "/en/dapps/?category=gaming#explore", rec.Header().Get("HX-Redirect"))
	assert.Empty(t, rec.Header().Get("HX-Replace-Url"))
}

func TestSelectWithoutHTMXRedirects(t *testing.T) {
	srv := newTestRouter(t, nil)

	rec := get(t, srv, "/en/layer-2/select?rollup=zk", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/en/layer-2/?rollup=zk", rec.Header().Get("Location"))

	rec = get(t, srv, "/ja/developers/learning-tools/select?category=games&jump=true", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/ja/developers/learning-tools/?category=games#tools", rec.Header().Get("Location"))
}

func TestGetEthPromptAndCaveats(t *testing.T) {
	srv := newTestRouter(t, nil)

	doc := document(t, get(t, srv, "/en/get-eth/", nil))
	assert.Equal(t, "Type where you live…", doc.Find(".catalog-prompt").Text())
	assert.Equal(t, 0, doc.Find("li.catalog-entry").Length())
	assert.Equal(t, 1, doc.Find(`select[name="country"]`).Length())

	doc = document(t, get(t, srv, "/en/get-eth/?country=United+States+of+America+%28USA%29", nil))
	kraken := doc.Find(`li.catalog-entry[data-key="kraken"] .catalog-caveat`)
	assert.Equal(t, "Except NY and WA", kraken.Text())
	assert.Equal(t, "United States of America (USA)", doc.Find(`select[name="country"] option[selected]`).AttrOr("value", ""))

	doc = document(t, get(t, srv, "/en/get-eth/?country=Canada", nil))
	assert.Equal(t, 0, doc.Find(".catalog-caveat").Length())
	assert.NotEmpty(t, entryKeys(doc))

	doc = document(t, get(t, srv, "/en/get-eth/?country=United+States+Minor+Islands", nil))
	assert.Equal(t, 1, doc.Find(".catalog-empty").Length())
}

func TestShuffleSeedIsReproducible(t *testing.T) {
	srv := newTestRouter(t, nil)
	first := entryKeys(document(t, get(t, srv, "/en/developers/learning-tools/", nil)))
	second := entryKeys(document(t, get(t, srv, "/en/developers/learning-tools/", nil)))
	assert.Len(t, first, 5)
	assert.Equal(t, first, second)
}

func TestLayer2Links(t *testing.T) {
	srv := newTestRouter(t, nil)
	doc := document(t, get(t, srv, "/en/layer-2/", nil))
	arbitrum := doc.Find(`li.catalog-entry[data-key="arbitrum"]`)
	require.Equal(t, 1, arbitrum.Length())
	assert.Equal(t, 5, arbitrum.Find(".catalog-links a").Length())
	assert.Equal(t, 4, doc.Find(`li.catalog-entry[data-key="boba"] .catalog-links a`).Length())
}

func TestCatalogTrailingSlashRedirect(t *testing.T) {
	srv := newTestRouter(t, nil)
	rec := get(t, srv, "/en/dapps?category=gaming", nil)
	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "/en/dapps/?category=gaming", rec.Header().Get("Location"))
}

func TestContentPage(t *testing.T) {
	srv := newTestRouter(t, nil)
	rec := get(t, srv, "/en/what-is-ethereum/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	doc := document(t, rec)

	assert.Equal(t, "What is Ethereum?", doc.Find("article.content-page > h1").Text())
	assert.Equal(t, 3, doc.Find(".summary-points li").Length())
	assert.Equal(t, "#a-world-computer", doc.Find(".toc a").First().AttrOr("href", ""))
	assert.Equal(t, 1, doc.Find(".content-body table").Length())
	assert.Equal(t, 0, doc.Find(".translation-fallback").Length())

	var crumbs []string
	doc.Find(".breadcrumbs li").Each(func(_ int, s *goquery.Selection) { crumbs = append(crumbs, strings.TrimSpace(s.Text())) })
	assert.Equal(t, []string{"Home", "What is Ethereum?"}, crumbs)
}

func TestContentPageLocaleFallback(t *testing.T) {
	srv := newTestRouter(t, nil)

	doc := document(t, get(t, srv, "/ja/what-is-ethereum/", nil))
	assert.Equal(t, "イーサリアムとは", doc.Find("article.content-page > h1").Text())
	assert.Equal(t, 0, doc.Find(".translation-fallback").Length())

	rec := get(t, srv, "/es/what-is-ethereum/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "es", rec.Header().Get("Content-Language"))
	doc = document(t, rec)
	assert.Equal(t, "What is Ethereum?", doc.Find("article.content-page > h1").Text())
	assert.Equal(t, "en", doc.Find("article.content-page").AttrOr("lang", ""))
	assert.Contains(t, doc.Find(".translation-fallback").Text(), "no está traducida")
	assert.Equal(t, "https://ethereum.example/es/what-is-ethereum/", doc.Find(`link[rel="canonical"]`).AttrOr("href", ""))
}

func TestContentBreadcrumbStartDepth(t *testing.T) {
	srv := newTestRouter(t, nil)
	doc := document(t, get(t, srv, "/en/eth2/proof-of-stake/", nil))

	var crumbs []string
	doc.Find(".breadcrumbs li").Each(func(_ int, s *goquery.Selection) { crumbs = append(crumbs, strings.TrimSpace(s.Text())) })
	assert.Equal(t, []string{"Ethereum upgrades", "Proof-of-stake"}, crumbs)
	assert.Equal(t, "/en/eth2/", doc.Find(".breadcrumbs a").First().AttrOr("href", ""))
}

func TestContentNotFound(t *testing.T) {
	srv := newTestRouter(t, nil)
	for _, target := range []string{"/en/no-such-page/", "/en/../../etc/passwd"} {
		rec := get(t, srv, target, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code, target)
	}
	doc := document(t, get(t, srv, "/en/no-such-page/", nil))
	assert.Equal(t, "Resource not found", doc.Find(".not-found h1").Text())
	assert.Equal(t, "noindex", doc.Find(`meta[name="robots"]`).AttrOr("content", ""))
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestRouter(t, nil)
	get(t, srv, "/en/dapps/?category=gaming", nil)
	get(t, srv, "/en/what-is-ethereum/", nil)
	get(t, srv, "/en/what-is-ethereum/", nil)

	rec := get(t, srv, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	text := string(body)
	assert.Contains(t, text, `catalog_web_catalog_selections_total{catalog="dapps",category="gaming",trigger="page"} 1`)
	assert.Contains(t, text, `catalog_web_content_cache_lookups_total{result="hit"} 1`)
	assert.Contains(t, text, `route="/{lang}/dapps/"`)
}

func TestMetricsDisabled(t *testing.T) {
	srv := newTestRouter(t, map[string]string{"WEB_METRICS_ENABLED": "false"})
	rec := get(t, srv, "/metrics", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAssetsServed(t *testing.T) {
	srv := newTestRouter(t, nil)
	rec := get(t, srv, "/assets/js/catalog.js", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "HEADER_OFFSET = 76")
	assert.NotEmpty(t, rec.Header().Get("ETag"))
}
