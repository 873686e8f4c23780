package nav

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func upper(key string) string { return strings.ToUpper(key) }

func paths(crumbs []Crumb) []string {
	out := make([]string, 0, len(crumbs))
	for _, c := range crumbs {
		out = append(out, c.Path)
	}
	return out
}

func TestBuildCrumbs(t *testing.T) {
	t.Parallel()

	slug := "/en/eth2/proof-of-stake/"
	crumbs := BuildCrumbs(slug, "en", slug, 0, upper)
	require.Len(t, crumbs, 3)
	assert.Equal(t, []string{"/", "/eth2/", "/eth2/proof-of-stake/"}, paths(crumbs))
	assert.Equal(t, "PAGE-INDEX-META-TITLE", crumbs[0].Label)
	assert.Equal(t, "ETH2", crumbs[1].Label)
	assert.Equal(t, "PROOF-OF-STAKE", crumbs[2].Label)
	assert.Equal(t, "/en/eth2/", crumbs[1].Href)
	assert.False(t, crumbs[0].Current)
	assert.False(t, crumbs[1].Current)
	assert.True(t, crumbs[2].Current)
}

func TestBuildCrumbsStartDepth(t *testing.T) {
	t.Parallel()

	slug := "/en/eth2/proof-of-stake/"
	crumbs := BuildCrumbs(slug, "en", slug, 1, upper)
	assert.Equal(t, []string{"/eth2/", "/eth2/proof-of-stake/"}, paths(crumbs))

	assert.Empty(t, BuildCrumbs(slug, "en", slug, 10, upper))
	assert.Len(t, BuildCrumbs(slug, "en", slug, -3, upper), 3)
}

func TestBuildCrumbsHomepageHasNoHome(t *testing.T) {
	t.Parallel()

	crumbs := BuildCrumbs("/en/eth2/", "en", "/", 0, upper)
	assert.Equal(t, []string{"/eth2/"}, paths(crumbs))

	assert.Empty(t, BuildCrumbs("/en/", "en", "/", 0, upper))

	// the slug itself being "/" does not suppress home; only the current path does
	home := BuildCrumbs("/en/", "en", "/en/", 0, upper)
	require.Len(t, home, 1)
	assert.True(t, home[0].Current)
}

func TestBuildCrumbsOtherLocale(t *testing.T) {
	t.Parallel()

	crumbs := BuildCrumbs("/ja/roadmap/vision/", "ja", "/roadmap/vision/", 0, nil)
	assert.Equal(t, []string{"/", "/roadmap/", "/roadmap/vision/"}, paths(crumbs))
	assert.Equal(t, "/ja/roadmap/vision/", crumbs[2].Href)
	assert.Equal(t, "roadmap", crumbs[1].Label)
}

func TestBuildActiveState(t *testing.T) {
	t.Parallel()

	items := Build("en", "/dapps/")
	require.Len(t, items, len(Main))
	for _, it := range items {
		assert.True(t, strings.HasPrefix(it.Href, "/en/"))
		assert.Equal(t, it.Href == "/en/dapps/", it.Active, it.Href)
	}

	items = Build("en", "/developers/learning-tools/")
	for _, it := range items {
		assert.Equal(t, it.LabelKey == "nav-learning-tools", it.Active, it.LabelKey)
	}
}

func TestStripLocale(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "/eth2/", StripLocale("/en/eth2/", "en"))
	assert.Equal(t, "/", StripLocale("/en", "en"))
	assert.Equal(t, "/english/", StripLocale("/english/", "en"))
}
