package directory

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finitefield.org/catalog-web/internal/catalog"
	"finitefield.org/catalog-web/internal/format"
)

func TestValidate(t *testing.T) {
	require.NoError(t, Validate())
}

func TestBuildAllReportsEveryBrokenTable(t *testing.T) {
	broken := func() (Page, error) {
		_, err := catalog.New("broken", catalog.Taxonomy{}, catalog.OrderSource,
			catalog.Entry{Key: "a"}, catalog.Entry{Key: "a"})
		return Page{}, err
	}
	pages, err := buildAll([]builder{
		{name: "dapps", build: buildDapps},
		{name: "first", build: broken},
		{name: "second", build: broken},
	})
	require.Error(t, err)
	assert.Nil(t, pages)
	assert.ErrorIs(t, err, catalog.ErrDuplicateKey)
	assert.Contains(t, err.Error(), "directory: first:")
	assert.Contains(t, err.Error(), "directory: second:")
}

func TestPagesInDisplayOrder(t *testing.T) {
	pages := Pages()
	require.Len(t, pages, 4)
	names := make([]string, 0, len(pages))
	for _, p := range pages {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"dapps", "exchanges", "layer-2", "learning-tools"}, names)

	_, ok := Lookup("wallets")
	assert.False(t, ok)
}

func TestPageContracts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		page     Page
		slug     string
		param    string
		anchor   string
		def      catalog.Category
		ordering catalog.Ordering
	}{
		{Dapps(), "dapps", "category", "explore", "finance", catalog.OrderSource},
		{Exchanges(), "get-eth", "country", "exchanges", catalog.None, catalog.OrderShuffled},
		{Layer2(), "layer-2", "rollup", "rollups", "optimistic", catalog.OrderSource},
		{LearningTools(), "developers/learning-tools", "category", "tools", "sandbox", catalog.OrderSource},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.page.Name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.slug, tc.page.Slug)
			assert.Equal(t, tc.param, tc.page.Param)
			assert.Equal(t, tc.anchor, tc.page.Anchor)
			assert.Equal(t, tc.def, tc.page.Catalog.Taxonomy().Default())
			assert.Equal(t, tc.ordering, tc.page.Catalog.Ordering())
		})
	}
}

func TestLearningToolsShufflesOnlySandboxes(t *testing.T) {
	page := LearningTools()
	assert.Equal(t, catalog.OrderShuffled, page.Catalog.OrderFor(toolSandbox))
	assert.Equal(t, catalog.OrderSource, page.Catalog.OrderFor(toolGames))
	assert.Equal(t, catalog.OrderSource, page.Catalog.OrderFor(toolBootcamps))

	games := []string{"cryptozombies", "ethernauts", "capture-the-ether", "speedrun-ethereum"}
	bootcamps := []string{"buildspace", "chainshot", "consensys-academy", "platzi"}
	sandboxOrders := map[string]bool{}
	for seed := uint64(1); seed <= 20; seed++ {
		rng := rand.New(rand.NewPCG(seed, seed))
		assert.Equal(t, games, entryKeys(catalog.Filter(page.Catalog, toolGames, catalog.FilterOptions{Shuffler: rng})), "seed %d", seed)
		assert.Equal(t, bootcamps, entryKeys(catalog.Filter(page.Catalog, toolBootcamps, catalog.FilterOptions{Shuffler: rng})), "seed %d", seed)

		sandbox := entryKeys(catalog.Filter(page.Catalog, toolSandbox, catalog.FilterOptions{Shuffler: rng}))
		require.Len(t, sandbox, 5)
		sandboxOrders[strings.Join(sandbox, ",")] = true
	}
	assert.Greater(t, len(sandboxOrders), 1)
}

func entryKeys(entries []catalog.DisplayEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Key)
	}
	return out
}

func TestDappsCategories(t *testing.T) {
	tax := Dapps().Catalog.Taxonomy()
	assert.Equal(t,
		[]catalog.Category{"finance", "technology", "collectibles", "gaming", "metaverse", "social"},
		tax.Values())

	counts := Dapps().Catalog.Counts()
	for _, c := range tax.Values() {
		assert.Positive(t, counts[c], "category %s has no dapps", c)
	}
}

func TestDappsSelectionFromQuery(t *testing.T) {
	page := Dapps()
	sel := catalog.ResolveSelection("gaming,finance", page.Catalog.Taxonomy())
	assert.Equal(t, catalog.Category("gaming"), sel.Active)
	assert.True(t, sel.ScrollToAnchor)

	got := catalog.Filter(page.Catalog, sel.Active, catalog.FilterOptions{})
	require.NotEmpty(t, got)
	for _, d := range got {
		e, ok := page.Catalog.Entry(d.Key)
		require.True(t, ok)
		assert.True(t, e.HasCategory("gaming"))
	}
}

func TestExchangesCountriesSortedWithCollation(t *testing.T) {
	values := Exchanges().Catalog.Taxonomy().Values()
	require.NotEmpty(t, values)
	assert.Equal(t, catalog.Category("Argentina"), values[0])
	assert.Equal(t, catalog.Category("Vietnam"), values[len(values)-1])
	assert.True(t, Exchanges().Catalog.Taxonomy().Contains(UnitedStates))
}

func TestExchangesUnitedStatesCaveats(t *testing.T) {
	page := Exchanges()
	got := catalog.Filter(page.Catalog, UnitedStates, catalog.FilterOptions{
		Region:         UnitedStates,
		HomeRegion:     page.HomeRegion,
		ExceptLabelKey: page.ExceptLabelKey,
		Translate:      func(string) string { return "Except" },
		FormatList:     format.Lister("en"),
		Shuffler:       rand.New(rand.NewPCG(1, 2)),
	})

	caveats := make(map[string]string, len(got))
	for _, d := range got {
		caveats[d.Key] = d.Caveat
	}
	assert.Len(t, caveats, len(exchangesByCountry[UnitedStates]))
	assert.Equal(t, "Except NY and WA", caveats["kraken"])
	assert.Equal(t, "Except HI", caveats["coinbase"])
	assert.Equal(t, "Except HI, ID, NY, TX, and VT", caveats["binanceus"])
}

func TestExchangesOtherCountryHasNoCaveat(t *testing.T) {
	page := Exchanges()
	got := catalog.Filter(page.Catalog, "Canada", catalog.FilterOptions{
		Region:         "Canada",
		HomeRegion:     page.HomeRegion,
		ExceptLabelKey: page.ExceptLabelKey,
	})
	require.NotEmpty(t, got)
	for _, d := range got {
		assert.Empty(t, d.Caveat, d.Key)
	}
}

func TestExchangesEmptyCountry(t *testing.T) {
	page := Exchanges()
	sel := catalog.ResolveSelection("United States Minor Islands", page.Catalog.Taxonomy())
	require.Equal(t, catalog.Category("United States Minor Islands"), sel.Active)

	got := catalog.Filter(page.Catalog, sel.Active, catalog.FilterOptions{})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestExchangesNoneByDefault(t *testing.T) {
	sel := catalog.ResolveSelection("", Exchanges().Catalog.Taxonomy())
	assert.True(t, sel.IsNone())
	assert.False(t, sel.ScrollToAnchor)
}

func TestLayer2LinksSkipMissingURLs(t *testing.T) {
	page := Layer2()
	got := catalog.Filter(page.Catalog, "optimistic", catalog.FilterOptions{})
	require.Len(t, got, 3)

	byKey := make(map[string]catalog.DisplayEntry, len(got))
	for _, d := range got {
		byKey[d.Key] = d
	}
	assert.Len(t, byKey["arbitrum"].Links, 5)
	assert.Len(t, byKey["boba"].Links, 4)
	assert.Equal(t, "black", byKey["boba"].Background)
}

func TestLayer2ZKRollups(t *testing.T) {
	got := catalog.Filter(Layer2().Catalog, "zk", catalog.FilterOptions{})
	keys := make([]string, 0, len(got))
	for _, d := range got {
		keys = append(keys, d.Key)
	}
	assert.Equal(t, []string{"loopring", "zksync", "zkspace", "aztec", "starknet"}, keys)
}

func TestRollupMetadata(t *testing.T) {
	assert.Equal(t, []string{"MetaMask"}, RollupWallets("boba"))
	assert.Equal(t, []string{"payments", "exchange"}, RollupPurposes("loopring"))
	assert.Nil(t, RollupWallets("plasma"))
}

func TestLearningToolsShuffleKeepsCategory(t *testing.T) {
	page := LearningTools()
	opts := catalog.FilterOptions{Shuffler: rand.New(rand.NewPCG(3, 5))}
	got := catalog.Filter(page.Catalog, "games", opts)
	assert.Len(t, got, 4)
	for _, d := range got {
		e, ok := page.Catalog.Entry(d.Key)
		require.True(t, ok)
		assert.Equal(t, []catalog.Category{"games"}, e.Categories)
	}
}

func TestCategoryInfoFallsBackToTag(t *testing.T) {
	page := Exchanges()
	info := page.Category("Japan")
	assert.Equal(t, "Japan", info.LabelKey)

	dapps := Dapps().Category("finance")
	assert.Equal(t, "page-dapps-finance-button", dapps.LabelKey)
	assert.Len(t, dapps.Benefits, 2)
}

func TestSynchronizerForPage(t *testing.T) {
	nav := LearningTools().Synchronizer("ja").Apply("bootcamps", true)
	assert.Equal(t, "/ja/developers/learning-tools/?category=bootcamps#tools", nav.Path)
	assert.Equal(t, catalog.NavigateAnchorJump, nav.Mode)
}
