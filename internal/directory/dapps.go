package directory

import "finitefield.org/catalog-web/internal/catalog"

const (
	dappFinance      catalog.Category = "finance"
	dappTechnology   catalog.Category = "technology"
	dappCollectibles catalog.Category = "collectibles"
	dappGaming       catalog.Category = "gaming"
	dappMetaverse    catalog.Category = "metaverse"
	dappSocial       catalog.Category = "social"
)

type dappRow struct {
	key, name, url string
	cat            catalog.Category
}

var dappRows = []dappRow{
	{"aave", "Aave", "https://aave.com/", dappFinance},
	{"compound", "Compound", "https://compound.finance/", dappFinance},
	{"uniswap", "Uniswap", "https://uniswap.org/", dappFinance},
	{"curve", "Curve", "https://curve.fi/", dappFinance},
	{"balancer", "Balancer", "https://balancer.fi/", dappFinance},
	{"lido", "Lido", "https://lido.fi/", dappFinance},
	{"yearn", "Yearn", "https://yearn.finance/", dappFinance},
	{"ens", "Ethereum Name Service", "https://ens.domains/", dappTechnology},
	{"gitcoin", "Gitcoin", "https://gitcoin.co/", dappTechnology},
	{"thegraph", "The Graph", "https://thegraph.com/", dappTechnology},
	{"brave", "Brave", "https://brave.com/", dappTechnology},
	{"opensea", "OpenSea", "https://opensea.io/", dappCollectibles},
	{"foundation", "Foundation", "https://foundation.app/", dappCollectibles},
	{"zora", "Zora", "https://zora.co/", dappCollectibles},
	{"audius", "Audius", "https://audius.co/", dappCollectibles},
	{"axie", "Axie Infinity", "https://axieinfinity.com/", dappGaming},
	{"darkforest", "Dark Forest", "https://zkga.me/", dappGaming},
	{"gods-unchained", "Gods Unchained", "https://godsunchained.com/", dappGaming},
	{"decentraland", "Decentraland", "https://decentraland.org/", dappMetaverse},
	{"sandbox", "The Sandbox", "https://www.sandbox.game/", dappMetaverse},
	{"cryptovoxels", "Cryptovoxels", "https://www.cryptovoxels.com/", dappMetaverse},
	{"lens", "Lens Protocol", "https://www.lens.xyz/", dappSocial},
	{"farcaster", "Farcaster", "https://www.farcaster.xyz/", dappSocial},
	{"mirror", "Mirror", "https://mirror.xyz/", dappSocial},
	{"status", "Status", "https://status.im/", dappSocial},
}

func buildDapps() (Page, error) {
	tax, err := catalog.NewTaxonomy(dappFinance,
		dappFinance, dappTechnology, dappCollectibles, dappGaming, dappMetaverse, dappSocial)
	if err != nil {
		return Page{}, err
	}
	entries := make([]catalog.Entry, 0, len(dappRows))
	for _, r := range dappRows {
		entries = append(entries, catalog.Entry{
			Key:         r.key,
			DisplayName: r.name,
			Description: "page-dapps-dapp-description-" + r.key,
			ExternalURL: r.url,
			ImageRef:    "/assets/images/dapps/" + r.key + ".png",
			AltKey:      "page-dapps-" + r.key + "-logo-alt",
			Categories:  []catalog.Category{r.cat},
		})
	}
	c, err := catalog.New("dapps", tax, catalog.OrderSource, entries...)
	if err != nil {
		return Page{}, err
	}
	return Page{
		Catalog:        c,
		Slug:           "dapps",
		Param:          "category",
		Anchor:         "explore",
		TitleKey:       "page-dapps-title",
		DescriptionKey: "page-dapps-description",
		EmptyKey:       "page-dapps-empty",
		Categories: map[catalog.Category]CategoryInfo{
			dappFinance: {
				LabelKey:               "page-dapps-finance-button",
				Emoji:                  "💸",
				BenefitsTitleKey:       "page-dapps-finance-benefits-title",
				BenefitsDescriptionKey: "page-dapps-finance-benefits-description",
				Benefits: []Benefit{
					{Emoji: "🔓", TitleKey: "page-dapps-finance-benefits-1-title", DescriptionKey: "page-dapps-finance-benefits-1-description"},
					{Emoji: "🏦", TitleKey: "page-dapps-finance-benefits-2-title", DescriptionKey: "page-dapps-finance-benefits-2-description"},
				},
			},
			dappTechnology: {LabelKey: "page-dapps-technology-button", Emoji: "⌨️"},
			dappCollectibles: {
				LabelKey:               "page-dapps-collectibles-button",
				Emoji:                  "🖼️",
				BenefitsTitleKey:       "page-dapps-collectibles-benefits-title",
				BenefitsDescriptionKey: "page-dapps-collectibles-benefits-description",
				Benefits: []Benefit{
					{Emoji: "✅", TitleKey: "page-dapps-collectibles-benefits-1-title", DescriptionKey: "page-dapps-collectibles-benefits-1-description"},
				},
			},
			dappGaming: {
				LabelKey:               "page-dapps-gaming-button",
				Emoji:                  "🎮",
				BenefitsTitleKey:       "page-dapps-gaming-benefits-title",
				BenefitsDescriptionKey: "page-dapps-gaming-benefits-description",
				Benefits: []Benefit{
					{Emoji: "⚔️", TitleKey: "page-dapps-gaming-benefits-1-title", DescriptionKey: "page-dapps-gaming-benefits-1-description"},
				},
			},
			dappMetaverse: {LabelKey: "page-dapps-metaverse-button", Emoji: "🌐"},
			dappSocial:    {LabelKey: "page-dapps-social-button", Emoji: "📨"},
		},
	}, nil
}
