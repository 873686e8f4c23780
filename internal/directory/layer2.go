package directory

import "finitefield.org/catalog-web/internal/catalog"

const (
	rollupOptimistic catalog.Category = "optimistic"
	rollupZK         catalog.Category = "zk"
)

type rollup struct {
	key           string
	name          string
	website       string
	developerDocs string
	l2beat        string
	bridge        string
	blockExplorer string
	ecosystem     string
	background    string
	kind          catalog.Category
	purpose       []string
	bridgeWallets []string
}

var rollups = []rollup{
	{
		key: "arbitrum", name: "Arbitrum One", kind: rollupOptimistic,
		website: "https://arbitrum.io/", developerDocs: "https://developer.arbitrum.io/",
		l2beat: "https://l2beat.com/projects/arbitrum/", bridge: "https://bridge.arbitrum.io/",
		blockExplorer: "https://arbiscan.io/", ecosystem: "https://portal.arbitrum.one/",
		background: "white",
		purpose:    []string{"universal"}, bridgeWallets: []string{"MetaMask", "WalletConnect", "Coinbase Wallet"},
	},
	{
		key: "optimism", name: "Optimism", kind: rollupOptimistic,
		website: "https://optimism.io/", developerDocs: "https://community.optimism.io/docs/developers/",
		l2beat: "https://l2beat.com/projects/optimism/", bridge: "https://app.optimism.io/bridge",
		blockExplorer: "https://optimistic.etherscan.io/", ecosystem: "https://www.optimism.io/apps/all",
		background: "white",
		purpose:    []string{"universal"}, bridgeWallets: []string{"MetaMask", "WalletConnect", "Coinbase Wallet"},
	},
	{
		key: "boba", name: "Boba Network", kind: rollupOptimistic,
		website: "https://boba.network/", developerDocs: "https://docs.boba.network/",
		l2beat: "https://l2beat.com/projects/bobanetwork/", bridge: "https://gateway.boba.network/",
		blockExplorer: "https://blockexplorer.boba.network/",
		background:    "black",
		purpose:       []string{"universal"}, bridgeWallets: []string{"MetaMask"},
	},
	{
		key: "loopring", name: "Loopring", kind: rollupZK,
		website: "https://loopring.org/#/", developerDocs: "https://docs.loopring.io/en/",
		l2beat: "https://l2beat.com/projects/loopring/", bridge: "https://loopring.io/#/layer2",
		blockExplorer: "https://explorer.loopring.io/", background: "white",
		purpose: []string{"payments", "exchange"}, bridgeWallets: []string{"MetaMask", "WalletConnect"},
	},
	{
		key: "zksync", name: "zkSync", kind: rollupZK,
		website: "https://zksync.io/", developerDocs: "https://zksync.io/dev/",
		l2beat: "https://l2beat.com/projects/zksync/", bridge: "https://wallet.zksync.io/account",
		blockExplorer: "https://zkscan.io/", background: "#11142b",
		purpose: []string{"tokens", "nft"}, bridgeWallets: []string{"MetaMask", "WalletConnect", "Ledger", "Trezor"},
	},
	{
		key: "zkspace", name: "ZKSpace", kind: rollupZK,
		website: "https://zks.org", developerDocs: "https://en.wiki.zks.org/",
		l2beat: "https://l2beat.com/projects/zkswap/", bridge: "https://zks.app/wallet/token",
		background: "black",
		purpose:    []string{"payments", "exchange"}, bridgeWallets: []string{"MetaMask", "imToken", "Trust Wallet"},
	},
	{
		key: "aztec", name: "Aztec", kind: rollupZK,
		website: "https://aztec.network/", developerDocs: "https://docs.aztec.network/",
		l2beat: "https://l2beat.com/projects/aztec", bridge: "https://zk.money/",
		blockExplorer: "https://aztec-connect-prod-explorer.aztec.network/", background: "white",
		purpose: []string{"payments", "integrations"}, bridgeWallets: []string{"MetaMask", "WalletConnect"},
	},
	{
		key: "starknet", name: "Starknet", kind: rollupZK,
		website: "https://www.starknet.io", developerDocs: "https://docs.starknet.io",
		l2beat: "https://l2beat.com/scaling/projects/starknet", bridge: "https://starkgate.starknet.io",
		blockExplorer: "https://starkscan.co", ecosystem: "https://www.starknet-ecosystem.com",
		background: "white",
		purpose:    []string{"universal"}, bridgeWallets: []string{"MetaMask", "Argent X", "Braavos"},
	},
}

func buildLayer2() (Page, error) {
	tax, err := catalog.NewTaxonomy(rollupOptimistic, rollupOptimistic, rollupZK)
	if err != nil {
		return Page{}, err
	}
	entries := make([]catalog.Entry, 0, len(rollups))
	for _, r := range rollups {
		entries = append(entries, catalog.Entry{
			Key:         r.key,
			DisplayName: r.name,
			Description: r.key + "-description",
			ExternalURL: r.website,
			ImageRef:    "/assets/images/layer-2/" + r.key + ".png",
			AltKey:      "layer-2-" + r.key + "-logo-alt",
			Background:  r.background,
			Categories:  []catalog.Category{r.kind},
			Links: []catalog.Link{
				{LabelKey: "layer-2-developer-docs", URL: r.developerDocs},
				{LabelKey: "layer-2-l2beat", URL: r.l2beat},
				{LabelKey: "layer-2-bridge", URL: r.bridge},
				{LabelKey: "layer-2-block-explorer", URL: r.blockExplorer},
				{LabelKey: "layer-2-ecosystem-portal", URL: r.ecosystem},
			},
		})
	}
	c, err := catalog.New("layer-2", tax, catalog.OrderSource, entries...)
	if err != nil {
		return Page{}, err
	}
	return Page{
		Catalog:        c,
		Slug:           "layer-2",
		Param:          "rollup",
		Anchor:         "rollups",
		TitleKey:       "layer-2-title",
		DescriptionKey: "layer-2-description",
		EmptyKey:       "layer-2-empty",
		Categories: map[catalog.Category]CategoryInfo{
			rollupOptimistic: {LabelKey: "layer-2-optimistic-rollups-title", Emoji: "⚡"},
			rollupZK:         {LabelKey: "layer-2-zk-rollups-title", Emoji: "🔐"},
		},
	}, nil
}

// RollupWallets returns the bridge wallets supported by a rollup.
func RollupWallets(key string) []string {
	for _, r := range rollups {
		if r.key == key {
			return append([]string(nil), r.bridgeWallets...)
		}
	}
	return nil
}

// RollupPurposes returns the purpose tags of a rollup.
func RollupPurposes(key string) []string {
	for _, r := range rollups {
		if r.key == key {
			return append([]string(nil), r.purpose...)
		}
	}
	return nil
}
