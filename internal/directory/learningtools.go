package directory

import "finitefield.org/catalog-web/internal/catalog"

const (
	toolSandbox   catalog.Category = "sandbox"
	toolGames     catalog.Category = "games"
	toolBootcamps catalog.Category = "bootcamps"
)

type toolRow struct {
	key, name, url string
	cat            catalog.Category
}

var learningTools = []toolRow{
	{"remix", "Remix", "https://remix.ethereum.org", toolSandbox},
	{"eth-dot-build", "eth.build", "https://eth.build/", toolSandbox},
	{"replit", "Replit", "https://replit.com/@replit/Solidity-starter-beta", toolSandbox},
	{"chainide", "ChainIDE", "https://chainide.com/", toolSandbox},
	{"tenderly", "Tenderly", "https://sandbox.tenderly.co", toolSandbox},
	{"cryptozombies", "CryptoZombies", "https://cryptozombies.io/", toolGames},
	{"ethernauts", "Ethernaut", "https://ethernaut.openzeppelin.com/", toolGames},
	{"capture-the-ether", "Capture the Ether", "https://capturetheether.com/", toolGames},
	{"speedrun-ethereum", "Speedrun Ethereum", "https://speedrunethereum.com/", toolGames},
	{"buildspace", "_buildspace", "https://buildspace.so", toolBootcamps},
	{"chainshot", "ChainShot", "https://www.chainshot.com", toolBootcamps},
	{"consensys-academy", "ConsenSys Academy", "https://consensys.net/academy/bootcamp/", toolBootcamps},
	{"platzi", "Platzi", "https://platzi.com/escuela/escuela-blockchain/", toolBootcamps},
}

func buildLearningTools() (Page, error) {
	tax, err := catalog.NewTaxonomy(toolSandbox, toolSandbox, toolGames, toolBootcamps)
	if err != nil {
		return Page{}, err
	}
	entries := make([]catalog.Entry, 0, len(learningTools))
	for _, r := range learningTools {
		entries = append(entries, catalog.Entry{
			Key:         r.key,
			DisplayName: r.name,
			Description: "page-learning-tools-" + r.key + "-description",
			ExternalURL: r.url,
			ImageRef:    "/assets/images/dev-tools/" + r.key + ".png",
			AltKey:      "page-learning-tools-" + r.key + "-logo-alt",
			Categories:  []catalog.Category{r.cat},
		})
	}
	c, err := catalog.New("learning-tools", tax, catalog.OrderSource, entries...)
	if err != nil {
		return Page{}, err
	}
	// only sandboxes rotate; games and bootcamps keep their authored order
	c, err = c.WithCategoryOrdering(toolSandbox, catalog.OrderShuffled)
	if err != nil {
		return Page{}, err
	}
	return Page{
		Catalog:        c,
		Slug:           "developers/learning-tools",
		Param:          "category",
		Anchor:         "tools",
		TitleKey:       "page-learning-tools-coding",
		DescriptionKey: "page-learning-tools-coding-subtitle",
		EmptyKey:       "page-learning-tools-empty",
		Categories: map[catalog.Category]CategoryInfo{
			toolSandbox:   {LabelKey: "page-learning-tools-sandbox", Emoji: "🧪"},
			toolGames:     {LabelKey: "page-learning-tools-game-tutorials", Emoji: "🕹️"},
			toolBootcamps: {LabelKey: "page-learning-tools-bootcamps", Emoji: "🎓"},
		},
	}, nil
}
