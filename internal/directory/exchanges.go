package directory

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"finitefield.org/catalog-web/internal/catalog"
)

// UnitedStates is the home region whose per-state exceptions are shown as caveats.
const UnitedStates = "United States of America (USA)"

type exchangeDetail struct {
	name          string
	url           string
	image         string
	usaExceptions []string
}

var exchangeDetails = map[string]exchangeDetail{
	"binance":     {name: "Binance", url: "https://www.binance.com/", image: "binance"},
	"binanceus":   {name: "Binance US", url: "https://www.binance.us/", image: "binance", usaExceptions: []string{"HI", "ID", "NY", "TX", "VT"}},
	"bitbuy":      {name: "Bitbuy", url: "https://bitbuy.ca/", image: "bitbuy"},
	"bitfinex":    {name: "Bitfinex", url: "https://www.bitfinex.com/", image: "bitfinex"},
	"bitflyer":    {name: "bitFlyer", url: "https://bitflyer.com/", image: "bitflyer", usaExceptions: []string{"NV", "WV"}},
	"bitkub":      {name: "Bitkub", url: "https://www.bitkub.com/", image: "bitkub"},
	"bitso":       {name: "Bitso", url: "https://bitso.com/", image: "bitso"},
	"bittrex":     {name: "Bittrex", url: "https://global.bittrex.com/", image: "bittrex", usaExceptions: []string{"CT", "HI", "NY", "NH", "TX", "VT", "VA"}},
	"bitvavo":     {name: "Bitvavo", url: "https://bitvavo.com/en/ethereum", image: "bitvavo"},
	"bybit":       {name: "Bybit", url: "https://www.bybit.com/", image: "bybit"},
	"coinbase":    {name: "Coinbase", url: "https://www.coinbase.com/", image: "coinbase", usaExceptions: []string{"HI"}},
	"coinmama":    {name: "Coinmama", url: "https://www.coinmama.com/", image: "coinmama", usaExceptions: []string{"CT", "FL", "IA", "NY"}},
	"coinspot":    {name: "CoinSpot", url: "https://www.coinspot.com.au/", image: "coinspot"},
	"cryptocom":   {name: "Crypto.com", url: "https://crypto.com/exchange/", image: "crypto.com", usaExceptions: []string{"NY"}},
	"easycrypto":  {name: "Easy Crypto", url: "https://easycrypto.com/", image: "easycrypto"},
	"gateio":      {name: "Gate.io", url: "https://www.gate.io/", image: "gateio"},
	"gemini":      {name: "Gemini", url: "https://gemini.com/", image: "gemini", usaExceptions: []string{"HI"}},
	"huobiglobal": {name: "Huobi Global", url: "https://huobi.com/", image: "huobiglobal"},
	"itezcom":     {name: "Itez", url: "https://itez.com/", image: "itezcom"},
	"korbit":      {name: "Korbit", url: "https://korbit.co.kr", image: "korbit"},
	"kraken":      {name: "Kraken", url: "https://www.kraken.com/", image: "kraken", usaExceptions: []string{"NY", "WA"}},
	"kucoin":      {name: "KuCoin", url: "https://www.kucoin.com/", image: "kucoin"},
	"moonpay":     {name: "MoonPay", url: "https://www.moonpay.com/", image: "moonpay", usaExceptions: []string{"VI"}},
	"mtpelerin":   {name: "Mt Pelerin", url: "https://www.mtpelerin.com/", image: "mtpelerin"},
	"okx":         {name: "OKX", url: "https://www.okx.com/", image: "okx"},
	"rain":        {name: "Rain", url: "https://rain.bh", image: "rain"},
	"shakepay":    {name: "Shakepay", url: "https://shakepay.com", image: "shakepay"},
	"wazirx":      {name: "WazirX", url: "https://wazirx.com/", image: "wazirx"},
}

// exchangesByCountry lists which exchanges serve each country.
var exchangesByCountry = map[string][]string{
	"Argentina":                   {"binance", "bitso", "moonpay", "okx"},
	"Australia":                   {"binance", "coinspot", "easycrypto", "kraken", "okx", "moonpay"},
	"Austria":                     {"bitvavo", "coinbase", "kraken", "mtpelerin", "cryptocom"},
	"Bahrain":                     {"rain", "binance"},
	"Brazil":                      {"binance", "bybit", "okx", "moonpay"},
	"Canada":                      {"bitbuy", "coinbase", "kraken", "shakepay", "cryptocom"},
	"France":                      {"bitvavo", "coinbase", "kraken", "mtpelerin", "bitfinex"},
	"Germany":                     {"bitvavo", "coinbase", "kraken", "mtpelerin", "bitfinex", "itezcom"},
	"India":                       {"wazirx", "kucoin", "okx"},
	"Japan":                       {"bitflyer", "coinbase"},
	"Mexico":                      {"bitso", "binance", "moonpay"},
	"Netherlands":                 {"bitvavo", "coinbase", "kraken", "bitfinex"},
	"New Zealand":                 {"easycrypto", "kraken", "moonpay"},
	"South Korea":                 {"korbit", "gateio"},
	"Switzerland":                 {"mtpelerin", "kraken", "coinbase"},
	"Thailand":                    {"bitkub", "binance", "gateio"},
	"Turkey":                      {"binance", "huobiglobal", "okx"},
	"United Arab Emirates":        {"rain", "binance", "bybit"},
	"United Kingdom":              {"coinbase", "kraken", "gemini", "cryptocom", "bitfinex"},
	UnitedStates:                  {"binanceus", "bitflyer", "bittrex", "coinbase", "coinmama", "cryptocom", "gemini", "kraken", "moonpay"},
	"Vietnam":                     {"binance", "kucoin", "huobiglobal"},
	"United States Minor Islands": {},
}

// sortedCountries orders country names with English collation.
func sortedCountries() []string {
	countries := sortedKeys(exchangesByCountry)
	col := collate.New(language.English, collate.IgnoreCase)
	sort.SliceStable(countries, func(i, j int) bool {
		return col.CompareString(countries[i], countries[j]) < 0
	})
	return countries
}

func buildExchanges() (Page, error) {
	countries := sortedCountries()
	values := make([]catalog.Category, 0, len(countries))
	served := make(map[string][]catalog.Category, len(exchangeDetails))
	for _, country := range countries {
		values = append(values, catalog.Category(country))
		for _, key := range exchangesByCountry[country] {
			served[key] = append(served[key], catalog.Category(country))
		}
	}
	tax, err := catalog.NewTaxonomy(catalog.None, values...)
	if err != nil {
		return Page{}, err
	}

	entries := make([]catalog.Entry, 0, len(exchangeDetails))
	for _, key := range sortedKeys(exchangeDetails) {
		d := exchangeDetails[key]
		e := catalog.Entry{
			Key:         key,
			DisplayName: d.name,
			ExternalURL: d.url,
			ImageRef:    "/assets/images/exchanges/" + d.image + ".png",
			Categories:  served[key],
		}
		if len(d.usaExceptions) > 0 {
			e.RegionExceptions = map[string][]string{UnitedStates: d.usaExceptions}
		}
		entries = append(entries, e)
		delete(served, key)
	}
	// a country referencing an undefined exchange is an authoring error
	if len(served) > 0 {
		return Page{}, errUnknownExchange(sortedKeys(served)[0])
	}

	c, err := catalog.New("exchanges", tax, catalog.OrderShuffled, entries...)
	if err != nil {
		return Page{}, err
	}
	return Page{
		Catalog:        c,
		Slug:           "get-eth",
		Param:          "country",
		Anchor:         "exchanges",
		TitleKey:       "page-get-eth-exchanges-header",
		DescriptionKey: "page-get-eth-exchanges-intro",
		PromptKey:      "page-get-eth-exchanges-search",
		EmptyKey:       "page-get-eth-exchanges-empty-state-text",
		HomeRegion:     UnitedStates,
		ExceptLabelKey: "page-get-eth-exchanges-except",
	}, nil
}

type errUnknownExchange string

func (e errUnknownExchange) Error() string {
	return "country lists unknown exchange " + string(e)
}
