package domain

import "strings"

// Currency is a canonical ISO 4217 currency code accepted by the pipeline.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
	CurrencyJPY Currency = "JPY"
	CurrencyCAD Currency = "CAD"
	CurrencyAUD Currency = "AUD"
	CurrencyCHF Currency = "CHF"
	CurrencyCNY Currency = "CNY"
	CurrencySEK Currency = "SEK"
	CurrencyNZD Currency = "NZD"
	CurrencyBDT Currency = "BDT"
)

// Valid currency codes
var validCurrencies = map[Currency]bool{
	CurrencyUSD: true, CurrencyEUR: true, CurrencyGBP: true, CurrencyJPY: true,
	CurrencyCAD: true, CurrencyAUD: true, CurrencyCHF: true, CurrencyCNY: true,
	CurrencySEK: true, CurrencyNZD: true, CurrencyBDT: true,
}

// currencySynonyms maps upper-cased free-form tokens (symbols, words) to
// canonical codes. Exact matches only, no fuzzy lookup.
var currencySynonyms = map[string]Currency{
	"USD": CurrencyUSD, "$": CurrencyUSD, "DOLLAR": CurrencyUSD, "US DOLLAR": CurrencyUSD,
	"EUR": CurrencyEUR, "€": CurrencyEUR, "EURO": CurrencyEUR,
	"GBP": CurrencyGBP, "£": CurrencyGBP, "POUND": CurrencyGBP,
	"CAD": CurrencyCAD, "CAD$": CurrencyCAD,
	"BDT": CurrencyBDT, "TAKA": CurrencyBDT,
}

// ParseCurrency resolves a free-form token to a canonical currency. The synonym
// table is consulted first, then the canonical codes themselves. Unmatched
// tokens return ok=false, never an error.
func ParseCurrency(raw string) (Currency, bool) {
	token := strings.ToUpper(strings.TrimSpace(raw))
	if token == "" {
		return "", false
	}

	if c, ok := currencySynonyms[token]; ok {
		return c, true
	}

	if c := Currency(token); validCurrencies[c] {
		return c, true
	}

	return "", false
}

// Valid reports whether c is a member of the canonical currency set.
func (c Currency) Valid() bool {
	return validCurrencies[c]
}

func (c Currency) String() string {
	return string(c)
}
