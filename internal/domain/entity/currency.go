package entity

import "sort"

var countryCurrency = map[string]string{
	"US": "USD",
	"CA": "CAD",
	"UK": "GBP",
	"AU": "AUD",
	"MX": "MXN",
	"CO": "COP",
}

// CurrencyForCountry devuelve la moneda por defecto del país ("" si no se conoce).
func CurrencyForCountry(country string) string {
	return countryCurrency[country]
}

// CountriesForCurrency devuelve los países cuya moneda por defecto es currency.
func CountriesForCurrency(currency string) []string {
	var out []string
	for country, cur := range countryCurrency {
		if cur == currency {
			out = append(out, country)
		}
	}
	sort.Strings(out)
	return out
}
