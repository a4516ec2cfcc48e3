// Package money formats minor-unit prices for cart rendering.
package money

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter renders minor-unit amounts (cents) as localized price strings.
// Grouping and decimal separators follow the configured locale.
type Formatter struct {
	printer *message.Printer
	symbol  string
}

var symbols = map[string]string{
	"USD": "$",
	"CAD": "$",
	"AUD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
}

// NewFormatter creates a formatter for the given BCP 47 locale and ISO 4217
// currency code. Unknown locales fall back per x/text matching; unknown
// currencies render with the code as a prefix.
func NewFormatter(locale, currencyCode string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	symbol, ok := symbols[currencyCode]
	if !ok {
		symbol = currencyCode + " "
	}
	return &Formatter{
		printer: message.NewPrinter(tag),
		symbol:  symbol,
	}
}

// Format renders a minor-unit amount, e.g. 123456 -> "$1,234.56" under
// en/USD.
func (f *Formatter) Format(minor int64) string {
	units := float64(minor) / 100
	return f.printer.Sprintf("%s%v", f.symbol, number.Decimal(units, number.Scale(2)))
}
