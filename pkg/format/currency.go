// Package format renders currency amounts for reports.
package format

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/iwvelando/finance-guide/pkg/constants"
	"github.com/shopspring/decimal"
)

const euroGrapheme = "€"

// Formatters per report language. The go-money template places the
// grapheme at "$" and the amount at "1".
var localeFormatters = map[string]*money.Formatter{
	constants.LanguageItalian: money.NewFormatter(constants.DecimalPrecision, ",", ".", euroGrapheme, "$1"),
	constants.LanguageEnglish: money.NewFormatter(constants.DecimalPrecision, ".", ",", euroGrapheme, "$1"),
	constants.LanguageGerman:  money.NewFormatter(constants.DecimalPrecision, ",", ".", euroGrapheme, "1 $"),
}

// Currency returns a euro amount in Italian notation (e.g., "€1.234,56", "-€1.234,56").
func Currency(amount float64) string {
	return LocalizedCurrency(amount, constants.DefaultLanguage)
}

// LocalizedCurrency returns a euro amount using the separators of the given
// language code. Unknown codes use Italian notation.
func LocalizedCurrency(amount float64, locale string) string {
	formatter, ok := localeFormatters[strings.ToLower(strings.TrimSpace(locale))]
	if !ok {
		formatter = localeFormatters[constants.DefaultLanguage]
	}
	return formatter.Format(Cents(amount))
}

// Cents rounds an amount to the nearest cent, halves away from zero.
func Cents(amount float64) int64 {
	return decimal.NewFromFloat(amount).Shift(constants.DecimalPrecision).Round(0).IntPart()
}
