// Package format renders engine values for display.
package format

import (
	"fmt"
	"math"
	"strings"

	"github.com/iwvelando/mortgage-schedule/pkg/loans"
	"github.com/iwvelando/mortgage-schedule/pkg/mathutil"
)

// Locale describes how amounts are written in one currency and language.
type Locale struct {
	Name        string
	Symbol      string
	SymbolAfter bool
	Thousands   string
	Decimal     string
	// MinGrouping is the number of integer digits required before thousands
	// separators are used at all (Polish writes 1234 but 12 345).
	MinGrouping int
	// Months and Years are the unit words used for payoff durations.
	Months string
	Years  string
}

var (
	// PLN formats like pl-PL złoty amounts, e.g. "12 345,67 zł".
	PLN = Locale{
		Name:        "pl-PL",
		Symbol:      "zł",
		SymbolAfter: true,
		Thousands:   "\u00a0",
		Decimal:     ",",
		MinGrouping: 5,
		Months:      "mies.",
		Years:       "lat",
	}

	// USD formats like en-US dollar amounts, e.g. "$12,345.67".
	USD = Locale{
		Name:        "en-US",
		Symbol:      "$",
		Thousands:   ",",
		Decimal:     ".",
		MinGrouping: 4,
		Months:      "months",
		Years:       "years",
	}
)

// LocaleByName returns the locale registered under name, defaulting to PLN.
func LocaleByName(name string) Locale {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "en-us", "usd", "en":
		return USD
	default:
		return PLN
	}
}

// Currency returns a currency string with the locale's symbol and separators
// (e.g. "-1 234,56 zł" or "-$1,234.56"). Non-finite amounts render as zero.
func Currency(amount float64, locale Locale) string {
	if !mathutil.IsFinite(amount) {
		amount = 0
	}
	amount = mathutil.Round(amount)

	formatted := formatPositive(math.Abs(amount), locale)
	sign := ""
	if amount < 0 {
		sign = "-"
	}
	if locale.SymbolAfter {
		return sign + formatted + "\u00a0" + locale.Symbol
	}
	return sign + locale.Symbol + formatted
}

func formatPositive(value float64, locale Locale) string {
	formatted := fmt.Sprintf("%.2f", value)
	parts := strings.SplitN(formatted, ".", 2)
	intPart := parts[0]
	decPart := "00"
	if len(parts) == 2 {
		decPart = parts[1]
	}

	if len(intPart) >= locale.MinGrouping && len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteString(locale.Thousands)
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}

	return intPart + locale.Decimal + decPart
}

// PayoffDuration renders a month count as "210 mies. (17 lat 6 mies.)".
// Zero months render as "-".
func PayoffDuration(months int, locale Locale) string {
	if months <= 0 {
		return "-"
	}
	years, remainder := loans.PayoffDuration(months)
	return fmt.Sprintf("%d %s (%d %s %d %s)", months, locale.Months, years, locale.Years, remainder, locale.Months)
}
