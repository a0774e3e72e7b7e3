// Package output provides utilities for formatting and displaying schedule results.
package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/mortgage-schedule/internal/schedule"
	"github.com/iwvelando/mortgage-schedule/pkg/format"
	"github.com/iwvelando/mortgage-schedule/pkg/loans"
	"github.com/iwvelando/mortgage-schedule/pkg/mathutil"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// csvTotalID marks the per-scenario totals line in CSV output.
const csvTotalID = "total"

func printerFor(locale format.Locale) *message.Printer {
	return message.NewPrinter(language.Make(locale.Name))
}

// PrettyFormat writes a human-readable summary and table for every result.
// At most maxRows rows of each schedule are printed; maxRows <= 0 prints all.
func PrettyFormat(w io.Writer, results []schedule.Schedule, maxRows int, locale format.Locale) {
	p := printerFor(locale)
	for i, result := range results {
		fmt.Fprintf(w, "--- Results for scenario %s ---\n", result.Name)
		writeSummary(w, p, result, locale)

		rows := result.Result.Schedule
		if maxRows > 0 && len(rows) > maxRows {
			rows = rows[:maxRows]
		}

		if len(rows) > 0 {
			fmt.Fprintf(w, "\nMonth | Payment | Interest | Principal | Overpayment | Remaining\n")
			fmt.Fprintf(w, "_____ | _______ | ________ | _________ | ___________ | _________\n")
			for _, row := range rows {
				_, _ = p.Fprintf(w, "%d | %s | %s | %s | %s | %s\n",
					row.Month,
					format.Currency(row.Payment, locale),
					format.Currency(row.Interest, locale),
					format.Currency(row.Principal, locale),
					format.Currency(row.Overpayment, locale),
					format.Currency(row.RemainingBalance, locale),
				)
			}
			if hidden := len(result.Result.Schedule) - len(rows); hidden > 0 {
				_, _ = p.Fprintf(w, "... %d more rows not shown\n", hidden)
			}
		}

		if i < len(results)-1 {
			fmt.Fprintf(w, "\n")
		}
	}
}

func writeSummary(w io.Writer, p *message.Printer, result schedule.Schedule, locale format.Locale) {
	r := result.Result
	fmt.Fprintf(w, "Mode: %s\n", result.Parameters.Mode)
	fmt.Fprintf(w, "Monthly payment: %s\n", format.Currency(r.MonthlyPayment, locale))
	if r.FirstPaymentBreakdown != nil && r.FirstPaymentBreakdown.Overpayment > 0 {
		fmt.Fprintf(w, "First payment with overpayment: %s\n", format.Currency(r.ActualFirstPayment, locale))
	}
	fmt.Fprintf(w, "Total interest: %s\n", format.Currency(r.TotalInterestPaid, locale))
	fmt.Fprintf(w, "Total paid: %s\n", format.Currency(r.TotalPaid, locale))
	fmt.Fprintf(w, "Payoff: %s\n", format.PayoffDuration(r.PayoffMonths, locale))

	if result.Savings != nil {
		_, _ = p.Fprintf(w, "Overpayment saves %s interest and %d months\n",
			format.Currency(result.Savings.InterestSaved, locale), result.Savings.MonthsSaved)
	}
	if r.Truncated {
		fmt.Fprintf(w, "WARNING: schedule stopped before the loan was repaid\n")
	}
}

// RowBreakdown writes how a single payment splits into interest, principal
// and overpayment, with each part's share of the payment.
func RowBreakdown(w io.Writer, row loans.AmortizationRow, locale format.Locale) {
	p := printerFor(locale)
	fmt.Fprintf(w, "--- Month %d ---\n", row.Month)
	fmt.Fprintf(w, "Payment: %s\n", format.Currency(row.Payment, locale))

	parts := []struct {
		label string
		value float64
	}{
		{"Interest", row.Interest},
		{"Principal", row.Principal},
		{"Overpayment", row.Overpayment},
	}
	for _, part := range parts {
		_, _ = p.Fprintf(w, "%s: %s (%.1f%%)\n",
			part.label,
			format.Currency(part.value, locale),
			mathutil.CalculatePercentage(part.value, row.Payment),
		)
	}
	fmt.Fprintf(w, "Remaining balance: %s\n", format.Currency(row.RemainingBalance, locale))
}

// Totals holds the column sums of a schedule in exact cents.
type Totals struct {
	Payment     decimal.Decimal
	Interest    decimal.Decimal
	Principal   decimal.Decimal
	Overpayment decimal.Decimal
}

// SumRows adds up the displayed cent amounts of every row. Summing in decimal
// keeps Payment equal to Interest + Principal + Overpayment to the cent, which
// float addition over hundreds of rows does not.
func SumRows(rows []loans.AmortizationRow) Totals {
	totals := Totals{
		Payment:     decimal.Zero,
		Interest:    decimal.Zero,
		Principal:   decimal.Zero,
		Overpayment: decimal.Zero,
	}
	for _, row := range rows {
		totals.Payment = totals.Payment.Add(toCents(row.Payment))
		totals.Interest = totals.Interest.Add(toCents(row.Interest))
		totals.Principal = totals.Principal.Add(toCents(row.Principal))
		totals.Overpayment = totals.Overpayment.Add(toCents(row.Overpayment))
	}
	return totals
}

// CsvFormat writes every schedule row in comma-separated value format, one
// line per scenario and month. Each non-empty scenario ends with a "total"
// line holding the column sums and the final balance.
func CsvFormat(w io.Writer, results []schedule.Schedule) {
	fmt.Fprintf(w, `"scenario","id","month","payment","interest","principal","overpayment","remaining balance"`)
	fmt.Fprintf(w, "\n")
	for _, result := range results {
		name := strings.ReplaceAll(result.Name, `"`, `""`)
		rows := result.Result.Schedule
		for _, row := range rows {
			fmt.Fprintf(w, `"%s","%s","%d","%s","%s","%s","%s","%s"`,
				name,
				row.ID,
				row.Month,
				cents(row.Payment),
				cents(row.Interest),
				cents(row.Principal),
				cents(row.Overpayment),
				cents(row.RemainingBalance),
			)
			fmt.Fprintf(w, "\n")
		}
		if len(rows) == 0 {
			continue
		}

		totals := SumRows(rows)
		fmt.Fprintf(w, `"%s","%s","","%s","%s","%s","%s","%s"`,
			name,
			csvTotalID,
			totals.Payment.StringFixed(2),
			totals.Interest.StringFixed(2),
			totals.Principal.StringFixed(2),
			totals.Overpayment.StringFixed(2),
			cents(rows[len(rows)-1].RemainingBalance),
		)
		fmt.Fprintf(w, "\n")
	}
}

// CsvString returns the output of CsvFormat as a string.
func CsvString(results []schedule.Schedule) string {
	var buf bytes.Buffer
	CsvFormat(&buf, results)
	return buf.String()
}

func cents(value float64) string {
	return toCents(value).StringFixed(2)
}

// toCents converts an amount to a decimal rounded to whole cents.
// Non-finite amounts become zero.
func toCents(value float64) decimal.Decimal {
	if !mathutil.IsFinite(value) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(value).Round(2)
}
