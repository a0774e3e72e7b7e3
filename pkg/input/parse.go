// Package input converts raw user input into loan parameters.
package input

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/iwvelando/mortgage-schedule/pkg/loans"
	"github.com/iwvelando/mortgage-schedule/pkg/mathutil"
)

// ParseNumber converts a human-entered number into a float64. Spaces,
// non-breaking spaces, apostrophes and underscores are accepted as thousands
// separators, and a comma is accepted as the decimal separator ("6,5" or
// "1.234,56"). Anything that does not parse to a finite number yields 0.
func ParseNumber(raw string) float64 {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\u00a0', '\u202f', '\'', '_':
			return -1
		}
		return r
	}, strings.TrimSpace(raw))
	if cleaned == "" {
		return 0
	}

	cleaned = normalizeSeparators(cleaned)

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || !mathutil.IsFinite(value) {
		return 0
	}
	return value
}

// normalizeSeparators rewrites the decimal separator to a dot. When both a
// comma and a dot are present, whichever comes last is the decimal separator.
func normalizeSeparators(value string) string {
	lastComma := strings.LastIndex(value, ",")
	lastDot := strings.LastIndex(value, ".")

	switch {
	case lastComma == -1:
		return value
	case lastDot == -1:
		if strings.Count(value, ",") > 1 {
			return strings.ReplaceAll(value, ",", "")
		}
		return strings.Replace(value, ",", ".", 1)
	case lastComma > lastDot:
		value = strings.ReplaceAll(value, ".", "")
		return strings.Replace(value, ",", ".", 1)
	default:
		return strings.ReplaceAll(value, ",", "")
	}
}

// Coerce converts a decoded JSON or YAML scalar into a float64. Strings go
// through ParseNumber; unsupported types and non-finite values yield 0.
func Coerce(value interface{}) float64 {
	var result float64
	switch v := value.(type) {
	case float64:
		result = v
	case float32:
		result = float64(v)
	case int:
		result = float64(v)
	case int64:
		result = float64(v)
	case json.Number:
		return ParseNumber(v.String())
	case string:
		return ParseNumber(v)
	case bool:
		if v {
			result = 1
		}
	}
	if !mathutil.IsFinite(result) {
		return 0
	}
	return result
}

// CoerceBool interprets a decoded scalar as a boolean.
func CoerceBool(value interface{}) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return false
		}
		if parsed, err := strconv.ParseBool(trimmed); err == nil {
			return parsed
		}
	default:
		return Coerce(value) != 0
	}
	return false
}

// Fields holds loan inputs as they arrive from a form or request body.
type Fields struct {
	Principal          interface{} `json:"principal"`
	AnnualInterestRate interface{} `json:"annualInterestRate"`
	Years              interface{} `json:"years"`
	MonthlyOverpayment interface{} `json:"monthlyOverpayment"`
	Mode               string      `json:"mode"`
	// Falling mirrors the "falling instalments" checkbox and wins over Mode
	// when set.
	Falling interface{} `json:"falling,omitempty"`
}

// Parameters converts the raw fields into loan parameters. Only an unknown
// mode is an error; unparsable numbers become 0.
func (f Fields) Parameters() (loans.LoanParameters, error) {
	mode, err := loans.ParseMode(f.Mode)
	if err != nil {
		return loans.LoanParameters{}, err
	}
	if f.Falling != nil && CoerceBool(f.Falling) {
		mode = loans.ModeFalling
	}

	return loans.LoanParameters{
		Principal:          Coerce(f.Principal),
		AnnualInterestRate: Coerce(f.AnnualInterestRate),
		Years:              Coerce(f.Years),
		MonthlyOverpayment: Coerce(f.MonthlyOverpayment),
		Mode:               mode,
	}, nil
}

// ParseParameters builds loan parameters from raw text fields.
func ParseParameters(principal, annualInterestRate, years, monthlyOverpayment, mode string) (loans.LoanParameters, error) {
	params, err := Fields{
		Principal:          principal,
		AnnualInterestRate: annualInterestRate,
		Years:              years,
		MonthlyOverpayment: monthlyOverpayment,
		Mode:               mode,
	}.Parameters()
	if err != nil {
		return params, fmt.Errorf("invalid loan parameters: %w", err)
	}
	return params, nil
}
