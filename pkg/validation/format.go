// Package validation provides common validation utilities.
package validation

import (
	"fmt"

	"github.com/iwvelando/mortgage-schedule/pkg/constants"
)

// ValidateOutputFormat checks if the output format is one of the supported formats.
// Formats are case sensitive.
func ValidateOutputFormat(format string) error {
	switch format {
	case constants.OutputFormatPretty, constants.OutputFormatCSV:
		return nil
	}
	return fmt.Errorf("expected output format of %s or %s, got %q",
		constants.OutputFormatPretty, constants.OutputFormatCSV, format)
}
