// Package validation provides common validation utilities.
package validation

import (
	"fmt"

	"github.com/iwvelando/finance-guide/pkg/constants"
)

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	switch format {
	case constants.OutputFormatMarkdown, constants.OutputFormatJSON, constants.OutputFormatYAML:
		return nil
	default:
		return fmt.Errorf("expected output format of %s, %s or %s, got %s",
			constants.OutputFormatMarkdown, constants.OutputFormatJSON, constants.OutputFormatYAML, format)
	}
}

// ValidateLanguage checks if the language code is one of the report languages.
func ValidateLanguage(code string) error {
	switch code {
	case constants.LanguageItalian, constants.LanguageEnglish, constants.LanguageGerman:
		return nil
	default:
		return fmt.Errorf("expected language of %s, %s or %s, got %s",
			constants.LanguageItalian, constants.LanguageEnglish, constants.LanguageGerman, code)
	}
}
