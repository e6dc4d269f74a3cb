// Package output writes planning results in the supported output formats.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/finance-guide/pkg/constants"
	"gopkg.in/yaml.v3"
)

// Markdown writes a rendered report, ending it with a single newline.
func Markdown(w io.Writer, report string) error {
	_, err := io.WriteString(w, strings.TrimRight(report, "\n")+"\n")
	return err
}

// JSON writes v as indented JSON.
func JSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// YAML writes v as YAML with two-space indentation.
func YAML(w io.Writer, v interface{}) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return encoder.Close()
}

// Write emits the report for the markdown format and the structured result
// otherwise.
func Write(w io.Writer, format, report string, result interface{}) error {
	switch format {
	case constants.OutputFormatMarkdown:
		return Markdown(w, report)
	case constants.OutputFormatJSON:
		return JSON(w, result)
	case constants.OutputFormatYAML:
		return YAML(w, result)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}
