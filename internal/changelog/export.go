package changelog

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// ExportFormat selects the machine-readable encoding used by Export.
type ExportFormat string

const (
	ExportJSON ExportFormat = "json"
	ExportYAML ExportFormat = "yaml"
)

// ParseExportFormat validates a user supplied format name.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return ExportJSON, nil
	case "yaml", "yml":
		return ExportYAML, nil
	default:
		return "", fmt.Errorf("unsupported export format %q (expected: json, yaml)", s)
	}
}

// Export writes the changelog model to w in the given format.
func Export(c *Changelog, w io.Writer, format ExportFormat) error {
	switch format {
	case ExportJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(c); err != nil {
			return fmt.Errorf("encoding changelog as JSON: %w", err)
		}
		return nil
	case ExportYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return fmt.Errorf("encoding changelog as YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("flushing YAML encoder: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}
