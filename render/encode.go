package render

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ParseFormat checks that format is one of the output formats.
func ParseFormat(format string) (string, error) {
	switch format {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON, FormatYAML:
		return format, nil
	}
	return "", fmt.Errorf("unknown output format %q (text, json or yaml)", format)
}

// Encode writes v to w in format, json or yaml.
func Encode(w io.Writer, format string, v interface{}) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("cannot encode as %q", format)
}
