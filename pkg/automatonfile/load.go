package automatonfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ha1tch/fsm-wordgen/pkg/automaton"
)

// Format names an on-disk representation.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatJFF  Format = "jff"
)

// FormatOf infers the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".jff", ".xml":
		return FormatJFF, nil
	default:
		return "", fmt.Errorf("unknown file format: %s", filepath.Ext(path))
	}
}

// Parse decodes data in the given format.
func Parse(data []byte, format Format) (automaton.Automaton, error) {
	switch format {
	case FormatJSON:
		return ParseJSON(data)
	case FormatYAML:
		return ParseYAML(data)
	case FormatJFF:
		return ParseJFF(data)
	default:
		return nil, fmt.Errorf("unknown file format: %s", format)
	}
}

// Encode encodes a in the given format.
func Encode(a automaton.Automaton, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return ToJSON(a, true)
	case FormatYAML:
		return ToYAML(a)
	case FormatJFF:
		return ToJFF(a)
	default:
		return nil, fmt.Errorf("unknown file format: %s", format)
	}
}

// Load reads an automaton file, picking the format from its extension.
func Load(path string) (automaton.Automaton, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	a, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return a, nil
}

// Save writes a to path in the format given by its extension.
func Save(path string, a automaton.Automaton) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	data, err := Encode(a, format)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
