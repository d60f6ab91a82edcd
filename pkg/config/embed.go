package config

import (
	_ "embed"

	"github.com/knadh/koanf/parsers/toml"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// DefaultContent is the commented TOML shipped as the bottom layer.
func DefaultContent() string {
	return string(defaultConfig)
}

// defaults serves the embedded TOML to koanf. Load passes it together with
// a TOML parser, which calls ReadBytes; Read decodes the document itself
// for callers loading without a parser.
type defaults struct{}

func (defaults) ReadBytes() ([]byte, error) { return defaultConfig, nil }

func (defaults) Read() (map[string]any, error) {
	return toml.Parser().Unmarshal(defaultConfig)
}
