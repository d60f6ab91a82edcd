package config

import (
	"github.com/pelletier/go-toml/v2"
)

// Output formats accepted by output.format
var validFormats = []string{"auto", "term", "text", "json"}

// Config is the effective configuration
type Config struct {
	Paths    PathsConfig    `koanf:"paths" toml:"paths" json:"paths"`
	Magic    MagicConfig    `koanf:"magic" toml:"magic" json:"magic"`
	Identify IdentifyConfig `koanf:"identify" toml:"identify" json:"identify"`
	Describe DescribeConfig `koanf:"describe" toml:"describe" json:"describe"`
	Output   OutputConfig   `koanf:"output" toml:"output" json:"output"`
	Desktop  DesktopConfig  `koanf:"desktop" toml:"desktop" json:"desktop"`
}

// PathsConfig overrides the XDG search roots
type PathsConfig struct {
	DataDirs   []string `koanf:"data_dirs" toml:"data_dirs" json:"data_dirs"`
	ConfigDirs []string `koanf:"config_dirs" toml:"config_dirs" json:"config_dirs"`
}

// MagicConfig bounds the magic priorities that are consulted
type MagicConfig struct {
	MaxPriority int `koanf:"max_priority" toml:"max_priority" json:"max_priority"`
	MinPriority int `koanf:"min_priority" toml:"min_priority" json:"min_priority"`
}

// IdentifyConfig tunes content sniffing
type IdentifyConfig struct {
	SniffBytes int `koanf:"sniff_bytes" toml:"sniff_bytes" json:"sniff_bytes"`
}

// DescribeConfig selects the language of type descriptions
type DescribeConfig struct {
	Language string `koanf:"language" toml:"language" json:"language"`
}

// OutputConfig selects the CLI output format
type OutputConfig struct {
	Format string `koanf:"format" toml:"format" json:"format"`
}

// DesktopConfig lists the desktop environments in use
type DesktopConfig struct {
	Current []string `koanf:"current" toml:"current" json:"current"`
}

// TOML renders the configuration as a TOML document
func (c *Config) TOML() ([]byte, error) {
	return toml.Marshal(c)
}
