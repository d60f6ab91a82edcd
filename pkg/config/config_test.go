// Test Type: Unit Test
// Description: Tests for layered configuration loading

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/xdgmime/pkg/config"
	"github.com/arthur-debert/xdgmime/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("XDG_CURRENT_DESKTOP", "")

	cfg, err := config.Load(config.Options{})
	require.NoError(t, err)

	assert.Equal(t, 100, cfg.Magic.MaxPriority)
	assert.Equal(t, 0, cfg.Magic.MinPriority)
	assert.Equal(t, 1024, cfg.Identify.SniffBytes)
	assert.Equal(t, "en", cfg.Describe.Language)
	assert.Equal(t, "auto", cfg.Output.Format)
	assert.Empty(t, cfg.Paths.DataDirs)
	assert.Empty(t, cfg.Desktop.Current)
}

func TestLoad_Layers(t *testing.T) {
	user := writeConfig(t, `
[magic]
max_priority = 90
min_priority = 10

[paths]
data_dirs = ["/opt/share"]
`)
	explicit := writeConfig(t, `
[magic]
min_priority = 20
`)
	t.Setenv("XDGMIME_IDENTIFY__SNIFF_BYTES", "512")
	t.Setenv("XDG_CURRENT_DESKTOP", "GNOME:Unity")

	cfg, err := config.Load(config.Options{
		UserFile:     user,
		ExplicitFile: explicit,
		Overrides:    map[string]interface{}{"output.format": "JSON"},
	})
	require.NoError(t, err)

	assert.Equal(t, 90, cfg.Magic.MaxPriority)
	assert.Equal(t, 20, cfg.Magic.MinPriority)
	assert.Equal(t, []string{"/opt/share"}, cfg.Paths.DataDirs)
	assert.Equal(t, 512, cfg.Identify.SniffBytes)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, []string{"gnome", "unity"}, cfg.Desktop.Current)
}

func TestLoad_MissingUserFileIsIgnored(t *testing.T) {
	_, err := config.Load(config.Options{UserFile: "/nonexistent/config.toml"})
	assert.NoError(t, err)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := config.Load(config.Options{ExplicitFile: "/nonexistent/config.toml"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad_toml", "[magic\nmax_priority = "},
		{"inverted_priorities", "[magic]\nmax_priority = 10\nmin_priority = 50\n"},
		{"zero_sniff", "[identify]\nsniff_bytes = 0\n"},
		{"bad_format", "[output]\nformat = \"xml\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load(config.Options{ExplicitFile: writeConfig(t, tt.content)})
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
		})
	}
}

func TestConfig_TOML(t *testing.T) {
	cfg, err := config.Load(config.Options{})
	require.NoError(t, err)

	out, err := cfg.TOML()
	require.NoError(t, err)
	assert.Contains(t, string(out), "max_priority = 100")
	assert.Contains(t, string(out), "[identify]")
}

func TestDefaultContent(t *testing.T) {
	assert.Contains(t, config.DefaultContent(), "[magic]")
}
