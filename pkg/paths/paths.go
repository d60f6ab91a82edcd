package paths

import (
	"os"
	"path/filepath"
	"slices"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/xdgmime/pkg/filesystem"
)

// Environment variable names
const (
	// EnvConfigDir overrides the directory holding xdgmime's own config file
	EnvConfigDir = "XDGMIME_CONFIG_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Well-known names below the search roots
const (
	// AppDirName is the directory name for xdgmime-specific files
	AppDirName = "xdgmime"

	// ConfigFileName is the name of the user configuration file
	ConfigFileName = "config.toml"

	// MimeDir is the shared-mime-info directory below each data root
	MimeDir = "mime"

	// ApplicationsDir holds desktop entries below each data root
	ApplicationsDir = "applications"
)

// Options overrides the XDG search roots. Empty slices keep the XDG values.
type Options struct {
	DataDirs   []string
	ConfigDirs []string
}

// Paths exposes the ordered search roots
type Paths interface {
	// DataRoots returns data directories, highest priority first
	DataRoots() []string
	// ConfigRoots returns config directories, highest priority first
	ConfigRoots() []string
	// ConfigDir is the directory holding xdgmime's config.toml
	ConfigDir() string
	// ConfigFile is the path of the user configuration file
	ConfigFile() string
	// StateDir is where xdgmime writes its log
	StateDir() string
	// DataFiles returns every existing file rel below a data root
	DataFiles(fsys filesystem.FS, rel string) []string
	// ConfigFiles returns every existing file rel below a config root
	ConfigFiles(fsys filesystem.FS, rel string) []string
}

type paths struct {
	dataRoots   []string
	configRoots []string
	configDir   string
	stateDir    string
}

// New builds the search roots from the XDG environment and opts.
func New(opts Options) Paths {
	p := &paths{}

	if len(opts.DataDirs) > 0 {
		p.dataRoots = normalize(opts.DataDirs)
	} else {
		p.dataRoots = normalize(append([]string{xdg.DataHome}, xdg.DataDirs...))
	}

	if len(opts.ConfigDirs) > 0 {
		p.configRoots = normalize(opts.ConfigDirs)
	} else {
		p.configRoots = normalize(append([]string{xdg.ConfigHome}, xdg.ConfigDirs...))
	}

	if dir := os.Getenv(EnvConfigDir); dir != "" {
		p.configDir = expandHome(dir)
	} else {
		p.configDir = filepath.Join(xdg.ConfigHome, AppDirName)
	}

	if stateHome := os.Getenv("XDG_STATE_HOME"); stateHome != "" {
		p.stateDir = filepath.Join(stateHome, AppDirName)
	} else {
		p.stateDir = filepath.Join(xdg.StateHome, AppDirName)
	}

	return p
}

func (p *paths) DataRoots() []string   { return slices.Clone(p.dataRoots) }
func (p *paths) ConfigRoots() []string { return slices.Clone(p.configRoots) }
func (p *paths) ConfigDir() string     { return p.configDir }
func (p *paths) StateDir() string      { return p.stateDir }

func (p *paths) ConfigFile() string {
	return filepath.Join(p.configDir, ConfigFileName)
}

func (p *paths) DataFiles(fsys filesystem.FS, rel string) []string {
	return existing(fsys, p.dataRoots, rel)
}

func (p *paths) ConfigFiles(fsys filesystem.FS, rel string) []string {
	return existing(fsys, p.configRoots, rel)
}

func existing(fsys filesystem.FS, roots []string, rel string) []string {
	var out []string
	for _, root := range roots {
		candidate := filepath.Join(root, rel)
		if filesystem.IsFile(fsys, candidate) {
			out = append(out, candidate)
		}
	}
	return out
}

// normalize expands "~", cleans each root and drops empty entries and
// later duplicates.
func normalize(dirs []string) []string {
	seen := make(map[string]bool, len(dirs))
	out := make([]string, 0, len(dirs))
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		dir = filepath.Clean(expandHome(dir))
		if seen[dir] {
			continue
		}
		seen[dir] = true
		out = append(out, dir)
	}
	return out
}

// expandHome expands ~ to the user's home directory
func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to HOME env var
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}
	if path[1] == '/' {
		return filepath.Join(homeDir, path[2:])
	}
	return path
}
