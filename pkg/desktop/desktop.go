// Package desktop locates desktop entries by desktop file ID and reads the
// few fields xdgmime displays.
package desktop

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/xdgmime/pkg/errors"
	"github.com/arthur-debert/xdgmime/pkg/filesystem"
	"github.com/arthur-debert/xdgmime/pkg/inifile"
	"github.com/arthur-debert/xdgmime/pkg/paths"
)

// Group is the section every desktop entry must carry
const Group = "Desktop Entry"

// Locator answers whether an application ID names an existing desktop entry.
type Locator interface {
	Locate(id string) (string, bool)
}

// Finder searches applications/ below the data roots
type Finder struct {
	fs    filesystem.FS
	roots []string
}

// NewFinder creates a finder over roots, highest priority first
func NewFinder(fsys filesystem.FS, roots []string) *Finder {
	return &Finder{fs: fsys, roots: roots}
}

// Locate returns the path of the first desktop entry for id. IDs encode
// subdirectories with '-', so "kde-foo.desktop" also matches
// applications/kde/foo.desktop.
func (f *Finder) Locate(id string) (string, bool) {
	if id == "" || strings.ContainsRune(id, '/') {
		return "", false
	}
	for _, root := range f.roots {
		for _, rel := range candidates(id) {
			path := filepath.Join(root, paths.ApplicationsDir, rel)
			if filesystem.IsFile(f.fs, path) {
				return path, true
			}
		}
	}
	return "", false
}

// candidates lists relative paths for id, turning the first n dashes into
// directory separators for every n.
func candidates(id string) []string {
	out := []string{id}
	rel := id
	for {
		i := strings.IndexByte(rel, '-')
		if i < 0 {
			return out
		}
		rel = rel[:i] + "/" + rel[i+1:]
		out = append(out, rel)
	}
}

// Entry is the display data of a desktop entry
type Entry struct {
	ID        string   `json:"id"`
	Path      string   `json:"path"`
	Name      string   `json:"name,omitempty"`
	Comment   string   `json:"comment,omitempty"`
	Exec      string   `json:"exec,omitempty"`
	Icon      string   `json:"icon,omitempty"`
	NoDisplay bool     `json:"no_display,omitempty"`
	Hidden    bool     `json:"hidden,omitempty"`
	MimeTypes []string `json:"mime_types,omitempty"`
}

// Load locates and parses the entry for id.
func (f *Finder) Load(id string) (*Entry, error) {
	path, ok := f.Locate(id)
	if !ok {
		return nil, errors.Newf(errors.ErrAppNotFound, "no desktop entry for %s", id).
			WithDetail("id", id)
	}
	data, err := f.fs.ReadFile(path)
	if err != nil {
		return nil, errors.FromFS(err, path)
	}
	return Parse(id, path, data)
}

// Parse reads the [Desktop Entry] group of data.
func Parse(id, path string, data []byte) (*Entry, error) {
	file, err := inifile.Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "failed to parse %s", path)
	}
	section, err := file.GetSection(Group)
	if err != nil {
		return nil, errors.Newf(errors.ErrInvalidInput, "%s has no [%s] group", path, Group)
	}

	return &Entry{
		ID:        id,
		Path:      path,
		Name:      section.Key("Name").String(),
		Comment:   section.Key("Comment").String(),
		Exec:      section.Key("Exec").String(),
		Icon:      section.Key("Icon").String(),
		NoDisplay: inifile.Bool(section.Key("NoDisplay").String()),
		Hidden:    inifile.Bool(section.Key("Hidden").String()),
		MimeTypes: inifile.List(section.Key("MimeType").String()),
	}, nil
}
