package testutil

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/xdgmime/pkg/filesystem"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// Fixture builds data and config roots on an in-memory filesystem.
type Fixture struct {
	t  testing.TB
	Fs afero.Fs
}

// NewFixture creates an empty in-memory tree
func NewFixture(t testing.TB) *Fixture {
	t.Helper()
	return &Fixture{t: t, Fs: afero.NewMemMapFs()}
}

// Write creates path with content, making parent directories as needed.
func (f *Fixture) Write(path, content string) *Fixture {
	return f.WriteBytes(path, []byte(content))
}

// WriteBytes creates path with data, making parent directories as needed.
func (f *Fixture) WriteBytes(path string, data []byte) *Fixture {
	f.t.Helper()
	require.NoError(f.t, f.Fs.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(f.t, afero.WriteFile(f.Fs, path, data, 0644))
	return f
}

// Mkdir creates a directory and its parents
func (f *Fixture) Mkdir(path string) *Fixture {
	f.t.Helper()
	require.NoError(f.t, f.Fs.MkdirAll(path, 0755))
	return f
}

// DesktopEntry writes a minimal launchable desktop file for id below
// root/applications.
func (f *Fixture) DesktopEntry(root, id string) *Fixture {
	return f.Write(filepath.Join(root, "applications", id),
		"[Desktop Entry]\nType=Application\nName="+id+"\nExec="+id+" %f\n")
}

// FS wraps the tree in the filesystem abstraction
func (f *Fixture) FS(opts ...filesystem.AferoOption) filesystem.FS {
	return filesystem.NewAferoFS(f.Fs, opts...)
}
