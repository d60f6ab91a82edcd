package filesystem

import (
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"
)

// aferoFS implements FS using afero
type aferoFS struct {
	fs     afero.Fs
	mounts map[string]bool
}

// AferoOption configures an afero-backed FS
type AferoOption func(*aferoFS)

// WithMountPoints marks directories that IsMountPoint reports as mounted.
// afero has no notion of devices, so tests declare them explicitly.
func WithMountPoints(paths ...string) AferoOption {
	return func(a *aferoFS) {
		for _, p := range paths {
			a.mounts[filepath.Clean(p)] = true
		}
	}
}

// NewAferoFS creates a new afero filesystem implementation
func NewAferoFS(fsys afero.Fs, opts ...AferoOption) FS {
	a := &aferoFS{fs: fsys, mounts: make(map[string]bool)}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *aferoFS) Open(name string) (fs.File, error) {
	f, err := a.fs.Open(name)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (a *aferoFS) Stat(name string) (fs.FileInfo, error) {
	return a.fs.Stat(name)
}

func (a *aferoFS) Lstat(name string) (fs.FileInfo, error) {
	// Only some afero backends (OsFs, BasePathFs) can lstat.
	if lst, ok := a.fs.(afero.Lstater); ok {
		info, _, err := lst.LstatIfPossible(name)
		return info, err
	}
	return a.fs.Stat(name)
}

func (a *aferoFS) ReadFile(name string) ([]byte, error) {
	info, err := a.fs.Stat(name)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrInvalid}
	}
	return afero.ReadFile(a.fs, name)
}

func (a *aferoFS) ReadDir(name string) ([]fs.DirEntry, error) {
	entries, err := afero.ReadDir(a.fs, name)
	if err != nil {
		return nil, err
	}
	dirEntries := make([]fs.DirEntry, len(entries))
	for i, entry := range entries {
		dirEntries[i] = fs.FileInfoToDirEntry(entry)
	}
	return dirEntries, nil
}

func (a *aferoFS) IsMountPoint(name string) (bool, error) {
	info, err := a.fs.Stat(name)
	if err != nil {
		return false, err
	}
	return info.IsDir() && a.mounts[filepath.Clean(name)], nil
}
