package filesystem

import (
	"io/fs"
)

// FS is the set of read operations the database loader and the identifier
// need.
type FS interface {
	Open(name string) (fs.File, error)
	Stat(name string) (fs.FileInfo, error)
	// Lstat does not follow a final symlink. Implementations without
	// symlink support fall back to Stat.
	Lstat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	ReadDir(name string) ([]fs.DirEntry, error)
	// IsMountPoint reports whether the directory at name is the root of a
	// mounted filesystem.
	IsMountPoint(name string) (bool, error)
}

// Exists reports whether name can be stat'ed on fsys.
func Exists(fsys FS, name string) bool {
	_, err := fsys.Stat(name)
	return err == nil
}

// IsFile reports whether name exists on fsys and is not a directory.
func IsFile(fsys FS, name string) bool {
	info, err := fsys.Stat(name)
	return err == nil && !info.IsDir()
}
