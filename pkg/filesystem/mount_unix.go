//go:build unix

package filesystem

import (
	"path/filepath"

	"golang.org/x/sys/unix"
)

// isMountPoint compares the device of name with that of its parent. The
// root directory is always a mount point.
func isMountPoint(name string) (bool, error) {
	abs, err := filepath.Abs(name)
	if err != nil {
		return false, err
	}

	var self unix.Stat_t
	if err := unix.Lstat(abs, &self); err != nil {
		return false, err
	}
	if self.Mode&unix.S_IFMT != unix.S_IFDIR {
		return false, nil
	}

	parent := filepath.Dir(abs)
	if parent == abs {
		return true, nil
	}
	var up unix.Stat_t
	if err := unix.Stat(parent, &up); err != nil {
		return false, err
	}
	if self.Dev != up.Dev {
		return true, nil
	}
	// Bind mounts of a directory onto itself share the device.
	return self.Ino == up.Ino, nil
}
