//go:build !unix

package filesystem

import (
	"os"
	"path/filepath"
)

// isMountPoint only recognises filesystem roots on platforms without unix
// stat information.
func isMountPoint(name string) (bool, error) {
	abs, err := filepath.Abs(name)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(abs); err != nil {
		return false, err
	}
	return filepath.Dir(abs) == abs, nil
}
