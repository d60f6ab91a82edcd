//go:build unix

package identify_test

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/xdgmime/pkg/filesystem"
	"github.com/arthur-debert/xdgmime/pkg/identify"
	"github.com/arthur-debert/xdgmime/pkg/mimetype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestFromInode_Fifo(t *testing.T) {
	fifo := filepath.Join(t.TempDir(), "pipe")
	require.NoError(t, unix.Mkfifo(fifo, 0600))

	id := newIdentifier(t, filesystem.NewOS(), identify.DefaultOptions())

	got, ok, err := id.FromInode(fifo)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, mimetype.InodeFifo, got)

	got, err = id.FromContent(fifo)
	require.NoError(t, err)
	assert.Equal(t, mimetype.InodeFifo, got)
}

func TestFromInode_CharDevice(t *testing.T) {
	id := newIdentifier(t, filesystem.NewOS(), identify.DefaultOptions())

	got, ok, err := id.FromInode("/dev/null")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, mimetype.InodeCharDevice, got)
}
