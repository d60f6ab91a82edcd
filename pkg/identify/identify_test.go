// Test Type: Unit Test
// Description: Tests for type identification from inode, name and content

package identify_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/xdgmime/pkg/errors"
	"github.com/arthur-debert/xdgmime/pkg/filesystem"
	"github.com/arthur-debert/xdgmime/pkg/globs"
	"github.com/arthur-debert/xdgmime/pkg/identify"
	"github.com/arthur-debert/xdgmime/pkg/magic"
	"github.com/arthur-debert/xdgmime/pkg/mimetype"
	"github.com/arthur-debert/xdgmime/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tables(t *testing.T) (*globs.Table, *magic.Table) {
	t.Helper()
	gb := globs.NewBuilder()
	require.NoError(t, gb.Parse(strings.NewReader("50:text/plain:*.txt\n50:application/x-named:*.named\n"), "globs2"))

	mb := magic.NewBuilder()
	require.NoError(t, mb.Parse(bytes.NewReader(testutil.EncodeMagic(
		testutil.MagicSection{
			Priority: 80,
			Type:     "application/zip",
			Records:  []testutil.MagicRecord{{Value: []byte("PK\x03\x04")}},
		},
		testutil.MagicSection{
			Priority: 20,
			Type:     "application/x-low",
			Records:  []testutil.MagicRecord{{Value: []byte("LOW")}},
		},
	)), "magic"))
	return gb.Build(), mb.Build()
}

func newIdentifier(t *testing.T, fsys filesystem.FS, opts identify.Options) *identify.Identifier {
	g, m := tables(t)
	return identify.New(g, m, fsys, opts)
}

func memIdentifier(t *testing.T) *identify.Identifier {
	f := testutil.NewFixture(t).
		Write("/files/empty.bin", "").
		Write("/files/archive", "PK\x03\x04rest").
		Write("/files/archive.named", "PK\x03\x04rest").
		Write("/files/notes", "hello\tworld\n").
		Write("/files/blob", "\x00\x01\x02binary").
		Write("/files/low", "LOW level").
		Mkdir("/files/dir").
		Mkdir("/mnt/usb")
	return newIdentifier(t, f.FS(filesystem.WithMountPoints("/mnt/usb")), identify.DefaultOptions())
}

func TestFromName(t *testing.T) {
	id := memIdentifier(t)

	got, ok := id.FromName("/some/dir/report.txt")
	require.True(t, ok)
	assert.Equal(t, mimetype.DefaultText, got)

	_, ok = id.FromName("report.unknown")
	assert.False(t, ok)
}

func TestFromInode(t *testing.T) {
	id := memIdentifier(t)

	got, ok, err := id.FromInode("/files/dir")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, mimetype.InodeDirectory, got)

	got, ok, err = id.FromInode("/mnt/usb")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, mimetype.InodeMountPoint, got)

	_, ok, err = id.FromInode("/files/notes")
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = id.FromInode("/files/missing")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileNotFound))
}

func TestFromContent(t *testing.T) {
	id := memIdentifier(t)

	tests := []struct {
		name string
		path string
		want mimetype.TypeName
	}{
		{"directory", "/files/dir", mimetype.InodeDirectory},
		{"zero_size", "/files/empty.bin", mimetype.ZeroSize},
		{"magic", "/files/archive", "application/zip"},
		{"name_ignored", "/files/archive.named", "application/zip"},
		{"text", "/files/notes", mimetype.DefaultText},
		{"binary", "/files/blob", mimetype.DefaultBinary},
		{"low_priority_magic", "/files/low", "application/x-low"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := id.FromContent(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := id.FromContent("/files/missing")
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileNotFound))
}

func TestFromContent_PriorityBounds(t *testing.T) {
	f := testutil.NewFixture(t).Write("/files/low", "LOW level")
	id := newIdentifier(t, f.FS(), identify.Options{MaxPriority: 100, MinPriority: 50})

	got, err := id.FromContent("/files/low")
	require.NoError(t, err)
	assert.Equal(t, mimetype.DefaultText, got)
}

func TestFromContent_SniffWindow(t *testing.T) {
	data := strings.Repeat("a", 64) + "\x00"
	f := testutil.NewFixture(t).Write("/files/late-nul", data)

	id := newIdentifier(t, f.FS(), identify.Options{MaxPriority: 100, SniffBytes: 32})
	got, err := id.FromContent("/files/late-nul")
	require.NoError(t, err)
	assert.Equal(t, mimetype.DefaultText, got)

	id = newIdentifier(t, f.FS(), identify.Options{MaxPriority: 100, SniffBytes: 128})
	got, err = id.FromContent("/files/late-nul")
	require.NoError(t, err)
	assert.Equal(t, mimetype.DefaultBinary, got)
}

func TestExplain(t *testing.T) {
	id := memIdentifier(t)

	tests := []struct {
		path   string
		want   mimetype.TypeName
		method identify.Method
	}{
		{"/files/dir", mimetype.InodeDirectory, identify.MethodInode},
		{"/files/archive.named", "application/x-named", identify.MethodGlob},
		{"/files/archive", "application/zip", identify.MethodMagic},
		{"/files/notes", mimetype.DefaultText, identify.MethodText},
		{"/files/blob", mimetype.DefaultBinary, identify.MethodBinary},
		{"/files/empty.bin", mimetype.ZeroSize, identify.MethodZeroSize},
	}
	for _, tt := range tests {
		t.Run(filepath.Base(tt.path), func(t *testing.T) {
			res, err := id.Explain(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Type)
			assert.Equal(t, tt.method, res.Method)
			assert.Equal(t, tt.path, res.Path)

			got, err := id.Identify(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExplainContent(t *testing.T) {
	id := memIdentifier(t)

	// The name would say x-named; content alone says zip
	res, err := id.ExplainContent("/files/archive.named")
	require.NoError(t, err)
	assert.Equal(t, mimetype.TypeName("application/zip"), res.Type)
	assert.Equal(t, identify.MethodMagic, res.Method)
}

func TestIdentify_Symlink(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target.bin")
	require.NoError(t, os.WriteFile(target, []byte("PK\x03\x04data"), 0644))
	link := filepath.Join(dir, "link")
	require.NoError(t, os.Symlink(target, link))

	id := newIdentifier(t, filesystem.NewOS(), identify.DefaultOptions())

	got, ok, err := id.FromInode(link)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, mimetype.InodeSymlink, got)

	got, err = id.FromContent(link)
	require.NoError(t, err)
	assert.Equal(t, mimetype.TypeName("application/zip"), got)

	got, err = id.Identify(link)
	require.NoError(t, err)
	assert.Equal(t, mimetype.TypeName("application/zip"), got)
}

func TestFromScheme(t *testing.T) {
	tests := []struct {
		uri     string
		want    mimetype.TypeName
		wantErr bool
	}{
		{"http://example.com", "x-scheme-handler/http", false},
		{"MAILTO:someone@example.com", "x-scheme-handler/mailto", false},
		{"file:///tmp/a.txt", "x-scheme-handler/file", false},
		{"report.txt", "", true},
		{"/tmp/a.txt", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			got, err := identify.FromScheme(tt.uri)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsText(t *testing.T) {
	assert.True(t, identify.IsText([]byte("plain\r\n\ttext\x1b[0m\x07\x08\x0c")))
	assert.True(t, identify.IsText([]byte("caf\xc3\xa9")))
	assert.True(t, identify.IsText(nil))
	assert.False(t, identify.IsText([]byte("nul\x00byte")))
	assert.False(t, identify.IsText([]byte{0x01}))
	assert.False(t, identify.IsText([]byte{0x0b}))
}
