// Package identify determines the type of a file from its inode kind, its
// name and its content.
package identify

import (
	"io"
	"io/fs"
	"net/url"
	"path/filepath"

	"github.com/arthur-debert/xdgmime/pkg/errors"
	"github.com/arthur-debert/xdgmime/pkg/filesystem"
	"github.com/arthur-debert/xdgmime/pkg/globs"
	"github.com/arthur-debert/xdgmime/pkg/logging"
	"github.com/arthur-debert/xdgmime/pkg/magic"
	"github.com/arthur-debert/xdgmime/pkg/mimetype"
	"github.com/rs/zerolog"
)

// DefaultSniffBytes is how much content the text heuristic inspects
const DefaultSniffBytes = 1024

// Method names the step that produced a result
type Method string

const (
	MethodInode    Method = "inode"
	MethodGlob     Method = "glob"
	MethodZeroSize Method = "zero-size"
	MethodMagic    Method = "magic"
	MethodText     Method = "text"
	MethodBinary   Method = "binary"
)

// Result is a type together with how it was found
type Result struct {
	Path   string            `json:"path"`
	Type   mimetype.TypeName `json:"type"`
	Method Method            `json:"method"`
}

// Options tunes content matching
type Options struct {
	MaxPriority int
	MinPriority int
	SniffBytes  int
}

// DefaultOptions returns the priority bounds and sniff size used when the
// configuration says nothing.
func DefaultOptions() Options {
	return Options{
		MaxPriority: magic.DefaultMaxPriority,
		MinPriority: magic.DefaultMinPriority,
		SniffBytes:  DefaultSniffBytes,
	}
}

// Identifier combines the glob and magic tables with filesystem queries.
type Identifier struct {
	globs  *globs.Table
	magic  *magic.Table
	fs     filesystem.FS
	opts   Options
	logger zerolog.Logger
}

// New creates an Identifier
func New(globTable *globs.Table, magicTable *magic.Table, fsys filesystem.FS, opts Options) *Identifier {
	if opts.SniffBytes <= 0 {
		opts.SniffBytes = DefaultSniffBytes
	}
	return &Identifier{
		globs:  globTable,
		magic:  magicTable,
		fs:     fsys,
		opts:   opts,
		logger: logging.GetLogger("identify"),
	}
}

// FromName matches the base name of name against the glob table.
func (id *Identifier) FromName(name string) (mimetype.TypeName, bool) {
	return id.globs.Match(filepath.Base(name))
}

// FromInode returns the inode/* type of path, or false for regular files.
// Mount points are reported before directories. Symlinks are not followed.
func (id *Identifier) FromInode(path string) (mimetype.TypeName, bool, error) {
	info, err := id.fs.Lstat(path)
	if err != nil {
		return "", false, errors.FromFS(err, path)
	}

	if info.IsDir() {
		mounted, err := id.fs.IsMountPoint(path)
		if err != nil {
			id.logger.Debug().Err(err).Str("path", path).Msg("Mount point check failed")
		}
		if mounted {
			return mimetype.InodeMountPoint, true, nil
		}
	}

	mode := info.Mode()
	switch {
	case mode&fs.ModeDevice != 0 && mode&fs.ModeCharDevice != 0:
		return mimetype.InodeCharDevice, true, nil
	case mode&fs.ModeDevice != 0:
		return mimetype.InodeBlockDevice, true, nil
	case mode.IsDir():
		return mimetype.InodeDirectory, true, nil
	case mode&fs.ModeNamedPipe != 0:
		return mimetype.InodeFifo, true, nil
	case mode&fs.ModeSymlink != 0:
		return mimetype.InodeSymlink, true, nil
	case mode&fs.ModeSocket != 0:
		return mimetype.InodeSocket, true, nil
	}
	return "", false, nil
}

// FromContent identifies path without looking at its name: special inodes
// other than symlinks, then empty files, then magic, then the text
// heuristic.
func (id *Identifier) FromContent(path string) (mimetype.TypeName, error) {
	res, err := id.ExplainContent(path)
	return res.Type, err
}

// ExplainContent is FromContent with the method that decided.
func (id *Identifier) ExplainContent(path string) (Result, error) {
	mime, ok, err := id.FromInode(path)
	if err != nil {
		return Result{}, err
	}
	if ok && mime != mimetype.InodeSymlink {
		return Result{Path: path, Type: mime, Method: MethodInode}, nil
	}

	info, err := id.fs.Stat(path)
	if err != nil {
		return Result{}, errors.FromFS(err, path)
	}
	if info.Size() == 0 {
		return Result{Path: path, Type: mimetype.ZeroSize, Method: MethodZeroSize}, nil
	}

	buf, err := id.head(path, max(id.magic.MaxLength(), id.opts.SniffBytes))
	if err != nil {
		return Result{}, err
	}

	if found, ok := id.magic.MatchData(buf, id.opts.MaxPriority, id.opts.MinPriority); ok {
		return Result{Path: path, Type: found, Method: MethodMagic}, nil
	}

	if IsText(buf[:min(len(buf), id.opts.SniffBytes)]) {
		return Result{Path: path, Type: mimetype.DefaultText, Method: MethodText}, nil
	}
	return Result{Path: path, Type: mimetype.DefaultBinary, Method: MethodBinary}, nil
}

// head reads up to n bytes from the start of path
func (id *Identifier) head(path string, n int) ([]byte, error) {
	f, err := id.fs.Open(path)
	if err != nil {
		return nil, errors.FromFS(err, path)
	}
	defer func() { _ = f.Close() }()

	buf, err := io.ReadAll(io.LimitReader(f, int64(n)))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", path)
	}
	return buf, nil
}

// FromScheme returns x-scheme-handler/<scheme> for uri.
func (id *Identifier) FromScheme(uri string) (mimetype.TypeName, error) {
	return FromScheme(uri)
}

// FromScheme returns x-scheme-handler/<scheme> for uri. A URI without a
// scheme is rejected.
func FromScheme(uri string) (mimetype.TypeName, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidInput, "%q is not a valid URI", uri)
	}
	if u.Scheme == "" {
		return "", errors.Newf(errors.ErrInvalidInput, "%q does not have a scheme", uri).
			WithDetail("uri", uri)
	}
	return mimetype.Scheme(u.Scheme), nil
}

// Identify returns the type of path: special inodes first, then the file
// name, then the content.
func (id *Identifier) Identify(path string) (mimetype.TypeName, error) {
	res, err := id.Explain(path)
	return res.Type, err
}

// Explain is Identify with the method that decided.
func (id *Identifier) Explain(path string) (Result, error) {
	mime, ok, err := id.FromInode(path)
	if err != nil {
		return Result{}, err
	}
	if ok && mime != mimetype.InodeSymlink {
		return Result{Path: path, Type: mime, Method: MethodInode}, nil
	}

	if mime, ok := id.FromName(path); ok {
		return Result{Path: path, Type: mime, Method: MethodGlob}, nil
	}

	res, err := id.ExplainContent(path)
	if err != nil {
		return Result{}, err
	}
	id.logger.Debug().
		Str("path", path).
		Str("type", res.Type.String()).
		Str("method", string(res.Method)).
		Msg("Identified by content")
	return res, nil
}

// IsText applies the file(1) heuristic: data is text unless it holds a
// control byte other than BEL, BS, HT, LF, FF, CR or ESC.
func IsText(data []byte) bool {
	for _, b := range data {
		if b >= 0x20 {
			continue
		}
		switch b {
		case 7, 8, 9, 10, 12, 13, 27:
			continue
		}
		return false
	}
	return true
}
