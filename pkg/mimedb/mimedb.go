package mimedb

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/arthur-debert/xdgmime/pkg/errors"
	"github.com/arthur-debert/xdgmime/pkg/filesystem"
	"github.com/arthur-debert/xdgmime/pkg/globs"
	"github.com/arthur-debert/xdgmime/pkg/logging"
	"github.com/arthur-debert/xdgmime/pkg/magic"
	"github.com/arthur-debert/xdgmime/pkg/mimetype"
	"github.com/arthur-debert/xdgmime/pkg/paths"
	"github.com/arthur-debert/xdgmime/pkg/typegraph"
	"github.com/rs/zerolog"
)

// Source file names below <root>/mime
const (
	Globs2File       = "globs2"
	GlobsFile        = "globs"
	MagicFile        = "magic"
	AliasesFile      = "aliases"
	SubclassesFile   = "subclasses"
	IconsFile        = "icons"
	GenericIconsFile = "generic-icons"
)

// Database is the loaded, read-only MIME database. It is safe for
// concurrent use.
type Database struct {
	Globs *globs.Table
	Magic *magic.Table
	Graph *typegraph.Graph

	icons        iconTable
	genericIcons iconTable
	roots        []string
	fs           filesystem.FS
	sources      []string
}

// Stats summarises what was loaded
type Stats struct {
	Roots      []string    `json:"roots"`
	Sources    []string    `json:"sources"`
	Globs      globs.Stats `json:"globs"`
	MagicTypes int         `json:"magic_types"`
	MagicRules int         `json:"magic_rules"`
	Aliases    int         `json:"aliases"`
	Subclassed int         `json:"subclassed"`
	Icons      int         `json:"icons"`
}

type loader struct {
	fs      filesystem.FS
	logger  zerolog.Logger
	sources []string
}

// Load reads the database from roots, ordered from highest to lowest
// priority.
//
// Files whose entries replace one another (globs, aliases, icons) are read
// lowest priority first so the user's files win. Magic files are read
// highest priority first so that, within a priority, the user's sections are
// tried before the system's.
func Load(fsys filesystem.FS, roots []string) (*Database, error) {
	logger := logging.GetLogger("mimedb")
	done := logging.LogOperationStart(logger, "load mime database")
	defer done()

	l := &loader{fs: fsys, logger: logger}
	reversed := slices.Clone(roots)
	slices.Reverse(reversed)

	globBuilder := globs.NewBuilder()
	graphBuilder := typegraph.NewBuilder()
	icons := iconTable{}
	genericIcons := iconTable{}

	for _, root := range reversed {
		if err := l.read(root, Globs2File, globBuilder.Parse); err != nil {
			return nil, err
		}
		if !filesystem.IsFile(fsys, mimePath(root, Globs2File)) {
			if err := l.read(root, GlobsFile, globBuilder.ParseLegacy); err != nil {
				return nil, err
			}
		}
		if err := l.read(root, AliasesFile, graphBuilder.ParseAliases); err != nil {
			return nil, err
		}
		if err := l.read(root, SubclassesFile, graphBuilder.ParseSubclasses); err != nil {
			return nil, err
		}
		if err := l.read(root, IconsFile, func(r io.Reader, source string) error {
			return icons.parse(r, source, logger)
		}); err != nil {
			return nil, err
		}
		if err := l.read(root, GenericIconsFile, func(r io.Reader, source string) error {
			return genericIcons.parse(r, source, logger)
		}); err != nil {
			return nil, err
		}
	}

	magicBuilder := magic.NewBuilder()
	for _, root := range roots {
		if err := l.read(root, MagicFile, magicBuilder.Parse); err != nil {
			return nil, err
		}
	}

	db := &Database{
		Globs:        globBuilder.Build(),
		Magic:        magicBuilder.Build(),
		Graph:        graphBuilder.Build(),
		icons:        icons,
		genericIcons: genericIcons,
		roots:        slices.Clone(roots),
		fs:           fsys,
		sources:      l.sources,
	}

	logger.Info().
		Int("roots", len(roots)).
		Int("sources", len(l.sources)).
		Msg("Loaded mime database")
	return db, nil
}

// read feeds root/mime/name to parse when the file exists.
func (l *loader) read(root, name string, parse func(io.Reader, string) error) error {
	path := mimePath(root, name)
	data, err := l.fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, errors.ErrDatabaseLoad, "failed to read %s", path)
	}
	if err := parse(bytes.NewReader(data), path); err != nil {
		if errors.IsErrorCode(err, errors.ErrMagicFormat) {
			return err
		}
		return errors.Wrapf(err, errors.ErrDatabaseLoad, "failed to parse %s", path)
	}
	l.sources = append(l.sources, path)
	return nil
}

func mimePath(root, name string) string {
	return filepath.Join(root, paths.MimeDir, name)
}

// Roots returns the data roots the database was loaded from
func (db *Database) Roots() []string {
	return slices.Clone(db.roots)
}

// Stats reports what was loaded
func (db *Database) Stats() Stats {
	types, rules := db.Magic.Len()
	aliases, subclassed := db.Graph.Stats()
	return Stats{
		Roots:      db.Roots(),
		Sources:    slices.Clone(db.sources),
		Globs:      db.Globs.Stats(),
		MagicTypes: types,
		MagicRules: rules,
		Aliases:    aliases,
		Subclassed: subclassed,
		Icons:      len(db.icons) + len(db.genericIcons),
	}
}

// Icon returns the icon name for t: the entry from the icons file, or the
// type name with "/" replaced by "-".
func (db *Database) Icon(t mimetype.TypeName) string {
	if icon, ok := db.icons[t]; ok {
		return icon
	}
	return t.Icon()
}

// GenericIcon returns the generic icon for t: the entry from generic-icons,
// or "<media>-x-generic".
func (db *Database) GenericIcon(t mimetype.TypeName) string {
	if icon, ok := db.genericIcons[t]; ok {
		return icon
	}
	return t.Generic().Icon()
}
