package associations

import (
	"path/filepath"
	"slices"

	"github.com/arthur-debert/xdgmime/pkg/errors"
	"github.com/arthur-debert/xdgmime/pkg/filesystem"
	"github.com/arthur-debert/xdgmime/pkg/inifile"
	"github.com/arthur-debert/xdgmime/pkg/logging"
	"github.com/arthur-debert/xdgmime/pkg/mimetype"
	"github.com/arthur-debert/xdgmime/pkg/paths"
	"github.com/rs/zerolog"
	"gopkg.in/ini.v1"
)

// Section names of mimeapps.list and mimeinfo.cache
const (
	SectionAdded    = "Added Associations"
	SectionRemoved  = "Removed Associations"
	SectionDefaults = "Default Applications"

	SectionCache     = "MIME Cache"
	SectionViewCache = "MIME View Cache"
	SectionEditCache = "MIME Edit Cache"
	SectionCategory  = "Category Cache"
)

// File names below the config and data roots
const (
	ListFileName  = "mimeapps.list"
	CacheFileName = "mimeinfo.cache"
)

// Action selects which cache sections are consulted
type Action int

const (
	// ActionOpen reads [MIME Cache]
	ActionOpen Action = 1 << iota
	// ActionView reads [MIME View Cache]
	ActionView
	// ActionEdit reads [MIME Edit Cache]
	ActionEdit

	// ActionAll reads edit, view and open caches, in that order
	ActionAll = ActionOpen | ActionView | ActionEdit
)

var actionSections = []struct {
	action  Action
	section string
}{
	{ActionEdit, SectionEditCache},
	{ActionView, SectionViewCache},
	{ActionOpen, SectionCache},
}

// ParseAction maps a name to an Action
func ParseAction(name string) (Action, error) {
	switch name {
	case "open":
		return ActionOpen, nil
	case "view":
		return ActionView, nil
	case "edit":
		return ActionEdit, nil
	case "all", "":
		return ActionAll, nil
	default:
		return 0, errors.Newf(errors.ErrInvalidInput, "unknown action %q", name).
			WithDetail("valid", []string{"open", "view", "edit", "all"})
	}
}

// Record is everything the sources say about one type
type Record struct {
	Type    mimetype.TypeName `json:"type"`
	Default []string          `json:"default,omitempty"`
	Added   []string          `json:"added,omitempty"`
	Removed []string          `json:"removed,omitempty"`
	Cached  []string          `json:"cached,omitempty"`
}

// Store holds the merged association sources. It is immutable after Load.
type Store struct {
	added      map[mimetype.TypeName][]string
	removed    map[mimetype.TypeName][]string
	defaults   map[mimetype.TypeName][]string
	cache      map[string]map[mimetype.TypeName][]string
	categories map[string][]string
	sources    []string
	logger     zerolog.Logger
}

// Files lists the mimeapps.list and mimeinfo.cache files that exist, both
// highest priority first. Desktop specific lists (<desktop>-mimeapps.list)
// precede the generic list of the same directory.
func Files(fsys filesystem.FS, p paths.Paths, desktops []string) (lists, caches []string) {
	var names []string
	for _, d := range desktops {
		names = append(names, d+"-"+ListFileName)
	}
	names = append(names, ListFileName)

	for _, root := range p.ConfigRoots() {
		for _, name := range names {
			if path := filepath.Join(root, name); filesystem.IsFile(fsys, path) {
				lists = append(lists, path)
			}
		}
	}
	for _, root := range p.DataRoots() {
		for _, name := range names {
			if path := filepath.Join(root, paths.ApplicationsDir, name); filesystem.IsFile(fsys, path) {
				lists = append(lists, path)
			}
		}
	}
	caches = p.DataFiles(fsys, filepath.Join(paths.ApplicationsDir, CacheFileName))
	return lists, caches
}

// Load reads lists and caches, each ordered highest priority first. Missing
// files are skipped.
func Load(fsys filesystem.FS, lists, caches []string) (*Store, error) {
	s := &Store{
		added:      make(map[mimetype.TypeName][]string),
		removed:    make(map[mimetype.TypeName][]string),
		defaults:   make(map[mimetype.TypeName][]string),
		cache:      make(map[string]map[mimetype.TypeName][]string),
		categories: make(map[string][]string),
		logger:     logging.GetLogger("associations"),
	}

	for _, path := range lists {
		file, ok, err := s.read(fsys, path)
		if err != nil {
			return nil, err
		}
		if ok {
			s.mergeList(file, path)
		}
	}
	for _, path := range caches {
		file, ok, err := s.read(fsys, path)
		if err != nil {
			return nil, err
		}
		if ok {
			s.mergeCache(file, path)
		}
	}

	s.logger.Debug().
		Int("sources", len(s.sources)).
		Int("added", len(s.added)).
		Int("defaults", len(s.defaults)).
		Msg("Loaded associations")
	return s, nil
}

func (s *Store) read(fsys filesystem.FS, path string) (*ini.File, bool, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		if filesystem.Exists(fsys, path) {
			return nil, false, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", path)
		}
		return nil, false, nil
	}
	file, err := inifile.Parse(data)
	if err != nil {
		s.logger.Warn().Err(err).Str("source", path).Msg("Skipping unreadable association file")
		return nil, false, nil
	}
	s.sources = append(s.sources, path)
	return file, true, nil
}

// each calls fn for every key of section that is a valid type name.
func (s *Store) each(file *ini.File, section, source string, fn func(mimetype.TypeName, []string)) {
	sec, err := file.GetSection(section)
	if err != nil {
		return
	}
	for _, key := range sec.Keys() {
		mime, err := mimetype.Parse(key.Name())
		if err != nil {
			s.logger.Debug().
				Str("source", source).
				Str("section", section).
				Str("key", key.Name()).
				Msg("Skipping entry with invalid type")
			continue
		}
		fn(mime, inifile.List(key.String()))
	}
}

func (s *Store) mergeList(file *ini.File, source string) {
	s.each(file, SectionAdded, source, func(mime mimetype.TypeName, apps []string) {
		s.added[mime] = appendUnique(s.added[mime], apps)
	})
	s.each(file, SectionRemoved, source, func(mime mimetype.TypeName, apps []string) {
		s.removed[mime] = appendUnique(s.removed[mime], apps)
	})
	s.each(file, SectionDefaults, source, func(mime mimetype.TypeName, apps []string) {
		if _, ok := s.defaults[mime]; !ok && len(apps) > 0 {
			s.defaults[mime] = apps
		}
	})
}

func (s *Store) mergeCache(file *ini.File, source string) {
	for _, as := range actionSections {
		section := as.section
		s.each(file, section, source, func(mime mimetype.TypeName, apps []string) {
			if s.cache[section] == nil {
				s.cache[section] = make(map[mimetype.TypeName][]string)
			}
			s.cache[section][mime] = appendUnique(s.cache[section][mime], apps)
		})
	}
	if sec, err := file.GetSection(SectionCategory); err == nil {
		for _, key := range sec.Keys() {
			s.categories[key.Name()] = appendUnique(s.categories[key.Name()], inifile.List(key.String()))
		}
	}
}

func appendUnique(dst, items []string) []string {
	for _, item := range items {
		if !slices.Contains(dst, item) {
			dst = append(dst, item)
		}
	}
	return dst
}

// Sources returns the files that were read
func (s *Store) Sources() []string {
	return slices.Clone(s.sources)
}

// DefaultApplications returns the default list declared for t by the
// highest priority file that declares one.
func (s *Store) DefaultApplications(t mimetype.TypeName) []string {
	return slices.Clone(s.defaults[t])
}

// AddedApplications returns added associations, higher priority files first
func (s *Store) AddedApplications(t mimetype.TypeName) []string {
	return slices.Clone(s.added[t])
}

// RemovedApplications returns the union of removed associations
func (s *Store) RemovedApplications(t mimetype.TypeName) []string {
	return slices.Clone(s.removed[t])
}

// IsRemoved reports whether app was removed for t
func (s *Store) IsRemoved(t mimetype.TypeName, app string) bool {
	return slices.Contains(s.removed[t], app)
}

// CachedApplications returns the cached applications for t from the caches
// selected by action, without removing anything.
func (s *Store) CachedApplications(t mimetype.TypeName, action Action) []string {
	var out []string
	for _, as := range actionSections {
		if action&as.action == 0 {
			continue
		}
		out = appendUnique(out, s.cache[as.section][t])
	}
	return out
}

// ApplicationsForCategory returns cached applications of a desktop category
func (s *Store) ApplicationsForCategory(category string) []string {
	return slices.Clone(s.categories[category])
}

// Record gathers every list for t
func (s *Store) Record(t mimetype.TypeName, action Action) Record {
	return Record{
		Type:    t,
		Default: s.DefaultApplications(t),
		Added:   s.AddedApplications(t),
		Removed: s.RemovedApplications(t),
		Cached:  s.CachedApplications(t, action),
	}
}
