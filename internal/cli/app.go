package cli

import (
	"os"

	"github.com/arthur-debert/xdgmime/pkg/associations"
	"github.com/arthur-debert/xdgmime/pkg/config"
	"github.com/arthur-debert/xdgmime/pkg/desktop"
	"github.com/arthur-debert/xdgmime/pkg/errors"
	"github.com/arthur-debert/xdgmime/pkg/filesystem"
	"github.com/arthur-debert/xdgmime/pkg/identify"
	"github.com/arthur-debert/xdgmime/pkg/logging"
	"github.com/arthur-debert/xdgmime/pkg/mimedb"
	"github.com/arthur-debert/xdgmime/pkg/paths"
	"github.com/arthur-debert/xdgmime/pkg/ui"
	"github.com/spf13/cobra"
)

// app is what a command works with. The database and the associations are
// loaded on first use so that commands only pay for what they read.
type app struct {
	cfg         *config.Config
	configFiles []string
	paths       paths.Paths
	fs          filesystem.FS
	renderer    ui.Renderer

	db     *mimedb.Database
	ident  *identify.Identifier
	store  *associations.Store
	finder *desktop.Finder
}

// newApp loads the configuration and sets up the renderer for cmd
func (o *globalOptions) newApp(cmd *cobra.Command) (*app, error) {
	base := paths.New(paths.Options{})

	overrides := map[string]interface{}{}
	if cmd.Flags().Changed("format") {
		overrides["output.format"] = o.format
	}
	if len(o.dataDirs) > 0 {
		overrides["paths.data_dirs"] = o.dataDirs
	}

	cfg, err := config.Load(config.Options{
		UserFile:     base.ConfigFile(),
		ExplicitFile: o.config,
		Overrides:    overrides,
	})
	if err != nil {
		return nil, err
	}

	var files []string
	for _, f := range []string{base.ConfigFile(), o.config} {
		if f == "" {
			continue
		}
		if _, err := os.Stat(f); err == nil {
			files = append(files, f)
		}
	}

	format, err := ui.ParseFormat(cfg.Output.Format)
	if err != nil {
		return nil, err
	}
	renderer, err := ui.NewRenderer(format, cmd.OutOrStdout())
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:         cfg,
		configFiles: files,
		paths: paths.New(paths.Options{
			DataDirs:   cfg.Paths.DataDirs,
			ConfigDirs: cfg.Paths.ConfigDirs,
		}),
		fs:       o.fs,
		renderer: renderer,
	}, nil
}

func (a *app) database() (*mimedb.Database, error) {
	if a.db != nil {
		return a.db, nil
	}
	db, err := mimedb.Load(a.fs, a.paths.DataRoots())
	if err != nil {
		return nil, err
	}
	a.db = db
	return db, nil
}

func (a *app) identifier() (*identify.Identifier, error) {
	if a.ident != nil {
		return a.ident, nil
	}
	db, err := a.database()
	if err != nil {
		return nil, err
	}
	a.ident = identify.New(db.Globs, db.Magic, a.fs, identify.Options{
		MaxPriority: a.cfg.Magic.MaxPriority,
		MinPriority: a.cfg.Magic.MinPriority,
		SniffBytes:  a.cfg.Identify.SniffBytes,
	})
	return a.ident, nil
}

func (a *app) associations() (*associations.Store, error) {
	if a.store != nil {
		return a.store, nil
	}
	done := logging.LogOperationStart(logging.GetLogger("cli"), "load associations")
	defer done()

	lists, caches := associations.Files(a.fs, a.paths, a.cfg.Desktop.Current)
	store, err := associations.Load(a.fs, lists, caches)
	if err != nil {
		return nil, err
	}
	a.store = store
	a.finder = desktop.NewFinder(a.fs, a.paths.DataRoots())
	return store, nil
}

func (a *app) resolver(action associations.Action) (*associations.Resolver, error) {
	db, err := a.database()
	if err != nil {
		return nil, err
	}
	store, err := a.associations()
	if err != nil {
		return nil, err
	}
	return associations.NewResolver(store, db.Graph, a.finder, associations.WithAction(action)), nil
}

// entry loads the desktop entry for id, or nil when it cannot be read
func (a *app) entry(id string) *desktop.Entry {
	if a.finder == nil {
		return nil
	}
	e, err := a.finder.Load(id)
	if err != nil {
		if !errors.IsErrorCode(err, errors.ErrAppNotFound) {
			logger := logging.GetLogger("cli")
			logger.Debug().Err(err).Str("app", id).Msg("Unreadable desktop entry")
		}
		return nil
	}
	return e
}
