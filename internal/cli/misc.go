package cli

import (
	"fmt"

	"github.com/arthur-debert/xdgmime/internal/version"
	"github.com/arthur-debert/xdgmime/pkg/config"
	"github.com/arthur-debert/xdgmime/pkg/errors"
	"github.com/arthur-debert/xdgmime/pkg/ui/display"
	"github.com/spf13/cobra"
)

func newSourcesCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "sources",
		Short:   MsgSourcesShort,
		Long:    "Sources lists the search roots, every database and association file that was read, and how many rules each table holds.",
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.newApp(cmd)
			if err != nil {
				return err
			}
			db, err := a.database()
			if err != nil {
				return err
			}
			store, err := a.associations()
			if err != nil {
				return err
			}
			return a.renderer.RenderResult(&display.SourcesResult{
				Database:     db.Stats(),
				Associations: store.Sources(),
			})
		},
	}
}

func newConfigCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		GroupID: "misc",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: MsgConfigShowShort,
		Long:  "Show prints the configuration after merging defaults, config files, environment and flags.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.newApp(cmd)
			if err != nil {
				return err
			}
			doc, err := a.cfg.TOML()
			if err != nil {
				return errors.Wrap(err, errors.ErrInternal, "failed to encode configuration")
			}
			return a.renderer.RenderResult(&display.ConfigResult{
				Files:  a.configFiles,
				Config: a.cfg,
				TOML:   string(doc),
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "defaults",
		Short: MsgConfigDefaultsShort,
		Long:  "Defaults prints the built-in configuration file, a starting point for $XDG_CONFIG_HOME/xdgmime/config.toml.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), config.DefaultContent())
			return err
		},
	})
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "xdgmime version %s\n", version.Version)
			_, _ = fmt.Fprintf(out, "  commit: %s\n", version.Commit)
			_, _ = fmt.Fprintf(out, "  built:  %s\n", version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return GenCompletion(cmd.Root(), args[0], cmd.OutOrStdout())
		},
	}
}
