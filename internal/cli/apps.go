package cli

import (
	"github.com/arthur-debert/xdgmime/pkg/associations"
	"github.com/arthur-debert/xdgmime/pkg/errors"
	"github.com/arthur-debert/xdgmime/pkg/mimetype"
	"github.com/arthur-debert/xdgmime/pkg/ui/display"
	"github.com/spf13/cobra"
)

// typeCompletion offers the types named in the loaded globs
func typeCompletion(opts *globalOptions) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		a, err := opts.newApp(cmd)
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		db, err := a.database()
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		return mimetype.Names(db.Globs.Types()), cobra.ShellCompDirectiveNoFileComp
	}
}

func newAppsCmd(opts *globalOptions) *cobra.Command {
	var action string

	cmd := &cobra.Command{
		Use:               "apps TYPE",
		Short:             MsgAppsShort,
		Long:              MsgAppsLong,
		Example:           "  xdgmime apps text/plain\n  xdgmime apps --action edit image/png",
		GroupID:           "apps",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: typeCompletion(opts),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := mimetype.Parse(args[0])
			if err != nil {
				return err
			}
			act, err := associations.ParseAction(action)
			if err != nil {
				return err
			}

			a, err := opts.newApp(cmd)
			if err != nil {
				return err
			}
			resolver, err := a.resolver(act)
			if err != nil {
				return err
			}

			result := &display.AppsResult{
				Type:         t,
				Canonical:    a.db.Graph.Unalias(t),
				Applications: []display.App{},
			}
			for id := range resolver.BestApplications(t) {
				result.Applications = append(result.Applications, display.App{ID: id, Entry: a.entry(id)})
			}
			return a.renderer.RenderResult(result)
		},
	}

	cmd.Flags().StringVar(&action, "action", "all", MsgFlagAction)
	return cmd
}

func newDefaultCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:               "default TYPE",
		Short:             MsgDefaultShort,
		Long:              "Default prints the first application 'apps' would list. It fails when there is none.",
		GroupID:           "apps",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: typeCompletion(opts),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := mimetype.Parse(args[0])
			if err != nil {
				return err
			}
			a, err := opts.newApp(cmd)
			if err != nil {
				return err
			}
			resolver, err := a.resolver(associations.ActionAll)
			if err != nil {
				return err
			}

			id, ok := resolver.BestApplication(t)
			if !ok {
				return errors.Newf(errors.ErrAppNotFound, MsgErrNoApp, t).WithDetail("type", t.String())
			}
			return a.renderer.RenderResult(&display.AppsResult{
				Type:         t,
				Canonical:    a.db.Graph.Unalias(t),
				Applications: []display.App{{ID: id, Entry: a.entry(id)}},
			})
		},
	}
}

func newCategoryCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "category NAME",
		Short:   MsgCategoryShort,
		Long:    "Category lists the applications that mimeinfo.cache files file under a desktop category such as WebBrowser or TextEditor.",
		Example: "  xdgmime category WebBrowser",
		GroupID: "apps",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.newApp(cmd)
			if err != nil {
				return err
			}
			store, err := a.associations()
			if err != nil {
				return err
			}

			result := &display.AppsResult{Category: args[0], Applications: []display.App{}}
			for _, id := range store.ApplicationsForCategory(args[0]) {
				result.Applications = append(result.Applications, display.App{ID: id, Entry: a.entry(id)})
			}
			return a.renderer.RenderResult(result)
		},
	}
}
