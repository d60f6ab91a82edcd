package cli

import (
	"github.com/arthur-debert/xdgmime/pkg/associations"
	"github.com/arthur-debert/xdgmime/pkg/mimetype"
	"github.com/arthur-debert/xdgmime/pkg/ui/display"
	"github.com/spf13/cobra"
)

func newInfoCmd(opts *globalOptions) *cobra.Command {
	var lang string

	cmd := &cobra.Command{
		Use:               "info TYPE",
		Short:             MsgInfoShort,
		Long:              "Info shows the canonical name of TYPE with its aliases, parents, extensions, icons, description and associations.",
		Example:           "  xdgmime info application/x-gzip\n  xdgmime info --lang de text/plain",
		GroupID:           "types",
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
			if lang == "" {
				lang = a.cfg.Describe.Language
			}

			db := a.db
			canonical := db.Graph.Unalias(t)
			info := &display.TypeInfo{
				Type:        t,
				Canonical:   canonical,
				Aliases:     db.Graph.AliasesOf(canonical),
				Parents:     db.Graph.SubclassesOf(canonical),
				Ancestors:   db.Graph.Ancestors(canonical),
				Extensions:  db.Globs.ExtensionsFor(canonical),
				Icon:        db.Icon(canonical),
				GenericIcon: db.GenericIcon(canonical),
			}
			if len(info.Extensions) == 0 && canonical != t {
				info.Extensions = db.Globs.ExtensionsFor(t)
			}

			desc, found, err := db.Describe(canonical, lang)
			if err != nil {
				return err
			}
			if found {
				info.Description = desc
			}

			record := a.store.Record(canonical, associations.ActionAll)
			info.Associations = &record
			if app, ok := resolver.BestApplication(t); ok {
				info.Default = app
			}

			return a.renderer.RenderResult(info)
		},
	}

	cmd.Flags().StringVar(&lang, "lang", "", MsgFlagLang)
	return cmd
}

func newIsCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "is TYPE PARENT",
		Short: MsgIsShort,
		Long: `Is reports whether TYPE is PARENT or declares PARENT as a direct parent,
after resolving aliases of both. The exit status is 1 when it is not.`,
		Example: "  xdgmime is application/x-shellscript text/plain && echo text",
		GroupID: "types",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := mimetype.Parse(args[0])
			if err != nil {
				return err
			}
			parent, err := mimetype.Parse(args[1])
			if err != nil {
				return err
			}
			a, err := opts.newApp(cmd)
			if err != nil {
				return err
			}
			db, err := a.database()
			if err != nil {
				return err
			}

			result := &display.InstanceResult{
				Type:     t,
				Parent:   parent,
				Instance: db.Graph.IsInstance(db.Graph.Unalias(t), db.Graph.Unalias(parent)),
			}
			if err := a.renderer.RenderResult(result); err != nil {
				return err
			}
			if !result.Instance {
				return &ExitError{Code: 1}
			}
			return nil
		},
	}
}

func newExtensionsCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:               "extensions TYPE",
		Short:             MsgExtensionsShort,
		Long:              "Extensions lists the simple extensions registered for TYPE. The first one is the preferred extension.",
		GroupID:           "types",
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
			db, err := a.database()
			if err != nil {
				return err
			}

			exts := db.Globs.ExtensionsFor(db.Graph.Unalias(t))
			if len(exts) == 0 {
				exts = db.Globs.ExtensionsFor(t)
			}
			if exts == nil {
				exts = []string{}
			}
			return a.renderer.RenderResult(&display.ExtensionsResult{Type: t, Extensions: exts})
		},
	}
}
