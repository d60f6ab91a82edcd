package cli

import (
	"github.com/arthur-debert/xdgmime/pkg/errors"
	"github.com/arthur-debert/xdgmime/pkg/identify"
	"github.com/arthur-debert/xdgmime/pkg/ui/display"
	"github.com/spf13/cobra"
)

// examineFunc identifies one command line input
type examineFunc func(a *app, input string) (identify.Result, error)

// newIdentifyCmd builds a command that runs examine on every argument and
// renders the verdicts together. Inputs that fail are reported inline and
// turn the exit status to 1.
func newIdentifyCmd(opts *globalOptions, cmd *cobra.Command, examine examineFunc) *cobra.Command {
	cmd.GroupID = "identify"
	cmd.Args = cobra.MinimumNArgs(1)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		a, err := opts.newApp(cmd)
		if err != nil {
			return err
		}

		result := &display.IdentifyResult{Command: cmd.Name()}
		failed := false
		for _, input := range args {
			item := display.IdentifiedItem{Input: input}
			res, err := examine(a, input)
			if err != nil {
				// Problems loading the database are not about this input
				if errors.IsErrorCode(err, errors.ErrDatabaseLoad) {
					return err
				}
				item.Error = err.Error()
				failed = true
			} else {
				item.Type = res.Type
				item.Method = res.Method
			}
			result.Items = append(result.Items, item)
		}

		if err := a.renderer.RenderResult(result); err != nil {
			return err
		}
		if failed {
			return &ExitError{Code: 1}
		}
		return nil
	}
	return cmd
}

func newTypeCmd(opts *globalOptions) *cobra.Command {
	return newIdentifyCmd(opts, &cobra.Command{
		Use:     "type PATH...",
		Short:   MsgTypeShort,
		Long:    MsgTypeLong,
		Example: "  xdgmime type ~/Downloads/*\n  xdgmime --format json type report.pdf",
	}, func(a *app, input string) (identify.Result, error) {
		id, err := a.identifier()
		if err != nil {
			return identify.Result{}, err
		}
		return id.Explain(input)
	})
}

func newNameCmd(opts *globalOptions) *cobra.Command {
	return newIdentifyCmd(opts, &cobra.Command{
		Use:     "name NAME...",
		Short:   MsgNameShort,
		Long:    "Name matches each NAME against the glob rules. The file does not need to exist.",
		Example: "  xdgmime name photo.JPG Makefile",
	}, func(a *app, input string) (identify.Result, error) {
		id, err := a.identifier()
		if err != nil {
			return identify.Result{}, err
		}
		res := identify.Result{Path: input}
		if t, ok := id.FromName(input); ok {
			res.Type, res.Method = t, identify.MethodGlob
		}
		return res, nil
	})
}

func newContentCmd(opts *globalOptions) *cobra.Command {
	return newIdentifyCmd(opts, &cobra.Command{
		Use:   "content PATH...",
		Short: MsgContentShort,
		Long:  "Content ignores file names: special files get their inode type, everything else is decided by magic rules and the text guess.",
	}, func(a *app, input string) (identify.Result, error) {
		id, err := a.identifier()
		if err != nil {
			return identify.Result{}, err
		}
		return id.ExplainContent(input)
	})
}

func newSchemeCmd(opts *globalOptions) *cobra.Command {
	return newIdentifyCmd(opts, &cobra.Command{
		Use:     "scheme URI...",
		Short:   MsgSchemeShort,
		Example: "  xdgmime scheme https://example.org mailto:someone@example.org",
	}, func(_ *app, input string) (identify.Result, error) {
		t, err := identify.FromScheme(input)
		if err != nil {
			return identify.Result{}, err
		}
		return identify.Result{Path: input, Type: t}, nil
	})
}
