// Package cli builds the xdgmime command tree.
package cli

import (
	"strconv"

	"github.com/arthur-debert/xdgmime/internal/version"
	"github.com/arthur-debert/xdgmime/pkg/cobrax/topics"
	"github.com/arthur-debert/xdgmime/pkg/filesystem"
	"github.com/arthur-debert/xdgmime/pkg/logging"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// globalOptions holds the persistent flags shared by every command
type globalOptions struct {
	verbosity int
	format    string
	config    string
	dataDirs  []string

	fs filesystem.FS
}

// ExitError ends the process with Code without printing anything more.
// Commands return it after they have already reported the outcome.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return "exit status " + strconv.Itoa(e.Code)
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(filesystem.NewOS())
}

func newRootCmd(fsys filesystem.FS) *cobra.Command {
	initTemplateFormatting()

	opts := &globalOptions{fs: fsys}

	rootCmd := &cobra.Command{
		Use:     "xdgmime",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(opts.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVarP(&opts.format, "format", "f", "auto", MsgFlagFormat)
	rootCmd.PersistentFlags().StringVarP(&opts.config, "config", "c", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringArrayVar(&opts.dataDirs, "data-dir", nil, MsgFlagDataDir)

	rootCmd.AddGroup(
		&cobra.Group{ID: "identify", Title: "IDENTIFY:"},
		&cobra.Group{ID: "apps", Title: "APPLICATIONS:"},
		&cobra.Group{ID: "types", Title: "TYPES:"},
		&cobra.Group{ID: "misc", Title: "MISC:"},
	)
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newTypeCmd(opts))
	rootCmd.AddCommand(newNameCmd(opts))
	rootCmd.AddCommand(newContentCmd(opts))
	rootCmd.AddCommand(newSchemeCmd(opts))
	rootCmd.AddCommand(newAppsCmd(opts))
	rootCmd.AddCommand(newDefaultCmd(opts))
	rootCmd.AddCommand(newCategoryCmd(opts))
	rootCmd.AddCommand(newInfoCmd(opts))
	rootCmd.AddCommand(newIsCmd(opts))
	rootCmd.AddCommand(newExtensionsCmd(opts))
	rootCmd.AddCommand(newSourcesCmd(opts))
	rootCmd.AddCommand(newConfigCmd(opts))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	// Topic help replaces cobra's help command; it only fails on an
	// unreadable embedded tree.
	if err := topics.InitializeWithOptions(rootCmd, helpTopics(), topics.Options{
		Extensions: []string{".md"},
		Renderer:   topics.NewGlamourRenderer(),
	}); err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}

	return rootCmd
}
