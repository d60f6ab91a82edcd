package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort           = "Identify file types and the applications that open them"
	MsgTypeShort           = "Identify files by inode, name and content"
	MsgNameShort           = "Identify by file name alone"
	MsgContentShort        = "Identify by file content alone"
	MsgSchemeShort         = "Map URIs to x-scheme-handler types"
	MsgAppsShort           = "List the applications for a type, best first"
	MsgDefaultShort        = "Print the preferred application for a type"
	MsgCategoryShort       = "List the applications in a desktop category"
	MsgInfoShort           = "Show everything known about a type"
	MsgIsShort             = "Check whether a type is a subclass of another"
	MsgExtensionsShort     = "List the file extensions registered for a type"
	MsgSourcesShort        = "Show which files the database was loaded from"
	MsgConfigShort         = "Inspect the configuration"
	MsgConfigShowShort     = "Print the effective configuration"
	MsgConfigDefaultsShort = "Print the built-in default configuration"
	MsgVersionShort        = "Print version information"
	MsgCompletionShort     = "Generate shell completion script"

	// Flag descriptions
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagFormat  = "Output format: auto, term, text or json"
	MsgFlagConfig  = "Read configuration from this file as well"
	MsgFlagDataDir = "Use this data directory instead of the XDG ones (repeatable)"
	MsgFlagAction  = "Cache section to consult: open, view, edit or all"
	MsgFlagLang    = "Language of the type description"

	// Error messages
	MsgErrNoApp        = "no application handles %s"
	MsgErrUnknownShell = "unknown shell %q"
)

var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw) + "\n"

	//go:embed msgs/type-long.txt
	msgTypeLongRaw string
	MsgTypeLong    = strings.TrimSpace(msgTypeLongRaw)

	//go:embed msgs/apps-long.txt
	msgAppsLongRaw string
	MsgAppsLong    = strings.TrimSpace(msgAppsLongRaw)
)
