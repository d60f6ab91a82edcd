// Package paths resolves the XDG base directories xdgmime reads from.
//
// Search roots are ordered from highest to lowest priority: the user's home
// directory first, then the system directories. A file found under an
// earlier root takes precedence over the same file under a later root.
//
// # Environment Variables
//
//   - XDG_DATA_HOME, XDG_DATA_DIRS: where mime/ and applications/ live
//   - XDG_CONFIG_HOME, XDG_CONFIG_DIRS: where mimeapps.list lives
//   - XDG_STATE_HOME: where the log file is written
//   - XDGMIME_CONFIG_DIR: overrides the directory holding config.toml
//
// Explicit overrides passed through Options replace the XDG lists entirely.
package paths
