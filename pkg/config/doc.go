// Package config loads xdgmime's settings.
//
// Layers are applied in order, later ones winning: the embedded defaults,
// the user's config.toml, an explicit file given on the command line, the
// XDGMIME_ environment variables and finally values set by CLI flags.
package config
