// Package inifile reads the freedesktop flavour of ini files: desktop
// entries, mimeapps.list and mimeinfo.cache.
package inifile

import (
	"strings"

	"gopkg.in/ini.v1"
)

// loadOptions keeps values verbatim. Semicolons separate list items and
// '#' may appear in Exec lines, so inline comments are not recognised.
var loadOptions = ini.LoadOptions{
	IgnoreInlineComment:     true,
	KeyValueDelimiters:      "=",
	SkipUnrecognizableLines: true,
	PreserveSurroundedQuote: true,
}

// Parse reads data into an ini.File
func Parse(data []byte) (*ini.File, error) {
	return ini.LoadSources(loadOptions, data)
}

// List splits a semicolon separated value. Empty items are dropped and a
// missing trailing semicolon is accepted.
func List(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ";") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Bool reads a desktop entry boolean, which is "true" or "false".
func Bool(value string) bool {
	return strings.TrimSpace(value) == "true"
}
