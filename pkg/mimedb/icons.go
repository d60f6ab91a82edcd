package mimedb

import (
	"bufio"
	"io"
	"strings"

	"github.com/arthur-debert/xdgmime/pkg/mimetype"
	"github.com/rs/zerolog"
)

// iconTable maps types to icon names. Later entries replace earlier ones.
type iconTable map[mimetype.TypeName]string

func (t iconTable) parse(r io.Reader, source string, logger zerolog.Logger) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		name, icon, ok := strings.Cut(line, ":")
		mime, err := mimetype.Parse(name)
		if !ok || err != nil || icon == "" || strings.Contains(icon, ":") {
			logger.Debug().
				Str("source", source).
				Int("line", lineNo).
				Msg("Skipping malformed icon line")
			continue
		}
		t[mime] = icon
	}
	return scanner.Err()
}
