// Package ui renders command results as styled terminal output, plain text
// or JSON.
package ui

import (
	"io"
	"os"

	"github.com/arthur-debert/xdgmime/pkg/errors"
	"github.com/arthur-debert/xdgmime/pkg/ui/json"
	"github.com/arthur-debert/xdgmime/pkg/ui/terminal"
	"github.com/arthur-debert/xdgmime/pkg/ui/text"
)

// Renderer is implemented by every output format. RenderResult accepts the
// result types of package display.
type Renderer interface {
	RenderResult(result any) error
	RenderError(err error) error
	RenderMessage(msg string) error
}

// NewRenderer returns the renderer for format writing to w. FormatAuto
// inspects w: an *os.File is checked for a capable terminal, any other
// writer gets plain text.
func NewRenderer(format Format, w io.Writer) (Renderer, error) {
	if format == FormatAuto {
		format = FormatText
		if f, ok := w.(*os.File); ok {
			format = DetectFormat(f)
		}
	}

	switch format {
	case FormatTerminal:
		return terminal.New(w)
	case FormatText:
		return text.New(w)
	case FormatJSON:
		return json.New(w)
	}
	return nil, errors.Newf(errors.ErrInvalidInput, "unknown format: %v", format)
}
