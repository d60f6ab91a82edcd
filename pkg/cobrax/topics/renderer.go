package topics

import (
	"os"

	"github.com/arthur-debert/xdgmime/pkg/logging"
	"github.com/charmbracelet/glamour"
)

// Renderer formats a topic document for the terminal. ext is the topic
// file's extension, dot included.
type Renderer interface {
	Render(content string, ext string) string
}

// PlainRenderer prints topics as they are
type PlainRenderer struct{}

// Render returns the content unchanged
func (PlainRenderer) Render(content string, _ string) string {
	return content
}

// GlamourRenderer renders markdown topics with glamour. Other documents
// and anything glamour rejects are printed as they are.
type GlamourRenderer struct {
	Style string // glamour style name or path; "" and "auto" detect from the terminal
	Width int    // word wrap column, 0 for glamour's default
}

// NewGlamourRenderer creates a renderer that picks its style from the
// terminal
func NewGlamourRenderer() *GlamourRenderer {
	return &GlamourRenderer{Style: "auto"}
}

func (r *GlamourRenderer) options() []glamour.TermRendererOption {
	var options []glamour.TermRendererOption
	switch {
	case os.Getenv("NO_COLOR") != "":
		options = append(options, glamour.WithStylePath("notty"))
	case r.Style != "" && r.Style != "auto":
		options = append(options, glamour.WithStylePath(r.Style))
	default:
		options = append(options, glamour.WithAutoStyle())
	}
	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}
	return options
}

// Render converts markdown to styled terminal output
func (r *GlamourRenderer) Render(content string, ext string) string {
	if ext != ".md" {
		return content
	}

	logger := logging.GetLogger("topics")
	renderer, err := glamour.NewTermRenderer(r.options()...)
	if err != nil {
		logger.Debug().Err(err).Msg("Markdown renderer unavailable")
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		logger.Debug().Err(err).Msg("Failed to render markdown topic")
		return content
	}
	return rendered
}
