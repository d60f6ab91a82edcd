// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"

	"github.com/arthur-debert/xdgmime/pkg/ui/display"
	"github.com/arthur-debert/xdgmime/pkg/ui/styles"
	"github.com/arthur-debert/xdgmime/pkg/ui/text"
	"github.com/pterm/pterm"
)

// Renderer provides rich terminal output. Lists with more than one column
// of information become tables; everything else is the text layout with
// styles applied.
type Renderer struct {
	output io.Writer
	styles *styles.Registry
	text   *text.Renderer
}

// New creates a new terminal renderer
func New(w io.Writer) (*Renderer, error) {
	reg := styles.Default()
	return &Renderer{
		output: w,
		styles: reg,
		text:   text.NewStyled(w, reg.Render),
	}, nil
}

// RenderResult renders any result type with rich terminal formatting
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case *display.IdentifyResult:
		if len(v.Items) > 1 {
			return r.identifyTable(v)
		}
	case *display.AppsResult:
		return r.appsTable(v)
	}
	return r.text.RenderResult(result)
}

func (r *Renderer) identifyTable(v *display.IdentifyResult) error {
	data := pterm.TableData{{"Input", "Type", "Method"}}
	for _, item := range v.Items {
		switch {
		case item.Error != "":
			data = append(data, []string{item.Input, r.styles.Render("Error", item.Error), ""})
		case item.Type.IsZero():
			data = append(data, []string{item.Input, r.styles.Render("NoContent", "unknown"), ""})
		default:
			data = append(data, []string{
				item.Input,
				r.styles.Render("Type", item.Type.String()),
				r.styles.Render("Method", string(item.Method)),
			})
		}
	}
	return r.table(data)
}

func (r *Renderer) appsTable(v *display.AppsResult) error {
	if len(v.Applications) == 0 {
		msg := "No applications handle " + v.Type.String()
		if v.Category != "" {
			msg = "No applications in category " + v.Category
		}
		_, err := fmt.Fprintln(r.output, r.styles.Render("NoContent", msg))
		return err
	}
	data := pterm.TableData{{"#", "Application", "Name", "Path"}}
	for i, app := range v.Applications {
		name, path := "", ""
		if app.Entry != nil {
			name, path = app.Entry.Name, app.Entry.Path
		}
		data = append(data, []string{
			fmt.Sprint(i + 1),
			r.styles.Render("App", app.ID),
			name,
			r.styles.Render("Path", path),
		})
	}
	return r.table(data)
}

func (r *Renderer) table(data pterm.TableData) error {
	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(r.output, out)
	return err
}

// RenderError renders an error with appropriate formatting
func (r *Renderer) RenderError(err error) error {
	return r.text.RenderError(err)
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	return r.text.RenderMessage(msg)
}
