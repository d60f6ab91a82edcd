// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/xdgmime/pkg/ui/display"
)

// Styler decorates s with the named style. The text renderer uses the
// identity; the terminal renderer plugs in its style registry.
type Styler func(style, s string) string

func plain(_, s string) string { return s }

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
	style  Styler
}

// New creates a new text renderer
func New(output io.Writer) (*Renderer, error) {
	return NewStyled(output, plain), nil
}

// NewStyled creates a text renderer whose labels and values pass through
// style.
func NewStyled(output io.Writer, style Styler) *Renderer {
	if style == nil {
		style = plain
	}
	return &Renderer{output: output, style: style}
}

// RenderResult renders any result type as plain text
func (r *Renderer) RenderResult(result interface{}) error {
	_, err := io.WriteString(r.output, r.Format(result))
	return err
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	_, err2 := fmt.Fprintf(r.output, "%s %v\n", r.style("Error", "Error:"), err)
	return err2
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}

// Format returns the text form of result, newline terminated unless
// there is nothing to print.
func (r *Renderer) Format(result interface{}) string {
	var b strings.Builder
	switch v := result.(type) {
	case *display.IdentifyResult:
		for _, item := range v.Items {
			r.identified(&b, item)
		}
	case *display.AppsResult:
		for _, app := range v.Applications {
			b.WriteString(r.style("App", app.ID))
			if app.Entry != nil && app.Entry.Name != "" {
				b.WriteString("\t" + r.style("Muted", app.Entry.Name))
			}
			b.WriteByte('\n')
		}
	case *display.TypeInfo:
		r.typeInfo(&b, v)
	case *display.InstanceResult:
		verb := "is not"
		if v.Instance {
			verb = "is"
		}
		fmt.Fprintf(&b, "%s %s %s\n", r.style("Type", v.Type.String()), verb, r.style("Type", v.Parent.String()))
	case *display.ExtensionsResult:
		for _, ext := range v.Extensions {
			b.WriteString(ext + "\n")
		}
	case *display.SourcesResult:
		r.sources(&b, v)
	case *display.ConfigResult:
		for _, f := range v.Files {
			b.WriteString(r.style("Muted", "# "+f) + "\n")
		}
		b.WriteString(v.TOML)
		if v.TOML != "" && !strings.HasSuffix(v.TOML, "\n") {
			b.WriteByte('\n')
		}
	default:
		fmt.Fprintf(&b, "%+v\n", result)
	}
	return b.String()
}

func (r *Renderer) identified(b *strings.Builder, item display.IdentifiedItem) {
	b.WriteString(item.Input + ": ")
	switch {
	case item.Error != "":
		b.WriteString(r.style("Error", "error: "+item.Error))
	case item.Type.IsZero():
		b.WriteString(r.style("NoContent", "unknown"))
	default:
		b.WriteString(r.style("Type", item.Type.String()))
	}
	b.WriteByte('\n')
}

func (r *Renderer) field(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "%s %s\n", r.style("Label", label+":"), value)
}

func joinTypes[T fmt.Stringer](items []T) string {
	s := make([]string, len(items))
	for i, item := range items {
		s[i] = item.String()
	}
	return strings.Join(s, ", ")
}

func (r *Renderer) typeInfo(b *strings.Builder, info *display.TypeInfo) {
	b.WriteString(r.style("Header", info.Type.String()) + "\n")
	if info.Canonical != info.Type {
		r.field(b, "Canonical", r.style("Type", info.Canonical.String()))
	}
	if d := info.Description; d != nil {
		r.field(b, "Comment", d.Comment)
		acronym := d.Acronym
		if d.ExpandedAcronym != "" {
			acronym += " (" + d.ExpandedAcronym + ")"
		}
		r.field(b, "Acronym", strings.TrimSpace(acronym))
	}
	r.field(b, "Aliases", joinTypes(info.Aliases))
	r.field(b, "Parents", joinTypes(info.Parents))
	r.field(b, "Ancestors", joinTypes(info.Ancestors))
	r.field(b, "Extensions", strings.Join(info.Extensions, ", "))
	r.field(b, "Icon", info.Icon)
	r.field(b, "Generic icon", info.GenericIcon)
	if a := info.Associations; a != nil {
		r.field(b, "Default", strings.Join(a.Default, ", "))
		r.field(b, "Added", strings.Join(a.Added, ", "))
		r.field(b, "Removed", strings.Join(a.Removed, ", "))
		r.field(b, "Cached", strings.Join(a.Cached, ", "))
	}
	if info.Default != "" {
		r.field(b, "Opens with", r.style("App", info.Default))
	}
}

func (r *Renderer) sources(b *strings.Builder, s *display.SourcesResult) {
	db := s.Database
	b.WriteString(r.style("Header", "Database") + "\n")
	for _, root := range db.Roots {
		r.field(b, "Root", root)
	}
	for _, src := range db.Sources {
		r.field(b, "Loaded", r.style("Path", src))
	}
	r.field(b, "Globs", fmt.Sprintf("%d literal, %d extension, %d pattern",
		db.Globs.Literals, db.Globs.Extensions, db.Globs.Globs))
	r.field(b, "Magic", fmt.Sprintf("%d types, %d rules", db.MagicTypes, db.MagicRules))
	r.field(b, "Aliases", fmt.Sprint(db.Aliases))
	r.field(b, "Subclassed", fmt.Sprint(db.Subclassed))
	r.field(b, "Icons", fmt.Sprint(db.Icons))
	if len(s.Associations) > 0 {
		b.WriteString("\n" + r.style("Header", "Associations") + "\n")
		for _, src := range s.Associations {
			b.WriteString(r.style("Path", src) + "\n")
		}
	}
}
