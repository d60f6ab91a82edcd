// Package display defines the result structures commands hand to the
// renderers. Every renderer understands every type here.
package display

import (
	"github.com/arthur-debert/xdgmime/pkg/associations"
	"github.com/arthur-debert/xdgmime/pkg/config"
	"github.com/arthur-debert/xdgmime/pkg/desktop"
	"github.com/arthur-debert/xdgmime/pkg/identify"
	"github.com/arthur-debert/xdgmime/pkg/mimedb"
	"github.com/arthur-debert/xdgmime/pkg/mimetype"
)

// IdentifyResult lists the types found for a set of inputs
type IdentifyResult struct {
	Command string           `json:"command"` // "type", "name", "content", "scheme"
	Items   []IdentifiedItem `json:"items"`
}

// IdentifiedItem is one input and its verdict. Type is empty when nothing
// matched and Error is set when the input could not be examined.
type IdentifiedItem struct {
	Input  string            `json:"input"`
	Type   mimetype.TypeName `json:"type,omitempty"`
	Method identify.Method   `json:"method,omitempty"`
	Error  string            `json:"error,omitempty"`
}

// AppsResult is the ordered list of applications for a type, or for a
// desktop category when Category is set.
type AppsResult struct {
	Type         mimetype.TypeName `json:"type,omitempty"`
	Canonical    mimetype.TypeName `json:"canonical,omitempty"`
	Category     string            `json:"category,omitempty"`
	Applications []App             `json:"applications"`
}

// App is an application ID with whatever its desktop entry tells us
type App struct {
	ID    string         `json:"id"`
	Entry *desktop.Entry `json:"entry,omitempty"`
}

// TypeInfo gathers everything known about a type
type TypeInfo struct {
	Type         mimetype.TypeName    `json:"type"`
	Canonical    mimetype.TypeName    `json:"canonical"`
	Aliases      []mimetype.TypeName  `json:"aliases,omitempty"`
	Parents      []mimetype.TypeName  `json:"parents,omitempty"`
	Ancestors    []mimetype.TypeName  `json:"ancestors,omitempty"`
	Extensions   []string             `json:"extensions,omitempty"`
	Icon         string               `json:"icon"`
	GenericIcon  string               `json:"generic_icon"`
	Description  *mimedb.Description  `json:"description,omitempty"`
	Associations *associations.Record `json:"associations,omitempty"`
	Default      string               `json:"default,omitempty"`
}

// InstanceResult answers "is Type a Parent"
type InstanceResult struct {
	Type     mimetype.TypeName `json:"type"`
	Parent   mimetype.TypeName `json:"parent"`
	Instance bool              `json:"instance"`
}

// ExtensionsResult lists the registered extensions of a type
type ExtensionsResult struct {
	Type       mimetype.TypeName `json:"type"`
	Extensions []string          `json:"extensions"`
}

// SourcesResult describes where the data was loaded from
type SourcesResult struct {
	Database     mimedb.Stats `json:"database"`
	Associations []string     `json:"associations"`
}

// ConfigResult is the effective configuration. TOML is what the text
// renderers print.
type ConfigResult struct {
	Files  []string       `json:"files,omitempty"`
	Config *config.Config `json:"config"`
	TOML   string         `json:"-"`
}
