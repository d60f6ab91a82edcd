// Package mimetype defines TypeName, the "media/subtype" value every other
// package passes around, together with the well-known names produced by the
// identification front-end.
package mimetype

import (
	"strings"

	"github.com/arthur-debert/xdgmime/pkg/errors"
)

// Well-known type names
const (
	DefaultText   TypeName = "text/plain"
	DefaultBinary TypeName = "application/octet-stream"
	ZeroSize      TypeName = "application/x-zerosize"

	InodeMountPoint  TypeName = "inode/mount-point"
	InodeBlockDevice TypeName = "inode/blockdevice"
	InodeCharDevice  TypeName = "inode/chardevice"
	InodeDirectory   TypeName = "inode/directory"
	InodeFifo        TypeName = "inode/fifo"
	InodeSymlink     TypeName = "inode/symlink"
	InodeSocket      TypeName = "inode/socket"
)

// SchemePrefix is prepended to a URI scheme to form its handler type.
const SchemePrefix = "x-scheme-handler/"

// TypeName is a MIME type such as "text/plain". The zero value means "no type".
type TypeName string

// Parse validates s and returns it as a TypeName. Parameters after ';' and
// surrounding blanks are dropped, so "text/plain; charset=UTF-8" parses as
// "text/plain".
func Parse(s string) (TypeName, error) {
	if i := strings.IndexByte(s, ';'); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimSpace(s)

	media, sub, ok := strings.Cut(s, "/")
	if !ok || media == "" || sub == "" || strings.Contains(sub, "/") {
		return "", errors.Newf(errors.ErrInvalidInput, "invalid MIME type %q: expected media/subtype", s).
			WithDetail("type", s)
	}
	return TypeName(s), nil
}

// MustParse is like Parse but panics on malformed input. Intended for
// constants and tests.
func MustParse(s string) TypeName {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Scheme returns the handler type for a URI scheme, e.g. "x-scheme-handler/http".
func Scheme(scheme string) TypeName {
	return TypeName(SchemePrefix + strings.ToLower(scheme))
}

// String implements fmt.Stringer
func (t TypeName) String() string {
	return string(t)
}

// IsZero reports whether t is the empty type name.
func (t TypeName) IsZero() bool {
	return t == ""
}

// Media returns the part before the slash ("text" for "text/plain").
func (t TypeName) Media() string {
	media, _, _ := strings.Cut(string(t), "/")
	return media
}

// Subtype returns the part after the slash ("plain" for "text/plain").
func (t TypeName) Subtype() string {
	_, sub, _ := strings.Cut(string(t), "/")
	return sub
}

// Icon returns the icon name derived from the type name ("text-plain").
func (t TypeName) Icon() string {
	return strings.ReplaceAll(string(t), "/", "-")
}

// Generic returns the "media/x-generic" fallback type for t.
func (t TypeName) Generic() TypeName {
	return TypeName(t.Media() + "/x-generic")
}

// IsDefault reports whether t is one of the fallback types returned when
// nothing more specific is known.
func (t TypeName) IsDefault() bool {
	return t == DefaultText || t == DefaultBinary
}

// Names converts a slice of type names to strings.
func Names(types []TypeName) []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = string(t)
	}
	return out
}
