package magic

import (
	"bytes"

	"github.com/arthur-debert/xdgmime/pkg/mimetype"
)

// Rule is one record of a magic section. Rules form AND-chains through
// Next, the arena index of the successor rule or -1.
type Rule struct {
	Nest        int
	StartOffset int
	Value       []byte
	Mask        []byte
	WordSize    int
	RangeLength int
	Next        int
}

// Length is the number of bytes from the start of a file the rule can
// inspect.
func (r *Rule) Length() int {
	return r.StartOffset + len(r.Value) + r.RangeLength
}

// matchAt reports whether the rule's own value matches buf at some offset
// in its range. The chain is not followed.
func (r *Rule) matchAt(buf []byte) bool {
	n := len(r.Value)
	for i := 0; i < r.RangeLength; i++ {
		start := r.StartOffset + i
		end := start + n
		if end > len(buf) {
			return false
		}
		window := buf[start:end]
		if r.Mask == nil {
			if bytes.Equal(window, r.Value) {
				return true
			}
			continue
		}
		if maskedEqual(window, r.Mask, r.Value) {
			return true
		}
	}
	return false
}

func maskedEqual(window, mask, value []byte) bool {
	for i := range value {
		if window[i]&mask[i] != value[i] {
			return false
		}
	}
	return true
}

// Type is a section of the magic file: the type it confirms and the indexes
// of its top-level rules.
type Type struct {
	Name     mimetype.TypeName
	Priority int
	Top      []int
}
