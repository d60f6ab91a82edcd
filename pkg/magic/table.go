package magic

import (
	"cmp"
	"io"
	"slices"

	"github.com/arthur-debert/xdgmime/pkg/logging"
	"github.com/arthur-debert/xdgmime/pkg/mimetype"
	"github.com/rs/zerolog"
)

// Default priority bounds used when a caller has no preference.
const (
	DefaultMaxPriority = 100
	DefaultMinPriority = 0
)

// Table holds every rule loaded from magic files in a single arena. It is
// immutable once built.
type Table struct {
	rules     []Rule
	types     []Type
	maxLength int
}

// Builder accumulates magic files into a Table.
type Builder struct {
	table  *Table
	logger zerolog.Logger
}

// NewBuilder creates an empty builder
func NewBuilder() *Builder {
	return &Builder{
		table:  &Table{},
		logger: logging.GetLogger("magic"),
	}
}

func (b *Builder) clone() *Builder {
	return &Builder{
		table: &Table{
			rules:     slices.Clone(b.table.rules),
			types:     slices.Clone(b.table.types),
			maxLength: b.table.maxLength,
		},
		logger: b.logger,
	}
}

// Build orders sections by descending priority, keeping declaration order
// within a priority, and returns the table.
func (b *Builder) Build() *Table {
	t := b.table
	b.table = nil
	slices.SortStableFunc(t.types, func(x, y Type) int {
		return cmp.Compare(y.Priority, x.Priority)
	})
	return t
}

// MaxLength is the number of leading bytes any rule can inspect.
func (t *Table) MaxLength() int {
	return t.maxLength
}

// Len returns the number of sections and rules in the table
func (t *Table) Len() (types int, rules int) {
	return len(t.types), len(t.rules)
}

// Types returns the sections in match order
func (t *Table) Types() []Type {
	return slices.Clone(t.types)
}

// Rule returns the rule stored at index i of the arena.
func (t *Table) Rule(i int) Rule {
	return t.rules[i]
}

// matchChain reports whether the rule at idx and every rule chained after
// it match buf.
func (t *Table) matchChain(idx int, buf []byte) bool {
	for idx >= 0 {
		rule := &t.rules[idx]
		if !rule.matchAt(buf) {
			return false
		}
		idx = rule.Next
	}
	return true
}

func (t *Table) matchType(typ *Type, buf []byte) bool {
	for _, top := range typ.Top {
		if t.matchChain(top, buf) {
			return true
		}
	}
	return false
}

// MatchData returns the first type whose rules match buf. Sections with a
// priority above maxPriority are skipped and matching stops once priorities fall
// below minPriority.
func (t *Table) MatchData(buf []byte, maxPriority, minPriority int) (mimetype.TypeName, bool) {
	for i := range t.types {
		typ := &t.types[i]
		if typ.Priority > maxPriority {
			continue
		}
		if typ.Priority < minPriority {
			break
		}
		if t.matchType(typ, buf) {
			return typ.Name, true
		}
	}
	return "", false
}

// Match reads at most MaxLength bytes from r and matches them.
func (t *Table) Match(r io.Reader, maxPriority, minPriority int) (mimetype.TypeName, bool, error) {
	buf, err := io.ReadAll(io.LimitReader(r, int64(t.maxLength)))
	if err != nil {
		return "", false, err
	}
	mime, ok := t.MatchData(buf, maxPriority, minPriority)
	return mime, ok, nil
}
