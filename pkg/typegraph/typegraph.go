// Package typegraph holds the alias and subclass relations between types.
package typegraph

import (
	"bufio"
	"io"
	"slices"
	"strings"

	"github.com/arthur-debert/xdgmime/pkg/logging"
	"github.com/arthur-debert/xdgmime/pkg/mimetype"
	"github.com/rs/zerolog"
)

// Graph maps aliases to canonical types and types to their direct parents.
// It is immutable once built.
type Graph struct {
	aliases    map[mimetype.TypeName]mimetype.TypeName
	parents    map[mimetype.TypeName][]mimetype.TypeName
	aliasesFor map[mimetype.TypeName][]mimetype.TypeName
}

// Builder accumulates aliases and subclasses files.
type Builder struct {
	graph  *Graph
	logger zerolog.Logger
}

// NewBuilder creates an empty builder
func NewBuilder() *Builder {
	return &Builder{
		graph: &Graph{
			aliases:    make(map[mimetype.TypeName]mimetype.TypeName),
			parents:    make(map[mimetype.TypeName][]mimetype.TypeName),
			aliasesFor: make(map[mimetype.TypeName][]mimetype.TypeName),
		},
		logger: logging.GetLogger("typegraph"),
	}
}

// AddAlias records that alias is another name for canonical. A later
// declaration for the same alias replaces the earlier one.
func (b *Builder) AddAlias(alias, canonical mimetype.TypeName) {
	b.graph.aliases[alias] = canonical
}

// AddParent appends parent to the direct parents of child. A parent already
// listed keeps its first position, since every search root may repeat the
// same line.
func (b *Builder) AddParent(child, parent mimetype.TypeName) {
	if slices.Contains(b.graph.parents[child], parent) {
		return
	}
	b.graph.parents[child] = append(b.graph.parents[child], parent)
}

// ParseAliases reads "alias canonical" lines.
func (b *Builder) ParseAliases(r io.Reader, source string) error {
	return b.parsePairs(r, source, "aliases", b.AddAlias)
}

// ParseSubclasses reads "type parent" lines.
func (b *Builder) ParseSubclasses(r io.Reader, source string) error {
	return b.parsePairs(r, source, "subclasses", b.AddParent)
}

func (b *Builder) parsePairs(r io.Reader, source, kind string, add func(x, y mimetype.TypeName)) error {
	scanner := bufio.NewScanner(r)
	lineNo, added := 0, 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		first, second, ok := parsePair(line)
		if !ok {
			b.logger.Debug().
				Str("source", source).
				Str("kind", kind).
				Int("line", lineNo).
				Msg("Skipping malformed line")
			continue
		}
		add(first, second)
		added++
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	b.logger.Debug().
		Str("source", source).
		Str("kind", kind).
		Int("entries", added).
		Msg("Parsed type relations")
	return nil
}

func parsePair(line string) (mimetype.TypeName, mimetype.TypeName, bool) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return "", "", false
	}
	first, err := mimetype.Parse(fields[0])
	if err != nil {
		return "", "", false
	}
	second, err := mimetype.Parse(fields[1])
	if err != nil {
		return "", "", false
	}
	return first, second, true
}

// Build finalises the reverse alias index and returns the graph.
func (b *Builder) Build() *Graph {
	g := b.graph
	b.graph = nil
	for alias, canonical := range g.aliases {
		g.aliasesFor[canonical] = append(g.aliasesFor[canonical], alias)
	}
	for _, list := range g.aliasesFor {
		slices.Sort(list)
	}
	return g
}

// Unalias returns the canonical name for t, or t itself. Only one hop is
// followed.
func (g *Graph) Unalias(t mimetype.TypeName) mimetype.TypeName {
	if canonical, ok := g.aliases[t]; ok {
		return canonical
	}
	return t
}

// AliasesOf returns the names that alias to canonical, sorted.
func (g *Graph) AliasesOf(canonical mimetype.TypeName) []mimetype.TypeName {
	return slices.Clone(g.aliasesFor[canonical])
}

// SubclassesOf returns the direct parents of t in declaration order.
func (g *Graph) SubclassesOf(t mimetype.TypeName) []mimetype.TypeName {
	return slices.Clone(g.parents[t])
}

// IsInstance reports whether t is parent or declares parent directly.
// Grandparents do not count.
func (g *Graph) IsInstance(t, parent mimetype.TypeName) bool {
	return t == parent || slices.Contains(g.parents[t], parent)
}

// Ancestors returns every transitive parent of t, nearest first. Cycles in
// the data are tolerated.
func (g *Graph) Ancestors(t mimetype.TypeName) []mimetype.TypeName {
	seen := map[mimetype.TypeName]bool{t: true}
	var out []mimetype.TypeName
	queue := []mimetype.TypeName{t}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, p := range g.parents[current] {
			if seen[p] {
				continue
			}
			seen[p] = true
			out = append(out, p)
			queue = append(queue, p)
		}
	}
	return out
}

// Stats returns the number of aliases and of types with declared parents.
func (g *Graph) Stats() (aliases int, subclassed int) {
	return len(g.aliases), len(g.parents)
}
