package globs

import (
	"bufio"
	"io"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/arthur-debert/xdgmime/pkg/logging"
	"github.com/arthur-debert/xdgmime/pkg/mimetype"
	"github.com/gobwas/glob"
	"github.com/rs/zerolog"
)

// Table is an immutable filename-to-type matcher. Build one with a Builder.
type Table struct {
	literals      map[string]mimetype.TypeName
	extensions    map[string]mimetype.TypeName
	extensionsFor map[mimetype.TypeName][]string
	globs         []compiledRule
}

type compiledRule struct {
	Rule
	matcher glob.Glob
	length  int
}

// Stats summarises the contents of a table
type Stats struct {
	Literals   int `json:"literals"`
	Extensions int `json:"extensions"`
	Globs      int `json:"globs"`
}

// Builder accumulates rules from one or more sources. It is not safe for
// concurrent use; call Build once all sources have been parsed.
type Builder struct {
	table  *Table
	logger zerolog.Logger
}

// NewBuilder creates an empty builder
func NewBuilder() *Builder {
	return &Builder{
		table: &Table{
			literals:      make(map[string]mimetype.TypeName),
			extensions:    make(map[string]mimetype.TypeName),
			extensionsFor: make(map[mimetype.TypeName][]string),
		},
		logger: logging.GetLogger("globs"),
	}
}

// Add inserts a rule according to its kind. Literals and extensions replace
// any earlier rule for the same key; general globs accumulate.
func (b *Builder) Add(rule Rule) {
	t := b.table
	switch rule.Kind() {
	case KindLiteral:
		t.literals[rule.Pattern] = rule.Type
	case KindExtension:
		ext := rule.Pattern[1:]
		t.extensions[ext] = rule.Type
		if !slices.Contains(t.extensionsFor[rule.Type], ext) {
			t.extensionsFor[rule.Type] = append(t.extensionsFor[rule.Type], ext)
		}
	default:
		t.globs = append(t.globs, compiledRule{
			Rule:    rule,
			matcher: compile(rule.Pattern),
			length:  utf8.RuneCountInString(rule.Pattern),
		})
	}
}

// Parse reads globs2 lines from r. Lines that cannot be parsed are skipped;
// only read errors are returned.
func (b *Builder) Parse(r io.Reader, source string) error {
	return b.parse(r, source, ParseLine)
}

// ParseLegacy reads lines in the older weightless "globs" format.
func (b *Builder) ParseLegacy(r io.Reader, source string) error {
	return b.parse(r, source, ParseLegacyLine)
}

func (b *Builder) parse(r io.Reader, source string, parseLine func(string) (Rule, bool)) error {
	scanner := bufio.NewScanner(r)
	lineNo, added := 0, 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		rule, ok := parseLine(line)
		if !ok {
			if line != "" && !strings.HasPrefix(line, "#") {
				b.logger.Debug().
					Str("source", source).
					Int("line", lineNo).
					Msg("Skipping malformed glob line")
			}
			continue
		}
		b.Add(rule)
		added++
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	b.logger.Debug().
		Str("source", source).
		Int("rules", added).
		Msg("Parsed glob rules")
	return nil
}

// Build returns the finished table. The builder must not be used afterwards.
func (b *Builder) Build() *Table {
	t := b.table
	b.table = nil
	return t
}

// Match returns the type for a filename, or false when no rule applies.
func (t *Table) Match(name string) (mimetype.TypeName, bool) {
	if mime, ok := t.literals[name]; ok {
		return mime, true
	}

	for _, ext := range extensions(name) {
		if mime, ok := t.extensions[ext]; ok {
			return mime, true
		}
		if mime, ok := t.extensions[strings.ToLower(ext)]; ok {
			return mime, true
		}
	}

	lower := strings.ToLower(name)
	var best *compiledRule
	for i := range t.globs {
		rule := &t.globs[i]
		if !rule.matcher.Match(name) && (rule.CaseSensitive || !rule.matcher.Match(lower)) {
			continue
		}
		if best == nil || rule.Weight > best.Weight ||
			(rule.Weight == best.Weight && rule.length > best.length) {
			best = rule
		}
	}
	if best == nil {
		return "", false
	}
	return best.Type, true
}

// ExtensionsFor returns the simple extensions registered for a type, leading
// dot included, in the order they were first declared. The first entry is
// the preferred extension.
func (t *Table) ExtensionsFor(mime mimetype.TypeName) []string {
	return slices.Clone(t.extensionsFor[mime])
}

// Types returns every type named by a rule, sorted
func (t *Table) Types() []mimetype.TypeName {
	seen := make(map[mimetype.TypeName]bool)
	for _, mime := range t.literals {
		seen[mime] = true
	}
	for _, mime := range t.extensions {
		seen[mime] = true
	}
	for _, rule := range t.globs {
		seen[rule.Type] = true
	}
	out := make([]mimetype.TypeName, 0, len(seen))
	for mime := range seen {
		out = append(out, mime)
	}
	slices.Sort(out)
	return out
}

// Stats reports how many rules of each kind the table holds
func (t *Table) Stats() Stats {
	return Stats{
		Literals:   len(t.literals),
		Extensions: len(t.extensions),
		Globs:      len(t.globs),
	}
}

// Extension returns the extension of the last path element of name: the
// text from its final '.', or "" when there is none. Leading dots do not
// start an extension, so ".bashrc" has none.
func Extension(name string) string {
	base := name[strings.LastIndexByte(name, '/')+1:]
	dot := strings.LastIndexByte(base, '.')
	if dot <= 0 || strings.Trim(base[:dot], ".") == "" {
		return ""
	}
	return base[dot:]
}

// extensions lists the candidate extensions of name, longest first:
// "a.tar.gz" gives ".tar.gz" then ".gz".
func extensions(name string) []string {
	last := Extension(name)
	if last == "" {
		return nil
	}
	base := name[strings.LastIndexByte(name, '/')+1:]
	start := len(base) - len(strings.TrimLeft(base, "."))
	var out []string
	for i := start + 1; i < len(base); i++ {
		if base[i] == '.' {
			out = append(out, base[i:])
		}
	}
	return out
}

// compile turns a shell pattern into a matcher. Braces and backslashes are
// literal in shell patterns, so they are escaped outside character classes.
// A pattern that still fails to compile is matched literally.
func compile(pattern string) glob.Glob {
	g, err := glob.Compile(escapeNonShell(pattern))
	if err != nil {
		return glob.MustCompile(glob.QuoteMeta(pattern))
	}
	return g
}

func escapeNonShell(pattern string) string {
	var sb strings.Builder
	inClass := false
	for _, r := range pattern {
		switch {
		case inClass:
			if r == ']' {
				inClass = false
			}
		case r == '[':
			inClass = true
		case r == '{' || r == '}' || r == '\\':
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
