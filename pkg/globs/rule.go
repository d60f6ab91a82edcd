package globs

import (
	"strconv"
	"strings"

	"github.com/arthur-debert/xdgmime/pkg/mimetype"
)

// DefaultWeight is the weight shared-mime-info assigns when a source omits one.
const DefaultWeight = 50

// FlagCaseSensitive marks a rule that must not be matched case-insensitively.
const FlagCaseSensitive = "cs"

// Kind is the structural class of a glob pattern.
type Kind int

const (
	// KindLiteral is an exact filename with no wildcard characters
	KindLiteral Kind = iota
	// KindExtension is "*.ext" without further wildcards and without the cs flag
	KindExtension
	// KindGlob is any other pattern
	KindGlob
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "literal"
	case KindExtension:
		return "extension"
	case KindGlob:
		return "glob"
	default:
		return "unknown"
	}
}

// Rule maps a filename pattern to a type.
type Rule struct {
	Pattern       string
	Type          mimetype.TypeName
	Weight        int
	CaseSensitive bool
}

// Kind classifies the rule's pattern.
func (r Rule) Kind() Kind {
	if !hasWildcard(r.Pattern) {
		return KindLiteral
	}
	if !r.CaseSensitive && strings.HasPrefix(r.Pattern, "*.") && !hasWildcard(r.Pattern[1:]) {
		return KindExtension
	}
	return KindGlob
}

func hasWildcard(s string) bool {
	return strings.ContainsAny(s, "*?[")
}

// ParseLine parses one globs2 line. It returns false for comments, blank
// lines and lines that cannot be turned into a rule.
func ParseLine(line string) (Rule, bool) {
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	if line == "" || strings.HasPrefix(line, "#") {
		return Rule{}, false
	}

	fields := strings.SplitN(line, ":", 5)
	if len(fields) < 3 {
		return Rule{}, false
	}

	weight, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil {
		return Rule{}, false
	}

	mime, err := mimetype.Parse(fields[1])
	if err != nil {
		return Rule{}, false
	}

	pattern := fields[2]
	if pattern == "" {
		return Rule{}, false
	}

	rule := Rule{Pattern: pattern, Type: mime, Weight: weight}
	if len(fields) > 3 && fields[3] != "" {
		for _, flag := range strings.Split(fields[3], ",") {
			if flag == FlagCaseSensitive {
				rule.CaseSensitive = true
			}
		}
	}
	return rule, true
}

// ParseLegacyLine parses a line of the older "globs" format ("type:pattern"),
// assigning DefaultWeight.
func ParseLegacyLine(line string) (Rule, bool) {
	line = strings.TrimRight(line, "\r\n")
	if line == "" || strings.HasPrefix(line, "#") {
		return Rule{}, false
	}
	typ, pattern, ok := strings.Cut(line, ":")
	if !ok || pattern == "" {
		return Rule{}, false
	}
	mime, err := mimetype.Parse(typ)
	if err != nil {
		return Rule{}, false
	}
	return Rule{Pattern: pattern, Type: mime, Weight: DefaultWeight}, true
}
