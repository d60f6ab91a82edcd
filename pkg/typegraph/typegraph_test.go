// Test Type: Unit Test
// Description: Tests for alias resolution and subclass queries

package typegraph_test

import (
	"strings"
	"testing"

	"github.com/arthur-debert/xdgmime/pkg/mimetype"
	"github.com/arthur-debert/xdgmime/pkg/typegraph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildGraph(t *testing.T, aliases, subclasses string) *typegraph.Graph {
	t.Helper()
	b := typegraph.NewBuilder()
	require.NoError(t, b.ParseAliases(strings.NewReader(aliases), "aliases"))
	require.NoError(t, b.ParseSubclasses(strings.NewReader(subclasses), "subclasses"))
	return b.Build()
}

const testAliases = `application/x-pdf application/pdf
text/x-old text/x-middle
text/x-middle text/x-new
not-a-type
`

const testSubclasses = `application/x-shellscript text/plain
application/x-shellscript application/x-executable
text/x-csrc text/plain
text/plain application/octet-stream
application/x-loop-a application/x-loop-b
application/x-loop-b application/x-loop-a
too many fields here
`

func TestUnalias(t *testing.T) {
	g := buildGraph(t, testAliases, testSubclasses)

	assert.Equal(t, mimetype.TypeName("application/pdf"), g.Unalias("application/x-pdf"))
	assert.Equal(t, mimetype.TypeName("application/pdf"), g.Unalias("application/pdf"))
	assert.Equal(t, mimetype.TypeName("text/x-middle"), g.Unalias("text/x-old"), "only one hop is followed")
}

func TestUnalias_IdempotentOnCanonical(t *testing.T) {
	g := buildGraph(t, testAliases, testSubclasses)

	for _, name := range []mimetype.TypeName{"application/pdf", "text/plain", "text/x-new"} {
		once := g.Unalias(name)
		assert.Equal(t, once, g.Unalias(once), name)
	}
}

func TestAliasesOf(t *testing.T) {
	g := buildGraph(t, "b/x a/canon\na/y a/canon\n", "")

	assert.Equal(t, []mimetype.TypeName{"a/y", "b/x"}, g.AliasesOf("a/canon"))
	assert.Empty(t, g.AliasesOf("a/none"))
}

func TestSubclassesOf(t *testing.T) {
	g := buildGraph(t, testAliases, testSubclasses)

	assert.Equal(t,
		[]mimetype.TypeName{"text/plain", "application/x-executable"},
		g.SubclassesOf("application/x-shellscript"))
	assert.Empty(t, g.SubclassesOf("image/png"))

	parents := g.SubclassesOf("text/x-csrc")
	parents[0] = "mutated/copy"
	assert.Equal(t, []mimetype.TypeName{"text/plain"}, g.SubclassesOf("text/x-csrc"))
}

func TestSubclassesOf_RepeatedLineKeepsFirstPosition(t *testing.T) {
	g := buildGraph(t, "", strings.Join([]string{
		"text/x-python text/plain",
		"text/x-python application/x-executable",
		"text/x-python text/plain",
	}, "\n"))

	assert.Equal(t,
		[]mimetype.TypeName{"text/plain", "application/x-executable"},
		g.SubclassesOf("text/x-python"))
}

func TestIsInstance(t *testing.T) {
	g := buildGraph(t, testAliases, testSubclasses)

	tests := []struct {
		name   string
		child  mimetype.TypeName
		parent mimetype.TypeName
		want   bool
	}{
		{"self", "image/png", "image/png", true},
		{"direct_parent", "text/x-csrc", "text/plain", true},
		{"second_parent", "application/x-shellscript", "application/x-executable", true},
		{"grandparent_is_not_direct", "text/x-csrc", "application/octet-stream", false},
		{"unrelated", "text/x-csrc", "image/png", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.IsInstance(tt.child, tt.parent))
		})
	}
}

func TestAncestors(t *testing.T) {
	g := buildGraph(t, testAliases, testSubclasses)

	assert.Equal(t,
		[]mimetype.TypeName{"text/plain", "application/octet-stream"},
		g.Ancestors("text/x-csrc"))
	assert.Equal(t, []mimetype.TypeName{"application/x-loop-b"}, g.Ancestors("application/x-loop-a"))
}

func TestStats(t *testing.T) {
	g := buildGraph(t, testAliases, testSubclasses)

	aliases, subclassed := g.Stats()
	assert.Equal(t, 3, aliases)
	assert.Equal(t, 5, subclassed)
}
