// Test Type: Unit Test
// Description: Tests for the binary magic parser and matcher

package magic_test

import (
	"bytes"
	"testing"

	"github.com/arthur-debert/xdgmime/pkg/errors"
	"github.com/arthur-debert/xdgmime/pkg/magic"
	"github.com/arthur-debert/xdgmime/pkg/mimetype"
	"github.com/arthur-debert/xdgmime/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTable(t *testing.T, files ...[]byte) *magic.Table {
	t.Helper()
	b := magic.NewBuilder()
	for i, data := range files {
		require.NoError(t, b.Parse(bytes.NewReader(data), "magic-"+string(rune('a'+i))))
	}
	return b.Build()
}

func zipSection(priority int) testutil.MagicSection {
	return testutil.MagicSection{
		Priority: priority,
		Type:     "application/zip",
		Records:  []testutil.MagicRecord{{Offset: 0, Value: []byte("PK\x03\x04")}},
	}
}

func TestMatchData_Zip(t *testing.T) {
	table := buildTable(t, testutil.EncodeMagic(zipSection(80)))

	got, ok := table.MatchData([]byte("PK\x03\x04"), magic.DefaultMaxPriority, magic.DefaultMinPriority)
	require.True(t, ok)
	assert.Equal(t, mimetype.TypeName("application/zip"), got)

	_, ok = table.MatchData([]byte("PK\x03\x05"), magic.DefaultMaxPriority, magic.DefaultMinPriority)
	assert.False(t, ok)

	assert.Equal(t, 5, table.MaxLength())
}

func TestMatchData_PriorityOrder(t *testing.T) {
	table := buildTable(t, testutil.EncodeMagic(
		testutil.MagicSection{
			Priority: 50,
			Type:     "application/x-low",
			Records:  []testutil.MagicRecord{{Value: []byte("PK")}},
		},
		zipSection(80),
	))

	got, ok := table.MatchData([]byte("PK\x03\x04"), 100, 0)
	require.True(t, ok)
	assert.Equal(t, mimetype.TypeName("application/zip"), got)

	t.Run("max_skips_higher", func(t *testing.T) {
		got, ok := table.MatchData([]byte("PK\x03\x04"), 60, 0)
		require.True(t, ok)
		assert.Equal(t, mimetype.TypeName("application/x-low"), got)
	})

	t.Run("min_stops_lower", func(t *testing.T) {
		_, ok := table.MatchData([]byte("PKxx"), 100, 60)
		assert.False(t, ok)
	})
}

func TestMatchData_DeclarationOrderWithinPriority(t *testing.T) {
	table := buildTable(t, testutil.EncodeMagic(
		testutil.MagicSection{Priority: 50, Type: "text/x-first", Records: []testutil.MagicRecord{{Value: []byte("#!")}}},
		testutil.MagicSection{Priority: 50, Type: "text/x-second", Records: []testutil.MagicRecord{{Value: []byte("#!")}}},
	))

	got, ok := table.MatchData([]byte("#!/bin/sh"), 100, 0)
	require.True(t, ok)
	assert.Equal(t, mimetype.TypeName("text/x-first"), got)
}

func TestMatchData_RangeAndMask(t *testing.T) {
	table := buildTable(t, testutil.EncodeMagic(
		testutil.MagicSection{
			Priority: 50,
			Type:     "application/x-ranged",
			Records:  []testutil.MagicRecord{{Offset: 2, Value: []byte("AB"), RangeLength: 4}},
		},
		testutil.MagicSection{
			Priority: 40,
			Type:     "application/x-masked",
			Records:  []testutil.MagicRecord{{Value: []byte{0x40}, Mask: []byte{0xF0}}},
		},
	))

	got, ok := table.MatchData([]byte("xxxxxAB"), 100, 0)
	require.True(t, ok)
	assert.Equal(t, mimetype.TypeName("application/x-ranged"), got)

	_, ok = table.MatchData([]byte("xxxxxxAB"), 100, 45)
	assert.False(t, ok, "offset 6 is outside the range")

	got, ok = table.MatchData([]byte{0x4F}, 100, 0)
	require.True(t, ok)
	assert.Equal(t, mimetype.TypeName("application/x-masked"), got)

	_, ok = table.MatchData([]byte{0x5F}, 100, 0)
	assert.False(t, ok)
}

func TestChain(t *testing.T) {
	table := buildTable(t, testutil.EncodeMagic(testutil.MagicSection{
		Priority: 50,
		Type:     "application/x-chained",
		Records: []testutil.MagicRecord{
			{Nest: 0, Offset: 0, Value: []byte("AA")},
			{Nest: 1, Offset: 2, Value: []byte("BB")},
			{Nest: 2, Offset: 4, Value: []byte("CC")},
			{Nest: 0, Offset: 0, Value: []byte("ZZ")},
		},
	}))

	types := table.Types()
	require.Len(t, types, 1)
	assert.Len(t, types[0].Top, 2)

	tests := []struct {
		name string
		buf  string
		want bool
	}{
		{"whole_chain", "AABBCC", true},
		{"broken_middle", "AAXXCC", false},
		{"broken_tail", "AABBXX", false},
		{"second_top_level", "ZZ", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := table.MatchData([]byte(tt.buf), 100, 0)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestChain_WalksBackToShallowerRule(t *testing.T) {
	table := buildTable(t, testutil.EncodeMagic(testutil.MagicSection{
		Priority: 50,
		Type:     "application/x-walk",
		Records: []testutil.MagicRecord{
			{Nest: 0, Value: []byte("A")},
			{Nest: 1, Offset: 1, Value: []byte("B")},
			{Nest: 2, Offset: 2, Value: []byte("C")},
			{Nest: 1, Offset: 1, Value: []byte("D")},
		},
	}))

	top := table.Types()[0].Top
	require.Len(t, top, 1)
	first := table.Rule(top[0])
	assert.Equal(t, []byte("D"), table.Rule(first.Next).Value, "sibling replaces the successor")

	_, ok := table.MatchData([]byte("AD"), 100, 0)
	assert.True(t, ok)
}

func TestChain_NestedFirstRuleIsTopLevel(t *testing.T) {
	table := buildTable(t, testutil.EncodeMagic(testutil.MagicSection{
		Priority: 50,
		Type:     "application/x-nested",
		Records:  []testutil.MagicRecord{{Nest: 1, Value: []byte("N")}},
	}))

	got, ok := table.MatchData([]byte("N"), 100, 0)
	require.True(t, ok)
	assert.Equal(t, mimetype.TypeName("application/x-nested"), got)
}

func TestParse_WordSizeKept(t *testing.T) {
	table := buildTable(t, testutil.EncodeMagic(testutil.MagicSection{
		Priority: 50,
		Type:     "application/x-word",
		Records:  []testutil.MagicRecord{{Value: []byte{0x01, 0x02}, WordSize: 2}},
	}))

	rule := table.Rule(table.Types()[0].Top[0])
	assert.Equal(t, 2, rule.WordSize)
	assert.Equal(t, 1, rule.RangeLength)
	assert.Equal(t, -1, rule.Next)
}

func TestParse_MultipleFiles(t *testing.T) {
	table := buildTable(t,
		testutil.EncodeMagic(testutil.MagicSection{Priority: 50, Type: "text/x-a", Records: []testutil.MagicRecord{{Value: []byte("a")}}}),
		testutil.EncodeMagic(zipSection(80)),
	)

	types, rules := table.Len()
	assert.Equal(t, 2, types)
	assert.Equal(t, 2, rules)
	assert.Equal(t, mimetype.TypeName("application/zip"), table.Types()[0].Name)
}

func TestParse_EmptyFile(t *testing.T) {
	table := buildTable(t, []byte(magic.Header))
	types, _ := table.Len()
	assert.Zero(t, types)
	assert.Zero(t, table.MaxLength())
}

func TestParse_FormatErrors(t *testing.T) {
	valid := testutil.EncodeMagic(zipSection(80))
	header := []byte(magic.Header)

	tests := []struct {
		name string
		data []byte
	}{
		{"bad_header", []byte("NOT-Magic\x00\n[50:a/b]\n")},
		{"heading_without_bracket", append(bytes.Clone(header), "50:a/b]\n"...)},
		{"heading_without_colon", append(bytes.Clone(header), "[50]\n"...)},
		{"heading_bad_priority", append(bytes.Clone(header), "[high:a/b]\n"...)},
		{"missing_gt", append(bytes.Clone(header), "[50:a/b]\n1x0=\x00\x01A\n"...)},
		{"missing_eq", append(bytes.Clone(header), "[50:a/b]\n>0\x00\x01A\n"...)},
		{"truncated_value", append(bytes.Clone(header), "[50:a/b]\n>0=\x00\x05AB"...)},
		{"truncated_mask", append(bytes.Clone(header), "[50:a/b]\n>0=\x00\x02AB&\xff"...)},
		{"bad_terminator", append(bytes.Clone(header), "[50:a/b]\n>0=\x00\x01AX"...)},
		{"zero_range", append(bytes.Clone(header), "[50:a/b]\n>0=\x00\x01A+0\n"...)},
		{"valid_then_garbage", append(bytes.Clone(valid), "garbage\n"...)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := magic.NewBuilder()
			err := b.Parse(bytes.NewReader(tt.data), "/usr/share/mime/magic")
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrMagicFormat))
			assert.Contains(t, err.Error(), "/usr/share/mime/magic")
		})
	}
}

func TestParse_FailedFileLeavesBuilderUntouched(t *testing.T) {
	b := magic.NewBuilder()
	require.NoError(t, b.Parse(bytes.NewReader(testutil.EncodeMagic(zipSection(80))), "good"))

	bad := append(testutil.EncodeMagic(testutil.MagicSection{
		Priority: 90,
		Type:     "application/x-bad",
		Records:  []testutil.MagicRecord{{Value: []byte("PK")}},
	}), "[broken\n"...)
	require.Error(t, b.Parse(bytes.NewReader(bad), "bad"))

	table := b.Build()
	got, ok := table.MatchData([]byte("PK\x03\x04"), 100, 0)
	require.True(t, ok)
	assert.Equal(t, mimetype.TypeName("application/zip"), got)
}

func TestMatch_ReadsPrefix(t *testing.T) {
	table := buildTable(t, testutil.EncodeMagic(zipSection(80)))

	got, ok, err := table.Match(bytes.NewReader([]byte("PK\x03\x04 and a lot more content")), 100, 0)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, mimetype.TypeName("application/zip"), got)
}
