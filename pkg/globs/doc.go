// Package globs implements the filename half of type identification.
//
// Rules come from shared-mime-info "globs2" files, one rule per line:
//
//	weight:type:pattern:flags
//
// Each rule is classified once, when it is added:
//
//   - literal patterns (no '*', '?' or '[') are matched against the whole name
//   - simple extensions ("*.ext", not flagged "cs") are looked up by extension
//   - everything else is compiled into a general glob
//
// Lookups try the three classes in that order. General globs are ranked by
// weight, then by pattern length, so the most specific rule wins.
package globs
