// Package mimedb loads the shared-mime-info database from the data roots
// into immutable lookup tables.
//
// For every root the loader reads, when present:
//
//	mime/globs2 (or the older mime/globs)
//	mime/magic
//	mime/aliases
//	mime/subclasses
//	mime/icons
//	mime/generic-icons
//
// Missing files contribute nothing. A malformed magic file aborts the load;
// malformed lines in the text formats are skipped.
//
// Per-type XML documents (mime/<media>/<subtype>.xml) are not loaded up
// front. Describe reads them on demand.
package mimedb
