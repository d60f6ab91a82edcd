// Package filesystem provides the read-only filesystem used to load the MIME
// database and to inspect files being identified.
//
// The OS implementation talks to the real filesystem and can detect mount
// points. The afero implementation backs tests with an in-memory tree.
package filesystem
