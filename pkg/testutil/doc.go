// Package testutil provides fixtures for testing xdgmime components.
//
// Key components:
//   - Fixture: builds data and config roots on an in-memory afero tree and
//     exposes them through the filesystem abstraction
//   - EncodeMagic: writes binary magic files from readable sections
//
// Usage guidelines:
//   - Tests use the in-memory tree unless they need real inodes (fifos,
//     devices, mount points)
//   - Test data is defined inline, not in external files
package testutil
