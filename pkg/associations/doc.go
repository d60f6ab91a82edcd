// Package associations resolves a type to the applications that can open
// it.
//
// Two kinds of source feed it. mimeapps.list files hold the user's and the
// distribution's explicit choices in [Added Associations], [Removed
// Associations] and [Default Applications]. mimeinfo.cache files, generated
// by update-desktop-database, list every application that declares a type
// in [MIME Cache] (plus the view and edit variants).
//
// The Resolver combines them in a fixed precedence: default application,
// added associations, cached associations minus removed ones, and finally
// the first application of the nearest parent type that has one.
package associations
