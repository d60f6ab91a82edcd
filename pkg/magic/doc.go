// Package magic interprets the shared-mime-info binary "magic" database.
//
// A magic file is a fixed header followed by sections of the form
// "[priority:type]\n", each holding binary rule records. Rules are stored in
// a single arena and linked into AND-chains: a nested rule only counts when
// the rule it hangs from matched too. Sections are tried from the highest
// priority down, and the first section with a matching chain names the type.
package magic
