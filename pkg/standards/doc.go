// Package standards holds the static tables planforge works from: per-country
// minimum room areas, per-building-type room defaults, the room color
// palette, priority ranks, validation minimums and the door/window schedule.
//
// Tables are exposed as values or through accessor functions that return
// copies, so callers can substitute their own tables (for example in tests)
// without touching package state.
package standards
