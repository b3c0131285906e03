// Package layout places the rooms of a [blueprint.Spec] on a floor plan and
// checks the result.
//
// An [Engine] sorts rooms by a priority rank, asks the [Placer] registered for
// the spec's building type where each room goes, row-packs anything the
// placer skipped, and finally attaches the door and window schedule. The
// engine never modifies the spec it is given and never drops or duplicates a
// room.
//
// # Strategies
//
// Four placers ship in [DefaultRegistry]: house, office, shop and restaurant.
// Building types without a registered placer use [Generic], which packs rooms
// left to right in rows. New archetypes are added with [Registry.Register]:
//
//	reg := layout.DefaultRegistry()
//	reg.Register("warehouse", layout.PlacerFunc(placeWarehouse))
//	engine := layout.New(layout.WithRegistry(reg))
//
// # Validation
//
// [Engine.Validate] reports rooms below their minimum area and each
// overlapping pair of rooms once. Findings are advisory and never fail a
// layout.
package layout
