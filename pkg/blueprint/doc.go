// Package blueprint defines the floor-plan data model shared by every stage
// of planforge: rooms, openings, and the building spec that holds them.
//
// Derived fields are never assigned by hand. [NewRoom] and [Room.Resize]
// keep a room's area equal to its footprint rounded to one decimal, and
// [Finalize] recomputes a spec's total area and envelope whenever its room
// list changes.
//
// # Units
//
// Every length in a [Spec] is in the spec's logical unit: feet for US and CA,
// meters everywhere else (see [UnitForCountry]). Areas are in the square of
// that unit.
//
// # Serialization
//
// Specs round-trip through JSON with camelCase field names:
//
//	spec, err := blueprint.ReadFile("house.json")
//	if err != nil {
//	    return err
//	}
//	err = blueprint.WriteFile("house.json", spec)
package blueprint
