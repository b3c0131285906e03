package standards

import (
	"maps"

	"github.com/matzehuels/planforge/pkg/blueprint"
)

// DefaultColor is used for room types missing from the palette.
const DefaultColor = "#6b7280"

var colors = map[blueprint.RoomType]string{
	blueprint.Living:     "#3b82f6",
	blueprint.Kitchen:    "#f59e0b",
	blueprint.Bedroom:    "#8b5cf6",
	blueprint.Bathroom:   "#06b6d4",
	blueprint.Hallway:    "#94a3b8",
	blueprint.Storefront: "#10b981",
	blueprint.Storage:    "#64748b",
	blueprint.Office:     "#6366f1",
	blueprint.Dining:     "#ec4899",
	blueprint.Reception:  "#14b8a6",
	blueprint.Workspace:  "#0ea5e9",
	blueprint.Meeting:    "#84cc16",
	blueprint.Break:      "#f97316",
}

// Color returns the display color of a room type.
func Color(t blueprint.RoomType) string {
	if c, ok := colors[t]; ok {
		return c
	}
	return DefaultColor
}

// Ranks returns the placement priority of each room type, public rooms first.
func Ranks() map[blueprint.RoomType]int {
	return map[blueprint.RoomType]int{
		blueprint.Living:     1,
		blueprint.Dining:     2,
		blueprint.Reception:  3,
		blueprint.Storefront: 4,
		blueprint.Kitchen:    5,
		blueprint.Workspace:  6,
		blueprint.Meeting:    7,
		blueprint.Break:      8,
		blueprint.Bedroom:    9,
		blueprint.Office:     10,
		blueprint.Bathroom:   11,
		blueprint.Storage:    12,
		blueprint.Hallway:    13,
	}
}

// FallbackMinimum is the validation minimum for unlisted room types.
const FallbackMinimum = 70.0

var validationMinimums = map[blueprint.RoomType]float64{
	blueprint.Living:     150,
	blueprint.Kitchen:    80,
	blueprint.Bedroom:    120,
	blueprint.Bathroom:   35,
	blueprint.Office:     100,
	blueprint.Storage:    60,
	blueprint.Dining:     140,
	blueprint.Hallway:    30,
	blueprint.Storefront: 200,
	blueprint.Reception:  90,
	blueprint.Workspace:  70,
	blueprint.Meeting:    120,
	blueprint.Break:      80,
}

// ValidationMinimums returns the flat per-type area floor used by the layout
// validator. It is independent of the per-country table returned by Lookup.
func ValidationMinimums() map[blueprint.RoomType]float64 {
	return maps.Clone(validationMinimums)
}

// OpeningSet is the door and window schedule for one room type.
type OpeningSet struct {
	Doors   []blueprint.Opening
	Windows []blueprint.Opening
}

func opening(w blueprint.Wall, pos, width float64) blueprint.Opening {
	return blueprint.Opening{Wall: w, Position: pos, Width: width}
}

// Openings returns the door and window schedule keyed by room type. Types
// without an entry get no openings.
func Openings() map[blueprint.RoomType]OpeningSet {
	habitable := OpeningSet{
		Doors:   []blueprint.Opening{opening(blueprint.South, 0.5, 3)},
		Windows: []blueprint.Opening{opening(blueprint.North, 0.3, 4), opening(blueprint.North, 0.7, 4)},
	}
	work := OpeningSet{
		Doors:   []blueprint.Opening{opening(blueprint.East, 0.5, 3)},
		Windows: []blueprint.Opening{opening(blueprint.North, 0.5, 4)},
	}
	clone := func(s OpeningSet) OpeningSet {
		return OpeningSet{
			Doors:   append([]blueprint.Opening(nil), s.Doors...),
			Windows: append([]blueprint.Opening(nil), s.Windows...),
		}
	}
	return map[blueprint.RoomType]OpeningSet{
		blueprint.Living:  clone(habitable),
		blueprint.Dining:  clone(habitable),
		blueprint.Bedroom: clone(habitable),
		blueprint.Kitchen: {
			Doors:   []blueprint.Opening{opening(blueprint.East, 0.5, 3)},
			Windows: []blueprint.Opening{opening(blueprint.North, 0.5, 6)},
		},
		blueprint.Bathroom: {
			Doors:   []blueprint.Opening{opening(blueprint.West, 0.5, 2.5)},
			Windows: []blueprint.Opening{opening(blueprint.North, 0.8, 2)},
		},
		blueprint.Office:  clone(work),
		blueprint.Meeting: clone(work),
		blueprint.Storefront: {
			Doors:   []blueprint.Opening{opening(blueprint.South, 0.5, 6)},
			Windows: []blueprint.Opening{opening(blueprint.South, 0.2, 8), opening(blueprint.South, 0.8, 8)},
		},
	}
}
