package standards

import "github.com/matzehuels/planforge/pkg/blueprint"

// Size is a default room footprint in feet.
type Size struct {
	Width float64 `json:"width"`
	Depth float64 `json:"depth"`
}

// RoomDefault is one default room of a building type.
type RoomDefault struct {
	Type blueprint.RoomType `json:"type"`
	Size Size               `json:"size"`
}

// Building describes one building archetype.
type Building struct {
	Type        blueprint.BuildingType `json:"id"`
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	DefaultArea float64                `json:"defaultArea"` // sq ft
	Rooms       []RoomDefault          `json:"rooms"`
	Layout      blueprint.LayoutStyle  `json:"typicalLayout"`
}

var buildings = []Building{
	{
		Type:        blueprint.BuildingHouse,
		Name:        "House",
		Description: "Residential home",
		DefaultArea: 2000,
		Layout:      blueprint.Clustered,
		Rooms: []RoomDefault{
			{blueprint.Living, Size{16, 20}},
			{blueprint.Kitchen, Size{12, 15}},
			{blueprint.Bedroom, Size{14, 16}},
			{blueprint.Bathroom, Size{8, 10}},
			{blueprint.Hallway, Size{4, 20}},
		},
	},
	{
		Type:        blueprint.BuildingShop,
		Name:        "Retail Shop",
		Description: "Small retail store",
		DefaultArea: 1500,
		Layout:      blueprint.Linear,
		Rooms: []RoomDefault{
			{blueprint.Storefront, Size{30, 40}},
			{blueprint.Storage, Size{15, 20}},
			{blueprint.Office, Size{12, 12}},
			{blueprint.Bathroom, Size{8, 10}},
		},
	},
	{
		Type:        blueprint.BuildingOffice,
		Name:        "Office",
		Description: "Professional workspace",
		DefaultArea: 2500,
		Layout:      blueprint.Open,
		Rooms: []RoomDefault{
			{blueprint.Reception, Size{20, 15}},
			{blueprint.Workspace, Size{25, 30}},
			{blueprint.Meeting, Size{15, 20}},
			{blueprint.Break, Size{12, 15}},
			{blueprint.Bathroom, Size{8, 10}},
		},
	},
	{
		Type:        blueprint.BuildingRestaurant,
		Name:        "Restaurant",
		Description: "Food service establishment",
		DefaultArea: 3000,
		Layout:      blueprint.Central,
		Rooms: []RoomDefault{
			{blueprint.Dining, Size{40, 30}},
			{blueprint.Kitchen, Size{25, 25}},
			{blueprint.Storage, Size{15, 15}},
			{blueprint.Bathroom, Size{10, 12}},
			{blueprint.Office, Size{12, 12}},
		},
	},
}

// Buildings returns the building catalogue.
func Buildings() []Building {
	out := make([]Building, len(buildings))
	for i, b := range buildings {
		b.Rooms = append([]RoomDefault(nil), b.Rooms...)
		out[i] = b
	}
	return out
}

// LookupBuilding returns the catalogue entry for t.
func LookupBuilding(t blueprint.BuildingType) (Building, bool) {
	for _, b := range Buildings() {
		if b.Type == t {
			return b, true
		}
	}
	return Building{}, false
}
