package blueprint

import "strings"

// Wall names one side of a rectangular room.
type Wall string

const (
	North Wall = "north"
	South Wall = "south"
	East  Wall = "east"
	West  Wall = "west"
)

// Valid reports whether w is one of the four walls.
func (w Wall) Valid() bool {
	switch w {
	case North, South, East, West:
		return true
	}
	return false
}

// RoomType is the functional category of a room.
type RoomType string

const (
	Living     RoomType = "living"
	Kitchen    RoomType = "kitchen"
	Bedroom    RoomType = "bedroom"
	Bathroom   RoomType = "bathroom"
	Office     RoomType = "office"
	Storage    RoomType = "storage"
	Dining     RoomType = "dining"
	Hallway    RoomType = "hallway"
	Storefront RoomType = "storefront"
	Reception  RoomType = "reception"
	Workspace  RoomType = "workspace"
	Meeting    RoomType = "meeting"
	Break      RoomType = "break"
)

// RoomTypes lists every room type in declaration order.
var RoomTypes = []RoomType{
	Living, Kitchen, Bedroom, Bathroom, Office, Storage, Dining,
	Hallway, Storefront, Reception, Workspace, Meeting, Break,
}

// Valid reports whether t is a known room type.
func (t RoomType) Valid() bool {
	for _, rt := range RoomTypes {
		if rt == t {
			return true
		}
	}
	return false
}

// Title returns the type name with its first letter upper-cased ("bedroom" -> "Bedroom").
func (t RoomType) Title() string {
	if t == "" {
		return ""
	}
	s := string(t)
	return strings.ToUpper(s[:1]) + s[1:]
}

// BuildingType is the archetype a spec is laid out for. Values outside the
// four known archetypes are carried through and use generic placement.
type BuildingType string

const (
	BuildingHouse      BuildingType = "house"
	BuildingShop       BuildingType = "shop"
	BuildingOffice     BuildingType = "office"
	BuildingRestaurant BuildingType = "restaurant"
)

// BuildingTypes lists the known archetypes.
var BuildingTypes = []BuildingType{BuildingHouse, BuildingShop, BuildingOffice, BuildingRestaurant}

// Known reports whether b is one of the four archetypes.
func (b BuildingType) Known() bool {
	for _, bt := range BuildingTypes {
		if bt == b {
			return true
		}
	}
	return false
}

// LayoutStyle is a descriptive tag for the arrangement of a building.
type LayoutStyle string

const (
	Linear    LayoutStyle = "linear"
	Central   LayoutStyle = "central"
	Clustered LayoutStyle = "clustered"
	Open      LayoutStyle = "open"
)
