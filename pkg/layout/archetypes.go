package layout

import (
	"math"

	"github.com/matzehuels/planforge/pkg/blueprint"
)

// House puts the living room at the left edge with the kitchen beside it, a
// full-height hallway past them, a bathroom column after the hallway and
// bedrooms in pairs along the right.
func House(rooms []blueprint.Room) []Directive {
	var dirs []Directive
	right := Origin - Gap

	if i, ok := firstOf(rooms, blueprint.Living); ok {
		dirs = append(dirs, Directive{Index: i, Position: blueprint.Position{X: Origin, Y: 20}})
		right = Origin + rooms[i].Width
	}
	if i, ok := firstOf(rooms, blueprint.Kitchen); ok {
		x := right + Gap
		dirs = append(dirs, Directive{Index: i, Position: blueprint.Position{X: x, Y: 20}})
		right = x + rooms[i].Width
	}
	if i, ok := firstOf(rooms, blueprint.Hallway); ok {
		x := math.Max(45, right+2)
		dirs = append(dirs, Directive{
			Index:    i,
			Position: blueprint.Position{X: x, Y: 20},
			Size:     &Size{Width: 5, Depth: 40},
		})
		right = x + 5
	}

	if baths := ofType(rooms, blueprint.Bathroom); len(baths) > 0 {
		col, colRight, _ := column(rooms, baths, right+Gap, 25)
		dirs = append(dirs, col...)
		right = colRight
	}

	beds := ofType(rooms, blueprint.Bedroom)
	x0 := math.Max(60, right+Gap)
	pitch := 0.0
	for _, i := range beds {
		pitch = math.Max(pitch, rooms[i].Width)
	}
	y, rowDepth := 20.0, 0.0
	for n, i := range beds {
		x := x0 + float64(n%2)*(pitch+Gap)
		dirs = append(dirs, Directive{Index: i, Position: blueprint.Position{X: x, Y: y}})
		rowDepth = math.Max(rowDepth, rooms[i].Depth)
		if n%2 == 1 {
			y += rowDepth + Gap
			rowDepth = 0
		}
	}
	return dirs
}

// Office runs reception, the open workspace, a column of meeting rooms and
// the break room left to right, with bathrooms stacked under the break room.
func Office(rooms []blueprint.Room) []Directive {
	var dirs []Directive
	x := Origin

	if i, ok := firstOf(rooms, blueprint.Reception); ok {
		dirs = append(dirs, Directive{Index: i, Position: blueprint.Position{X: x, Y: Origin}})
		x += rooms[i].Width + Gap
	}
	if i, ok := firstOf(rooms, blueprint.Workspace); ok {
		dirs = append(dirs, Directive{Index: i, Position: blueprint.Position{X: x, Y: Origin}})
		x += rooms[i].Width + Gap
	}
	if meetings := ofType(rooms, blueprint.Meeting); len(meetings) > 0 {
		col, right, _ := column(rooms, meetings, x, Origin)
		dirs = append(dirs, col...)
		x = right + Gap
	}

	bathY := Origin
	if i, ok := firstOf(rooms, blueprint.Break); ok {
		dirs = append(dirs, Directive{Index: i, Position: blueprint.Position{X: x, Y: Origin}})
		bathY = Origin + rooms[i].Depth + Gap
	}
	col, _, _ := column(rooms, ofType(rooms, blueprint.Bathroom), x, bathY)
	return append(dirs, col...)
}

// Shop puts an enlarged storefront at the street edge, storage behind it and
// the office with its bathrooms to the side.
func Shop(rooms []blueprint.Room) []Directive {
	var dirs []Directive
	right, bottom := Origin-Gap, Origin-Gap

	if i, ok := firstOf(rooms, blueprint.Storefront); ok {
		dirs = append(dirs, Directive{
			Index:    i,
			Position: blueprint.Position{X: Origin, Y: Origin},
			Size:     &Size{Width: 40, Depth: 30},
		})
		right, bottom = Origin+40, Origin+30
	}
	if i, ok := firstOf(rooms, blueprint.Storage); ok {
		dirs = append(dirs, Directive{Index: i, Position: blueprint.Position{X: 15, Y: bottom + Gap}})
		right = math.Max(right, 15+rooms[i].Width)
	}

	x := right + Gap
	bathY := 30.0
	if i, ok := firstOf(rooms, blueprint.Office); ok {
		dirs = append(dirs, Directive{Index: i, Position: blueprint.Position{X: x, Y: Origin}})
		bathY = math.Max(bathY, Origin+rooms[i].Depth+Gap)
	}
	col, _, _ := column(rooms, ofType(rooms, blueprint.Bathroom), x, bathY)
	return append(dirs, col...)
}

// Restaurant centers on an enlarged dining room with the kitchen and storage
// behind it and bathrooms and the office along the right.
func Restaurant(rooms []blueprint.Room) []Directive {
	var dirs []Directive
	right, bottom := Origin-Gap, Origin-Gap

	if i, ok := firstOf(rooms, blueprint.Dining); ok {
		dirs = append(dirs, Directive{
			Index:    i,
			Position: blueprint.Position{X: Origin, Y: Origin},
			Size:     &Size{Width: 50, Depth: 40},
		})
		right, bottom = Origin+50, Origin+40
	}

	backY := bottom + Gap
	backRight := Origin
	if i, ok := firstOf(rooms, blueprint.Kitchen); ok {
		dirs = append(dirs, Directive{Index: i, Position: blueprint.Position{X: 15, Y: backY}})
		backRight = 15 + rooms[i].Width
	}
	if i, ok := firstOf(rooms, blueprint.Storage); ok {
		dirs = append(dirs, Directive{Index: i, Position: blueprint.Position{X: backRight + Gap, Y: backY}})
		backRight += Gap + rooms[i].Width
	}

	x := math.Max(right, backRight) + Gap
	col, _, colBottom := column(rooms, ofType(rooms, blueprint.Bathroom), x, 15)
	dirs = append(dirs, col...)
	if i, ok := firstOf(rooms, blueprint.Office); ok {
		dirs = append(dirs, Directive{Index: i, Position: blueprint.Position{X: x, Y: math.Max(55, colBottom+Gap)}})
	}
	return dirs
}
