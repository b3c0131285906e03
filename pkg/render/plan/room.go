package plan

import (
	"fmt"
	"math"
	"strings"

	"github.com/matzehuels/planforge/pkg/blueprint"
	"github.com/matzehuels/planforge/pkg/render/surface"
)

const (
	knobRadius     = 0.8
	labelMaxWidth  = 120
	labelHeight    = 36
	labelWidthFrac = 0.8
)

func drawRoom(s surface.Surface, r blueprint.Room, unit blueprint.Unit, px float64) {
	x, y, w, d := roomRect(r, px)

	s.SetFill(RoomFill(r.Type))
	s.FillRect(x, y, w, d)

	s.SetStroke(colorWall, 1.5)
	s.StrokeRect(x, y, w, d)

	s.SetStroke(colorCenterline, 0.5)
	s.SetDash(3, 3)
	s.StrokeRect(x+0.75, y+0.75, w-1.5, d-1.5)
	s.SetDash()

	for _, o := range r.Doors {
		drawDoor(s, x, y, w, d, o, px)
	}
	for _, o := range r.Windows {
		drawWindow(s, x, y, w, d, o, px)
	}
	drawLabel(s, x, y, w, d, r, unit)
}

// drawDoor draws the jamb line and the quarter swing arc hinged on the
// wall, plus a knob at the hinge.
func drawDoor(s surface.Surface, x, y, w, d float64, o blueprint.Opening, px float64) {
	dw := o.Width * px
	s.SetStroke(colorDoor, 1.5)
	s.SetFill(colorDoor)

	var hx, hy, jx, jy, a1, a2 float64
	switch o.Wall {
	case blueprint.North:
		hx, hy = x+w*o.Position, y
		jx, jy = hx, hy+dw
		a1, a2 = math.Pi, 1.5*math.Pi
	case blueprint.South:
		hx, hy = x+w*o.Position, y+d
		jx, jy = hx, hy-dw
		a1, a2 = 0, 0.5*math.Pi
	case blueprint.East:
		hx, hy = x+w, y+d*o.Position
		jx, jy = hx-dw, hy
		a1, a2 = 0.5*math.Pi, math.Pi
	case blueprint.West:
		hx, hy = x, y+d*o.Position
		jx, jy = hx+dw, hy
		a1, a2 = 1.5*math.Pi, 2*math.Pi
	default:
		return
	}
	s.Line(hx, hy, jx, jy)
	s.Arc(hx, hy, dw, a1, a2)
	s.FillCircle(hx, hy, knobRadius)
}

// drawWindow draws the glazing as a zero-thickness rectangle along the wall
// with a mullion in each direction.
func drawWindow(s surface.Surface, x, y, w, d float64, o blueprint.Opening, px float64) {
	ww := o.Width * px
	var x1, y1, x2, y2 float64
	switch o.Wall {
	case blueprint.North:
		x1, y1 = x+w*o.Position-ww/2, y
		x2, y2 = x1+ww, y
	case blueprint.South:
		x1, y1 = x+w*o.Position-ww/2, y+d
		x2, y2 = x1+ww, y+d
	case blueprint.East:
		x1, y1 = x+w, y+d*o.Position-ww/2
		x2, y2 = x+w, y1+ww
	case blueprint.West:
		x1, y1 = x, y+d*o.Position-ww/2
		x2, y2 = x, y1+ww
	default:
		return
	}

	s.SetStroke(colorWindow, 1)
	s.SetFill(colorGlass)
	s.FillRect(x1, y1, x2-x1, y2-y1)
	s.StrokeRect(x1, y1, x2-x1, y2-y1)
	s.Line((x1+x2)/2, y1, (x1+x2)/2, y2)
	s.Line(x1, (y1+y2)/2, x2, (y1+y2)/2)
}

func drawLabel(s surface.Surface, x, y, w, d float64, r blueprint.Room, unit blueprint.Unit) {
	cx, cy := x+w/2, y+d/2
	lw := math.Min(w*labelWidthFrac, labelMaxWidth)

	s.SetFill(colorLabelBox)
	s.FillRect(cx-lw/2, cy-labelHeight/2, lw, labelHeight)
	s.SetStroke(colorCenterline, 0.5)
	s.StrokeRect(cx-lw/2, cy-labelHeight/2, lw, labelHeight)

	s.SetFill(colorInk)
	s.SetFont(fontRoomName)
	s.Text(strings.ToUpper(r.Name), cx, cy-6, surface.AlignCenter)

	s.SetFont(fontRoomInfo)
	s.SetFill(colorLabelText)
	s.Text(DimensionText(r, unit), cx, cy+4, surface.AlignCenter)
	s.Text(AreaText(r.Area, unit), cx, cy+16, surface.AlignCenter)
}

// DimensionText is the "width × depth" label of a room, e.g. "16' × 20'"
// or "4.9m × 6.1m".
func DimensionText(r blueprint.Room, unit blueprint.Unit) string {
	a := unit.Abbrev()
	return fmt.Sprintf("%s%s × %s%s", length(r.Width), a, length(r.Depth), a)
}

// AreaText is an area label such as "320 SF" or "29.7 m²".
func AreaText(area float64, unit blueprint.Unit) string {
	return length(area) + " " + unit.AreaAbbrev()
}
