package plan

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/planforge/pkg/blueprint"
	"github.com/matzehuels/planforge/pkg/render/surface"
)

const (
	majorGridFeet   = 48
	majorGridMeters = 14.4
	scaleNotation   = `SCALE: 1:100 (1/8" = 1'-0")`
)

// Draw paints the floor plan of spec onto s. The view's scale is clamped
// first. A nil spec or one without rooms draws only the background and
// grid.
func Draw(s surface.Surface, spec *blueprint.Spec, v View) {
	v = v.Clamp()
	w, h := s.Size()

	s.Save()
	defer s.Restore()

	s.SetFill(colorBackground)
	s.FillRect(0, 0, w, h)

	s.Translate(v.OffsetX, v.OffsetY)
	s.Scale(v.Scale, v.Scale)
	vw, vh := w/v.Scale, h/v.Scale

	unit := blueprint.Feet
	if spec != nil {
		unit = spec.Unit
	}
	drawGrid(s, vw, vh, unit)

	b, ok := Bounds(spec)
	if !ok {
		return
	}
	px := PixelsPerUnit(spec.Unit)

	s.Save()
	s.Translate((vw-b.Width())/2-b.MinX, (vh-b.Height())/2-b.MinY)
	drawOutline(s, spec, b)
	for _, r := range spec.Rooms {
		drawRoom(s, r, spec.Unit, px)
	}
	for _, r := range spec.Rooms {
		drawDimensions(s, r, spec.Unit, px)
	}
	s.Restore()

	drawAnnotations(s, vw, vh, spec)
}

// Raster draws spec on a new raster surface sized by [CanvasSize].
func Raster(spec *blueprint.Spec, v View) *surface.Raster {
	w, h := CanvasSize(spec)
	r := surface.NewRaster(w, h)
	Draw(r, spec, v)
	return r
}

// Vector draws spec on a new SVG surface sized by [CanvasSize].
func Vector(spec *blueprint.Spec, v View) *surface.Vector {
	w, h := CanvasSize(spec)
	out := surface.NewVector(float64(w), float64(h))
	Draw(out, spec, v)
	return out
}

func drawGrid(s surface.Surface, width, height float64, unit blueprint.Unit) {
	major := float64(majorGridFeet)
	if unit == blueprint.Meters {
		major = majorGridMeters
	}

	s.SetDash()
	s.SetStroke(colorGridMinor, 0.3)
	gridLines(s, width, height, major/4)
	s.SetStroke(colorGridMajor, 0.5)
	gridLines(s, width, height, major)

	if unit == blueprint.Meters {
		return
	}
	s.SetFill(colorGridLabel)
	s.SetFont(fontGridLabel)
	for x := major * 2; x < width; x += major * 2 {
		s.Text(fmt.Sprintf("%.0f'", x/major*4), x, 15, surface.AlignCenter)
	}
	for y := major * 2; y < height; y += major * 2 {
		s.Save()
		s.Translate(15, y)
		s.Rotate(-math.Pi / 2)
		s.Text(fmt.Sprintf("%.0f'", y/major*4), 0, 0, surface.AlignCenter)
		s.Restore()
	}
}

// gridLines strokes vertical and horizontal lines every step pixels, from 0
// up to and including the far edge.
func gridLines(s surface.Surface, width, height, step float64) {
	for i := 0; float64(i)*step <= width; i++ {
		x := float64(i) * step
		s.Line(x, 0, x, height)
	}
	for i := 0; float64(i)*step <= height; i++ {
		y := float64(i) * step
		s.Line(0, y, width, y)
	}
}

func drawOutline(s surface.Surface, spec *blueprint.Spec, b Rect) {
	s.SetStroke(colorFoundation, 1)
	s.SetDash(5, 3)
	s.StrokeRect(b.MinX-5, b.MinY-5, b.Width()+10, b.Height()+10)
	s.SetDash()

	s.SetStroke(colorInk, 3)
	s.StrokeRect(b.MinX, b.MinY, b.Width(), b.Height())

	s.SetStroke(colorWall, 1)
	s.SetDash(2, 4)
	s.StrokeRect(b.MinX+1.5, b.MinY+1.5, b.Width()-3, b.Height()-3)
	s.SetDash()

	drawNorthArrow(s, b.MinX+30, b.MinY+30)

	s.SetFill(colorInk)
	s.SetFont(fontTitle)
	s.Text(Title(spec), b.MinX+50, b.MinY-10, surface.AlignLeft)
	s.SetFont(fontScale)
	s.Text(scaleNotation, b.MaxX-150, b.MinY-10, surface.AlignLeft)
}

// Title returns the plan heading, e.g. "HOUSE PLAN - US".
func Title(spec *blueprint.Spec) string {
	return fmt.Sprintf("%s PLAN - %s", strings.ToUpper(string(spec.BuildingType)), spec.Country)
}

func drawNorthArrow(s surface.Surface, x, y float64) {
	s.SetFill(colorInk)
	s.SetFont(fontNorth)
	s.Text("N", x, y-8, surface.AlignCenter)

	s.SetStroke(colorInk, 1.5)
	s.StrokeCircle(x, y+15, 10)
	s.Polyline(
		surface.Point{X: x, Y: y + 5},
		surface.Point{X: x, Y: y + 25},
		surface.Point{X: x - 5, Y: y + 20},
	)
	s.Line(x, y+25, x+5, y+20)
}

// length formats a dimension for labels, to one decimal.
func length(v float64) string {
	return strconv.FormatFloat(blueprint.Round(v), 'f', -1, 64)
}
