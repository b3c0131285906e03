// Package surface defines a small canvas-style drawing interface and two
// implementations of it.
//
// A [Surface] has a current transform, stroke, fill, dash pattern and font,
// all of which are saved and restored together by [Surface.Save] and
// [Surface.Restore]. Coordinates passed to drawing calls are in the current
// user space; line widths and dash lengths scale with the transform, as on
// an HTML canvas.
//
//   - [Raster] draws into an RGBA image with fogleman/gg and encodes PNG.
//   - [Vector] writes SVG elements, one per drawing call.
//
// Surfaces are not safe for concurrent use. Allocate one per drawing.
package surface

import (
	"slices"

	"github.com/fogleman/gg"
)

// Align is the horizontal anchor of a text string relative to its x
// coordinate. The y coordinate is always the baseline.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// anchor returns the fraction of the string width left of x.
func (a Align) anchor() float64 {
	switch a {
	case AlignCenter:
		return 0.5
	case AlignRight:
		return 1
	}
	return 0
}

// Font selects the text face. Size is in user-space pixels.
type Font struct {
	Size float64
	Bold bool
	Mono bool
}

// DefaultFont is the font of a fresh surface.
var DefaultFont = Font{Size: 10}

// Point is a user-space coordinate.
type Point struct {
	X, Y float64
}

// Surface is a canvas-like drawing target.
type Surface interface {
	// Size returns the device size in pixels.
	Size() (w, h float64)

	Save()
	Restore()
	Translate(x, y float64)
	Scale(sx, sy float64)
	// Rotate rotates by angle radians, clockwise on screen.
	Rotate(angle float64)

	SetStroke(c Color, width float64)
	SetFill(c Color)
	// SetDash sets the dash pattern for subsequent strokes. No arguments
	// restores solid lines.
	SetDash(dashes ...float64)
	SetFont(f Font)

	FillRect(x, y, w, h float64)
	StrokeRect(x, y, w, h float64)
	Line(x1, y1, x2, y2 float64)
	Polyline(pts ...Point)
	// Arc strokes the arc of the circle centered at (x, y) from angle a1 to
	// angle a2, sweeping in the direction of increasing angle.
	Arc(x, y, r, a1, a2 float64)
	FillCircle(x, y, r float64)
	StrokeCircle(x, y, r float64)
	// Text fills s with the fill color.
	Text(s string, x, y float64, a Align)
}

// pen is the drawing state shared by both surfaces.
type pen struct {
	m      gg.Matrix
	stroke Color
	width  float64
	fill   Color
	dash   []float64
	font   Font
}

func newPen() pen {
	return pen{m: gg.Identity(), stroke: Black, width: 1, fill: Black, font: DefaultFont}
}

// penStack holds the current pen and the saved ones.
type penStack struct {
	cur   pen
	saved []pen
}

func (p *penStack) save() {
	s := p.cur
	s.dash = slices.Clone(p.cur.dash)
	p.saved = append(p.saved, s)
}

// restore pops the last saved pen. Unbalanced calls are ignored.
func (p *penStack) restore() bool {
	if len(p.saved) == 0 {
		return false
	}
	p.cur = p.saved[len(p.saved)-1]
	p.saved = p.saved[:len(p.saved)-1]
	return true
}

func (p *penStack) translate(x, y float64) { p.cur.m = p.cur.m.Translate(x, y) }
func (p *penStack) scale(sx, sy float64)   { p.cur.m = p.cur.m.Scale(sx, sy) }
func (p *penStack) rotate(a float64)       { p.cur.m = p.cur.m.Rotate(a) }

// Transform returns the current user-to-device matrix.
func (p *penStack) Transform() gg.Matrix { return p.cur.m }
