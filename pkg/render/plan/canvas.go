package plan

import (
	"math"

	"github.com/matzehuels/planforge/pkg/blueprint"
)

const (
	canvasInset   = 40
	canvasPadding = 100
	boundsMargin  = 20

	MaxCanvasWidth    = 1400
	MaxCanvasHeight   = 1000
	EmptyCanvasWidth  = 1000
	EmptyCanvasHeight = 800
)

// PixelsPerUnit is the drawing density for a unit.
func PixelsPerUnit(u blueprint.Unit) float64 {
	if u == blueprint.Meters {
		return 4
	}
	return 12
}

// CanvasSize returns the canvas dimensions in pixels for spec. Specs
// without rooms get a fixed 1000×800 canvas.
func CanvasSize(spec *blueprint.Spec) (w, h int) {
	if spec == nil || len(spec.Rooms) == 0 {
		return EmptyCanvasWidth, EmptyCanvasHeight
	}
	px := PixelsPerUnit(spec.Unit)
	var maxX, maxY float64
	for _, r := range spec.Rooms {
		maxX = math.Max(maxX, r.Right()*px+canvasInset)
		maxY = math.Max(maxY, r.Bottom()*px+canvasInset)
	}
	w = int(math.Min(maxX+canvasPadding, MaxCanvasWidth))
	h = int(math.Min(maxY+canvasPadding, MaxCanvasHeight))
	return w, h
}

// Rect is an axis-aligned rectangle in canvas pixels.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

func (r Rect) Width() float64  { return r.MaxX - r.MinX }
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Bounds returns the pixel bounding box of all rooms, grown by a 20 px
// margin on every side. ok is false when spec has no rooms.
func Bounds(spec *blueprint.Spec) (b Rect, ok bool) {
	if spec == nil || len(spec.Rooms) == 0 {
		return Rect{}, false
	}
	px := PixelsPerUnit(spec.Unit)
	b = Rect{MinX: math.Inf(1), MinY: math.Inf(1)}
	for _, r := range spec.Rooms {
		b.MinX = math.Min(b.MinX, r.Position.X*px)
		b.MinY = math.Min(b.MinY, r.Position.Y*px)
		b.MaxX = math.Max(b.MaxX, r.Right()*px)
		b.MaxY = math.Max(b.MaxY, r.Bottom()*px)
	}
	b.MinX -= boundsMargin
	b.MinY -= boundsMargin
	b.MaxX += boundsMargin
	b.MaxY += boundsMargin
	return b, true
}

// roomRect converts a room to canvas pixels.
func roomRect(r blueprint.Room, px float64) (x, y, w, d float64) {
	return r.Position.X * px, r.Position.Y * px, r.Width * px, r.Depth * px
}
