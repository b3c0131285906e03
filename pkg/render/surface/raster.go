package surface

import (
	"image"
	"io"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/matzehuels/planforge/pkg/fonts"
)

// Raster is a [Surface] that draws into an in-memory RGBA image.
type Raster struct {
	penStack
	dc    *gg.Context
	w, h  int
	faces map[Font]font.Face
	err   error
}

var _ Surface = (*Raster)(nil)

// NewRaster returns a transparent w×h raster surface.
func NewRaster(w, h int) *Raster {
	return &Raster{
		penStack: penStack{cur: newPen()},
		dc:       gg.NewContext(w, h),
		w:        w,
		h:        h,
		faces:    make(map[Font]font.Face),
	}
}

func (r *Raster) Size() (float64, float64) { return float64(r.w), float64(r.h) }

// Image returns the drawn image. It is not copied.
func (r *Raster) Image() image.Image { return r.dc.Image() }

// EncodePNG writes the image as PNG.
func (r *Raster) EncodePNG(w io.Writer) error { return r.dc.EncodePNG(w) }

// Err reports the first font loading failure, if any. Text drawn after a
// failure is skipped.
func (r *Raster) Err() error { return r.err }

func (r *Raster) Save() {
	r.save()
	r.dc.Push()
}

func (r *Raster) Restore() {
	if r.restore() {
		r.dc.Pop()
	}
}

func (r *Raster) Translate(x, y float64) {
	r.translate(x, y)
	r.dc.Translate(x, y)
}

func (r *Raster) Scale(sx, sy float64) {
	r.scale(sx, sy)
	r.dc.Scale(sx, sy)
}

func (r *Raster) Rotate(angle float64) {
	r.rotate(angle)
	r.dc.Rotate(angle)
}

func (r *Raster) SetStroke(c Color, width float64) {
	r.cur.stroke = c
	r.cur.width = width
}

func (r *Raster) SetFill(c Color) { r.cur.fill = c }

func (r *Raster) SetDash(dashes ...float64) {
	r.cur.dash = append(r.cur.dash[:0:0], dashes...)
}

func (r *Raster) SetFont(f Font) { r.cur.font = f }

func (r *Raster) FillRect(x, y, w, h float64) {
	r.dc.DrawRectangle(x, y, w, h)
	r.fillPath()
}

func (r *Raster) StrokeRect(x, y, w, h float64) {
	r.dc.DrawRectangle(x, y, w, h)
	r.strokePath()
}

func (r *Raster) Line(x1, y1, x2, y2 float64) {
	r.dc.DrawLine(x1, y1, x2, y2)
	r.strokePath()
}

func (r *Raster) Polyline(pts ...Point) {
	if len(pts) < 2 {
		return
	}
	r.dc.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		r.dc.LineTo(p.X, p.Y)
	}
	r.strokePath()
}

func (r *Raster) Arc(x, y, radius, a1, a2 float64) {
	r.dc.NewSubPath()
	r.dc.DrawArc(x, y, radius, a1, a2)
	r.strokePath()
}

func (r *Raster) FillCircle(x, y, radius float64) {
	r.dc.DrawCircle(x, y, radius)
	r.fillPath()
}

func (r *Raster) StrokeCircle(x, y, radius float64) {
	r.dc.DrawCircle(x, y, radius)
	r.strokePath()
}

func (r *Raster) Text(s string, x, y float64, a Align) {
	face := r.face(r.cur.font)
	if face == nil || s == "" {
		return
	}
	r.dc.SetFontFace(face)
	r.dc.SetColor(r.cur.fill.NRGBA())
	r.dc.DrawStringAnchored(s, x, y, a.anchor(), 0)
}

func (r *Raster) face(f Font) font.Face {
	if face, ok := r.faces[f]; ok {
		return face
	}
	style := fonts.Regular
	switch {
	case f.Mono:
		style = fonts.Mono
	case f.Bold:
		style = fonts.Bold
	}
	face, err := fonts.Face(style, f.Size)
	if err != nil {
		if r.err == nil {
			r.err = err
		}
		return nil
	}
	r.faces[f] = face
	return face
}

// lineScale is the factor by which the current transform stretches
// lengths, used to keep stroke widths in user space. gg strokes in device
// pixels.
func (r *Raster) lineScale() float64 {
	m := r.cur.m
	return math.Sqrt(math.Abs(m.XX*m.YY - m.XY*m.YX))
}

func (r *Raster) strokePath() {
	k := r.lineScale()
	r.dc.SetColor(r.cur.stroke.NRGBA())
	r.dc.SetLineWidth(r.cur.width * k)
	dash := make([]float64, len(r.cur.dash))
	for i, d := range r.cur.dash {
		dash[i] = d * k
	}
	r.dc.SetDash(dash...)
	r.dc.Stroke()
}

func (r *Raster) fillPath() {
	r.dc.SetColor(r.cur.fill.NRGBA())
	r.dc.Fill()
}
