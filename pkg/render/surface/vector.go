package surface

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/fogleman/gg"

	"github.com/matzehuels/planforge/pkg/fonts"
)

// Vector is a [Surface] that records drawing calls as SVG elements.
type Vector struct {
	penStack
	w, h float64
	buf  bytes.Buffer
}

var _ Surface = (*Vector)(nil)

// NewVector returns an empty w×h SVG surface.
func NewVector(w, h float64) *Vector {
	return &Vector{penStack: penStack{cur: newPen()}, w: w, h: h}
}

func (v *Vector) Size() (float64, float64) { return v.w, v.h }

// Bytes returns the complete SVG document.
func (v *Vector) Bytes() []byte {
	var out bytes.Buffer
	fmt.Fprintf(&out, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%s" height="%s">`+"\n",
		num(v.w), num(v.h), num(v.w), num(v.h))
	out.Write(v.buf.Bytes())
	out.WriteString("</svg>\n")
	return out.Bytes()
}

func (v *Vector) Save()                  { v.save() }
func (v *Vector) Restore()               { v.restore() }
func (v *Vector) Translate(x, y float64) { v.translate(x, y) }
func (v *Vector) Scale(sx, sy float64)   { v.scale(sx, sy) }
func (v *Vector) Rotate(angle float64)   { v.rotate(angle) }

func (v *Vector) SetStroke(c Color, width float64) {
	v.cur.stroke = c
	v.cur.width = width
}

func (v *Vector) SetFill(c Color) { v.cur.fill = c }

func (v *Vector) SetDash(dashes ...float64) {
	v.cur.dash = append(v.cur.dash[:0:0], dashes...)
}

func (v *Vector) SetFont(f Font) { v.cur.font = f }

func (v *Vector) FillRect(x, y, w, h float64) {
	fmt.Fprintf(&v.buf, `  <rect x="%s" y="%s" width="%s" height="%s"%s%s/>`+"\n",
		num(x), num(y), num(w), num(h), v.fillAttrs(), v.transformAttr())
}

func (v *Vector) StrokeRect(x, y, w, h float64) {
	fmt.Fprintf(&v.buf, `  <rect x="%s" y="%s" width="%s" height="%s" fill="none"%s%s/>`+"\n",
		num(x), num(y), num(w), num(h), v.strokeAttrs(), v.transformAttr())
}

func (v *Vector) Line(x1, y1, x2, y2 float64) {
	fmt.Fprintf(&v.buf, `  <line x1="%s" y1="%s" x2="%s" y2="%s"%s%s/>`+"\n",
		num(x1), num(y1), num(x2), num(y2), v.strokeAttrs(), v.transformAttr())
}

func (v *Vector) Polyline(pts ...Point) {
	if len(pts) < 2 {
		return
	}
	coords := make([]string, len(pts))
	for i, p := range pts {
		coords[i] = num(p.X) + "," + num(p.Y)
	}
	fmt.Fprintf(&v.buf, `  <polyline points="%s" fill="none"%s%s/>`+"\n",
		strings.Join(coords, " "), v.strokeAttrs(), v.transformAttr())
}

func (v *Vector) Arc(x, y, r, a1, a2 float64) {
	sweep := a2 - a1
	if math.Abs(sweep) >= 2*math.Pi {
		v.StrokeCircle(x, y, r)
		return
	}
	large, dir := 0, 1
	if math.Abs(sweep) > math.Pi {
		large = 1
	}
	if sweep < 0 {
		dir = 0
	}
	x1, y1 := x+r*math.Cos(a1), y+r*math.Sin(a1)
	x2, y2 := x+r*math.Cos(a2), y+r*math.Sin(a2)
	fmt.Fprintf(&v.buf, `  <path d="M%s,%s A%s,%s 0 %d %d %s,%s" fill="none"%s%s/>`+"\n",
		num(x1), num(y1), num(r), num(r), large, dir, num(x2), num(y2), v.strokeAttrs(), v.transformAttr())
}

func (v *Vector) FillCircle(x, y, r float64) {
	fmt.Fprintf(&v.buf, `  <circle cx="%s" cy="%s" r="%s"%s%s/>`+"\n",
		num(x), num(y), num(r), v.fillAttrs(), v.transformAttr())
}

func (v *Vector) StrokeCircle(x, y, r float64) {
	fmt.Fprintf(&v.buf, `  <circle cx="%s" cy="%s" r="%s" fill="none"%s%s/>`+"\n",
		num(x), num(y), num(r), v.strokeAttrs(), v.transformAttr())
}

func (v *Vector) Text(s string, x, y float64, a Align) {
	if s == "" {
		return
	}
	f := v.cur.font
	style := fonts.Regular
	if f.Mono {
		style = fonts.Mono
	}
	var attrs strings.Builder
	fmt.Fprintf(&attrs, ` font-family="%s" font-size="%s"`, fonts.CSSFamily(style), num(f.Size))
	if f.Bold {
		attrs.WriteString(` font-weight="bold"`)
	}
	switch a {
	case AlignCenter:
		attrs.WriteString(` text-anchor="middle"`)
	case AlignRight:
		attrs.WriteString(` text-anchor="end"`)
	}
	fmt.Fprintf(&v.buf, `  <text x="%s" y="%s"%s%s%s>%s</text>`+"\n",
		num(x), num(y), attrs.String(), v.fillAttrs(), v.transformAttr(), escape(s))
}

func (v *Vector) fillAttrs() string {
	return paint("fill", v.cur.fill)
}

func (v *Vector) strokeAttrs() string {
	var b strings.Builder
	b.WriteString(paint("stroke", v.cur.stroke))
	fmt.Fprintf(&b, ` stroke-width="%s"`, num(v.cur.width))
	if len(v.cur.dash) > 0 {
		parts := make([]string, len(v.cur.dash))
		for i, d := range v.cur.dash {
			parts[i] = num(d)
		}
		fmt.Fprintf(&b, ` stroke-dasharray="%s"`, strings.Join(parts, " "))
	}
	return b.String()
}

func (v *Vector) transformAttr() string {
	m := v.cur.m
	if m == gg.Identity() {
		return ""
	}
	return fmt.Sprintf(` transform="matrix(%s %s %s %s %s %s)"`,
		num(m.XX), num(m.YX), num(m.XY), num(m.YY), num(m.X0), num(m.Y0))
}

func paint(attr string, c Color) string {
	if c.A >= 1 {
		return fmt.Sprintf(` %s="%s"`, attr, c)
	}
	return fmt.Sprintf(` %s="%s" %s-opacity="%s"`, attr, c, attr, num(c.A))
}

// num formats a coordinate with at most three decimals and no trailing
// zeros.
func num(f float64) string {
	r := math.Round(f*1000) / 1000
	if r == 0 {
		return "0"
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

func escape(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
