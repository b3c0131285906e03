package export

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"time"

	"github.com/matzehuels/planforge/pkg/blueprint"
	"github.com/matzehuels/planforge/pkg/standards"
)

const (
	VectorWidth  = 800
	VectorHeight = 600
	vectorScale  = 3
)

// Vector returns an 800×600 SVG overview of spec: one tinted rectangle and
// one centered name per room at 3 px per unit. Doors, windows and
// dimensions are not included.
func Vector(spec *blueprint.Spec) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">`+"\n", VectorWidth, VectorHeight)
	buf.WriteString(`  <rect width="100%" height="100%" fill="white"/>` + "\n")

	if spec != nil {
		for _, r := range spec.Rooms {
			renderRoom(&buf, r)
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderRoom(buf *bytes.Buffer, r blueprint.Room) {
	x, y := r.Position.X*vectorScale, r.Position.Y*vectorScale
	w, h := r.Width*vectorScale, r.Depth*vectorScale
	c := r.Color
	if c == "" {
		c = standards.Color(r.Type)
	}

	fmt.Fprintf(buf, `  <rect x="%s" y="%s" width="%s" height="%s" fill="%s40" stroke="%s" stroke-width="2"/>`+"\n",
		num(x), num(y), num(w), num(h), escape(c), escape(c))
	fmt.Fprintf(buf, `  <text x="%s" y="%s" text-anchor="middle" font-family="Arial" font-size="12" fill="#1f2937">%s</text>`+"\n",
		num(x+w/2), num(y+h/2), escape(r.Name))
}

// VectorName returns the SVG file name for a building type at time t.
func VectorName(bt blueprint.BuildingType, t time.Time) string {
	return fmt.Sprintf("blueprint-%s-%d.svg", bt, t.UnixMilli())
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func escape(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
