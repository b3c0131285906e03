package plan

import (
	"fmt"
	"math"
	"strings"

	"github.com/matzehuels/planforge/pkg/blueprint"
	"github.com/matzehuels/planforge/pkg/render/surface"
)

const (
	dimOffset    = 15
	arrowSize    = 3
	titleWidth   = 200
	titleHeight  = 80
	legendWidth  = 180
	legendHeight = 100
)

// drawDimensions draws the width dimension below the room and the depth
// dimension left of it.
func drawDimensions(s surface.Surface, r blueprint.Room, unit blueprint.Unit, px float64) {
	x, y, w, d := roomRect(r, px)
	s.SetStroke(colorDimension, 0.8)
	s.SetFill(colorDimension)
	s.SetFont(fontDimension)

	dimY := y + d + dimOffset
	s.Line(x, dimY, x+w, dimY)
	s.Line(x, y+d, x, dimY)
	s.Line(x+w, y+d, x+w, dimY)
	drawArrowhead(s, x, dimY, math.Pi/2)
	drawArrowhead(s, x+w, dimY, -math.Pi/2)
	s.Text(length(r.Width)+unit.Abbrev(), x+w/2, dimY+10, surface.AlignCenter)

	dimX := x - dimOffset
	s.Line(dimX, y, dimX, y+d)
	s.Line(x, y, dimX, y)
	s.Line(x, y+d, dimX, y+d)
	drawArrowhead(s, dimX, y, 0)
	drawArrowhead(s, dimX, y+d, math.Pi)

	s.Save()
	s.Translate(dimX-10, y+d/2)
	s.Rotate(-math.Pi / 2)
	s.Text(length(r.Depth)+unit.Abbrev(), 0, 0, surface.AlignCenter)
	s.Restore()
}

func drawArrowhead(s surface.Surface, x, y, angle float64) {
	s.Save()
	s.Translate(x, y)
	s.Rotate(angle)
	s.Polyline(
		surface.Point{X: -arrowSize, Y: -arrowSize},
		surface.Point{X: 0, Y: 0},
		surface.Point{X: -arrowSize, Y: arrowSize},
	)
	s.Restore()
}

// drawAnnotations draws the title block in the bottom-right corner and the
// line legend in the bottom-left corner of the visible area.
func drawAnnotations(s surface.Surface, width, height float64, spec *blueprint.Spec) {
	tx, ty := width-titleWidth-20, height-titleHeight-20
	s.SetFill(colorTitleBlock)
	s.FillRect(tx, ty, titleWidth, titleHeight)
	s.SetStroke(colorInk, 1)
	s.StrokeRect(tx, ty, titleWidth, titleHeight)

	s.SetFill(colorInk)
	s.SetFont(fontBlockHead)
	s.Text("ARCHITECTURAL PLAN", tx+10, ty+20, surface.AlignLeft)
	s.SetFont(fontBlockBody)
	s.Text("Type: "+strings.ToUpper(string(spec.BuildingType)), tx+10, ty+35, surface.AlignLeft)
	s.Text(fmt.Sprintf("Area: %.0f %s", spec.TotalArea, spec.Unit.AreaAbbrev()), tx+10, ty+50, surface.AlignLeft)
	s.Text("Layout: "+strings.ToUpper(string(spec.Layout)), tx+10, ty+65, surface.AlignLeft)

	drawn := "-"
	if !spec.CreatedAt.IsZero() {
		drawn = spec.CreatedAt.Format("1/2/2006")
	}
	s.SetFont(fontBlockInfo)
	s.Text("Drawn: "+drawn, tx+110, ty+35, surface.AlignLeft)
	s.Text("Units: "+string(spec.Unit), tx+110, ty+50, surface.AlignLeft)
	s.Text(`Scale: 1/8" = 1'-0"`, tx+110, ty+65, surface.AlignLeft)

	lx, ly := 20.0, height-120
	s.SetFill(colorLabelBox)
	s.FillRect(lx, ly, legendWidth, legendHeight)
	s.SetStroke(colorCenterline, 0.5)
	s.StrokeRect(lx, ly, legendWidth, legendHeight)

	s.SetFill(colorInk)
	s.SetFont(fontNorth)
	s.Text("LEGEND", lx+10, ly+15, surface.AlignLeft)

	s.SetFont(fontLegend)
	for i, e := range legend {
		iy := ly + 30 + float64(i)*15
		s.SetStroke(e.color, e.width)
		s.Line(lx+10, iy, lx+30, iy)
		s.SetFill(colorWall)
		s.Text(e.label, lx+40, iy+3, surface.AlignLeft)
	}
}
