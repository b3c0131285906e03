package plan

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

const (
	DefaultScale = 0.8
	MinScale     = 0.3
	MaxScale     = 2.5
	ZoomStep     = 0.1
)

// View is the pan and zoom state of a drawing. Offsets are in canvas
// pixels and applied before the scale.
type View struct {
	Scale   float64 `json:"scale"`
	OffsetX float64 `json:"offsetX"`
	OffsetY float64 `json:"offsetY"`
}

// DefaultView returns the initial view: 80% zoom, no pan.
func DefaultView() View {
	return View{Scale: DefaultScale}
}

// ZoomIn returns v one step closer, capped at MaxScale.
func (v View) ZoomIn() View {
	v.Scale = scalar.Round(math.Min(v.Scale+ZoomStep, MaxScale), 2)
	return v
}

// ZoomOut returns v one step further, floored at MinScale.
func (v View) ZoomOut() View {
	v.Scale = scalar.Round(math.Max(v.Scale-ZoomStep, MinScale), 2)
	return v
}

// Wheel zooms in for a negative scroll delta and out otherwise.
func (v View) Wheel(deltaY float64) View {
	if deltaY < 0 {
		return v.ZoomIn()
	}
	return v.ZoomOut()
}

// Clamp returns v with its scale limited to [MinScale, MaxScale]. A zero or
// NaN scale becomes DefaultScale.
func (v View) Clamp() View {
	if v.Scale == 0 || math.IsNaN(v.Scale) {
		v.Scale = DefaultScale
	}
	v.Scale = math.Max(MinScale, math.Min(MaxScale, v.Scale))
	return v
}

// Pan returns v moved by a pointer drag delta.
func (v View) Pan(dx, dy float64) View {
	v.OffsetX += dx
	v.OffsetY += dy
	return v
}

// Reset returns the default view.
func (v View) Reset() View {
	return DefaultView()
}

// Percent is the zoom readout, e.g. "80%".
func (v View) Percent() string {
	return fmt.Sprintf("%.0f%%", v.Scale*100)
}

// Ratio is the drawing scale readout, e.g. "1:125" at 80% zoom.
func (v View) Ratio() string {
	if v.Scale <= 0 {
		return "1:-"
	}
	return fmt.Sprintf("1:%.0f", math.Round(100/v.Scale))
}
