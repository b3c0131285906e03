package surface

import (
	"bytes"
	"image/color"
	"image/png"
	"math"
	"strings"
	"testing"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#1e293b", Color{R: 0x1e, G: 0x29, B: 0x3b, A: 1}},
		{"0ea5e9", Color{R: 0x0e, G: 0xa5, B: 0xe9, A: 1}},
		{"#fff", White},
		{"#00000080", Color{A: 128.0 / 255}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHex(tt.in)
			if err != nil {
				t.Fatalf("ParseHex(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseHex(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseHexInvalid(t *testing.T) {
	for _, in := range []string{"", "#12", "#zzzzzz", "#1234567"} {
		if _, err := ParseHex(in); err == nil {
			t.Errorf("ParseHex(%q) succeeded, want error", in)
		}
	}
	if got := Hex("nope"); got != Black {
		t.Errorf("Hex(invalid) = %+v, want black", got)
	}
}

func TestColorString(t *testing.T) {
	if got := RGBA(14, 165, 233, 0.1).String(); got != "#0ea5e9" {
		t.Errorf("String() = %q", got)
	}
	if got := RGBA(0, 0, 0, 2).A; got != 1 {
		t.Errorf("alpha not clamped: %v", got)
	}
	if got := RGBA(255, 255, 255, 0.5).NRGBA(); got != (color.NRGBA{255, 255, 255, 128}) {
		t.Errorf("NRGBA() = %v", got)
	}
}

func TestVectorEmpty(t *testing.T) {
	out := string(NewVector(800, 600).Bytes())
	if !strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 800 600" width="800" height="600">`) {
		t.Errorf("unexpected header: %s", out)
	}
	if !strings.HasSuffix(out, "</svg>\n") {
		t.Errorf("missing closing tag: %s", out)
	}
}

func TestVectorElements(t *testing.T) {
	v := NewVector(100, 100)
	v.SetFill(RGBA(254, 240, 138, 0.15))
	v.FillRect(1, 2, 3, 4)
	v.SetStroke(Hex("#475569"), 1.5)
	v.SetDash(3, 3)
	v.StrokeRect(0, 0, 10, 10)
	v.SetDash()
	v.Line(0, 0, 5, 5)
	v.SetFont(Font{Size: 9, Mono: true})
	v.Text("a < b", 5, 5, AlignCenter)

	out := string(v.Bytes())
	for _, want := range []string{
		`<rect x="1" y="2" width="3" height="4" fill="#fef08a" fill-opacity="0.15"/>`,
		`<rect x="0" y="0" width="10" height="10" fill="none" stroke="#475569" stroke-width="1.5" stroke-dasharray="3 3"/>`,
		`<line x1="0" y1="0" x2="5" y2="5" stroke="#475569" stroke-width="1.5"/>`,
		`font-size="9"`,
		`text-anchor="middle"`,
		`>a &lt; b</text>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s\n%s", want, out)
		}
	}
}

func TestVectorTransformStack(t *testing.T) {
	v := NewVector(100, 100)
	v.Save()
	v.Translate(10, 20)
	v.Scale(2, 2)
	x, y := v.Transform().TransformPoint(1, 1)
	if x != 12 || y != 22 {
		t.Errorf("TransformPoint(1,1) = (%v,%v), want (12,22)", x, y)
	}
	v.FillRect(0, 0, 1, 1)
	v.Restore()
	v.FillRect(0, 0, 1, 1)
	v.Restore() // unbalanced restores are ignored

	out := string(v.Bytes())
	if !strings.Contains(out, `transform="matrix(2 0 0 2 10 20)"`) {
		t.Errorf("missing transform:\n%s", out)
	}
	if strings.Count(out, "transform=") != 1 {
		t.Errorf("transform leaked past Restore:\n%s", out)
	}
}

func TestVectorRotate(t *testing.T) {
	v := NewVector(10, 10)
	v.Rotate(-math.Pi / 2)
	x, y := v.Transform().TransformPoint(1, 0)
	if math.Abs(x) > 1e-9 || math.Abs(y+1) > 1e-9 {
		t.Errorf("rotated (1,0) = (%v,%v), want (0,-1)", x, y)
	}
}

func TestVectorArc(t *testing.T) {
	tests := []struct {
		name   string
		a1, a2 float64
		want   string
	}{
		{"quarter", math.Pi, 1.5 * math.Pi, `<path d="M-10,0 A10,10 0 0 1 0,-10"`},
		{"reverse", 0, -0.5 * math.Pi, `A10,10 0 0 0 0,-10`},
		{"full", 0, 2 * math.Pi, `<circle cx="0" cy="0" r="10" fill="none"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewVector(10, 10)
			v.Arc(0, 0, 10, tt.a1, tt.a2)
			if out := string(v.Bytes()); !strings.Contains(out, tt.want) {
				t.Errorf("missing %s in\n%s", tt.want, out)
			}
		})
	}
}

func TestRasterFill(t *testing.T) {
	r := NewRaster(20, 10)
	if w, h := r.Size(); w != 20 || h != 10 {
		t.Fatalf("Size() = %v,%v", w, h)
	}
	r.SetFill(Hex("#ff0000"))
	r.FillRect(0, 0, 20, 10)

	got := color.NRGBAModel.Convert(r.Image().At(10, 5)).(color.NRGBA)
	if got != (color.NRGBA{255, 0, 0, 255}) {
		t.Errorf("pixel = %v, want opaque red", got)
	}
}

func TestRasterTransformedFill(t *testing.T) {
	r := NewRaster(20, 20)
	r.Save()
	r.Translate(10, 10)
	r.Scale(2, 2)
	r.SetFill(Black)
	r.FillRect(0, 0, 4, 4)
	r.Restore()

	if _, _, _, a := r.Image().At(5, 5).RGBA(); a != 0 {
		t.Errorf("pixel outside translated rect is painted")
	}
	if _, _, _, a := r.Image().At(15, 15).RGBA(); a == 0 {
		t.Errorf("pixel inside translated rect is empty")
	}
}

func TestRasterPNG(t *testing.T) {
	r := NewRaster(64, 32)
	r.SetFill(White)
	r.FillRect(0, 0, 64, 32)
	r.SetStroke(Hex("#1e293b"), 3)
	r.SetDash(5, 3)
	r.StrokeRect(4, 4, 50, 20)
	r.Arc(20, 20, 8, math.Pi, 1.5*math.Pi)
	r.SetFill(Hex("#1e293b"))
	r.SetFont(Font{Size: 10, Bold: true})
	r.Text("N", 32, 16, AlignCenter)
	if err := r.Err(); err != nil {
		t.Fatalf("Err() = %v", err)
	}

	var buf bytes.Buffer
	if err := r.EncodePNG(&buf); err != nil {
		t.Fatalf("EncodePNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 32 {
		t.Errorf("bounds = %v", b)
	}
}
