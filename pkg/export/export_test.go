package export

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/planforge/pkg/blueprint"
	"github.com/matzehuels/planforge/pkg/render/surface"
)

func sampleSpec() *blueprint.Spec {
	living := blueprint.NewRoom("room-0", "Living", blueprint.Living, 16, 20)
	living.Position = blueprint.Position{X: 10, Y: 20}
	living.Color = "#3b82f6"
	bath := blueprint.NewRoom("room-1", "Bath & WC", blueprint.Bathroom, 8, 10)
	bath.Position = blueprint.Position{X: 31, Y: 20}
	return blueprint.Finalize(&blueprint.Spec{
		ID:           "spec-1",
		BuildingType: blueprint.BuildingHouse,
		Country:      "US",
		Unit:         blueprint.Feet,
		Layout:       blueprint.Linear,
		CreatedAt:    time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC),
	}, []blueprint.Room{living, bath})
}

func TestDocumentNilRaster(t *testing.T) {
	var buf bytes.Buffer
	if err := Document(&buf, nil, DocumentOptions{}); err != nil {
		t.Fatalf("Document(nil) = %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("Document(nil) wrote %d bytes", buf.Len())
	}
}

func TestDocument(t *testing.T) {
	r := surface.NewRaster(200, 100)
	r.SetFill(surface.White)
	r.FillRect(0, 0, 200, 100)

	for _, title := range []string{"", "HOUSE PLAN - US"} {
		var buf bytes.Buffer
		err := Document(&buf, r, DocumentOptions{Title: title, CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)})
		if err != nil {
			t.Fatalf("Document(%q): %v", title, err)
		}
		out := buf.Bytes()
		if !bytes.HasPrefix(out, []byte("%PDF-")) {
			t.Errorf("missing PDF header: %q", out[:min(len(out), 16)])
		}
		if !bytes.Contains(out, []byte("%%EOF")) {
			t.Error("missing PDF trailer")
		}
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		name       string
		iw, ih     float64
		x, y, w, h float64
	}{
		{"height bound", 400, 380, 48.5, 10, 200, 190},
		{"width bound", 554, 20, 10, 100, 277, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, w, h := fit(tt.iw, tt.ih, 10, 10, 277, 190)
			if x != tt.x || y != tt.y || w != tt.w || h != tt.h {
				t.Errorf("fit() = (%v,%v,%v,%v), want (%v,%v,%v,%v)", x, y, w, h, tt.x, tt.y, tt.w, tt.h)
			}
		})
	}
}

func TestVector(t *testing.T) {
	svg := string(Vector(sampleSpec()))

	if !strings.HasPrefix(svg, `<svg width="800" height="600" xmlns="http://www.w3.org/2000/svg">`) {
		t.Errorf("unexpected root: %s", svg)
	}
	if n := strings.Count(svg, "<rect"); n != 3 {
		t.Errorf("rect count = %d, want background plus 2 rooms", n)
	}
	if n := strings.Count(svg, "<text"); n != 2 {
		t.Errorf("text count = %d, want 2", n)
	}
	for _, want := range []string{
		`<rect width="100%" height="100%" fill="white"/>`,
		`<rect x="30" y="60" width="48" height="60" fill="#3b82f640" stroke="#3b82f6" stroke-width="2"/>`,
		`<text x="54" y="90" text-anchor="middle"`,
		`>Bath &amp; WC</text>`,
		`fill="#06b6d440"`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("svg missing %s\n%s", want, svg)
		}
	}
	for _, absent := range []string{"<path", "<circle", "<line"} {
		if strings.Contains(svg, absent) {
			t.Errorf("svg contains %s", absent)
		}
	}
}

func TestVectorEmpty(t *testing.T) {
	svg := string(Vector(&blueprint.Spec{}))
	if n := strings.Count(svg, "<rect"); n != 1 {
		t.Errorf("rect count = %d, want background only", n)
	}
}

func TestText(t *testing.T) {
	data, err := Text(sampleSpec())
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if !strings.Contains(string(data), "\n  \"buildingType\": \"house\"") {
		t.Errorf("not indented by two spaces:\n%s", data)
	}
	var back blueprint.Spec
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.TotalArea != 400 || len(back.Rooms) != 2 {
		t.Errorf("round trip lost data: %+v", back)
	}
}

func TestYAML(t *testing.T) {
	data, err := YAML(sampleSpec())
	if err != nil {
		t.Fatalf("YAML: %v", err)
	}
	for _, want := range []string{"buildingType: house", "country: US", "totalArea: 400", "- id: room-0"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("yaml missing %q:\n%s", want, data)
		}
	}
}

func TestNames(t *testing.T) {
	if got := DocumentName("blueprint-house"); got != "blueprint-house.pdf" {
		t.Errorf("DocumentName() = %q", got)
	}
	ts := time.UnixMilli(1700000000123)
	if got := VectorName(blueprint.BuildingShop, ts); got != "blueprint-shop-1700000000123.svg" {
		t.Errorf("VectorName() = %q", got)
	}
}

func TestClipboard(t *testing.T) {
	orig := writeClipboard
	t.Cleanup(func() { writeClipboard = orig })

	var got string
	writeClipboard = func(s string) error { got = s; return nil }
	if err := Clipboard(context.Background(), "hello"); err != nil {
		t.Fatalf("Clipboard: %v", err)
	}
	if got != "hello" {
		t.Errorf("clipboard got %q", got)
	}

	writeClipboard = func(string) error { return ErrClipboardUnavailable }
	if err := Clipboard(context.Background(), "x"); !errors.Is(err, ErrClipboardUnavailable) {
		t.Errorf("Clipboard() = %v, want ErrClipboardUnavailable", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := Clipboard(ctx, "x"); !errors.Is(err, context.Canceled) {
		t.Errorf("Clipboard(canceled) = %v", err)
	}
}
