package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/planforge/pkg/blueprint"
	"github.com/matzehuels/planforge/pkg/cache"
	"github.com/matzehuels/planforge/pkg/generate"
	"github.com/matzehuels/planforge/pkg/observability"
)

var fixedTime = time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)

func newTestRunner(t *testing.T, c cache.Cache) *Runner {
	t.Helper()
	r := NewRunner(c, nil, nil)
	r.Generator = generate.New(
		generate.WithDelay(0),
		generate.WithClock(func() time.Time { return fixedTime }),
		generate.WithIDs(func() string { return "spec-1" }),
	)
	return r
}

func newFileCache(t *testing.T) *cache.FileCache {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	return c
}

func generated(t *testing.T, r *Runner) *blueprint.Spec {
	t.Helper()
	spec, _, err := r.Generate(context.Background(), Options{BuildingType: "house", Country: "US"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return spec
}

func TestRunnerGenerate(t *testing.T) {
	r := newTestRunner(t, nil)
	spec, warnings, err := r.Generate(context.Background(), Options{BuildingType: "house", Country: "US"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if spec.ID != "spec-1" || len(spec.Rooms) != 5 {
		t.Fatalf("spec = %q with %d rooms", spec.ID, len(spec.Rooms))
	}
	// Laid out: the living room is placed first at its archetype anchor.
	if got := spec.Rooms[0]; got.Type != blueprint.Living || got.Position != (blueprint.Position{X: 10, Y: 20}) {
		t.Errorf("first room = %s at %+v", got.Type, got.Position)
	}
	if spec.TotalArea != blueprint.TotalArea(spec.Rooms) {
		t.Errorf("TotalArea = %v, rooms sum to %v", spec.TotalArea, blueprint.TotalArea(spec.Rooms))
	}
	for _, w := range warnings {
		if strings.Contains(w, "overlaps") {
			t.Errorf("generated house overlaps: %s", w)
		}
	}
}

func TestRunnerGenerateInvalid(t *testing.T) {
	r := newTestRunner(t, nil)
	if _, _, err := r.Generate(context.Background(), Options{BuildingType: "castle"}); err == nil {
		t.Error("Generate(castle) should fail")
	}
}

type failingSource struct{ err error }

func (s failingSource) Generate(context.Context, blueprint.BuildingType, string) (*blueprint.Spec, error) {
	return nil, s.err
}

func TestRunnerGenerateSourceOverride(t *testing.T) {
	r := newTestRunner(t, nil)
	_, _, err := r.Generate(context.Background(), Options{Source: failingSource{generate.ErrSuperseded}})
	if !errors.Is(err, generate.ErrSuperseded) {
		t.Errorf("error = %v, want ErrSuperseded", err)
	}
}

func TestRunnerLayoutCache(t *testing.T) {
	r := newTestRunner(t, newFileCache(t))
	spec := generated(t, r)

	// Scramble positions; layout must restore them.
	moved := spec.Clone()
	for i := range moved.Rooms {
		moved.Rooms[i].Position = blueprint.Position{}
	}

	ctx := context.Background()
	first, hit, err := r.LayoutWithCacheInfo(ctx, moved, Options{})
	if err != nil || hit {
		t.Fatalf("first layout: hit=%v err=%v", hit, err)
	}
	second, hit, err := r.LayoutWithCacheInfo(ctx, moved, Options{})
	if err != nil || !hit {
		t.Fatalf("second layout: hit=%v err=%v", hit, err)
	}
	if first.Spec.Rooms[0].Position != spec.Rooms[0].Position || second.Spec.Rooms[0].Position != spec.Rooms[0].Position {
		t.Errorf("positions differ: %+v / %+v", first.Spec.Rooms[0].Position, second.Spec.Rooms[0].Position)
	}
	if moved.Rooms[0].Position != (blueprint.Position{}) {
		t.Error("LayoutWithCacheInfo modified its input")
	}

	// A different minimums table is a different cache entry.
	if _, hit, _ := r.LayoutWithCacheInfo(ctx, moved, Options{Minimums: MinimumsCountry}); hit {
		t.Error("country minimums should not share the flat entry")
	}
}

func TestRunnerLayoutRejectsBadSpec(t *testing.T) {
	r := newTestRunner(t, nil)
	spec := &blueprint.Spec{BuildingType: "house", Country: "US", Unit: blueprint.Meters}
	if _, _, err := r.Layout(context.Background(), spec, Options{}); err == nil {
		t.Error("unit mismatch should fail")
	}
}

func TestRunnerRenderCache(t *testing.T) {
	r := newTestRunner(t, newFileCache(t))
	spec := generated(t, r)
	ctx := context.Background()

	first, hit, err := r.RenderWithCacheInfo(ctx, spec, Options{Formats: []string{"json"}})
	if err != nil || hit {
		t.Fatalf("first render: hit=%v err=%v", hit, err)
	}

	// json is cached, svg is not: only svg renders.
	both, hit, err := r.RenderWithCacheInfo(ctx, spec, Options{Formats: []string{"json", "svg"}})
	if err != nil || hit {
		t.Fatalf("mixed render: hit=%v err=%v", hit, err)
	}
	if !bytes.Equal(both["json"], first["json"]) || len(both["svg"]) == 0 {
		t.Error("mixed render returned wrong artifacts")
	}

	_, hit, err = r.RenderWithCacheInfo(ctx, spec, Options{Formats: []string{"svg", "json"}})
	if err != nil || !hit {
		t.Errorf("third render: hit=%v err=%v", hit, err)
	}

	// Another view is another artifact.
	if _, hit, _ := r.RenderWithCacheInfo(ctx, spec, Options{Formats: []string{"json"}, Scale: 1.2}); hit {
		t.Error("scale should be part of the artifact key")
	}
}

func TestRender(t *testing.T) {
	r := newTestRunner(t, nil)
	spec := generated(t, r)

	opts := Options{Formats: []string{"png", "pdf", "svg", "drawing", "json", "yaml"}}
	opts.SetRenderDefaults()
	artifacts, err := Render(context.Background(), spec, opts)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	checks := map[string]func([]byte) bool{
		"png":     func(b []byte) bool { return bytes.HasPrefix(b, []byte("\x89PNG")) },
		"pdf":     func(b []byte) bool { return bytes.HasPrefix(b, []byte("%PDF-")) },
		"svg":     func(b []byte) bool { return bytes.Contains(b, []byte(`<svg width="800" height="600"`)) },
		"drawing": func(b []byte) bool { return bytes.Contains(b, []byte("HOUSE PLAN - US")) },
		"json":    func(b []byte) bool { return bytes.Contains(b, []byte(`"buildingType": "house"`)) },
		"yaml":    func(b []byte) bool { return bytes.Contains(b, []byte("buildingType: house")) },
	}
	for format, ok := range checks {
		if !ok(artifacts[format]) {
			t.Errorf("%s artifact malformed: %.80q", format, artifacts[format])
		}
	}

	var back blueprint.Spec
	if err := json.Unmarshal(artifacts["json"], &back); err != nil || back.ID != spec.ID {
		t.Errorf("json artifact round trip: %v", err)
	}
}

func TestRenderErrors(t *testing.T) {
	if _, err := Render(context.Background(), nil, Options{}); err == nil {
		t.Error("nil spec should fail")
	}
	spec := &blueprint.Spec{BuildingType: "house", Country: "US", Unit: blueprint.Feet}
	if _, err := Render(context.Background(), spec, Options{Formats: []string{"gif"}}); err == nil {
		t.Error("unsupported format should fail")
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Render(ctx, spec, Options{Formats: []string{"json"}}); !errors.Is(err, context.Canceled) {
		t.Errorf("canceled render error = %v", err)
	}
}

func TestExecute(t *testing.T) {
	r := newTestRunner(t, newFileCache(t))
	ctx := context.Background()

	res, err := r.Execute(ctx, Options{BuildingType: "office", Country: "DE", Formats: []string{"json"}})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Spec.Unit != blueprint.Meters || res.Stats.RoomCount != len(res.Spec.Rooms) || res.SpecHash == "" {
		t.Errorf("result = %+v", res.Stats)
	}
	if len(res.Artifacts["json"]) == 0 {
		t.Error("missing json artifact")
	}

	// Rendering the same spec again hits the artifact cache.
	again, err := r.Execute(ctx, Options{Spec: res.Spec, Formats: []string{"json"}})
	if err != nil {
		t.Fatalf("Execute(spec): %v", err)
	}
	if !again.CacheInfo.RenderHit || again.SpecHash != res.SpecHash {
		t.Errorf("cache info = %+v, hash %q vs %q", again.CacheInfo, again.SpecHash, res.SpecHash)
	}
}

func TestExecuteKeepsPositionsWithoutRelayout(t *testing.T) {
	r := newTestRunner(t, nil)
	spec := generated(t, r)
	spec.Rooms[0].Position = blueprint.Position{X: 300, Y: 300}

	kept, err := r.Execute(context.Background(), Options{Spec: spec, Formats: []string{"json"}})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if kept.Spec.Rooms[0].Position.X != 300 {
		t.Error("Execute without Relayout moved a room")
	}

	relaid, err := r.Execute(context.Background(), Options{Spec: spec, Relayout: true, Formats: []string{"json"}})
	if err != nil {
		t.Fatalf("Execute(relayout): %v", err)
	}
	if relaid.Spec.Rooms[0].Position.X != 10 {
		t.Errorf("Relayout kept position %+v", relaid.Spec.Rooms[0].Position)
	}
}

type countingHooks struct {
	observability.NoopPipelineHooks
	mu     sync.Mutex
	events []string
}

func (h *countingHooks) record(e string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, e)
}

func (h *countingHooks) OnGenerateStart(context.Context, string, string) { h.record("generate") }
func (h *countingHooks) OnLayoutStart(context.Context, string, int)      { h.record("layout") }
func (h *countingHooks) OnRenderStart(context.Context, []string)         { h.record("render") }

func TestExecuteEmitsHooks(t *testing.T) {
	hooks := &countingHooks{}
	observability.SetPipelineHooks(hooks)
	t.Cleanup(observability.Reset)

	r := newTestRunner(t, nil)
	if _, err := r.Execute(context.Background(), Options{Formats: []string{"yaml"}}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got := strings.Join(hooks.events, ","); got != "generate,layout,render" {
		t.Errorf("events = %s", got)
	}
}
