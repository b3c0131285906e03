package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/planforge/pkg/blueprint"
	"github.com/matzehuels/planforge/pkg/cache"
	"github.com/matzehuels/planforge/pkg/generate"
	"github.com/matzehuels/planforge/pkg/observability"
	"github.com/matzehuels/planforge/pkg/pipeline"
)

var fixedTime = time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)

func testGenerator() *generate.Generator {
	return generate.New(
		generate.WithDelay(0),
		generate.WithClock(func() time.Time { return fixedTime }),
		generate.WithIDs(func() string { return "spec-1" }),
	)
}

func newTestServer(t *testing.T, src generate.Source) *Server {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	logger := log.NewWithOptions(io.Discard, log.Options{})
	r := pipeline.NewRunner(c, nil, logger)
	if src == nil {
		src = testGenerator()
	}
	r.Generator = src
	t.Cleanup(func() { r.Close() })
	return New(r, logger)
}

func do(t *testing.T, s *Server, method, target string, body []byte, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %s: %v", rec.Body.String(), err)
	}
	return v
}

func generateSpec(t *testing.T, s *Server) *blueprint.Spec {
	t.Helper()
	rec := do(t, s, http.MethodPost, "/api/v1/blueprints", []byte(`{"buildingType":"house","country":"US"}`), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("generate status = %d: %s", rec.Code, rec.Body)
	}
	return decode[specResponse](t, rec).Spec
}

func specBody(t *testing.T, spec *blueprint.Spec) []byte {
	t.Helper()
	data, err := blueprint.Marshal(spec)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	return data
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, nil)
	rec := do(t, s, http.MethodGet, "/healthz", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := decode[map[string]string](t, rec); got["status"] != "ok" || got["version"] == "" || got["commit"] == "" {
		t.Errorf("body = %v", got)
	}
}

func TestStandards(t *testing.T) {
	s := newTestServer(t, nil)

	rec := do(t, s, http.MethodGet, "/api/v1/standards", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	if got := decode[[]map[string]any](t, rec); len(got) != 8 {
		t.Errorf("countries = %d, want 8", len(got))
	}

	tests := []struct {
		country  string
		status   int
		fallback bool
		unit     blueprint.Unit
	}{
		{"us", http.StatusOK, false, blueprint.Feet},
		{"DE", http.StatusOK, false, blueprint.Meters},
		{"FR", http.StatusOK, true, blueprint.Meters},
		{"France", http.StatusBadRequest, false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.country, func(t *testing.T) {
			rec := do(t, s, http.MethodGet, "/api/v1/standards/"+tt.country, nil, nil)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.status, rec.Body)
			}
			if tt.status != http.StatusOK {
				if got := decode[errorResponse](t, rec); got.Code != "INVALID_COUNTRY" {
					t.Errorf("code = %q", got.Code)
				}
				return
			}
			got := decode[standardResponse](t, rec)
			if got.Fallback != tt.fallback || got.Unit != tt.unit {
				t.Errorf("got fallback=%v unit=%s", got.Fallback, got.Unit)
			}
			if len(got.Standard.MinRoomSizes) == 0 {
				t.Error("empty minimums")
			}
		})
	}
}

func TestBuildings(t *testing.T) {
	s := newTestServer(t, nil)
	rec := do(t, s, http.MethodGet, "/api/v1/buildings", nil, nil)
	got := decode[[]map[string]any](t, rec)
	if len(got) == 0 || got[0]["id"] == nil {
		t.Errorf("buildings = %v", got)
	}
}

func TestGenerate(t *testing.T) {
	s := newTestServer(t, nil)
	rec := do(t, s, http.MethodPost, "/api/v1/blueprints", []byte(`{"buildingType":"house","country":"us"}`), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	if rec.Header().Get(SessionHeader) == "" {
		t.Error("no session id assigned")
	}
	got := decode[specResponse](t, rec)
	if got.Spec.ID != "spec-1" || got.Spec.Country != "US" || len(got.Spec.Rooms) != 5 {
		t.Errorf("spec = %+v", got.Spec)
	}
	if got.Warnings == nil {
		t.Error("warnings should encode as a list")
	}
}

func TestGenerateErrors(t *testing.T) {
	s := newTestServer(t, nil)
	tests := []struct {
		name string
		body string
		code string
	}{
		{"bad json", `{`, "INVALID_INPUT"},
		{"unknown field", `{"floors":2}`, "INVALID_INPUT"},
		{"building type", `{"buildingType":"castle","country":"US"}`, "INVALID_BUILDING_TYPE"},
		{"country", `{"buildingType":"house","country":"USA"}`, "INVALID_COUNTRY"},
		{"minimums", `{"minimums":"strict"}`, "INVALID_INPUT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/api/v1/blueprints", []byte(tt.body), nil)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d: %s", rec.Code, rec.Body)
			}
			if got := decode[errorResponse](t, rec); got.Code != tt.code || got.Error == "" {
				t.Errorf("error = %+v, want code %s", got, tt.code)
			}
		})
	}
}

// blockingSource parks its first request until it is canceled.
type blockingSource struct {
	started chan struct{}
	once    sync.Once
	next    generate.Source
}

func (b *blockingSource) Generate(ctx context.Context, bt blueprint.BuildingType, country string) (*blueprint.Spec, error) {
	first := false
	b.once.Do(func() { first = true })
	if first {
		close(b.started)
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return b.next.Generate(ctx, bt, country)
}

func TestGenerateSuperseded(t *testing.T) {
	src := &blockingSource{started: make(chan struct{}), next: testGenerator()}
	s := newTestServer(t, src)
	header := http.Header{SessionHeader: {"tab-1"}}
	body := []byte(`{"buildingType":"house","country":"US"}`)

	first := make(chan *httptest.ResponseRecorder, 1)
	go func() { first <- do(t, s, http.MethodPost, "/api/v1/blueprints", body, header) }()
	<-src.started

	second := do(t, s, http.MethodPost, "/api/v1/blueprints", body, header)
	if second.Code != http.StatusOK {
		t.Fatalf("second status = %d: %s", second.Code, second.Body)
	}

	rec := <-first
	if rec.Code != http.StatusConflict {
		t.Fatalf("first status = %d, want 409: %s", rec.Code, rec.Body)
	}
	if got := decode[errorResponse](t, rec); got.Code != "CANCELED" {
		t.Errorf("code = %q", got.Code)
	}
	if n := s.sessions.len(); n != 1 {
		t.Errorf("sessions = %d, want 1", n)
	}
}

func TestSessionsEvictIdle(t *testing.T) {
	ss := newSessions(testGenerator(), 2)
	a := ss.get("a")
	ss.get("b")
	if ss.get("a") != a {
		t.Fatal("coordinator not reused")
	}
	ss.get("c")
	if n := ss.len(); n != 1 {
		t.Errorf("len = %d after eviction, want 1", n)
	}
}

// parkedSource blocks every request until its context ends.
type parkedSource struct{ started chan struct{} }

func (p parkedSource) Generate(ctx context.Context, bt blueprint.BuildingType, country string) (*blueprint.Spec, error) {
	p.started <- struct{}{}
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestSessionsEvictPendingWhenFull(t *testing.T) {
	src := parkedSource{started: make(chan struct{})}
	ss := newSessions(src, 2)

	errs := make(map[string]chan error)
	for _, id := range []string{"a", "b"} {
		c := ss.get(id)
		done := make(chan error, 1)
		errs[id] = done
		go func() {
			_, err := c.Generate(context.Background(), blueprint.BuildingHouse, "US")
			done <- err
		}()
		<-src.started
	}

	ss.get("b")
	ss.get("c")
	if n := ss.len(); n != 2 {
		t.Errorf("len = %d, want 2", n)
	}

	select {
	case err := <-errs["a"]:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("evicted request error = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("least recently used session was not canceled")
	}

	ss.get("b").Cancel()
	if err := <-errs["b"]; !errors.Is(err, context.Canceled) {
		t.Errorf("b error = %v", err)
	}
}

func TestLayoutAndValidate(t *testing.T) {
	s := newTestServer(t, nil)
	spec := generateSpec(t, s)

	// Stack every room at the origin; layout spreads them out again.
	for i := range spec.Rooms {
		spec.Rooms[i].Position = blueprint.Position{}
	}
	body := specBody(t, spec)

	rec := do(t, s, http.MethodPost, "/api/v1/validate", body, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("validate status = %d: %s", rec.Code, rec.Body)
	}
	if got := decode[specResponse](t, rec); len(got.Warnings) == 0 {
		t.Error("overlapping rooms produced no warnings")
	}

	rec = do(t, s, http.MethodPost, "/api/v1/layout", body, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("layout status = %d: %s", rec.Code, rec.Body)
	}
	got := decode[specResponse](t, rec)
	for i, a := range got.Spec.Rooms {
		for _, b := range got.Spec.Rooms[i+1:] {
			if a.Overlaps(b) {
				t.Errorf("%s overlaps %s after layout", a.ID, b.ID)
			}
		}
	}
}

func TestLayoutInvalidSpec(t *testing.T) {
	s := newTestServer(t, nil)
	tests := []struct {
		name string
		body string
	}{
		{"not json", `rooms`},
		{"unit", `{"country":"US","unit":"cubits","rooms":[]}`},
		{"room", `{"country":"US","unit":"feet","rooms":[{"id":"","width":1,"depth":1}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/api/v1/layout", []byte(tt.body), nil)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d: %s", rec.Code, rec.Body)
			}
			if got := decode[errorResponse](t, rec); got.Code != "INVALID_SPEC" {
				t.Errorf("code = %q", got.Code)
			}
		})
	}
}

func TestRender(t *testing.T) {
	s := newTestServer(t, nil)
	body := specBody(t, generateSpec(t, s))

	tests := []struct {
		format string
		prefix string
	}{
		{"png", "\x89PNG"},
		{"pdf", "%PDF"},
		{"svg", "<svg"},
		{"drawing", "<svg"},
		{"json", "{"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/api/v1/render?format="+tt.format+"&scale=1", body, nil)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d: %s", rec.Code, rec.Body)
			}
			if ct := rec.Header().Get("Content-Type"); ct != pipeline.ContentTypes[tt.format] {
				t.Errorf("content type = %q", ct)
			}
			if !strings.HasPrefix(rec.Body.String(), tt.prefix) {
				t.Errorf("body starts with %q", rec.Body.String()[:min(8, rec.Body.Len())])
			}
		})
	}

	rec := do(t, s, http.MethodPost, "/api/v1/render?format=png&scale=1", body, nil)
	if got := rec.Header().Get("X-Cache"); got != "HIT" {
		t.Errorf("X-Cache = %q on repeat, want HIT", got)
	}
}

func TestRenderErrors(t *testing.T) {
	s := newTestServer(t, nil)
	body := specBody(t, generateSpec(t, s))
	tests := []struct {
		query string
		code  string
	}{
		{"format=gif", "INVALID_FORMAT"},
		{"scale=10", "INVALID_SCALE"},
		{"x=left", "INVALID_INPUT"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/api/v1/render?"+tt.query, body, nil)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d: %s", rec.Code, rec.Body)
			}
			if got := decode[errorResponse](t, rec); got.Code != tt.code {
				t.Errorf("code = %q, want %s", got.Code, tt.code)
			}
		})
	}
}

func TestNotFound(t *testing.T) {
	s := newTestServer(t, nil)
	rec := do(t, s, http.MethodGet, "/api/v2/nothing", nil, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := decode[errorResponse](t, rec); got.Code != "NOT_FOUND" {
		t.Errorf("code = %q", got.Code)
	}
}

func TestMetrics(t *testing.T) {
	t.Cleanup(observability.Reset)
	s := newTestServer(t, nil)
	s.Metrics().Register()

	generateSpec(t, s)
	do(t, s, http.MethodGet, "/api/v1/standards/US", nil, nil)

	rec := do(t, s, http.MethodGet, "/metrics", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	out := rec.Body.String()
	for _, want := range []string{
		`planforge_http_requests_total{method="POST",route="/api/v1/blueprints",status="200"} 1`,
		`route="/api/v1/standards/{country}"`,
		`planforge_pipeline_stage_total{stage="generate",status="ok"} 1`,
		`planforge_pipeline_stage_total{stage="layout",status="ok"} 1`,
		`planforge_generated_rooms_total 5`,
		`planforge_http_requests_in_flight 0`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("metrics missing %s", want)
		}
	}
}
