package layout

import (
	"fmt"
	"reflect"
	"sort"
	"testing"

	"github.com/matzehuels/planforge/pkg/blueprint"
	"github.com/matzehuels/planforge/pkg/standards"
)

// defaultSpec builds a feet-based spec from the catalogue defaults of bt.
func defaultSpec(t *testing.T, bt blueprint.BuildingType) *blueprint.Spec {
	t.Helper()
	b, ok := standards.LookupBuilding(bt)
	if !ok {
		t.Fatalf("no catalogue entry for %q", bt)
	}
	rooms := make([]blueprint.Room, len(b.Rooms))
	for i, d := range b.Rooms {
		rooms[i] = blueprint.NewRoom(fmt.Sprintf("room-%d", i), d.Type.Title(), d.Type, d.Size.Width, d.Size.Depth)
	}
	return &blueprint.Spec{BuildingType: bt, Country: "US", Unit: blueprint.Feet, Rooms: rooms}
}

func ids(rooms []blueprint.Room) []string {
	out := make([]string, len(rooms))
	for i, r := range rooms {
		out[i] = r.ID
	}
	sort.Strings(out)
	return out
}

func TestGenerateDeterministic(t *testing.T) {
	e := New()
	for _, bt := range blueprint.BuildingTypes {
		t.Run(string(bt), func(t *testing.T) {
			spec := defaultSpec(t, bt)
			first := e.Generate(spec)
			for i := 0; i < 5; i++ {
				if got := e.Generate(spec); !reflect.DeepEqual(got, first) {
					t.Fatalf("run %d differs from first run", i+1)
				}
			}
		})
	}
}

func TestGeneratePreservesRooms(t *testing.T) {
	extra := []blueprint.RoomType{blueprint.Kitchen, blueprint.Bedroom, blueprint.Bedroom, blueprint.Dining, blueprint.Meeting, "garage"}

	types := append(append([]blueprint.BuildingType{}, blueprint.BuildingTypes...), "warehouse")
	for _, bt := range types {
		t.Run(string(bt), func(t *testing.T) {
			spec := defaultSpec(t, blueprint.BuildingHouse)
			spec.BuildingType = bt
			for i, rt := range extra {
				spec.Rooms = append(spec.Rooms, blueprint.NewRoom(fmt.Sprintf("extra-%d", i), "Extra", rt, 10, 12))
			}

			got := New().Generate(spec)
			if len(got) != len(spec.Rooms) {
				t.Fatalf("got %d rooms, want %d", len(got), len(spec.Rooms))
			}
			if !reflect.DeepEqual(ids(got), ids(spec.Rooms)) {
				t.Errorf("room ids changed: got %v, want %v", ids(got), ids(spec.Rooms))
			}
		})
	}
}

func TestGenerateEmpty(t *testing.T) {
	got := New().Generate(&blueprint.Spec{BuildingType: blueprint.BuildingHouse})
	if got == nil || len(got) != 0 {
		t.Errorf("Generate(empty) = %v, want empty non-nil slice", got)
	}
	if got := New().Generate(nil); len(got) != 0 {
		t.Errorf("Generate(nil) = %v, want empty", got)
	}
}

func TestGenerateDoesNotModifyInput(t *testing.T) {
	spec := defaultSpec(t, blueprint.BuildingHouse)
	before := spec.Clone()

	out := New().Generate(spec)
	out[0].Doors[0].Width = 42

	if !reflect.DeepEqual(spec, before) {
		t.Error("Generate modified its input spec")
	}
}

func TestGenerateAreaConsistency(t *testing.T) {
	e := New()
	for _, bt := range blueprint.BuildingTypes {
		spec := defaultSpec(t, bt)
		spec.Rooms[0].Area = 1 // stale on input
		for _, r := range e.Generate(spec) {
			if want := blueprint.Round(r.Width * r.Depth); r.Area != want {
				t.Errorf("%s/%s: area %v, want %v", bt, r.Type, r.Area, want)
			}
		}
	}
}

func TestGeneratePriorityOrder(t *testing.T) {
	spec := &blueprint.Spec{
		BuildingType: blueprint.BuildingHouse,
		Rooms: []blueprint.Room{
			blueprint.NewRoom("h", "Hall", blueprint.Hallway, 4, 20),
			blueprint.NewRoom("b1", "Bed 1", blueprint.Bedroom, 14, 16),
			blueprint.NewRoom("l", "Living", blueprint.Living, 16, 20),
			blueprint.NewRoom("b2", "Bed 2", blueprint.Bedroom, 14, 16),
		},
	}
	var got []string
	for _, r := range New().Generate(spec) {
		got = append(got, r.ID)
	}
	want := []string{"l", "b1", "b2", "h"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestDefaultLayoutsAreClean(t *testing.T) {
	e := New()
	for _, bt := range blueprint.BuildingTypes {
		t.Run(string(bt), func(t *testing.T) {
			spec := e.Apply(defaultSpec(t, bt))
			if warnings := e.Validate(spec); len(warnings) != 0 {
				t.Errorf("unexpected warnings: %v", warnings)
			}
		})
	}
}

func TestSizeOverrides(t *testing.T) {
	tests := []struct {
		bt    blueprint.BuildingType
		room  blueprint.RoomType
		width float64
		depth float64
	}{
		{blueprint.BuildingHouse, blueprint.Hallway, 5, 40},
		{blueprint.BuildingShop, blueprint.Storefront, 40, 30},
		{blueprint.BuildingRestaurant, blueprint.Dining, 50, 40},
	}

	for _, tt := range tests {
		t.Run(string(tt.room), func(t *testing.T) {
			for _, r := range New().Generate(defaultSpec(t, tt.bt)) {
				if r.Type != tt.room {
					continue
				}
				if r.Width != tt.width || r.Depth != tt.depth || r.Area != tt.width*tt.depth {
					t.Errorf("%s = %vx%v (%v), want %vx%v", r.Type, r.Width, r.Depth, r.Area, tt.width, tt.depth)
				}
				return
			}
			t.Fatalf("no %s in layout", tt.room)
		})
	}
}

func TestGenericFallbackWraps(t *testing.T) {
	spec := &blueprint.Spec{BuildingType: "warehouse"}
	for i := 0; i < 4; i++ {
		spec.Rooms = append(spec.Rooms, blueprint.NewRoom(fmt.Sprintf("s%d", i), "Bay", blueprint.Storage, 30, 20))
	}

	want := []blueprint.Position{{X: 10, Y: 10}, {X: 45, Y: 10}, {X: 80, Y: 10}, {X: 10, Y: 35}}
	for i, r := range New().Generate(spec) {
		if r.Position != want[i] {
			t.Errorf("room %d at %+v, want %+v", i, r.Position, want[i])
		}
	}
}

func TestSkippedRoomsPackedBelow(t *testing.T) {
	spec := defaultSpec(t, blueprint.BuildingHouse)
	spec.Rooms = append(spec.Rooms, blueprint.NewRoom("k2", "Kitchenette", blueprint.Kitchen, 8, 8))

	out := New().Generate(spec)
	for _, r := range out {
		if r.ID == "k2" {
			// the hallway is the deepest placed room: y 20 + 40
			if r.Position != (blueprint.Position{X: 10, Y: 65}) {
				t.Errorf("skipped room at %+v, want (10,65)", r.Position)
			}
			return
		}
	}
	t.Fatal("skipped room missing from output")
}

func TestOpeningsAttached(t *testing.T) {
	for _, r := range New().Generate(defaultSpec(t, blueprint.BuildingHouse)) {
		switch r.Type {
		case blueprint.Living:
			if len(r.Doors) != 1 || r.Doors[0].Wall != blueprint.South || len(r.Windows) != 2 {
				t.Errorf("living openings: doors %+v windows %+v", r.Doors, r.Windows)
			}
		case blueprint.Bathroom:
			if len(r.Doors) != 1 || r.Doors[0].Wall != blueprint.West || r.Doors[0].Width != 2.5 {
				t.Errorf("bathroom door: %+v", r.Doors)
			}
		case blueprint.Hallway:
			if len(r.Doors) != 0 || len(r.Windows) != 0 {
				t.Errorf("hallway should have no openings")
			}
		}
	}
}

func TestRegistryRegister(t *testing.T) {
	reg := DefaultRegistry()
	reg.Register("kiosk", PlacerFunc(func(rooms []blueprint.Room) []Directive {
		return []Directive{{Index: 0, Position: blueprint.Position{X: 1, Y: 2}, Size: &Size{Width: 6, Depth: 6}}}
	}))

	spec := &blueprint.Spec{
		BuildingType: "kiosk",
		Rooms:        []blueprint.Room{blueprint.NewRoom("a", "Booth", blueprint.Storefront, 3, 3)},
	}
	got := New(WithRegistry(reg)).Generate(spec)
	if got[0].Position != (blueprint.Position{X: 1, Y: 2}) || got[0].Area != 36 {
		t.Errorf("custom placer not used: %+v", got[0])
	}
	if !reg.Registered("kiosk") || reg.Registered("hangar") {
		t.Error("Registered reports wrong membership")
	}
	if types := reg.Types(); len(types) != 5 || types[1] != "kiosk" {
		t.Errorf("Types() = %v", types)
	}
}

func TestRegistryIgnoresBadDirectives(t *testing.T) {
	reg := NewRegistry()
	reg.Register("odd", PlacerFunc(func(rooms []blueprint.Room) []Directive {
		return []Directive{
			{Index: 7},
			{Index: -1},
			{Index: 0, Position: blueprint.Position{X: 3, Y: 3}},
			{Index: 0, Position: blueprint.Position{X: 99, Y: 99}},
		}
	}))
	spec := &blueprint.Spec{
		BuildingType: "odd",
		Rooms: []blueprint.Room{
			blueprint.NewRoom("a", "A", blueprint.Office, 10, 10),
			blueprint.NewRoom("b", "B", blueprint.Office, 10, 10),
		},
	}
	got := New(WithRegistry(reg)).Generate(spec)
	if len(got) != 2 {
		t.Fatalf("got %d rooms", len(got))
	}
	if got[0].Position != (blueprint.Position{X: 3, Y: 3}) {
		t.Errorf("first directive should win: %+v", got[0].Position)
	}
	if got[1].Position != (blueprint.Position{X: 10, Y: 18}) {
		t.Errorf("unplaced room at %+v, want (10,18)", got[1].Position)
	}
}

func TestApplyTotalArea(t *testing.T) {
	spec := defaultSpec(t, blueprint.BuildingHouse)
	out := New().Apply(spec)

	var sum float64
	for _, r := range out.Rooms {
		sum += r.Area
	}
	if out.TotalArea != blueprint.Round(sum) {
		t.Errorf("TotalArea = %v, want %v", out.TotalArea, blueprint.Round(sum))
	}
	if TotalArea(out.Rooms) != out.TotalArea {
		t.Error("TotalArea helper disagrees with Apply")
	}
	if out.Dimensions.Width == 0 || out.Dimensions.Depth == 0 {
		t.Errorf("envelope not computed: %+v", out.Dimensions)
	}
}
