package layout

import (
	"strings"
	"testing"

	"github.com/matzehuels/planforge/pkg/blueprint"
)

func placed(id string, t blueprint.RoomType, x, y, w, d float64) blueprint.Room {
	r := blueprint.NewRoom(id, strings.ToUpper(id[:1])+id[1:], t, w, d)
	r.Position = blueprint.Position{X: x, Y: y}
	return r
}

func TestValidateOverlap(t *testing.T) {
	tests := []struct {
		name  string
		rooms []blueprint.Room
		want  []string
	}{
		{
			name: "overlapping",
			rooms: []blueprint.Room{
				placed("alpha", blueprint.Workspace, 0, 0, 10, 10),
				placed("beta", blueprint.Workspace, 5, 5, 10, 10),
			},
			want: []string{"Alpha overlaps with Beta"},
		},
		{
			name: "edge touching",
			rooms: []blueprint.Room{
				placed("alpha", blueprint.Workspace, 0, 0, 10, 10),
				placed("beta", blueprint.Workspace, 10, 0, 10, 10),
			},
			want: nil,
		},
		{
			name: "three way",
			rooms: []blueprint.Room{
				placed("alpha", blueprint.Workspace, 0, 0, 10, 10),
				placed("beta", blueprint.Workspace, 2, 2, 10, 10),
				placed("gamma", blueprint.Workspace, 4, 4, 10, 10),
			},
			want: []string{"Alpha overlaps with Beta", "Alpha overlaps with Gamma", "Beta overlaps with Gamma"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New().Validate(&blueprint.Spec{Unit: blueprint.Feet, Rooms: tt.rooms})
			if len(got) != len(tt.want) {
				t.Fatalf("Validate() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("warning %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestValidateBelowMinimum(t *testing.T) {
	bath := blueprint.NewRoom("room-3", "Guest Bath", blueprint.Bathroom, 5, 6)
	spec := &blueprint.Spec{Country: "US", Unit: blueprint.Feet, Rooms: []blueprint.Room{bath}}

	got := New().Validate(spec)
	if len(got) != 1 {
		t.Fatalf("Validate() = %v, want exactly one warning", got)
	}
	for _, part := range []string{"Guest Bath", "30", "35"} {
		if !strings.Contains(got[0], part) {
			t.Errorf("warning %q missing %q", got[0], part)
		}
	}
	if want := "Guest Bath is below minimum size (30 < 35 sq feet)"; got[0] != want {
		t.Errorf("warning = %q, want %q", got[0], want)
	}
}

func TestValidateUnknownTypeFallback(t *testing.T) {
	spec := &blueprint.Spec{Country: "GB", Rooms: []blueprint.Room{placed("shed", "garage", 0, 0, 6, 10)}}

	got := New().Validate(spec)
	if len(got) != 1 || got[0] != "Shed is below minimum size (60 < 70 sq meters)" {
		t.Errorf("Validate() = %v", got)
	}
}

func TestFindings(t *testing.T) {
	spec := &blueprint.Spec{Unit: blueprint.Feet, Rooms: []blueprint.Room{
		placed("alpha", blueprint.Bathroom, 0, 0, 5, 5),
		placed("beta", blueprint.Workspace, 1, 1, 10, 10),
	}}

	got := New().Findings(spec)
	if len(got) != 2 {
		t.Fatalf("Findings() = %+v", got)
	}
	if got[0].Kind != BelowMinimum || got[0].Rooms[0] != "alpha" {
		t.Errorf("first finding = %+v", got[0])
	}
	if got[1].Kind != Overlap || len(got[1].Rooms) != 2 {
		t.Errorf("second finding = %+v", got[1])
	}
}

func TestCountryMinimums(t *testing.T) {
	bath := blueprint.NewRoom("b", "Bath", blueprint.Bathroom, 5, 8)
	spec := &blueprint.Spec{Country: "US", Unit: blueprint.Feet, Rooms: []blueprint.Room{bath}}

	if got := New().Validate(spec); len(got) != 0 {
		t.Errorf("flat table should accept 40 sq feet: %v", got)
	}
	got := New(WithMinimums(CountryMinimums("US"))).Validate(spec)
	if len(got) != 1 || !strings.Contains(got[0], "40 < 50") {
		t.Errorf("US table should reject 40 sq feet: %v", got)
	}
}

func TestMinimumsFor(t *testing.T) {
	m := NewMinimums(map[blueprint.RoomType]float64{blueprint.Living: 1}, 9)
	if m.For(blueprint.Living) != 1 || m.For(blueprint.Kitchen) != 9 {
		t.Errorf("For() = %v/%v", m.For(blueprint.Living), m.For(blueprint.Kitchen))
	}
}
