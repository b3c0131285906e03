package blueprint

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
)

// Dimensions is the derived footprint of a building.
type Dimensions struct {
	Width float64 `json:"width" yaml:"width"`
	Depth float64 `json:"depth" yaml:"depth"`
}

// Spec is a complete building description and the unit of exchange between
// generation, layout, rendering and export. A Spec owns its rooms; use
// [Spec.Clone] before handing a spec to code that may modify it.
type Spec struct {
	ID           string       `json:"id,omitempty" yaml:"id,omitempty"`
	BuildingType BuildingType `json:"buildingType" yaml:"buildingType"`
	Country      string       `json:"country" yaml:"country"`
	TotalArea    float64      `json:"totalArea" yaml:"totalArea"`
	Dimensions   Dimensions   `json:"dimensions" yaml:"dimensions"`
	Rooms        []Room       `json:"rooms" yaml:"rooms"`
	Layout       LayoutStyle  `json:"layout" yaml:"layout"`
	Unit         Unit         `json:"unit" yaml:"unit"`
	CreatedAt    time.Time    `json:"createdAt" yaml:"createdAt"`
}

// Clone returns a deep copy of s. A nil spec clones to nil.
func (s *Spec) Clone() *Spec {
	if s == nil {
		return nil
	}
	out := *s
	out.Rooms = CloneRooms(s.Rooms)
	return &out
}

// Room returns a pointer to the room with the given id, or nil.
func (s *Spec) Room(id string) *Room {
	for i := range s.Rooms {
		if s.Rooms[i].ID == id {
			return &s.Rooms[i]
		}
	}
	return nil
}

// CheckUnit returns an error if the spec's unit disagrees with its country.
func (s *Spec) CheckUnit() error {
	if want := UnitForCountry(s.Country); s.Unit != want {
		return fmt.Errorf("unit %q does not match country %s (want %q)", s.Unit, s.Country, want)
	}
	return nil
}

// TotalArea sums room areas and rounds the result to one decimal.
func TotalArea(rooms []Room) float64 {
	areas := make([]float64, len(rooms))
	for i, r := range rooms {
		areas[i] = r.Area
	}
	return Round(floats.Sum(areas))
}

// Envelope returns the bounding box of the given rooms measured from the
// top-left-most room corner. Empty input yields zero dimensions.
func Envelope(rooms []Room) Dimensions {
	if len(rooms) == 0 {
		return Dimensions{}
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, r := range rooms {
		minX = math.Min(minX, r.Position.X)
		minY = math.Min(minY, r.Position.Y)
		maxX = math.Max(maxX, r.Right())
		maxY = math.Max(maxY, r.Bottom())
	}
	return Dimensions{Width: Round(maxX - minX), Depth: Round(maxY - minY)}
}

// Finalize returns a copy of s that owns a copy of rooms. Every room area,
// the total area and the envelope are recomputed, so no derived field can
// disagree with the room dimensions.
func Finalize(s *Spec, rooms []Room) *Spec {
	out := &Spec{}
	if s != nil {
		*out = *s
	}
	out.Rooms = make([]Room, len(rooms))
	for i, r := range rooms {
		out.Rooms[i] = r.Recomputed()
	}
	out.TotalArea = TotalArea(out.Rooms)
	out.Dimensions = Envelope(out.Rooms)
	return out
}
