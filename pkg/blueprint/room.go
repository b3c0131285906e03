package blueprint

import "math"

// MinSide is the smallest width or depth a resize may produce.
const MinSide = 5.0

// Position is a point in the spec's logical unit, not pixels.
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Opening is a door or window cut into one wall of a room.
type Opening struct {
	Wall Wall `json:"wall" yaml:"wall"`
	// Position is the fractional offset of the opening's center along the wall, in [0,1].
	Position float64 `json:"position" yaml:"position"`
	Width    float64 `json:"width" yaml:"width"`
}

// Room is a rectangular room of a floor plan.
//
// Width runs along the x axis and Depth along the y axis. Area is derived:
// construct rooms with [NewRoom] and change their size with [Room.Resize] or
// [Room.Adjust] so that it never drifts from Width*Depth.
type Room struct {
	ID       string    `json:"id" yaml:"id"`
	Name     string    `json:"name" yaml:"name"`
	Type     RoomType  `json:"type" yaml:"type"`
	Width    float64   `json:"width" yaml:"width"`
	Depth    float64   `json:"depth" yaml:"depth"`
	Area     float64   `json:"area" yaml:"area"`
	Position Position  `json:"position" yaml:"position"`
	Color    string    `json:"color,omitempty" yaml:"color,omitempty"`
	Doors    []Opening `json:"doors,omitempty" yaml:"doors,omitempty"`
	Windows  []Opening `json:"windows,omitempty" yaml:"windows,omitempty"`
}

// NewRoom returns a room with its area derived from width and depth.
func NewRoom(id, name string, t RoomType, width, depth float64) Room {
	return Room{
		ID:    id,
		Name:  name,
		Type:  t,
		Width: width,
		Depth: depth,
		Area:  Round(width * depth),
	}
}

// Resize returns a copy of r with the given dimensions and a recomputed area.
func (r Room) Resize(width, depth float64) Room {
	out := r.Clone()
	out.Width = width
	out.Depth = depth
	out.Area = Round(width * depth)
	return out
}

// Adjust returns a copy of r grown by dw and dd. A side with a non-zero
// delta is clamped to [MinSide] and rounded to one decimal; the other side
// is kept as is.
func (r Room) Adjust(dw, dd float64) Room {
	return r.Resize(adjustSide(r.Width, dw), adjustSide(r.Depth, dd))
}

func adjustSide(v, delta float64) float64 {
	if delta == 0 {
		return v
	}
	return Round(math.Max(MinSide, v+delta))
}

// Recomputed returns a copy of r whose area matches its current footprint.
func (r Room) Recomputed() Room {
	return r.Resize(r.Width, r.Depth)
}

// Right returns the x coordinate of the east wall.
func (r Room) Right() float64 { return r.Position.X + r.Width }

// Bottom returns the y coordinate of the south wall.
func (r Room) Bottom() float64 { return r.Position.Y + r.Depth }

// Overlaps reports whether the footprints of r and o intersect. Rectangles
// are half-open, so rooms that only share an edge do not overlap.
func (r Room) Overlaps(o Room) bool {
	return !(r.Right() <= o.Position.X ||
		r.Position.X >= o.Right() ||
		r.Bottom() <= o.Position.Y ||
		r.Position.Y >= o.Bottom())
}

// Clone returns a deep copy of r.
func (r Room) Clone() Room {
	out := r
	if r.Doors != nil {
		out.Doors = append([]Opening(nil), r.Doors...)
	}
	if r.Windows != nil {
		out.Windows = append([]Opening(nil), r.Windows...)
	}
	return out
}

// CloneRooms deep-copies a room slice. A nil slice yields an empty one.
func CloneRooms(rooms []Room) []Room {
	out := make([]Room, len(rooms))
	for i, r := range rooms {
		out[i] = r.Clone()
	}
	return out
}
