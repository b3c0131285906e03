package layout

import (
	"math"
	"slices"
	"sync"

	"github.com/matzehuels/planforge/pkg/blueprint"
)

const (
	// Gap is the gutter kept between neighbouring rooms.
	Gap = 5.0

	// WrapWidth is the running x coordinate past which row packing wraps.
	WrapWidth = 80.0

	// Origin is where row packing starts.
	Origin = 10.0
)

// Size overrides the dimensions of a placed room.
type Size struct {
	Width float64
	Depth float64
}

// Directive places the room at Index of the priority-sorted room list.
type Directive struct {
	Index    int
	Position blueprint.Position
	Size     *Size
}

// Placer decides where rooms go for one building type. Place receives the
// rooms in priority order and must not modify them. Rooms it returns no
// directive for are packed by the engine.
type Placer interface {
	Place(rooms []blueprint.Room) []Directive
}

// PlacerFunc adapts a function to the Placer interface.
type PlacerFunc func(rooms []blueprint.Room) []Directive

// Place calls f(rooms).
func (f PlacerFunc) Place(rooms []blueprint.Room) []Directive { return f(rooms) }

// Registry maps building types to placers. It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	placers  map[blueprint.BuildingType]Placer
	fallback Placer
}

// NewRegistry returns an empty registry whose fallback is [Generic].
func NewRegistry() *Registry {
	return &Registry{
		placers:  make(map[blueprint.BuildingType]Placer),
		fallback: PlacerFunc(Generic),
	}
}

// DefaultRegistry returns a registry with the four built-in archetypes.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(blueprint.BuildingHouse, PlacerFunc(House))
	r.Register(blueprint.BuildingOffice, PlacerFunc(Office))
	r.Register(blueprint.BuildingShop, PlacerFunc(Shop))
	r.Register(blueprint.BuildingRestaurant, PlacerFunc(Restaurant))
	return r
}

// Register installs p for building type bt, replacing any previous placer.
func (r *Registry) Register(bt blueprint.BuildingType, p Placer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.placers[bt] = p
}

// SetFallback replaces the placer used for unregistered building types.
func (r *Registry) SetFallback(p Placer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p != nil {
		r.fallback = p
	}
}

// Lookup returns the placer for bt, or the fallback.
func (r *Registry) Lookup(bt blueprint.BuildingType) Placer {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if p, ok := r.placers[bt]; ok {
		return p
	}
	return r.fallback
}

// Registered reports whether bt has its own placer.
func (r *Registry) Registered(bt blueprint.BuildingType) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.placers[bt]
	return ok
}

// Types returns the building types with their own placer, sorted.
func (r *Registry) Types() []blueprint.BuildingType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]blueprint.BuildingType, 0, len(r.placers))
	for bt := range r.placers {
		out = append(out, bt)
	}
	slices.Sort(out)
	return out
}

// Generic packs every room left to right in rows starting at (Origin, Origin).
func Generic(rooms []blueprint.Room) []Directive {
	idx := make([]int, len(rooms))
	for i := range rooms {
		idx[i] = i
	}
	return pack(rooms, idx, Origin, Origin)
}

// pack places rooms[idx...] in rows from (x0, y0). After each room x advances
// by its width plus Gap; once x passes WrapWidth the next row starts below
// the tallest room of the current one.
func pack(rooms []blueprint.Room, idx []int, x0, y0 float64) []Directive {
	dirs := make([]Directive, 0, len(idx))
	x, y, rowDepth := x0, y0, 0.0
	for _, i := range idx {
		r := rooms[i]
		dirs = append(dirs, Directive{Index: i, Position: blueprint.Position{X: x, Y: y}})
		x += r.Width + Gap
		rowDepth = math.Max(rowDepth, r.Depth)
		if x > WrapWidth {
			x = x0
			y += rowDepth + Gap
			rowDepth = 0
		}
	}
	return dirs
}

// ofType returns the indexes of rooms with type t, in order.
func ofType(rooms []blueprint.Room, t blueprint.RoomType) []int {
	var idx []int
	for i, r := range rooms {
		if r.Type == t {
			idx = append(idx, i)
		}
	}
	return idx
}

// firstOf returns the index of the first room with type t.
func firstOf(rooms []blueprint.Room, t blueprint.RoomType) (int, bool) {
	for i, r := range rooms {
		if r.Type == t {
			return i, true
		}
	}
	return -1, false
}

// column stacks rooms[idx...] vertically at x from y, returning the
// directives, the column's right edge and the bottom of its last room.
func column(rooms []blueprint.Room, idx []int, x, y float64) ([]Directive, float64, float64) {
	dirs := make([]Directive, 0, len(idx))
	right, bottom := x, y-Gap
	for _, i := range idx {
		r := rooms[i]
		dirs = append(dirs, Directive{Index: i, Position: blueprint.Position{X: x, Y: y}})
		right = math.Max(right, x+r.Width)
		bottom = y + r.Depth
		y += r.Depth + Gap
	}
	return dirs, right, bottom
}
