package layout

import (
	"math"
	"sort"

	"github.com/matzehuels/planforge/pkg/blueprint"
	"github.com/matzehuels/planforge/pkg/standards"
)

// lastRank orders unknown room types after every ranked type.
const lastRank = math.MaxInt32

// Engine lays out and validates specs. Its tables are fixed at construction,
// so an Engine is safe for concurrent use.
type Engine struct {
	ranks    map[blueprint.RoomType]int
	minimums Minimums
	openings map[blueprint.RoomType]standards.OpeningSet
	registry *Registry
}

// Option configures an Engine.
type Option func(*Engine)

// WithRanks replaces the priority rank table.
func WithRanks(ranks map[blueprint.RoomType]int) Option {
	return func(e *Engine) { e.ranks = ranks }
}

// WithMinimums replaces the validation minimum table.
func WithMinimums(m Minimums) Option {
	return func(e *Engine) { e.minimums = m }
}

// WithOpenings replaces the door and window schedule.
func WithOpenings(o map[blueprint.RoomType]standards.OpeningSet) Option {
	return func(e *Engine) { e.openings = o }
}

// WithRegistry replaces the placement registry.
func WithRegistry(r *Registry) Option {
	return func(e *Engine) { e.registry = r }
}

// New returns an Engine using the standard tables unless overridden.
func New(opts ...Option) *Engine {
	e := &Engine{
		ranks:    standards.Ranks(),
		minimums: FlatMinimums(),
		openings: standards.Openings(),
		registry: DefaultRegistry(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Registry returns the engine's placement registry.
func (e *Engine) Registry() *Registry { return e.registry }

// Minimums returns the engine's validation minimums.
func (e *Engine) Minimums() Minimums { return e.minimums }

// Generate returns a fresh, fully placed copy of the spec's rooms in priority
// order. Every input room appears exactly once; spec is not modified.
func (e *Engine) Generate(spec *blueprint.Spec) []blueprint.Room {
	if spec == nil || len(spec.Rooms) == 0 {
		return []blueprint.Room{}
	}

	rooms := e.sortByPriority(spec.Rooms)
	placer := e.registry.Lookup(spec.BuildingType)

	placed := make([]bool, len(rooms))
	for _, d := range placer.Place(blueprint.CloneRooms(rooms)) {
		if d.Index < 0 || d.Index >= len(rooms) || placed[d.Index] {
			continue
		}
		r := rooms[d.Index]
		if d.Size != nil {
			r = r.Resize(d.Size.Width, d.Size.Depth)
		}
		r.Position = d.Position
		rooms[d.Index] = r
		placed[d.Index] = true
	}

	// Rooms the placer skipped go in rows below everything already placed.
	var rest []int
	bottom := Origin - Gap
	for i, ok := range placed {
		if ok {
			bottom = math.Max(bottom, rooms[i].Bottom())
		} else {
			rest = append(rest, i)
		}
	}
	for _, d := range pack(rooms, rest, Origin, bottom+Gap) {
		rooms[d.Index].Position = d.Position
	}

	for i := range rooms {
		rooms[i] = e.attachOpenings(rooms[i]).Recomputed()
	}
	return rooms
}

// Apply lays out a copy of spec and returns it finalized: rooms placed and
// total area and envelope recomputed.
func (e *Engine) Apply(spec *blueprint.Spec) *blueprint.Spec {
	return blueprint.Finalize(spec, e.Generate(spec))
}

// TotalArea sums the areas of rooms, rounded to one decimal.
func TotalArea(rooms []blueprint.Room) float64 {
	return blueprint.TotalArea(rooms)
}

func (e *Engine) rank(t blueprint.RoomType) int {
	if r, ok := e.ranks[t]; ok {
		return r
	}
	return lastRank
}

func (e *Engine) sortByPriority(in []blueprint.Room) []blueprint.Room {
	rooms := blueprint.CloneRooms(in)
	sort.SliceStable(rooms, func(i, j int) bool {
		return e.rank(rooms[i].Type) < e.rank(rooms[j].Type)
	})
	return rooms
}

func (e *Engine) attachOpenings(r blueprint.Room) blueprint.Room {
	set, ok := e.openings[r.Type]
	if !ok {
		r.Doors, r.Windows = nil, nil
		return r
	}
	r.Doors = append([]blueprint.Opening(nil), set.Doors...)
	r.Windows = append([]blueprint.Opening(nil), set.Windows...)
	return r
}
