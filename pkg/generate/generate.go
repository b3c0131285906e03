// Package generate produces initial building specs from the static
// per-country and per-building-type tables in package standards.
//
// A [Generator] stands in for a remote model: it waits for a configurable
// delay, which callers can cancel through the context, and then returns an
// unplaced spec. A [Coordinator] wraps a Generator so that starting a new
// request cancels the one still pending, making the latest request win.
package generate

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/planforge/pkg/blueprint"
	"github.com/matzehuels/planforge/pkg/standards"
)

// DefaultDelay is the simulated latency of a generation request.
const DefaultDelay = time.Second

// Source produces unplaced specs. Both [Generator] and [Coordinator]
// implement it.
type Source interface {
	Generate(ctx context.Context, bt blueprint.BuildingType, country string) (*blueprint.Spec, error)
}

// Generator builds specs from the standards tables.
type Generator struct {
	delay time.Duration
	now   func() time.Time
	newID func() string
}

// Option configures a Generator.
type Option func(*Generator)

// WithDelay sets the simulated latency. Zero disables it.
func WithDelay(d time.Duration) Option {
	return func(g *Generator) { g.delay = d }
}

// WithClock sets the time source used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// WithIDs sets the spec ID source.
func WithIDs(newID func() string) Option {
	return func(g *Generator) { g.newID = newID }
}

// New returns a Generator with a one second delay, the wall clock and
// random UUIDs unless overridden.
func New(opts ...Option) *Generator {
	g := &Generator{
		delay: DefaultDelay,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate waits for the configured delay and returns an unplaced spec for
// the building type and country. Building types missing from the catalogue
// use the house defaults. If ctx ends first, its cause is returned.
func (g *Generator) Generate(ctx context.Context, bt blueprint.BuildingType, country string) (*blueprint.Spec, error) {
	if g.delay > 0 {
		timer := time.NewTimer(g.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, context.Cause(ctx)
		case <-timer.C:
		}
	} else if err := context.Cause(ctx); err != nil {
		return nil, err
	}

	building, ok := standards.LookupBuilding(bt)
	if !ok {
		building, _ = standards.LookupBuilding(blueprint.BuildingHouse)
	}
	unit := blueprint.UnitForCountry(country)
	std := standards.Lookup(country)

	rooms := make([]blueprint.Room, len(building.Rooms))
	var sumWidth, maxDepth float64
	for i, d := range building.Rooms {
		w, dp := sized(d, std.Min(d.Type), unit)
		r := blueprint.NewRoom(fmt.Sprintf("room-%d", i), d.Type.Title(), d.Type, w, dp)
		r.Position = blueprint.Position{X: float64(i) * 25}
		r.Color = standards.Color(d.Type)
		rooms[i] = r
		sumWidth += w
		maxDepth = math.Max(maxDepth, dp)
	}

	return &blueprint.Spec{
		ID:           g.newID(),
		BuildingType: bt,
		Country:      country,
		TotalArea:    blueprint.TotalArea(rooms),
		Dimensions: blueprint.Dimensions{
			Width: blueprint.Round(sumWidth * 1.5),
			Depth: blueprint.Round(maxDepth * 1.5),
		},
		Rooms:     rooms,
		Layout:    building.Layout,
		Unit:      unit,
		CreatedAt: g.now().UTC(),
	}, nil
}

// sized scales a feet-based default footprint up to the country minimum,
// keeping its aspect ratio, and converts it to the target unit. Metric
// minimums are converted to square feet before comparing.
func sized(d standards.RoomDefault, minArea float64, unit blueprint.Unit) (float64, float64) {
	w, dp := d.Size.Width, d.Size.Depth
	if unit == blueprint.Meters {
		minArea /= blueprint.FeetToMeters * blueprint.FeetToMeters
	}
	if area := w * dp; minArea > 0 && area < minArea {
		k := math.Sqrt(minArea / area)
		w, dp = w*k, dp*k
	}
	if unit == blueprint.Meters {
		w, dp = w*blueprint.FeetToMeters, dp*blueprint.FeetToMeters
	}
	return w, dp
}
