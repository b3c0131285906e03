package layout

import (
	"fmt"
	"strconv"

	"github.com/matzehuels/planforge/pkg/blueprint"
	"github.com/matzehuels/planforge/pkg/standards"
)

// Minimums is a per-room-type area floor with a fallback for unlisted types.
type Minimums struct {
	table    map[blueprint.RoomType]float64
	fallback float64
}

// NewMinimums builds a Minimums from a table and a fallback value.
func NewMinimums(table map[blueprint.RoomType]float64, fallback float64) Minimums {
	t := make(map[blueprint.RoomType]float64, len(table))
	for k, v := range table {
		t[k] = v
	}
	return Minimums{table: t, fallback: fallback}
}

// FlatMinimums returns the country-independent validation table.
func FlatMinimums() Minimums {
	return NewMinimums(standards.ValidationMinimums(), standards.FallbackMinimum)
}

// CountryMinimums returns the generation-time table of a country as a
// Minimums, for callers that want to validate against the country policy.
func CountryMinimums(country string) Minimums {
	return NewMinimums(standards.Lookup(country).MinRoomSizes, standards.FallbackMinimum)
}

// For returns the minimum area of room type t.
func (m Minimums) For(t blueprint.RoomType) float64 {
	if v, ok := m.table[t]; ok {
		return v
	}
	return m.fallback
}

// FindingKind classifies a validation finding.
type FindingKind string

const (
	BelowMinimum FindingKind = "below_minimum"
	Overlap      FindingKind = "overlap"
)

// Finding is one advisory validation result.
type Finding struct {
	Kind    FindingKind `json:"kind"`
	Rooms   []string    `json:"rooms"`
	Message string      `json:"message"`
}

// Findings checks every room against its minimum area and every unordered
// pair of rooms for overlap.
func (e *Engine) Findings(spec *blueprint.Spec) []Finding {
	if spec == nil {
		return nil
	}
	unit := spec.Unit
	if unit == "" {
		unit = blueprint.UnitForCountry(spec.Country)
	}

	var out []Finding
	for _, r := range spec.Rooms {
		if floor := e.minimums.For(r.Type); r.Area < floor {
			out = append(out, Finding{
				Kind:  BelowMinimum,
				Rooms: []string{r.ID},
				Message: fmt.Sprintf("%s is below minimum size (%s < %s %s)",
					r.Name, num(r.Area), num(floor), unit.SquareName()),
			})
		}
	}
	for i := 0; i < len(spec.Rooms); i++ {
		for j := i + 1; j < len(spec.Rooms); j++ {
			a, b := spec.Rooms[i], spec.Rooms[j]
			if a.Overlaps(b) {
				out = append(out, Finding{
					Kind:    Overlap,
					Rooms:   []string{a.ID, b.ID},
					Message: fmt.Sprintf("%s overlaps with %s", a.Name, b.Name),
				})
			}
		}
	}
	return out
}

// Validate returns the messages of [Engine.Findings].
func (e *Engine) Validate(spec *blueprint.Spec) []string {
	findings := e.Findings(spec)
	out := make([]string, len(findings))
	for i, f := range findings {
		out[i] = f.Message
	}
	return out
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
