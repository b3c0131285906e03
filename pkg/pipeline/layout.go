package pipeline

import (
	"github.com/matzehuels/planforge/pkg/blueprint"
	"github.com/matzehuels/planforge/pkg/layout"
)

// =============================================================================
// Layout
// =============================================================================

// Laid is a finalized spec together with its validation warnings. It is
// the cached value of the layout stage.
type Laid struct {
	Spec     *blueprint.Spec `json:"spec"`
	Warnings []string        `json:"warnings"`
}

// Layout places the rooms of spec with e and validates the result. The
// input is not modified.
func Layout(e *layout.Engine, spec *blueprint.Spec, opts Options) Laid {
	out := e.Apply(spec)
	return Laid{Spec: out, Warnings: validator(e, out, opts).Validate(out)}
}

// Check validates spec as is, without moving rooms. Derived areas are
// still recomputed.
func Check(e *layout.Engine, spec *blueprint.Spec, opts Options) Laid {
	out := blueprint.Finalize(spec, spec.Rooms)
	return Laid{Spec: out, Warnings: validator(e, out, opts).Validate(out)}
}

// validator returns e, or an engine sharing e's registry that validates
// against the country table when the options ask for it.
func validator(e *layout.Engine, spec *blueprint.Spec, opts Options) *layout.Engine {
	if opts.Minimums != MinimumsCountry {
		return e
	}
	return layout.New(
		layout.WithRegistry(e.Registry()),
		layout.WithMinimums(layout.CountryMinimums(spec.Country)),
	)
}

// strategies lists the registered building types for cache keys.
func strategies(e *layout.Engine) []string {
	types := e.Registry().Types()
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = string(t)
	}
	return out
}
