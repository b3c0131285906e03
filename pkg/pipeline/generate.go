package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/planforge/pkg/blueprint"
	"github.com/matzehuels/planforge/pkg/generate"
)

// =============================================================================
// Generation
// =============================================================================

// Generate asks src for an unplaced spec. The options must have passed
// ValidateForGenerate.
func Generate(ctx context.Context, src generate.Source, opts Options) (*blueprint.Spec, error) {
	spec, err := src.Generate(ctx, blueprint.BuildingType(opts.BuildingType), opts.Country)
	if err != nil {
		return nil, fmt.Errorf("generate %s for %s: %w", opts.BuildingType, opts.Country, err)
	}
	return spec, nil
}
