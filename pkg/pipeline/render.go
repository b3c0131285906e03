package pipeline

import (
	"bytes"
	"context"
	"fmt"

	"github.com/matzehuels/planforge/pkg/blueprint"
	"github.com/matzehuels/planforge/pkg/export"
	"github.com/matzehuels/planforge/pkg/render/adjacency"
	"github.com/matzehuels/planforge/pkg/render/plan"
	"github.com/matzehuels/planforge/pkg/render/surface"
)

// Render generates output artifacts in the requested formats. The raster
// is drawn once and shared by the png and pdf formats.
func Render(ctx context.Context, spec *blueprint.Spec, opts Options) (map[string][]byte, error) {
	if spec == nil {
		return nil, fmt.Errorf("render: nil spec")
	}
	view := opts.View()
	artifacts := make(map[string][]byte, len(opts.Formats))

	var drawn *surface.Raster
	raster := func() (*surface.Raster, error) {
		if drawn == nil {
			drawn = plan.Raster(spec, view)
		}
		return drawn, drawn.Err()
	}

	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var data []byte
		var err error

		switch format {
		case FormatPNG:
			var r *surface.Raster
			if r, err = raster(); err == nil {
				var buf bytes.Buffer
				err = r.EncodePNG(&buf)
				data = buf.Bytes()
			}
		case FormatPDF:
			var r *surface.Raster
			if r, err = raster(); err == nil {
				var buf bytes.Buffer
				err = export.Document(&buf, r, export.DocumentOptions{
					Title:     plan.Title(spec),
					CreatedAt: spec.CreatedAt,
				})
				data = buf.Bytes()
			}
		case FormatSVG:
			data = export.Vector(spec)
		case FormatDrawing:
			data = plan.Vector(spec, view).Bytes()
		case FormatJSON:
			data, err = export.Text(spec)
		case FormatYAML:
			data, err = export.YAML(spec)
		case FormatAdjacency:
			dot := adjacency.ToDOT(spec, adjacency.Options{Detailed: true})
			data, err = adjacency.RenderSVG(ctx, dot)
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}
