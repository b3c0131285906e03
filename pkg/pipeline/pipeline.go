// Package pipeline provides the core plan pipeline for planforge.
//
// This package implements the complete generate → layout → render pipeline
// used by the CLI and the HTTP API. By centralizing this logic, both entry
// points lay out, validate, cache and render specs the same way.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Generate: Produce an unplaced spec for a building type and country
//  2. Layout: Place rooms, attach openings, finalize areas and validate
//  3. Render: Produce artifacts (PNG, PDF, SVG, drawing, JSON, YAML, adjacency)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    BuildingType: "house",
//	    Country:      "US",
//	    Formats:      []string{"png", "pdf"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	png := result.Artifacts["png"]
//
// Run individual stages:
//
//	// Generate and lay out
//	spec, warnings, err := runner.Generate(ctx, opts)
//
//	// Re-run layout on an edited spec
//	spec, warnings, err = runner.Layout(ctx, spec, opts)
//
//	// Render an existing spec
//	artifacts, err := runner.Render(ctx, spec, opts)
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/planforge/pkg/blueprint"
	"github.com/matzehuels/planforge/pkg/cache"
	perrors "github.com/matzehuels/planforge/pkg/errors"
	"github.com/matzehuels/planforge/pkg/generate"
	"github.com/matzehuels/planforge/pkg/render/plan"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultBuildingType is used when no building type is given.
	DefaultBuildingType = blueprint.BuildingHouse

	// DefaultCountry is used when no country is given.
	DefaultCountry = "US"

	// MinimumsFlat validates against the country-independent table.
	MinimumsFlat = "flat"

	// MinimumsCountry validates against the spec country's own table.
	MinimumsCountry = "country"
)

// Format constants for output formats.
const (
	FormatPNG       = "png"
	FormatPDF       = "pdf"
	FormatSVG       = "svg"
	FormatDrawing   = "drawing"
	FormatJSON      = "json"
	FormatYAML      = "yaml"
	FormatAdjacency = "adjacency"
)

// Formats lists the supported output formats in documentation order.
var Formats = []string{
	FormatPNG,
	FormatPDF,
	FormatSVG,
	FormatDrawing,
	FormatJSON,
	FormatYAML,
	FormatAdjacency,
}

// ContentTypes maps each format to the media type of its bytes.
var ContentTypes = map[string]string{
	FormatPNG:       "image/png",
	FormatPDF:       "application/pdf",
	FormatSVG:       "image/svg+xml",
	FormatDrawing:   "image/svg+xml",
	FormatJSON:      "application/json",
	FormatYAML:      "application/yaml",
	FormatAdjacency: "image/svg+xml",
}

// Extensions maps each format to its file extension.
var Extensions = map[string]string{
	FormatPNG:       ".png",
	FormatPDF:       ".pdf",
	FormatSVG:       ".svg",
	FormatDrawing:   ".drawing.svg",
	FormatJSON:      ".json",
	FormatYAML:      ".yaml",
	FormatAdjacency: ".adjacency.svg",
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the plan pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Generate options
	BuildingType string `json:"buildingType,omitempty"`
	Country      string `json:"country,omitempty"`

	// Spec is an existing spec. When set, Execute skips generation.
	Spec *blueprint.Spec `json:"spec,omitempty"`

	// Layout options
	Relayout bool   `json:"relayout,omitempty"` // Re-run placement on Spec before rendering
	Minimums string `json:"minimums,omitempty"` // "flat" (default) or "country"

	// Render options
	Formats []string `json:"formats,omitempty"`
	Scale   float64  `json:"scale,omitempty"`
	OffsetX float64  `json:"offsetX,omitempty"`
	OffsetY float64  `json:"offsetY,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger     `json:"-"`
	Source generate.Source `json:"-"` // Overrides the runner's generator, e.g. a session coordinator
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Spec is the laid-out, finalized spec.
	Spec *blueprint.Spec

	// SpecHash is the content hash of Spec.
	SpecHash string

	// Warnings holds the validation findings of Spec.
	Warnings []string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	RoomCount    int
	TotalArea    float64
	GenerateTime time.Duration
	LayoutTime   time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	return perrors.ValidateFormat(format, Formats)
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated format list, dropping blanks.
func ParseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateForGenerate checks the fields needed for generation and applies
// their defaults.
func (o *Options) ValidateForGenerate() error {
	if o.BuildingType == "" {
		o.BuildingType = string(DefaultBuildingType)
	}
	if o.Country == "" {
		o.Country = DefaultCountry
	}
	o.Country = strings.ToUpper(o.Country)
	if err := perrors.ValidateBuildingType(o.BuildingType); err != nil {
		return err
	}
	if err := perrors.ValidateCountry(o.Country); err != nil {
		return err
	}
	o.setLogger()
	return nil
}

// ValidateForLayout checks the fields needed for layout.
func (o *Options) ValidateForLayout() error {
	if o.Minimums == "" {
		o.Minimums = MinimumsFlat
	}
	if o.Minimums != MinimumsFlat && o.Minimums != MinimumsCountry {
		return perrors.New(perrors.ErrCodeInvalidInput, "invalid minimums: %q (must be one of: flat, country)", o.Minimums)
	}
	o.setLogger()
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatPNG}
	}
	if o.Scale == 0 {
		o.Scale = plan.DefaultScale
	}
	o.setLogger()
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	return perrors.ValidateScale(o.Scale, plan.MinScale, plan.MaxScale)
}

// View returns the pan/zoom state described by the options.
func (o *Options) View() plan.View {
	return plan.View{Scale: o.Scale, OffsetX: o.OffsetX, OffsetY: o.OffsetY}.Clamp()
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	v := o.View()
	return cache.ArtifactKeyOpts{
		Format:  format,
		Scale:   v.Scale,
		OffsetX: v.OffsetX,
		OffsetY: v.OffsetY,
	}
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}
