package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/planforge/pkg/blueprint"
	"github.com/matzehuels/planforge/pkg/cache"
	perrors "github.com/matzehuels/planforge/pkg/errors"
	"github.com/matzehuels/planforge/pkg/generate"
	"github.com/matzehuels/planforge/pkg/layout"
	"github.com/matzehuels/planforge/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache, the engine and the
// generator. It doesn't store pipeline results, so multiple goroutines can
// safely use the same Runner with different options.
type Runner struct {
	Cache     cache.Cache
	Keyer     cache.Keyer
	Logger    *log.Logger
	Engine    *layout.Engine
	Generator generate.Source

	// ArtifactTTL overrides cache.TTLArtifact when positive.
	ArtifactTTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
// The engine and generator use their defaults; replace the fields to
// change them.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:     c,
		Keyer:     keyer,
		Logger:    logger,
		Engine:    layout.New(),
		Generator: generate.New(),
	}
}

// Execute runs the complete generate → layout → render pipeline with
// caching. When opts.Spec is set, generation is skipped and the spec is
// laid out again only if opts.Relayout is true; otherwise it is validated
// in place.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if err := opts.ValidateForRender(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Generate (or check the given spec)
	layoutStart := time.Now()
	switch {
	case opts.Spec == nil:
		spec, warnings, err := r.Generate(ctx, opts)
		if err != nil {
			return nil, err
		}
		result.Spec, result.Warnings = spec, warnings
		result.Stats.GenerateTime = time.Since(layoutStart)
	case opts.Relayout:
		laid, hit, err := r.LayoutWithCacheInfo(ctx, opts.Spec, opts)
		if err != nil {
			return nil, fmt.Errorf("layout: %w", err)
		}
		result.Spec, result.Warnings = laid.Spec, laid.Warnings
		result.CacheInfo.LayoutHit = hit
		result.Stats.LayoutTime = time.Since(layoutStart)
	default:
		if err := perrors.ValidateSpec(opts.Spec); err != nil {
			return nil, err
		}
		laid := Check(r.Engine, opts.Spec, opts)
		result.Spec, result.Warnings = laid.Spec, laid.Warnings
		result.Stats.LayoutTime = time.Since(layoutStart)
	}
	result.Stats.RoomCount = len(result.Spec.Rooms)
	result.Stats.TotalArea = result.Spec.TotalArea
	if hash, err := cache.HashJSON(result.Spec); err == nil {
		result.SpecHash = hash
	}

	opts.Logger.Info("prepared spec",
		"rooms", result.Stats.RoomCount,
		"area", result.Stats.TotalArea,
		"warnings", len(result.Warnings))

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, result.Spec, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Generate produces a spec for opts.BuildingType and opts.Country, lays it
// out and validates it. Generation is never cached: every call yields a
// new spec ID and creation time.
func (r *Runner) Generate(ctx context.Context, opts Options) (*blueprint.Spec, []string, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForGenerate(); err != nil {
		return nil, nil, err
	}
	if err := opts.ValidateForLayout(); err != nil {
		return nil, nil, err
	}

	src := opts.Source
	if src == nil {
		src = r.Generator
	}

	hooks := observability.Pipeline()
	hooks.OnGenerateStart(ctx, opts.BuildingType, opts.Country)
	start := time.Now()
	spec, err := Generate(ctx, src, opts)
	if err != nil {
		hooks.OnGenerateComplete(ctx, opts.BuildingType, opts.Country, 0, time.Since(start), err)
		return nil, nil, err
	}
	hooks.OnGenerateComplete(ctx, opts.BuildingType, opts.Country, len(spec.Rooms), time.Since(start), nil)

	opts.Logger.Debug("generated spec",
		"id", spec.ID,
		"type", spec.BuildingType,
		"country", spec.Country,
		"rooms", len(spec.Rooms),
		"duration", time.Since(start))

	laid := r.layout(ctx, spec, opts)
	return laid.Spec, laid.Warnings, nil
}

// LayoutWithCacheInfo lays out spec with caching and returns cache hit info.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, spec *blueprint.Spec, opts Options) (Laid, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return Laid{}, false, err
	}
	if err := perrors.ValidateSpec(spec); err != nil {
		return Laid{}, false, err
	}

	specHash, err := cache.HashJSON(spec)
	if err != nil {
		return Laid{}, false, fmt.Errorf("hash spec: %w", err)
	}
	cacheKey := r.Keyer.LayoutKey(specHash, cache.LayoutKeyOpts{
		Minimums:   opts.Minimums,
		Strategies: strategies(r.Engine),
	})

	// Try cache first
	if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		var cached Laid
		if err := json.Unmarshal(data, &cached); err == nil && cached.Spec != nil {
			observability.Cache().OnCacheHit(ctx, "layout")
			return cached, true, nil
		}
		// If deserialization fails, fall through to recompute
	}
	observability.Cache().OnCacheMiss(ctx, "layout")

	laid := r.layout(ctx, spec, opts)

	if data, err := json.Marshal(laid); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout); err == nil {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}

	return laid, false, nil
}

// Layout is a convenience wrapper that calls LayoutWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, spec *blueprint.Spec, opts Options) (*blueprint.Spec, []string, error) {
	laid, _, err := r.LayoutWithCacheInfo(ctx, spec, opts)
	return laid.Spec, laid.Warnings, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, spec *blueprint.Spec, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	if spec == nil {
		return nil, false, perrors.New(perrors.ErrCodeInvalidSpec, "spec is required")
	}

	specHash, err := cache.HashJSON(spec)
	if err != nil {
		return nil, false, fmt.Errorf("hash spec: %w", err)
	}

	// Try to get all formats from cache
	artifacts := make(map[string][]byte)
	var missing []string
	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(specHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "artifact")
			artifacts[format] = data
		} else {
			observability.Cache().OnCacheMiss(ctx, "artifact")
			missing = append(missing, format)
		}
	}

	if len(missing) == 0 {
		return artifacts, true, nil // All artifacts from cache
	}

	// Render the missing formats
	renderOpts := opts
	renderOpts.Formats = missing

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, missing)
	start := time.Now()
	rendered, err := Render(ctx, spec, renderOpts)
	hooks.OnRenderComplete(ctx, missing, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(specHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, cacheKey, data, r.artifactTTL()); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
		artifacts[format] = data
	}

	return artifacts, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, spec *blueprint.Spec, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, spec, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// layout runs the uncached layout stage with hooks and logging.
func (r *Runner) layout(ctx context.Context, spec *blueprint.Spec, opts Options) Laid {
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, string(spec.BuildingType), len(spec.Rooms))
	start := time.Now()
	laid := Layout(r.Engine, spec, opts)
	hooks.OnLayoutComplete(ctx, string(spec.BuildingType), len(laid.Warnings), time.Since(start), nil)

	opts.Logger.Info("computed layout",
		"rooms", len(laid.Spec.Rooms),
		"area", laid.Spec.TotalArea,
		"warnings", len(laid.Warnings),
		"duration", time.Since(start))
	return laid
}

func (r *Runner) artifactTTL() time.Duration {
	if r.ArtifactTTL > 0 {
		return r.ArtifactTTL
	}
	return cache.TTLArtifact
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
