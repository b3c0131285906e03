// Package pkg provides the core libraries for Planforge floor plans.
//
// # Overview
//
// Planforge turns a building type and a country into a laid-out,
// validated floor plan and draws it as a technical drawing. The pkg
// directory is organized by stage:
//
//  1. [blueprint] - The spec data model, units and JSON files
//  2. [standards] - Country minimum room sizes and building archetypes
//  3. [generate] - Initial specs, with latest-request-wins coordination
//  4. [layout] - Room placement strategies and validation
//  5. [render] - Plan drawings, overview SVGs and adjacency diagrams
//  6. [export] - PDF, PNG, SVG and text outputs
//  7. [pipeline] - Orchestration (generate → layout → render) with caching
//
// Supporting packages: [cache], [config], [errors], [observability],
// [fonts] and [buildinfo].
//
// # Architecture
//
// The typical data flow:
//
//	Building type + country
//	         ↓
//	    [generate] package (default rooms sized to the country minimums)
//	         ↓
//	    [layout] package (placement + doors, windows, validation)
//	         ↓
//	    [render] and [export] packages
//	         ↓
//	    PNG/PDF/SVG/JSON/YAML output
//
// # Quick Start
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    BuildingType: "house",
//	    Country:      "US",
//	    Formats:      []string{"png", "pdf"},
//	})
package pkg
