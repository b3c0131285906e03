// Package render groups the drawing backends for floor plans.
//
// # Overview
//
// Nothing here draws by itself. The work is split across subpackages:
//
//   - [surface]: the drawing target, backed by a raster canvas or an SVG
//     document
//   - [plan]: the architectural drawing of a laid-out spec, with grid,
//     walls, openings, dimensions and title block
//   - [adjacency]: a diagram of which rooms share a wall, laid out by
//     Graphviz
//
// Both [plan] and [adjacency] take a [blueprint.Spec] and never modify it.
// File formats (PNG, PDF, SVG) are produced by package export from a
// [surface.Surface].
package render
