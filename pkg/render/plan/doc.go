// Package plan draws an architectural floor plan of a laid-out spec onto a
// [surface.Surface].
//
// # Coordinates
//
// Room positions and sizes are in the spec's unit. They are converted to
// canvas pixels at a fixed density ([PixelsPerUnit]): 12 px per foot or
// 4 px per meter. [CanvasSize] picks a canvas large enough for the rooms
// plus room for annotations, capped at 1400×1000.
//
// # Drawing
//
// [Draw] paints, in order: background, grid, building outline, rooms (fill,
// walls, doors, windows, label), dimension lines and the annotation blocks.
// The whole drawing is panned and zoomed by a [View]; the building itself
// is additionally centered on the canvas.
//
//	w, h := plan.CanvasSize(spec)
//	r := surface.NewRaster(w, h)
//	plan.Draw(r, spec, plan.DefaultView())
//	err := r.EncodePNG(out)
//
// [Raster] and [Vector] wrap those three steps.
package plan
