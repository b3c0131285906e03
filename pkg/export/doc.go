// Package export turns a spec or a drawn plan into files and text for use
// outside the program.
//
//   - [Document] places a raster drawing on a landscape A4 PDF page.
//   - [Vector] writes a simplified SVG overview of the room rectangles.
//   - [Text] and [YAML] serialize the spec for copying or archiving.
//   - [Clipboard] puts text on the system clipboard.
//
// [DocumentName] and [VectorName] produce the conventional file names.
package export
