package export

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/matzehuels/planforge/pkg/render/surface"
)

const (
	pageMargin   = 10.0
	titleBand    = 10.0
	planImageRef = "plan"
)

// DocumentOptions sets the PDF metadata.
type DocumentOptions struct {
	// Title is printed above the drawing and stored as the document title.
	Title string
	// CreatedAt fixes the creation date. Zero uses the current time.
	CreatedAt time.Time
}

// Document writes a single-page landscape A4 PDF holding the raster
// drawing, scaled uniformly to fit inside the page margins and centered. A
// nil raster writes nothing and returns nil.
func Document(w io.Writer, r *surface.Raster, opts DocumentOptions) error {
	if r == nil {
		return nil
	}

	var img bytes.Buffer
	if err := r.EncodePNG(&img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	iw, ih := r.Size()
	if iw <= 0 || ih <= 0 {
		return nil
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	if !opts.CreatedAt.IsZero() {
		pdf.SetCreationDate(opts.CreatedAt)
		pdf.SetModificationDate(opts.CreatedAt)
	}
	pdf.SetCreator("planforge", true)
	pdf.AddPage()
	pw, ph := pdf.GetPageSize()

	top := pageMargin
	if opts.Title != "" {
		pdf.SetTitle(opts.Title, true)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.SetXY(pageMargin, pageMargin)
		pdf.CellFormat(pw-2*pageMargin, titleBand-2, opts.Title, "", 0, "L", false, 0, "")
		top += titleBand
	}

	x, y, dw, dh := fit(iw, ih, pageMargin, top, pw-2*pageMargin, ph-top-pageMargin)

	imgOpts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(planImageRef, imgOpts, &img)
	pdf.ImageOptions(planImageRef, x, y, dw, dh, false, imgOpts, 0, "")

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("build pdf: %w", err)
	}
	return pdf.Output(w)
}

// fit scales an iw×ih image uniformly into the box at (bx, by) of size
// bw×bh and centers it, returning the placed rectangle.
func fit(iw, ih, bx, by, bw, bh float64) (x, y, w, h float64) {
	ratio := min(bw/iw, bh/ih)
	w, h = iw*ratio, ih*ratio
	return bx + (bw-w)/2, by + (bh-h)/2, w, h
}

// DocumentName returns the PDF file name for a base name.
func DocumentName(base string) string {
	return base + ".pdf"
}
