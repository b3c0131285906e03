// Package fonts provides the Go font family for raster text rendering.
//
// The TrueType data ships with golang.org/x/image, so no font files need to
// be installed on the host. Fonts are parsed once on first use. Faces are
// not safe for concurrent use, so [Face] returns a new one on every call and
// each drawing surface keeps its own.
package fonts

import (
	"fmt"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// Style selects a font of the family.
type Style int

const (
	Regular Style = iota
	Bold
	Mono
)

// Family is the CSS font-family list used in SVG output. It names the Go
// fonts first so vector and raster output look alike where they are
// installed.
const Family = `'Go', 'Arial Narrow', Arial, sans-serif`

// MonoFamily is the CSS font-family list for monospace labels.
const MonoFamily = `'Go Mono', 'Courier New', monospace`

var (
	parseOnce sync.Once
	parsed    map[Style]*truetype.Font
	parseErr  error
)

func load() (map[Style]*truetype.Font, error) {
	parseOnce.Do(func() {
		src := map[Style][]byte{
			Regular: goregular.TTF,
			Bold:    gobold.TTF,
			Mono:    gomono.TTF,
		}
		parsed = make(map[Style]*truetype.Font, len(src))
		for style, data := range src {
			f, err := truetype.Parse(data)
			if err != nil {
				parseErr = fmt.Errorf("parse font %d: %w", style, err)
				return
			}
			parsed[style] = f
		}
	})
	return parsed, parseErr
}

// Face returns a new face of the given style and pixel size.
func Face(style Style, size float64) (font.Face, error) {
	fs, err := load()
	if err != nil {
		return nil, err
	}
	f, ok := fs[style]
	if !ok {
		f = fs[Regular]
	}
	return truetype.NewFace(f, &truetype.Options{Size: size, Hinting: font.HintingFull}), nil
}

// CSSFamily returns the SVG font-family value for a style.
func CSSFamily(style Style) string {
	if style == Mono {
		return MonoFamily
	}
	return Family
}
