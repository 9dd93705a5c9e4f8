package spyglass

import (
	"fmt"
)

// MissingGlyphError reports a requested character the font has no glyph
// for. Catalog construction stops at the first one.
type MissingGlyphError struct {
	Rune rune
}

func (e *MissingGlyphError) Error() string {
	return fmt.Sprintf("font has no glyph for %q (U+%04X)", e.Rune, e.Rune)
}

// FontParseError wraps the parser failure for malformed font data.
type FontParseError struct {
	Err error
}

func (e *FontParseError) Error() string {
	return fmt.Sprintf("failed to parse font: %v", e.Err)
}

func (e *FontParseError) Unwrap() error { return e.Err }

// Coverage is an anti-aliased glyph raster. Left and Top give the offset of
// the raster's top-left sample from the pen position on the baseline; Top is
// negative for samples above the baseline. Pix holds Width*Height coverage
// values row by row, zero meaning no ink.
type Coverage struct {
	Width, Height int
	Left, Top     int
	Pix           []uint8
}

// At returns the coverage at column x, row y.
func (c Coverage) At(x, y int) uint8 {
	return c.Pix[y*c.Width+x]
}

// GlyphRasterizer renders single characters to coverage rasters. It returns
// a *MissingGlyphError when the character is absent.
type GlyphRasterizer interface {
	Rasterize(r rune, pointSize float64) (Coverage, error)
}

// CoverageBitmap maps a glyph raster onto a cell.
//
// The raster's first row and first column are an anti-aliasing margin and
// are skipped. Sample (col, row) lands on pixel index
//
//	cell.Width*(cell.Height-1+cov.Top+row-1) + (col-1) + cov.Left
//
// and sets it when its coverage is positive and the index lies in the cell.
// Samples falling outside the cell are dropped.
func CoverageBitmap(cov Coverage, cell CellSize) Bitmap {
	var b Bitmap
	n := cell.Bits()
	origin := cell.Height - 1 + cov.Top
	for row := 1; row < cov.Height; row++ {
		y := origin + row - 1
		for col := 1; col < cov.Width; col++ {
			if cov.At(col, row) == 0 {
				continue
			}
			idx := cell.Width*y + (col - 1) + cov.Left
			if idx >= 0 && idx < n {
				b = cell.Set(b, idx)
			}
		}
	}
	return b
}

type fontOptions struct {
	pointSize float64
	name      string
}

// FontOption configures font catalog construction.
type FontOption func(*fontOptions)

// WithPointSize overrides the raster size. The default is the cell height,
// which at 72 DPI gives one pixel per point.
func WithPointSize(size float64) FontOption {
	return func(o *fontOptions) {
		o.pointSize = size
	}
}

// WithCatalogName labels the resulting catalog.
func WithCatalogName(name string) FontOption {
	return func(o *fontOptions) {
		o.name = name
	}
}

// BuildFromRasterizer rasterizes every character in chars and builds a
// catalog in the same order. Any rasterizer error aborts construction and
// no catalog is returned.
func BuildFromRasterizer(rz GlyphRasterizer, chars []rune, cell CellSize, opts ...FontOption) (*Catalog, error) {
	if err := cell.Validate(); err != nil {
		return nil, err
	}
	o := fontOptions{pointSize: float64(cell.Height)}
	for _, opt := range opts {
		opt(&o)
	}

	glyphs := make([]GlyphEntry, 0, len(chars))
	for _, r := range chars {
		cov, err := rz.Rasterize(r, o.pointSize)
		if err != nil {
			return nil, err
		}
		glyphs = append(glyphs, GlyphEntry{Rune: r, Bitmap: CoverageBitmap(cov, cell)})
	}
	return newCatalog(o.name, cell, glyphs)
}

// BuildFromFont builds a catalog from TrueType font data.
func BuildFromFont(fontBytes []byte, chars []rune, cell CellSize, opts ...FontOption) (*Catalog, error) {
	rz, err := NewTrueTypeRasterizer(fontBytes)
	if err != nil {
		return nil, err
	}
	defer rz.Close()
	return BuildFromRasterizer(rz, chars, cell, opts...)
}

// BuildFromOpenType builds a catalog from OpenType or TrueType font data
// using the sfnt parser.
func BuildFromOpenType(fontBytes []byte, chars []rune, cell CellSize, opts ...FontOption) (*Catalog, error) {
	rz, err := NewOpenTypeRasterizer(fontBytes)
	if err != nil {
		return nil, err
	}
	defer rz.Close()
	return BuildFromRasterizer(rz, chars, cell, opts...)
}
