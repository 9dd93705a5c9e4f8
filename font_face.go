package spyglass

import (
	"errors"
	"image"
	"image/color"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// FaceRasterizer rasterizes glyphs through a font.Face. Faces are created
// lazily per point size and reused. A FaceRasterizer is safe for concurrent
// use; faces themselves are not, so calls are serialized.
type FaceRasterizer struct {
	mu      sync.Mutex
	newFace func(size float64) (font.Face, error)
	hasRune func(r rune) bool
	faces   map[float64]font.Face
}

// NewTrueTypeRasterizer parses TrueType data with freetype.
func NewTrueTypeRasterizer(fontBytes []byte) (*FaceRasterizer, error) {
	f, err := truetype.Parse(fontBytes)
	if err != nil {
		return nil, &FontParseError{Err: err}
	}
	return &FaceRasterizer{
		newFace: func(size float64) (font.Face, error) {
			return truetype.NewFace(f, &truetype.Options{
				Size:    size,
				DPI:     72,
				Hinting: font.HintingFull,
			}), nil
		},
		hasRune: func(r rune) bool { return f.Index(r) != 0 },
		faces:   make(map[float64]font.Face),
	}, nil
}

// NewOpenTypeRasterizer parses OpenType (or TrueType) data with the
// x/image sfnt parser.
func NewOpenTypeRasterizer(fontBytes []byte) (*FaceRasterizer, error) {
	f, err := opentype.Parse(fontBytes)
	if err != nil {
		return nil, &FontParseError{Err: err}
	}
	var buf sfnt.Buffer
	return &FaceRasterizer{
		newFace: func(size float64) (font.Face, error) {
			return opentype.NewFace(f, &opentype.FaceOptions{
				Size:    size,
				DPI:     72,
				Hinting: font.HintingFull,
			})
		},
		hasRune: func(r rune) bool {
			idx, err := f.GlyphIndex(&buf, r)
			return err == nil && idx != 0
		},
		faces: make(map[float64]font.Face),
	}, nil
}

// Rasterize renders r with the pen at the origin.
func (fr *FaceRasterizer) Rasterize(r rune, pointSize float64) (Coverage, error) {
	if pointSize <= 0 {
		return Coverage{}, errors.New("point size must be positive")
	}
	fr.mu.Lock()
	defer fr.mu.Unlock()

	if !fr.hasRune(r) {
		return Coverage{}, &MissingGlyphError{Rune: r}
	}
	face, ok := fr.faces[pointSize]
	if !ok {
		var err error
		face, err = fr.newFace(pointSize)
		if err != nil {
			return Coverage{}, err
		}
		fr.faces[pointSize] = face
	}

	dr, mask, maskp, _, ok := face.Glyph(fixed.Point26_6{}, r)
	if !ok {
		return Coverage{}, &MissingGlyphError{Rune: r}
	}
	cov := Coverage{
		Width:  dr.Dx(),
		Height: dr.Dy(),
		Left:   dr.Min.X,
		Top:    dr.Min.Y,
		Pix:    make([]uint8, dr.Dx()*dr.Dy()),
	}
	for y := 0; y < cov.Height; y++ {
		for x := 0; x < cov.Width; x++ {
			cov.Pix[y*cov.Width+x] = alphaAt(mask, maskp.X+x, maskp.Y+y)
		}
	}
	return cov, nil
}

func alphaAt(m image.Image, x, y int) uint8 {
	if a, ok := m.(*image.Alpha); ok {
		return a.AlphaAt(x, y).A
	}
	return color.AlphaModel.Convert(m.At(x, y)).(color.Alpha).A
}

// Close releases every cached face.
func (fr *FaceRasterizer) Close() error {
	fr.mu.Lock()
	defer fr.mu.Unlock()
	var errs []error
	for size, face := range fr.faces {
		if err := face.Close(); err != nil {
			errs = append(errs, err)
		}
		delete(fr.faces, size)
	}
	return errors.Join(errs...)
}
