package imageutil

import (
	"image"
	"math"
	"strings"

	"golang.org/x/image/draw"
)

// Interpolation specifies the interpolation method for resizing.
type Interpolation int

const (
	// InterpolationNearest uses nearest-neighbor interpolation. Cells stay
	// crisp, which suits block glyph matching.
	InterpolationNearest Interpolation = iota

	// InterpolationLinear uses bilinear interpolation.
	InterpolationLinear

	// InterpolationArea uses Catmull-Rom for high-quality downscaling.
	InterpolationArea
)

// ParseInterpolation maps "nearest", "linear" or "area" to an
// Interpolation.
func ParseInterpolation(s string) (Interpolation, bool) {
	switch strings.ToLower(s) {
	case "nearest", "":
		return InterpolationNearest, true
	case "linear", "bilinear":
		return InterpolationLinear, true
	case "area", "catmullrom":
		return InterpolationArea, true
	}
	return InterpolationNearest, false
}

func (interp Interpolation) scaler() draw.Scaler {
	switch interp {
	case InterpolationLinear:
		return draw.BiLinear
	case InterpolationArea:
		return draw.CatmullRom
	default:
		return draw.NearestNeighbor
	}
}

// Resize resizes an image to the specified dimensions using the
// given interpolation method.
func Resize(img *NRGBAImage, width, height int, interp Interpolation) *NRGBAImage {
	dst := NewNRGBAImage(width, height)
	interp.scaler().Scale(dst.NRGBA, dst.Bounds(), img.NRGBA, img.Bounds(), draw.Src, nil)
	return dst
}

// FitSize returns the largest size with the aspect ratio of src that fits
// in maxW x maxH. Both sides are rounded and at least one pixel. Images
// smaller than the box are scaled up.
func FitSize(src image.Point, maxW, maxH int) image.Point {
	if src.X <= 0 || src.Y <= 0 {
		return image.Point{}
	}
	ratio := math.Min(float64(maxW)/float64(src.X), float64(maxH)/float64(src.Y))
	w := int(math.Max(math.Round(float64(src.X)*ratio), 1))
	h := int(math.Max(math.Round(float64(src.Y)*ratio), 1))
	return image.Pt(w, h)
}

// Fit resizes img to fit in maxW x maxH, keeping its aspect ratio.
func Fit(img *NRGBAImage, maxW, maxH int, interp Interpolation) *NRGBAImage {
	size := FitSize(img.Bounds().Size(), maxW, maxH)
	if size == img.Bounds().Size() {
		return img
	}
	return Resize(img, size.X, size.Y, interp)
}

// ResizeToWidth resizes an image to the specified width while maintaining
// aspect ratio.
func ResizeToWidth(img *NRGBAImage, width int, interp Interpolation) *NRGBAImage {
	aspectRatio := float64(img.Width()) / float64(img.Height())
	height := int(math.Max(math.Round(float64(width)/aspectRatio), 1))
	return Resize(img, width, height, interp)
}
