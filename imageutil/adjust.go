package imageutil

import (
	"github.com/disintegration/imaging"
)

// Adjustments are tone corrections applied before conversion. Zero values
// leave the image alone.
type Adjustments struct {
	// Gamma above 1 brightens midtones, below 1 darkens them. 0 and 1 are
	// no-ops.
	Gamma float64
	// Brightness and Contrast are percentages in [-100, 100].
	Brightness float64
	Contrast   float64
	// Sharpen is the gaussian sigma of an unsharp pass.
	Sharpen   float64
	Grayscale bool
	Invert    bool
}

// IsZero reports whether a changes nothing.
func (a Adjustments) IsZero() bool {
	return (a.Gamma == 0 || a.Gamma == 1) &&
		a.Brightness == 0 && a.Contrast == 0 && a.Sharpen == 0 &&
		!a.Grayscale && !a.Invert
}

// Adjust applies a to img and returns a new image. The input is not
// modified.
func Adjust(img *NRGBAImage, a Adjustments) *NRGBAImage {
	if a.IsZero() {
		return img
	}
	out := imaging.Clone(img.NRGBA)
	if a.Gamma != 0 && a.Gamma != 1 {
		out = imaging.AdjustGamma(out, a.Gamma)
	}
	if a.Brightness != 0 {
		out = imaging.AdjustBrightness(out, a.Brightness)
	}
	if a.Contrast != 0 {
		out = imaging.AdjustContrast(out, a.Contrast)
	}
	if a.Sharpen > 0 {
		out = imaging.Sharpen(out, a.Sharpen)
	}
	if a.Grayscale {
		out = imaging.Grayscale(out)
	}
	if a.Invert {
		out = imaging.Invert(out)
	}
	return &NRGBAImage{NRGBA: out}
}
