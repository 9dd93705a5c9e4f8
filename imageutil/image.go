// Package imageutil loads, resizes and adjusts source images before they
// are cut into character cells. Pixels are kept in straight alpha so faint
// pixels keep their color.
package imageutil

import (
	"image"
	"image/draw"
)

// NRGBAImage wraps image.NRGBA. Its bounds always start at the origin.
type NRGBAImage struct {
	*image.NRGBA
}

// NewNRGBAImage creates a new NRGBAImage with the specified dimensions.
func NewNRGBAImage(width, height int) *NRGBAImage {
	return &NRGBAImage{
		NRGBA: image.NewNRGBA(image.Rect(0, 0, width, height)),
	}
}

// NRGBAImageFromImage converts any image.Image to NRGBAImage, moving its
// bounds to the origin. Straight alpha sources are copied as is.
func NRGBAImageFromImage(img image.Image) *NRGBAImage {
	switch src := img.(type) {
	case *NRGBAImage:
		if src.Bounds().Min == (image.Point{}) {
			return src
		}
		return NRGBAImageFromImage(src.NRGBA)
	case *image.NRGBA:
		bounds := src.Bounds()
		dst := NewNRGBAImage(bounds.Dx(), bounds.Dy())
		for y := 0; y < bounds.Dy(); y++ {
			i := src.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(dst.Pix[y*dst.Stride:], src.Pix[i:i+4*bounds.Dx()])
		}
		return dst
	}
	bounds := img.Bounds()
	dst := NewNRGBAImage(bounds.Dx(), bounds.Dy())
	draw.Draw(dst.NRGBA, dst.Bounds(), img, bounds.Min, draw.Src)
	return dst
}

// Width returns the image width.
func (img *NRGBAImage) Width() int {
	return img.Bounds().Dx()
}

// Height returns the image height.
func (img *NRGBAImage) Height() int {
	return img.Bounds().Dy()
}
