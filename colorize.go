package spyglass

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB is an opaque 8-bit color.
type RGB struct {
	R, G, B uint8
}

// RGBFromColor drops the alpha channel of c.
func RGBFromColor(c color.NRGBA) RGB {
	return RGB{R: c.R, G: c.G, B: c.B}
}

// ToColor converts to an opaque color.RGBA.
func (c RGB) ToColor() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// Colorful converts to a go-colorful color.
func (c RGB) Colorful() colorful.Color {
	col, _ := colorful.MakeColor(c.ToColor())
	return col
}

// Hex returns the color as "#rrggbb".
func (c RGB) Hex() string {
	return c.Colorful().Hex()
}

// SplitColors averages the two halves of a block partitioned by mask. With
// Direct polarity the set bits are the foreground; with Inverted the clear
// bits are. Each channel is an integer mean. An empty half is black.
func SplitColors(b Block, mask Bitmap, p Polarity) (fg, bg RGB) {
	var fgSum, bgSum [3]int
	var fgN, bgN int
	ink := p == Direct
	for i, px := range b.Pix {
		if b.Cell.Get(mask, i) == ink {
			fgSum[0] += int(px.R)
			fgSum[1] += int(px.G)
			fgSum[2] += int(px.B)
			fgN++
		} else {
			bgSum[0] += int(px.R)
			bgSum[1] += int(px.G)
			bgSum[2] += int(px.B)
			bgN++
		}
	}
	return average(fgSum, fgN), average(bgSum, bgN)
}

func average(sum [3]int, n int) RGB {
	if n == 0 {
		return RGB{}
	}
	return RGB{R: uint8(sum[0] / n), G: uint8(sum[1] / n), B: uint8(sum[2] / n)}
}
