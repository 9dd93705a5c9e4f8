package spyglass

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// ErrBlockSize is returned when pixel data does not match the cell size.
var ErrBlockSize = errors.New("block size does not match cell")

// Block is one cell's worth of source pixels in row-major order. Colors
// are straight alpha, so a faint pixel keeps its full channel values.
type Block struct {
	Cell CellSize
	Pix  []color.NRGBA
}

// NewBlock wraps pix as a block of the given cell size.
func NewBlock(cell CellSize, pix []color.NRGBA) (Block, error) {
	if err := cell.Validate(); err != nil {
		return Block{}, err
	}
	if len(pix) != cell.Bits() {
		return Block{}, fmt.Errorf("%w: %d pixels for %s", ErrBlockSize, len(pix), cell)
	}
	return Block{Cell: cell, Pix: pix}, nil
}

// nrgbaImage is satisfied by *image.NRGBA and types embedding it.
type nrgbaImage interface {
	image.Image
	NRGBAAt(x, y int) color.NRGBA
}

// BlockAt copies the cell at grid position (col, row) out of img. The cell
// must lie inside the image bounds. Premultiplied sources are converted to
// straight alpha.
func BlockAt(img image.Image, cell CellSize, col, row int) Block {
	b := img.Bounds()
	x0 := b.Min.X + col*cell.Width
	y0 := b.Min.Y + row*cell.Height
	pix := make([]color.NRGBA, 0, cell.Bits())

	if n, ok := img.(nrgbaImage); ok {
		for y := 0; y < cell.Height; y++ {
			for x := 0; x < cell.Width; x++ {
				pix = append(pix, n.NRGBAAt(x0+x, y0+y))
			}
		}
		return Block{Cell: cell, Pix: pix}
	}
	for y := 0; y < cell.Height; y++ {
		for x := 0; x < cell.Width; x++ {
			pix = append(pix, color.NRGBAModel.Convert(img.At(x0+x, y0+y)).(color.NRGBA))
		}
	}
	return Block{Cell: cell, Pix: pix}
}

// At returns the pixel at (x, y) within the block.
func (b Block) At(x, y int) color.NRGBA {
	return b.Pix[b.Cell.Index(x, y)]
}

func channel(c color.NRGBA, ch int) uint8 {
	switch ch {
	case 0:
		return c.R
	case 1:
		return c.G
	default:
		return c.B
	}
}

// Threshold splits a block into dark and light pixels on its most varied
// color channel. The channel with the widest min..max range is used, the
// lowest of R, G, B on ties. A pixel is set when its value on that channel is
// strictly below min+(max-min)/2. A block with no variation yields an empty
// bitmap.
func Threshold(b Block) Bitmap {
	if len(b.Pix) == 0 {
		return Bitmap{}
	}
	best, lo, spread := 0, uint8(0), -1
	for ch := 0; ch < 3; ch++ {
		mn, mx := uint8(255), uint8(0)
		for _, p := range b.Pix {
			v := channel(p, ch)
			if v < mn {
				mn = v
			}
			if v > mx {
				mx = v
			}
		}
		if s := int(mx) - int(mn); s > spread {
			best, lo, spread = ch, mn, s
		}
	}
	split := int(lo) + spread/2

	var mask Bitmap
	for i, p := range b.Pix {
		if int(channel(p, best)) < split {
			mask = b.Cell.Set(mask, i)
		}
	}
	return mask
}
