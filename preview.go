package spyglass

import (
	"image"
	"image/color"
	"image/draw"
)

// RenderImage paints converted cells back into pixels using the catalog
// bitmaps, scaled by an integer factor. It shows exactly what the matcher
// chose, independent of any terminal font. Blank glyphs and runes missing
// from the catalog are filled with their background color.
func RenderImage(rows [][]BlockRune, cat *Catalog, scale int) *image.RGBA {
	if scale < 1 {
		scale = 1
	}
	if len(rows) == 0 {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}
	cell := cat.Cell()
	cw, ch := cell.Width*scale, cell.Height*scale
	img := image.NewRGBA(image.Rect(0, 0, len(rows[0])*cw, len(rows)*ch))

	for y, row := range rows {
		for x, b := range row {
			renderCell(img, cat, b, x*cw, y*ch, scale)
		}
	}
	return img
}

func renderCell(img *image.RGBA, cat *Catalog, b BlockRune, startX, startY, scale int) {
	cell := cat.Cell()
	bitmap, ok := cat.Lookup(b.Rune)
	if !ok || bitmap.IsZero() {
		fillRect(img, startX, startY, cell.Width*scale, cell.Height*scale, b.BG.ToColor())
		return
	}
	fg, bg := b.FG.ToColor(), b.BG.ToColor()
	for y := 0; y < cell.Height; y++ {
		for x := 0; x < cell.Width; x++ {
			c := bg
			if cell.Get(bitmap, cell.Index(x, y)) {
				c = fg
			}
			fillRect(img, startX+x*scale, startY+y*scale, scale, scale, c)
		}
	}
}

func fillRect(img *image.RGBA, x, y, width, height int, c color.RGBA) {
	rect := image.Rect(x, y, x+width, y+height)
	draw.Draw(img, rect, &image.Uniform{C: c}, image.Point{}, draw.Src)
}
