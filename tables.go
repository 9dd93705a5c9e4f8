package spyglass

// DefaultChars is the candidate set used when rendering block glyphs from a
// font. The order is the catalog order, which decides ties.
const DefaultChars = "▁▂▃▄▅▆▇▎▌▊▖▗▘▝"

// BlockElements4x8 is the block element alphabet on a 4x8 cell. It needs no
// font and renders identically everywhere.
var BlockElements4x8 = Table{
	Name: "block-elements-4x8",
	Cell: Cell4x8,
	Glyphs: []GlyphEntry{
		{'▁', Bitmap{Lo: 0x0000000f}},
		{'▂', Bitmap{Lo: 0x000000ff}},
		{'▃', Bitmap{Lo: 0x00000fff}},
		{'▄', Bitmap{Lo: 0x0000ffff}},
		{'▅', Bitmap{Lo: 0x000fffff}},
		{'▆', Bitmap{Lo: 0x00ffffff}},
		{'▇', Bitmap{Lo: 0x0fffffff}},
		{'▎', Bitmap{Lo: 0x88888888}},
		{'▌', Bitmap{Lo: 0xcccccccc}},
		{'▊', Bitmap{Lo: 0xeeeeeeee}},
		{'▖', Bitmap{Lo: 0x0000cccc}},
		{'▗', Bitmap{Lo: 0x00003333}},
		{'▘', Bitmap{Lo: 0xcccc0000}},
		{'▝', Bitmap{Lo: 0x33330000}},
	},
}

// QuadrantElements4x8 extends BlockElements4x8 with a blank cell and the
// diagonal quadrant shape. Complements of existing entries (▀ ▐ █ ▞ ▔ ▕ and
// the three-quadrant shapes) are left out since matching already tries both
// polarities.
var QuadrantElements4x8 = Table{
	Name: "quadrant-elements-4x8",
	Cell: Cell4x8,
	Glyphs: append(
		append([]GlyphEntry{{' ', Bitmap{}}}, BlockElements4x8.Glyphs...),
		GlyphEntry{'▚', Bitmap{Lo: 0xcccc3333}},
	),
}

const (
	ones64 = 0xffffffffffffffff
	left2  = 0xc0c0c0c0c0c0c0c0
	left4  = 0xf0f0f0f0f0f0f0f0
	left6  = 0xfcfcfcfcfcfcfcfc
	right4 = 0x0f0f0f0f0f0f0f0f
)

// BlockElements8x16 is BlockElements4x8 drawn on an 8x16 cell, one 128-bit
// bitmap per glyph.
var BlockElements8x16 = Table{
	Name: "block-elements-8x16",
	Cell: Cell8x16,
	Glyphs: []GlyphEntry{
		{'▁', Bitmap{Lo: 0xffff}},
		{'▂', Bitmap{Lo: 0xffffffff}},
		{'▃', Bitmap{Lo: 0xffffffffffff}},
		{'▄', Bitmap{Lo: ones64}},
		{'▅', Bitmap{Hi: 0xffff, Lo: ones64}},
		{'▆', Bitmap{Hi: 0xffffffff, Lo: ones64}},
		{'▇', Bitmap{Hi: 0xffffffffffff, Lo: ones64}},
		{'▎', Bitmap{Hi: left2, Lo: left2}},
		{'▌', Bitmap{Hi: left4, Lo: left4}},
		{'▊', Bitmap{Hi: left6, Lo: left6}},
		{'▖', Bitmap{Lo: left4}},
		{'▗', Bitmap{Lo: right4}},
		{'▘', Bitmap{Hi: left4}},
		{'▝', Bitmap{Hi: right4}},
	},
}

// Tables lists the built-in tables by name.
var Tables = map[string]Table{
	BlockElements4x8.Name:    BlockElements4x8,
	QuadrantElements4x8.Name: QuadrantElements4x8,
	BlockElements8x16.Name:   BlockElements8x16,
}
