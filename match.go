package spyglass

// Polarity records which orientation of a mask matched a glyph.
type Polarity int

const (
	// Direct means the mask itself matched: set mask bits are glyph ink.
	Direct Polarity = iota
	// Inverted means the complement matched: set mask bits are background.
	Inverted
)

func (p Polarity) String() string {
	if p == Inverted {
		return "inverted"
	}
	return "direct"
}

// Fit is the result of matching a mask against a catalog.
type Fit struct {
	Entry    GlyphEntry
	Index    int
	Polarity Polarity
	Distance int
}

// BestFit returns the catalog entry closest to mask. Each entry is scored
// by the smaller of its Hamming distance to mask and to the complement of
// mask, so a block and its negative pick the same glyph. Ties go to the
// earlier entry, and to Direct within an entry. The catalog must not be
// empty.
func BestFit(mask Bitmap, c *Catalog) Fit {
	inv := c.cell.Complement(mask)
	best := Fit{Distance: c.cell.Bits() + 1}
	for i, e := range c.entries {
		d, pol := Distance(e.Bitmap, mask), Direct
		if di := Distance(e.Bitmap, inv); di < d {
			d, pol = di, Inverted
		}
		if d < best.Distance {
			best = Fit{Entry: e, Index: i, Polarity: pol, Distance: d}
			if d == 0 {
				break
			}
		}
	}
	return best
}
