package spyglass

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyCatalog is returned when a catalog would have no entries.
	ErrEmptyCatalog = errors.New("catalog has no glyphs")

	// ErrDuplicateGlyph is returned when a rune appears twice in a table.
	ErrDuplicateGlyph = errors.New("duplicate glyph")
)

// GlyphEntry pairs a character with its ink bitmap.
type GlyphEntry struct {
	Rune   rune
	Bitmap Bitmap
}

// Catalog is an ordered, read-only set of glyph bitmaps for one cell size.
// A Catalog is safe for concurrent use once built.
type Catalog struct {
	name    string
	cell    CellSize
	entries []GlyphEntry
	index   map[rune]int
}

// Table is the literal form of a catalog.
type Table struct {
	Name   string
	Cell   CellSize
	Glyphs []GlyphEntry
}

// BuildStatic validates a literal table and turns it into a Catalog.
func BuildStatic(t Table) (*Catalog, error) {
	return newCatalog(t.Name, t.Cell, t.Glyphs)
}

func newCatalog(name string, cell CellSize, glyphs []GlyphEntry) (*Catalog, error) {
	if err := cell.Validate(); err != nil {
		return nil, err
	}
	if len(glyphs) == 0 {
		return nil, ErrEmptyCatalog
	}
	c := &Catalog{
		name:    name,
		cell:    cell,
		entries: make([]GlyphEntry, len(glyphs)),
		index:   make(map[rune]int, len(glyphs)),
	}
	for i, g := range glyphs {
		if _, dup := c.index[g.Rune]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateGlyph, g.Rune)
		}
		if !cell.Fits(g.Bitmap) {
			return nil, fmt.Errorf("%w: %q %s in %s cell", ErrMaskOverflow, g.Rune, g.Bitmap, cell)
		}
		c.entries[i] = g
		c.index[g.Rune] = i
	}
	return c, nil
}

// Name is a label for the catalog source, such as a font path.
func (c *Catalog) Name() string { return c.name }

// Cell returns the cell size all entries are defined for.
func (c *Catalog) Cell() CellSize { return c.cell }

// Len returns the number of entries.
func (c *Catalog) Len() int { return len(c.entries) }

// Entry returns the i-th entry in catalog order.
func (c *Catalog) Entry(i int) GlyphEntry { return c.entries[i] }

// Entries returns a copy of the entries in catalog order.
func (c *Catalog) Entries() []GlyphEntry {
	out := make([]GlyphEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Runes returns the characters in catalog order.
func (c *Catalog) Runes() []rune {
	out := make([]rune, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.Rune
	}
	return out
}

// Lookup returns the bitmap for r.
func (c *Catalog) Lookup(r rune) (Bitmap, bool) {
	i, ok := c.index[r]
	if !ok {
		return Bitmap{}, false
	}
	return c.entries[i].Bitmap, true
}

// Table returns the catalog as a literal table.
func (c *Catalog) Table() Table {
	return Table{Name: c.name, Cell: c.cell, Glyphs: c.Entries()}
}
