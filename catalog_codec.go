package spyglass

import (
	"bytes"
	"compress/gzip"
	"encoding/gob"
	"fmt"
	"io"
	"os"
)

// catalogData is the serialized form of a Catalog. Entries are a slice, not
// a map, so that catalog order survives a round trip.
type catalogData struct {
	Name   string
	Width  int
	Height int
	Runes  []rune
	Hi, Lo []uint64
}

// MarshalBinary encodes the catalog as gzip-compressed gob.
func (c *Catalog) MarshalBinary() ([]byte, error) {
	data := catalogData{
		Name:   c.name,
		Width:  c.cell.Width,
		Height: c.cell.Height,
		Runes:  make([]rune, len(c.entries)),
		Hi:     make([]uint64, len(c.entries)),
		Lo:     make([]uint64, len(c.entries)),
	}
	for i, e := range c.entries {
		data.Runes[i] = e.Rune
		data.Hi[i] = e.Bitmap.Hi
		data.Lo[i] = e.Bitmap.Lo
	}

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if err := gob.NewEncoder(gz).Encode(&data); err != nil {
		gz.Close()
		return nil, fmt.Errorf("failed to encode catalog: %w", err)
	}
	if err := gz.Close(); err != nil {
		return nil, fmt.Errorf("failed to close gzip: %w", err)
	}
	return buf.Bytes(), nil
}

// ReadCatalog decodes a catalog written by MarshalBinary. The decoded
// entries are validated the same way BuildStatic validates a table.
func ReadCatalog(r io.Reader) (*Catalog, error) {
	gr, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gr.Close()

	var data catalogData
	if err := gob.NewDecoder(gr).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode glyph data: %w", err)
	}
	if len(data.Hi) != len(data.Runes) || len(data.Lo) != len(data.Runes) {
		return nil, fmt.Errorf("failed to decode glyph data: %d runes, %d/%d masks",
			len(data.Runes), len(data.Hi), len(data.Lo))
	}
	glyphs := make([]GlyphEntry, len(data.Runes))
	for i, r := range data.Runes {
		glyphs[i] = GlyphEntry{Rune: r, Bitmap: Bitmap{Hi: data.Hi[i], Lo: data.Lo[i]}}
	}
	return newCatalog(data.Name, CellSize{Width: data.Width, Height: data.Height}, glyphs)
}

// LoadCatalog reads a precomputed glyph file from disk.
func LoadCatalog(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open glyphs: %w", err)
	}
	defer f.Close()
	return ReadCatalog(f)
}

// SaveCatalog writes c to path in the format LoadCatalog reads.
func SaveCatalog(c *Catalog, path string) error {
	data, err := c.MarshalBinary()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}
