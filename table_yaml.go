package spyglass

import (
	"fmt"
	"io"
	"unicode/utf8"

	"gopkg.in/yaml.v2"
)

// tableFile is the YAML layout of a glyph table:
//
//	name: my-blocks
//	width: 4
//	height: 8
//	glyphs:
//	  - rune: "▄"
//	    mask: "0x0000ffff"
type tableFile struct {
	Name   string      `yaml:"name"`
	Width  int         `yaml:"width"`
	Height int         `yaml:"height"`
	Glyphs []glyphLine `yaml:"glyphs"`
}

type glyphLine struct {
	Rune string `yaml:"rune"`
	Mask string `yaml:"mask"`
}

// LoadTable reads a YAML glyph table. The result still has to go through
// BuildStatic to be validated.
func LoadTable(r io.Reader) (Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Table{}, fmt.Errorf("failed to read table: %w", err)
	}
	var tf tableFile
	if err := yaml.UnmarshalStrict(data, &tf); err != nil {
		return Table{}, fmt.Errorf("failed to parse table: %w", err)
	}
	t := Table{
		Name:   tf.Name,
		Cell:   CellSize{Width: tf.Width, Height: tf.Height},
		Glyphs: make([]GlyphEntry, 0, len(tf.Glyphs)),
	}
	for i, g := range tf.Glyphs {
		r, size := utf8.DecodeRuneInString(g.Rune)
		if r == utf8.RuneError || size != len(g.Rune) {
			return Table{}, fmt.Errorf("glyph %d: rune %q must be a single character", i, g.Rune)
		}
		b, err := ParseBitmap(g.Mask)
		if err != nil {
			return Table{}, fmt.Errorf("glyph %d: %w", i, err)
		}
		t.Glyphs = append(t.Glyphs, GlyphEntry{Rune: r, Bitmap: b})
	}
	return t, nil
}

// WriteTable writes t in the format LoadTable reads.
func WriteTable(w io.Writer, t Table) error {
	tf := tableFile{
		Name:   t.Name,
		Width:  t.Cell.Width,
		Height: t.Cell.Height,
		Glyphs: make([]glyphLine, len(t.Glyphs)),
	}
	for i, g := range t.Glyphs {
		tf.Glyphs[i] = glyphLine{Rune: string(g.Rune), Mask: g.Bitmap.String()}
	}
	data, err := yaml.Marshal(&tf)
	if err != nil {
		return fmt.Errorf("failed to encode table: %w", err)
	}
	_, err = w.Write(data)
	return err
}
