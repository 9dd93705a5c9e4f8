package spyglass

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustBuild(t *testing.T, tbl Table) *Catalog {
	t.Helper()
	cat, err := BuildStatic(tbl)
	require.NoError(t, err)
	return cat
}

func TestBuildStaticKeepsOrder(t *testing.T) {
	cat := mustBuild(t, BlockElements4x8)
	assert.Equal(t, Cell4x8, cat.Cell())
	assert.Equal(t, []rune(DefaultChars), cat.Runes())
	assert.Equal(t, '▄', cat.Entry(3).Rune)

	b, ok := cat.Lookup('▄')
	require.True(t, ok)
	assert.Equal(t, Bitmap{Lo: 0x0000FFFF}, b)

	_, ok = cat.Lookup('x')
	assert.False(t, ok)
}

func TestBuildStaticIsDeterministic(t *testing.T) {
	a := mustBuild(t, QuadrantElements4x8)
	b := mustBuild(t, QuadrantElements4x8)
	assert.Equal(t, a.Entries(), b.Entries())
}

// TestEntriesReturnsCopy guards the catalog against mutation by callers.
func TestEntriesReturnsCopy(t *testing.T) {
	cat := mustBuild(t, BlockElements4x8)
	entries := cat.Entries()
	entries[0].Bitmap = Bitmap{}
	entries[0].Rune = 'x'

	assert.Equal(t, '▁', cat.Entry(0).Rune)
	assert.Equal(t, Bitmap{Lo: 0xF}, cat.Entry(0).Bitmap)
}

func TestBuildStaticErrors(t *testing.T) {
	tests := []struct {
		name string
		tbl  Table
		err  error
	}{
		{"empty", Table{Cell: Cell4x8}, ErrEmptyCatalog},
		{"bad cell", Table{Cell: CellSize{Width: 12, Height: 12}, Glyphs: []GlyphEntry{{'a', Bitmap{}}}}, ErrInvalidCell},
		{"duplicate", Table{Cell: Cell4x8, Glyphs: []GlyphEntry{{'a', Bitmap{}}, {'a', Bitmap{Lo: 1}}}}, ErrDuplicateGlyph},
		{"overflow", Table{Cell: Cell4x8, Glyphs: []GlyphEntry{{'a', Bitmap{Lo: 1 << 32}}}}, ErrMaskOverflow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat, err := BuildStatic(tt.tbl)
			assert.ErrorIs(t, err, tt.err)
			assert.Nil(t, cat)
		})
	}
}

// TestBuiltinTablesAgree checks that the 8x16 table is the 4x8 table with
// every pixel doubled in both directions.
func TestBuiltinTablesAgree(t *testing.T) {
	small := mustBuild(t, BlockElements4x8)
	big := mustBuild(t, BlockElements8x16)
	require.Equal(t, small.Runes(), big.Runes())

	for i := 0; i < small.Len(); i++ {
		s, b := small.Entry(i).Bitmap, big.Entry(i).Bitmap
		for y := 0; y < Cell8x16.Height; y++ {
			for x := 0; x < Cell8x16.Width; x++ {
				want := Cell4x8.Get(s, Cell4x8.Index(x/2, y/2))
				got := Cell8x16.Get(b, Cell8x16.Index(x, y))
				assert.Equal(t, want, got, "%q at %d,%d", small.Entry(i).Rune, x, y)
			}
		}
	}
}

func TestBuiltinTablesValid(t *testing.T) {
	for name, tbl := range Tables {
		_, err := BuildStatic(tbl)
		assert.NoError(t, err, name)
		assert.Equal(t, name, tbl.Name)
	}
}

func TestQuadrantTableSkipsComplements(t *testing.T) {
	cat := mustBuild(t, QuadrantElements4x8)
	entries := cat.Entries()
	for i := range entries {
		for j := i + 1; j < len(entries); j++ {
			assert.NotEqual(t, Cell4x8.Complement(entries[i].Bitmap), entries[j].Bitmap,
				"%q is the complement of %q", entries[j].Rune, entries[i].Rune)
		}
	}
}

const yamlTable = `name: halves
width: 4
height: 8
glyphs:
  - rune: "▄"
    mask: "0x0000ffff"
  - rune: "▌"
    mask: "0xcccccccc"
`

func TestLoadTable(t *testing.T) {
	tbl, err := LoadTable(strings.NewReader(yamlTable))
	require.NoError(t, err)
	assert.Equal(t, "halves", tbl.Name)
	assert.Equal(t, Cell4x8, tbl.Cell)
	assert.Equal(t, []GlyphEntry{
		{'▄', Bitmap{Lo: 0x0000FFFF}},
		{'▌', Bitmap{Lo: 0xCCCCCCCC}},
	}, tbl.Glyphs)

	_, err = BuildStatic(tbl)
	assert.NoError(t, err)
}

func TestLoadTableErrors(t *testing.T) {
	for name, doc := range map[string]string{
		"two runes":     "width: 4\nheight: 8\nglyphs:\n  - rune: \"ab\"\n    mask: \"0x0\"\n",
		"bad mask":      "width: 4\nheight: 8\nglyphs:\n  - rune: \"a\"\n    mask: \"0xq\"\n",
		"unknown field": "width: 4\nheight: 8\ncolor: red\n",
		"not yaml":      "{{{",
	} {
		_, err := LoadTable(strings.NewReader(doc))
		assert.Error(t, err, name)
	}
}

func TestWriteTableRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, BlockElements8x16))

	tbl, err := LoadTable(&buf)
	require.NoError(t, err)
	assert.Equal(t, BlockElements8x16, tbl)
}

func TestCatalogPersistence(t *testing.T) {
	cat := mustBuild(t, QuadrantElements4x8)
	path := filepath.Join(t.TempDir(), "quadrants.glyphs")
	require.NoError(t, SaveCatalog(cat, path))

	loaded, err := LoadCatalog(path)
	require.NoError(t, err)
	assert.Equal(t, cat.Name(), loaded.Name())
	assert.Equal(t, cat.Cell(), loaded.Cell())
	assert.Equal(t, cat.Entries(), loaded.Entries())
}

func TestReadCatalogRejectsGarbage(t *testing.T) {
	_, err := ReadCatalog(strings.NewReader("definitely not gzip"))
	assert.Error(t, err)
}
