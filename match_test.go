package spyglass

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestBestFitExactMatch checks that every catalog bitmap finds itself at
// distance zero.
func TestBestFitExactMatch(t *testing.T) {
	for _, tbl := range []Table{BlockElements4x8, BlockElements8x16, QuadrantElements4x8} {
		cat := mustBuild(t, tbl)
		for i, e := range cat.Entries() {
			fit := BestFit(e.Bitmap, cat)
			assert.Equal(t, e.Rune, fit.Entry.Rune, "%s %q", tbl.Name, e.Rune)
			assert.Equal(t, i, fit.Index)
			assert.Equal(t, 0, fit.Distance)
			assert.Equal(t, Direct, fit.Polarity)
		}
	}
}

// TestBestFitPolarityInvariance checks that a mask and its complement pick
// the same glyph, differing only in polarity.
func TestBestFitPolarityInvariance(t *testing.T) {
	cat := mustBuild(t, BlockElements4x8)
	masks := []Bitmap{
		{Lo: 0x0000FFFF}, {Lo: 0x7FFF0000}, {Lo: 0x12345678}, {Lo: 0xCCCC3333}, {Lo: 0x80000000},
	}
	for _, m := range masks {
		direct := BestFit(m, cat)
		inverted := BestFit(Cell4x8.Complement(m), cat)
		assert.Equal(t, direct.Entry, inverted.Entry, "mask %s", m)
		assert.Equal(t, direct.Distance, inverted.Distance, "mask %s", m)
		e := direct.Entry.Bitmap
		if Distance(e, m) != Distance(e, Cell4x8.Complement(m)) {
			assert.NotEqual(t, direct.Polarity, inverted.Polarity, "mask %s", m)
		}
	}
}

func TestBestFitInverted(t *testing.T) {
	cat := mustBuild(t, BlockElements4x8)
	// Upper half is the complement of ▄.
	fit := BestFit(Bitmap{Lo: 0xFFFF0000}, cat)
	assert.Equal(t, '▄', fit.Entry.Rune)
	assert.Equal(t, Inverted, fit.Polarity)
	assert.Equal(t, 0, fit.Distance)

	// Dark top half with one light pixel in the corner.
	fit = BestFit(Bitmap{Lo: 0x7FFF0000}, cat)
	assert.Equal(t, '▄', fit.Entry.Rune)
	assert.Equal(t, Inverted, fit.Polarity)
	assert.Equal(t, 1, fit.Distance)
}

// TestBestFitTiesGoToFirstEntry uses an empty mask, which is four pixels
// away from both ▁ (direct) and ▇ (inverted).
func TestBestFitTiesGoToFirstEntry(t *testing.T) {
	cat := mustBuild(t, BlockElements4x8)
	fit := BestFit(Bitmap{}, cat)
	assert.Equal(t, '▁', fit.Entry.Rune)
	assert.Equal(t, 4, fit.Distance)

	swapped := mustBuild(t, Table{Cell: Cell4x8, Glyphs: []GlyphEntry{
		{'▇', Bitmap{Lo: 0x0FFFFFFF}},
		{'▁', Bitmap{Lo: 0x0000000F}},
	}})
	fit = BestFit(Bitmap{}, swapped)
	assert.Equal(t, '▇', fit.Entry.Rune)
	assert.Equal(t, Inverted, fit.Polarity)
}

func TestBestFitPrefersCloserEntry(t *testing.T) {
	cat := mustBuild(t, BlockElements4x8)
	// ▌ with one pixel flipped stays ▌.
	fit := BestFit(Bitmap{Lo: 0xCCCCCCC8}, cat)
	assert.Equal(t, '▌', fit.Entry.Rune)
	assert.Equal(t, 1, fit.Distance)
}

func TestPolarityString(t *testing.T) {
	assert.Equal(t, "direct", Direct.String())
	assert.Equal(t, "inverted", Inverted.String())
}

func TestMatchCache(t *testing.T) {
	cat := mustBuild(t, BlockElements4x8)
	cache := NewMatchCache(cat)

	m := Bitmap{Lo: 0x7FFF0000}
	assert.Equal(t, BestFit(m, cat), cache.BestFit(m))
	assert.Equal(t, BestFit(m, cat), cache.BestFit(m))
	cache.BestFit(Bitmap{})

	s := cache.Stats()
	assert.Equal(t, CacheStats{Hits: 1, Misses: 2, Entries: 2}, s)
	assert.InDelta(t, 1.0/3.0, s.HitRate(), 1e-9)

	cache.Reset()
	assert.Equal(t, CacheStats{}, cache.Stats())
	assert.Equal(t, 0.0, cache.Stats().HitRate())
}

func TestMatchCacheConcurrent(t *testing.T) {
	cat := mustBuild(t, BlockElements4x8)
	cache := NewMatchCache(cat)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 256; i++ {
				m := Bitmap{Lo: uint64(i) * 0x01010101}
				assert.Equal(t, BestFit(m, cat), cache.BestFit(m))
			}
		}()
	}
	wg.Wait()

	s := cache.Stats()
	assert.Equal(t, 8*256, s.Hits+s.Misses)
	assert.Equal(t, 256, s.Entries)
}
