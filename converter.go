package spyglass

import (
	"image"
	"io"
	"runtime"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// BlockRune is one rendered cell: a glyph drawn in FG over BG.
type BlockRune struct {
	Rune     rune
	Polarity Polarity
	FG       RGB
	BG       RGB
}

// Converter turns images into grids of BlockRune using a catalog. The
// catalog is shared read-only; a Converter may be used from several
// goroutines.
type Converter struct {
	// Workers is the number of goroutines converting rows. Values below 2
	// convert on the calling goroutine.
	Workers int

	catalog *Catalog
	cache   *MatchCache
	log     logrus.FieldLogger
}

// ConverterOption is a functional option for configuring a Converter.
type ConverterOption func(*Converter)

// NewConverter creates a Converter over cat. By default it runs on one
// goroutine without a match cache and logs nothing.
func NewConverter(cat *Catalog, opts ...ConverterOption) *Converter {
	discard := logrus.New()
	discard.SetOutput(io.Discard)
	c := &Converter{
		Workers: 1,
		catalog: cat,
		log:     discard,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithWorkers sets the number of row workers. Zero or less means one per
// CPU.
func WithWorkers(n int) ConverterOption {
	return func(c *Converter) {
		if n <= 0 {
			n = runtime.NumCPU()
		}
		c.Workers = n
	}
}

// WithCache enables memoization of glyph matches.
func WithCache(enabled bool) ConverterOption {
	return func(c *Converter) {
		if enabled {
			c.cache = NewMatchCache(c.catalog)
		} else {
			c.cache = nil
		}
	}
}

// WithLogger sets the logger used for progress and statistics.
func WithLogger(l logrus.FieldLogger) ConverterOption {
	return func(c *Converter) {
		c.log = l
	}
}

// Catalog returns the catalog the converter matches against.
func (c *Converter) Catalog() *Catalog { return c.catalog }

// CacheStats returns match cache statistics, zero when caching is off.
func (c *Converter) CacheStats() CacheStats {
	if c.cache == nil {
		return CacheStats{}
	}
	return c.cache.Stats()
}

func (c *Converter) bestFit(mask Bitmap) Fit {
	if c.cache != nil {
		return c.cache.BestFit(mask)
	}
	return BestFit(mask, c.catalog)
}

// ConvertBlock binarizes b, picks the closest glyph and colors it. The
// foreground is the mean color under the glyph's ink, the background the
// mean of the remaining pixels.
func (c *Converter) ConvertBlock(b Block) BlockRune {
	fit := c.bestFit(Threshold(b))
	fg, bg := SplitColors(b, fit.Entry.Bitmap, Direct)
	return BlockRune{Rune: fit.Entry.Rune, Polarity: fit.Polarity, FG: fg, BG: bg}
}

// Grid returns how many whole cells fit across and down img. Partial cells
// at the right and bottom edges are dropped.
func Grid(img image.Image, cell CellSize) (cols, rows int) {
	b := img.Bounds()
	return b.Dx() / cell.Width, b.Dy() / cell.Height
}

// ConvertRow converts row r of the cell grid.
func (c *Converter) ConvertRow(img image.Image, r int) []BlockRune {
	cell := c.catalog.Cell()
	cols, _ := Grid(img, cell)
	out := make([]BlockRune, cols)
	for col := 0; col < cols; col++ {
		out[col] = c.ConvertBlock(BlockAt(img, cell, col, r))
	}
	return out
}

// Convert converts img row by row, left to right. The result is the same
// whatever the worker count.
func (c *Converter) Convert(img image.Image) [][]BlockRune {
	begin := time.Now()
	cols, rows := Grid(img, c.catalog.Cell())
	out := make([][]BlockRune, rows)

	workers := max(min(c.Workers, rows), 1)
	if workers < 2 {
		for r := range out {
			out[r] = c.ConvertRow(img, r)
		}
	} else {
		c.convertParallel(img, out, workers)
	}

	c.log.WithFields(logrus.Fields{
		"cols":    cols,
		"rows":    rows,
		"workers": workers,
		"elapsed": time.Since(begin),
	}).Debug("converted image")
	if c.cache != nil {
		s := c.cache.Stats()
		c.log.WithFields(logrus.Fields{
			"hits":    s.Hits,
			"misses":  s.Misses,
			"entries": s.Entries,
		}).Debugf("match cache hit rate %.1f%%", s.HitRate()*100)
	}
	return out
}

// convertParallel fans rows out to workers. Each row is written to its own
// slot so no ordering is needed when collecting.
func (c *Converter) convertParallel(img image.Image, out [][]BlockRune, workers int) {
	in := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for r := range in {
				out[r] = c.ConvertRow(img, r)
			}
		}()
	}
	for r := range out {
		in <- r
	}
	close(in)
	wg.Wait()
}
