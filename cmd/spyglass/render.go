package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"github.com/wbrown/spyglass"
	"github.com/wbrown/spyglass/imageutil"
	"github.com/wbrown/spyglass/internal/termsize"
)

// catalogSource is where the glyph catalog comes from, in precedence
// order: a font, a precomputed glyph file, a table.
type catalogSource struct {
	font      string
	opentype  bool
	chars     string
	pointSize float64
	glyphs    string
	table     string
	cell      spyglass.CellSize
}

func sourceFromContext(c *cli.Context) (catalogSource, error) {
	cell, err := spyglass.ParseCellSize(c.String("cell"))
	if err != nil {
		return catalogSource{}, err
	}
	return catalogSource{
		font:      c.String("font"),
		opentype:  c.Bool("opentype"),
		chars:     c.String("chars"),
		pointSize: c.Float64("point-size"),
		glyphs:    c.String("glyphs"),
		table:     c.String("table"),
		cell:      cell,
	}, nil
}

// defaultTable picks the block element table drawn for cell.
func defaultTable(cell spyglass.CellSize) (spyglass.Table, error) {
	for _, t := range []spyglass.Table{spyglass.BlockElements4x8, spyglass.BlockElements8x16} {
		if t.Cell == cell {
			return t, nil
		}
	}
	return spyglass.Table{}, fmt.Errorf("no built-in table for %s cells, use --font or --table", cell)
}

func (s catalogSource) load(log logrus.FieldLogger) (*spyglass.Catalog, error) {
	switch {
	case s.font != "":
		data, err := os.ReadFile(s.font)
		if err != nil {
			return nil, fmt.Errorf("failed to read font: %w", err)
		}
		opts := []spyglass.FontOption{spyglass.WithCatalogName(filepath.Base(s.font))}
		if s.pointSize > 0 {
			opts = append(opts, spyglass.WithPointSize(s.pointSize))
		}
		build := spyglass.BuildFromFont
		if s.opentype {
			build = spyglass.BuildFromOpenType
		}
		cat, err := build(data, []rune(s.chars), s.cell, opts...)
		if err != nil {
			return nil, err
		}
		log.WithFields(logrus.Fields{"font": s.font, "glyphs": cat.Len(), "cell": cat.Cell()}).
			Debug("rasterized font")
		return cat, nil

	case s.glyphs != "":
		cat, err := spyglass.LoadCatalog(s.glyphs)
		if err != nil {
			return nil, err
		}
		log.WithFields(logrus.Fields{"file": s.glyphs, "glyphs": cat.Len(), "cell": cat.Cell()}).
			Debug("loaded glyph file")
		return cat, nil

	case s.table != "":
		t, ok := spyglass.Tables[s.table]
		if !ok {
			f, err := os.Open(s.table)
			if err != nil {
				return nil, fmt.Errorf("no built-in table %q and failed to open file: %w", s.table, err)
			}
			defer f.Close()
			if t, err = spyglass.LoadTable(f); err != nil {
				return nil, err
			}
		}
		log.WithFields(logrus.Fields{"table": t.Name, "glyphs": len(t.Glyphs)}).Debug("using table")
		return spyglass.BuildStatic(t)
	}

	t, err := defaultTable(s.cell)
	if err != nil {
		return nil, err
	}
	return spyglass.BuildStatic(t)
}

// parseSize parses "COLSxROWS".
func parseSize(s string) (termsize.Size, error) {
	c, r, ok := strings.Cut(strings.ToLower(s), "x")
	if ok {
		cols, err1 := strconv.Atoi(c)
		rows, err2 := strconv.Atoi(r)
		if err1 == nil && err2 == nil && cols > 0 && rows > 0 {
			return termsize.Size{Cols: cols, Rows: rows}, nil
		}
	}
	return termsize.Size{}, fmt.Errorf("invalid size %q, want COLSxROWS", s)
}

func readImage(c *cli.Context) (*imageutil.NRGBAImage, error) {
	if c.NArg() > 0 && c.Args().First() != "-" {
		return imageutil.LoadImage(c.Args().First())
	}
	img, _, err := imageutil.Decode(os.Stdin)
	return img, err
}

func isImagePath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".gif":
		return true
	}
	return false
}

func render(c *cli.Context) error {
	log := newLogger(c)

	src, err := sourceFromContext(c)
	if err != nil {
		return cli.Exit(err, 1)
	}
	cat, err := src.load(log)
	if err != nil {
		return cli.Exit(err, 1)
	}

	size := termsize.Available()
	if s := c.String("size"); s != "" {
		if size, err = parseSize(s); err != nil {
			return cli.Exit(err, 1)
		}
	}
	interp, ok := imageutil.ParseInterpolation(c.String("interpolation"))
	if !ok {
		return cli.Exit(fmt.Sprintf("unknown interpolation %q", c.String("interpolation")), 1)
	}
	profile, ok := spyglass.ParseProfile(c.String("color"))
	if !ok {
		return cli.Exit(fmt.Sprintf("unknown color mode %q", c.String("color")), 1)
	}

	img, err := readImage(c)
	if err != nil {
		return cli.Exit(err, 1)
	}
	cell := cat.Cell()
	if w := c.Int("width"); w > 0 {
		img = imageutil.ResizeToWidth(img, w*cell.Width, interp)
	} else {
		img = imageutil.Fit(img, size.Cols*cell.Width, size.Rows*cell.Height, interp)
	}
	img = imageutil.Adjust(img, imageutil.Adjustments{
		Gamma:      c.Float64("gamma"),
		Brightness: c.Float64("brightness"),
		Contrast:   c.Float64("contrast"),
		Sharpen:    c.Float64("sharpen"),
		Grayscale:  c.Bool("grayscale"),
		Invert:     c.Bool("invert"),
	})
	log.WithFields(logrus.Fields{
		"width":  img.Width(),
		"height": img.Height(),
		"cols":   size.Cols,
		"rows":   size.Rows,
	}).Debug("resized image")

	conv := spyglass.NewConverter(cat,
		spyglass.WithWorkers(c.Int("workers")),
		spyglass.WithCache(c.Bool("cache")),
		spyglass.WithLogger(log),
	)
	rows := conv.Convert(img)

	out := c.String("output")
	if out != "" && isImagePath(out) {
		if err := imageutil.SaveImage(spyglass.RenderImage(rows, cat, c.Int("scale")), out); err != nil {
			return cli.Exit(err, 1)
		}
		log.WithField("file", out).Info("wrote preview")
		return nil
	}

	encode := func(w io.Writer) error {
		enc := spyglass.NewEncoder(w, spyglass.WithProfile(profile), spyglass.WithCompression(c.Bool("compress")))
		return enc.Encode(rows)
	}
	if out == "" {
		if err := encode(c.App.Writer); err != nil {
			return cli.Exit(err, 1)
		}
		return nil
	}
	if err := writeFile(out, encode); err != nil {
		return cli.Exit(err, 1)
	}
	log.WithField("file", out).Info("wrote output")
	return nil
}

// writeFile creates path and hands it to write. The file's close error is
// returned when write succeeds.
func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func tables(c *cli.Context) error {
	if c.NArg() == 0 {
		names := make([]string, 0, len(spyglass.Tables))
		for name := range spyglass.Tables {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			t := spyglass.Tables[name]
			fmt.Fprintf(c.App.Writer, "%-24s %-6s %d glyphs\n", name, t.Cell, len(t.Glyphs))
		}
		return nil
	}
	t, ok := spyglass.Tables[c.Args().First()]
	if !ok {
		return cli.Exit(fmt.Sprintf("no built-in table %q", c.Args().First()), 1)
	}
	return spyglass.WriteTable(c.App.Writer, t)
}
