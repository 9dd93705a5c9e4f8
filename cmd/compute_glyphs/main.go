// Command compute_glyphs rasterizes a font into a glyph catalog file that
// spyglass can load with --glyphs, skipping font parsing at startup.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"github.com/wbrown/spyglass"
)

func main() {
	app := cli.NewApp()
	app.Name = "compute_glyphs"
	app.Usage = "precompute glyph bitmaps for a font"
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:     "font",
			Required: true,
			Usage:    "path to the input font `FILE`",
		},
		&cli.StringFlag{
			Name:  "output",
			Usage: "output `FILE`; .yaml writes an editable table (default: font name + .glyphs)",
		},
		&cli.StringFlag{
			Name:  "chars",
			Value: spyglass.DefaultChars,
			Usage: "characters to rasterize",
		},
		&cli.StringFlag{
			Name:  "cell",
			Value: spyglass.Cell4x8.String(),
			Usage: "cell size in pixels, `WxH`",
		},
		&cli.Float64Flag{
			Name:  "point-size",
			Usage: "font size in points, defaults to the cell height",
		},
		&cli.BoolFlag{
			Name:  "opentype",
			Usage: "use the sfnt parser instead of freetype",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "print every glyph bitmap",
		},
	}
	app.Action = compute

	if err := app.Run(os.Args); err != nil {
		logrus.Fatal(err)
	}
}

// outputPath derives "fontdata/<font>.glyphs" style names from the font.
func outputPath(fontPath string) string {
	base := strings.TrimSuffix(filepath.Base(fontPath), filepath.Ext(fontPath))
	return strings.ToLower(strings.ReplaceAll(base, " ", "_")) + ".glyphs"
}

// writeTable writes t as YAML to path.
func writeTable(path string, t spyglass.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := spyglass.WriteTable(f, t); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func compute(c *cli.Context) error {
	log := logrus.New()
	log.SetOutput(c.App.ErrWriter)
	if c.Bool("verbose") {
		log.SetLevel(logrus.DebugLevel)
	}

	cell, err := spyglass.ParseCellSize(c.String("cell"))
	if err != nil {
		return cli.Exit(err, 1)
	}
	fontPath := c.String("font")
	data, err := os.ReadFile(fontPath)
	if err != nil {
		return cli.Exit(err, 1)
	}

	opts := []spyglass.FontOption{spyglass.WithCatalogName(filepath.Base(fontPath))}
	if size := c.Float64("point-size"); size > 0 {
		opts = append(opts, spyglass.WithPointSize(size))
	}
	build := spyglass.BuildFromFont
	if c.Bool("opentype") {
		build = spyglass.BuildFromOpenType
	}

	log.WithField("font", fontPath).Info("computing glyphs")
	cat, err := build(data, []rune(c.String("chars")), cell, opts...)
	if err != nil {
		return cli.Exit(err, 1)
	}
	for _, e := range cat.Entries() {
		log.Debugf("%q %s\n%s", e.Rune, e.Bitmap, cell.Format(e.Bitmap))
	}

	out := c.String("output")
	if out == "" {
		out = outputPath(fontPath)
	}
	switch strings.ToLower(filepath.Ext(out)) {
	case ".yaml", ".yml":
		if err := writeTable(out, cat.Table()); err != nil {
			return cli.Exit(err, 1)
		}
	default:
		if err := spyglass.SaveCatalog(cat, out); err != nil {
			return cli.Exit(err, 1)
		}
	}

	fields := logrus.Fields{"glyphs": cat.Len(), "cell": cell, "file": out}
	if info, err := os.Stat(out); err == nil {
		fields["bytes"] = info.Size()
	}
	log.WithFields(fields).Info("saved glyph data")
	return nil
}
