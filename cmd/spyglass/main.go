package main

import (
	"errors"
	"io/fs"
	"os"
	"runtime"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"github.com/wbrown/spyglass"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func main() {
	// Settings in .env are picked up as SPYGLASS_* variables. A missing
	// file is not an error.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logrus.WithError(err).Warn("ignoring .env")
	}

	if err := newApp().Run(os.Args); err != nil {
		logrus.Fatal(err)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "spyglass"
	app.Usage = "draw images in the terminal with block glyphs"
	app.Version = "1.0.0"
	app.ArgsUsage = "[IMAGE]"
	app.Flags = renderFlags()
	app.Action = render
	app.Commands = []*cli.Command{
		{
			Name:      "tables",
			Usage:     "List built-in glyph tables, or print one as YAML",
			ArgsUsage: "[NAME]",
			Action:    tables,
		},
	}
	return app
}

func renderFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "font",
			EnvVars: []string{"SPYGLASS_FONT"},
			Usage:   "rasterize glyphs from this TrueType/OpenType `FILE`",
		},
		&cli.BoolFlag{
			Name:    "opentype",
			EnvVars: []string{"SPYGLASS_OPENTYPE"},
			Usage:   "parse --font with the sfnt parser instead of freetype",
		},
		&cli.StringFlag{
			Name:    "chars",
			EnvVars: []string{"SPYGLASS_CHARS"},
			Value:   spyglass.DefaultChars,
			Usage:   "candidate characters when rasterizing a font",
		},
		&cli.Float64Flag{
			Name:    "point-size",
			EnvVars: []string{"SPYGLASS_POINT_SIZE"},
			Usage:   "font size in points, defaults to the cell height",
		},
		&cli.StringFlag{
			Name:    "glyphs",
			EnvVars: []string{"SPYGLASS_GLYPHS"},
			Usage:   "load a precomputed glyph `FILE` from compute_glyphs",
		},
		&cli.StringFlag{
			Name:    "table",
			EnvVars: []string{"SPYGLASS_TABLE"},
			Usage:   "built-in table name or YAML table `FILE` (default: block elements for --cell)",
		},
		&cli.StringFlag{
			Name:    "cell",
			EnvVars: []string{"SPYGLASS_CELL"},
			Value:   spyglass.Cell4x8.String(),
			Usage:   "cell size in pixels, `WxH`",
		},
		&cli.StringFlag{
			Name:    "size",
			Aliases: []string{"s"},
			EnvVars: []string{"SPYGLASS_SIZE"},
			Usage:   "output size in characters, `COLSxROWS` (default: terminal size)",
		},
		&cli.IntFlag{
			Name:    "width",
			Aliases: []string{"w"},
			EnvVars: []string{"SPYGLASS_WIDTH"},
			Usage:   "output width in characters; rows follow the aspect ratio, overrides --size",
		},
		&cli.StringFlag{
			Name:    "interpolation",
			EnvVars: []string{"SPYGLASS_INTERPOLATION"},
			Value:   "nearest",
			Usage:   "resize filter: nearest, linear or area",
		},
		&cli.Float64Flag{
			Name:  "gamma",
			Usage: "gamma correction, above 1 brightens",
		},
		&cli.Float64Flag{
			Name:  "brightness",
			Usage: "brightness adjustment in percent",
		},
		&cli.Float64Flag{
			Name:  "contrast",
			Usage: "contrast adjustment in percent",
		},
		&cli.Float64Flag{
			Name:  "sharpen",
			Usage: "sharpen with this gaussian sigma",
		},
		&cli.BoolFlag{
			Name:  "grayscale",
			Usage: "drop color before matching",
		},
		&cli.BoolFlag{
			Name:  "invert",
			Usage: "invert the image",
		},
		&cli.IntFlag{
			Name:    "workers",
			Aliases: []string{"j"},
			EnvVars: []string{"SPYGLASS_WORKERS"},
			Value:   runtime.NumCPU(),
			Usage:   "rows converted in parallel",
		},
		&cli.BoolFlag{
			Name:    "cache",
			EnvVars: []string{"SPYGLASS_CACHE"},
			Value:   true,
			Usage:   "memoize glyph matches",
		},
		&cli.StringFlag{
			Name:    "color",
			EnvVars: []string{"SPYGLASS_COLOR"},
			Value:   "auto",
			Usage:   "color mode: auto, truecolor, 256, 16 or none",
		},
		&cli.BoolFlag{
			Name:  "compress",
			Usage: "share escape sequences between equal neighbouring cells",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "write to `FILE`; a .png/.jpg/.gif extension writes a preview image",
		},
		&cli.IntFlag{
			Name:  "scale",
			Value: 2,
			Usage: "pixel scale of preview images",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}
}

func newLogger(c *cli.Context) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(c.App.ErrWriter)
	logger.SetLevel(logrus.WarnLevel)
	if c.Bool("verbose") {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}
