package main

import (
	"bytes"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
	"github.com/wbrown/spyglass"
	"github.com/wbrown/spyglass/imageutil"
	"github.com/wbrown/spyglass/internal/termsize"
)

func TestParseSize(t *testing.T) {
	s, err := parseSize("120x40")
	require.NoError(t, err)
	assert.Equal(t, termsize.Size{Cols: 120, Rows: 40}, s)

	for _, bad := range []string{"120", "x40", "0x10", "ax b"} {
		_, err := parseSize(bad)
		assert.Error(t, err, bad)
	}
}

func TestDefaultTable(t *testing.T) {
	tbl, err := defaultTable(spyglass.Cell8x16)
	require.NoError(t, err)
	assert.Equal(t, spyglass.BlockElements8x16.Name, tbl.Name)

	_, err = defaultTable(spyglass.CellSize{Width: 6, Height: 12})
	assert.Error(t, err)
}

func TestCatalogSourceLoad(t *testing.T) {
	log, _ := test.NewNullLogger()
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "halves.yaml")
	f, err := os.Create(yamlPath)
	require.NoError(t, err)
	require.NoError(t, spyglass.WriteTable(f, spyglass.Table{
		Name: "halves",
		Cell: spyglass.Cell4x8,
		Glyphs: []spyglass.GlyphEntry{
			{Rune: '▄', Bitmap: spyglass.Bitmap{Lo: 0x0000ffff}},
			{Rune: '▌', Bitmap: spyglass.Bitmap{Lo: 0xcccccccc}},
		},
	}))
	require.NoError(t, f.Close())

	quadrants, err := spyglass.BuildStatic(spyglass.QuadrantElements4x8)
	require.NoError(t, err)
	glyphPath := filepath.Join(dir, "q.glyphs")
	require.NoError(t, spyglass.SaveCatalog(quadrants, glyphPath))

	tests := []struct {
		name  string
		src   catalogSource
		runes string
	}{
		{"default 4x8", catalogSource{cell: spyglass.Cell4x8}, spyglass.DefaultChars},
		{"built-in table", catalogSource{cell: spyglass.Cell4x8, table: "quadrant-elements-4x8"}, " " + spyglass.DefaultChars + "▚"},
		{"yaml table", catalogSource{cell: spyglass.Cell4x8, table: yamlPath}, "▄▌"},
		{"glyph file wins over table", catalogSource{cell: spyglass.Cell4x8, glyphs: glyphPath, table: yamlPath}, " " + spyglass.DefaultChars + "▚"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat, err := tt.src.load(log)
			require.NoError(t, err)
			assert.Equal(t, []rune(tt.runes), cat.Runes())
		})
	}

	_, err = catalogSource{cell: spyglass.Cell4x8, table: filepath.Join(dir, "missing.yaml")}.load(log)
	assert.Error(t, err)
	_, err = catalogSource{cell: spyglass.Cell4x8, font: filepath.Join(dir, "missing.ttf")}.load(log)
	assert.Error(t, err)
}

func TestIsImagePath(t *testing.T) {
	assert.True(t, isImagePath("out/preview.PNG"))
	assert.True(t, isImagePath("a.jpeg"))
	assert.False(t, isImagePath("art.ans"))
	assert.False(t, isImagePath("noext"))
}

// writeHalves saves an 8x8 PNG whose left cell is ▌ and right cell ▄.
func writeHalves(t *testing.T, dir string) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			c := color.NRGBA{20, 40, 60, 255}
			if x < 2 || (x >= 4 && y >= 4) {
				c = color.NRGBA{220, 200, 180, 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	path := filepath.Join(dir, "halves.png")
	require.NoError(t, imageutil.SaveImage(img, path))
	return path
}

// run executes the command line and returns what it wrote to stdout.
func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = io.Discard
	app.ExitErrHandler = func(*cli.Context, error) {}
	require.NoError(t, app.Run(append([]string{"spyglass"}, args...)))
	return out.String()
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	in := writeHalves(t, dir)

	assert.Equal(t, "▌▄\n", run(t, "--size", "2x1", "--color", "none", in))

	ans := filepath.Join(dir, "out.ans")
	assert.Empty(t, run(t, "--size", "2x1", "--color", "none", "-o", ans, in))
	data, err := os.ReadFile(ans)
	require.NoError(t, err)
	assert.Equal(t, "▌▄\n", string(data))

	png := filepath.Join(dir, "preview.png")
	run(t, "--size", "2x1", "-o", png, in)
	preview, err := imageutil.LoadImage(png)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(16, 16), preview.Bounds().Size())
	assert.Equal(t, color.NRGBA{220, 200, 180, 255}, preview.NRGBAAt(0, 0))
}

func TestRenderCommandWidth(t *testing.T) {
	in := writeHalves(t, t.TempDir())
	lines := strings.Split(strings.TrimSuffix(run(t, "--width", "4", "--color", "none", in), "\n"), "\n")
	require.Len(t, lines, 2)
	for _, l := range lines {
		assert.Equal(t, 4, len([]rune(l)))
	}
}

func TestRenderCommandErrors(t *testing.T) {
	in := writeHalves(t, t.TempDir())
	for _, args := range [][]string{
		{"--size", "2", in},
		{"--color", "sepia", in},
		{"--interpolation", "lanczos9", in},
		{"--size", "2x1", filepath.Join(t.TempDir(), "missing.png")},
	} {
		app := newApp()
		app.Writer = io.Discard
		app.ErrWriter = io.Discard
		app.ExitErrHandler = func(*cli.Context, error) {}
		assert.Error(t, app.Run(append([]string{"spyglass"}, args...)), "%v", args)
	}
}
