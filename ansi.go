package spyglass

import (
	"bufio"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

// Encoder writes converted cells as styled terminal text.
type Encoder struct {
	w        io.Writer
	profile  termenv.Profile
	compress bool
}

// EncoderOption is a functional option for configuring an Encoder.
type EncoderOption func(*Encoder)

// WithProfile selects the color capability of the output. termenv.Ascii
// writes bare characters.
func WithProfile(p termenv.Profile) EncoderOption {
	return func(e *Encoder) {
		e.profile = p
	}
}

// WithCompression merges runs of cells sharing both colors into one escape
// sequence. The rendered result is unchanged; the output is shorter.
func WithCompression(enabled bool) EncoderOption {
	return func(e *Encoder) {
		e.compress = enabled
	}
}

// NewEncoder creates an Encoder writing 24-bit color to w.
func NewEncoder(w io.Writer, opts ...EncoderOption) *Encoder {
	e := &Encoder{w: w, profile: termenv.TrueColor}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Encoder) style(fg, bg RGB, text string) string {
	return e.profile.String(text).
		Foreground(e.profile.Color(fg.Hex())).
		Background(e.profile.Color(bg.Hex())).
		String()
}

// Cell returns one cell as styled text.
func (e *Encoder) Cell(b BlockRune) string {
	return e.style(b.FG, b.BG, string(b.Rune))
}

// Row returns one row of cells without the trailing newline.
func (e *Encoder) Row(row []BlockRune) string {
	var sb strings.Builder
	if !e.compress {
		for _, b := range row {
			sb.WriteString(e.Cell(b))
		}
		return sb.String()
	}
	for i := 0; i < len(row); {
		j := i
		var run strings.Builder
		for j < len(row) && row[j].FG == row[i].FG && row[j].BG == row[i].BG {
			run.WriteRune(row[j].Rune)
			j++
		}
		sb.WriteString(e.style(row[i].FG, row[i].BG, run.String()))
		i = j
	}
	return sb.String()
}

// Encode writes rows top to bottom, each terminated by a newline.
func (e *Encoder) Encode(rows [][]BlockRune) error {
	bw := bufio.NewWriter(e.w)
	for _, row := range rows {
		if _, err := bw.WriteString(e.Row(row)); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ParseProfile maps a color mode name to a termenv profile. "auto" asks the
// terminal attached to stdout.
func ParseProfile(name string) (termenv.Profile, bool) {
	switch strings.ToLower(name) {
	case "auto", "":
		return termenv.EnvColorProfile(), true
	case "truecolor", "24bit":
		return termenv.TrueColor, true
	case "256", "ansi256":
		return termenv.ANSI256, true
	case "16", "ansi":
		return termenv.ANSI, true
	case "none", "ascii":
		return termenv.Ascii, true
	}
	return termenv.Ascii, false
}
