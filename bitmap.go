package spyglass

import (
	"errors"
	"fmt"
	"math/bits"
	"strconv"
	"strings"
)

// MaxCellBits is the largest number of pixels a cell may hold. Bitmaps are
// 128 bits wide.
const MaxCellBits = 128

var (
	// ErrInvalidCell is returned when a cell size has no pixels or more
	// pixels than a Bitmap can hold.
	ErrInvalidCell = errors.New("invalid cell size")

	// ErrMaskOverflow is returned when a bitmap sets bits outside its cell.
	ErrMaskOverflow = errors.New("bitmap has bits outside cell")
)

// Bitmap is a fixed-width bit set covering one character cell. For a cell of
// N pixels the value occupies the low N bits of the 128-bit quantity Hi:Lo.
//
// Pixels are stored most-significant-bit first in row-major order: pixel
// (x, y) has index i = y*W + x and maps to value bit N-1-i. For a 4x8 cell
// the lower half block is Bitmap{Lo: 0x0000FFFF}.
type Bitmap struct {
	Hi, Lo uint64
}

// Xor returns the bitwise exclusive or of b and o.
func (b Bitmap) Xor(o Bitmap) Bitmap {
	return Bitmap{Hi: b.Hi ^ o.Hi, Lo: b.Lo ^ o.Lo}
}

// And returns the bitwise and of b and o.
func (b Bitmap) And(o Bitmap) Bitmap {
	return Bitmap{Hi: b.Hi & o.Hi, Lo: b.Lo & o.Lo}
}

// OnesCount returns the number of set bits.
func (b Bitmap) OnesCount() int {
	return bits.OnesCount64(b.Hi) + bits.OnesCount64(b.Lo)
}

// IsZero reports whether no bit is set.
func (b Bitmap) IsZero() bool {
	return b.Hi == 0 && b.Lo == 0
}

// String formats the bitmap as a hex literal.
func (b Bitmap) String() string {
	if b.Hi == 0 {
		return fmt.Sprintf("0x%08x", b.Lo)
	}
	return fmt.Sprintf("0x%x%016x", b.Hi, b.Lo)
}

// ParseBitmap parses a hex literal such as "0x0000ffff". Values up to 32 hex
// digits are accepted; underscores are ignored.
func ParseBitmap(s string) (Bitmap, error) {
	h := strings.ReplaceAll(strings.TrimSpace(s), "_", "")
	h = strings.TrimPrefix(strings.TrimPrefix(h, "0x"), "0X")
	if h == "" || len(h) > 32 {
		return Bitmap{}, fmt.Errorf("parse bitmap %q: bad length", s)
	}
	var b Bitmap
	if len(h) > 16 {
		hi, err := strconv.ParseUint(h[:len(h)-16], 16, 64)
		if err != nil {
			return Bitmap{}, fmt.Errorf("parse bitmap %q: %w", s, err)
		}
		b.Hi = hi
		h = h[len(h)-16:]
	}
	lo, err := strconv.ParseUint(h, 16, 64)
	if err != nil {
		return Bitmap{}, fmt.Errorf("parse bitmap %q: %w", s, err)
	}
	b.Lo = lo
	return b, nil
}

// CellSize is the pixel dimensions of one character cell.
type CellSize struct {
	Width, Height int
}

var (
	// Cell4x8 is the cell size used by the block element tables.
	Cell4x8 = CellSize{Width: 4, Height: 8}

	// Cell8x16 doubles Cell4x8 in both directions.
	Cell8x16 = CellSize{Width: 8, Height: 16}
)

// Bits returns the number of pixels in the cell.
func (c CellSize) Bits() int {
	return c.Width * c.Height
}

// Validate checks that the cell fits in a Bitmap.
func (c CellSize) Validate() error {
	if c.Width <= 0 || c.Height <= 0 || c.Bits() > MaxCellBits {
		return fmt.Errorf("%w: %dx%d", ErrInvalidCell, c.Width, c.Height)
	}
	return nil
}

func (c CellSize) String() string {
	return fmt.Sprintf("%dx%d", c.Width, c.Height)
}

// ParseCellSize parses "WxH".
func ParseCellSize(s string) (CellSize, error) {
	w, h, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return CellSize{}, fmt.Errorf("%w: %q", ErrInvalidCell, s)
	}
	width, err := strconv.Atoi(w)
	if err != nil {
		return CellSize{}, fmt.Errorf("%w: %q", ErrInvalidCell, s)
	}
	height, err := strconv.Atoi(h)
	if err != nil {
		return CellSize{}, fmt.Errorf("%w: %q", ErrInvalidCell, s)
	}
	c := CellSize{Width: width, Height: height}
	return c, c.Validate()
}

// Index returns the pixel index of (x, y).
func (c CellSize) Index(x, y int) int {
	return y*c.Width + x
}

// position maps pixel index i to its word and bit offset.
func (c CellSize) position(i int) (hi bool, shift uint) {
	v := uint(c.Bits() - 1 - i)
	if v >= 64 {
		return true, v - 64
	}
	return false, v
}

// Get reports whether pixel i is set in b. Out of range indices are unset.
func (c CellSize) Get(b Bitmap, i int) bool {
	if i < 0 || i >= c.Bits() {
		return false
	}
	hi, shift := c.position(i)
	if hi {
		return b.Hi&(1<<shift) != 0
	}
	return b.Lo&(1<<shift) != 0
}

// Set returns b with pixel i set. Out of range indices are ignored.
func (c CellSize) Set(b Bitmap, i int) Bitmap {
	if i < 0 || i >= c.Bits() {
		return b
	}
	hi, shift := c.position(i)
	if hi {
		b.Hi |= 1 << shift
	} else {
		b.Lo |= 1 << shift
	}
	return b
}

// Full returns the bitmap with every pixel of the cell set.
func (c CellSize) Full() Bitmap {
	n := c.Bits()
	switch {
	case n <= 0:
		return Bitmap{}
	case n < 64:
		return Bitmap{Lo: 1<<uint(n) - 1}
	case n == 64:
		return Bitmap{Lo: ^uint64(0)}
	case n < 128:
		return Bitmap{Hi: 1<<uint(n-64) - 1, Lo: ^uint64(0)}
	default:
		return Bitmap{Hi: ^uint64(0), Lo: ^uint64(0)}
	}
}

// Complement flips every pixel of the cell. Bits above the cell stay clear.
func (c CellSize) Complement(b Bitmap) Bitmap {
	return b.Xor(c.Full())
}

// Fits reports whether b only uses bits inside the cell.
func (c CellSize) Fits(b Bitmap) bool {
	return b.And(c.Full()) == b
}

// Distance is the Hamming distance between two bitmaps.
func Distance(a, b Bitmap) int {
	return a.Xor(b).OnesCount()
}

// Format draws b as a grid of '#' and '.' rows, one line per cell row.
func (c CellSize) Format(b Bitmap) string {
	var sb strings.Builder
	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			if c.Get(b, c.Index(x, y)) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
