package termsize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv(t *testing.T) {
	t.Setenv("COLUMNS", "132")
	t.Setenv("LINES", "43")
	s, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, Size{Cols: 132, Rows: 43}, s)
}

func TestFromEnvRejectsGarbage(t *testing.T) {
	t.Setenv("COLUMNS", "wide")
	t.Setenv("LINES", "43")
	_, err := FromEnv()
	assert.ErrorIs(t, err, ErrNotTerminal)

	t.Setenv("COLUMNS", "80")
	t.Setenv("LINES", "0")
	_, err = FromEnv()
	assert.ErrorIs(t, err, ErrNotTerminal)
}

// TestAvailableReservesPromptRow holds whenever the test runner has no
// terminal attached, which is the usual case under go test.
func TestAvailableReservesPromptRow(t *testing.T) {
	if _, err := Get(); err == nil {
		t.Skip("attached to a terminal")
	}
	t.Setenv("COLUMNS", "100")
	t.Setenv("LINES", "30")
	assert.Equal(t, Size{Cols: 100, Rows: 29}, Available())

	t.Setenv("COLUMNS", "")
	assert.Equal(t, Size{Cols: Default.Cols, Rows: Default.Rows - 1}, Available())
}
