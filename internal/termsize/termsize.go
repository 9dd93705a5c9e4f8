// Package termsize reports the character grid of the controlling terminal.
package termsize

import (
	"errors"
	"os"
	"strconv"
)

// ErrNotTerminal is returned when no terminal size could be determined.
var ErrNotTerminal = errors.New("not a terminal")

// Size is a terminal grid in character cells.
type Size struct {
	Cols, Rows int
}

// Default is used when nothing better is known.
var Default = Size{Cols: 80, Rows: 24}

// Get asks the terminal for its size, trying stderr, stdout and stdin in
// that order since any of them may be redirected.
func Get() (Size, error) {
	for _, f := range []*os.File{os.Stderr, os.Stdout, os.Stdin} {
		if s, err := fromFd(f.Fd()); err == nil && s.Cols > 0 && s.Rows > 0 {
			return s, nil
		}
	}
	return Size{}, ErrNotTerminal
}

// FromEnv reads COLUMNS and LINES.
func FromEnv() (Size, error) {
	cols, err := strconv.Atoi(os.Getenv("COLUMNS"))
	if err != nil || cols <= 0 {
		return Size{}, ErrNotTerminal
	}
	rows, err := strconv.Atoi(os.Getenv("LINES"))
	if err != nil || rows <= 0 {
		return Size{}, ErrNotTerminal
	}
	return Size{Cols: cols, Rows: rows}, nil
}

// Available returns the grid to draw into: the terminal size if known,
// else the environment, else Default. One row is held back so the shell
// prompt does not scroll the top of the picture away.
func Available() Size {
	s, err := Get()
	if err != nil {
		if s, err = FromEnv(); err != nil {
			s = Default
		}
	}
	if s.Rows > 1 {
		s.Rows--
	}
	return s
}
