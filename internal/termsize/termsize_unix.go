//go:build unix

package termsize

import (
	"golang.org/x/sys/unix"
)

func fromFd(fd uintptr) (Size, error) {
	ws, err := unix.IoctlGetWinsize(int(fd), unix.TIOCGWINSZ)
	if err != nil {
		return Size{}, err
	}
	return Size{Cols: int(ws.Col), Rows: int(ws.Row)}, nil
}
