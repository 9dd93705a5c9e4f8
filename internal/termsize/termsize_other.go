//go:build !unix

package termsize

func fromFd(uintptr) (Size, error) {
	return Size{}, ErrNotTerminal
}
