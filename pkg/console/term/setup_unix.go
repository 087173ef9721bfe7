//go:build unix

package term

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// setup puts the terminal in raw mode: no line buffering, no echo and no
// signal generation, so that every keystroke, including Ctrl-C, arrives as
// an input byte. It returns a function that restores the saved state.
//
// All file descriptors pointing to the same terminal are equivalent, so the
// input file is used for changing the attributes.
func setup(in *os.File) (func() error, error) {
	fd := int(in.Fd())
	saved, err := unix.IoctlGetTermios(fd, getAttrIOCTL)
	if err != nil {
		return nil, fmt.Errorf("get terminal attributes: %w", err)
	}

	raw := *saved
	raw.Lflag &^= unix.ICANON | unix.ECHO | unix.ISIG
	// Enforce CR-to-NL translation on input, so that Enter always arrives
	// as \n regardless of what the terminal sends.
	raw.Iflag |= unix.ICRNL
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(fd, setAttrNowIOCTL, &raw); err != nil {
		return nil, fmt.Errorf("set terminal attributes: %w", err)
	}

	return func() error {
		if err := unix.IoctlSetTermios(fd, setAttrNowIOCTL, saved); err != nil {
			return fmt.Errorf("restore terminal attributes: %w", err)
		}
		return nil
	}, nil
}
