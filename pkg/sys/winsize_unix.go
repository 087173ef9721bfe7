//go:build unix

package sys

import (
	"os"

	"golang.org/x/sys/unix"
)

func winSize(file *os.File) (rows, cols int) {
	fd := int(file.Fd())
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil {
		return -1, -1
	}

	// Pick up reasonable values if the terminal reports zero, as can happen
	// on serial consoles.
	if ws.Row == 0 {
		ws.Row = 24
	}
	if ws.Col == 0 {
		ws.Col = 80
	}

	return int(ws.Row), int(ws.Col)
}
