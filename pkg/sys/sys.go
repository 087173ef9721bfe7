// Package sys provides thin wrappers around the system calls the terminal
// driver needs.
package sys

import (
	"os"

	"github.com/mattn/go-isatty"
)

// WinSize queries the size of the terminal referenced by the given file.
func WinSize(file *os.File) (rows, cols int) { return winSize(file) }

// IsATTY determines whether the given file descriptor refers to a terminal.
func IsATTY(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
