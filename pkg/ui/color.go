package ui

import "strconv"

// Color represents a foreground color of text on the terminal.
type Color interface {
	fgSGR() string
}

// Builtin ANSI colors.
var (
	Black   Color = ansiColor(0)
	Red     Color = ansiColor(1)
	Green   Color = ansiColor(2)
	Yellow  Color = ansiColor(3)
	Blue    Color = ansiColor(4)
	Magenta Color = ansiColor(5)
	Cyan    Color = ansiColor(6)
	White   Color = ansiColor(7)

	BrightBlack   Color = ansiBrightColor(0)
	BrightRed     Color = ansiBrightColor(1)
	BrightGreen   Color = ansiBrightColor(2)
	BrightYellow  Color = ansiBrightColor(3)
	BrightBlue    Color = ansiBrightColor(4)
	BrightMagenta Color = ansiBrightColor(5)
	BrightCyan    Color = ansiBrightColor(6)
	BrightWhite   Color = ansiBrightColor(7)
)

// One of the 8 ANSI colors.
type ansiColor uint8

func (c ansiColor) fgSGR() string { return strconv.Itoa(30 + int(c)) }

// One of the 8 bright variants of the ANSI colors.
type ansiBrightColor uint8

func (c ansiBrightColor) fgSGR() string { return strconv.Itoa(90 + int(c)) }
