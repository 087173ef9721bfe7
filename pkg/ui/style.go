// Package ui provides minimal styling of terminal text with SGR escape
// sequences.
package ui

import "strings"

// Style specifies how a string shall be displayed.
type Style struct {
	Foreground Color
	Bold       bool
}

// SGR returns the SGR sequence for the style, without the CSI prefix and
// the final "m".
func (s Style) SGR() string {
	var sgr []string
	if s.Bold {
		sgr = append(sgr, "1")
	}
	if s.Foreground != nil {
		sgr = append(sgr, s.Foreground.fgSGR())
	}
	return strings.Join(sgr, ";")
}

// Stylize wraps the given string in the escape sequences that display it
// with the given style, followed by a reset.
func Stylize(s string, style Style) string {
	sgr := style.SGR()
	if sgr == "" {
		return s
	}
	return "\033[" + sgr + "m" + s + "\033[m"
}
