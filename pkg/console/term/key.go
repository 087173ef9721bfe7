package term

import "fmt"

// Key represents a single keyboard input, typically assembled from an
// escape sequence.
type Key struct {
	Rune rune
	Mod  Mod
}

// K constructs a new Key from a rune and zero or more modifiers.
func K(r rune, mods ...Mod) Key {
	var mod Mod
	for _, m := range mods {
		mod |= m
	}
	return Key{r, mod}
}

// Mod represents a modifier key.
type Mod byte

// Values for Mod.
const (
	// Shift is the shift modifier. It is only applied to special keys (e.g.
	// Shift-F1). For instance 'A' and '@', which are typically entered with
	// the shift key pressed, are not considered to be shift-modified.
	Shift Mod = 1 << iota
	// Alt is the alt modifier, traditionally known as the meta modifier.
	Alt
	Ctrl
)

// Keys that have a canonical control character representation.
const (
	Tab       rune = '\t'
	Enter     rune = '\n'
	Backspace rune = 0x7f
)

// Negative runes for keys with no character representation.
const (
	Up rune = -1 - iota
	Down
	Right
	Left
	Home
	End
	Insert
	Delete
	PageUp
	PageDown
)

var keyNames = map[rune]string{
	Tab: "Tab", Enter: "Enter", Backspace: "Backspace",
	Up: "Up", Down: "Down", Right: "Right", Left: "Left",
	Home: "Home", End: "End", Insert: "Insert", Delete: "Delete",
	PageUp: "PageUp", PageDown: "PageDown",
}

func (k Key) String() (s string) {
	if k.Mod&Ctrl != 0 {
		s += "Ctrl-"
	}
	if k.Mod&Alt != 0 {
		s += "Alt-"
	}
	if k.Mod&Shift != 0 {
		s += "Shift-"
	}
	if name, ok := keyNames[k.Rune]; ok {
		s += name
	} else if k.Rune > 0 {
		s += string(k.Rune)
	} else {
		s += fmt.Sprintf("(bad key %d)", k.Rune)
	}
	return
}
