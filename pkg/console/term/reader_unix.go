//go:build unix

package term

import (
	"os"
	"time"
	"unicode/utf8"
)

// reader reads terminal escape sequences and decodes them into events.
type reader struct {
	fr fileReader
}

func newReader(f *os.File) *reader {
	fr, err := newFileReader(f)
	if err != nil {
		// TODO: Do not panic.
		panic(err)
	}
	return &reader{fr}
}

func (rd *reader) ReadEvent() (Event, error) {
	return readEvent(rd.fr)
}

func (rd *reader) Close() {
	rd.fr.Stop()
	rd.fr.Close()
}

// Used by the sequence decoder to signal end of current sequence.
const runeEndOfSeq rune = -1

// Timeout for bytes in escape sequences. Modern terminal emulators send
// escape sequences very fast, so 10ms is more than sufficient. SSH
// connections on a slow link might be problematic though.
var keySeqTimeout = 10 * time.Millisecond

func readEvent(rd byteReaderWithTimeout) (event Event, err error) {
	var r rune
	r, err = readRune(rd, -1)
	if err != nil {
		return
	}

	currentSeq := string(r)
	// Attempts to read a rune within keySeqTimeout. It returns runeEndOfSeq
	// on any error; the caller should terminate the current sequence when it
	// sees that value.
	readSeqRune := func() rune {
		r, e := readRune(rd, keySeqTimeout)
		if e != nil {
			return runeEndOfSeq
		}
		currentSeq += string(r)
		return r
	}
	badSeq := func(msg string) {
		err = seqError{msg, currentSeq}
	}

	switch r {
	case 0x1b: // ^[ Escape
		r2 := readSeqRune()
		if r2 == runeEndOfSeq {
			// Nothing follows. Taken as a lone Escape.
			event = KeyEvent{'[', Ctrl}
			break
		}
		switch r2 {
		case '[':
			// CSI style sequence.
			r = readSeqRune()
			if r == runeEndOfSeq {
				event = KeyEvent{'[', Alt}
				return
			}
			var nums []int
		CSISeq:
			for {
				switch {
				case r == ';':
					nums = append(nums, 0)
				case '0' <= r && r <= '9':
					if len(nums) == 0 {
						nums = append(nums, 0)
					}
					cur := len(nums) - 1
					nums[cur] = nums[cur]*10 + int(r-'0')
				case r == runeEndOfSeq:
					badSeq("incomplete CSI")
					return
				default: // Treat as a terminator.
					break CSISeq
				}
				r = readSeqRune()
			}
			if r == 'R' {
				// Cursor position report.
				if len(nums) != 2 {
					badSeq("bad CPR")
					return
				}
				event = CursorPosition{nums[0], nums[1]}
			} else if k := parseCSI(nums, r); k != (Key{}) {
				event = KeyEvent(k)
			} else {
				badSeq("bad CSI")
			}
		case 'O':
			// G3 style sequence: read exactly one rune.
			r = readSeqRune()
			if r == runeEndOfSeq {
				// Nothing follows after 'O'. Taken as Alt-O.
				event = KeyEvent{'O', Alt}
				return
			}
			if k, ok := g3Seq[r]; ok {
				event = KeyEvent(k)
			} else {
				badSeq("bad G3")
			}
		default:
			// Something other than '[' or 'O' follows. Taken as an
			// Alt-modified key, possibly also modified by Ctrl.
			k := ctrlModify(r2)
			k.Mod |= Alt
			event = KeyEvent(k)
		}
	default:
		event = KeyEvent(ctrlModify(r))
	}
	return
}

// Determines whether a rune corresponds to a Ctrl-modified key and returns
// the Key the rune represents.
func ctrlModify(r rune) Key {
	switch r {
	case 0x0:
		return K('`', Ctrl) // ^@
	case 0x1e:
		return K('6', Ctrl) // ^^
	case 0x1f:
		return K('/', Ctrl) // ^_
	case Tab, Enter, Backspace: // ^I ^J ^?
		// Ambiguous Ctrl keys; prefer the non-Ctrl form as they are more
		// likely.
		return K(r)
	default:
		if 0x1 <= r && r <= 0x1d {
			return K(r+0x40, Ctrl)
		}
	}
	return K(r)
}

// readRune reads a possibly multi-byte UTF-8 rune. The timeout applies to
// the first byte; continuation bytes use the escape sequence timeout.
func readRune(rd byteReaderWithTimeout, timeout time.Duration) (rune, error) {
	b, err := rd.ReadByteWithTimeout(timeout)
	if err != nil {
		return 0, err
	}
	if b < utf8.RuneSelf {
		return rune(b), nil
	}
	buf := []byte{b}
	for !utf8.FullRune(buf) && len(buf) < utf8.UTFMax {
		b, err := rd.ReadByteWithTimeout(keySeqTimeout)
		if err != nil {
			break
		}
		buf = append(buf, b)
	}
	r, _ := utf8.DecodeRune(buf)
	return r, nil
}

// G3-style key sequences: \eO followed by exactly one character.
var g3Seq = map[rune]Key{
	'A': K(Up), 'B': K(Down), 'C': K(Right), 'D': K(Left),
	'H': K(Home), 'F': K(End),
}

// CSI-style key sequences identified by the last rune. When modified, two
// numerical arguments are added, the first always being 1 and the second
// identifying the modifier. For instance, \e[1;5A is Ctrl-Up.
var csiSeqByLast = map[rune]Key{
	'A': K(Up), 'B': K(Down), 'C': K(Right), 'D': K(Left),
	'H': K(Home), 'F': K(End),
	'Z': K(Tab, Shift),
}

// CSI-style key sequences ending with '~', with one or two numerical
// arguments. The first argument identifies the key, the optional second one
// the modifier. For instance, \e[3~ is Delete and \e[3;5~ is Ctrl-Delete.
var csiSeqTilde = map[int]rune{
	1: Home, 2: Insert, 3: Delete, 4: End,
	5: PageUp, 6: PageDown, 7: Home, 8: End,
}

// parseCSI parses a CSI-style key sequence, returning the zero Key if it is
// not recognized.
func parseCSI(nums []int, last rune) Key {
	if k, ok := csiSeqByLast[last]; ok {
		if len(nums) == 0 {
			// Unmodified: \e[A (Up)
			return k
		} else if len(nums) == 2 && nums[0] == 1 {
			// Modified: \e[1;5A (Ctrl-Up)
			return xtermModify(k, nums[1])
		}
		return Key{}
	}
	if last == '~' && (len(nums) == 1 || len(nums) == 2) {
		if r, ok := csiSeqTilde[nums[0]]; ok {
			k := K(r)
			if len(nums) == 1 {
				return k
			}
			return xtermModify(k, nums[1])
		}
	}
	return Key{}
}

func xtermModify(k Key, mod int) Key {
	if mod < 0 || mod > 16 {
		return Key{}
	}
	if mod == 0 {
		return k
	}
	modFlags := mod - 1
	if modFlags&0x1 != 0 {
		k.Mod |= Shift
	}
	if modFlags&0x2 != 0 {
		k.Mod |= Alt
	}
	if modFlags&0x4 != 0 {
		k.Mod |= Ctrl
	}
	if modFlags&0x8 != 0 {
		// This should be Meta, but we conflate Meta and Alt.
		k.Mod |= Alt
	}
	return k
}
