// Package console implements the interactive line editor of the shell's
// read-evaluate-print loop: it reads raw keystrokes, maintains a line
// buffer with a cursor, renders incremental updates, and returns the
// completed line on Enter.
package console

import (
	"os"
	"unicode"

	"github.com/mattn/go-runewidth"

	"src.rush.sh/pkg/console/term"
	"src.rush.sh/pkg/logutil"
)

var logger = logutil.GetLogger("[console] ")

// Overridable in tests.
var exit = os.Exit

// Context is the read-only view of the surrounding shell that the console
// consumes. It is queried once per prompt draw and never mutated.
type Context interface {
	User() string
	Home() string
	Cwd() string
	// Success reports whether the previous command succeeded.
	Success() bool
	// MultiLinePrompt selects the two-line prompt layout.
	MultiLinePrompt() bool
	// TruncationFactor bounds the length of the path segments displayed in
	// the prompt; 0 disables truncation.
	TruncationFactor() int
}

// replAction is what the key dispatcher instructs the read loop to do after
// an event has been handled. Splitting the two keeps the key mapping and
// the action execution separate: the dispatcher decides, the loop executes.
type replAction int

const (
	// Keep reading.
	actionIgnore replAction = iota
	// Return the line buffer to the caller.
	actionReturn
	// Discard the line buffer and re-prompt.
	actionClear
	// Terminate the process.
	actionExit
)

// Console reads one line of input at a time from the user, handling all
// terminal interaction between the Read call and the completed line.
//
// A Console supports exactly one read session at a time; the buffer and
// cursor are exclusively owned by that session for its duration.
type Console struct {
	tty term.TTY
	buf LineBuffer
}

// New returns a Console reading from and rendering to the given terminal.
func New(tty term.TTY) *Console {
	return &Console{tty: tty}
}

// Read prompts the user and handles all keypresses until a non-empty line
// of input is confirmed, which it returns. The line buffer is empty and the
// cursor reset immediately after Read returns.
//
// Raw mode is held for the whole session and restored on every exit path,
// including errors; any terminal I/O failure aborts the current Read and is
// propagated to the caller after the restore.
func (c *Console) Read(ctx Context) (string, error) {
	restore, err := c.tty.Setup()
	if err != nil {
		return "", err
	}
	restored := false
	restoreOnce := func() error {
		if restored {
			return nil
		}
		restored = true
		return restore()
	}
	defer restoreOnce()

	c.tty.Print(Prompt(ctx))

	for {
		// One flush per processed event, so each keystroke becomes at most
		// one visible update.
		if err := c.tty.Flush(); err != nil {
			return "", err
		}
		event, err := c.tty.ReadEvent()
		if err != nil {
			if term.IsReadErrorRecoverable(err) {
				logger.Println("ignoring unreadable input:", err)
				continue
			}
			return "", err
		}

		action, err := c.handleEvent(event)
		if err != nil {
			return "", err
		}

		switch action {
		case actionReturn:
			c.tty.MoveToNextLine(1)
			if err := c.tty.Flush(); err != nil {
				return "", err
			}
			line := c.buf.Content()
			c.buf.Reset()
			if err := restoreOnce(); err != nil {
				return "", err
			}
			return line, nil
		case actionClear:
			c.buf.Reset()
			c.tty.ClearScreen()
			c.tty.Print(Prompt(ctx))
		case actionExit:
			c.tty.ClearScreen()
			c.tty.Flush()
			restoreOnce()
			exit(0)
		case actionIgnore:
		}
	}
}

// handleEvent classifies one event and performs the buffer mutation and
// queued rendering it calls for. Preconditions like "backspace only when
// the cursor is not at the start" are guarded here, so the buffer never
// sees an out-of-range operation.
func (c *Console) handleEvent(event term.Event) (replAction, error) {
	keyEvent, ok := event.(term.KeyEvent)
	if !ok {
		return actionIgnore, nil
	}
	switch k := term.Key(keyEvent); {
	case k == term.K(term.Backspace):
		if c.buf.Cursor() > 0 {
			return actionIgnore, c.backspace()
		}
	case k == term.K(term.Left):
		if c.buf.Cursor() > 0 {
			r, _ := c.buf.Left()
			return actionIgnore, c.retreat(runewidth.RuneWidth(r))
		}
	case k == term.K(term.Right):
		if c.buf.Cursor() < c.buf.Len() {
			r, _ := c.buf.Right()
			return actionIgnore, c.advance(runewidth.RuneWidth(r))
		}
	case k == term.K(term.Enter):
		// Submitting an empty line is ignored.
		if c.buf.Len() > 0 {
			return actionReturn, nil
		}
	case k == term.K('C', term.Ctrl):
		return actionExit, nil
	case k == term.K('L', term.Ctrl):
		return actionClear, nil
	case k.Mod&^term.Shift == 0 && unicode.IsPrint(k.Rune):
		return actionIgnore, c.insert(k.Rune)
	}
	return actionIgnore, nil
}

// insert inserts a rune at the cursor and reprints the shifted tail.
func (c *Console) insert(r rune) error {
	c.buf.Insert(r)
	// The tail starts at the inserted rune, so everything that was after
	// the cursor is reprinted shifted one position right.
	c.printTail(c.buf.Cursor()-1, false)
	// Advance the physical cursor so the next insertion does not overwrite
	// the reprinted tail.
	return c.advance(runewidth.RuneWidth(r))
}

// backspace removes the rune before the cursor, retreats the physical
// cursor and reprints the shortened tail.
func (c *Console) backspace() error {
	r, ok := c.buf.Backspace()
	if !ok {
		return nil
	}
	if err := c.retreat(runewidth.RuneWidth(r)); err != nil {
		return err
	}
	c.printTail(c.buf.Cursor(), true)
	return nil
}

// printTail queues a reprint of the line buffer from the given rune offset
// without moving the perceived cursor. In deletion mode a trailing space is
// appended: the reprinted tail is one character shorter than the text it
// overwrites, and the space erases what would otherwise remain of the old
// tail's last character. Overprinting with a space flickers less than
// clearing to end of line first.
func (c *Console) printTail(from int, deletion bool) {
	c.tty.SavePosition()
	c.tty.Print(c.buf.Tail(from))
	if deletion {
		c.tty.Print(" ")
	}
	c.tty.RestorePosition()
}

// advance moves the physical cursor right by the given number of columns,
// wrapping to the first column of the next row at the right edge. The
// terminal width and cursor position are queried at every step rather than
// cached, so a resize between keystrokes cannot desynchronize the model.
// The wrap check compares against the width at the moment of the move;
// right after an interactive resize it can be off for one keystroke, which
// is an accepted limitation of this scheme.
func (c *Console) advance(cols int) error {
	for i := 0; i < cols; i++ {
		_, width := c.tty.Size()
		pos, err := c.tty.CursorPosition()
		if err != nil {
			return err
		}
		if pos.Col == width-1 {
			c.tty.MoveToNextLine(1)
		} else {
			c.tty.MoveRight(1)
		}
	}
	return nil
}

// retreat moves the physical cursor left by the given number of columns,
// wrapping to the last column of the previous row at the left edge.
func (c *Console) retreat(cols int) error {
	for i := 0; i < cols; i++ {
		_, width := c.tty.Size()
		pos, err := c.tty.CursorPosition()
		if err != nil {
			return err
		}
		if pos.Col == 0 {
			c.tty.MoveToPreviousLine(1)
			c.tty.MoveRight(width - 1)
		} else {
			c.tty.MoveLeft(1)
		}
	}
	return nil
}
