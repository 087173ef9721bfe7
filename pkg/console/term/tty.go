// Package term is the terminal driver for the console: raw mode setup,
// decoding of the input byte stream into events, and batched output of
// cursor and clear commands.
package term

import (
	"os"

	"src.rush.sh/pkg/sys"
)

// TTY is the interface the console uses to talk to the terminal.
type TTY interface {
	// Setup puts the terminal in raw mode and returns a function that
	// restores the previous state.
	Setup() (restore func() error, err error)
	// ReadEvent reads the next input event, blocking until one arrives.
	ReadEvent() (Event, error)
	// Size queries the current size of the terminal.
	Size() (rows, cols int)
	// CursorPosition queries the current physical cursor position.
	CursorPosition() (Pos, error)

	// Print queues the given text verbatim.
	Print(s string)
	// MoveRight queues a cursor move n columns to the right.
	MoveRight(n int)
	// MoveLeft queues a cursor move n columns to the left.
	MoveLeft(n int)
	// MoveToNextLine queues a cursor move to the first column, n rows down.
	MoveToNextLine(n int)
	// MoveToPreviousLine queues a cursor move to the first column, n rows
	// up.
	MoveToPreviousLine(n int)
	// SavePosition queues a save of the current cursor position.
	SavePosition()
	// RestorePosition queues a restore of the last saved cursor position.
	RestorePosition()
	// ClearScreen queues a move to the top left corner followed by a clear
	// of the entire screen.
	ClearScreen()
	// Flush commits all queued commands to the terminal in one write.
	Flush() error

	// Close releases resources associated with the TTY. It does not close
	// the underlying files.
	Close()
}

// tty implements TTY on a pair of terminal files.
type tty struct {
	in *os.File
	*Writer
	reader  Reader
	pending []Event
}

// NewTTY constructs a TTY that reads events from in and writes commands to
// out.
func NewTTY(in, out *os.File) TTY {
	return &tty{in: in, Writer: NewWriter(out), reader: NewReader(in)}
}

func (t *tty) Setup() (func() error, error) {
	return setup(t.in)
}

func (t *tty) Size() (rows, cols int) {
	return sys.WinSize(t.in)
}

// ReadEvent returns the next input event, delivering first any events that
// arrived while waiting for a cursor position report.
func (t *tty) ReadEvent() (Event, error) {
	if len(t.pending) > 0 {
		event := t.pending[0]
		t.pending = t.pending[1:]
		return event, nil
	}
	return t.reader.ReadEvent()
}

// CursorPosition queries the terminal for the physical cursor position with
// a device status report request. Commands still queued are flushed first,
// so the report reflects them. Key events that race with the report are
// kept and delivered by later ReadEvent calls.
//
// The position is queried anew on every call rather than cached. This keeps
// the model consistent when the terminal is resized between events; the
// line is not re-laid-out on resize, but the state does not get corrupted
// either.
func (t *tty) CursorPosition() (Pos, error) {
	t.Print("\033[6n")
	if err := t.Flush(); err != nil {
		return Pos{}, err
	}
	for {
		event, err := t.reader.ReadEvent()
		if err != nil {
			if IsReadErrorRecoverable(err) {
				continue
			}
			return Pos{}, err
		}
		if cpr, ok := event.(CursorPosition); ok {
			// Terminal reports are 1-based.
			return Pos{cpr.Row - 1, cpr.Col - 1}, nil
		}
		t.pending = append(t.pending, event)
	}
}

func (t *tty) Close() {
	t.reader.Close()
}
