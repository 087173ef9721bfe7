package term

// Event represents an event that can be read from the terminal.
type Event interface {
	isEvent()
}

// KeyEvent represents a key press.
type KeyEvent Key

// CursorPosition is the terminal's report of its cursor position, with
// 1-based row and column, sent in response to a device status report
// request.
type CursorPosition struct {
	Row, Col int
}

func (KeyEvent) isEvent()       {}
func (CursorPosition) isEvent() {}

// Pos is a 0-based physical cursor position in terminal cells.
type Pos struct {
	Line, Col int
}
