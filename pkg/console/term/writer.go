package term

import (
	"bytes"
	"fmt"
	"io"
)

// Writer queues terminal commands and commits them with a single write.
// Batching all the output for one input event into one write bounds the
// visible redraw to one update per keystroke.
type Writer struct {
	file io.Writer
	buf  bytes.Buffer
}

// NewWriter returns a Writer that queues VT100 sequences for the given
// io.Writer.
func NewWriter(f io.Writer) *Writer {
	return &Writer{file: f}
}

// Print queues the given text verbatim.
func (w *Writer) Print(s string) {
	w.buf.WriteString(s)
}

// MoveRight queues a cursor move n columns to the right.
func (w *Writer) MoveRight(n int) {
	w.csi(n, 'C')
}

// MoveLeft queues a cursor move n columns to the left.
func (w *Writer) MoveLeft(n int) {
	w.csi(n, 'D')
}

// MoveToNextLine queues a cursor move to the first column, n rows down.
func (w *Writer) MoveToNextLine(n int) {
	w.csi(n, 'E')
}

// MoveToPreviousLine queues a cursor move to the first column, n rows up.
func (w *Writer) MoveToPreviousLine(n int) {
	w.csi(n, 'F')
}

// SavePosition queues a save of the current cursor position.
func (w *Writer) SavePosition() {
	w.buf.WriteString("\0337")
}

// RestorePosition queues a restore of the last saved cursor position.
func (w *Writer) RestorePosition() {
	w.buf.WriteString("\0338")
}

// ClearScreen queues a move to the top left corner followed by a clear of
// the entire screen.
func (w *Writer) ClearScreen() {
	w.buf.WriteString("\033[H\033[2J")
}

func (w *Writer) csi(n int, final byte) {
	if n <= 0 {
		return
	}
	fmt.Fprintf(&w.buf, "\033[%d%c", n, final)
}

// Flush commits all queued commands to the terminal in one write. A flush
// with nothing queued writes nothing.
func (w *Writer) Flush() error {
	if w.buf.Len() == 0 {
		return nil
	}
	_, err := w.file.Write(w.buf.Bytes())
	w.buf.Reset()
	return err
}
