package console

import (
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"src.rush.sh/pkg/console/term"
)

// testContext is a fixed shell context for prompt and console tests.
type testContext struct {
	user, home, cwd string
	success         bool
	multiLine       bool
	truncation      int
}

func (c testContext) User() string          { return c.user }
func (c testContext) Home() string          { return c.home }
func (c testContext) Cwd() string           { return c.cwd }
func (c testContext) Success() bool         { return c.success }
func (c testContext) MultiLinePrompt() bool { return c.multiLine }
func (c testContext) TruncationFactor() int { return c.truncation }

var plainCtx = testContext{user: "ada", home: "/home/ada", cwd: "/home/ada", success: true}

// fakeTTY scripts input events and models the physical cursor the way a
// terminal would apply the queued movement commands. Printing does not move
// the modeled cursor: every tail reprint is wrapped in save/restore, so it
// nets to zero movement, which is also what the real driver relies on.
type fakeTTY struct {
	events []term.Event

	rows, cols int
	line, col  int

	queued   strings.Builder
	output   strings.Builder
	flushes  int
	restored bool
	setupErr error
}

func newFakeTTY(cols int, events ...term.Event) *fakeTTY {
	return &fakeTTY{events: events, rows: 24, cols: cols}
}

func keys(s string) []term.Event {
	var events []term.Event
	for _, r := range s {
		events = append(events, term.KeyEvent(term.K(r)))
	}
	return events
}

func key(r rune, mods ...term.Mod) term.Event {
	return term.KeyEvent(term.K(r, mods...))
}

func (t *fakeTTY) Setup() (func() error, error) {
	if t.setupErr != nil {
		return nil, t.setupErr
	}
	t.restored = false
	return func() error {
		t.restored = true
		return nil
	}, nil
}

func (t *fakeTTY) ReadEvent() (term.Event, error) {
	if len(t.events) == 0 {
		return nil, io.EOF
	}
	event := t.events[0]
	t.events = t.events[1:]
	return event, nil
}

func (t *fakeTTY) Size() (rows, cols int) { return t.rows, t.cols }

func (t *fakeTTY) CursorPosition() (term.Pos, error) {
	return term.Pos{Line: t.line, Col: t.col}, nil
}

func (t *fakeTTY) Print(s string) { t.queued.WriteString(s) }

func (t *fakeTTY) MoveRight(n int) {
	t.queued.WriteString("<right>")
	if t.col += n; t.col > t.cols-1 {
		t.col = t.cols - 1
	}
}

func (t *fakeTTY) MoveLeft(n int) {
	t.queued.WriteString("<left>")
	if t.col -= n; t.col < 0 {
		t.col = 0
	}
}

func (t *fakeTTY) MoveToNextLine(n int) {
	t.queued.WriteString("<nextline>")
	t.line += n
	t.col = 0
}

func (t *fakeTTY) MoveToPreviousLine(n int) {
	t.queued.WriteString("<prevline>")
	t.line -= n
	t.col = 0
}

func (t *fakeTTY) SavePosition()    { t.queued.WriteString("<save>") }
func (t *fakeTTY) RestorePosition() { t.queued.WriteString("<restore>") }

func (t *fakeTTY) ClearScreen() {
	t.queued.WriteString("<clear>")
	t.line, t.col = 0, 0
}

func (t *fakeTTY) Flush() error {
	if t.queued.Len() > 0 {
		t.flushes++
		t.output.WriteString(t.queued.String())
		t.queued.Reset()
	}
	return nil
}

func (t *fakeTTY) Close() {}

func TestRead_RoundTrip(t *testing.T) {
	tty := newFakeTTY(80, append(keys("cd /tmp"), key(term.Enter))...)
	con := New(tty)

	line, err := con.Read(plainCtx)
	if err != nil {
		t.Fatalf("Read errors: %v", err)
	}
	if line != "cd /tmp" {
		t.Errorf("Read = %q, want %q", line, "cd /tmp")
	}
	if content, cursor := con.buf.Content(), con.buf.Cursor(); content != "" || cursor != 0 {
		t.Errorf("buffer not reset after Read: content %q cursor %d", content, cursor)
	}
	if !tty.restored {
		t.Errorf("raw mode not restored after Read")
	}
}

func TestRead_InsertInMiddleReprintsOnlyTail(t *testing.T) {
	events := append(keys("abc"), key(term.Left), key(term.Left))
	events = append(events, keys("x")...)
	events = append(events, key(term.Enter))
	tty := newFakeTTY(80, events...)
	con := New(tty)

	line, err := con.Read(plainCtx)
	if err != nil {
		t.Fatalf("Read errors: %v", err)
	}
	if line != "axbc" {
		t.Errorf("Read = %q, want %q", line, "axbc")
	}
	// Inserting 'x' before "bc" reprints the tail "xbc", not the whole line.
	if !strings.Contains(tty.output.String(), "<save>xbc<restore>") {
		t.Errorf("output does not contain the tail reprint: %q", tty.output.String())
	}
}

func TestRead_BackspaceReprintsTailWithTrailingSpace(t *testing.T) {
	events := append(keys("abc"), key(term.Backspace), key(term.Enter))
	tty := newFakeTTY(80, events...)
	con := New(tty)

	line, err := con.Read(plainCtx)
	if err != nil {
		t.Fatalf("Read errors: %v", err)
	}
	if line != "ab" {
		t.Errorf("Read = %q, want %q", line, "ab")
	}
	// Deleting the final rune reprints an empty tail plus the space that
	// erases the ghost of the deleted character.
	if !strings.Contains(tty.output.String(), "<save> <restore>") {
		t.Errorf("output does not contain the deletion reprint: %q", tty.output.String())
	}
}

func TestRead_BackspaceAtStartIsIgnored(t *testing.T) {
	events := []term.Event{key(term.Backspace)}
	events = append(events, keys("a")...)
	events = append(events, key(term.Enter))
	tty := newFakeTTY(80, events...)
	con := New(tty)

	line, err := con.Read(plainCtx)
	if err != nil {
		t.Fatalf("Read errors: %v", err)
	}
	if line != "a" {
		t.Errorf("Read = %q, want %q", line, "a")
	}
}

func TestRead_EmptyEnterIsIgnored(t *testing.T) {
	events := []term.Event{key(term.Enter)}
	events = append(events, keys("a")...)
	events = append(events, key(term.Enter))
	tty := newFakeTTY(80, events...)
	con := New(tty)

	line, err := con.Read(plainCtx)
	if err != nil {
		t.Fatalf("Read errors: %v", err)
	}
	if line != "a" {
		t.Errorf("Read = %q, want %q (first Enter on empty buffer must be ignored)", line, "a")
	}
}

func TestRead_UnboundKeysAreIgnored(t *testing.T) {
	events := []term.Event{
		key(term.Up), key(term.Down), key(term.Delete),
		key('X', term.Alt), key('A', term.Ctrl),
	}
	events = append(events, keys("ok")...)
	events = append(events, key(term.Enter))
	tty := newFakeTTY(80, events...)
	con := New(tty)

	line, err := con.Read(plainCtx)
	if err != nil {
		t.Fatalf("Read errors: %v", err)
	}
	if line != "ok" {
		t.Errorf("Read = %q, want %q", line, "ok")
	}
}

func TestRead_CtrlLClearsBufferAndScreen(t *testing.T) {
	events := append(keys("discarded"), key('L', term.Ctrl))
	events = append(events, keys("b")...)
	events = append(events, key(term.Enter))
	tty := newFakeTTY(80, events...)
	con := New(tty)

	line, err := con.Read(plainCtx)
	if err != nil {
		t.Fatalf("Read errors: %v", err)
	}
	if line != "b" {
		t.Errorf("Read = %q, want %q (buffer must be discarded by Ctrl-L)", line, "b")
	}
	out := tty.output.String()
	if !strings.Contains(out, "<clear>") {
		t.Errorf("Ctrl-L did not clear the screen: %q", out)
	}
	if got := strings.Count(out, "❯"); got != 2 {
		t.Errorf("prompt drawn %d times, want 2 (initial + after clear)", got)
	}
}

func TestRead_CtrlCRestoresRawModeAndExits(t *testing.T) {
	exited := errors.New("exited")
	exit = func(code int) {
		if code != 0 {
			t.Errorf("exit status = %d, want 0", code)
		}
		panic(exited)
	}
	defer func() {
		exit = os.Exit
		if r := recover(); r != exited {
			t.Errorf("Ctrl-C did not exit, recovered %v", r)
		}
	}()

	tty := newFakeTTY(80, key('C', term.Ctrl))
	con := New(tty)
	con.Read(plainCtx)
}

func TestRead_WrapAtRightEdge(t *testing.T) {
	// Width 4: the fourth insertion happens with the cursor in the last
	// column and must wrap to column 0 of the next row.
	events := append(keys("abcde"), key(term.Enter))
	tty := newFakeTTY(4, events...)
	con := New(tty)

	if _, err := con.Read(plainCtx); err != nil {
		t.Fatalf("Read errors: %v", err)
	}
	// One wrap while typing, plus the final move to the next line on Enter.
	if got := strings.Count(tty.output.String(), "<nextline>"); got != 2 {
		t.Errorf("wrapped %d times, want 2", got)
	}
}

func TestRead_WrapBackAtLeftEdge(t *testing.T) {
	// Type past the edge, then move left across it: the second Left starts
	// at column 0 and must wrap to the last column of the previous row.
	events := append(keys("abcde"), key(term.Left), key(term.Left))
	events = append(events, key(term.Enter))
	tty := newFakeTTY(4, events...)
	con := New(tty)

	line, err := con.Read(plainCtx)
	if err != nil {
		t.Fatalf("Read errors: %v", err)
	}
	if line != "abcde" {
		t.Errorf("Read = %q, want %q", line, "abcde")
	}
	if !strings.Contains(tty.output.String(), "<prevline><right>") {
		t.Errorf("left move at column 0 did not wrap to the previous row: %q",
			tty.output.String())
	}
}

func TestRead_WideRunesAdvanceByDisplayWidth(t *testing.T) {
	// Width 4 and a double-width rune in the last two columns: inserting 日
	// at column 2 steps to column 3 and then wraps.
	events := append(keys("ab日"), key(term.Enter))
	tty := newFakeTTY(4, events...)
	con := New(tty)

	line, err := con.Read(plainCtx)
	if err != nil {
		t.Fatalf("Read errors: %v", err)
	}
	if line != "ab日" {
		t.Errorf("Read = %q, want %q", line, "ab日")
	}
	if got := strings.Count(tty.output.String(), "<nextline>"); got != 2 {
		t.Errorf("wrapped %d times, want 2 (wide rune + Enter)", got)
	}
}

func TestRead_RenderingIsDeterministic(t *testing.T) {
	run := func() string {
		tty := newFakeTTY(10, append(keys("abc"), key(term.Enter))...)
		con := New(tty)
		if _, err := con.Read(plainCtx); err != nil {
			t.Fatalf("Read errors: %v", err)
		}
		return tty.output.String()
	}
	first, second := run(), run()
	if first != second {
		t.Errorf("two identical sessions rendered differently:\n%q\n%q", first, second)
	}
}

func TestRead_ReadErrorPropagatesAfterRestore(t *testing.T) {
	tty := newFakeTTY(80) // no events: ReadEvent returns io.EOF
	con := New(tty)

	_, err := con.Read(plainCtx)
	if err != io.EOF {
		t.Errorf("Read = %v, want io.EOF", err)
	}
	if !tty.restored {
		t.Errorf("raw mode not restored on the error path")
	}
}

func TestRead_SetupErrorPropagates(t *testing.T) {
	setupErr := errors.New("tcgetattr failed")
	tty := newFakeTTY(80)
	tty.setupErr = setupErr
	con := New(tty)

	if _, err := con.Read(plainCtx); err != setupErr {
		t.Errorf("Read = %v, want the setup error", err)
	}
}
