//go:build unix

package console

import (
	"bytes"
	"testing"
	"time"

	"github.com/creack/pty"

	"src.rush.sh/pkg/console/term"
)

// Drives a full read session through a real pty, exercising raw mode setup,
// the escape sequence reader and the batched writer together. The test
// plays the part of the terminal emulator on the master side, answering
// cursor position queries.
func TestRead_ThroughPty(t *testing.T) {
	ptmx, tts, err := pty.Open()
	if err != nil {
		t.Fatal(err)
	}
	defer ptmx.Close()
	defer tts.Close()
	if err := pty.Setsize(ptmx, &pty.Winsize{Rows: 24, Cols: 80}); err != nil {
		t.Fatal(err)
	}

	tty := term.NewTTY(tts, tts)
	defer tty.Close()
	con := New(tty)

	// Answer each device status report request with a fixed cursor
	// position, like a terminal emulator would.
	go func() {
		buf := make([]byte, 1024)
		for {
			n, err := ptmx.Read(buf)
			if err != nil {
				return
			}
			for i := 0; i < bytes.Count(buf[:n], []byte("\x1b[6n")); i++ {
				ptmx.WriteString("\x1b[1;1R")
			}
		}
	}()

	lines := make(chan string, 1)
	errs := make(chan error, 1)
	go func() {
		line, err := con.Read(plainCtx)
		if err != nil {
			errs <- err
			return
		}
		lines <- line
	}()

	// Give Read a chance to enable raw mode before typing.
	time.Sleep(50 * time.Millisecond)
	ptmx.WriteString("echo hi\r")

	select {
	case line := <-lines:
		if line != "echo hi" {
			t.Errorf("Read = %q, want %q", line, "echo hi")
		}
	case err := <-errs:
		t.Fatalf("Read errors: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("Read did not return")
	}
}
