package shell

import (
	"errors"
	"fmt"
	"io"
	"time"

	"src.rush.sh/pkg/console"
	"src.rush.sh/pkg/logutil"
	"src.rush.sh/pkg/store"
)

var logger = logutil.GetLogger("[shell] ")

// Evaler runs a submitted command line, reporting its failure through the
// returned error.
type Evaler func(line string) error

// editor is the part of the line editor the loop drives.
type editor interface {
	Read(ctx console.Context) (string, error)
}

// Shell ties the line editor, the history store and the command evaluator
// into a read-evaluate loop.
type Shell struct {
	ed     editor
	ctx    *Context
	st     store.Store
	eval   Evaler
	stderr io.Writer
}

// New builds a Shell. st may be nil, in which case no history is recorded.
func New(ed editor, ctx *Context, st store.Store, eval Evaler, stderr io.Writer) *Shell {
	return &Shell{ed, ctx, st, eval, stderr}
}

var (
	minCooldown = 1 * time.Second
	maxCooldown = 1 * time.Minute
)

// Run reads and evaluates commands until the input is exhausted. Editor
// errors are reported to stderr and reading is retried after a cooldown
// that doubles on consecutive failures, so a persistently broken terminal
// does not spin the loop.
func (sh *Shell) Run() error {
	cooldown := minCooldown
	for {
		line, err := sh.ed.Read(sh.ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			fmt.Fprintln(sh.stderr, "rush: editor error:", err)
			fmt.Fprintln(sh.stderr, "rush: will retry in", cooldown)
			time.Sleep(cooldown)
			if cooldown < maxCooldown {
				cooldown *= 2
			}
			continue
		}
		cooldown = minCooldown

		if sh.st != nil {
			if _, err := sh.st.AddCmd(line); err != nil {
				logger.Println("failed to record command:", err)
			}
		}
		err = sh.eval(line)
		sh.ctx.SetSuccess(err == nil)
		sh.ctx.RefreshCwd()
	}
}
