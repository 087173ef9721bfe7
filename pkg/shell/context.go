// Package shell holds the state of the shell surrounding the line editor
// (who is running it, where, and how the last command went) and the
// read-evaluate loop that drives the editor.
package shell

import (
	"fmt"
	"os"
	"os/user"
)

// Context is the state of the shell as seen by the line editor. The editor
// only reads it; the REPL loop updates it between commands.
type Context struct {
	user    string
	home    string
	cwd     string
	success bool
	cfg     Config
}

// CurrentContext builds a Context for the current process: the current
// user, their home directory and the working directory. The previous
// command is considered successful, so the first prompt shows the success
// glyph.
func CurrentContext(cfg Config) (*Context, error) {
	u, err := user.Current()
	if err != nil {
		return nil, fmt.Errorf("look up current user: %w", err)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("find home directory: %w", err)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("find working directory: %w", err)
	}
	return &Context{user: u.Username, home: home, cwd: cwd, success: true, cfg: cfg}, nil
}

// NewContext builds a Context from explicit values.
func NewContext(user, home, cwd string, cfg Config) *Context {
	return &Context{user: user, home: home, cwd: cwd, success: true, cfg: cfg}
}

func (c *Context) User() string { return c.user }

func (c *Context) Home() string { return c.home }

func (c *Context) Cwd() string { return c.cwd }

// Success reports whether the previous command succeeded.
func (c *Context) Success() bool { return c.success }

// MultiLinePrompt selects the two-line prompt layout.
func (c *Context) MultiLinePrompt() bool { return c.cfg.MultiLinePrompt }

// TruncationFactor bounds the length of the path segments displayed in the
// prompt; 0 disables truncation.
func (c *Context) TruncationFactor() int { return c.cfg.TruncationFactor }

// SetSuccess records whether the command that just ran succeeded.
func (c *Context) SetSuccess(ok bool) { c.success = ok }

// RefreshCwd re-reads the working directory, which a command may have
// changed. A failure leaves the previous value in place.
func (c *Context) RefreshCwd() {
	if cwd, err := os.Getwd(); err == nil {
		c.cwd = cwd
	}
}
