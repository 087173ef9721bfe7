package console

import (
	"fmt"

	"src.rush.sh/pkg/fsutil"
	"src.rush.sh/pkg/ui"
)

// Prompt renders the prompt string for the given shell context: the user
// name, the collapsed working directory, and a glyph colored by whether the
// previous command succeeded. It is a pure function; identical contexts
// produce identical prompts.
func Prompt(ctx Context) string {
	user := ui.Stylize(ctx.User(), ui.Style{Foreground: ui.Blue})
	cwd := ui.Stylize(
		fsutil.CollapsePath(ctx.Cwd(), ctx.Home(), ctx.TruncationFactor()),
		ui.Style{Foreground: ui.Green})

	delimiter := " "
	if ctx.MultiLinePrompt() {
		delimiter = "\r\n"
	}

	style := ui.Style{Foreground: ui.BrightGreen, Bold: true}
	if !ctx.Success() {
		style.Foreground = ui.BrightRed
	}
	glyph := ui.Stylize("❯", style)

	return fmt.Sprintf("\r\n%s on %s%s%s ", user, cwd, delimiter, glyph)
}
