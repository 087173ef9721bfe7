// Package fsutil provides filesystem path helpers shared by the shell
// state and the prompt.
package fsutil

import (
	"strings"
)

// TildeAbbr abbreviates the given home directory prefix of path to ~.
func TildeAbbr(path, home string) string {
	if home == "" || home == "/" {
		// If home is "" or "/", do not abbreviate because (1) it is likely a
		// problem with the environment and (2) it will make the path actually
		// longer.
		return path
	}
	if path == home {
		return "~"
	}
	if strings.HasPrefix(path, home+"/") {
		return "~" + path[len(home):]
	}
	return path
}

// CollapsePath shortens a working directory path for display in the prompt.
// The home directory prefix becomes ~, and every path segment except the
// last is truncated to at most truncation runes. A truncation of 0 disables
// segment truncation.
func CollapsePath(path, home string, truncation int) string {
	path = TildeAbbr(path, home)
	if truncation <= 0 {
		return path
	}
	segs := strings.Split(path, "/")
	for i, seg := range segs[:len(segs)-1] {
		if r := []rune(seg); len(r) > truncation {
			segs[i] = string(r[:truncation])
		}
	}
	return strings.Join(segs, "/")
}
