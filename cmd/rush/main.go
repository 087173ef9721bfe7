// Command rush is an interactive shell built around an incremental line
// editor.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"src.rush.sh/pkg/console"
	"src.rush.sh/pkg/console/term"
	"src.rush.sh/pkg/logutil"
	"src.rush.sh/pkg/shell"
	"src.rush.sh/pkg/store"
	"src.rush.sh/pkg/sys"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("rush", flag.ContinueOnError)
	logPath := fs.String("log", "", "write debug logs to the named file")
	configPath := fs.String("config", "", "path to the configuration file")
	dbPath := fs.String("db", "", "path to the command history database")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *logPath != "" {
		if err := logutil.SetOutputFile(*logPath); err != nil {
			fmt.Fprintln(os.Stderr, "rush:", err)
		}
	}

	if !sys.IsATTY(os.Stdin.Fd()) || !sys.IsATTY(os.Stdout.Fd()) {
		fmt.Fprintln(os.Stderr, "rush: standard input and output must be a terminal")
		return 2
	}

	if *configPath == "" {
		*configPath = defaultConfigPath()
	}
	cfg, err := shell.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "rush:", err)
		return 2
	}

	ctx, err := shell.CurrentContext(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "rush:", err)
		return 2
	}

	// A broken history database should not keep the shell from starting.
	var st store.Store
	if fname := historyPath(*dbPath); fname != "" {
		st, err = store.NewStore(fname)
		if err != nil {
			fmt.Fprintln(os.Stderr, "rush: history disabled:", err)
			st = nil
		} else {
			defer st.Close()
		}
	}

	tty := term.NewTTY(os.Stdin, os.Stdout)
	defer tty.Close()

	sh := shell.New(console.New(tty), ctx, st, evalWithSh, os.Stderr)
	if err := sh.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "rush:", err)
		return 2
	}
	fmt.Println()
	return 0
}

// evalWithSh hands the command line to /bin/sh, sharing the shell's
// standard streams so interactive programs work.
func evalWithSh(line string) error {
	cmd := exec.Command("/bin/sh", "-c", line)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "rush", "rush.yaml")
}

func historyPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	dir := filepath.Join(home, ".local", "state", "rush")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return ""
	}
	return filepath.Join(dir, "cmds.bolt")
}
