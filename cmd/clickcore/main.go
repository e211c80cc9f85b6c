// ClickCore is a data-driven engine for point-and-click adventures.
// Usage: clickcore [--version] [--plain] [--script <file>] [--trace] [--seed <n>] <content>
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/nathoo/clickcore/cli"
	"github.com/nathoo/clickcore/config"
	"github.com/nathoo/clickcore/engine"
	"github.com/nathoo/clickcore/loader"
	"github.com/nathoo/clickcore/tui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const usage = "Usage: clickcore [--version] [--plain] [--script <file>] [--trace] [--seed <n>] <content>\n"

func main() {
	cfg := config.Load()

	plain := false
	trace := false
	var contentPath string
	var scriptFile string

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("clickcore %s (commit %s, built %s)\n", version, commit, date)
			return
		case "--plain":
			plain = true
		case "--trace":
			trace = true
		case "--script":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "--script requires a file path\n")
				os.Exit(1)
			}
			i++
			scriptFile = args[i]
		case "--seed":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "--seed requires a number\n")
				os.Exit(1)
			}
			i++
			seed, err := strconv.ParseInt(args[i], 10, 64)
			if err != nil {
				fmt.Fprintf(os.Stderr, "--seed: %v\n", err)
				os.Exit(1)
			}
			cfg.Seed = seed
		default:
			if contentPath == "" {
				contentPath = args[i]
			}
		}
	}

	if contentPath == "" {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	useTUI := scriptFile == "" && !plain && isTerminal()

	// The TUI owns the terminal, so its diagnostics go to the log file or
	// nowhere.
	var fallback io.Writer = os.Stderr
	if useTUI {
		fallback = io.Discard
	}
	logOut, closeLog, err := cfg.OpenLog(fallback)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()
	logger := config.NewLogger(cfg, logOut)

	w, err := loader.LoadWorld(contentPath, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading game: %v\n", err)
		os.Exit(1)
	}

	eng := engine.New(w,
		engine.WithCapacity(cfg.Capacity),
		engine.WithLogger(logger),
		engine.WithSeed(cfg.Seed),
	)

	// Script mode: open file, force plain, echo commands.
	if scriptFile != "" {
		f, err := os.Open(scriptFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening script: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		c := cli.New(eng)
		c.In = f
		c.EchoInput = true
		c.Trace = trace
		c.Run()
		return
	}

	if !useTUI {
		c := cli.New(eng)
		c.Trace = trace
		c.Run()
		return
	}

	if err := tui.Run(eng); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
