package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"
	"golang.org/x/term"

	scope "github.com/scope-lang/go-scope"
)

const (
	appName     = "scope"
	version     = "0.1.0"
	historyFile = ".scope_history"
	promptMain  = "==> "
	promptCont  = "... "
)

var colorize = term.IsTerminal(int(os.Stdout.Fd()))

func red(s string) string {
	if !colorize {
		return s
	}
	return "\x1b[31m" + s + "\x1b[0m"
}

func blue(s string) string {
	if !colorize {
		return s
	}
	return "\x1b[94m" + s + "\x1b[0m"
}

var banner = fmt.Sprintf("Scope %s REPL\nCtrl+C cancels input, Ctrl+D exits. Type :quit to exit.", version)

const helpText = `
REPL commands:
  :help    Show this help
  :quit    Exit the REPL
`

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		os.Exit(cmdRepl())
	}

	switch args[0] {
	case "repl":
		os.Exit(cmdRepl())
	case "run":
		if len(args) < 2 {
			fmt.Fprintf(os.Stderr, "usage: %s run <file.sco>\n", appName)
			os.Exit(2)
		}
		os.Exit(cmdRun(args[1]))
	case "-e", "eval":
		if len(args) < 2 {
			fmt.Fprintf(os.Stderr, "usage: %s -e <source>\n", appName)
			os.Exit(2)
		}
		os.Exit(cmdEval(args[1]))
	case "version":
		fmt.Println(version)
	case "-h", "--help", "help":
		usage()
	default:
		// a bare path runs as a script
		if _, err := os.Stat(args[0]); err == nil {
			os.Exit(cmdRun(args[0]))
		}
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, args[0])
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Printf(`Scope %s

Usage:
  %s                    Start the REPL.
  %s repl               Start the REPL.
  %s run <file.sco>     Run a script.
  %s -e <source>        Evaluate source and print the result.
  %s version            Print the version.

`, version, appName, appName, appName, appName, appName)
}

func cmdRun(file string) int {
	src, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, file, err)
		return 1
	}
	ip := scope.NewInterpreter()
	if _, err := ip.EvalSource(string(src)); err != nil {
		fmt.Fprintln(os.Stderr, red(scope.WrapErrorWithName(err, file, string(src)).Error()))
		return 1
	}
	return 0
}

func cmdEval(src string) int {
	ip := scope.NewInterpreter()
	v, err := ip.EvalSource(src)
	if err != nil {
		fmt.Fprintln(os.Stderr, red(scope.WrapErrorWithSource(err, src).Error()))
		return 1
	}
	fmt.Println(scope.FormatValue(v))
	return 0
}

func cmdRepl() int {
	fmt.Println(banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	ip := scope.NewInterpreter()

	for {
		code, ok := readByParseProbe(ln, promptMain, promptCont)
		if !ok {
			fmt.Println()
			return 0
		}

		trimmed := strings.TrimSpace(code)
		if strings.HasPrefix(trimmed, ":") {
			switch strings.ToLower(trimmed) {
			case ":quit":
				return 0
			case ":help":
				fmt.Print(helpText)
			default:
				fmt.Printf("unknown command. Type :quit to exit.\n")
			}
			continue
		}
		if trimmed == "" {
			continue
		}

		ln.AppendHistory(code)

		v, err := ip.EvalPersistentSource(code)
		if err != nil {
			fmt.Fprintln(os.Stderr, red(scope.WrapErrorWithSource(err, code).Error()))
			continue
		}
		fmt.Println(blue(scope.FormatValue(v)))
	}
}

// readByParseProbe accumulates lines until the buffer parses, or until the
// parse error is no longer an end-of-input error (the evaluation path will
// report it properly).
func readByParseProbe(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder
	for {
		var (
			line string
			err  error
		)
		if b.Len() == 0 {
			line, err = ln.Prompt(prompt)
		} else {
			line, err = ln.Prompt(cont)
		}
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			b.Reset()
			continue
		}
		if err != nil {
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if _, perr := scope.Parse(src); perr == nil || !scope.IsIncomplete(perr) {
			return src, true
		}
	}
}
