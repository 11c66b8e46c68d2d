// Package cli implements the lambda command line: parsing, type inference
// and enumeration over a YAML-defined language.
package cli

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/lucasem/program-induction/grammar"
	"github.com/lucasem/program-induction/internal/frontier"
	"github.com/lucasem/program-induction/lambda"
	"github.com/lucasem/program-induction/typesystem"
)

const usage = `Usage: lambda <command> [options]

Commands:
  parse     -grammar FILE EXPR            parse and echo an expression
  infer     -grammar FILE EXPR            infer the type of an expression
  enumerate -grammar FILE [-n N] [-store DB] TYPE
                                          enumerate expressions of a type
`

// Run dispatches a command line. args excludes the program name. It returns
// the process exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		fmt.Fprint(stderr, usage)
		return 2
	}
	switch args[0] {
	case "parse":
		return runParse(args[1:], stdout, stderr)
	case "infer":
		return runInfer(args[1:], stdout, stderr)
	case "enumerate":
		return runEnumerate(args[1:], stdout, stderr)
	case "help", "-help", "--help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n", args[0])
		fmt.Fprint(stderr, usage)
		return 2
	}
}

// marker returns an "ok"/"error" prefix, colorized only on terminals.
func marker(w io.Writer, ok bool) string {
	color := false
	if f, isFile := w.(*os.File); isFile {
		color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	switch {
	case ok && color:
		return "\x1b[32mok\x1b[0m"
	case ok:
		return "ok"
	case color:
		return "\x1b[31merror\x1b[0m"
	default:
		return "error"
	}
}

func loadLanguage(path string, stderr io.Writer) (*lambda.Language, bool) {
	if path == "" {
		fmt.Fprintln(stderr, "a -grammar file is required")
		return nil, false
	}
	l, err := grammar.Load(path)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", marker(stderr, false), err)
		return nil, false
	}
	return l, true
}

func runParse(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("parse", flag.ContinueOnError)
	fs.SetOutput(stderr)
	grammarPath := fs.String("grammar", "", "YAML language definition")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "parse takes exactly one expression")
		return 2
	}
	l, ok := loadLanguage(*grammarPath, stderr)
	if !ok {
		return 1
	}
	expr, err := l.Parse(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", marker(stderr, false), err)
		return 1
	}
	fmt.Fprintf(stdout, "%s %s\n", marker(stdout, true), l.Stringify(expr))
	return 0
}

func runInfer(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("infer", flag.ContinueOnError)
	fs.SetOutput(stderr)
	grammarPath := fs.String("grammar", "", "YAML language definition")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "infer takes exactly one expression")
		return 2
	}
	l, ok := loadLanguage(*grammarPath, stderr)
	if !ok {
		return 1
	}
	expr, err := l.Parse(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", marker(stderr, false), err)
		return 1
	}
	tp, err := l.Infer(expr)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", marker(stderr, false), err)
		return 1
	}
	fmt.Fprintf(stdout, "%s %s : %s\n", marker(stdout, true), l.Stringify(expr), tp)
	return 0
}

func runEnumerate(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("enumerate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	grammarPath := fs.String("grammar", "", "YAML language definition")
	n := fs.Int("n", 10, "number of expressions to produce")
	storePath := fs.String("store", "", "SQLite database recording the run")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "enumerate takes exactly one request type")
		return 2
	}
	l, ok := loadLanguage(*grammarPath, stderr)
	if !ok {
		return 1
	}
	request, err := typesystem.Parse(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", marker(stderr, false), err)
		return 1
	}

	var run *frontier.Run
	if *storePath != "" {
		store, err := frontier.Open(*storePath)
		if err != nil {
			fmt.Fprintf(stderr, "%s: %v\n", marker(stderr, false), err)
			return 1
		}
		defer store.Close()
		run, err = store.Begin(request.String())
		if err != nil {
			fmt.Fprintf(stderr, "%s: %v\n", marker(stderr, false), err)
			return 1
		}
	}

	count := 0
	failed := false
	l.Enumerate(request, func(expr lambda.Expression, logProb float64) bool {
		count++
		text := l.Stringify(expr)
		fmt.Fprintf(stdout, "%10.4f\t%s\n", logProb, text)
		if run != nil {
			if err := run.Add(text, logProb); err != nil {
				fmt.Fprintf(stderr, "%s: %v\n", marker(stderr, false), err)
				failed = true
				return false
			}
		}
		return count < *n
	})
	if failed {
		return 1
	}
	return 0
}
