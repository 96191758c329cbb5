// Command exin runs EXIN source files.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"golang.org/x/mod/semver"

	"exin"
	"exin/internal/debugdump"
	"exin/internal/diag"
	"exin/internal/logio"
)

// Version is EXIN's language version, checked with golang.org/x/mod/semver
// when -v is given so a malformed build-time override fails loudly
// rather than printing garbage for -v.
var Version = "v0.1.0"

const usage = `usage: exin [-h] [-v] [-t N] [-d N] module

  -h        print this message and exit
  -v        print the language name and version and exit
  -t N      set the tab stop width to N (default 4)
  -d N      debug bitmask: 16 dump the identifier table to stdout,
            32 dump it to <module>.dump instead
`

const (
	debugDumpStdout = 1 << 4
	debugDumpFile   = 1 << 5
)

func main() {
	var (
		help    bool
		vers    bool
		tabSize int
		debug   int
	)
	flag.BoolVar(&help, "h", false, "print usage and exit")
	flag.BoolVar(&vers, "v", false, "print version and exit")
	flag.IntVar(&tabSize, "t", 0, "tab stop width")
	flag.IntVar(&debug, "d", 0, "debug bitmask")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if help {
		fmt.Fprint(os.Stdout, usage)
		os.Exit(0)
	}
	if vers {
		if !semver.IsValid(Version) {
			fmt.Fprintf(os.Stderr, "exin: malformed version %q\n", Version)
			os.Exit(diag.DesignError.Code())
		}
		fmt.Printf("EXIN %s\n", Version)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) != 1 {
		flag.Usage()
		os.Exit(diag.SyntaxError.Code())
	}
	modulePath := args[0]

	log := logio.Logger{}
	log.SetOutput(os.Stderr)
	defer func() { os.Exit(log.ExitCode()) }()

	interp := exin.New(
		exin.WithInput(os.Stdin),
		exin.WithOutput(os.Stdout),
		exin.WithTabSize(tabSize),
		exin.WithLogf(log.Leveledf("DEBUG")),
	)
	defer interp.Close()

	res, err := interp.Run(context.Background(), modulePath)

	if debug&(debugDumpStdout|debugDumpFile) != 0 {
		dumpTables(&log, interp, modulePath, debug)
	}

	if err != nil {
		reportError(&log, interp, err)
		return
	}
	os.Exit(res.Code)
}

func dumpTables(log *logio.Logger, interp *exin.Interp, modulePath string, debug int) {
	ev := interp.Eval()
	if ev == nil {
		return
	}
	var dest io.Writer = os.Stdout
	if debug&debugDumpFile != 0 {
		f, err := os.Create(modulePath + ".dump")
		if err != nil {
			log.Errorf("%v", err)
			return
		}
		defer f.Close()
		dest = f
	}
	debugdump.Dump(dest, ev.Scope())
}

// reportError prints a *diag.Error the way spec.md §7 requires: the "File
// <name>, line <n>" header, the offending source line, the error kind, and
// any explanation, then exits with the kind's code. Any other error (a
// caught panic, a context cancellation) is reported plainly with a generic
// failure code.
func reportError(log *logio.Logger, interp *exin.Interp, err error) {
	de, ok := diag.AsError(err)
	if !ok {
		log.Errorf("%v", err)
		return
	}
	if de.Pos.Module != "" {
		if mod := interp.Registry().Search(de.Pos.Module); mod != nil {
			fmt.Fprintf(os.Stderr, "%s\n%s\n", de.Pos.String(), mod.LineAt(de.Pos.BOL))
		} else {
			fmt.Fprintln(os.Stderr, de.Pos.String())
		}
	}
	fmt.Fprintln(os.Stderr, de.Error())
	os.Exit(de.Code())
}
