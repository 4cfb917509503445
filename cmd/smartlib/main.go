// Package main provides the smartlib command-line front end for the lending controller.
//
// Usage:
//
//	smartlib [global flags] <command> [command flags] [args]
//
// Global flags (also settable through ENV, LOG_LEVEL, BOOKS_PATH,
// RECORDS_PATH, STRICT_LOAD or a .env file):
//
//	-books-path    book store file (default library_data.json)
//	-records-path  borrow record store file (default borrow.json)
//	-strict-load   refuse to start when a store file is unreadable
//	-log-level     debug, info, warn or error
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/smartlib/smartlib/internal/di"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes one command and returns the process exit code:
// 0 on success, 1 when the operation failed, 2 on bad usage.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("smartlib", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { printUsage(fs, stderr) }

	app, err := di.Bootstrap(di.NewContainer(fs, args))
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "smartlib: %v\n", err)
		return 1
	}

	for _, failure := range app.Library.LoadFailures() {
		fmt.Fprintf(stderr, "warning: %v (starting with an empty store)\n", failure)
	}

	rest := fs.Args()
	if len(rest) == 0 {
		printUsage(fs, stderr)
		return 2
	}

	cmd, ok := commands[rest[0]]
	if !ok {
		fmt.Fprintf(stderr, "smartlib: unknown command %q\n", rest[0])
		printUsage(fs, stderr)
		return 2
	}

	c := &cli{
		app:    app,
		in:     bufio.NewReader(stdin),
		out:    stdout,
		errOut: stderr,
	}

	if err := cmd.run(c, rest[1:]); err != nil {
		var uerr usageError
		if errors.As(err, &uerr) {
			fmt.Fprintf(stderr, "smartlib %s: %v\nusage: smartlib %s\n", rest[0], err, cmd.usage)
			return 2
		}
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(stderr, err)
		return 1
	}

	return 0
}

func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "usage: smartlib [global flags] <command> [command flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "commands:")

	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %-11s %s\n", name, commands[name].summary)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "global flags:")
	fs.SetOutput(w)
	fs.PrintDefaults()
}
