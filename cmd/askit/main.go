package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
)

func main() {
	exitCode := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	os.Exit(exitCode)
}

// run is the main entry point for the CLI, separated for testing
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := newCLI(stdin, stdout, stderr).rootCmd()
	root.SetArgs(args)

	// Unknown commands are usage errors, not command failures.
	if _, _, err := root.Find(args); err != nil {
		fmt.Fprintf(stderr, FmtError, err)
		return ExitCodeUsageError
	}

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, FmtError, err)
		return exitCodeFor(err)
	}
	return ExitCodeSuccess
}
