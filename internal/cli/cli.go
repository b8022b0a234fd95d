package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
)

// Version is reported by the version command.
var Version = "v0.1.0-dev"

// Exit codes.
const (
	ExitFailure = 1
	ExitUsage   = 2
)

// ExitError is an error that carries a process exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...any) *ExitError {
	return &ExitError{Code: ExitUsage, Message: fmt.Sprintf(format, args...)}
}

func failure(err error) *ExitError {
	return &ExitError{Code: ExitFailure, Message: err.Error()}
}

const usage = `minigrad - scalar autodiff and tiny MLPs.

Usage:
  minigrad <command> [options]

Commands:
  version   Print the version
  train     Train an MLP from an HCL config (XOR defaults without -config)
  graph     Write the DOT graph of the reference expression

Run 'minigrad <command> -h' for command options.
`

// Run executes the command line args (without the program name).
//
// Regular output goes to stdout; logs and usage go to stderr. Returned errors
// are always *ExitError.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return usageError("missing command")
	}

	var err error
	switch cmd, rest := args[0], args[1:]; cmd {
	case "version":
		fmt.Fprintf(stdout, "minigrad %s\n", Version)
	case "train":
		err = runTrain(ctx, rest, stdout, stderr)
	case "graph":
		err = runGraph(rest, stdout, stderr)
	case "help", "-h", "-help", "--help":
		fmt.Fprint(stdout, usage)
	default:
		fmt.Fprint(stderr, usage)
		return usageError("unknown command %q", cmd)
	}

	if err == nil || errors.Is(err, flag.ErrHelp) {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	return failure(err)
}

// parseFlags parses args into fs and maps flag errors to usage errors.
func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return usageError("%s", err.Error())
	}
	if fs.NArg() > 0 {
		return usageError("%s: unexpected arguments: %s", fs.Name(), strings.Join(fs.Args(), " "))
	}
	return nil
}
