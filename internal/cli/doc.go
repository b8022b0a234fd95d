// Package cli implements the minigrad command line: flag parsing, logger
// setup, subcommand dispatch and exit codes.
package cli
