// Package cmd implements reqfile's CLI: ast, parse, export, run and
// diagnose subcommands over go.followtheprocess.codes/cli, one factory
// function per subcommand.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.followtheprocess.codes/cli"
	"go.followtheprocess.codes/log"
)

//nolint:gochecknoglobals // set by the linker at build time
var (
	version = "dev"
	commit  = ""
	date    = ""
)

// Build builds and returns the reqfile CLI.
func Build() (*cli.Command, error) {
	var debug bool

	return cli.New(
		"reqfile",
		cli.Short("A command line toolkit for request files"),
		cli.Version(version),
		cli.Commit(commit),
		cli.BuildDate(date),
		cli.Example("Show the raw block structure of a file", "reqfile ast demo.req.md"),
		cli.Example("Validate a file and print its parsed form", "reqfile parse demo.req.md"),
		cli.Example("Execute the request in a file", "reqfile run demo.req.md"),
		cli.Example("Execute and assert against the declared response", "reqfile run demo.req.md --test"),
		cli.Example("Render the request as a curl command", "reqfile export demo.req.md --format curl"),
		cli.Example("Print parse errors as LSP-style diagnostics", "reqfile diagnose demo.req.md"),
		cli.Flag(&debug, "debug", 'd', "Enable debug logs"),
		cli.SubCommands(
			astCmd,
			parseCmd,
			exportCmd,
			runCmd,
			diagnoseCmd,
		),
		cli.Run(func(ctx context.Context, cmd *cli.Command) error {
			fmt.Fprintln(cmd.Stdout(), "reqfile: run, ast, parse, export or diagnose a request file. See --help.")
			return nil
		}),
	)
}

func newLogger(stderr io.Writer, debug bool, prefix string) *log.Logger {
	level := log.LevelInfo
	if debug {
		level = log.LevelDebug
	}
	return log.New(stderr, log.WithLevel(level), log.Prefix(prefix))
}

func readFile(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
