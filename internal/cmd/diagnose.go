package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"go.followtheprocess.codes/cli"

	"github.com/reqfile/reqfile/internal/diagnostics"
	"github.com/reqfile/reqfile/internal/parser"
)

type diagnoseOptions struct {
	File  string
	Debug bool
}

// diagnoseCmd returns the diagnose subcommand, which always prints
// LSP-style diagnostics (empty array on success) rather than failing the
// process on a parse error, for editor-tooling consumption (spec.md §4.12).
func diagnoseCmd() (*cli.Command, error) {
	var options diagnoseOptions

	return cli.New(
		"diagnose",
		cli.Short("Print parse errors as LSP-style diagnostics"),
		cli.Arg(&options.File, "file", "Path to the request file"),
		cli.Flag(&options.Debug, "debug", 'd', "Enable debug logging"),
		cli.Run(func(ctx context.Context, cmd *cli.Command) error {
			logger := newLogger(cmd.Stderr(), options.Debug, "reqfile")

			source, err := readFile(options.File)
			if err != nil {
				return err
			}

			_, errs := parser.Parse(source)
			logger.Debug("diagnostics requested", slog.Int("errors", len(errs)))
			diags := diagnostics.FromErrors(source, errs)

			out, err := json.MarshalIndent(diags, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.Stdout(), string(out))
			return nil
		}),
	)
}
