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

type parseOptions struct {
	File  string
	Debug bool
}

// parseCmd returns the parse subcommand, which runs the full semantic
// analyzer and prints either the validated request or its diagnostics.
func parseCmd() (*cli.Command, error) {
	var options parseOptions

	return cli.New(
		"parse",
		cli.Short("Validate a request file and print its parsed form"),
		cli.Arg(&options.File, "file", "Path to the request file"),
		cli.Flag(&options.Debug, "debug", 'd', "Enable debug logging"),
		cli.Run(func(ctx context.Context, cmd *cli.Command) error {
			logger := newLogger(cmd.Stderr(), options.Debug, "reqfile")

			source, err := readFile(options.File)
			if err != nil {
				return err
			}

			parsed, errs := parser.Parse(source)
			if errs != nil {
				logger.Debug("parse failed", slog.Int("errors", len(errs)))
				diags := diagnostics.FromErrors(source, errs)
				out, marshalErr := json.MarshalIndent(diags, "", "  ")
				if marshalErr != nil {
					return marshalErr
				}
				fmt.Fprintln(cmd.Stderr(), string(out))
				return fmt.Errorf("%s: %d parse error(s)", options.File, len(errs))
			}

			out, err := json.MarshalIndent(parsed.Request.Value, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.Stdout(), string(out))
			return nil
		}),
	)
}
