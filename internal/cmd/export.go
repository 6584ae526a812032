package cmd

import (
	"context"
	"fmt"

	"go.followtheprocess.codes/cli"

	"github.com/reqfile/reqfile/internal/export"
	"github.com/reqfile/reqfile/internal/parser"
)

type exportOptions struct {
	File   string
	Format string
	Debug  bool
}

// exportCmd returns the export subcommand, which parses a file and
// renders its %request block in the requested format (spec.md §4.8).
func exportCmd() (*cli.Command, error) {
	var options exportOptions

	return cli.New(
		"export",
		cli.Short("Render a request file's request in an alternative format"),
		cli.Arg(&options.File, "file", "Path to the request file"),
		cli.Flag(&options.Format, "format", 'f', "Export format, one of (http|curl|json)", cli.FlagDefault("http")),
		cli.Flag(&options.Debug, "debug", 'd', "Enable debug logging"),
		cli.Run(func(ctx context.Context, cmd *cli.Command) error {
			source, err := readFile(options.File)
			if err != nil {
				return err
			}

			parsed, errs := parser.Parse(source)
			if errs != nil {
				return fmt.Errorf("%s: %d parse error(s)", options.File, len(errs))
			}

			format, err := export.ParseRequestFormat(options.Format)
			if err != nil {
				return err
			}

			rendered, err := export.ExportRequest(parsed.Request.Value, format)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.Stdout(), rendered)
			return nil
		}),
	)
}
