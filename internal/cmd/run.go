package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"go.followtheprocess.codes/cli"

	"github.com/reqfile/reqfile/internal/export"
	"github.com/reqfile/reqfile/internal/run"
	"github.com/reqfile/reqfile/internal/template"
)

type runOptions struct {
	File    string
	Env     string
	Prompts []string
	Secrets []string
	Test    bool
	Debug   bool
}

func keyValues(pairs []string) map[string]string {
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		out[name] = value
	}
	return out
}

// runCmd returns the run subcommand: template a request file, execute it
// over the network, and optionally assert against its declared %response.
func runCmd() (*cli.Command, error) {
	var options runOptions

	return cli.New(
		"run",
		cli.Short("Execute the request in a request file"),
		cli.Arg(&options.File, "file", "Path to the request file"),
		cli.Flag(&options.Env, "env", 'e', "Environment to template against"),
		cli.Flag(&options.Prompts, "prompt", 'p', "Prompt value as name=value, may be repeated"),
		cli.Flag(&options.Secrets, "secret", 's', "Secret value as name=value, may be repeated"),
		cli.Flag(&options.Test, "test", 't', "Assert the response against the file's declared %response"),
		cli.Flag(&options.Debug, "debug", 'd', "Enable debug logging"),
		cli.Run(func(ctx context.Context, cmd *cli.Command) error {
			logger := newLogger(cmd.Stderr(), options.Debug, "reqfile")

			source, err := readFile(options.File)
			if err != nil {
				return err
			}

			params := template.Params{
				Prompts: keyValues(options.Prompts),
				Secrets: keyValues(options.Secrets),
			}
			if options.Env != "" {
				params.Env = &options.Env
			}

			logger.Debug("running request file", slog.String("file", options.File), slog.Bool("test", options.Test))

			result, err := run.File(ctx, source, run.Options{Params: params, Test: options.Test})
			if err != nil {
				return err
			}

			rendered, err := export.ExportResponse(result.Response, export.ResponseHTTPMessage)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.Stdout(), rendered)

			if result.Assert != nil {
				return result.Assert
			}
			return nil
		}),
	)
}
