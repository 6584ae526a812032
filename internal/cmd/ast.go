package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"go.followtheprocess.codes/cli"

	"github.com/reqfile/reqfile/internal/ast"
)

type astOptions struct {
	File  string
	Debug bool
}

type astBlock struct {
	Kind string `json:"kind"`
	Body string `json:"body,omitempty"`
	Span [2]int `json:"span"`
}

// astCmd returns the ast subcommand, which prints the raw block structure
// of a file before semantic validation: one entry per %config, %request,
// %response block and markdown comment, in source order.
func astCmd() (*cli.Command, error) {
	var options astOptions

	return cli.New(
		"ast",
		cli.Short("Print the raw block structure of a request file"),
		cli.Arg(&options.File, "file", "Path to the request file"),
		cli.Flag(&options.Debug, "debug", 'd', "Enable debug logging"),
		cli.Run(func(ctx context.Context, cmd *cli.Command) error {
			logger := newLogger(cmd.Stderr(), options.Debug, "reqfile")

			source, err := readFile(options.File)
			if err != nil {
				return err
			}
			logger.Debug("read file", slog.String("path", options.File), slog.Int("bytes", len(source)))

			tree := ast.From(source)
			blocks := make([]astBlock, 0, len(tree.Nodes))
			for _, n := range tree.Nodes {
				sp := [2]int{n.Span.Start, n.Span.End}
				switch node := n.Value.(type) {
				case ast.ConfigBlock:
					blocks = append(blocks, astBlock{Kind: "config", Body: node.Body.Value, Span: sp})
				case ast.RequestBlock:
					blocks = append(blocks, astBlock{Kind: "request", Body: node.Body.Value, Span: sp})
				case ast.ResponseBlock:
					blocks = append(blocks, astBlock{Kind: "response", Body: node.Body.Value, Span: sp})
				case ast.Comment:
					blocks = append(blocks, astBlock{Kind: "comment", Body: node.Text, Span: sp})
				}
			}

			out, err := json.MarshalIndent(blocks, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.Stdout(), string(out))
			return nil
		}),
	)
}
