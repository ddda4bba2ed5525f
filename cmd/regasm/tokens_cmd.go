package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/risor-io/regasm"
	"github.com/risor-io/regasm/token"
)

func newTokensCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokens [file]",
		Short: "Print the tokens of a program",
		Args:  cobra.MaximumNArgs(1),
		RunE:  tokensHandler,
	}
	addInputFlags(cmd)
	return cmd
}

type tokenJSON struct {
	Type    token.Type `json:"type"`
	Literal string     `json:"literal"`
	Line    int        `json:"line"`
	Column  int        `json:"column"`
	Length  int        `json:"length"`
}

func tokensHandler(cmd *cobra.Command, args []string) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}
	source, filename, err := getSource(cmd, args)
	if err != nil {
		return err
	}
	tokens, err := regasm.Tokenize(source, regasm.WithFilename(filename))
	if err != nil {
		return err
	}

	if format == "json" {
		out := make([]tokenJSON, 0, len(tokens))
		for _, tok := range tokens {
			out = append(out, tokenJSON{
				Type:    tok.Type,
				Literal: tok.Literal,
				Line:    tok.Span.LineNumber(),
				Column:  tok.Span.ColumnNumber(),
				Length:  tok.Span.Length,
			})
		}
		return writeJSON(cmd.OutOrStdout(), out)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, tok := range tokens {
		fmt.Fprintf(w, "%d:%d\t%s\t%s\n", tok.Span.LineNumber(), tok.Span.ColumnNumber(), tok.Type, tok.Literal)
	}
	return w.Flush()
}
