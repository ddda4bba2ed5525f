package main

import (
	goerrors "errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/risor-io/regasm/compiler"
	"github.com/risor-io/regasm/errors"
	"github.com/risor-io/regasm/parser"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Report every syntax and label error in a program",
		Args:  cobra.MaximumNArgs(1),
		RunE:  checkHandler,
	}
	addInputFlags(cmd)
	return cmd
}

type checkIssue struct {
	Code        string `json:"code"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Line        int    `json:"line"`
	Column      int    `json:"column"`
	Message     string `json:"message"`
}

func checkHandler(cmd *cobra.Command, args []string) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}
	source, filename, err := getSource(cmd, args)
	if err != nil {
		return err
	}

	result := checkSource(cmd, source, filename)
	if result == nil {
		if format == "json" {
			return writeJSON(cmd.OutOrStdout(), []checkIssue{})
		}
		fmt.Fprintln(cmd.OutOrStdout(), "ok")
		return nil
	}

	if format == "json" {
		var issues []checkIssue
		for _, err := range result.Errors {
			issue := checkIssue{Message: err.Error()}
			var fe errors.FormattableError
			if goerrors.As(err, &fe) {
				formatted := fe.ToFormatted()
				issue.Code = formatted.Code.String()
				issue.Category = formatted.Code.Category()
				issue.Description = formatted.Code.Description()
				issue.Line = formatted.Line
				issue.Column = formatted.Column
				issue.Message = formatted.Message
			}
			issues = append(issues, issue)
		}
		if err := writeJSON(cmd.OutOrStdout(), issues); err != nil {
			return err
		}
	} else {
		fmt.Fprint(cmd.OutOrStdout(), errors.Format(result, useColor(cmd.OutOrStdout())))
	}
	return errReported
}

// checkSource collects every syntax error, then the duplicate label error
// when the program parses cleanly.
func checkSource(cmd *cobra.Command, source, filename string) *multierror.Error {
	var result *multierror.Error
	if err := parser.Check(cmd.Context(), source, parser.WithFilename(filename)); err != nil {
		var merr *multierror.Error
		if goerrors.As(err, &merr) {
			return merr
		}
		return multierror.Append(result, err)
	}
	program, err := parser.Parse(cmd.Context(), source, parser.WithFilename(filename))
	if err != nil {
		return multierror.Append(result, err)
	}
	if _, err := compiler.Compile(program, compiler.WithFilename(filename)); err != nil {
		result = multierror.Append(result, err)
	}
	return result
}
