package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/risor-io/regasm"
)

func newFmtCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fmt [file]",
		Short: "Format a program in canonical form",
		Long: "Format a program in canonical form: one statement per line, " +
			"instructions indented by four spaces. Comments are not preserved.",
		Args: cobra.MaximumNArgs(1),
		RunE: fmtHandler,
	}
	addInputFlags(cmd)
	cmd.Flags().BoolP("write", "w", false, "Write result to source file")
	return cmd
}

func fmtHandler(cmd *cobra.Command, args []string) error {
	source, filename, err := getSource(cmd, args)
	if err != nil {
		return err
	}
	program, err := regasm.Parse(cmd.Context(), source, regasm.WithFilename(filename))
	if err != nil {
		return err
	}
	formatted := program.String()
	if formatted != "" {
		formatted += "\n"
	}

	if write, _ := cmd.Flags().GetBool("write"); write {
		if filename == "" {
			return errors.New("--write requires a file argument")
		}
		return os.WriteFile(filename, []byte(formatted), 0o644)
	}
	fmt.Fprint(cmd.OutOrStdout(), formatted)
	return nil
}
