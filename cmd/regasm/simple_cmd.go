package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/risor-io/regasm/simple"
)

func newSimpleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simple [file]",
		Short: "Run a program for the minimal mov/inc/dec/jnz machine",
		Long: "Run a program for the minimal register machine: one space " +
			"separated instruction per line, jnz jumps relative to itself. " +
			"Prints the final registers.",
		Args: cobra.MaximumNArgs(1),
		RunE: simpleHandler,
	}
	addInputFlags(cmd)
	return cmd
}

func simpleHandler(cmd *cobra.Command, args []string) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}
	source, _, err := getSource(cmd, args)
	if err != nil {
		return err
	}
	var program []string
	if trimmed := strings.TrimRight(source, "\r\n"); trimmed != "" {
		program = strings.Split(trimmed, "\n")
	}
	registers, err := simple.RunContext(cmd.Context(), program)
	if err != nil {
		return err
	}
	if format == "json" {
		return writeJSON(cmd.OutOrStdout(), registers)
	}
	writeRegisters(cmd.OutOrStdout(), registers)
	return nil
}
