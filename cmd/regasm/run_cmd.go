package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/risor-io/regasm"
	"github.com/risor-io/regasm/vm"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [file]",
		Short: "Run a program and print its output",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runHandler,
	}
	addInputFlags(cmd)
	cmd.Flags().Bool("trace", false, "Print each executed instruction to stderr")
	cmd.Flags().Bool("registers", false, "Also print the final registers")
	return cmd
}

type runResult struct {
	Output    string       `json:"output"`
	Registers vm.Registers `json:"registers,omitempty"`
}

func runHandler(cmd *cobra.Command, args []string) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}
	source, filename, err := getSource(cmd, args)
	if err != nil {
		return err
	}
	code, err := regasm.Compile(source, regasm.WithFilename(filename))
	if err != nil {
		return err
	}

	opts := []vm.Option{
		vm.WithMaxCallDepth(viper.GetInt("max-call-depth")),
		vm.WithLogger(regasm.Logger()),
	}
	if trace, _ := cmd.Flags().GetBool("trace"); trace {
		opts = append(opts, vm.WithObserver(&traceObserver{w: cmd.ErrOrStderr()}))
	}
	machine := vm.New(code, opts...)
	output, err := machine.Run(cmd.Context())
	if err != nil {
		return err
	}

	result := runResult{Output: output}
	if showRegisters, _ := cmd.Flags().GetBool("registers"); showRegisters {
		result.Registers = machine.Registers()
	}
	out := cmd.OutOrStdout()
	if format == "json" {
		return writeJSON(out, result)
	}
	fmt.Fprintln(out, result.Output)
	if result.Registers != nil {
		writeRegisters(out, result.Registers)
	}
	return nil
}

func writeRegisters(w io.Writer, registers map[string]int64) {
	for _, name := range sortedKeys(registers) {
		fmt.Fprintf(w, "%s = %d\n", name, registers[name])
	}
}

// traceObserver prints each step and call as the program runs.
type traceObserver struct {
	vm.NoOpObserver
	w io.Writer
}

func (o *traceObserver) OnStep(event vm.StepEvent) bool {
	indent := strings.Repeat("  ", event.CallDepth)
	fmt.Fprintf(o.w, "[%4d] %s%s\n", event.PC, indent, event.Instruction)
	return true
}

func (o *traceObserver) OnCall(event vm.CallEvent) bool {
	fmt.Fprintf(o.w, "       -> %s (%d)\n", event.Label, event.Target)
	return true
}
