package main

import (
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// addInputFlags registers the flags that select where source code is read
// from.
func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("code", "c", "", "Code to process")
	cmd.Flags().Bool("stdin", false, "Read code from stdin")
}

// getSource determines the source code to process. There are three
// possibilities:
//  1. --code <code>
//  2. --stdin (read code from stdin)
//  3. path as args[0]
//
// The returned filename is empty unless the code was read from a file.
func getSource(cmd *cobra.Command, args []string) (string, string, error) {
	codeSet := cmd.Flags().Changed("code")
	stdinSet, _ := cmd.Flags().GetBool("stdin")
	pathSupplied := len(args) > 0

	count := 0
	for _, set := range []bool{codeSet, stdinSet, pathSupplied} {
		if set {
			count++
		}
	}
	if count > 1 {
		return "", "", errors.New("multiple input sources specified")
	}
	if count == 0 {
		return "", "", errors.New("no input provided")
	}

	switch {
	case stdinSet:
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", err
		}
		return string(data), "", nil
	case pathSupplied:
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", err
		}
		return string(data), args[0], nil
	}
	code, _ := cmd.Flags().GetString("code")
	return code, "", nil
}
