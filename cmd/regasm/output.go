package main

import (
	"encoding/json"
	goerrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/hokaccha/go-prettyjson"
	"github.com/mattn/go-isatty"
	"github.com/spf13/viper"

	"github.com/risor-io/regasm/errors"
)

var outputFormatsCompletion = []string{"json", "text"}

var red = color.New(color.FgRed).SprintFunc()

// errReported marks a failure whose diagnostic was already printed.
var errReported = goerrors.New("errors reported")

func printError(err error) {
	if goerrors.Is(err, errReported) {
		return
	}
	var fe errors.FormattableError
	if goerrors.As(err, &fe) {
		fmt.Fprint(os.Stderr, errors.Format(err, useColor(os.Stderr)))
		return
	}
	fmt.Fprintf(os.Stderr, "%s\n", red(err.Error()))
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func useColor(w io.Writer) bool {
	if color.NoColor {
		return false
	}
	f, ok := w.(*os.File)
	return ok && isTerminal(f)
}

func outputFormat() (string, error) {
	format := strings.ToLower(viper.GetString("output"))
	switch format {
	case "", "text", "json":
		return format, nil
	}
	return "", fmt.Errorf("unknown output format: %s", format)
}

func writeJSON(w io.Writer, v any) error {
	var data []byte
	var err error
	if useColor(w) {
		data, err = prettyjson.Marshal(v)
	} else {
		data, err = json.MarshalIndent(v, "", "  ")
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
