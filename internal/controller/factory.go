package controller

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// Output selects which UI implementation renders results.
type Output string

// Supported Output values.
const (
	OutputAuto  Output = "auto"
	OutputPlain Output = "plain"
	OutputTUI   Output = "tui"
)

// ParseOutput validates a user supplied output name. Empty means auto.
func ParseOutput(s string) (Output, error) {
	switch Output(s) {
	case "", OutputAuto:
		return OutputAuto, nil
	case OutputPlain, OutputTUI:
		return Output(s), nil
	default:
		return "", fmt.Errorf("unknown ui %q (want auto, plain or tui)", s)
	}
}

// NewUI creates the UI for out. Auto picks the TUI when the command writes
// to a terminal and plain text otherwise.
func NewUI(cmd *cobra.Command, out Output) UI {
	switch out {
	case OutputTUI:
		return NewTUI(cmd.OutOrStdout())
	case OutputPlain:
		return NewSimpleUI(cmd)
	default:
		if IsTTY(cmd.OutOrStdout()) {
			return NewTUI(cmd.OutOrStdout())
		}

		return NewSimpleUI(cmd)
	}
}

// IsTTY checks if the given writer is a terminal (TTY).
// Returns false if the output is redirected to a file or pipe.
func IsTTY(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}

	fileInfo, err := file.Stat()
	if err != nil {
		return false
	}

	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
