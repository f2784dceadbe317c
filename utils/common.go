package utils

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// stdoutIsTerminal is computed once. Colors only make sense when printing to a terminal.
var stdoutIsTerminal = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

// CanColorize wraps a colorizing function so that it degrades to plain
// formatting when colorization is disabled or stdout is not a terminal.
func CanColorize(col func(...interface{}) string) func(...interface{}) string {
	return func(is ...interface{}) string {
		if opts.NoColorize || !stdoutIsTerminal {
			return fmt.Sprintf(strings.Repeat("%v", len(is)), is...)
		}
		return col(is...)
	}
}
