package main

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"softkill/internal/sig"
)

// listSignals prints the supported signal table, with surrounding help text
// only when stdout goes to a terminal.
func listSignals(w io.Writer) {
	tty := term.IsTerminal(int(os.Stdout.Fd()))
	if tty {
		fmt.Fprintln(w, "Currently supported signals:")
	}
	for _, s := range sig.List() {
		fmt.Fprintf(w, "%d\t%s\n", s.Number(), s.Name())
	}
	if tty {
		fmt.Fprintln(w, "Signal names do not require the SIG prefix and are case-insensitive.")
	}
}
