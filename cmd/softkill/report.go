package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/briandowns/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"softkill/internal/app"
	"softkill/internal/proc"
	"softkill/internal/sig"
)

type styles struct {
	err   lipgloss.Style
	warn  lipgloss.Style
	proc  lipgloss.Style
	faint lipgloss.Style
}

// applyColorMode forces or disables the lipgloss color profile. Auto keeps
// lipgloss's own terminal detection.
func applyColorMode(mode string) {
	switch mode {
	case "always":
		lipgloss.SetColorProfile(termenv.ANSI)
	case "never":
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

func newStyles() styles {
	return styles{
		err:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		warn:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		proc:  lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		faint: lipgloss.NewStyle().Faint(true),
	}
}

// consoleReporter renders run progress to stderr, honoring the output mode.
// During the wait phase in normal mode it shows a spinner instead of
// per-process lines.
type consoleReporter struct {
	mode  app.OutputMode
	whole bool
	sty   styles
	spin  *spinner.Spinner
}

func newConsoleReporter(opts app.Options, sty styles) *consoleReporter {
	return &consoleReporter{mode: opts.Output, whole: opts.WholeCommand, sty: sty}
}

// describe renders "pid (name)", plus the faint command line in
// whole-command mode where the name alone would not say what matched.
func (r *consoleReporter) describe(rec proc.Record) string {
	pid := r.sty.proc.Render(strconv.Itoa(rec.PID))
	name := r.sty.proc.Render(rec.Name)
	if r.whole {
		return fmt.Sprintf("%s (%s): %s", pid, name, r.sty.faint.Render(rec.Cmdline))
	}
	return fmt.Sprintf("%s (%s)", pid, name)
}

func (r *consoleReporter) Sending(s sig.Signal, rec proc.Record) {
	if r.mode.ShowVerbose() {
		fmt.Fprintf(os.Stderr, "Sending %s to process %s\n", s, r.describe(rec))
	}
}

func (r *consoleReporter) SendFailed(s sig.Signal, rec proc.Record, err error) {
	if r.mode.ShowNormal() {
		fmt.Fprintf(os.Stderr, "%s %s: %s\n",
			r.sty.err.Render("Failed to send "+s.Name()+" to"),
			r.describe(rec),
			r.sty.err.Render(err.Error()))
	}
}

func (r *consoleReporter) Exited(rec proc.Record) {
	if r.mode.ShowVerbose() {
		fmt.Fprintf(os.Stderr, "Process shut down: %s\n", r.describe(rec))
	}
}

func (r *consoleReporter) WaitBegin(pending int) {
	// The spinner would clobber verbose per-process lines and is pointless
	// without a terminal.
	if r.mode != app.OutputNormal || !term.IsTerminal(int(os.Stderr.Fd())) {
		return
	}
	r.spin = spinner.New(spinner.CharSets[21], 120*time.Millisecond, spinner.WithWriter(os.Stderr))
	if pending == 1 {
		r.spin.Suffix = " Waiting for 1 process to exit..."
	} else {
		r.spin.Suffix = fmt.Sprintf(" Waiting for %d processes to exit...", pending)
	}
	r.spin.Start()
}

func (r *consoleReporter) WaitEnd() {
	if r.spin != nil {
		r.spin.Stop()
		r.spin = nil
	}
}

func (r *consoleReporter) Escalate() {
	if r.mode.ShowVerbose() {
		fmt.Fprintln(os.Stderr, r.sty.err.Render("Timeout reached. Forcefully shutting down processes."))
	}
}

func (r *consoleReporter) StillAlive(rec proc.Record) {
	if r.mode.ShowNormal() {
		fmt.Fprintf(os.Stderr, "%s %s\n", r.sty.warn.Render("WARNING: Still alive:"), r.describe(rec))
	}
}

func (r *consoleReporter) WouldSend(s sig.Signal, rec proc.Record) {
	fmt.Fprintf(os.Stdout, "Would have sent %s to process %s\n", s, r.describe(rec))
}
