package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"softkill/internal/app"
	"softkill/internal/pattern"
	"softkill/internal/proc"
)

var (
	flagWaitTime        float64
	flagNoKill          bool
	flagTerminateSignal string
	flagKillSignal      string
	flagWholeCommand    bool
	flagUser            string
	flagMine            bool
	flagDryRun          bool
	flagVerbose         bool
	flagQuiet           bool
	flagColor           string
	flagListSignals     bool
	flagConfig          string
)

// set when the run completes but leaves processes alive
var runFailed bool

var rootCmd = &cobra.Command{
	Use:   "softkill",
	Short: "Gracefully terminate processes matching patterns read from stdin",
	Long: `softkill reads a list of regular expressions from stdin, one per line,
sends a terminate signal to every matching process, waits for them to exit,
and escalates to a kill signal for any process that does not exit in time.

Lines starting with # are comments and blank lines are ignored. Patterns are
case-insensitive and match anywhere in the subject unless anchored with ^/$.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagListSignals {
			listSignals(os.Stdout)
			return nil
		}

		opts, err := resolveOptions(cmd)
		if err != nil {
			return err
		}
		applyColorMode(flagColor)
		sty := newStyles()

		if opts.Output.ShowNormal() && term.IsTerminal(int(os.Stdin.Fd())) {
			fmt.Fprintln(os.Stderr, sty.warn.Render(
				"WARNING: Reading the process list from a TTY. Finish with ^D, abort with ^C."))
		}

		patterns, err := pattern.Parse(os.Stdin)
		if err != nil {
			return fmt.Errorf("load patterns: %w", err)
		}
		opts.Patterns = patterns

		rep := newConsoleReporter(opts, sty)
		res, err := app.NewRunner(opts, proc.New(), rep).Run()
		if err != nil {
			return err
		}
		if !res.Success() {
			runFailed = true
		}
		return nil
	},
}

func init() {
	flags := rootCmd.Flags()
	flags.Float64VarP(&flagWaitTime, "wait-time", "w", 5.0, "Seconds to wait for processes to exit; 0 skips waiting")
	flags.BoolVar(&flagNoKill, "no-kill", false, "Never escalate to the kill signal; report survivors instead")
	flags.StringVarP(&flagTerminateSignal, "terminate-signal", "s", "term", "Signal sent first (name or number)")
	flags.StringVar(&flagKillSignal, "kill-signal", "kill", "Signal sent to processes that outlive the wait window")
	flags.BoolVarP(&flagWholeCommand, "whole-command", "W", false, "Match the full command line instead of the program name")
	flags.StringVarP(&flagUser, "user", "u", "", "Only match processes owned by this user")
	flags.BoolVarP(&flagMine, "mine", "m", false, "Only match processes owned by you")
	flags.BoolVarP(&flagDryRun, "dry-run", "n", false, "Only show what would be signaled; implies --verbose")
	flags.BoolVarP(&flagVerbose, "verbose", "v", false, "Show every signal as it is sent")
	flags.BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress all output")
	flags.StringVar(&flagColor, "color", "auto", "Color output: auto, always or never")
	flags.BoolVar(&flagListSignals, "list-signals", false, "List supported signals and exit")
	flags.StringVar(&flagConfig, "config", "", "Path to a defaults file (poll interval, wait time)")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !flagQuiet {
			applyColorMode(flagColor)
			sty := newStyles()
			fmt.Fprintln(os.Stderr, sty.err.Render("ERROR: "+err.Error()))
		}
		os.Exit(1)
	}
	if runFailed {
		os.Exit(1)
	}
}
