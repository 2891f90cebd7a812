package main

import (
	"fmt"
	"os"
	"os/user"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"softkill/internal/app"
	"softkill/internal/config"
	"softkill/internal/sig"
)

// resolveOptions folds config-file defaults, environment overrides and
// command-line flags into the run options. Flags win over config values.
func resolveOptions(cmd *cobra.Command) (app.Options, error) {
	switch flagColor {
	case "auto", "always", "never":
	default:
		return app.Options{}, fmt.Errorf("invalid color mode %q (use auto, always or never)", flagColor)
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return app.Options{}, err
	}

	termSig, err := sig.Parse(flagTerminateSignal)
	if err != nil {
		return app.Options{}, fmt.Errorf("terminate signal: %w", err)
	}
	killSig, err := sig.Parse(flagKillSignal)
	if err != nil {
		return app.Options{}, fmt.Errorf("kill signal: %w", err)
	}

	wait := cfg.WaitTime
	if cmd.Flags().Changed("wait-time") {
		if flagWaitTime < 0 {
			return app.Options{}, fmt.Errorf("wait time must not be negative")
		}
		wait = time.Duration(flagWaitTime * float64(time.Second))
	}

	opts := app.Options{
		TerminateSignal: termSig,
		KillSignal:      killSig,
		WaitTime:        wait,
		PollInterval:    cfg.PollInterval,
		Kill:            !flagNoKill,
		WholeCommand:    flagWholeCommand,
		DryRun:          flagDryRun,
		Output:          outputMode(),
	}

	if flagUser != "" {
		u, err := user.Lookup(flagUser)
		if err != nil {
			return app.Options{}, fmt.Errorf("could not find user %q", flagUser)
		}
		uid, err := strconv.ParseUint(u.Uid, 10, 32)
		if err != nil {
			return app.Options{}, fmt.Errorf("parse uid of user %q: %w", flagUser, err)
		}
		opts.OwnerFilter = true
		opts.OwnerUID = uint32(uid)
	} else if flagMine {
		opts.OwnerFilter = true
		opts.OwnerUID = uint32(os.Getuid())
	}

	return opts, nil
}

// outputMode collapses the quiet/verbose/dry-run flags. Dry runs always
// render verbosely; there is nothing else for them to do.
func outputMode() app.OutputMode {
	switch {
	case flagDryRun, flagVerbose:
		return app.OutputVerbose
	case flagQuiet:
		return app.OutputQuiet
	default:
		return app.OutputNormal
	}
}
