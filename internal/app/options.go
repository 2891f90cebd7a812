package app

import (
	"time"

	"softkill/internal/pattern"
	"softkill/internal/proc"
	"softkill/internal/sig"
)

// OutputMode controls how much of the run is reported.
type OutputMode int

const (
	OutputNormal OutputMode = iota
	OutputVerbose
	OutputQuiet
)

// ShowNormal reports whether warnings and diagnostics should render.
func (m OutputMode) ShowNormal() bool { return m != OutputQuiet }

// ShowVerbose reports whether per-signal progress should render.
func (m OutputMode) ShowVerbose() bool { return m == OutputVerbose }

// Options is the fully resolved run configuration. The CLI layer builds it
// once; it is read-only for the rest of the run.
type Options struct {
	Patterns        pattern.Set
	TerminateSignal sig.Signal
	KillSignal      sig.Signal
	WaitTime        time.Duration // 0 disables the polling phase
	PollInterval    time.Duration
	Kill            bool // escalate to KillSignal after the wait window
	WholeCommand    bool // match the full command line instead of the program name
	OwnerFilter     bool
	OwnerUID        uint32
	DryRun          bool
	Output          OutputMode
}

// Selected reports whether rec is picked up by the configured patterns.
// The owner filter is a cheap reject evaluated before any pattern runs.
func (o *Options) Selected(rec proc.Record) bool {
	if o.OwnerFilter && rec.UID != o.OwnerUID {
		return false
	}
	return o.Patterns.Match(o.subject(rec))
}

func (o *Options) subject(rec proc.Record) string {
	if o.WholeCommand {
		return rec.Cmdline
	}
	return rec.Name
}
