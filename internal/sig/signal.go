package sig

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"
)

// Signal pairs a deliverable unix signal with its symbolic name.
type Signal struct {
	name string
	num  unix.Signal
}

// The supported subset of POSIX signals, in the order list-signals prints them.
var table = []Signal{
	{"ABRT", unix.SIGABRT},
	{"ALRM", unix.SIGALRM},
	{"HUP", unix.SIGHUP},
	{"INT", unix.SIGINT},
	{"KILL", unix.SIGKILL},
	{"QUIT", unix.SIGQUIT},
	{"STOP", unix.SIGSTOP},
	{"TERM", unix.SIGTERM},
	{"USR1", unix.SIGUSR1},
	{"USR2", unix.SIGUSR2},
}

// Term and Kill are the default terminate and escalation signals.
var (
	Term = Signal{"TERM", unix.SIGTERM}
	Kill = Signal{"KILL", unix.SIGKILL}
)

// Name returns the short symbolic name, e.g. "TERM".
func (s Signal) Name() string { return s.name }

// Basename returns the full symbolic name, e.g. "SIGTERM".
func (s Signal) Basename() string { return "SIG" + s.name }

// Num returns the signal for delivery via unix.Kill.
func (s Signal) Num() unix.Signal { return s.num }

// Number returns the numeric signal value.
func (s Signal) Number() int { return int(s.num) }

func (s Signal) String() string { return s.name }

// List returns the supported signals in declaration order.
func List() []Signal {
	out := make([]Signal, len(table))
	copy(out, table)
	return out
}

// Parse resolves a signal from its symbolic name (case-insensitive, with or
// without the SIG prefix) or its number.
func Parse(text string) (Signal, error) {
	upper := strings.ToUpper(strings.TrimSpace(text))
	number, numeric := -1, false
	if n, err := strconv.Atoi(upper); err == nil {
		number, numeric = n, true
	}

	for _, s := range table {
		if upper == s.name || upper == s.Basename() || (numeric && number == s.Number()) {
			return s, nil
		}
	}
	return Signal{}, fmt.Errorf("unknown signal %q", text)
}
