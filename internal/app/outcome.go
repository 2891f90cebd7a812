package app

import "softkill/internal/proc"

// Status is the terminal state of one matched process.
type Status int

const (
	StatusTerminated Status = iota // exited after the terminate signal
	StatusKilled                   // exited only after the kill signal
	StatusAlive                    // survived the whole run
)

func (s Status) String() string {
	switch s {
	case StatusTerminated:
		return "terminated"
	case StatusKilled:
		return "killed"
	case StatusAlive:
		return "alive"
	default:
		return "unknown"
	}
}

// Outcome pairs a matched process with its terminal state.
type Outcome struct {
	Proc   proc.Record
	Status Status
}

// Result aggregates one run. Outcomes keep snapshot order.
type Result struct {
	Outcomes []Outcome
}

// Success reports whether every matched process is confirmed gone.
func (r Result) Success() bool {
	for _, o := range r.Outcomes {
		if o.Status == StatusAlive {
			return false
		}
	}
	return true
}
