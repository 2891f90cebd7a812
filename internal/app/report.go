package app

import (
	"softkill/internal/proc"
	"softkill/internal/sig"
)

// Reporter receives progress events during a run. The orchestrator calls it
// from a single goroutine; implementations decide what to render based on
// the output mode.
type Reporter interface {
	// Sending fires before each signal delivery attempt.
	Sending(s sig.Signal, rec proc.Record)
	// SendFailed fires when delivery fails for a reason other than the
	// process already being gone.
	SendFailed(s sig.Signal, rec proc.Record, err error)
	// Exited fires when a pending process is confirmed gone during polling.
	Exited(rec proc.Record)
	// WaitBegin and WaitEnd bracket the polling phase.
	WaitBegin(pending int)
	WaitEnd()
	// Escalate fires when the wait window elapses with processes pending.
	Escalate()
	// StillAlive fires once per process that survived the whole run.
	StillAlive(rec proc.Record)
	// WouldSend replaces Sending during a dry run.
	WouldSend(s sig.Signal, rec proc.Record)
}

type nopReporter struct{}

func (nopReporter) Sending(sig.Signal, proc.Record)           {}
func (nopReporter) SendFailed(sig.Signal, proc.Record, error) {}
func (nopReporter) Exited(proc.Record)                        {}
func (nopReporter) WaitBegin(int)                             {}
func (nopReporter) WaitEnd()                                  {}
func (nopReporter) Escalate()                                 {}
func (nopReporter) StillAlive(proc.Record)                    {}
func (nopReporter) WouldSend(sig.Signal, proc.Record)         {}
