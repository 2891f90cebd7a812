package app

import (
	"errors"
	"time"

	"softkill/internal/proc"
)

// Clock seams for the poll loop, stubbed in tests.
var (
	timeNow = time.Now
	sleep   = time.Sleep
)

// Runner drives one two-phase shutdown over a single process snapshot.
type Runner struct {
	opts  Options
	table proc.Table
	rep   Reporter
}

// NewRunner builds a Runner. A nil reporter is valid and discards events.
func NewRunner(opts Options, table proc.Table, rep Reporter) *Runner {
	if rep == nil {
		rep = nopReporter{}
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = 100 * time.Millisecond
	}
	return &Runner{opts: opts, table: table, rep: rep}
}

// Run snapshots the process table, matches it against the configured
// patterns, and drives every matched process through terminate -> wait ->
// kill. Per-process delivery failures are isolated; only a failed snapshot
// aborts the run.
func (r *Runner) Run() (Result, error) {
	snapshot, err := r.table.Snapshot()
	if err != nil {
		return Result{}, err
	}

	var matched []proc.Record
	for _, rec := range snapshot {
		if r.opts.Selected(rec) {
			matched = append(matched, rec)
		}
	}

	if r.opts.DryRun {
		for _, rec := range matched {
			r.rep.WouldSend(r.opts.TerminateSignal, rec)
		}
		return Result{}, nil
	}

	if len(matched) == 0 {
		return Result{}, nil
	}

	status := make(map[int]Status, len(matched))

	// Phase one: every matched pid receives the terminate signal before any
	// polling starts. A pid we cannot signal is never going to die on our
	// account, so it leaves the pending set immediately.
	pending := make([]proc.Record, 0, len(matched))
	for _, rec := range matched {
		r.rep.Sending(r.opts.TerminateSignal, rec)
		switch err := r.table.Signal(rec, r.opts.TerminateSignal.Num()); {
		case err == nil:
			pending = append(pending, rec)
		case errors.Is(err, proc.ErrGone):
			// Exited before the signal arrived. Fine; that was the goal.
			status[rec.PID] = StatusTerminated
		default:
			r.rep.SendFailed(r.opts.TerminateSignal, rec, err)
			status[rec.PID] = StatusAlive
		}
	}

	pending = r.wait(pending)

	// Phase two: whatever is still pending either gets the kill signal or
	// is declared a survivor.
	if len(pending) > 0 && r.opts.Kill {
		r.rep.Escalate()
		for _, rec := range pending {
			r.rep.Sending(r.opts.KillSignal, rec)
			if err := r.table.Signal(rec, r.opts.KillSignal.Num()); err != nil && !errors.Is(err, proc.ErrGone) {
				r.rep.SendFailed(r.opts.KillSignal, rec, err)
			}
		}
		// A forceful kill lands promptly; one re-check pass, no timed wait.
		for _, rec := range pending {
			if r.table.Alive(rec) {
				status[rec.PID] = StatusAlive
			} else {
				status[rec.PID] = StatusKilled
			}
		}
	} else {
		for _, rec := range pending {
			status[rec.PID] = StatusAlive
		}
	}

	result := Result{Outcomes: make([]Outcome, 0, len(matched))}
	for _, rec := range matched {
		st, done := status[rec.PID]
		if !done {
			// Left the pending set during polling.
			st = StatusTerminated
		}
		result.Outcomes = append(result.Outcomes, Outcome{Proc: rec, Status: st})
		if st == StatusAlive {
			r.rep.StillAlive(rec)
		}
	}
	return result, nil
}

// wait polls the pending set at a fixed interval until it empties or the
// configured window elapses. A zero wait time skips polling entirely.
func (r *Runner) wait(pending []proc.Record) []proc.Record {
	if r.opts.WaitTime <= 0 || len(pending) == 0 {
		return pending
	}

	r.rep.WaitBegin(len(pending))
	defer r.rep.WaitEnd()

	deadline := timeNow().Add(r.opts.WaitTime)
	for timeNow().Before(deadline) {
		sleep(r.opts.PollInterval)

		alive := pending[:0]
		for _, rec := range pending {
			if r.table.Alive(rec) {
				alive = append(alive, rec)
				continue
			}
			r.rep.Exited(rec)
		}
		pending = alive

		if len(pending) == 0 {
			break
		}
	}
	return pending
}
