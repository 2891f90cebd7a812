package app

import (
	"strings"
	"testing"
	"time"

	"golang.org/x/sys/unix"

	"softkill/internal/pattern"
	"softkill/internal/proc"
	"softkill/internal/sig"
)

// fakeClock replaces the poll loop's real clock so wait-window tests run
// instantly. Sleep simply advances the fake time.
type fakeClock struct {
	now time.Time
}

func stubClock(t *testing.T) *fakeClock {
	t.Helper()
	c := &fakeClock{now: time.Unix(1000, 0)}
	timeNow = func() time.Time { return c.now }
	sleep = func(d time.Duration) { c.now = c.now.Add(d) }
	t.Cleanup(func() {
		timeNow = time.Now
		sleep = time.Sleep
	})
	return c
}

type tableCall struct {
	op  string // "snapshot", "alive" or "signal"
	pid int
	sig unix.Signal
}

// fakeProcState models how one fake process reacts to signals.
type fakeProcState struct {
	rec        proc.Record
	ignoreTerm bool // survives the terminate signal
	immortal   bool // survives the kill signal too
	diesAfter  int  // liveness checks survived after the terminate signal
	termed     bool
	killed     bool
	checks     int
}

// fakeTable is an in-memory proc.Table for orchestrator tests.
type fakeTable struct {
	procs       []*fakeProcState
	snapshotErr error
	signalErr   map[int]error // returned from Signal for that pid
	calls       []tableCall
}

func (t *fakeTable) add(rec proc.Record) *fakeProcState {
	state := &fakeProcState{rec: rec}
	t.procs = append(t.procs, state)
	return state
}

func (t *fakeTable) byPID(pid int) *fakeProcState {
	for _, p := range t.procs {
		if p.rec.PID == pid {
			return p
		}
	}
	return nil
}

func (t *fakeTable) Snapshot() ([]proc.Record, error) {
	t.calls = append(t.calls, tableCall{op: "snapshot"})
	if t.snapshotErr != nil {
		return nil, t.snapshotErr
	}
	records := make([]proc.Record, 0, len(t.procs))
	for _, p := range t.procs {
		records = append(records, p.rec)
	}
	return records, nil
}

func (t *fakeTable) Alive(rec proc.Record) bool {
	t.calls = append(t.calls, tableCall{op: "alive", pid: rec.PID})
	p := t.byPID(rec.PID)
	if p == nil {
		return false
	}
	if p.killed && !p.immortal {
		return false
	}
	if p.termed && !p.ignoreTerm {
		p.checks++
		return p.checks <= p.diesAfter
	}
	return true
}

func (t *fakeTable) Signal(rec proc.Record, s unix.Signal) error {
	t.calls = append(t.calls, tableCall{op: "signal", pid: rec.PID, sig: s})
	if err := t.signalErr[rec.PID]; err != nil {
		return err
	}
	p := t.byPID(rec.PID)
	if p == nil {
		return proc.ErrGone
	}
	switch s {
	case unix.SIGTERM:
		p.termed = true
	case unix.SIGKILL:
		p.killed = true
	}
	return nil
}

func (t *fakeTable) signalsSent() []tableCall {
	var sent []tableCall
	for _, c := range t.calls {
		if c.op == "signal" {
			sent = append(sent, c)
		}
	}
	return sent
}

func (t *fakeTable) aliveChecksBeforeFirstKill() int {
	n := 0
	for _, c := range t.calls {
		if c.op == "signal" && c.sig == unix.SIGKILL {
			break
		}
		if c.op == "alive" {
			n++
		}
	}
	return n
}

// recordReporter captures events for assertions.
type recordReporter struct {
	sent       []tableCall
	failed     []int
	exited     []int
	stillAlive []int
	would      []int
	waitBegins int
	waitEnds   int
	escalated  bool
}

func (r *recordReporter) Sending(s sig.Signal, rec proc.Record) {
	r.sent = append(r.sent, tableCall{op: "signal", pid: rec.PID, sig: s.Num()})
}

func (r *recordReporter) SendFailed(_ sig.Signal, rec proc.Record, _ error) {
	r.failed = append(r.failed, rec.PID)
}

func (r *recordReporter) Exited(rec proc.Record) { r.exited = append(r.exited, rec.PID) }
func (r *recordReporter) WaitBegin(int)          { r.waitBegins++ }
func (r *recordReporter) WaitEnd()               { r.waitEnds++ }
func (r *recordReporter) Escalate()              { r.escalated = true }

func (r *recordReporter) StillAlive(rec proc.Record) {
	r.stillAlive = append(r.stillAlive, rec.PID)
}

func (r *recordReporter) WouldSend(_ sig.Signal, rec proc.Record) {
	r.would = append(r.would, rec.PID)
}

func mustPatterns(t *testing.T, lines string) pattern.Set {
	t.Helper()
	set, err := pattern.Parse(strings.NewReader(lines))
	if err != nil {
		t.Fatalf("parse patterns: %v", err)
	}
	return set
}

func defaultOptions(t *testing.T, patterns string) Options {
	t.Helper()
	return Options{
		Patterns:        mustPatterns(t, patterns),
		TerminateSignal: sig.Term,
		KillSignal:      sig.Kill,
		WaitTime:        5 * time.Second,
		PollInterval:    100 * time.Millisecond,
		Kill:            true,
	}
}
