// Package proc enumerates running processes and delivers signals to them.
//
// The implementation reads the Linux /proc filesystem. Liveness re-checks
// compare the recorded program name against the current one, so a recycled
// pid usually does not count as the old process; a reused pid with an
// identical name remains a known, accepted race.
package proc

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"golang.org/x/sys/unix"
)

// Record is one process captured at snapshot time. Immutable once taken.
type Record struct {
	PID     int
	UID     uint32
	Name    string // short program name (/proc/<pid>/comm)
	Cmdline string // full invocation, argument vector joined with spaces
}

// Table is the platform capability the run orchestrator depends on:
// enumerate processes, re-check liveness of a previously seen record, and
// deliver a signal. A non-Linux backend would implement this interface.
type Table interface {
	Snapshot() ([]Record, error)
	Alive(Record) bool
	Signal(Record, unix.Signal) error
}

// ErrGone reports that the target process exited before the signal arrived.
var ErrGone = errors.New("process no longer exists")

type procTable struct {
	root string
}

// New returns the /proc-backed Table.
func New() Table { return &procTable{root: "/proc"} }

// Snapshot lists every process visible under /proc. Entries that vanish or
// become unreadable between listing and attribute extraction are skipped;
// only an unreadable process table itself is an error.
func (t *procTable) Snapshot() ([]Record, error) {
	entries, err := os.ReadDir(t.root)
	if err != nil {
		return nil, fmt.Errorf("read process table %s: %w", t.root, err)
	}

	records := make([]Record, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		pid, err := strconv.Atoi(entry.Name())
		if err != nil || pid <= 0 {
			continue
		}
		rec, err := t.record(pid)
		if err != nil {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func (t *procTable) record(pid int) (Record, error) {
	dir := filepath.Join(t.root, strconv.Itoa(pid))

	comm, err := os.ReadFile(filepath.Join(dir, "comm"))
	if err != nil {
		return Record{}, err
	}
	info, err := os.Stat(dir)
	if err != nil {
		return Record{}, err
	}

	var uid uint32
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		uid = st.Uid
	}

	return Record{
		PID:     pid,
		UID:     uid,
		Name:    strings.TrimSpace(string(comm)),
		Cmdline: readCmdline(dir),
	}, nil
}

// readCmdline joins the NUL-separated argument vector with spaces. Kernel
// threads expose an empty cmdline and keep the empty string.
func readCmdline(dir string) string {
	data, err := os.ReadFile(filepath.Join(dir, "cmdline"))
	if err != nil {
		return ""
	}
	parts := bytes.Split(data, []byte{0})
	args := make([]string, 0, len(parts))
	for _, part := range parts {
		if len(part) == 0 {
			continue
		}
		args = append(args, string(part))
	}
	return strings.Join(args, " ")
}

// Alive reports whether rec's pid still denotes the process captured in the
// snapshot. Best effort: when the current comm is readable it must match the
// recorded name.
func (t *procTable) Alive(rec Record) bool {
	dir := filepath.Join(t.root, strconv.Itoa(rec.PID))
	comm, err := os.ReadFile(filepath.Join(dir, "comm"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false
		}
		// Present but unreadable; assume it is still the same process.
		_, statErr := os.Stat(dir)
		return statErr == nil
	}
	return strings.TrimSpace(string(comm)) == rec.Name
}

// Signal delivers sig to rec's pid. A pid that already exited yields ErrGone
// so callers can treat it as terminated rather than failed.
func (t *procTable) Signal(rec Record, sig unix.Signal) error {
	if err := unix.Kill(rec.PID, sig); err != nil {
		if errors.Is(err, unix.ESRCH) {
			return ErrGone
		}
		return fmt.Errorf("send %s to pid %d: %w", unix.SignalName(sig), rec.PID, err)
	}
	return nil
}
