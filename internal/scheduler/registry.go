package scheduler

import (
	"io"
	"os"
	"os/exec"

	"github.com/sirupsen/logrus"

	"github.com/snmpext/murmured/internal/mib"
	"github.com/snmpext/murmured/internal/storage"
)

// Scheduler owns the event registry and dispatches commands for it. It has
// no mutex of its own, mirroring mib.Table and storage.Backend: the
// coordinator that wires Scheduler, Table, and Backend together
// (internal/agent) is responsible for the coarse lock spec.md §5 requires
// around any lookup-then-mutate-then-event sequence.
type Scheduler struct {
	store  *storage.Backend
	table  *mib.Table
	log    *logrus.Logger
	events map[string]Event
}

// New returns a Scheduler bound to store (for persistence) and table (to
// resolve an OID's current printable value for SNMP_VALUE, and to walk
// INIT events in OID order). log receives per-command warnings; a nil log
// falls back to a discarding logger.
func New(store *storage.Backend, table *mib.Table, log *logrus.Logger) *Scheduler {
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	return &Scheduler{store: store, table: table, log: log, events: make(map[string]Event)}
}

// LoadEvents reads every event and its command list from storage, per
// spec.md §4.E's load_events.
func (s *Scheduler) LoadEvents() error {
	rows, err := s.store.ListEvents()
	if err != nil {
		return &Error{Op: "load_events", Err: err}
	}
	events := make(map[string]Event, len(rows))
	for _, r := range rows {
		ev := Event{OID: r.OID, Mode: Mode(r.Mode), Timeout: r.Timeout, Commands: r.Commands}
		events[eventKey(ev.OID, ev.Mode)] = ev
	}
	s.events = events
	return nil
}

// PutEvent validates and persists ev, replacing any existing event for the
// same (oid, mode) pair, then updates the in-memory registry.
func (s *Scheduler) PutEvent(ev Event) error {
	if ev.Mode == ModeAuto && ev.Timeout <= 0 {
		return ErrTimeoutRequired
	}
	row := storage.EventRow{OID: ev.OID, Mode: string(ev.Mode), Timeout: ev.Timeout, Commands: ev.Commands}
	if err := s.store.PutEvent(row); err != nil {
		return &Error{Op: "put_event", Err: err}
	}
	s.events[eventKey(ev.OID, ev.Mode)] = ev
	return nil
}

// ClearEvents removes every event from storage and the in-memory registry.
func (s *Scheduler) ClearEvents() error {
	if err := s.store.ClearEvents(); err != nil {
		return &Error{Op: "clear_events", Err: err}
	}
	s.events = make(map[string]Event)
	return nil
}

// FetchAndExec looks up the event for (oid, mode); if present it exports
// SNMP_VALUE set to value into each command's environment and runs the
// commands in order, synchronously, via the host shell, waiting for each
// to complete. A non-zero exit is logged as a warning, not returned — per
// spec.md §7, "scheduler failures during daemon operation are logged and
// swallowed; they never abort the daemon". Absence of a matching event is
// a silent no-op. For GET events, value should be the pre-execution value
// about to be returned; for SET events, the incoming value taking effect.
func (s *Scheduler) FetchAndExec(oid string, mode Mode, value string) {
	s.dispatch(oid, mode, &value)
}

// FetchAndExecInit is FetchAndExec for the INIT mode, which has no prior
// value to report: per spec.md §6, SNMP_VALUE is left unset entirely.
func (s *Scheduler) FetchAndExecInit(oid string) {
	s.dispatch(oid, ModeInit, nil)
}

func (s *Scheduler) dispatch(oid string, mode Mode, value *string) {
	ev, ok := s.events[eventKey(oid, mode)]
	if !ok {
		return
	}
	for _, command := range ev.Commands {
		s.runCommand(oid, mode, command, value)
	}
}

func (s *Scheduler) runCommand(oid string, mode Mode, command string, value *string) {
	cmd := exec.Command("/bin/sh", "-c", command)
	env := os.Environ()
	if value != nil {
		env = append(env, "SNMP_VALUE="+*value)
	}
	cmd.Env = env
	if err := cmd.Run(); err != nil {
		s.log.WithFields(logrus.Fields{
			"oid": oid, "mode": string(mode), "command": command,
		}).WithError(err).Warn("scheduler command failed")
	}
}
