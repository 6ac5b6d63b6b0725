// Package protocol implements the pass_persist request/response state
// machine of spec.md §4.F: a line-oriented stdio protocol translating
// master-agent frames into MIB table lookups and mutations.
package protocol

import (
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/snmpext/murmured/internal/mib"
	"github.com/snmpext/murmured/internal/scheduler"
)

// Response codes, verbatim and case-exact per spec.md §4.F. These are the
// only single-line error replies the engine ever emits.
const (
	CodeNoSuchName   = "no-such-name"
	CodeNoAccess     = "no-access"
	CodeReadOnly     = "read-only"
	CodeWrongType    = "wrong-type"
	CodeCommitFailed = "commit-failed"
)

// Engine holds the shared state the protocol loop reads and mutates. mu is
// the coarse mutex spec.md §5 requires: it is shared with the scheduler's
// periodic tick goroutine so no AUTO/INIT event interleaves inside a
// GET/GETNEXT/SET round.
type Engine struct {
	table *mib.Table
	sched *scheduler.Scheduler
	mu    *sync.Mutex
	log   *logrus.Logger
}

// New returns an Engine over table and sched, serialized by mu. A nil log
// is replaced with a discarding logger, so tests that don't care about
// log output don't need to construct one.
func New(table *mib.Table, sched *scheduler.Scheduler, mu *sync.Mutex, log *logrus.Logger) *Engine {
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	return &Engine{table: table, sched: sched, mu: mu, log: log}
}

// Get implements spec.md §4.F's GET algorithm. It returns either the
// three success lines (oid, type, printable value) or a single code line.
func (e *Engine) Get(oid string) []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	o := e.table.GetByOID(oid)
	if o == nil {
		return []string{CodeNoSuchName}
	}
	if o.AccessMode() == mib.NotAccessible {
		e.log.WithField("oid", oid).Warn("get: no-access")
		return []string{CodeNoAccess}
	}
	e.sched.FetchAndExec(o.OID(), scheduler.ModeGet, o.Printable())
	return []string{o.OID(), o.Type(), o.Printable()}
}

// GetNext implements spec.md §4.F's GETNEXT algorithm: repeatedly advance
// to the lexicographic successor, skipping NOT_ACCESSIBLE nodes, and fire
// the GET event on the *resolved* OID actually being returned (spec.md §9's
// open-question resolution, not the originally requested OID).
func (e *Engine) GetNext(oid string) []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	cursor := oid
	for {
		next := e.table.NextOID(cursor)
		if next == "" {
			return []string{CodeNoSuchName}
		}
		o := e.table.GetByOID(next)
		if o == nil {
			// Should not happen under the table's invariants; treat it as
			// absent rather than panicking.
			return []string{CodeNoSuchName}
		}
		if o.AccessMode() == mib.NotAccessible {
			cursor = next
			continue
		}
		e.sched.FetchAndExec(o.OID(), scheduler.ModeGet, o.Printable())
		return []string{o.OID(), o.Type(), o.Printable()}
	}
}

// Set implements spec.md §4.F's SET algorithm, including dynamic
// table-row creation under a SEQUENCE parent.
func (e *Engine) Set(oid, typeTag, value string) []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	o := e.table.GetByOID(oid)
	if o == nil {
		return e.setMissing(oid, typeTag, value)
	}
	return e.setExisting(o, typeTag, value)
}

func (e *Engine) setMissing(oid, typeTag, value string) []string {
	parent, hasDot := mib.ParentOf(oid)
	if !hasDot {
		return []string{CodeNoSuchName}
	}
	if !e.table.IsTableChild(parent) {
		return []string{CodeNoSuchName}
	}

	parentOID := e.table.GetByOID(parent)
	if parentOID.AccessMode() != mib.ReadCreate && parentOID.AccessMode() != mib.ReadWrite {
		e.log.WithField("oid", oid).Warn("set: read-only")
		return []string{CodeReadOnly}
	}

	child, err := e.table.CreateChild(parent, oid, upper(typeTag), value)
	if err != nil {
		e.log.WithFields(logrus.Fields{"oid": oid, "err": err}).Error("set: commit-failed")
		return []string{CodeCommitFailed}
	}
	// Per spec.md §9: the SET event fires on the parent OID, not the
	// newly created child.
	e.sched.FetchAndExec(parentOID.OID(), scheduler.ModeSet, child.Printable())
	return []string{child.OID(), child.Type(), child.Printable()}
}

func (e *Engine) setExisting(o *mib.OID, typeTag, value string) []string {
	if o.AccessMode() != mib.ReadWrite {
		e.log.WithField("oid", o.OID()).Warn("set: read-only")
		return []string{CodeReadOnly}
	}
	if upper(typeTag) != o.Type() {
		e.log.WithField("oid", o.OID()).Warn("set: wrong-type")
		return []string{CodeWrongType}
	}
	if err := o.SetValue(value); err != nil {
		e.log.WithFields(logrus.Fields{"oid": o.OID(), "err": err}).Error("set: commit-failed")
		return []string{CodeCommitFailed}
	}
	e.sched.FetchAndExec(o.OID(), scheduler.ModeSet, o.Printable())
	return []string{o.OID(), o.Type(), o.Printable()}
}

func upper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - 'a' + 'A'
		}
	}
	return string(b)
}
