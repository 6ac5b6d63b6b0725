// Package agent wires storage, the MIB table, the scheduler, and the
// protocol engine together behind the single mutex spec.md §5 requires,
// and owns their shared lifecycle (open, load, start, close). It replaces
// the source's global mutable configuration and global database handle
// (spec.md §9) with an explicit value constructed once per process.
package agent

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/snmpext/murmured/internal/mib"
	"github.com/snmpext/murmured/internal/protocol"
	"github.com/snmpext/murmured/internal/scheduler"
	"github.com/snmpext/murmured/internal/storage"
)

// Agent is the coordinator: everything a CLI command needs to operate on
// the MIB table, storage, and scheduler under one lock.
type Agent struct {
	Store     *storage.Backend
	Table     *mib.Table
	Scheduler *scheduler.Scheduler
	Engine    *protocol.Engine
	Log       *logrus.Logger

	mu *sync.Mutex
}

// Stage names which part of Open failed, so callers can map it onto
// spec.md §6's distinct exit codes (1 for MIB/storage, 2 for scheduler).
type Stage int

const (
	StageStorage Stage = iota
	StageMIB
	StageScheduler
)

// OpenError reports which stage of Open failed.
type OpenError struct {
	Stage Stage
	Err   error
}

func (e *OpenError) Error() string { return e.Err.Error() }
func (e *OpenError) Unwrap() error { return e.Err }

// Open opens the database at dbPath, loads the MIB table and event
// registry, and returns a ready Agent. Callers must call Close when done.
func Open(dbPath string, log *logrus.Logger) (*Agent, error) {
	store, err := storage.Open(dbPath)
	if err != nil {
		return nil, &OpenError{Stage: StageStorage, Err: err}
	}

	table := mib.New(store)
	if err := table.Load(); err != nil {
		store.Close()
		return nil, &OpenError{Stage: StageMIB, Err: err}
	}

	sched := scheduler.New(store, table, log)
	if err := sched.LoadEvents(); err != nil {
		store.Close()
		return nil, &OpenError{Stage: StageScheduler, Err: err}
	}

	mu := &sync.Mutex{}
	engine := protocol.New(table, sched, mu, log)

	return &Agent{Store: store, Table: table, Scheduler: sched, Engine: engine, Log: log, mu: mu}, nil
}

// Close releases the storage handle.
func (a *Agent) Close() error {
	return a.Store.Close()
}

// StartScheduler runs the scheduler's INIT pass and periodic AUTO ticking
// under the shared mutex, returning once ctx is cancelled.
func (a *Agent) StartScheduler(ctx context.Context, tick scheduler.Ticker) {
	a.Scheduler.StartScheduler(ctx, tick, a.mu.Lock, a.mu.Unlock)
}

// Lock/Unlock expose the shared mutex to callers that need to perform a
// lookup-then-mutate sequence outside the protocol engine (the change,
// reset, parse-mib, schedule and dump-schedule CLI commands; get, getnext
// and set go through the Engine, which takes the lock itself).
func (a *Agent) Lock()   { a.mu.Lock() }
func (a *Agent) Unlock() { a.mu.Unlock() }
