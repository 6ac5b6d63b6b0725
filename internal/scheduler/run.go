package scheduler

import (
	"context"
	"time"
)

// Ticker abstracts a periodic 1-second clock so StartScheduler can be
// driven deterministically in tests without real wall-clock sleeps
// (spec.md §8's AUTO-firing test).
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// realTicker wraps time.Ticker to satisfy Ticker.
type realTicker struct{ t *time.Ticker }

// NewTicker returns a Ticker backed by a real time.Ticker firing every
// second, the resolution spec.md §5 specifies.
func NewTicker() Ticker {
	return &realTicker{t: time.NewTicker(time.Second)}
}

func (r *realTicker) C() <-chan time.Time { return r.t.C }
func (r *realTicker) Stop()               { r.t.Stop() }

// StartScheduler runs every INIT event once, in OID order, then ticks
// forever on tick until ctx is cancelled, firing each AUTO event whose
// timeout evenly divides the elapsed second count — spec.md §4.E/§5's
// "fire at multiples of the timeout from daemon start", with missed ticks
// (e.g. during a long child command) simply skipped rather than queued.
// lock is invoked around each tick's mutation phase, matching spec.md §5's
// "the scheduler thread acquires the same mutex around each AUTO/INIT
// event's mutation phase"; a nil lock/unlock pair is treated as a no-op,
// which is only safe for single-threaded tests.
func (s *Scheduler) StartScheduler(ctx context.Context, tick Ticker, lock, unlock func()) {
	runLocked := func(fn func()) {
		if lock != nil {
			lock()
			defer unlock()
		}
		fn()
	}

	runLocked(func() { s.runInitEvents() })

	elapsed := 0
	for {
		select {
		case <-ctx.Done():
			tick.Stop()
			return
		case <-tick.C():
			elapsed++
			runLocked(func() { s.fireDueAutoEvents(elapsed) })
		}
	}
}

func (s *Scheduler) runInitEvents() {
	for _, o := range s.table.Ordered() {
		s.FetchAndExecInit(o.OID())
	}
}

func (s *Scheduler) fireDueAutoEvents(elapsedSeconds int) {
	for _, ev := range s.events {
		if ev.Mode != ModeAuto || ev.Timeout <= 0 {
			continue
		}
		if elapsedSeconds%ev.Timeout != 0 {
			continue
		}
		value := ""
		if o := s.table.GetByOID(ev.OID); o != nil {
			value = o.Printable()
		}
		s.FetchAndExec(ev.OID, ModeAuto, value)
	}
}
