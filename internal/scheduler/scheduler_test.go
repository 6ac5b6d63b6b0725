package scheduler

import (
	"context"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/snmpext/murmured/internal/mib"
	"github.com/snmpext/murmured/internal/storage"
)

// fakeTicker lets tests drive StartScheduler tick-by-tick instead of
// waiting on real wall-clock seconds.
type fakeTicker struct {
	c      chan time.Time
	stopCh chan struct{}
}

func newFakeTicker() *fakeTicker {
	return &fakeTicker{c: make(chan time.Time), stopCh: make(chan struct{})}
}

func (f *fakeTicker) C() <-chan time.Time { return f.c }
func (f *fakeTicker) Stop()               { close(f.stopCh) }

func (f *fakeTicker) tick() { f.c <- time.Time{} }

func newTestScheduler(t *testing.T) (*Scheduler, *mib.Table) {
	t.Helper()
	store, err := storage.Open(t.TempDir() + "/sched.db")
	if err != nil {
		t.Fatalf("open storage: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	table := mib.New(store)
	if err := table.Load(); err != nil {
		t.Fatalf("load table: %v", err)
	}

	s := New(store, table, nil)
	if err := s.LoadEvents(); err != nil {
		t.Fatalf("load events: %v", err)
	}
	return s, table
}

func countLines(t *testing.T, path string) int {
	t.Helper()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return 0
	}
	if err != nil {
		t.Fatalf("read marker file: %v", err)
	}
	trimmed := strings.TrimRight(string(data), "\n")
	if trimmed == "" {
		return 0
	}
	return len(strings.Split(trimmed, "\n"))
}

func TestAUTOFiresAtExactMultiples(t *testing.T) {
	s, _ := newTestScheduler(t)
	marker := t.TempDir() + "/fired"

	if err := s.PutEvent(Event{
		OID: "1.3.6.1.2.1.1.3.0", Mode: ModeAuto, Timeout: 2,
		Commands: []string{"echo fired >> " + marker},
	}); err != nil {
		t.Fatalf("PutEvent: %v", err)
	}

	ticker := newFakeTicker()
	var mu sync.Mutex
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.StartScheduler(ctx, ticker, mu.Lock, mu.Unlock)
		close(done)
	}()

	// t=1: no fire. t=2: fire. t=3: no fire. t=4: fire.
	for i := 0; i < 4; i++ {
		ticker.tick()
	}
	// Give the scheduler goroutine a moment to run the two synchronous
	// child commands before asserting.
	time.Sleep(200 * time.Millisecond)
	cancel()
	<-done

	if got := countLines(t, marker); got != 2 {
		t.Fatalf("marker fired %d times after 4 ticks with timeout=2, want 2", got)
	}
}

func TestAUTORequiresPositiveTimeout(t *testing.T) {
	s, _ := newTestScheduler(t)
	err := s.PutEvent(Event{OID: "1.3.6.1.1", Mode: ModeAuto, Timeout: 0, Commands: []string{"/bin/true"}})
	if err != ErrTimeoutRequired {
		t.Fatalf("PutEvent with zero timeout = %v, want ErrTimeoutRequired", err)
	}
}

func TestFetchAndExecNoOpWhenEventAbsent(t *testing.T) {
	s, _ := newTestScheduler(t)
	// Must not panic or block when no event is registered.
	s.FetchAndExec("1.3.6.1.99", ModeGet, "5")
}

func TestFetchAndExecRunsCommandsInOrder(t *testing.T) {
	s, _ := newTestScheduler(t)
	marker := t.TempDir() + "/order"

	if err := s.PutEvent(Event{
		OID: "1.3.6.1.5", Mode: ModeSet,
		Commands: []string{
			"echo first >> " + marker,
			"echo second >> " + marker,
		},
	}); err != nil {
		t.Fatalf("PutEvent: %v", err)
	}

	s.FetchAndExec("1.3.6.1.5", ModeSet, "42")

	data, err := os.ReadFile(marker)
	if err != nil {
		t.Fatalf("read marker: %v", err)
	}
	if string(data) != "first\nsecond\n" {
		t.Fatalf("marker content = %q, want commands run in order", string(data))
	}
}

func TestClearEventsEmptiesRegistry(t *testing.T) {
	s, _ := newTestScheduler(t)
	if err := s.PutEvent(Event{OID: "1.3.6.1.1", Mode: ModeGet, Commands: []string{"/bin/true"}}); err != nil {
		t.Fatalf("PutEvent: %v", err)
	}
	if err := s.ClearEvents(); err != nil {
		t.Fatalf("ClearEvents: %v", err)
	}
	s.FetchAndExec("1.3.6.1.1", ModeGet, "x") // must be a no-op, not panic.
}
