package protocol

import (
	"bytes"
	"os"
	"sync"
	"testing"

	"github.com/snmpext/murmured/internal/mib"
	"github.com/snmpext/murmured/internal/scheduler"
	"github.com/snmpext/murmured/internal/storage"
)

type testEnv struct {
	engine *Engine
	table  *mib.Table
	store  *storage.Backend
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store, err := storage.Open(t.TempDir() + "/proto.db")
	if err != nil {
		t.Fatalf("open storage: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	table := mib.New(store)
	if err := table.Load(); err != nil {
		t.Fatalf("load table: %v", err)
	}

	sched := scheduler.New(store, table, nil)
	if err := sched.LoadEvents(); err != nil {
		t.Fatalf("load events: %v", err)
	}

	engine := New(table, sched, &sync.Mutex{}, nil)
	return &testEnv{engine: engine, table: table, store: store}
}

func (env *testEnv) addOID(t *testing.T, oid, typeTag, value string, mode mib.AccessMode, name string) {
	t.Helper()
	row := storage.OIDRow{OID: oid, Name: name, Type: typeTag, AccessMode: int(mode), Value: value}
	if err := env.store.InsertOID(row); err != nil {
		t.Fatalf("seed InsertOID(%s): %v", oid, err)
	}
	if err := env.table.Load(); err != nil {
		t.Fatalf("reload table: %v", err)
	}
}

func runFrame(t *testing.T, env *testEnv, input string) string {
	t.Helper()
	var out bytes.Buffer
	if err := env.engine.Serve(bytes.NewBufferString(input), &out); err != nil {
		t.Fatalf("Serve: %v", err)
	}
	return out.String()
}

// Scenario 1: GET on missing OID.
func TestScenarioGetOnMissingOID(t *testing.T) {
	env := newTestEnv(t)
	got := runFrame(t, env, "get\n1.3.6.1\n")
	if got != "no-such-name\n" {
		t.Fatalf("got %q, want no-such-name", got)
	}
}

// Scenario 2: GET on NOT_ACCESSIBLE.
func TestScenarioGetOnNotAccessible(t *testing.T) {
	env := newTestEnv(t)
	env.addOID(t, "1.3.6.1.2.1.1", "SEQUENCE", "", mib.NotAccessible, "system")

	got := runFrame(t, env, "get\n1.3.6.1.2.1.1\n")
	if got != "no-access\n" {
		t.Fatalf("got %q, want no-access", got)
	}
}

// Scenario 3: SET with type mismatch.
func TestScenarioSetTypeMismatch(t *testing.T) {
	env := newTestEnv(t)
	env.addOID(t, "1.3.6.1.2.1.1.1.0", "OCTET STRING", "foo", mib.ReadWrite, "sysDescr")

	got := runFrame(t, env, "set\n1.3.6.1.2.1.1.1.0\nINTEGER 42\n")
	if got != "wrong-type\n" {
		t.Fatalf("got %q, want wrong-type", got)
	}
}

// Scenario 4: SET creating a table row.
func TestScenarioSetCreatesTableRow(t *testing.T) {
	env := newTestEnv(t)
	env.addOID(t, "1.3.6.1.2.1.2.2.1.10", "SEQUENCE", "", mib.ReadCreate, "ifInOctets")

	got := runFrame(t, env, "set\n1.3.6.1.2.1.2.2.1.10.3\nCOUNTER32 17\n")
	want := "1.3.6.1.2.1.2.2.1.10.3\nCOUNTER32\n17\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	child := env.table.GetByOID("1.3.6.1.2.1.2.2.1.10.3")
	if child == nil {
		t.Fatal("created child not found in table")
	}
	if child.AccessMode() != mib.ReadCreate {
		t.Fatalf("child access mode = %v, want READ_CREATE", child.AccessMode())
	}
	if child.Type() != "COUNTER32" {
		t.Fatalf("child type = %q, want COUNTER32", child.Type())
	}
	if child.Name() != "ifInOctets" {
		t.Fatalf("child name = %q, want inherited ifInOctets", child.Name())
	}
}

// Scenario 5: GETNEXT skipping NOT_ACCESSIBLE.
func TestScenarioGetNextSkipsNotAccessible(t *testing.T) {
	env := newTestEnv(t)
	env.addOID(t, "1.3.6.1.1", "SEQUENCE", "", mib.NotAccessible, "blocked")
	env.addOID(t, "1.3.6.1.2", "INTEGER", "5", mib.ReadOnly, "value")

	got := runFrame(t, env, "getnext\n1.3.6.1.0\n")
	want := "1.3.6.1.2\nINTEGER\n5\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestPingRespondsWithPong(t *testing.T) {
	env := newTestEnv(t)
	got := runFrame(t, env, "PING\n")
	if got != "PONG\n" {
		t.Fatalf("got %q, want PONG", got)
	}
}

func TestEmptyLineTerminatesWithoutResponse(t *testing.T) {
	env := newTestEnv(t)
	got := runFrame(t, env, "\n")
	if got != "" {
		t.Fatalf("got %q, want no output on empty line", got)
	}
}

func TestSetOnReadOnlyExistingOID(t *testing.T) {
	env := newTestEnv(t)
	env.addOID(t, "1.3.6.1.5", "INTEGER", "1", mib.ReadOnly, "ro")

	got := runFrame(t, env, "set\n1.3.6.1.5\nINTEGER 2\n")
	if got != "read-only\n" {
		t.Fatalf("got %q, want read-only", got)
	}
}

func TestSetUnderNonSequenceParentIsNoSuchName(t *testing.T) {
	env := newTestEnv(t)
	env.addOID(t, "1.3.6.1.5", "INTEGER", "1", mib.ReadWrite, "scalar")

	got := runFrame(t, env, "set\n1.3.6.1.5.1\nINTEGER 2\n")
	if got != "no-such-name\n" {
		t.Fatalf("got %q, want no-such-name", got)
	}
}

func TestGetFiresGetEventWithPreExecutionValue(t *testing.T) {
	env := newTestEnv(t)
	env.addOID(t, "1.3.6.1.5", "INTEGER", "7", mib.ReadOnly, "counter")

	marker := t.TempDir() + "/value"
	if err := env.engine.sched.PutEvent(scheduler.Event{
		OID: "1.3.6.1.5", Mode: scheduler.ModeGet,
		Commands: []string{"echo $SNMP_VALUE > " + marker},
	}); err != nil {
		t.Fatalf("PutEvent: %v", err)
	}

	runFrame(t, env, "get\n1.3.6.1.5\n")

	data := readFileOrFail(t, marker)
	if data != "7\n" {
		t.Fatalf("SNMP_VALUE observed by GET hook = %q, want 7", data)
	}
}

func readFileOrFail(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read marker: %v", err)
	}
	return string(data)
}
