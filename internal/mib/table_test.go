package mib

import (
	"testing"

	"github.com/snmpext/murmured/internal/storage"
)

func newTestTable(t *testing.T) *Table {
	t.Helper()
	store, err := storage.Open(t.TempDir() + "/mib.db")
	if err != nil {
		t.Fatalf("open storage: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	tbl := New(store)
	if err := tbl.Load(); err != nil {
		t.Fatalf("load empty table: %v", err)
	}
	return tbl
}

func mustAdd(t *testing.T, tbl *Table, oid, typeTag, value string, mode AccessMode, name string) *OID {
	t.Helper()
	o, err := newOID(tbl.store, oid, typeTag, value, mode, name)
	if err != nil {
		t.Fatalf("newOID(%s): %v", oid, err)
	}
	if err := tbl.AddOID(o); err != nil {
		t.Fatalf("AddOID(%s): %v", oid, err)
	}
	return o
}

func TestNumericOrderingNotLexicographic(t *testing.T) {
	tbl := newTestTable(t)
	mustAdd(t, tbl, "1.3.6.1.2", "INTEGER", "1", ReadOnly, "low")
	mustAdd(t, tbl, "1.3.6.1.10", "INTEGER", "2", ReadOnly, "high")

	next := tbl.NextOID("1.3.6.1.2")
	if next != "1.3.6.1.10" {
		t.Fatalf("NextOID(1.3.6.1.2) = %q, want 1.3.6.1.10 (numeric order, not lexicographic)", next)
	}
}

func TestNextOIDAtEndReturnsEmpty(t *testing.T) {
	tbl := newTestTable(t)
	mustAdd(t, tbl, "1.3.6.1.1", "INTEGER", "1", ReadOnly, "only")

	if next := tbl.NextOID("1.3.6.1.1"); next != "" {
		t.Fatalf("NextOID at table end = %q, want empty", next)
	}
}

func TestGetByOIDRoundTrip(t *testing.T) {
	tbl := newTestTable(t)
	mustAdd(t, tbl, "1.3.6.1.5", "OCTET STRING", "hello", ReadWrite, "greeting")

	o := tbl.GetByOID("1.3.6.1.5")
	if o == nil {
		t.Fatal("GetByOID returned nil for existing oid")
	}
	if o.Printable() != "hello" {
		t.Fatalf("Printable() = %q, want hello", o.Printable())
	}
	if tbl.GetByOID("1.3.6.1.6") != nil {
		t.Fatal("GetByOID returned non-nil for absent oid")
	}
}

func TestAddOIDRejectsDuplicate(t *testing.T) {
	tbl := newTestTable(t)
	o := mustAdd(t, tbl, "1.3.6.1.1", "INTEGER", "1", ReadOnly, "a")

	if err := tbl.AddOID(o); err != ErrAlreadyExists {
		t.Fatalf("AddOID duplicate = %v, want ErrAlreadyExists", err)
	}
}

func TestIsTableChildRequiresSequenceType(t *testing.T) {
	tbl := newTestTable(t)
	mustAdd(t, tbl, "1.3.6.1.4", "SEQUENCE", "", ReadCreate, "rowTemplate")
	mustAdd(t, tbl, "1.3.6.1.5", "INTEGER", "1", ReadOnly, "scalar")

	if !tbl.IsTableChild("1.3.6.1.4") {
		t.Fatal("expected SEQUENCE node to be recognized as a table parent")
	}
	if tbl.IsTableChild("1.3.6.1.5") {
		t.Fatal("expected non-SEQUENCE node to not be a table parent")
	}
	if tbl.IsTableChild("1.3.6.1.99") {
		t.Fatal("expected absent oid to not be a table parent")
	}
}

func TestCreateChildInheritsNameAndForcesReadCreate(t *testing.T) {
	tbl := newTestTable(t)
	mustAdd(t, tbl, "1.3.6.1.4", "SEQUENCE", "", ReadWrite, "row")

	child, err := tbl.CreateChild("1.3.6.1.4", "1.3.6.1.4.1", "COUNTER32", "42")
	if err != nil {
		t.Fatalf("CreateChild: %v", err)
	}
	if child.AccessMode() != ReadCreate {
		t.Fatalf("child access mode = %v, want ReadCreate", child.AccessMode())
	}
	if child.Name() != "row" {
		t.Fatalf("child name = %q, want inherited from parent", child.Name())
	}
	if child.Type() != "COUNTER32" {
		t.Fatalf("child type = %q, want COUNTER32 from the SET frame", child.Type())
	}
	if tbl.GetByOID("1.3.6.1.4.1") == nil {
		t.Fatal("created child not indexed in table")
	}
}

func TestCreateChildRejectsNonSequenceParent(t *testing.T) {
	tbl := newTestTable(t)
	mustAdd(t, tbl, "1.3.6.1.5", "INTEGER", "1", ReadWrite, "scalar")

	if _, err := tbl.CreateChild("1.3.6.1.5", "1.3.6.1.5.1", "INTEGER", "1"); err != ErrNotFound {
		t.Fatalf("CreateChild on non-SEQUENCE parent = %v, want ErrNotFound", err)
	}
}

func TestCreateChildRejectsReadOnlyParent(t *testing.T) {
	tbl := newTestTable(t)
	mustAdd(t, tbl, "1.3.6.1.4", "SEQUENCE", "", ReadOnly, "row")

	if _, err := tbl.CreateChild("1.3.6.1.4", "1.3.6.1.4.1", "INTEGER", "1"); err != ErrAccessDenied {
		t.Fatalf("CreateChild on read-only parent = %v, want ErrAccessDenied", err)
	}
}

func TestParentOf(t *testing.T) {
	parent, ok := ParentOf("1.3.6.1.4.1")
	if !ok || parent != "1.3.6.1.4" {
		t.Fatalf("ParentOf = %q, %v, want 1.3.6.1.4, true", parent, ok)
	}
	if _, ok := ParentOf("noDotsHere"); ok {
		t.Fatal("ParentOf on oid without dots should report ok=false")
	}
}

func TestLoadRehydratesFromStorage(t *testing.T) {
	store, err := storage.Open(t.TempDir() + "/mib.db")
	if err != nil {
		t.Fatalf("open storage: %v", err)
	}
	defer store.Close()

	tbl := New(store)
	if err := tbl.Load(); err != nil {
		t.Fatalf("initial load: %v", err)
	}
	mustAdd(t, tbl, "1.3.6.1.1", "COUNTER32", "5", ReadOnly, "counter")

	reloaded := New(store)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("reload: %v", err)
	}
	o := reloaded.GetByOID("1.3.6.1.1")
	if o == nil || o.Printable() != "5" {
		t.Fatal("reloaded table did not recover persisted oid")
	}
}

func TestClearEmptiesTableAndStorage(t *testing.T) {
	tbl := newTestTable(t)
	mustAdd(t, tbl, "1.3.6.1.1", "INTEGER", "1", ReadOnly, "a")

	if err := tbl.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if tbl.GetByOID("1.3.6.1.1") != nil {
		t.Fatal("cleared table still has entry")
	}
	if tbl.NextOID("") != "" {
		t.Fatal("cleared table should have no entries to iterate")
	}
	rows, err := tbl.store.ListOIDs()
	if err != nil || len(rows) != 0 {
		t.Fatalf("storage after Clear = %d rows, err %v, want 0 rows", len(rows), err)
	}
}
