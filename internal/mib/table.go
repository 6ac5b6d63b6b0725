package mib

import (
	"fmt"
	"sort"
	"strings"

	"github.com/snmpext/murmured/internal/storage"
)

// Table is the ordered, in-memory projection of every persisted OID,
// indexed for exact lookup and lexicographic-next, per spec.md §4.D.
// Table is not safe for concurrent use on its own; the coordinator that
// owns it (internal/agent) serializes access with its mutex.
type Table struct {
	store   *storage.Backend
	byOID   map[string]*OID
	ordered []*OID // kept sorted by Compare; rebuilt on every structural change.
}

// New returns an empty Table bound to store. Call Load to populate it.
func New(store *storage.Backend) *Table {
	return &Table{store: store, byOID: make(map[string]*OID)}
}

// Load reads every row from storage, constructs OID entities, and sorts
// them by component-wise order. Any per-row construction failure aborts
// the whole load, per spec.md §4.D.
func (t *Table) Load() error {
	rows, err := t.store.ListOIDs()
	if err != nil {
		return err
	}

	byOID := make(map[string]*OID, len(rows))
	ordered := make([]*OID, 0, len(rows))
	for _, r := range rows {
		o, err := loadOID(t.store, r.OID, r.Type, r.Value, AccessMode(r.AccessMode), r.Name)
		if err != nil {
			return fmt.Errorf("loading mib table: %w", err)
		}
		byOID[o.oid] = o
		ordered = append(ordered, o)
	}
	sortOIDs(ordered)

	t.byOID = byOID
	t.ordered = ordered
	return nil
}

func sortOIDs(os []*OID) {
	sort.Slice(os, func(i, j int) bool { return Compare(os[i].oid, os[j].oid) < 0 })
}

// GetByOID returns the OID with the exact identifier, or nil if absent.
func (t *Table) GetByOID(oid string) *OID {
	return t.byOID[oid]
}

// NextOID returns the smallest OID strictly greater than s, or "" if s is
// at or beyond the maximum. It does not filter by access mode; callers
// that need to skip NOT_ACCESSIBLE nodes (the protocol engine) loop.
func (t *Table) NextOID(s string) string {
	// ordered is sorted, so the first entry strictly greater than s is
	// the answer; binary search would work too but the tables this
	// daemon manages are small enough that a linear scan is simpler and
	// just as correct.
	for _, o := range t.ordered {
		if Compare(o.oid, s) > 0 {
			return o.oid
		}
	}
	return ""
}

// Ordered returns every OID in component-wise ascending order, the
// traversal order spec.md §4.E's start_scheduler needs to run INIT events
// "once, in OID order". Callers must not mutate the returned slice.
func (t *Table) Ordered() []*OID {
	return t.ordered
}

// IsTableChild reports whether parent exists and is a SEQUENCE node —
// spec.md §4.D's rule for recognizing a conceptual-table parent.
func (t *Table) IsTableChild(parent string) bool {
	o := t.byOID[parent]
	return o != nil && o.Type() == "SEQUENCE"
}

// AddOID inserts a fully-formed OID into the in-memory index, preserving
// order. Fails if the OID already exists. It does not write to storage:
// the OID's row is persisted by newOID when the OID is constructed.
func (t *Table) AddOID(o *OID) error {
	if _, exists := t.byOID[o.oid]; exists {
		return ErrAlreadyExists
	}
	t.byOID[o.oid] = o
	idx := sort.Search(len(t.ordered), func(i int) bool { return Compare(t.ordered[i].oid, o.oid) >= 0 })
	t.ordered = append(t.ordered, nil)
	copy(t.ordered[idx+1:], t.ordered[idx:])
	t.ordered[idx] = o
	return nil
}

// CreateChild implements spec.md §4.D's table-row creation rule and §9's
// design note to keep it in one place: given a requested child OID under
// a SEQUENCE parent in {READ_CREATE, READ_WRITE}, create a new OID
// inheriting the parent's name but always access mode READ_CREATE, typed
// and valued by the incoming SET (childType, value) — spec.md §8 scenario
// 4 pins the created row's type to the SET frame's type token, not the
// parent's own SEQUENCE tag. It is used exclusively by the protocol
// engine's SET path.
func (t *Table) CreateChild(parentOID, childOID, childType, value string) (*OID, error) {
	parent := t.byOID[parentOID]
	if parent == nil || parent.Type() != "SEQUENCE" {
		return nil, ErrNotFound
	}
	if parent.AccessMode() != ReadCreate && parent.AccessMode() != ReadWrite {
		return nil, ErrAccessDenied
	}

	child, err := newOID(t.store, childOID, childType, value, ReadCreate, parent.Name())
	if err != nil {
		return nil, err
	}
	if err := t.AddOID(child); err != nil {
		_ = t.store.DeleteOID(childOID)
		return nil, err
	}
	return child, nil
}

// ParentOf returns the parent OID string (everything before the last
// dot) and whether a dot was present at all, per spec.md §4.F's SET
// algorithm step "derive parent = oid_without_last_component".
func ParentOf(oid string) (string, bool) {
	i := strings.LastIndex(oid, ".")
	if i < 0 {
		return "", false
	}
	return oid[:i], true
}

// Clear removes every row from storage and the in-memory index, used only
// by the external reset tool.
func (t *Table) Clear() error {
	if err := t.store.ClearOIDs(); err != nil {
		return err
	}
	t.byOID = make(map[string]*OID)
	t.ordered = nil
	return nil
}
