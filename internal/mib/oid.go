package mib

import (
	"fmt"

	"github.com/snmpext/murmured/internal/primitive"
	"github.com/snmpext/murmured/internal/storage"
)

// OID is one node of the MIB tree: an identifier, an immutable type and
// access mode, a name, and a mutable primitive value. load and new
// (spec.md §4.C) are the only constructors; both fail together with the
// primitive construction they depend on.
type OID struct {
	oid        string
	name       string
	accessMode AccessMode
	value      primitive.Primitive
	store      *storage.Backend
}

// loadOID constructs an OID from an existing storage row: it instantiates
// the matching primitive with the row's stored value and does not write
// back to storage.
func loadOID(store *storage.Backend, oid, typeTag, value string, accessMode AccessMode, name string) (*OID, error) {
	tag, ok := primitive.NormalizeTag(typeTag)
	if !ok {
		return nil, fmt.Errorf("oid %s: unknown primitive type %q", oid, typeTag)
	}
	prim, err := primitive.New(tag, value)
	if err != nil {
		return nil, fmt.Errorf("oid %s: %w", oid, err)
	}
	return &OID{oid: oid, name: name, accessMode: accessMode, value: prim, store: store}, nil
}

// newOID constructs a brand-new OID, persisting its row to storage. If
// primitive construction fails the row is never written (spec.md §4.C:
// "on failure of primitive construction... the OID is not created").
func newOID(store *storage.Backend, oid, typeTag, value string, accessMode AccessMode, name string) (*OID, error) {
	tag, ok := primitive.NormalizeTag(typeTag)
	if !ok {
		return nil, fmt.Errorf("oid %s: unknown primitive type %q", oid, typeTag)
	}
	prim, err := primitive.New(tag, value)
	if err != nil {
		return nil, fmt.Errorf("oid %s: %w", oid, err)
	}

	row := storage.OIDRow{OID: oid, Name: name, Type: string(tag), AccessMode: int(accessMode), Value: prim.Printable()}
	if err := store.InsertOID(row); err != nil {
		return nil, err
	}
	return &OID{oid: oid, name: name, accessMode: accessMode, value: prim, store: store}, nil
}

// OID returns the dotted-decimal identifier.
func (o *OID) OID() string { return o.oid }

// Name returns the human symbolic name.
func (o *OID) Name() string { return o.name }

// Type returns the canonical uppercase type tag.
func (o *OID) Type() string { return string(o.value.Tag()) }

// AccessMode returns the access mode.
func (o *OID) AccessMode() AccessMode { return o.accessMode }

// Printable returns the primitive's current canonical rendering.
func (o *OID) Printable() string { return o.value.Printable() }

// SetValue validates printable against the OID's primitive type and, on
// success, persists it to storage before updating the in-memory value.
// Persistence happening first means a storage failure never leaves the
// in-memory and on-disk values diverging.
func (o *OID) SetValue(printable string) error {
	// Validate against a scratch copy so a rejected value never mutates
	// the live primitive (spec.md §4.B's "out-of-range... fail with
	// TypeError" implies the old value survives a failed Set).
	tag := o.value.Tag()
	scratch, err := primitive.New(tag, o.value.Printable())
	if err != nil {
		return err
	}
	if err := scratch.Set(printable); err != nil {
		return err
	}
	if err := o.store.UpdateOIDValue(o.oid, scratch.Printable()); err != nil {
		return err
	}
	o.value = scratch
	return nil
}
