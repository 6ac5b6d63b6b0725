package storage

import (
	"database/sql"
	"fmt"
)

// OIDRow is a persisted row of the oids collection, exactly the OID
// attributes spec.md §3 lists.
type OIDRow struct {
	OID        string
	Name       string
	Type       string
	AccessMode int
	Value      string
}

// ListOIDs realizes spec.md §4.A's select(query) for the full oids
// collection. Order is whatever SQLite returns; callers that need
// lexicographic order (internal/mib) sort after loading.
func (b *Backend) ListOIDs() ([]OIDRow, error) {
	rows, err := b.db.Query(`SELECT oid, name, type, access_mode, value FROM oids`)
	if err != nil {
		return nil, &Error{Op: "select oids", Err: err}
	}
	defer rows.Close()

	var out []OIDRow
	for rows.Next() {
		var r OIDRow
		if err := rows.Scan(&r.OID, &r.Name, &r.Type, &r.AccessMode, &r.Value); err != nil {
			return nil, &Error{Op: "scan oid", Err: err}
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, &Error{Op: "select oids", Err: err}
	}
	return out, nil
}

// InsertOID realizes insert(query): it fails if the oid already exists,
// per spec.md §4.D's add_oid contract ("fails if the OID already exists").
func (b *Backend) InsertOID(row OIDRow) error {
	_, err := b.db.Exec(
		`INSERT INTO oids (oid, name, type, access_mode, value) VALUES (?, ?, ?, ?, ?)`,
		row.OID, row.Name, row.Type, row.AccessMode, row.Value,
	)
	if err != nil {
		return &Error{Op: fmt.Sprintf("insert oid %s", row.OID), Err: err}
	}
	return nil
}

// UpdateOIDValue realizes update(query) for the one field OIDs mutate
// after creation: their value (type and access mode are immutable per
// spec.md §3).
func (b *Backend) UpdateOIDValue(oid, value string) error {
	res, err := b.db.Exec(`UPDATE oids SET value = ? WHERE oid = ?`, value, oid)
	if err != nil {
		return &Error{Op: fmt.Sprintf("update oid %s", oid), Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return &Error{Op: fmt.Sprintf("update oid %s", oid), Err: err}
	}
	if n == 0 {
		return &Error{Op: fmt.Sprintf("update oid %s", oid), Err: sql.ErrNoRows}
	}
	return nil
}

// InsertOIDs inserts every row in one transaction: either all of them
// land or none do. Used by the MIB file loader (§4.J), whose contract
// requires a malformed record to abort the whole file rather than leave a
// partial load.
func (b *Backend) InsertOIDs(rows []OIDRow) error {
	tx, err := b.db.Begin()
	if err != nil {
		return &Error{Op: "insert oids", Err: err}
	}
	defer tx.Rollback()

	for _, row := range rows {
		if _, err := tx.Exec(
			`INSERT INTO oids (oid, name, type, access_mode, value) VALUES (?, ?, ?, ?, ?)`,
			row.OID, row.Name, row.Type, row.AccessMode, row.Value,
		); err != nil {
			return &Error{Op: fmt.Sprintf("insert oid %s", row.OID), Err: err}
		}
	}
	if err := tx.Commit(); err != nil {
		return &Error{Op: "insert oids", Err: err}
	}
	return nil
}

// DeleteOID realizes delete(query). Deleting an OID also deletes any
// events attached to it, per spec.md §3's invariant, so this cascades
// into event_commands/events within one transaction.
func (b *Backend) DeleteOID(oid string) error {
	tx, err := b.db.Begin()
	if err != nil {
		return &Error{Op: fmt.Sprintf("delete oid %s", oid), Err: err}
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM event_commands WHERE oid = ?`, oid); err != nil {
		return &Error{Op: fmt.Sprintf("delete oid %s", oid), Err: err}
	}
	if _, err := tx.Exec(`DELETE FROM events WHERE oid = ?`, oid); err != nil {
		return &Error{Op: fmt.Sprintf("delete oid %s", oid), Err: err}
	}
	if _, err := tx.Exec(`DELETE FROM oids WHERE oid = ?`, oid); err != nil {
		return &Error{Op: fmt.Sprintf("delete oid %s", oid), Err: err}
	}
	if err := tx.Commit(); err != nil {
		return &Error{Op: fmt.Sprintf("delete oid %s", oid), Err: err}
	}
	return nil
}

// ClearOIDs removes every oid row and, transitively, every event — used
// only by the external reset tool per spec.md §3's lifecycle note.
func (b *Backend) ClearOIDs() error {
	tx, err := b.db.Begin()
	if err != nil {
		return &Error{Op: "clear oids", Err: err}
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		`DELETE FROM event_commands`,
		`DELETE FROM events`,
		`DELETE FROM oids`,
	} {
		if _, err := tx.Exec(stmt); err != nil {
			return &Error{Op: "clear oids", Err: err}
		}
	}
	return tx.Commit()
}
