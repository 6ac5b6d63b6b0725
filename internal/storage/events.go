package storage

import "fmt"

// EventRow is a persisted scheduler entry: the (oid, mode) key, its
// AUTO-only timeout, and its ordered command list, per spec.md §3.
type EventRow struct {
	OID      string
	Mode     string
	Timeout  int
	Commands []string
}

// ListEvents realizes select(query) for the full events collection,
// including each event's ordered commands.
func (b *Backend) ListEvents() ([]EventRow, error) {
	rows, err := b.db.Query(`SELECT oid, mode, timeout FROM events`)
	if err != nil {
		return nil, &Error{Op: "select events", Err: err}
	}

	var out []EventRow
	for rows.Next() {
		var r EventRow
		if err := rows.Scan(&r.OID, &r.Mode, &r.Timeout); err != nil {
			rows.Close()
			return nil, &Error{Op: "scan event", Err: err}
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, &Error{Op: "select events", Err: err}
	}
	rows.Close()

	for i := range out {
		cmds, err := b.commandsFor(out[i].OID, out[i].Mode)
		if err != nil {
			return nil, err
		}
		out[i].Commands = cmds
	}
	return out, nil
}

func (b *Backend) commandsFor(oid, mode string) ([]string, error) {
	rows, err := b.db.Query(
		`SELECT command FROM event_commands WHERE oid = ? AND mode = ? ORDER BY seq ASC`,
		oid, mode,
	)
	if err != nil {
		return nil, &Error{Op: fmt.Sprintf("select commands for %s/%s", oid, mode), Err: err}
	}
	defer rows.Close()

	var cmds []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, &Error{Op: fmt.Sprintf("scan command for %s/%s", oid, mode), Err: err}
		}
		cmds = append(cmds, c)
	}
	return cmds, rows.Err()
}

// PutEvent upserts the event keyed by (row.OID, row.Mode): spec.md §3
// defines (oid, mode) as the key, at most one event per pair. Replaces
// the command list wholesale in one transaction.
func (b *Backend) PutEvent(row EventRow) error {
	tx, err := b.db.Begin()
	if err != nil {
		return &Error{Op: fmt.Sprintf("put event %s/%s", row.OID, row.Mode), Err: err}
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT INTO events (oid, mode, timeout) VALUES (?, ?, ?)
		 ON CONFLICT(oid, mode) DO UPDATE SET timeout = excluded.timeout`,
		row.OID, row.Mode, row.Timeout,
	); err != nil {
		return &Error{Op: fmt.Sprintf("put event %s/%s", row.OID, row.Mode), Err: err}
	}

	if _, err := tx.Exec(`DELETE FROM event_commands WHERE oid = ? AND mode = ?`, row.OID, row.Mode); err != nil {
		return &Error{Op: fmt.Sprintf("put event %s/%s", row.OID, row.Mode), Err: err}
	}
	for i, cmd := range row.Commands {
		if _, err := tx.Exec(
			`INSERT INTO event_commands (oid, mode, seq, command) VALUES (?, ?, ?, ?)`,
			row.OID, row.Mode, i, cmd,
		); err != nil {
			return &Error{Op: fmt.Sprintf("put event %s/%s", row.OID, row.Mode), Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return &Error{Op: fmt.Sprintf("put event %s/%s", row.OID, row.Mode), Err: err}
	}
	return nil
}

// PutEvents upserts every row in one transaction, for the scheduling-file
// parser's contract (§4.K): "a successful parse results in zero or more
// tuples persisted atomically".
func (b *Backend) PutEvents(rows []EventRow) error {
	tx, err := b.db.Begin()
	if err != nil {
		return &Error{Op: "put events", Err: err}
	}
	defer tx.Rollback()

	for _, row := range rows {
		if _, err := tx.Exec(
			`INSERT INTO events (oid, mode, timeout) VALUES (?, ?, ?)
			 ON CONFLICT(oid, mode) DO UPDATE SET timeout = excluded.timeout`,
			row.OID, row.Mode, row.Timeout,
		); err != nil {
			return &Error{Op: fmt.Sprintf("put event %s/%s", row.OID, row.Mode), Err: err}
		}
		if _, err := tx.Exec(`DELETE FROM event_commands WHERE oid = ? AND mode = ?`, row.OID, row.Mode); err != nil {
			return &Error{Op: fmt.Sprintf("put event %s/%s", row.OID, row.Mode), Err: err}
		}
		for i, cmd := range row.Commands {
			if _, err := tx.Exec(
				`INSERT INTO event_commands (oid, mode, seq, command) VALUES (?, ?, ?, ?)`,
				row.OID, row.Mode, i, cmd,
			); err != nil {
				return &Error{Op: fmt.Sprintf("put event %s/%s", row.OID, row.Mode), Err: err}
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return &Error{Op: "put events", Err: err}
	}
	return nil
}

// ClearEvents removes every event and its commands, used only by the
// external reset tool.
func (b *Backend) ClearEvents() error {
	tx, err := b.db.Begin()
	if err != nil {
		return &Error{Op: "clear events", Err: err}
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM event_commands`); err != nil {
		return &Error{Op: "clear events", Err: err}
	}
	if _, err := tx.Exec(`DELETE FROM events`); err != nil {
		return &Error{Op: "clear events", Err: err}
	}
	return tx.Commit()
}

// DeleteEventsForOID removes every event attached to oid, used when an
// OID itself is deleted (spec.md §3's cascading-delete invariant).
func (b *Backend) DeleteEventsForOID(oid string) error {
	tx, err := b.db.Begin()
	if err != nil {
		return &Error{Op: fmt.Sprintf("delete events for %s", oid), Err: err}
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM event_commands WHERE oid = ?`, oid); err != nil {
		return &Error{Op: fmt.Sprintf("delete events for %s", oid), Err: err}
	}
	if _, err := tx.Exec(`DELETE FROM events WHERE oid = ?`, oid); err != nil {
		return &Error{Op: fmt.Sprintf("delete events for %s", oid), Err: err}
	}
	return tx.Commit()
}
