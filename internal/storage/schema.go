package storage

// schemaSQL creates the two logical collections spec.md §3 requires: oids
// (indexed by oid string) and events (indexed by (oid, mode), with an
// ordered association to commands via event_commands). All three
// statements are idempotent CREATE TABLE IF NOT EXISTS, matching spec.md
// §4.A's "execute a batch of idempotent schema... statements" contract.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS oids (
	oid         TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	type        TEXT NOT NULL,
	access_mode INTEGER NOT NULL,
	value       TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS events (
	oid     TEXT NOT NULL,
	mode    TEXT NOT NULL,
	timeout INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (oid, mode)
);

CREATE TABLE IF NOT EXISTS event_commands (
	oid     TEXT NOT NULL,
	mode    TEXT NOT NULL,
	seq     INTEGER NOT NULL,
	command TEXT NOT NULL,
	PRIMARY KEY (oid, mode, seq)
);
`
