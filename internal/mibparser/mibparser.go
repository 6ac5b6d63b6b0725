// Package mibparser implements the minimal declarative MIB-file format
// spec.md §4.J treats as an external collaborator: a one-shot loader that
// turns a small text format into OID rows appended under a root OID.
//
// This is deliberately not an ASN.1 MIB compiler — spec.md §1 names full
// MIB compilation a non-goal. The format is one record per line:
//
//	oid-suffix name TYPE ACCESS [value]
//
// oid-suffix is appended to the given root OID with a dot. Blank lines and
// lines starting with '#' are ignored. A malformed record aborts the
// whole file: nothing is persisted until every record has parsed and
// validated cleanly.
package mibparser

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/snmpext/murmured/internal/mib"
	"github.com/snmpext/murmured/internal/primitive"
	"github.com/snmpext/murmured/internal/storage"
)

// ParseError reports the line number and cause of a malformed record.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string { return fmt.Sprintf("mib file line %d: %v", e.Line, e.Err) }
func (e *ParseError) Unwrap() error { return e.Err }

var accessByName = map[string]mib.AccessMode{
	"NOT_ACCESSIBLE": mib.NotAccessible,
	"READ_ONLY":      mib.ReadOnly,
	"READ_WRITE":     mib.ReadWrite,
	"READ_CREATE":    mib.ReadCreate,
}

// Parse reads the declarative format from r and returns fully-formed OID
// rows, each identifier prefixed with root. It validates every record's
// type and value against internal/primitive before returning anything,
// so the caller can persist the whole batch atomically.
func Parse(root string, r io.Reader) ([]storage.OIDRow, error) {
	scanner := bufio.NewScanner(r)
	var rows []storage.OIDRow
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 4 {
			return nil, &ParseError{Line: lineNo, Err: fmt.Errorf("expected at least 4 fields, got %d", len(fields))}
		}
		suffix, name := fields[0], fields[1]
		typeTok, rest := fields[2], fields[3:]
		// Two-word tags (OCTET STRING, OBJECT IDENTIFIER) span two fields.
		if len(fields) >= 5 {
			if _, ok := primitive.NormalizeTag(fields[2] + " " + fields[3]); ok {
				typeTok, rest = fields[2]+" "+fields[3], fields[4:]
			}
		}
		accessTok := rest[0]
		value := strings.Join(rest[1:], " ")

		access, ok := accessByName[strings.ToUpper(accessTok)]
		if !ok {
			return nil, &ParseError{Line: lineNo, Err: fmt.Errorf("unknown access mode %q", accessTok)}
		}

		tag, ok := primitive.NormalizeTag(typeTok)
		if !ok {
			return nil, &ParseError{Line: lineNo, Err: fmt.Errorf("unknown type %q", typeTok)}
		}
		prim, err := primitive.New(tag, value)
		if err != nil {
			return nil, &ParseError{Line: lineNo, Err: err}
		}

		rows = append(rows, storage.OIDRow{
			OID:        root + "." + suffix,
			Name:       name,
			Type:       string(tag),
			AccessMode: int(access),
			Value:      prim.Printable(),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}

// LoadFile parses r under root, persists every resulting row to store in
// one transaction, and refreshes table from storage. It returns the
// number of rows loaded.
func LoadFile(store *storage.Backend, table *mib.Table, root string, r io.Reader) (int, error) {
	rows, err := Parse(root, r)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	if err := store.InsertOIDs(rows); err != nil {
		return 0, err
	}
	if err := table.Load(); err != nil {
		return 0, err
	}
	return len(rows), nil
}
