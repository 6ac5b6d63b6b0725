package schedparser

import (
	"bytes"
	"strings"
	"testing"

	"github.com/snmpext/murmured/internal/scheduler"
	"github.com/snmpext/murmured/internal/storage"
)

const sample = `1.3.6.1.2.1.1.3.0
AUTO 2
/bin/true

1.3.6.1.2.1.1.1.0
SET
echo hi
echo bye
`

func TestParse(t *testing.T) {
	rows, err := Parse(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d events, want 2", len(rows))
	}
	if rows[0].OID != "1.3.6.1.2.1.1.3.0" || rows[0].Mode != "AUTO" || rows[0].Timeout != 2 {
		t.Fatalf("first event = %+v", rows[0])
	}
	if len(rows[0].Commands) != 1 || rows[0].Commands[0] != "/bin/true" {
		t.Fatalf("first event commands = %v", rows[0].Commands)
	}
	if rows[1].Mode != "SET" || len(rows[1].Commands) != 2 {
		t.Fatalf("second event = %+v", rows[1])
	}
}

func TestParseRejectsAUTOWithoutTimeout(t *testing.T) {
	_, err := Parse(strings.NewReader("1.3.6.1.1\nAUTO\n/bin/true\n"))
	if err == nil {
		t.Fatal("expected error for AUTO event missing timeout")
	}
}

func TestParseRejectsUnknownMode(t *testing.T) {
	_, err := Parse(strings.NewReader("1.3.6.1.1\nBOGUS\n/bin/true\n"))
	if err == nil {
		t.Fatal("expected error for unknown mode")
	}
}

func TestDumpParseRoundTrip(t *testing.T) {
	rows, err := Parse(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	var buf bytes.Buffer
	if err := Dump(&buf, rows); err != nil {
		t.Fatalf("Dump: %v", err)
	}

	roundTripped, err := Parse(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("re-parse dumped output: %v", err)
	}
	if len(roundTripped) != len(rows) {
		t.Fatalf("round trip produced %d events, want %d", len(roundTripped), len(rows))
	}
	for i := range rows {
		if roundTripped[i].OID != rows[i].OID || roundTripped[i].Mode != rows[i].Mode || roundTripped[i].Timeout != rows[i].Timeout {
			t.Fatalf("round trip mismatch at %d: got %+v, want %+v", i, roundTripped[i], rows[i])
		}
	}
}

func TestLoadFilePersistsAtomically(t *testing.T) {
	store, err := storage.Open(t.TempDir() + "/sched.db")
	if err != nil {
		t.Fatalf("open storage: %v", err)
	}
	defer store.Close()

	sched := scheduler.New(store, nil, nil)
	if err := sched.LoadEvents(); err != nil {
		t.Fatalf("load events: %v", err)
	}

	n, err := LoadFile(store, sched, strings.NewReader(sample))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if n != 2 {
		t.Fatalf("loaded %d events, want 2", n)
	}

	rows, err := store.ListEvents()
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("persisted %d events, want 2", len(rows))
	}
}
