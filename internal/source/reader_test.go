package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeJSONL creates a temp JSONL file and returns its path.
func writeJSONL(t *testing.T, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadRecords_MalformedLines(t *testing.T) {
	path := writeJSONL(t, "session.jsonl",
		`{"type":"user","timestamp":"2025-06-01T10:00:00Z"}`,
		`not json at all`,
		`{"type":"assistant","broken`,
		``,
		`{"type":"assistant","timestamp":"2025-06-01T10:01:00Z"}`,
	)

	records := ReadRecords(path)
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2 (malformed lines skipped)", len(records))
	}
	if records[0].Type != "user" || records[1].Type != "assistant" {
		t.Errorf("record types = %q, %q", records[0].Type, records[1].Type)
	}
}

func TestReadRecords_MissingFile(t *testing.T) {
	records := ReadRecords(filepath.Join(t.TempDir(), "nope.jsonl"))
	if records != nil {
		t.Errorf("got %d records for missing file, want none", len(records))
	}
}

func TestReadRecords_InvalidUTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.jsonl")
	line := append([]byte(`{"type":"user","cwd":"/tmp/a`), 0xff, 0xfe)
	line = append(line, []byte(`"}`)...)
	if err := os.WriteFile(path, append(line, '\n'), 0o600); err != nil {
		t.Fatal(err)
	}

	records := ReadRecords(path)
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1 (invalid bytes replaced)", len(records))
	}
	if records[0].Type != "user" {
		t.Errorf("Type = %q, want user", records[0].Type)
	}
}

func TestReadRecords_Deterministic(t *testing.T) {
	path := writeJSONL(t, "session.jsonl",
		`{"type":"user","timestamp":"2025-06-01T10:00:00Z"}`,
		`{"type":"assistant","timestamp":"2025-06-01T10:01:00Z"}`,
	)

	first := ReadRecords(path)
	second := ReadRecords(path)
	if len(first) != len(second) {
		t.Fatalf("re-read changed record count: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Type != second[i].Type || first[i].Timestamp != second[i].Timestamp {
			t.Errorf("record %d differs between reads", i)
		}
	}
}

func TestReadHistory(t *testing.T) {
	path := writeJSONL(t, "history.jsonl",
		`{"display":"fix the tests","timestamp":1717236000000,"project":"/tmp/proj"}`,
		`garbage`,
		`{"display":"/compact","timestamp":1717236060000}`,
	)

	entries := ReadHistory(path)
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Display != "fix the tests" {
		t.Errorf("Display = %q", entries[0].Display)
	}
	if entries[1].TimestampMs != 1717236060000 {
		t.Errorf("TimestampMs = %d", entries[1].TimestampMs)
	}
}
