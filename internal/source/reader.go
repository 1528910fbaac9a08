// Package source discovers and parses the files inside a Claude data
// directory: per-project session JSONL logs, the global history file,
// todo-list files, and the statsig feature-flag cache.
package source

import (
	"bufio"
	"encoding/json"
	"os"
	"unicode/utf8"

	"clwrapped/internal/model"
)

// ReadRecords reads a session JSONL file and returns every line that decodes
// as a record, in file order. Malformed lines are skipped without affecting
// their siblings; an unopenable file yields an empty slice. Re-reading the
// same file yields the same records.
func ReadRecords(path string) []model.Record {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer func() { _ = f.Close() }()

	var records []model.Record

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 256*1024), 4*1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		line = sanitizeUTF8(line)

		var rec model.Record
		if err := json.Unmarshal(line, &rec); err != nil {
			continue
		}
		records = append(records, rec)
	}
	// A scanner error (oversized line, truncated tail) loses at most the
	// remainder of the file; everything already decoded is kept.
	return records
}

// ReadHistory reads the global history.jsonl file with its flat schema.
// Same failure semantics as ReadRecords.
func ReadHistory(path string) []model.HistoryEntry {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer func() { _ = f.Close() }()

	var entries []model.HistoryEntry

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var e model.HistoryEntry
		if err := json.Unmarshal(sanitizeUTF8(line), &e); err != nil {
			continue
		}
		entries = append(entries, e)
	}
	return entries
}

// sanitizeUTF8 replaces invalid byte sequences so a mid-write capture cannot
// poison the JSON decoder. Valid input is returned unchanged without copying.
func sanitizeUTF8(line []byte) []byte {
	if utf8.Valid(line) {
		return line
	}
	return []byte(string([]rune(string(line))))
}
