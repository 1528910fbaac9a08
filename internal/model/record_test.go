package model

import (
	"encoding/json"
	"testing"
)

func TestRecordKind(t *testing.T) {
	tests := []struct {
		typ  string
		want string
	}{
		{"user", RecordUser},
		{"assistant", RecordAssistant},
		{"summary", RecordSummary},
		{"queue-operation", RecordQueueOp},
		{"file-history-snapshot", RecordUnknown},
		{"", RecordUnknown},
	}
	for _, tt := range tests {
		r := Record{Type: tt.typ}
		if got := r.Kind(); got != tt.want {
			t.Errorf("Kind(%q) = %q, want %q", tt.typ, got, tt.want)
		}
	}
}

func TestContentBlocks_StringForm(t *testing.T) {
	var msg Message
	if err := json.Unmarshal([]byte(`{"role":"user","content":"hello there"}`), &msg); err != nil {
		t.Fatal(err)
	}
	if len(msg.Content) != 1 || msg.Content[0].Type != "text" || msg.Content[0].Text != "hello there" {
		t.Errorf("Content = %+v, want single text block", msg.Content)
	}
}

func TestContentBlocks_ArrayForm(t *testing.T) {
	var msg Message
	data := `{"content":[{"type":"text","text":"hi"},{"type":"tool_use","name":"Read","input":{"file_path":"/x"}}]}`
	if err := json.Unmarshal([]byte(data), &msg); err != nil {
		t.Fatal(err)
	}
	if len(msg.Content) != 2 {
		t.Fatalf("got %d blocks, want 2", len(msg.Content))
	}
	fields := msg.Content[1].InputFields()
	if fields["file_path"] != "/x" {
		t.Errorf("InputFields = %v", fields)
	}
}

func TestContentBlocks_BadShape(t *testing.T) {
	var msg Message
	if err := json.Unmarshal([]byte(`{"content":42}`), &msg); err != nil {
		t.Fatalf("unrecognized content shape must not fail the record: %v", err)
	}
	if msg.Content != nil {
		t.Errorf("Content = %v, want nil", msg.Content)
	}
}

func TestUsageCacheWriteTokens(t *testing.T) {
	flat := Usage{CacheCreationInputTokens: 700}
	if got := flat.CacheWriteTokens(); got != 700 {
		t.Errorf("flat counter = %d, want 700", got)
	}

	broken := Usage{
		CacheCreationInputTokens: 700,
		CacheCreation:            &CacheCreation{Ephemeral5mInputTokens: 200, Ephemeral1hInputTokens: 300},
	}
	if got := broken.CacheWriteTokens(); got != 500 {
		t.Errorf("TTL breakdown = %d, want 500 (breakdown preferred)", got)
	}
}
