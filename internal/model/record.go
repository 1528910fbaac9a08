// Package model defines domain types for wrapped sessions and metrics.
package model

import "encoding/json"

// Record types seen in session JSONL files. Anything else is treated as
// RecordUnknown and contributes nothing beyond its raw line count.
const (
	RecordUser      = "user"
	RecordAssistant = "assistant"
	RecordSummary   = "summary"
	RecordQueueOp   = "queue-operation"
	RecordUnknown   = "unknown"
)

// Record is one line of a session JSONL file. Fields are optional per type;
// absent fields decode to zero values and are never an error.
type Record struct {
	Type        string   `json:"type"`
	Timestamp   string   `json:"timestamp,omitempty"`
	Cwd         string   `json:"cwd,omitempty"`
	Version     string   `json:"version,omitempty"`
	SessionID   string   `json:"sessionId,omitempty"`
	IsSidechain bool     `json:"isSidechain,omitempty"`
	IsAPIError  bool     `json:"isApiErrorMessage,omitempty"`
	CostUSD     float64  `json:"costUSD,omitempty"`
	DurationMs  int64    `json:"durationMs,omitempty"`
	Summary     string   `json:"summary,omitempty"`
	Message     *Message `json:"message,omitempty"`
}

// Kind normalizes the record's type discriminator.
func (r *Record) Kind() string {
	switch r.Type {
	case RecordUser, RecordAssistant, RecordSummary, RecordQueueOp:
		return r.Type
	}
	return RecordUnknown
}

// Message is the nested message envelope on user and assistant records.
type Message struct {
	ID      string        `json:"id,omitempty"`
	Role    string        `json:"role,omitempty"`
	Model   string        `json:"model,omitempty"`
	Usage   *Usage        `json:"usage,omitempty"`
	Content ContentBlocks `json:"content,omitempty"`
}

// Usage holds token counts from the API response.
type Usage struct {
	InputTokens              int64          `json:"input_tokens"`
	OutputTokens             int64          `json:"output_tokens"`
	CacheCreationInputTokens int64          `json:"cache_creation_input_tokens"`
	CacheReadInputTokens     int64          `json:"cache_read_input_tokens"`
	CacheCreation            *CacheCreation `json:"cache_creation,omitempty"`
}

// CacheCreation breaks cache-write tokens down by TTL bucket.
type CacheCreation struct {
	Ephemeral5mInputTokens int64 `json:"ephemeral_5m_input_tokens"`
	Ephemeral1hInputTokens int64 `json:"ephemeral_1h_input_tokens"`
}

// CacheWriteTokens returns total cache-creation tokens, preferring the TTL
// breakdown when present over the flat counter.
func (u *Usage) CacheWriteTokens() int64 {
	if u.CacheCreation != nil {
		return u.CacheCreation.Ephemeral5mInputTokens + u.CacheCreation.Ephemeral1hInputTokens
	}
	return u.CacheCreationInputTokens
}

// ContentBlock is one element of an assistant message's content array.
type ContentBlock struct {
	Type  string          `json:"type"`
	Name  string          `json:"name,omitempty"`
	Text  string          `json:"text,omitempty"`
	Input json.RawMessage `json:"input,omitempty"`
}

// InputFields decodes the tool input object. Returns nil when the input is
// absent or not an object.
func (b *ContentBlock) InputFields() map[string]any {
	if len(b.Input) == 0 {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(b.Input, &m); err != nil {
		return nil
	}
	return m
}

// ContentBlocks decodes a message content field that may be either a plain
// string or an array of blocks. A string decodes to a single text block.
type ContentBlocks []ContentBlock

// UnmarshalJSON implements the string-or-array content schema.
func (c *ContentBlocks) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = ContentBlocks{{Type: "text", Text: s}}
		return nil
	}
	var blocks []ContentBlock
	if err := json.Unmarshal(data, &blocks); err != nil {
		// Unrecognized content shape: ignore rather than fail the record.
		*c = nil
		return nil
	}
	*c = blocks
	return nil
}

// HistoryEntry is one line of the global history.jsonl file. It uses a flat
// schema distinct from session records: free text plus a millisecond epoch.
type HistoryEntry struct {
	Display     string `json:"display"`
	TimestampMs int64  `json:"timestamp"`
	Project     string `json:"project,omitempty"`
}

// TodoItem is one task object inside a todos/*.json file.
type TodoItem struct {
	Content string `json:"content"`
	Status  string `json:"status"`
}
