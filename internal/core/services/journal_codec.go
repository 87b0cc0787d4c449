package services

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/SscSPs/financeflow/internal/core/domain"
)

var errJournalNotArray = errors.New("persisted journal is not a JSON array")

// encodeJournal serializes the journal as a JSON array. A nil journal encodes as "[]".
func encodeJournal(entries []domain.JournalEntry) ([]byte, error) {
	if entries == nil {
		entries = []domain.JournalEntry{}
	}
	return json.Marshal(entries)
}

// splitJournal parses the outer array of a persisted journal without decoding the entries,
// so one bad entry does not discard the rest. Empty input and "null" yield no entries.
func splitJournal(data []byte) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	if trimmed[0] != '[' {
		return nil, errJournalNotArray
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// quoteRaw wraps arbitrary bytes as a JSON string so they can sit in a JSON array.
func quoteRaw(data []byte) json.RawMessage {
	quoted, _ := json.Marshal(string(data))
	return quoted
}
