package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/roach88/jcheck/internal/journal"
)

// Append inserts a record at the tail of the journal and returns the stored
// entry. The MESSAGE field is kept in its own column; every other field goes
// into the JSON object matching its type.
func (s *Store) Append(ctx context.Context, rec journal.Record) (journal.Entry, error) {
	message, strs := splitMessage(rec.Strings)

	intsJSON, err := marshalFields(rec.Ints)
	if err != nil {
		return journal.Entry{}, fmt.Errorf("append: %w", err)
	}
	strsJSON, err := marshalFields(strs)
	if err != nil {
		return journal.Entry{}, fmt.Errorf("append: %w", err)
	}

	cursor := s.cursors.Generate()

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO entries (cursor, message, int_fields, str_fields)
		VALUES (?, ?, ?, ?)
	`, cursor, message, intsJSON, strsJSON)
	if err != nil {
		return journal.Entry{}, fmt.Errorf("append: %w", err)
	}

	seq, err := result.LastInsertId()
	if err != nil {
		return journal.Entry{}, fmt.Errorf("append: last insert id: %w", err)
	}

	return buildEntry(seq, cursor, message, copyInts(rec.Ints), strs), nil
}

// splitMessage separates MESSAGE from the other text fields.
// The returned map is a copy.
func splitMessage(fields map[string]string) (string, map[string]string) {
	rest := make(map[string]string, len(fields))
	var message string
	for k, v := range fields {
		if k == journal.FieldMessage {
			message = v
			continue
		}
		rest[k] = v
	}
	return message, rest
}

func marshalFields[V int64 | string](m map[string]V) (string, error) {
	if len(m) == 0 {
		return "{}", nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("marshal fields: %w", err)
	}
	return string(data), nil
}

func copyInts(m map[string]int64) map[string]int64 {
	out := make(map[string]int64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
