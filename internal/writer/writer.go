// Package writer emits session records to a journal.
//
// A Writer is bound to one session: its severity, identity and augmentation
// mode are fixed at construction. With augmentation on, every record carries
// the recording id, username, session id and the caller's correlation id as
// separate typed fields (TLOG_REC, TLOG_USER, TLOG_SESSION, TLOG_ID). With
// augmentation off only MESSAGE, PRIORITY and SYSLOG_IDENTIFIER are written,
// and a record can only be found again by its message text.
package writer

import (
	"bytes"
	"context"
	"fmt"

	"github.com/roach88/jcheck/internal/journal"
)

// Identifier is written as SYSLOG_IDENTIFIER on every record.
const Identifier = "jcheck"

// Config holds the per-session writer metadata.
type Config struct {
	Severity    journal.Severity
	Augment     bool
	RecordingID *string
	Username    *string
	SessionID   uint32
}

// Writer appends session records to a journal.
type Writer struct {
	app   journal.Appender
	cfg   Config
	valid bool
}

// New validates cfg and returns a writer bound to app.
func New(app journal.Appender, cfg Config) (*Writer, error) {
	if app == nil {
		return nil, &ConstructionError{Code: ErrCodeInvalidWriter, Message: "journal is nil"}
	}
	if !cfg.Severity.Valid() {
		return nil, &ConstructionError{
			Code:    ErrCodeInvalidSeverity,
			Message: fmt.Sprintf("priority %d outside syslog range 0..7", int64(cfg.Severity)),
		}
	}
	if cfg.SessionID == 0 {
		return nil, &ConstructionError{Code: ErrCodeInvalidSession, Message: "session id must be non-zero"}
	}
	if cfg.Augment {
		if isBlank(cfg.RecordingID) {
			return nil, &ConstructionError{Code: ErrCodeInvalidIdentity, Message: "augmentation requires a recording id"}
		}
		if isBlank(cfg.Username) {
			return nil, &ConstructionError{Code: ErrCodeInvalidIdentity, Message: "augmentation requires a username"}
		}
	}
	return &Writer{app: app, cfg: cfg, valid: true}, nil
}

// IsValid reports whether w was fully constructed.
func (w *Writer) IsValid() bool {
	return w != nil && w.valid
}

// Write emits payload as one record tagged with correlation id id.
// A single trailing newline is dropped from the message.
func (w *Writer) Write(ctx context.Context, id int64, payload []byte) error {
	if !w.IsValid() {
		return &WriteError{Code: ErrCodeInvalidWriter, ID: id}
	}
	msg := bytes.TrimSuffix(payload, []byte("\n"))
	if len(msg) == 0 {
		return &WriteError{Code: ErrCodeEmptyPayload, ID: id}
	}

	rec := journal.NewRecord().
		SetString(journal.FieldMessage, string(msg)).
		SetString(journal.FieldIdentifier, Identifier).
		SetInt(journal.FieldPriority, int64(w.cfg.Severity))

	if w.cfg.Augment {
		rec.SetString(journal.FieldRecording, *w.cfg.RecordingID).
			SetString(journal.FieldUser, *w.cfg.Username).
			SetInt(journal.FieldSession, int64(w.cfg.SessionID)).
			SetInt(journal.FieldCorrelationID, id)
	}

	if _, err := w.app.Append(ctx, rec); err != nil {
		return &WriteError{Code: ErrCodeAppend, ID: id, Err: err}
	}
	return nil
}

func isBlank(s *string) bool {
	return s == nil || *s == ""
}
