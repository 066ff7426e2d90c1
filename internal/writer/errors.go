package writer

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes writer failures.
type ErrorCode string

const (
	// ErrCodeInvalidIdentity indicates augmentation was requested without a
	// recording id or username.
	ErrCodeInvalidIdentity ErrorCode = "INVALID_IDENTITY"

	// ErrCodeInvalidSeverity indicates a priority outside the syslog range.
	ErrCodeInvalidSeverity ErrorCode = "INVALID_SEVERITY"

	// ErrCodeInvalidSession indicates a zero session id.
	ErrCodeInvalidSession ErrorCode = "INVALID_SESSION"

	// ErrCodeEmptyPayload indicates Write was called with no data.
	ErrCodeEmptyPayload ErrorCode = "EMPTY_PAYLOAD"

	// ErrCodeAppend indicates the journal rejected or failed the append.
	ErrCodeAppend ErrorCode = "APPEND_FAILED"

	// ErrCodeInvalidWriter indicates Write on a writer that was never
	// constructed.
	ErrCodeInvalidWriter ErrorCode = "INVALID_WRITER"
)

// ConstructionError is returned by New when the writer metadata is
// malformed. It is deterministic and never worth retrying.
type ConstructionError struct {
	Code    ErrorCode
	Message string
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// WriteError is returned by Write when a record could not be emitted.
type WriteError struct {
	Code ErrorCode
	ID   int64
	Err  error
}

func (e *WriteError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: record %d: %v", e.Code, e.ID, e.Err)
	}
	return fmt.Sprintf("%s: record %d", e.Code, e.ID)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// IsConstructionError reports whether err is or wraps a ConstructionError.
func IsConstructionError(err error) bool {
	var ce *ConstructionError
	return errors.As(err, &ce)
}

// IsWriteError reports whether err is or wraps a WriteError.
func IsWriteError(err error) bool {
	var we *WriteError
	return errors.As(err, &we)
}
