// Package journal defines the append-only log model shared by the writer,
// the journal backends, and the correlation verifier.
//
// A journal is a sequence of entries. Each entry carries a backend-assigned
// sequence number and cursor, plus a set of named fields. Field values are
// typed: integer fields (TLOG_ID, PRIORITY, TLOG_SESSION) and text fields
// (MESSAGE, TLOG_REC, TLOG_USER, SYSLOG_IDENTIFIER) live in separate maps so
// that a lookup never coerces one representation into the other.
//
// # Reading
//
// Readers expose a reverse cursor positioned after the newest entry:
//
//	cur, err := j.OpenReverseCursor(ctx)
//	if err != nil {
//	    return err
//	}
//	defer cur.Close()
//	for {
//	    e, ok := cur.Previous()
//	    if !ok {
//	        break
//	    }
//	    // newest first
//	}
//	if err := cur.Err(); err != nil {
//	    return err
//	}
package journal
