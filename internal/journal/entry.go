package journal

import "sort"

// Well-known field names.
const (
	FieldMessage    = "MESSAGE"
	FieldPriority   = "PRIORITY"
	FieldIdentifier = "SYSLOG_IDENTIFIER"

	FieldCorrelationID = "TLOG_ID"
	FieldRecording     = "TLOG_REC"
	FieldUser          = "TLOG_USER"
	FieldSession       = "TLOG_SESSION"
)

// Record is an entry before it is stored.
type Record struct {
	Ints    map[string]int64
	Strings map[string]string
}

// NewRecord returns an empty record with allocated field maps.
func NewRecord() Record {
	return Record{
		Ints:    make(map[string]int64),
		Strings: make(map[string]string),
	}
}

// SetInt sets an integer field.
func (r Record) SetInt(name string, v int64) Record {
	r.Ints[name] = v
	return r
}

// SetString sets a text field.
func (r Record) SetString(name, v string) Record {
	r.Strings[name] = v
	return r
}

// Entry is a stored journal record.
type Entry struct {
	Seq     int64
	Cursor  string
	Ints    map[string]int64
	Strings map[string]string
}

// Int returns an integer field. Text fields of the same name are not
// converted.
func (e Entry) Int(name string) (int64, bool) {
	v, ok := e.Ints[name]
	return v, ok
}

// String returns a text field.
func (e Entry) String(name string) (string, bool) {
	v, ok := e.Strings[name]
	return v, ok
}

// Field returns a field in its native representation: int64 for integer
// fields, string for text fields.
func (e Entry) Field(name string) (any, bool) {
	if v, ok := e.Ints[name]; ok {
		return v, true
	}
	if v, ok := e.Strings[name]; ok {
		return v, true
	}
	return nil, false
}

// FieldNames returns all field names in sorted order.
func (e Entry) FieldNames() []string {
	names := make([]string, 0, len(e.Ints)+len(e.Strings))
	for k := range e.Ints {
		names = append(names, k)
	}
	for k := range e.Strings {
		if _, dup := e.Ints[k]; !dup {
			names = append(names, k)
		}
	}
	sort.Strings(names)
	return names
}
