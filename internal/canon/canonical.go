// Package canon produces canonical JSON (RFC 8785 subset) for golden
// snapshots of harness reports.
//
// Compared with encoding/json:
//   - object keys are sorted by UTF-16 code units
//   - no HTML escaping, and U+2028/U+2029 are written literally
//   - strings are NFC normalized
//   - floats and null are rejected
package canon

import (
	"bytes"
	"fmt"
	"slices"
	"strconv"
	"unicode/utf16"

	"golang.org/x/text/unicode/norm"
)

// Marshal encodes v as canonical JSON. Supported types are string, bool,
// int, int64, []any, []string, map[string]any and map[string]string.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := encode(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encode(buf *bytes.Buffer, v any) error {
	switch val := v.(type) {
	case nil:
		return fmt.Errorf("null is forbidden in canonical JSON")
	case string:
		writeString(buf, val)
	case bool:
		buf.WriteString(strconv.FormatBool(val))
	case int:
		buf.WriteString(strconv.Itoa(val))
	case int64:
		buf.WriteString(strconv.FormatInt(val, 10))
	case []string:
		items := make([]any, len(val))
		for i, s := range val {
			items[i] = s
		}
		return encodeArray(buf, items)
	case []any:
		return encodeArray(buf, val)
	case map[string]string:
		obj := make(map[string]any, len(val))
		for k, s := range val {
			obj[k] = s
		}
		return encodeObject(buf, obj)
	case map[string]any:
		return encodeObject(buf, val)
	case float32, float64:
		return fmt.Errorf("floats are forbidden in canonical JSON: %v", val)
	default:
		return fmt.Errorf("unsupported type for canonical JSON: %T", v)
	}
	return nil
}

func encodeArray(buf *bytes.Buffer, items []any) error {
	buf.WriteByte('[')
	for i, elem := range items {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encode(buf, elem); err != nil {
			return fmt.Errorf("array[%d]: %w", i, err)
		}
	}
	buf.WriteByte(']')
	return nil
}

func encodeObject(buf *bytes.Buffer, obj map[string]any) error {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareUTF16)

	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeString(buf, k)
		buf.WriteByte(':')
		if err := encode(buf, obj[k]); err != nil {
			return fmt.Errorf("value for key %q: %w", k, err)
		}
	}
	buf.WriteByte('}')
	return nil
}

// writeString escapes only what RFC 8785 requires: quote, backslash and
// control characters below U+0020.
func writeString(buf *bytes.Buffer, s string) {
	const hex = "0123456789abcdef"

	buf.WriteByte('"')
	for _, r := range norm.NFC.String(s) {
		switch r {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\b':
			buf.WriteString(`\b`)
		case '\f':
			buf.WriteString(`\f`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			if r < 0x20 {
				buf.WriteString(`\u00`)
				buf.WriteByte(hex[r>>4])
				buf.WriteByte(hex[r&0xf])
				continue
			}
			buf.WriteRune(r)
		}
	}
	buf.WriteByte('"')
}

// compareUTF16 orders strings by UTF-16 code units. Go's native string
// comparison is by UTF-8 bytes, which differs above the BMP.
func compareUTF16(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))
	return slices.Compare(a16, b16)
}
