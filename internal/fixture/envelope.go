// Package fixture holds the fixed session record envelope written by
// scenarios. Only OutTxt varies between scenarios; every other field is a
// constant so that payloads stay minimal and comparable.
package fixture

import (
	"bytes"
	"encoding/json"
)

// Envelope defaults.
const (
	Version     = "2.2"
	Host        = "localhost"
	RecordingID = "rec-1"
	User        = "user"
	Terminal    = "xterm"
	SessionID   = 1
	RecordID    = 1
	Timing      = "=0x0"
)

// Envelope is one session record. Field order matches the wire format.
// RecordID ("id") is the session-local record sequence, not the
// correlation id used to find the record.
type Envelope struct {
	Ver      string `json:"ver"`
	Host     string `json:"host"`
	Rec      string `json:"rec"`
	User     string `json:"user"`
	Term     string `json:"term"`
	Session  int64  `json:"session"`
	RecordID int64  `json:"id"`
	Pos      int64  `json:"pos"`
	Timing   string `json:"timing"`
	InTxt    string `json:"in_txt"`
	InBin    []int  `json:"in_bin"`
	OutTxt   string `json:"out_txt"`
	OutBin   []int  `json:"out_bin"`
}

// New returns the default envelope carrying outTxt.
func New(outTxt string) Envelope {
	return Envelope{
		Ver:      Version,
		Host:     Host,
		Rec:      RecordingID,
		User:     User,
		Term:     Terminal,
		Session:  SessionID,
		RecordID: RecordID,
		Pos:      0,
		Timing:   Timing,
		InTxt:    "",
		InBin:    []int{},
		OutTxt:   outTxt,
		OutBin:   []int{},
	}
}

// Marshal renders the envelope as a single newline-terminated JSON line.
// HTML characters are not escaped so terminal output survives verbatim.
func (e Envelope) Marshal() []byte {
	if e.InBin == nil {
		e.InBin = []int{}
	}
	if e.OutBin == nil {
		e.OutBin = []int{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// Encoding a struct of strings, ints and int slices cannot fail.
	_ = enc.Encode(e)
	return buf.Bytes()
}

// EncodedText returns outTxt as it appears inside a marshalled payload:
// JSON-escaped, without the surrounding quotes.
func EncodedText(outTxt string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(outTxt)
	b := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
	return string(b[1 : len(b)-1])
}

// Payload is shorthand for New(outTxt).Marshal().
func Payload(outTxt string) []byte {
	return New(outTxt).Marshal()
}
