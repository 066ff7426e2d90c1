package journal

import (
	"fmt"
	"strings"
)

// Severity is a syslog priority level, 0 (emerg) through 7 (debug).
type Severity int64

const (
	SeverityEmerg Severity = iota
	SeverityAlert
	SeverityCrit
	SeverityErr
	SeverityWarning
	SeverityNotice
	SeverityInfo
	SeverityDebug
)

var severityNames = [...]string{"emerg", "alert", "crit", "err", "warning", "notice", "info", "debug"}

// Valid reports whether s is a defined syslog level.
func (s Severity) Valid() bool {
	return s >= SeverityEmerg && s <= SeverityDebug
}

// String returns the syslog name of the level.
func (s Severity) String() string {
	if !s.Valid() {
		return fmt.Sprintf("severity(%d)", int64(s))
	}
	return severityNames[s]
}

// ParseSeverity accepts syslog level names and their common aliases
// ("error", "warn", "panic", "emergency", "critical").
func ParseSeverity(name string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "emerg", "emergency", "panic":
		return SeverityEmerg, nil
	case "alert":
		return SeverityAlert, nil
	case "crit", "critical":
		return SeverityCrit, nil
	case "err", "error":
		return SeverityErr, nil
	case "warning", "warn":
		return SeverityWarning, nil
	case "notice":
		return SeverityNotice, nil
	case "info":
		return SeverityInfo, nil
	case "debug":
		return SeverityDebug, nil
	}
	return 0, fmt.Errorf("unknown severity %q", name)
}
