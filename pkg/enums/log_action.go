package enums

import (
	"fmt"
	"strings"
)

// LogAction is the kind of stock movement captured by an audit log row.
type LogAction string

const (
	LogActionAdd      LogAction = "ADD"
	LogActionWithdraw LogAction = "WITHDRAW"
)

var validLogActions = []LogAction{
	LogActionAdd,
	LogActionWithdraw,
}

// String implements fmt.Stringer.
func (a LogAction) String() string {
	return string(a)
}

// IsValid reports whether the value matches a known LogAction.
func (a LogAction) IsValid() bool {
	for _, candidate := range validLogActions {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseLogAction converts raw input into a LogAction. Matching is
// case-insensitive to tolerate query-string filters.
func ParseLogAction(value string) (LogAction, error) {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	for _, candidate := range validLogActions {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid log action %q", value)
}
