package enums

import (
	"fmt"
	"strings"
)

// LogStatus describes the outcome recorded on a security log entry.
type LogStatus string

const (
	LogStatusSuccess LogStatus = "Success"
	LogStatusError   LogStatus = "Error"
)

var validLogStatuses = []LogStatus{
	LogStatusSuccess,
	LogStatusError,
}

// IsValid reports whether the value matches the canonical log status enum.
func (s LogStatus) IsValid() bool {
	for _, candidate := range validLogStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// String returns the raw enum value.
func (s LogStatus) String() string {
	return string(s)
}

// ParseLogStatus converts the raw string to LogStatus.
func ParseLogStatus(value string) (LogStatus, error) {
	for _, candidate := range validLogStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid log status %q", value)
}

// LogStatusForAction derives the status from the action code: any action
// containing "ERROR" is recorded as a failure.
func LogStatusForAction(action string) LogStatus {
	if strings.Contains(action, "ERROR") {
		return LogStatusError
	}
	return LogStatusSuccess
}
