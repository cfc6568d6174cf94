// Package timerange validates the textual time-allocation format used
// throughout day plans, e.g. "9:05am-12:20pm".
package timerange

import (
	"regexp"
	"strings"
)

// pattern accepts H:MM or HH:MM clock values with an am/pm suffix on
// both sides of a hyphen or en-dash, case-insensitive. Minutes are
// exactly two digits.
var pattern = regexp.MustCompile(`(?i)^\d{1,2}:\d{2}(am|pm)[–-]\d{1,2}:\d{2}(am|pm)$`)

// Example is a well-formed value, shown in validation messages.
const Example = "9:05am-12:20pm"

// Valid reports whether s is a well-formed time range. Surrounding
// whitespace is trimmed before the check; a blank string is invalid.
func Valid(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	return pattern.MatchString(s)
}
