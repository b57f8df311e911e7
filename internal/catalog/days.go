package catalog

import (
	"strings"
	"time"
)

// DaySet is a set of weekdays stored as a bitmask, bit i for time.Weekday(i).
type DaySet uint8

var dayAbbrevs = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// Abbrev returns the three-letter abbreviation for d, e.g. "Wed".
func Abbrev(d time.Weekday) string {
	if d < time.Sunday || d > time.Saturday {
		return ""
	}
	return dayAbbrevs[d]
}

// ParseDay maps a three-letter abbreviation to its weekday. Matching is exact.
func ParseDay(s string) (time.Weekday, bool) {
	for i, a := range dayAbbrevs {
		if a == s {
			return time.Weekday(i), true
		}
	}
	return 0, false
}

// ParseDays reads a comma-separated list such as "Mon, Wed,Fri".
// Tokens that are not weekday abbreviations are ignored.
func ParseDays(s string) DaySet {
	var set DaySet
	for _, tok := range strings.Split(s, ",") {
		if d, ok := ParseDay(strings.TrimSpace(tok)); ok {
			set = set.With(d)
		}
	}
	return set
}

// With returns the set with d added.
func (s DaySet) With(d time.Weekday) DaySet {
	return s | 1<<uint(d)
}

// Has reports whether d is in the set.
func (s DaySet) Has(d time.Weekday) bool {
	return s&(1<<uint(d)) != 0
}

// Empty reports whether the record is never open.
func (s DaySet) Empty() bool {
	return s == 0
}

// Bit returns the mask bit for d.
func Bit(d time.Weekday) DaySet {
	return DaySet(0).With(d)
}

func (s DaySet) String() string {
	var parts []string
	for i, a := range dayAbbrevs {
		if s.Has(time.Weekday(i)) {
			parts = append(parts, a)
		}
	}
	return strings.Join(parts, ",")
}
