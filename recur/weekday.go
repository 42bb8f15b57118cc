package recur

import (
	"fmt"
	"iter"
	"strconv"
	"strings"
	"time"
)

// Weekday is a day of the week, Monday first.
type Weekday uint8

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// MaxOrdinal bounds the magnitude of a BYDAY ordinal (weeks in a year).
const MaxOrdinal = 53

var weekdayNames = [...]string{"MO", "TU", "WE", "TH", "FR", "SA", "SU"}

// String returns the RFC 5545 two letter name.
func (w Weekday) String() string {
	if int(w) < len(weekdayNames) {
		return weekdayNames[w]
	}
	return "Weekday(" + strconv.Itoa(int(w)) + ")"
}

// Valid reports whether w is one of the seven weekdays.
func (w Weekday) Valid() bool {
	return w <= Sunday
}

// Time converts w to the time package representation.
func (w Weekday) Time() time.Weekday {
	return time.Weekday((int(w) + 1) % 7)
}

// WeekdayFromTime converts a time.Weekday.
func WeekdayFromTime(d time.Weekday) Weekday {
	return Weekday((int(d) + 6) % 7)
}

// ParseWeekday parses a two letter weekday name, case-insensitively.
func ParseWeekday(s string) (Weekday, error) {
	for i, name := range weekdayNames {
		if strings.EqualFold(s, name) {
			return Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", s)
}

// WeekdayNum is one BYDAY entry: a weekday with an optional ordinal.
// Ordinal 0 selects every such weekday in the period; +2 is the second one,
// -1 the last one.
type WeekdayNum struct {
	Weekday Weekday
	Ordinal int
}

// String renders the entry as it appears in RRULE text, e.g. "MO", "2MO", "-1FR".
func (wn WeekdayNum) String() string {
	if wn.Ordinal == 0 {
		return wn.Weekday.String()
	}
	return strconv.Itoa(wn.Ordinal) + wn.Weekday.String()
}

// WeekdayNumSet is a non-empty, insertion ordered set of unique BYDAY entries.
type WeekdayNumSet struct {
	entries []WeekdayNum
}

// NewWeekdayNumSet builds a BYDAY set. Ordinals must not exceed bound in
// magnitude; bound itself is capped at MaxOrdinal. Whether nonzero ordinals
// are legal at all depends on the rule's frequency and is checked by Build.
func NewWeekdayNumSet(bound int, pairs ...WeekdayNum) (WeekdayNumSet, error) {
	if bound > MaxOrdinal || bound < 0 {
		bound = MaxOrdinal
	}
	if len(pairs) == 0 {
		return WeekdayNumSet{}, &EmptySetError{Domain: ByDay.String()}
	}

	entries := make([]WeekdayNum, 0, len(pairs))
	seen := make(map[WeekdayNum]struct{}, len(pairs))
	for _, p := range pairs {
		if !p.Weekday.Valid() {
			return WeekdayNumSet{}, &OutOfRangeError{Value: int(p.Weekday), Domain: "weekday"}
		}
		if p.Ordinal > bound || p.Ordinal < -bound {
			return WeekdayNumSet{}, &OutOfRangeError{Value: p.Ordinal, Domain: "BYDAY ordinal"}
		}
		if _, dup := seen[p]; dup {
			return WeekdayNumSet{}, &DuplicateEntryError{Entry: p}
		}
		seen[p] = struct{}{}
		entries = append(entries, p)
	}
	return WeekdayNumSet{entries: entries}, nil
}

// Contains reports whether wn is in the set.
func (s WeekdayNumSet) Contains(wn WeekdayNum) bool {
	for _, e := range s.entries {
		if e == wn {
			return true
		}
	}
	return false
}

// Len returns the number of entries.
func (s WeekdayNumSet) Len() int {
	return len(s.entries)
}

// IsZero reports whether s is the zero value rather than a constructed set.
func (s WeekdayNumSet) IsZero() bool {
	return len(s.entries) == 0
}

// HasOrdinals reports whether any entry carries a nonzero ordinal.
func (s WeekdayNumSet) HasOrdinals() bool {
	for _, e := range s.entries {
		if e.Ordinal != 0 {
			return true
		}
	}
	return false
}

// Values yields the entries in insertion order.
func (s WeekdayNumSet) Values() iter.Seq[WeekdayNum] {
	return func(yield func(WeekdayNum) bool) {
		for _, e := range s.entries {
			if !yield(e) {
				return
			}
		}
	}
}

// Slice returns a copy of the entries in insertion order.
func (s WeekdayNumSet) Slice() []WeekdayNum {
	return append([]WeekdayNum(nil), s.entries...)
}

func (s WeekdayNumSet) String() string {
	parts := make([]string, len(s.entries))
	for i, e := range s.entries {
		parts[i] = e.String()
	}
	return strings.Join(parts, ",")
}
