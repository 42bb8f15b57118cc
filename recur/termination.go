package recur

import (
	"time"
)

// Instant is an UNTIL bound. It keeps the precision the value was written
// with, which the assembler compares against DTSTART.
type Instant struct {
	Time time.Time
	// IsDate marks a DATE value; Time is then midnight UTC of that day.
	IsDate bool
	// IsFloating marks a DATE-TIME without a UTC designator. Time carries
	// the wall clock reading in UTC.
	IsFloating bool
}

// DateInstant returns a date-only instant.
func DateInstant(year int, month time.Month, day int) Instant {
	return Instant{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC), IsDate: true}
}

// UTCInstant returns a date-time instant fixed to UTC.
func UTCInstant(t time.Time) Instant {
	return Instant{Time: t.UTC()}
}

// FloatingInstant returns a date-time instant with no time zone. Only the
// wall clock fields of t are kept.
func FloatingInstant(t time.Time) Instant {
	return Instant{
		Time:       time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC),
		IsFloating: true,
	}
}

// In resolves the instant against loc. UTC instants are returned unchanged;
// dates and floating date-times are read as wall clock times in loc.
func (i Instant) In(loc *time.Location) time.Time {
	if !i.IsDate && !i.IsFloating {
		return i.Time
	}
	t := i.Time
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, loc)
}

// TerminationKind tells which variant a Termination holds.
type TerminationKind uint8

const (
	TerminateNever TerminationKind = iota
	TerminateCount
	TerminateUntil
)

func (k TerminationKind) String() string {
	switch k {
	case TerminateNever:
		return "forever"
	case TerminateCount:
		return "count"
	case TerminateUntil:
		return "until"
	default:
		return "unknown"
	}
}

// Termination says when a rule stops: never, after a number of occurrences,
// or at an inclusive UNTIL bound. The zero value runs forever.
type Termination struct {
	kind  TerminationKind
	count int
	until Instant
}

// Forever returns a termination that never stops the rule.
func Forever() Termination {
	return Termination{}
}

// Count stops the rule after n occurrences. n is validated by Build.
func Count(n int) Termination {
	return Termination{kind: TerminateCount, count: n}
}

// Until stops the rule at the inclusive bound at.
func Until(at Instant) Termination {
	return Termination{kind: TerminateUntil, until: at}
}

// Kind returns the variant.
func (t Termination) Kind() TerminationKind {
	return t.kind
}

// Count returns the occurrence count of a COUNT termination.
func (t Termination) Count() (int, bool) {
	return t.count, t.kind == TerminateCount
}

// Until returns the bound of an UNTIL termination.
func (t Termination) Until() (Instant, bool) {
	return t.until, t.kind == TerminateUntil
}

func (t Termination) validate() error {
	switch t.kind {
	case TerminateNever:
		return nil
	case TerminateCount:
		if t.count <= 0 {
			return &InvalidTerminationError{Reason: "COUNT must be positive"}
		}
		return nil
	case TerminateUntil:
		if t.until.Time.IsZero() {
			return &InvalidTerminationError{Reason: "UNTIL has no value"}
		}
		if t.until.IsDate && t.until.IsFloating {
			return &InvalidTerminationError{Reason: "UNTIL cannot be both a date and a floating date-time"}
		}
		if t.until.IsDate {
			h, m, s := t.until.Time.Clock()
			if h != 0 || m != 0 || s != 0 || t.until.Time.Nanosecond() != 0 {
				return &InvalidTerminationError{Reason: "UNTIL date carries a time of day"}
			}
		}
		return nil
	default:
		return &InvalidTerminationError{Reason: "unknown termination"}
	}
}
