package recur

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidValue matches every error produced while building a qualifier set.
	ErrInvalidValue = errors.New("invalid recurrence qualifier value")
	// ErrInvalidRule matches every error produced by Build.
	ErrInvalidRule = errors.New("invalid recurrence rule")
)

// OutOfRangeError reports a qualifier value outside its legal range, such as BYMONTH=13.
type OutOfRangeError struct {
	Value  int
	Domain string
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%s: value %d out of range", e.Domain, e.Value)
}

func (e *OutOfRangeError) Is(target error) bool { return target == ErrInvalidValue }

// EmptySetError reports a qualifier that names no values.
type EmptySetError struct {
	Domain string
}

func (e *EmptySetError) Error() string {
	return fmt.Sprintf("%s: at least one value is required", e.Domain)
}

func (e *EmptySetError) Is(target error) bool { return target == ErrInvalidValue }

// DuplicateEntryError reports a repeated (weekday, ordinal) pair in BYDAY.
type DuplicateEntryError struct {
	Entry WeekdayNum
}

func (e *DuplicateEntryError) Error() string {
	return fmt.Sprintf("BYDAY: duplicate entry %s", e.Entry)
}

func (e *DuplicateEntryError) Is(target error) bool { return target == ErrInvalidValue }

// ForbiddenQualifierError reports a qualifier the RFC 5545 table forbids for Freq.
type ForbiddenQualifierError struct {
	Freq   Freq
	ByRule ByRuleName
}

func (e *ForbiddenQualifierError) Error() string {
	return fmt.Sprintf("%s is not allowed with FREQ=%s", e.ByRule, e.Freq)
}

func (e *ForbiddenQualifierError) Is(target error) bool { return target == ErrInvalidRule }

// ForbiddenOrdinalError reports a BYDAY entry with a nonzero ordinal where
// only plain weekdays are allowed.
type ForbiddenOrdinalError struct {
	Freq  Freq
	Entry WeekdayNum
	// WithWeekNo is set when the ordinal is rejected because BYWEEKNO is
	// present in a YEARLY rule.
	WithWeekNo bool
}

func (e *ForbiddenOrdinalError) Error() string {
	if e.WithWeekNo {
		return fmt.Sprintf("BYDAY ordinal %s is not allowed with FREQ=%s and BYWEEKNO", e.Entry, e.Freq)
	}
	return fmt.Sprintf("BYDAY ordinal %s is not allowed with FREQ=%s", e.Entry, e.Freq)
}

func (e *ForbiddenOrdinalError) Is(target error) bool { return target == ErrInvalidRule }

// InvalidTerminationError reports a COUNT or UNTIL that cannot terminate a rule.
type InvalidTerminationError struct {
	Reason string
}

func (e *InvalidTerminationError) Error() string {
	return "invalid termination: " + e.Reason
}

func (e *InvalidTerminationError) Is(target error) bool { return target == ErrInvalidRule }

// InvalidIntervalError reports an INTERVAL below 1.
type InvalidIntervalError struct {
	Interval int
}

func (e *InvalidIntervalError) Error() string {
	return fmt.Sprintf("interval must be positive, got %d", e.Interval)
}

func (e *InvalidIntervalError) Is(target error) bool { return target == ErrInvalidRule }

// MissingExpansionSourceError reports BYSETPOS without any qualifier that
// expands the candidate set it would select from.
type MissingExpansionSourceError struct {
	Freq Freq
}

func (e *MissingExpansionSourceError) Error() string {
	return fmt.Sprintf("BYSETPOS with FREQ=%s requires an expanding BYxxx rule", e.Freq)
}

func (e *MissingExpansionSourceError) Is(target error) bool { return target == ErrInvalidRule }
