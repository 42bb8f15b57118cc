// Package rfc5545 reads and writes RRULE values in the text form of RFC 5545 §3.3.10.
package rfc5545

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cyp0633/caldora-recur/recur"
	"github.com/samber/mo"
)

var (
	// ErrSyntax reports text that does not follow the RRULE grammar.
	ErrSyntax = errors.New("malformed RRULE")
	// ErrMissingFreq reports an RRULE without a FREQ part.
	ErrMissingFreq = errors.New("RRULE has no FREQ part")
	// ErrCountAndUntil reports an RRULE carrying both COUNT and UNTIL.
	ErrCountAndUntil = errors.New("RRULE has both COUNT and UNTIL")
	// ErrDuplicatePart reports a part that occurs more than once.
	ErrDuplicatePart = errors.New("RRULE part occurs more than once")
	// ErrUnknownPart reports a part name outside RFC 5545.
	ErrUnknownPart = errors.New("unknown RRULE part")
)

// Part names of the RRULE value grammar.
const (
	PartFreq     = "FREQ"
	PartUntil    = "UNTIL"
	PartCount    = "COUNT"
	PartInterval = "INTERVAL"
	PartWkst     = "WKST"
)

// ParseError locates a failure inside an RRULE value.
type ParseError struct {
	// Offset is the byte offset of the offending part, or -1 when the
	// failure concerns the rule as a whole.
	Offset int
	Part   string
	Err    error
}

func (e *ParseError) Error() string {
	switch {
	case e.Offset < 0:
		return fmt.Sprintf("rrule: %v", e.Err)
	case e.Part == "":
		return fmt.Sprintf("rrule: offset %d: %v", e.Offset, e.Err)
	default:
		return fmt.Sprintf("rrule: offset %d: %s: %v", e.Offset, e.Part, e.Err)
	}
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// rawRule collects parts before the rule is assembled, since FREQ may come
// after the qualifiers it governs.
type rawRule struct {
	offsets  map[string]int
	freq     mo.Option[recur.Freq]
	count    mo.Option[int]
	until    mo.Option[recur.Instant]
	interval mo.Option[int]
	lists    map[recur.ByRuleName][]int
	days     []recur.WeekdayNum
	wkst     mo.Option[recur.Weekday]
}

// Parse decodes an RRULE value such as "FREQ=MONTHLY;BYDAY=2MO;COUNT=5" and
// validates it with recur.Build. Part names and enumerated values are
// case-insensitive. INTERVAL defaults to 1.
func Parse(value string) (recur.Rule, error) {
	c := &cursor{input: value}
	raw := rawRule{
		offsets: make(map[string]int),
		lists:   make(map[recur.ByRuleName][]int),
	}

	for !c.eof() {
		if err := raw.part(c); err != nil {
			return recur.Rule{}, err
		}
		if c.consume(';') {
			if c.eof() {
				return recur.Rule{}, &ParseError{Offset: c.pos - 1, Err: fmt.Errorf("%w: trailing ';'", ErrSyntax)}
			}
		} else if !c.eof() {
			return recur.Rule{}, &ParseError{Offset: c.pos, Err: fmt.Errorf("%w: expected ';'", ErrSyntax)}
		}
	}

	return raw.assemble()
}

// part parses one NAME=VALUE pair. On failure the cursor is back at the
// start of the part.
func (raw *rawRule) part(c *cursor) error {
	start := c.mark()
	fail := func(name string, err error) error {
		c.rewind(start)
		return &ParseError{Offset: start, Part: name, Err: err}
	}

	name, ok := c.name()
	if !ok {
		return fail("", fmt.Errorf("%w: expected part name", ErrSyntax))
	}
	name = strings.ToUpper(name)
	if !c.consume('=') {
		return fail(name, fmt.Errorf("%w: expected '='", ErrSyntax))
	}
	if _, dup := raw.offsets[name]; dup {
		return fail(name, ErrDuplicatePart)
	}

	var err error
	switch name {
	case PartFreq:
		var f recur.Freq
		if f, err = recur.ParseFreq(c.value()); err == nil {
			raw.freq = mo.Some(f)
		}
	case PartUntil:
		var at recur.Instant
		if at, err = parseInstant(c); err == nil {
			raw.until = mo.Some(at)
		}
	case PartCount:
		n, ok := c.unsigned()
		if !ok {
			err = fmt.Errorf("%w: expected a number", ErrSyntax)
		}
		raw.count = mo.Some(n)
	case PartInterval:
		n, ok := c.unsigned()
		if !ok {
			err = fmt.Errorf("%w: expected a number", ErrSyntax)
		}
		raw.interval = mo.Some(n)
	case PartWkst:
		var wd recur.Weekday
		if wd, err = recur.ParseWeekday(c.value()); err == nil {
			raw.wkst = mo.Some(wd)
		}
	default:
		by, perr := recur.ParseByRuleName(name)
		if perr != nil {
			return fail(name, ErrUnknownPart)
		}
		if by == recur.ByDay {
			raw.days, err = parseWeekdayNums(c)
		} else {
			raw.lists[by], err = parseIntList(c)
		}
	}
	if err != nil {
		return fail(name, err)
	}
	if !c.eof() && c.peek() != ';' {
		return fail(name, fmt.Errorf("%w: trailing characters in value", ErrSyntax))
	}

	raw.offsets[name] = start
	return nil
}

func parseIntList(c *cursor) ([]int, error) {
	m := c.mark()
	var out []int
	for {
		n, ok := c.signed()
		if !ok {
			c.rewind(m)
			return nil, fmt.Errorf("%w: expected an integer", ErrSyntax)
		}
		out = append(out, n)
		if !c.consume(',') {
			return out, nil
		}
	}
}

func parseWeekdayNums(c *cursor) ([]recur.WeekdayNum, error) {
	m := c.mark()
	var out []recur.WeekdayNum
	for {
		wn, ok := parseWeekdayNum(c)
		if !ok {
			c.rewind(m)
			return nil, fmt.Errorf("%w: expected a weekday", ErrSyntax)
		}
		out = append(out, wn)
		if !c.consume(',') {
			return out, nil
		}
	}
}

// parseWeekdayNum parses "[+|-][ordwk]weekday", e.g. "MO", "+2TU", "-1FR".
func parseWeekdayNum(c *cursor) (recur.WeekdayNum, bool) {
	m := c.mark()
	var wn recur.WeekdayNum
	if b := c.peek(); b == '+' || b == '-' || isDigit(b) {
		n, ok := c.signed()
		if !ok || n == 0 {
			c.rewind(m)
			return recur.WeekdayNum{}, false
		}
		wn.Ordinal = n
	}
	letters := c.span(isAlpha)
	wd, err := recur.ParseWeekday(letters)
	if err != nil {
		c.rewind(m)
		return recur.WeekdayNum{}, false
	}
	wn.Weekday = wd
	return wn, true
}

const (
	dateLayout         = "20060102"
	floatingTimeLayout = "20060102T150405"
	utcTimeLayout      = "20060102T150405Z"
)

// parseInstant parses a DATE or DATE-TIME value.
func parseInstant(c *cursor) (recur.Instant, error) {
	m := c.mark()
	s := c.span(func(b byte) bool { return isDigit(b) || b == 'T' || b == 'Z' })

	var (
		at  recur.Instant
		t   time.Time
		err error
	)
	switch len(s) {
	case len(dateLayout):
		t, err = time.Parse(dateLayout, s)
		at = recur.Instant{Time: t, IsDate: true}
	case len(floatingTimeLayout):
		t, err = time.Parse(floatingTimeLayout, s)
		at = recur.Instant{Time: t, IsFloating: true}
	case len(utcTimeLayout):
		t, err = time.Parse(utcTimeLayout, s)
		at = recur.Instant{Time: t}
	default:
		err = fmt.Errorf("%w: %q is neither a date nor a date-time", ErrSyntax, s)
	}
	if err != nil {
		c.rewind(m)
		if !errors.Is(err, ErrSyntax) {
			err = fmt.Errorf("%w: %v", ErrSyntax, err)
		}
		return recur.Instant{}, err
	}
	return at, nil
}

// assemble turns the collected parts into a validated rule.
func (raw *rawRule) assemble() (recur.Rule, error) {
	freq, ok := raw.freq.Get()
	if !ok {
		return recur.Rule{}, &ParseError{Offset: -1, Err: ErrMissingFreq}
	}
	if raw.count.IsPresent() && raw.until.IsPresent() {
		return recur.Rule{}, &ParseError{Offset: raw.offsets[PartUntil], Part: PartUntil, Err: ErrCountAndUntil}
	}

	term := recur.Forever()
	if n, ok := raw.count.Get(); ok {
		term = recur.Count(n)
	}
	if at, ok := raw.until.Get(); ok {
		term = recur.Until(at)
	}

	var freqBy recur.FreqByRules
	var coreBy recur.CoreByRules
	var err error
	for _, by := range recur.EvaluationOrder {
		values, ok := raw.lists[by]
		if !ok {
			continue
		}
		switch by {
		case recur.BySecond:
			freqBy.Second, err = optional(recur.NewSecondSet(values...))
		case recur.ByMinute:
			freqBy.Minute, err = optional(recur.NewMinuteSet(values...))
		case recur.ByHour:
			freqBy.Hour, err = optional(recur.NewHourSet(values...))
		case recur.ByMonthDay:
			freqBy.MonthDay, err = optional(recur.NewMonthDaySet(values...))
		case recur.ByYearDay:
			freqBy.YearDay, err = optional(recur.NewYearDaySet(values...))
		case recur.ByWeekNo:
			freqBy.WeekNo, err = optional(recur.NewWeekNoSet(values...))
		case recur.ByMonth:
			freqBy.Month, err = optional(recur.NewMonthSet(values...))
		case recur.BySetPos:
			coreBy.SetPos, err = optional(recur.NewSetPosSet(values...))
		}
		if err != nil {
			return recur.Rule{}, raw.errorAt(by.String(), err)
		}
	}
	if raw.days != nil {
		freqBy.Day, err = optional(recur.NewWeekdayNumSet(recur.OrdinalBound(freq), raw.days...))
		if err != nil {
			return recur.Rule{}, raw.errorAt(recur.ByDay.String(), err)
		}
	}
	coreBy.WeekStart = raw.wkst

	rule, err := recur.Build(freq, raw.interval.OrElse(recur.DefaultInterval), term, freqBy, coreBy)
	if err != nil {
		return recur.Rule{}, raw.errorAt(raw.partOf(err), err)
	}
	return rule, nil
}

func (raw *rawRule) errorAt(part string, err error) error {
	offset, ok := raw.offsets[part]
	if !ok {
		return &ParseError{Offset: -1, Err: err}
	}
	return &ParseError{Offset: offset, Part: part, Err: err}
}

// partOf names the part a Build error refers to.
func (raw *rawRule) partOf(err error) string {
	var (
		interval  *recur.InvalidIntervalError
		term      *recur.InvalidTerminationError
		forbidden *recur.ForbiddenQualifierError
		ordinal   *recur.ForbiddenOrdinalError
		setPos    *recur.MissingExpansionSourceError
	)
	switch {
	case errors.As(err, &interval):
		return PartInterval
	case errors.As(err, &term):
		if raw.until.IsPresent() {
			return PartUntil
		}
		return PartCount
	case errors.As(err, &forbidden):
		return forbidden.ByRule.String()
	case errors.As(err, &ordinal):
		return recur.ByDay.String()
	case errors.As(err, &setPos):
		return recur.BySetPos.String()
	default:
		return ""
	}
}

func optional[T any](v T, err error) (mo.Option[T], error) {
	if err != nil {
		return mo.None[T](), err
	}
	return mo.Some(v), nil
}
