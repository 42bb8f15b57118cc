package rfc5545

import (
	"strconv"
	"strings"

	"github.com/cyp0633/caldora-recur/recur"
)

// FormatInstant renders an UNTIL value in RFC 5545 DATE or DATE-TIME form.
func FormatInstant(at recur.Instant) string {
	switch {
	case at.IsDate:
		return at.Time.Format(dateLayout)
	case at.IsFloating:
		return at.Time.Format(floatingTimeLayout)
	default:
		return at.Time.UTC().Format(utcTimeLayout)
	}
}

// Format renders a rule as an RRULE value. Parts come in a fixed order:
// FREQ, COUNT or UNTIL, INTERVAL (omitted when 1), the BYxxx parts, WKST.
// Numeric qualifiers are written in ascending order, BYDAY in the order it
// was built with, so Parse(Format(r)) yields an equivalent rule.
func Format(r recur.Rule) string {
	var sb strings.Builder
	write := func(name, value string) {
		if sb.Len() > 0 {
			sb.WriteByte(';')
		}
		sb.WriteString(name)
		sb.WriteByte('=')
		sb.WriteString(value)
	}

	write(PartFreq, r.Freq().String())
	if n, ok := r.Termination().Count(); ok {
		write(PartCount, strconv.Itoa(n))
	}
	if at, ok := r.Termination().Until(); ok {
		write(PartUntil, FormatInstant(at))
	}
	if r.Interval() != recur.DefaultInterval {
		write(PartInterval, strconv.Itoa(r.Interval()))
	}

	if s, ok := r.Second().Get(); ok {
		write(recur.BySecond.String(), s.String())
	}
	if s, ok := r.Minute().Get(); ok {
		write(recur.ByMinute.String(), s.String())
	}
	if s, ok := r.Hour().Get(); ok {
		write(recur.ByHour.String(), s.String())
	}
	if s, ok := r.Day().Get(); ok {
		write(recur.ByDay.String(), s.String())
	}
	if s, ok := r.MonthDay().Get(); ok {
		write(recur.ByMonthDay.String(), s.String())
	}
	if s, ok := r.YearDay().Get(); ok {
		write(recur.ByYearDay.String(), s.String())
	}
	if s, ok := r.WeekNo().Get(); ok {
		write(recur.ByWeekNo.String(), s.String())
	}
	if s, ok := r.Month().Get(); ok {
		write(recur.ByMonth.String(), s.String())
	}
	if s, ok := r.SetPos().Get(); ok {
		write(recur.BySetPos.String(), s.String())
	}
	if wd, ok := r.WeekStart().Get(); ok {
		write(PartWkst, wd.String())
	}
	return sb.String()
}
