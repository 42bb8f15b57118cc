package recur

import (
	"fmt"
	"strconv"
	"strings"
)

// ByRuleName identifies a BYxxx qualifier.
type ByRuleName uint8

const (
	BySecond ByRuleName = iota
	ByMinute
	ByHour
	ByDay
	ByMonthDay
	ByYearDay
	ByWeekNo
	ByMonth
	BySetPos
)

// byRuleCount sizes the legality table. BySetPos is the last row.
const byRuleCount = int(BySetPos) + 1

var byRuleNames = [byRuleCount]string{
	BySecond:   "BYSECOND",
	ByMinute:   "BYMINUTE",
	ByHour:     "BYHOUR",
	ByDay:      "BYDAY",
	ByMonthDay: "BYMONTHDAY",
	ByYearDay:  "BYYEARDAY",
	ByWeekNo:   "BYWEEKNO",
	ByMonth:    "BYMONTH",
	BySetPos:   "BYSETPOS",
}

func (n ByRuleName) String() string {
	if n.Valid() {
		return byRuleNames[n]
	}
	return "ByRuleName(" + strconv.Itoa(int(n)) + ")"
}

// Valid reports whether n names a known qualifier.
func (n ByRuleName) Valid() bool {
	return int(n) < byRuleCount
}

// FreqScoped reports whether the legality of n depends on the frequency.
// Only BYSETPOS is frequency independent.
func (n ByRuleName) FreqScoped() bool {
	return n.Valid() && n != BySetPos
}

// ParseByRuleName parses a qualifier name such as "BYMONTHDAY".
func ParseByRuleName(s string) (ByRuleName, error) {
	for i, name := range byRuleNames {
		if strings.EqualFold(s, name) {
			return ByRuleName(i), nil
		}
	}
	return 0, fmt.Errorf("unknown BYxxx rule %q", s)
}

// Role is what a qualifier does to the candidate instants of a frequency.
type Role uint8

const (
	roleUndefined Role = iota
	// Forbidden qualifiers must not appear with the frequency.
	Forbidden
	// Limit qualifiers filter the candidates the frequency produced.
	Limit
	// Expand qualifiers add candidates within each period.
	Expand
)

func (r Role) String() string {
	switch r {
	case Forbidden:
		return "forbidden"
	case Limit:
		return "limit"
	case Expand:
		return "expand"
	default:
		return "undefined"
	}
}

// Note marks the two BYDAY cells of the RFC 5545 table whose role depends on
// the other qualifiers in the rule.
type Note uint8

const (
	NoNote Note = iota
	// Note1: MONTHLY BYDAY limits when BYMONTHDAY is present, otherwise it
	// expands to the matching weekdays of the month.
	Note1
	// Note2: YEARLY BYDAY limits when BYYEARDAY or BYMONTHDAY is present,
	// otherwise it expands within the week (BYWEEKNO), month (BYMONTH) or year.
	Note2
)

// Transcription of the table on page 44 of RFC 5545.
// Columns: SECONDLY MINUTELY HOURLY DAILY WEEKLY MONTHLY YEARLY.
var roleTable = [byRuleCount][freqCount]Role{
	ByMonth:    {Limit, Limit, Limit, Limit, Limit, Limit, Expand},
	ByWeekNo:   {Forbidden, Forbidden, Forbidden, Forbidden, Forbidden, Forbidden, Expand},
	ByYearDay:  {Limit, Limit, Limit, Forbidden, Forbidden, Forbidden, Expand},
	ByMonthDay: {Limit, Limit, Limit, Limit, Forbidden, Expand, Expand},
	ByDay:      {Limit, Limit, Limit, Limit, Expand, Expand, Expand},
	ByHour:     {Limit, Limit, Limit, Expand, Expand, Expand, Expand},
	ByMinute:   {Limit, Limit, Expand, Expand, Expand, Expand, Expand},
	BySecond:   {Limit, Expand, Expand, Expand, Expand, Expand, Expand},
	BySetPos:   {Limit, Limit, Limit, Limit, Limit, Limit, Limit},
}

// EvaluationOrder is the order in which RFC 5545 §3.3.10 applies the
// qualifiers of a rule.
var EvaluationOrder = [byRuleCount]ByRuleName{
	ByMonth, ByWeekNo, ByYearDay, ByMonthDay, ByDay, ByHour, ByMinute, BySecond, BySetPos,
}

// Classify returns the role of qualifier n under frequency f. BYDAY at
// MONTHLY and YEARLY reports Expand; see DayNote for when it limits instead.
// Unknown frequencies or qualifiers classify as Forbidden.
func Classify(f Freq, n ByRuleName) Role {
	if !f.Valid() || !n.Valid() {
		return Forbidden
	}
	return roleTable[n][f]
}

// DayNote returns the table note attached to BYDAY at frequency f.
func DayNote(f Freq) Note {
	switch f {
	case Monthly:
		return Note1
	case Yearly:
		return Note2
	default:
		return NoNote
	}
}

// OrdinalAllowed reports whether BYDAY entries may carry a nonzero ordinal
// under frequency f.
func OrdinalAllowed(f Freq) bool {
	return f == Monthly || f == Yearly
}

// OrdinalBound is the largest ordinal magnitude meaningful for BYDAY under f:
// five weeks in a month, 53 in a year.
func OrdinalBound(f Freq) int {
	if f == Monthly {
		return 5
	}
	return MaxOrdinal
}
