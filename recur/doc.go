/*
Package recur models RFC 5545 recurrence rules (RRULE) as validated values.

Each BYxxx qualifier is a compact, always non-empty set: BYSECOND, BYMINUTE,
BYHOUR, BYMONTH and BYMONTHDAY fit in a single word, BYWEEKNO, BYYEARDAY and
BYSETPOS use a fixed multi-word set, and BYDAY is an ordered list of weekdays
with optional ordinals.

# Building a rule

Qualifier sets are built first and then combined by Build, which is the only
place where the frequency dependent legality table of RFC 5545 is enforced:

	days, err := recur.NewWeekdayNumSet(recur.OrdinalBound(recur.Monthly),
		recur.WeekdayNum{Weekday: recur.Monday, Ordinal: 2})
	if err != nil {
		return err
	}
	rule, err := recur.Build(recur.Monthly, 1, recur.Count(5),
		recur.FreqByRules{Day: mo.Some(days)}, recur.CoreByRules{})

# Roles

Classify returns whether a qualifier expands or limits the candidate instants
of a frequency, or is forbidden with it. Rule.RoleOf resolves the same question
for a built rule, including the BYDAY cells whose role depends on the other
qualifiers present.

All values in this package are immutable and safe to share between goroutines.
*/
package recur
