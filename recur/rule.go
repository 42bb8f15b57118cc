package recur

import (
	"fmt"
	"iter"

	"github.com/samber/mo"
)

// FreqByRules holds the qualifiers whose legality depends on the frequency.
// An absent option means the qualifier is not used.
type FreqByRules struct {
	Second   mo.Option[SecondSet]
	Minute   mo.Option[MinuteSet]
	Hour     mo.Option[HourSet]
	Day      mo.Option[WeekdayNumSet]
	MonthDay mo.Option[MonthDaySet]
	YearDay  mo.Option[YearDaySet]
	WeekNo   mo.Option[WeekNoSet]
	Month    mo.Option[MonthSet]
}

// CoreByRules holds the parts of a rule whose meaning does not vary with the
// frequency.
type CoreByRules struct {
	SetPos mo.Option[SetPosSet]
	// WeekStart defaults to Monday when absent.
	WeekStart mo.Option[Weekday]
}

// Rule is a validated RRULE. It can only be obtained from Build and is
// immutable; copies are independent values.
type Rule struct {
	freq        Freq
	interval    int
	termination Termination
	freqBy      FreqByRules
	coreBy      CoreByRules
}

// Build validates the parts of a rule and assembles it. Checks run in this
// order: interval, termination, qualifier presence, legality of each
// qualifier for freq, BYDAY ordinals, and finally the BYSETPOS expansion
// source.
func Build(freq Freq, interval int, termination Termination, freqBy FreqByRules, coreBy CoreByRules) (Rule, error) {
	if !freq.Valid() {
		return Rule{}, fmt.Errorf("%w: unknown frequency %s", ErrInvalidRule, freq)
	}
	if interval < 1 {
		return Rule{}, &InvalidIntervalError{Interval: interval}
	}
	if err := termination.validate(); err != nil {
		return Rule{}, err
	}

	r := Rule{
		freq:        freq,
		interval:    interval,
		termination: termination,
		freqBy:      freqBy,
		coreBy:      coreBy,
	}

	if err := r.checkConstructed(); err != nil {
		return Rule{}, err
	}

	for _, name := range EvaluationOrder {
		if !name.FreqScoped() || !r.Has(name) {
			continue
		}
		if Classify(freq, name) == Forbidden {
			return Rule{}, &ForbiddenQualifierError{Freq: freq, ByRule: name}
		}
	}

	if days, ok := freqBy.Day.Get(); ok {
		for wn := range days.Values() {
			if wn.Ordinal == 0 {
				continue
			}
			if !OrdinalAllowed(freq) {
				return Rule{}, &ForbiddenOrdinalError{Freq: freq, Entry: wn}
			}
			if freq == Yearly && freqBy.WeekNo.IsPresent() {
				return Rule{}, &ForbiddenOrdinalError{Freq: freq, Entry: wn, WithWeekNo: true}
			}
		}
	}

	if coreBy.SetPos.IsPresent() {
		expands := false
		for name, role := range r.Qualifiers() {
			if name != BySetPos && role == Expand {
				expands = true
				break
			}
		}
		if !expands {
			return Rule{}, &MissingExpansionSourceError{Freq: freq}
		}
	}

	return r, nil
}

// checkConstructed rejects options that are present but hold a zero value
// set, which can only come from bypassing the set constructors.
func (r Rule) checkConstructed() error {
	empty := func(name ByRuleName) error { return &EmptySetError{Domain: name.String()} }
	if o := r.freqBy.Month; o.IsPresent() && o.OrEmpty().IsZero() {
		return empty(ByMonth)
	}
	if o := r.freqBy.WeekNo; o.IsPresent() && o.OrEmpty().IsZero() {
		return empty(ByWeekNo)
	}
	if o := r.freqBy.YearDay; o.IsPresent() && o.OrEmpty().IsZero() {
		return empty(ByYearDay)
	}
	if o := r.freqBy.MonthDay; o.IsPresent() && o.OrEmpty().IsZero() {
		return empty(ByMonthDay)
	}
	if o := r.freqBy.Day; o.IsPresent() && o.OrEmpty().IsZero() {
		return empty(ByDay)
	}
	if o := r.freqBy.Hour; o.IsPresent() && o.OrEmpty().IsZero() {
		return empty(ByHour)
	}
	if o := r.freqBy.Minute; o.IsPresent() && o.OrEmpty().IsZero() {
		return empty(ByMinute)
	}
	if o := r.freqBy.Second; o.IsPresent() && o.OrEmpty().IsZero() {
		return empty(BySecond)
	}
	if o := r.coreBy.SetPos; o.IsPresent() && o.OrEmpty().IsZero() {
		return empty(BySetPos)
	}
	return nil
}

// Freq returns the rule's frequency.
func (r Rule) Freq() Freq { return r.freq }

// Interval returns the rule's interval, at least 1.
func (r Rule) Interval() int { return r.interval }

// Termination returns how the rule stops.
func (r Rule) Termination() Termination { return r.termination }

// Second returns the BYSECOND set, absent when the rule has none.
func (r Rule) Second() mo.Option[SecondSet] { return r.freqBy.Second }

// Minute returns the BYMINUTE set, absent when the rule has none.
func (r Rule) Minute() mo.Option[MinuteSet] { return r.freqBy.Minute }

// Hour returns the BYHOUR set, absent when the rule has none.
func (r Rule) Hour() mo.Option[HourSet] { return r.freqBy.Hour }

// Day returns the BYDAY set, absent when the rule has none.
func (r Rule) Day() mo.Option[WeekdayNumSet] { return r.freqBy.Day }

// MonthDay returns the BYMONTHDAY set, absent when the rule has none.
func (r Rule) MonthDay() mo.Option[MonthDaySet] { return r.freqBy.MonthDay }

// YearDay returns the BYYEARDAY set, absent when the rule has none.
func (r Rule) YearDay() mo.Option[YearDaySet] { return r.freqBy.YearDay }

// WeekNo returns the BYWEEKNO set, absent when the rule has none.
func (r Rule) WeekNo() mo.Option[WeekNoSet] { return r.freqBy.WeekNo }

// Month returns the BYMONTH set, absent when the rule has none.
func (r Rule) Month() mo.Option[MonthSet] { return r.freqBy.Month }

// SetPos returns the BYSETPOS set, absent when the rule has none.
func (r Rule) SetPos() mo.Option[SetPosSet] { return r.coreBy.SetPos }

// WeekStart returns the WKST day, absent when the rule leaves it implicit.
func (r Rule) WeekStart() mo.Option[Weekday] { return r.coreBy.WeekStart }

// FreqByRules returns the frequency-dependent qualifiers as given to Build.
func (r Rule) FreqByRules() FreqByRules { return r.freqBy }

// CoreByRules returns BYSETPOS and WKST as given to Build.
func (r Rule) CoreByRules() CoreByRules { return r.coreBy }

// EffectiveWeekStart returns WKST, or Monday when the rule does not set it.
func (r Rule) EffectiveWeekStart() Weekday {
	return r.coreBy.WeekStart.OrElse(Monday)
}

// Has reports whether qualifier name is populated.
func (r Rule) Has(name ByRuleName) bool {
	switch name {
	case BySecond:
		return r.freqBy.Second.IsPresent()
	case ByMinute:
		return r.freqBy.Minute.IsPresent()
	case ByHour:
		return r.freqBy.Hour.IsPresent()
	case ByDay:
		return r.freqBy.Day.IsPresent()
	case ByMonthDay:
		return r.freqBy.MonthDay.IsPresent()
	case ByYearDay:
		return r.freqBy.YearDay.IsPresent()
	case ByWeekNo:
		return r.freqBy.WeekNo.IsPresent()
	case ByMonth:
		return r.freqBy.Month.IsPresent()
	case BySetPos:
		return r.coreBy.SetPos.IsPresent()
	default:
		return false
	}
}

// RoleOf returns whether a populated qualifier expands or limits under the
// rule's frequency. It is absent for qualifiers the rule does not use. BYDAY
// at MONTHLY and YEARLY is resolved against the other qualifiers present.
func (r Rule) RoleOf(name ByRuleName) mo.Option[Role] {
	if !r.Has(name) {
		return mo.None[Role]()
	}
	role := Classify(r.freq, name)
	if name == ByDay {
		switch DayNote(r.freq) {
		case Note1:
			if r.Has(ByMonthDay) {
				role = Limit
			}
		case Note2:
			if r.Has(ByYearDay) || r.Has(ByMonthDay) {
				role = Limit
			}
		}
	}
	return mo.Some(role)
}

// Qualifiers yields each populated qualifier with its role, in evaluation order.
func (r Rule) Qualifiers() iter.Seq2[ByRuleName, Role] {
	return func(yield func(ByRuleName, Role) bool) {
		for _, name := range EvaluationOrder {
			role, ok := r.RoleOf(name).Get()
			if !ok {
				continue
			}
			if !yield(name, role) {
				return
			}
		}
	}
}
