package recurrence

import (
	"time"

	"github.com/cyp0633/caldora-recur/recur"
	"github.com/teambition/rrule-go"
)

var rruleFrequencies = [...]rrule.Frequency{
	recur.Secondly: rrule.SECONDLY,
	recur.Minutely: rrule.MINUTELY,
	recur.Hourly:   rrule.HOURLY,
	recur.Daily:    rrule.DAILY,
	recur.Weekly:   rrule.WEEKLY,
	recur.Monthly:  rrule.MONTHLY,
	recur.Yearly:   rrule.YEARLY,
}

// Nth has a pointer receiver, so the table must stay addressable.
var rruleWeekdays = [...]rrule.Weekday{
	recur.Monday:    rrule.MO,
	recur.Tuesday:   rrule.TU,
	recur.Wednesday: rrule.WE,
	recur.Thursday:  rrule.TH,
	recur.Friday:    rrule.FR,
	recur.Saturday:  rrule.SA,
	recur.Sunday:    rrule.SU,
}

// ToROption converts a validated rule anchored at dtstart into the option set
// understood by rrule-go. A date or floating UNTIL is read in dtstart's location.
func ToROption(r recur.Rule, dtstart time.Time) rrule.ROption {
	opt := rrule.ROption{
		Freq:     rruleFrequencies[r.Freq()],
		Dtstart:  dtstart,
		Interval: r.Interval(),
		Wkst:     rruleWeekdays[r.EffectiveWeekStart()],
	}

	if n, ok := r.Termination().Count(); ok {
		opt.Count = n
	}
	if at, ok := r.Termination().Until(); ok {
		opt.Until = at.In(dtstart.Location())
	}

	if s, ok := r.Second().Get(); ok {
		opt.Bysecond = s.Slice()
	}
	if s, ok := r.Minute().Get(); ok {
		opt.Byminute = s.Slice()
	}
	if s, ok := r.Hour().Get(); ok {
		opt.Byhour = s.Slice()
	}
	if s, ok := r.Day().Get(); ok {
		for wn := range s.Values() {
			if wn.Ordinal == 0 {
				opt.Byweekday = append(opt.Byweekday, rruleWeekdays[wn.Weekday])
				continue
			}
			opt.Byweekday = append(opt.Byweekday, rruleWeekdays[wn.Weekday].Nth(wn.Ordinal))
		}
	}
	if s, ok := r.MonthDay().Get(); ok {
		opt.Bymonthday = s.Slice()
	}
	if s, ok := r.YearDay().Get(); ok {
		opt.Byyearday = s.Slice()
	}
	if s, ok := r.WeekNo().Get(); ok {
		opt.Byweekno = s.Slice()
	}
	if s, ok := r.Month().Get(); ok {
		opt.Bymonth = s.Slice()
	}
	if s, ok := r.SetPos().Get(); ok {
		opt.Bysetpos = s.Slice()
	}

	return opt
}

// newRRule builds the rrule-go iterator for a rule.
func newRRule(r recur.Rule, dtstart time.Time) (*rrule.RRule, error) {
	return rrule.NewRRule(ToROption(r, dtstart))
}
