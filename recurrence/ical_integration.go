package recurrence

import (
	"fmt"
	"strings"
	"time"

	"github.com/cyp0633/caldora-recur/recur"
	"github.com/cyp0633/caldora-recur/recur/rfc5545"
	"github.com/emersion/go-ical"
	"github.com/samber/mo"
)

const (
	icalDateLayout         = "20060102"
	icalFloatingTimeLayout = "20060102T150405"
	icalUTCTimeLayout      = "20060102T150405Z"
)

// ExtractRecurrenceInfoFromComponent extracts recurrence information from an iCal component.
// The RRULE is validated, including the precision of UNTIL against DTSTART.
func ExtractRecurrenceInfoFromComponent(comp *ical.Component) (RecurrenceInfo, error) {
	info := RecurrenceInfo{}

	if prop := comp.Props.Get(ical.PropRecurrenceRule); prop != nil && prop.Value != "" {
		rule, err := rfc5545.Parse(prop.Value)
		if err != nil {
			return RecurrenceInfo{}, fmt.Errorf("invalid RRULE: %w", err)
		}
		if err := CheckUntilPrecision(rule, comp.Props.Get(ical.PropDateTimeStart)); err != nil {
			return RecurrenceInfo{}, fmt.Errorf("invalid RRULE: %w", err)
		}
		info.Rule = mo.Some(rule)
	}

	if prop := comp.Props.Get(ical.PropRecurrenceDates); prop != nil && prop.Value != "" {
		info.RDATE = parseDateList(prop)
	}

	if prop := comp.Props.Get(ical.PropExceptionDates); prop != nil && prop.Value != "" {
		info.EXDATE = parseDateList(prop)
	}

	if prop := comp.Props.Get(ical.PropRecurrenceID); prop != nil && prop.Value != "" {
		if recID, err := parseDateValue(prop.Value, isDateProp(prop), propLocation(prop)); err == nil {
			info.RecurrenceID = &recID
		}
	}

	return info, nil
}

// CheckUntilPrecision enforces RFC 5545 §3.3.10: UNTIL must be a DATE when
// DTSTART is a DATE, must be UTC when DTSTART is UTC or carries a TZID, and
// must be floating when DTSTART is floating. A rule without UNTIL or a
// missing DTSTART always passes.
func CheckUntilPrecision(rule recur.Rule, dtstart *ical.Prop) error {
	until, ok := rule.Termination().Until()
	if !ok || dtstart == nil {
		return nil
	}

	switch {
	case isDateProp(dtstart):
		if !until.IsDate {
			return &recur.InvalidTerminationError{Reason: "UNTIL must be a DATE when DTSTART is a DATE"}
		}
	case strings.HasSuffix(dtstart.Value, "Z") || dtstart.Params.Get(ical.ParamTimezoneID) != "":
		if until.IsDate || until.IsFloating {
			return &recur.InvalidTerminationError{Reason: "UNTIL must be a UTC DATE-TIME when DTSTART has a time zone"}
		}
	default:
		if !until.IsFloating {
			return &recur.InvalidTerminationError{Reason: "UNTIL must be a floating DATE-TIME when DTSTART is floating"}
		}
	}
	return nil
}

// ExtractBasicTimeInfoFromComponent extracts start and end times from an iCal component
func ExtractBasicTimeInfoFromComponent(comp *ical.Component) (start, end time.Time, hasTime bool) {
	if dtstart, err := comp.Props.DateTime(ical.PropDateTimeStart, nil); err == nil {
		start = dtstart
		hasTime = true

		if dtend, err := comp.Props.DateTime(ical.PropDateTimeEnd, nil); err == nil {
			end = dtend

			// An all-day component ending on its start date lasts the whole day
			if isAllDayDate(start) && sameDate(start, end) {
				end = start.AddDate(0, 0, 1)
			}
		} else if durationProp := comp.Props.Get(ical.PropDuration); durationProp != nil {
			duration, err := durationProp.Duration()
			if err != nil {
				return time.Time{}, time.Time{}, false
			}
			end = start.Add(duration)
		} else if isAllDayDate(start) {
			end = start.AddDate(0, 0, 1)
		} else {
			end = start
		}
	}

	// For VTODO, also check DUE property
	if comp.Name == ical.CompToDo {
		if due, err := comp.Props.DateTime(ical.PropDue, nil); err == nil {
			switch {
			case !hasTime:
				start, end, hasTime = due, due, true
			case due.After(end):
				end = due
			}
		}
	}

	return start, end, hasTime
}

// parseDateList parses a comma separated RDATE or EXDATE value. Entries that
// fail to parse are skipped.
func parseDateList(prop *ical.Prop) []time.Time {
	dateOnly := isDateProp(prop)
	loc := propLocation(prop)

	var out []time.Time
	for _, s := range strings.Split(prop.Value, ",") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if t, err := parseDateValue(s, dateOnly, loc); err == nil {
			out = append(out, t)
		}
	}
	return out
}

// parseDateValue parses a DATE or DATE-TIME. Dates become midnight UTC;
// floating date-times are read in loc.
func parseDateValue(value string, dateOnly bool, loc *time.Location) (time.Time, error) {
	if dateOnly || len(value) == len(icalDateLayout) {
		t, err := time.Parse(icalDateLayout, value)
		if err != nil {
			return time.Time{}, err
		}
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	if strings.HasSuffix(value, "Z") {
		return time.Parse(icalUTCTimeLayout, value)
	}
	return time.ParseInLocation(icalFloatingTimeLayout, value, loc)
}

func isDateProp(prop *ical.Prop) bool {
	return prop.ValueType() == ical.ValueDate
}

// propLocation resolves the TZID parameter, falling back to UTC.
func propLocation(prop *ical.Prop) *time.Location {
	tzid := prop.Params.Get(ical.ParamTimezoneID)
	if tzid == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(tzid)
	if err != nil {
		return time.UTC
	}
	return loc
}

// isAllDayDate checks if a time represents an all-day date (time part is midnight)
func isAllDayDate(t time.Time) bool {
	return t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
