package recurrence

import (
	"testing"
	"time"

	"github.com/cyp0633/caldora-recur/recur"
	"github.com/cyp0633/caldora-recur/recur/rfc5545"
	"github.com/emersion/go-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProp(name, value string, params map[string]string) *ical.Prop {
	prop := ical.NewProp(name)
	prop.Value = value
	for k, v := range params {
		prop.Params.Set(k, v)
	}
	return prop
}

func newEvent(props ...*ical.Prop) *ical.Component {
	comp := ical.NewComponent(ical.CompEvent)
	for _, prop := range props {
		comp.Props.Set(prop)
	}
	return comp
}

func TestExtractRecurrenceInfoFromComponent_Empty(t *testing.T) {
	info, err := ExtractRecurrenceInfoFromComponent(newEvent())
	require.NoError(t, err)
	assert.True(t, info.Rule.IsAbsent())
	assert.Empty(t, info.RDATE)
	assert.Empty(t, info.EXDATE)
	assert.Nil(t, info.RecurrenceID)
	assert.False(t, info.IsRecurring())
}

func TestExtractRecurrenceInfoFromComponent_Full(t *testing.T) {
	comp := newEvent(
		newProp(ical.PropDateTimeStart, "20240101T090000Z", nil),
		newProp(ical.PropRecurrenceRule, "FREQ=WEEKLY;UNTIL=20240301T090000Z;BYDAY=MO", nil),
		newProp(ical.PropRecurrenceDates, "20240110T090000Z,20240111T090000Z", nil),
		newProp(ical.PropExceptionDates, "20240108,20240115", map[string]string{ical.ParamValue: "DATE"}),
		newProp(ical.PropRecurrenceID, "20240122T090000Z", nil),
	)

	info, err := ExtractRecurrenceInfoFromComponent(comp)
	require.NoError(t, err)

	rule, ok := info.Rule.Get()
	require.True(t, ok)
	assert.Equal(t, "FREQ=WEEKLY;UNTIL=20240301T090000Z;BYDAY=MO", rfc5545.Format(rule))
	assert.Equal(t, []time.Time{utc(2024, 1, 10, 9, 0), utc(2024, 1, 11, 9, 0)}, info.RDATE)
	assert.Equal(t, []time.Time{utc(2024, 1, 8, 0, 0), utc(2024, 1, 15, 0, 0)}, info.EXDATE)
	require.NotNil(t, info.RecurrenceID)
	assert.True(t, info.RecurrenceID.Equal(utc(2024, 1, 22, 9, 0)))
	assert.True(t, info.IsRecurring())
}

func TestExtractRecurrenceInfoFromComponent_InvalidRule(t *testing.T) {
	tests := []struct {
		name   string
		props  []*ical.Prop
		target error
	}{
		{
			name:   "forbidden qualifier",
			props:  []*ical.Prop{newProp(ical.PropRecurrenceRule, "FREQ=WEEKLY;BYMONTHDAY=1", nil)},
			target: recur.ErrInvalidRule,
		},
		{
			name:   "syntax",
			props:  []*ical.Prop{newProp(ical.PropRecurrenceRule, "FREQ=DAILY;COUNT=x", nil)},
			target: rfc5545.ErrSyntax,
		},
		{
			name: "until precision",
			props: []*ical.Prop{
				newProp(ical.PropDateTimeStart, "20240101", map[string]string{ical.ParamValue: "DATE"}),
				newProp(ical.PropRecurrenceRule, "FREQ=DAILY;UNTIL=20240110T000000Z", nil),
			},
			target: recur.ErrInvalidRule,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractRecurrenceInfoFromComponent(newEvent(tt.props...))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestCheckUntilPrecision(t *testing.T) {
	dateStart := newProp(ical.PropDateTimeStart, "20240101", map[string]string{ical.ParamValue: "DATE"})
	utcStart := newProp(ical.PropDateTimeStart, "20240101T090000Z", nil)
	zonedStart := newProp(ical.PropDateTimeStart, "20240101T090000", map[string]string{ical.ParamTimezoneID: "Europe/Berlin"})
	floatingStart := newProp(ical.PropDateTimeStart, "20240101T090000", nil)

	const (
		dateUntil     = "FREQ=DAILY;UNTIL=20240110"
		utcUntil      = "FREQ=DAILY;UNTIL=20240110T090000Z"
		floatingUntil = "FREQ=DAILY;UNTIL=20240110T090000"
	)

	tests := []struct {
		name    string
		dtstart *ical.Prop
		rule    string
		valid   bool
	}{
		{"date with date", dateStart, dateUntil, true},
		{"date with utc", dateStart, utcUntil, false},
		{"date with floating", dateStart, floatingUntil, false},
		{"utc with utc", utcStart, utcUntil, true},
		{"utc with date", utcStart, dateUntil, false},
		{"utc with floating", utcStart, floatingUntil, false},
		{"zoned with utc", zonedStart, utcUntil, true},
		{"zoned with floating", zonedStart, floatingUntil, false},
		{"floating with floating", floatingStart, floatingUntil, true},
		{"floating with utc", floatingStart, utcUntil, false},
		{"floating with date", floatingStart, dateUntil, false},
		{"count needs no check", dateStart, "FREQ=DAILY;COUNT=3", true},
		{"missing dtstart", nil, utcUntil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckUntilPrecision(mustParse(t, tt.rule), tt.dtstart)
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			var termErr *recur.InvalidTerminationError
			assert.ErrorAs(t, err, &termErr)
		})
	}
}

func TestExtractBasicTimeInfoFromComponent(t *testing.T) {
	t.Run("dtend", func(t *testing.T) {
		comp := newEvent(
			newProp(ical.PropDateTimeStart, "20240101T090000Z", nil),
			newProp(ical.PropDateTimeEnd, "20240101T100000Z", nil),
		)
		start, end, ok := ExtractBasicTimeInfoFromComponent(comp)
		require.True(t, ok)
		assert.Equal(t, time.Hour, end.Sub(start))
	})

	t.Run("duration", func(t *testing.T) {
		comp := newEvent(
			newProp(ical.PropDateTimeStart, "20240101T090000Z", nil),
			newProp(ical.PropDuration, "PT30M", nil),
		)
		start, end, ok := ExtractBasicTimeInfoFromComponent(comp)
		require.True(t, ok)
		assert.Equal(t, 30*time.Minute, end.Sub(start))
	})

	t.Run("all-day default", func(t *testing.T) {
		comp := newEvent(newProp(ical.PropDateTimeStart, "20240101", map[string]string{ical.ParamValue: "DATE"}))
		start, end, ok := ExtractBasicTimeInfoFromComponent(comp)
		require.True(t, ok)
		assert.Equal(t, start.AddDate(0, 0, 1), end)
	})

	t.Run("todo due only", func(t *testing.T) {
		comp := ical.NewComponent(ical.CompToDo)
		comp.Props.Set(newProp(ical.PropDue, "20240105T170000Z", nil))
		start, end, ok := ExtractBasicTimeInfoFromComponent(comp)
		require.True(t, ok)
		assert.True(t, start.Equal(utc(2024, 1, 5, 17, 0)))
		assert.Equal(t, start, end)
	})

	t.Run("no times", func(t *testing.T) {
		_, _, ok := ExtractBasicTimeInfoFromComponent(newEvent())
		assert.False(t, ok)
	})
}
